package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/spatrax/spatrax-api/internal/application/dto"
	"github.com/spatrax/spatrax-api/internal/domain"
	"github.com/spatrax/spatrax-api/internal/domain/entity"
	"github.com/spatrax/spatrax-api/internal/domain/repository"
	"github.com/spatrax/spatrax-api/internal/infrastructure/cache"
)

// LogUseCase logs de limpieza: lista reciente cache-aside sobre
// logs:<establishmentID> (tope cache.MaxCachedLogs, FIFO por inserción),
// búsqueda por rango solo-store y alta con copia de firma.
type LogUseCase struct {
	users          *UserUseCase
	establishments *EstablishmentUseCase
	logRepo        repository.LogRepository
	userRepo       repository.UserRepository
	cache          *cache.Service
}

// NewLogUseCase construye el caso de uso con sus colaboradores.
func NewLogUseCase(
	users *UserUseCase,
	establishments *EstablishmentUseCase,
	logRepo repository.LogRepository,
	userRepo repository.UserRepository,
	cache *cache.Service,
) *LogUseCase {
	return &LogUseCase{
		users:          users,
		establishments: establishments,
		logRepo:        logRepo,
		userRepo:       userRepo,
		cache:          cache,
	}
}

// GetRecent devuelve los logs más recientes del establecimiento del caller
// (máximo cache.MaxCachedLogs, más nuevo primero). Un usuario sin
// establecimiento recibe lista vacía. Los listados sin tope van por Search.
func (uc *LogUseCase) GetRecent(ctx context.Context, authSubject string) ([]*entity.LogWithUser, error) {
	user, err := uc.users.GetCurrent(ctx, authSubject)
	if err != nil {
		return nil, err
	}
	if user.EstablishmentID == nil {
		return []*entity.LogWithUser{}, nil
	}
	estID := *user.EstablishmentID
	return cache.GetOrLoad(ctx, uc.cache, cache.LogsKey(estID),
		func(ctx context.Context) ([]*entity.LogWithUser, error) {
			return uc.logRepo.ListRecent(ctx, estID, cache.MaxCachedLogs)
		})
}

// Search busca logs por rango de fechas y opcionalmente por técnico. Sin caché:
// va siempre al store. Un employee solo puede consultar sus propios logs.
func (uc *LogUseCase) Search(ctx context.Context, authSubject string, userID *int64, dateStart, dateEnd time.Time) ([]*entity.LogWithUser, error) {
	user, err := uc.users.GetCurrent(ctx, authSubject)
	if err != nil {
		return nil, err
	}
	if user.EstablishmentID == nil {
		return []*entity.LogWithUser{}, nil
	}
	if user.Role == entity.RoleEmployee && (userID == nil || *userID != user.ID) {
		return nil, domain.ErrForbidden
	}
	return uc.logRepo.Search(ctx, repository.LogSearch{
		EstablishmentID: *user.EstablishmentID,
		UserID:          userID,
		DateStart:       dateStart,
		DateEnd:         dateEnd,
	})
}

// Create da de alta un log de limpieza. El caller debe tener firma registrada:
// se copia sobre el log como constancia, incluso cuando un manager registra la
// limpieza en nombre de otro técnico. Un employee solo puede registrar para sí.
func (uc *LogUseCase) Create(ctx context.Context, authSubject string, in dto.CreateLogRequest) (*entity.LogWithUser, error) {
	user, err := uc.users.GetCurrent(ctx, authSubject)
	if err != nil {
		return nil, err
	}
	if user.Role == entity.RoleEmployee && user.ID != in.UserID {
		return nil, domain.ErrForbidden
	}
	if user.ESignature == "" {
		return nil, domain.Validation("el usuario no tiene firma registrada")
	}

	establishment, err := uc.establishments.GetForUser(ctx, user)
	if err != nil {
		return nil, err
	}

	performer := user
	if in.UserID != user.ID {
		performer, err = uc.userRepo.GetByID(ctx, in.UserID)
		if err != nil {
			return nil, err
		}
		if performer == nil {
			return nil, domain.ErrUserNotFound
		}
	}

	l := &entity.Log{
		PerformedAt:     in.PerformedAt,
		Chair:           strconv.Itoa(in.Chair),
		ESignature:      user.ESignature,
		UserID:          in.UserID,
		EstablishmentID: establishment.ID,
		Presets:         in.Presets,
	}
	if err := uc.logRepo.Create(ctx, l); err != nil {
		return nil, err
	}

	lw := &entity.LogWithUser{Log: *l, User: *performer}
	uc.patchLogsCache(ctx, establishment.ID, lw)

	return lw, nil
}

// patchLogsCache antepone el log nuevo a logs:<establishmentID> y recorta la
// cola para mantener el tope: la lista queda más-nuevo-primero y la expulsión
// es FIFO por orden de inserción, no por performed_at. Caché fría arranca con
// una lista de una sola entrada.
func (uc *LogUseCase) patchLogsCache(ctx context.Context, establishmentID int64, lw *entity.LogWithUser) {
	key := cache.LogsKey(establishmentID)
	var cached []*entity.LogWithUser
	if uc.cache.Get(ctx, key, &cached) {
		cached = append([]*entity.LogWithUser{lw}, cached...)
		if len(cached) > cache.MaxCachedLogs {
			cached = cached[:cache.MaxCachedLogs]
		}
		uc.cache.Set(ctx, key, cached)
		return
	}
	uc.cache.Set(ctx, key, []*entity.LogWithUser{lw})
}

// DayRange normaliza un rango de búsqueda a días completos UTC:
// [dateStart 00:00:00.000, dateEnd 23:59:59.999].
func DayRange(dateStart, dateEnd time.Time) (time.Time, time.Time) {
	s := dateStart.UTC()
	e := dateEnd.UTC()
	start := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(e.Year(), e.Month(), e.Day(), 23, 59, 59, 999*1e6, time.UTC)
	return start, end
}
