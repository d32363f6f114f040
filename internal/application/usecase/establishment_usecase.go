package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/spatrax/spatrax-api/internal/application/dto"
	"github.com/spatrax/spatrax-api/internal/domain"
	"github.com/spatrax/spatrax-api/internal/domain/entity"
	"github.com/spatrax/spatrax-api/internal/domain/repository"
	"github.com/spatrax/spatrax-api/internal/infrastructure/cache"
)

// EstablishmentUseCase reglas de negocio del tenant: alta (con promoción del
// creador a admin), edición (solo admin) y lectura cache-aside.
type EstablishmentUseCase struct {
	users    *UserUseCase
	repo     repository.EstablishmentRepository
	userRepo repository.UserRepository
	cache    *cache.Service
}

// NewEstablishmentUseCase construye el caso de uso con sus colaboradores.
func NewEstablishmentUseCase(
	users *UserUseCase,
	repo repository.EstablishmentRepository,
	userRepo repository.UserRepository,
	cache *cache.Service,
) *EstablishmentUseCase {
	return &EstablishmentUseCase{users: users, repo: repo, userRepo: userRepo, cache: cache}
}

// Get devuelve el establecimiento del usuario autenticado.
func (uc *EstablishmentUseCase) Get(ctx context.Context, authSubject string) (*entity.Establishment, error) {
	user, err := uc.users.GetCurrent(ctx, authSubject)
	if err != nil {
		return nil, err
	}
	return uc.GetForUser(ctx, user)
}

// GetForUser devuelve el establecimiento de un usuario ya resuelto
// (cache-aside sobre establishments:<id>). Lo reutilizan logs e invitaciones.
func (uc *EstablishmentUseCase) GetForUser(ctx context.Context, user *entity.User) (*entity.Establishment, error) {
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if user.EstablishmentID == nil {
		return nil, domain.ErrNoEstablishment
	}
	id := *user.EstablishmentID
	return cache.GetOrLoad(ctx, uc.cache, cache.EstablishmentKey(id),
		func(ctx context.Context) (*entity.Establishment, error) {
			e, err := uc.repo.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			if e == nil {
				return nil, domain.ErrNotFound
			}
			return e, nil
		})
}

// Create da de alta un establecimiento. El usuario no debe pertenecer a uno;
// al crearlo queda promovido a admin y asociado al tenant (única escalación de
// rol del sistema). Si la escritura de caché posterior falla, el store ya es la
// fuente de verdad y la entrada queda pendiente de repoblarse.
func (uc *EstablishmentUseCase) Create(ctx context.Context, authSubject string, in dto.CreateEstablishmentRequest) (*entity.Establishment, error) {
	user, err := uc.users.GetCurrent(ctx, authSubject)
	if err != nil {
		return nil, err
	}
	if user.EstablishmentID != nil {
		return nil, fmt.Errorf("%w: ya pertenece a un establecimiento", domain.ErrConflict)
	}

	fields, err := validateEstablishmentFields(in.EstablishmentFields)
	if err != nil {
		return nil, err
	}

	e := &entity.Establishment{
		BusinessName: fields.Name,
		Address:      fields.Address,
		City:         fields.City,
		State:        fields.State,
		Postal:       fields.Postal,
		Country:      fields.Country,
		Chairs:       fields.Chairs,
		Presets:      append([]string(nil), entity.DefaultPresets...),
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	user.EstablishmentID = &e.ID
	user.Role = entity.RoleAdmin
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	uc.cache.Set(ctx, cache.EstablishmentKey(e.ID), e)
	uc.cache.Set(ctx, cache.UserKey(user.AuthSubject), user)
	uc.cache.Set(ctx, cache.UserIDKey(user.ID), user)

	return e, nil
}

// Edit actualiza un establecimiento. Requiere rol admin y que el id coincida
// con el tenant del caller. Sobrescribe solo la entrada establishments:<id>.
func (uc *EstablishmentUseCase) Edit(ctx context.Context, authSubject string, id int64, in dto.EditEstablishmentRequest) (*entity.Establishment, error) {
	user, err := uc.users.GetCurrent(ctx, authSubject)
	if err != nil {
		return nil, err
	}
	if user.Role != entity.RoleAdmin || user.EstablishmentID == nil || *user.EstablishmentID != id {
		return nil, domain.ErrForbidden
	}

	fields, err := validateEstablishmentFields(in.EstablishmentFields)
	if err != nil {
		return nil, err
	}

	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}

	e.BusinessName = fields.Name
	e.Address = fields.Address
	e.City = fields.City
	e.State = fields.State
	e.Postal = fields.Postal
	e.Country = fields.Country
	e.Chairs = fields.Chairs
	if in.Presets != nil {
		e.Presets = in.Presets
	}
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	uc.cache.Set(ctx, cache.EstablishmentKey(e.ID), e)

	return e, nil
}

// validateEstablishmentFields recorta espacios y valida cada campo de texto
// (largo entre 2 y 255) y la cantidad de sillas (entre 1 y 10000). Devuelve
// los campos ya recortados.
func validateEstablishmentFields(f dto.EstablishmentFields) (dto.EstablishmentFields, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Address = strings.TrimSpace(f.Address)
	f.City = strings.TrimSpace(f.City)
	f.State = strings.TrimSpace(f.State)
	f.Postal = strings.TrimSpace(f.Postal)
	f.Country = strings.TrimSpace(f.Country)

	texts := []struct {
		label string
		value string
	}{
		{"name", f.Name},
		{"address", f.Address},
		{"city", f.City},
		{"state", f.State},
		{"postal", f.Postal},
		{"country", f.Country},
	}
	for _, t := range texts {
		if len(t.value) < 2 {
			return f, domain.Validation(fmt.Sprintf("%s debe tener al menos 2 caracteres", t.label))
		}
		if len(t.value) > 255 {
			return f, domain.Validation(fmt.Sprintf("%s debe tener menos de 256 caracteres", t.label))
		}
	}
	if f.Chairs < 1 {
		return f, domain.Validation("chairs debe ser al menos 1")
	}
	if f.Chairs > 10000 {
		return f, domain.Validation("chairs debe ser menor o igual a 10000")
	}
	return f, nil
}
