package usecase

import (
	"context"

	"github.com/spatrax/spatrax-api/internal/domain"
	"github.com/spatrax/spatrax-api/internal/domain/entity"
	"github.com/spatrax/spatrax-api/internal/domain/repository"
	"github.com/spatrax/spatrax-api/internal/infrastructure/cache"
)

// UserUseCase resuelve el usuario actual a partir del subject del proveedor de
// identidad, con cache-aside sobre users:<authSubject>.
type UserUseCase struct {
	userRepo repository.UserRepository
	cache    *cache.Service
}

// NewUserUseCase construye el caso de uso con sus colaboradores.
func NewUserUseCase(userRepo repository.UserRepository, cache *cache.Service) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, cache: cache}
}

// GetCurrent devuelve el usuario asociado al subject autenticado.
// El subject viene de una sesión verificada, no se valida como entrada.
func (uc *UserUseCase) GetCurrent(ctx context.Context, authSubject string) (*entity.User, error) {
	if authSubject == "" {
		return nil, domain.ErrUnauthorized
	}
	return cache.GetOrLoad(ctx, uc.cache, cache.UserKey(authSubject),
		func(ctx context.Context) (*entity.User, error) {
			user, err := uc.userRepo.GetByAuthSubject(ctx, authSubject)
			if err != nil {
				return nil, err
			}
			if user == nil {
				// No se cachean ausencias: un sign-up en vuelo la resolvería enseguida.
				return nil, domain.ErrUserNotFound
			}
			return user, nil
		})
}
