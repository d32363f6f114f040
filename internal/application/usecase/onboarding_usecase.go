package usecase

import (
	"context"
	"fmt"

	"github.com/spatrax/spatrax-api/internal/application/dto"
	"github.com/spatrax/spatrax-api/internal/domain"
	"github.com/spatrax/spatrax-api/internal/domain/entity"
	"github.com/spatrax/spatrax-api/internal/domain/repository"
	"github.com/spatrax/spatrax-api/pkg/logger"
)

// OnboardingUseCase procesa el webhook user.created del proveedor de identidad.
//
// Dos caminos:
//   - sign-up con invitación: adjunta el auth subject al usuario ya creado por
//     el manager y marca la invitación como aceptada (created → accepted).
//   - sign-up directo: crea el usuario sin rol ni establecimiento.
//
// En ambos casos envía el email de bienvenida; un fallo ahí se propaga para
// que el endpoint responda 500 y el proveedor reintente la entrega.
type OnboardingUseCase struct {
	userRepo   repository.UserRepository
	inviteRepo repository.InviteRepository
	email      EmailSender
	log        *logger.Logger
}

// NewOnboardingUseCase construye el caso de uso con sus colaboradores.
func NewOnboardingUseCase(
	userRepo repository.UserRepository,
	inviteRepo repository.InviteRepository,
	email EmailSender,
	log *logger.Logger,
) *OnboardingUseCase {
	return &OnboardingUseCase{userRepo: userRepo, inviteRepo: inviteRepo, email: email, log: log}
}

// HandleUserCreated materializa la identidad recién creada como usuario local.
func (uc *OnboardingUseCase) HandleUserCreated(ctx context.Context, data dto.IdentityEventData) (*entity.User, error) {
	var user *entity.User

	if inviteID := data.UnsafeMetadata.InviteID.Int64(); inviteID > 0 {
		invite, err := uc.inviteRepo.GetByID(ctx, inviteID)
		if err != nil {
			return nil, fmt.Errorf("cargar invitación %d: %w", inviteID, err)
		}
		if invite == nil {
			return nil, fmt.Errorf("invitación %d: %w", inviteID, domain.ErrNotFound)
		}

		user, err = uc.userRepo.GetByID(ctx, invite.UserID)
		if err != nil {
			return nil, fmt.Errorf("cargar usuario invitado: %w", err)
		}
		if user == nil {
			return nil, fmt.Errorf("usuario invitado %d: %w", invite.UserID, domain.ErrUserNotFound)
		}

		user.AuthSubject = data.ID
		if err := uc.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("asociar identidad al usuario invitado: %w", err)
		}
		if err := uc.inviteRepo.MarkAccepted(ctx, invite.ID); err != nil {
			return nil, fmt.Errorf("aceptar invitación: %w", err)
		}

		uc.log.Info().Int64("invite_id", invite.ID).Int64("user_id", user.ID).Msg("invitación aceptada")
	} else {
		user = &entity.User{
			FirstName:   data.FirstName,
			LastName:    data.LastName,
			Email:       data.PrimaryEmail(),
			AuthSubject: data.ID,
		}
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("crear usuario desde webhook: %w", err)
		}
		uc.log.Info().Int64("user_id", user.ID).Msg("usuario creado desde webhook")
	}

	firstName := user.FirstName
	if firstName == "" {
		firstName = "Friend"
	}
	if _, err := uc.email.SendWelcome(ctx, user.Email, firstName); err != nil {
		return user, fmt.Errorf("email de bienvenida: %w", err)
	}

	return user, nil
}
