package usecase

import (
	"context"

	"github.com/spatrax/spatrax-api/internal/application/dto"
	"github.com/spatrax/spatrax-api/internal/domain"
	"github.com/spatrax/spatrax-api/internal/domain/entity"
	"github.com/spatrax/spatrax-api/internal/domain/repository"
)

// InviteUseCase invitaciones de onboarding: alta por manager/admin y envío del
// email con el link de sign-up. La lectura es pública (la consume la página de
// registro) y no pasa por caché.
type InviteUseCase struct {
	users          *UserUseCase
	establishments *EstablishmentUseCase
	inviteRepo     repository.InviteRepository
	email          EmailSender
}

// NewInviteUseCase construye el caso de uso con sus colaboradores.
func NewInviteUseCase(
	users *UserUseCase,
	establishments *EstablishmentUseCase,
	inviteRepo repository.InviteRepository,
	email EmailSender,
) *InviteUseCase {
	return &InviteUseCase{users: users, establishments: establishments, inviteRepo: inviteRepo, email: email}
}

// Get devuelve una invitación por id (lookup directo al store, sin caché).
func (uc *InviteUseCase) Get(ctx context.Context, id int64) (*entity.Invite, error) {
	inv, err := uc.inviteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// Create da de alta una invitación para un miembro del equipo ya existente.
// Requiere caller manager/admin con establecimiento; el tenant se hereda del caller.
func (uc *InviteUseCase) Create(ctx context.Context, authSubject string, in dto.CreateInviteRequest) (*entity.Invite, error) {
	user, err := uc.users.GetCurrent(ctx, authSubject)
	if err != nil {
		return nil, err
	}
	if user.EstablishmentID == nil || !user.IsElevated() {
		return nil, domain.ErrForbidden
	}

	inv := &entity.Invite{
		UserID:          in.UserID,
		EstablishmentID: *user.EstablishmentID,
		InviteEmail:     in.Email,
	}
	if err := uc.inviteRepo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// SendEmail envía el email de invitación vía el colaborador transaccional.
// Devuelve el id de mensaje del proveedor.
func (uc *InviteUseCase) SendEmail(ctx context.Context, authSubject string, inviteID int64, in dto.SendInviteEmailRequest) (string, error) {
	user, err := uc.users.GetCurrent(ctx, authSubject)
	if err != nil {
		return "", err
	}
	if user.EstablishmentID == nil || !user.IsElevated() {
		return "", domain.ErrForbidden
	}

	establishment, err := uc.establishments.GetForUser(ctx, user)
	if err != nil {
		return "", err
	}

	invitedName := "User"
	if in.InvitedFirstName != "" {
		invitedName = in.InvitedFirstName + " " + in.InvitedLastName
	}
	inviterName := "Admin"
	if user.FirstName != "" {
		inviterName = user.FullName()
	}

	return uc.email.SendInvite(ctx, InviteEmail{
		ToEmail:      in.InvitedEmail,
		InvitedName:  invitedName,
		InviterName:  inviterName,
		InviterEmail: user.Email,
		TeamName:     establishment.BusinessName,
		InviteID:     inviteID,
	})
}
