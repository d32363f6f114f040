package dto

import (
	"time"

	"github.com/spatrax/spatrax-api/internal/domain/entity"
)

// CreateInviteRequest alta de una invitación (manager/admin) para un miembro
// del equipo ya creado en el store.
type CreateInviteRequest struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

// SendInviteEmailRequest envío del email de invitación vía el colaborador
// de email transaccional.
type SendInviteEmailRequest struct {
	InvitedFirstName string `json:"invited_first_name"`
	InvitedLastName  string `json:"invited_last_name"`
	InvitedEmail     string `json:"invited_email"`
}

// InviteResponse proyección pública de una invitación.
type InviteResponse struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	EstablishmentID int64     `json:"establishment_id"`
	InviteEmail     string    `json:"invite_email"`
	Accepted        bool      `json:"accepted"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToInviteResponse convierte la entidad a su proyección pública.
func ToInviteResponse(inv *entity.Invite) *InviteResponse {
	if inv == nil {
		return nil
	}
	return &InviteResponse{
		ID:              inv.ID,
		UserID:          inv.UserID,
		EstablishmentID: inv.EstablishmentID,
		InviteEmail:     inv.InviteEmail,
		Accepted:        inv.Accepted,
		CreatedAt:       inv.CreatedAt,
	}
}
