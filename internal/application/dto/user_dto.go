package dto

import (
	"time"

	"github.com/spatrax/spatrax-api/internal/domain/entity"
)

// UserResponse proyección pública de un usuario.
type UserResponse struct {
	ID              int64     `json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	ESignature      string    `json:"esignature,omitempty"`
	Role            string    `json:"role"`
	DefaultChair    string    `json:"default_chair,omitempty"`
	EstablishmentID *int64    `json:"establishment_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToUserResponse convierte la entidad a su proyección pública.
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		ESignature:      u.ESignature,
		Role:            u.Role,
		DefaultChair:    u.DefaultChair,
		EstablishmentID: u.EstablishmentID,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

// UpdateSignatureRequest alta/cambio de firma del propio usuario o de un
// miembro del equipo.
type UpdateSignatureRequest struct {
	ESignature string `json:"esignature"`
}
