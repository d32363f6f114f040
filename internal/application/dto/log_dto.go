package dto

import (
	"time"

	"github.com/spatrax/spatrax-api/internal/domain/entity"
)

// CreateLogRequest alta de un log de limpieza. Un employee solo puede crear
// logs propios (user_id = su propio id).
type CreateLogRequest struct {
	PerformedAt time.Time `json:"performed_at"`
	Chair       int       `json:"chair"`
	UserID      int64     `json:"user_id"`
	Presets     []string  `json:"presets"`
}

// LogResponse proyección de un log con el usuario que lo realizó.
type LogResponse struct {
	ID              int64         `json:"id"`
	PerformedAt     time.Time     `json:"performed_at"`
	Chair           string        `json:"chair"`
	ESignature      string        `json:"esignature,omitempty"`
	UserID          int64         `json:"user_id"`
	EstablishmentID int64         `json:"establishment_id"`
	Presets         []string      `json:"presets"`
	CreatedAt       time.Time     `json:"created_at"`
	User            *UserResponse `json:"user,omitempty"`
}

// ToLogResponse convierte la proyección Log+User a su forma pública.
func ToLogResponse(lw *entity.LogWithUser) *LogResponse {
	if lw == nil {
		return nil
	}
	return &LogResponse{
		ID:              lw.ID,
		PerformedAt:     lw.PerformedAt,
		Chair:           lw.Chair,
		ESignature:      lw.ESignature,
		UserID:          lw.UserID,
		EstablishmentID: lw.EstablishmentID,
		Presets:         lw.Presets,
		CreatedAt:       lw.CreatedAt,
		User:            ToUserResponse(&lw.User),
	}
}
