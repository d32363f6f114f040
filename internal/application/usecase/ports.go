package usecase

import (
	"context"
	"time"

	"github.com/spatrax/spatrax-api/internal/domain/entity"
)

// InviteEmail datos de sustitución del email de invitación.
type InviteEmail struct {
	ToEmail      string
	InvitedName  string
	InviterName  string
	InviterEmail string
	TeamName     string
	InviteID     int64
}

// EmailSender puerto del colaborador de email transaccional (Resend).
// Devuelve el id del mensaje del proveedor. Fire-and-forget: sin reintentos.
type EmailSender interface {
	SendWelcome(ctx context.Context, toEmail, firstName string) (string, error)
	SendInvite(ctx context.Context, in InviteEmail) (string, error)
}

// LogSheetGenerator puerto del generador de la hoja de logs en PDF.
// La implementación vive en infrastructure (Maroto).
type LogSheetGenerator interface {
	GenerateLogSheet(
		ctx context.Context,
		establishment *entity.Establishment,
		logs []*entity.LogWithUser,
		dateStart, dateEnd time.Time,
	) ([]byte, error)
}
