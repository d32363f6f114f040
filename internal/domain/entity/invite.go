package entity

import "time"

// Invite registro de onboarding pendiente. Ciclo de vida de un solo paso:
// created → accepted, disparado por el webhook del proveedor de identidad
// cuando el invitado completa el sign-up.
type Invite struct {
	ID              int64
	UserID          int64
	EstablishmentID int64
	InviteEmail     string
	Accepted        bool
	CreatedAt       time.Time
}
