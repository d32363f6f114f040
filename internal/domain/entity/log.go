package entity

import "time"

// Log representa un evento de limpieza de silla. Inmutable después de creado:
// la firma se copia del usuario en el momento del alta para que el registro
// quede como constancia aunque el usuario cambie su firma después.
type Log struct {
	ID              int64
	PerformedAt     time.Time
	Chair           string
	ESignature      string
	UserID          int64
	EstablishmentID int64
	Presets         []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LogWithUser es la proyección Log + usuario que lo realizó (join en consultas
// de listado/búsqueda y forma cacheada en logs:<establishmentID>).
type LogWithUser struct {
	Log
	User User `json:"user"`
}
