package repository

import (
	"context"
	"time"

	"github.com/spatrax/spatrax-api/internal/domain/entity"
)

// LogSearch filtros de búsqueda de logs. UserID nil = todos los técnicos.
// El rango [DateStart, DateEnd] es inclusivo en ambos extremos.
type LogSearch struct {
	EstablishmentID int64
	UserID          *int64
	DateStart       time.Time
	DateEnd         time.Time
}

// LogRepository define el puerto de persistencia para Log (DIP).
// Los listados devuelven el join con el usuario que realizó la limpieza,
// ordenado por performed_at descendente.
type LogRepository interface {
	Create(ctx context.Context, log *entity.Log) error
	ListRecent(ctx context.Context, establishmentID int64, limit int) ([]*entity.LogWithUser, error)
	Search(ctx context.Context, search LogSearch) ([]*entity.LogWithUser, error)
}
