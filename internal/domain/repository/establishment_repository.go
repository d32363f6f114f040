package repository

import (
	"context"

	"github.com/spatrax/spatrax-api/internal/domain/entity"
)

// EstablishmentRepository define el puerto de persistencia para Establishment (DIP).
// La implementación vive en infrastructure.
type EstablishmentRepository interface {
	Create(ctx context.Context, establishment *entity.Establishment) error
	GetByID(ctx context.Context, id int64) (*entity.Establishment, error)
	Update(ctx context.Context, establishment *entity.Establishment) error
}
