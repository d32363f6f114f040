package repository

import (
	"context"

	"github.com/spatrax/spatrax-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Create y Update rellenan ID/CreatedAt/UpdatedAt desde la fila devuelta.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByAuthSubject(ctx context.Context, subject string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	ListByEstablishment(ctx context.Context, establishmentID int64) ([]*entity.User, error)
}
