package repository

import (
	"context"

	"github.com/spatrax/spatrax-api/internal/domain/entity"
)

// InviteRepository define el puerto de persistencia para Invite (DIP).
type InviteRepository interface {
	Create(ctx context.Context, invite *entity.Invite) error
	GetByID(ctx context.Context, id int64) (*entity.Invite, error)
	MarkAccepted(ctx context.Context, id int64) error
}
