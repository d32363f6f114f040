package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spatrax/spatrax-api/internal/domain"
	"github.com/spatrax/spatrax-api/internal/domain/entity"
	"github.com/spatrax/spatrax-api/internal/domain/repository"
)

var _ repository.InviteRepository = (*InviteRepo)(nil)

// InviteRepo implementación del puerto InviteRepository sobre PostgreSQL.
type InviteRepo struct {
	pool *pgxpool.Pool
}

// NewInviteRepository construye el adaptador de persistencia para invitaciones.
func NewInviteRepository(pool *pgxpool.Pool) *InviteRepo {
	return &InviteRepo{pool: pool}
}

// Create persiste una nueva invitación (accepted = false).
func (r *InviteRepo) Create(ctx context.Context, inv *entity.Invite) error {
	query := `
		INSERT INTO invites (user_id, establishment_id, invite_email)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query, inv.UserID, inv.EstablishmentID, inv.InviteEmail).
		Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert invite: %w", err)
	}
	return nil
}

// GetByID obtiene una invitación por ID. Devuelve (nil, nil) si no existe.
func (r *InviteRepo) GetByID(ctx context.Context, id int64) (*entity.Invite, error) {
	query := `
		SELECT id, user_id, establishment_id, invite_email, accepted, created_at
		FROM invites WHERE id = $1`
	var inv entity.Invite
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&inv.ID, &inv.UserID, &inv.EstablishmentID, &inv.InviteEmail, &inv.Accepted, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invite by id: %w", err)
	}
	return &inv, nil
}

// MarkAccepted marca la invitación como aceptada (transición de un solo sentido).
func (r *InviteRepo) MarkAccepted(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE invites SET accepted = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("accept invite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
