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

var _ repository.EstablishmentRepository = (*EstablishmentRepo)(nil)

const establishmentColumns = `id, business_name, address, city, state, postal, country, chairs, premium, stripe_subscription_id, presets, created_at, updated_at`

// EstablishmentRepo implementación del puerto EstablishmentRepository sobre PostgreSQL.
type EstablishmentRepo struct {
	pool *pgxpool.Pool
}

// NewEstablishmentRepository construye el adaptador de persistencia para establecimientos.
func NewEstablishmentRepository(pool *pgxpool.Pool) *EstablishmentRepo {
	return &EstablishmentRepo{pool: pool}
}

func scanEstablishment(row pgx.Row) (*entity.Establishment, error) {
	var e entity.Establishment
	err := row.Scan(
		&e.ID, &e.BusinessName, &e.Address, &e.City, &e.State, &e.Postal, &e.Country,
		&e.Chairs, &e.Premium, &e.StripeSubscriptionID, &e.Presets, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create persiste un nuevo establecimiento. Los presets por defecto los aplica
// la capa de aplicación; aquí se insertan tal cual llegan.
func (r *EstablishmentRepo) Create(ctx context.Context, e *entity.Establishment) error {
	query := `
		INSERT INTO establishments (business_name, address, city, state, postal, country, chairs, premium, stripe_subscription_id, presets)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		e.BusinessName, e.Address, e.City, e.State, e.Postal, e.Country,
		e.Chairs, e.Premium, e.StripeSubscriptionID, e.Presets,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert establishment: %w", err)
	}
	return nil
}

// GetByID obtiene un establecimiento por ID. Devuelve (nil, nil) si no existe.
func (r *EstablishmentRepo) GetByID(ctx context.Context, id int64) (*entity.Establishment, error) {
	query := `SELECT ` + establishmentColumns + ` FROM establishments WHERE id = $1`
	e, err := scanEstablishment(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get establishment by id: %w", err)
	}
	return e, nil
}

// Update actualiza un establecimiento y refresca UpdatedAt.
func (r *EstablishmentRepo) Update(ctx context.Context, e *entity.Establishment) error {
	query := `
		UPDATE establishments
		SET business_name = $2, address = $3, city = $4, state = $5, postal = $6, country = $7,
		    chairs = $8, premium = $9, stripe_subscription_id = $10, presets = $11, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		e.ID, e.BusinessName, e.Address, e.City, e.State, e.Postal, e.Country,
		e.Chairs, e.Premium, e.StripeSubscriptionID, e.Presets,
	).Scan(&e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update establishment: %w", err)
	}
	return nil
}
