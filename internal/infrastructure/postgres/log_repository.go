package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spatrax/spatrax-api/internal/domain/entity"
	"github.com/spatrax/spatrax-api/internal/domain/repository"
)

var _ repository.LogRepository = (*LogRepo)(nil)

// LogRepo implementación del puerto LogRepository sobre PostgreSQL.
type LogRepo struct {
	pool *pgxpool.Pool
}

// NewLogRepository construye el adaptador de persistencia para logs de limpieza.
func NewLogRepository(pool *pgxpool.Pool) *LogRepo {
	return &LogRepo{pool: pool}
}

// Create persiste un nuevo log. Los logs son inmutables: no hay Update.
func (r *LogRepo) Create(ctx context.Context, l *entity.Log) error {
	query := `
		INSERT INTO logs (performed_at, chair, esignature, user_id, establishment_id, presets)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		l.PerformedAt, l.Chair, l.ESignature, l.UserID, l.EstablishmentID, l.Presets,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert log: %w", err)
	}
	return nil
}

const logWithUserColumns = `
	l.id, l.performed_at, l.chair, l.esignature, l.user_id, l.establishment_id, l.presets, l.created_at, l.updated_at,
	u.id, u.first_name, u.last_name, u.email, u.esignature, u.role, u.default_chair, u.establishment_id, u.auth_subject, u.created_at, u.updated_at`

func scanLogWithUser(rows pgx.Rows) (*entity.LogWithUser, error) {
	var lw entity.LogWithUser
	err := rows.Scan(
		&lw.ID, &lw.PerformedAt, &lw.Chair, &lw.ESignature, &lw.UserID, &lw.EstablishmentID,
		&lw.Presets, &lw.CreatedAt, &lw.UpdatedAt,
		&lw.User.ID, &lw.User.FirstName, &lw.User.LastName, &lw.User.Email, &lw.User.ESignature,
		&lw.User.Role, &lw.User.DefaultChair, &lw.User.EstablishmentID, &lw.User.AuthSubject,
		&lw.User.CreatedAt, &lw.User.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lw, nil
}

func (r *LogRepo) queryLogs(ctx context.Context, query string, args ...any) ([]*entity.LogWithUser, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.LogWithUser
	for rows.Next() {
		lw, err := scanLogWithUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		list = append(list, lw)
	}
	return list, rows.Err()
}

// ListRecent lista los últimos logs del establecimiento (join con el usuario),
// por performed_at descendente, limitado a limit filas.
func (r *LogRepo) ListRecent(ctx context.Context, establishmentID int64, limit int) ([]*entity.LogWithUser, error) {
	query := `
		SELECT ` + logWithUserColumns + `
		FROM logs l
		INNER JOIN users u ON u.id = l.user_id
		WHERE l.establishment_id = $1
		ORDER BY l.performed_at DESC
		LIMIT $2`
	return r.queryLogs(ctx, query, establishmentID, limit)
}

// Search busca logs por rango de fechas y opcionalmente por técnico,
// por performed_at descendente.
func (r *LogRepo) Search(ctx context.Context, search repository.LogSearch) ([]*entity.LogWithUser, error) {
	if search.UserID != nil {
		query := `
			SELECT ` + logWithUserColumns + `
			FROM logs l
			INNER JOIN users u ON u.id = l.user_id
			WHERE l.establishment_id = $1 AND l.user_id = $2
			  AND l.performed_at >= $3 AND l.performed_at <= $4
			ORDER BY l.performed_at DESC`
		return r.queryLogs(ctx, query, search.EstablishmentID, *search.UserID, search.DateStart, search.DateEnd)
	}
	query := `
		SELECT ` + logWithUserColumns + `
		FROM logs l
		INNER JOIN users u ON u.id = l.user_id
		WHERE l.establishment_id = $1
		  AND l.performed_at >= $2 AND l.performed_at <= $3
		ORDER BY l.performed_at DESC`
	return r.queryLogs(ctx, query, search.EstablishmentID, search.DateStart, search.DateEnd)
}
