package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/recepciones-api/internal/domain"
	"github.com/jhoicas/recepciones-api/internal/domain/entity"
	"github.com/jhoicas/recepciones-api/internal/domain/repository"
)

var _ repository.UserLocalRepository = (*UserLocalRepo)(nil)

// UserLocalRepo asignaciones usuario ↔ local (tabla user_locals). Usable con pool o tx.
type UserLocalRepo struct {
	q Querier
}

// NewUserLocalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserLocalRepository(q Querier) *UserLocalRepo {
	return &UserLocalRepo{q: q}
}

// ListByUser devuelve las asignaciones del usuario ordenadas por (assigned_at, local_name).
func (r *UserLocalRepo) ListByUser(ctx context.Context, userID string) ([]entity.UserLocal, error) {
	query := `
		SELECT user_id, local_name, assigned_at
		FROM user_locals WHERE user_id = $1
		ORDER BY assigned_at, local_name`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list user locals: %w", err)
	}
	defer rows.Close()
	var list []entity.UserLocal
	for rows.Next() {
		var ul entity.UserLocal
		if err := rows.Scan(&ul.UserID, &ul.LocalName, &ul.AssignedAt); err != nil {
			return nil, fmt.Errorf("scan user local: %w", err)
		}
		list = append(list, ul)
	}
	return list, rows.Err()
}

// InsertMany inserta las asignaciones en un único batch.
func (r *UserLocalRepo) InsertMany(ctx context.Context, assignments []entity.UserLocal) error {
	if len(assignments) == 0 {
		return nil
	}
	query := `
		INSERT INTO user_locals (user_id, local_name, assigned_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, local_name) DO NOTHING`
	batch := &pgx.Batch{}
	for _, ul := range assignments {
		batch.Queue(query, ul.UserID, ul.LocalName, ul.AssignedAt)
	}
	results := r.q.SendBatch(ctx, batch)
	defer results.Close()
	for range assignments {
		if _, err := results.Exec(); err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrLocalNotFound
			}
			return fmt.Errorf("insert user local: %w", err)
		}
	}
	return nil
}

// DeleteByUser elimina todas las asignaciones del usuario. Idempotente.
func (r *UserLocalRepo) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM user_locals WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete user locals: %w", err)
	}
	return nil
}

// ExistsByLocal indica si algún usuario tiene asignado el local.
func (r *UserLocalRepo) ExistsByLocal(ctx context.Context, localName string) (bool, error) {
	return exists(ctx, r.q, `SELECT EXISTS (SELECT 1 FROM user_locals WHERE local_name = $1)`, localName)
}
