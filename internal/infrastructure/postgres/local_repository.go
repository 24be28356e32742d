package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/recepciones-api/internal/domain"
	"github.com/jhoicas/recepciones-api/internal/domain/entity"
	"github.com/jhoicas/recepciones-api/internal/domain/repository"
)

var _ repository.LocalRepository = (*LocalRepo)(nil)

// LocalRepo implementación del puerto LocalRepository sobre PostgreSQL.
type LocalRepo struct {
	q Querier
}

// NewLocalRepository construye el adaptador de persistencia para locales.
func NewLocalRepository(q Querier) *LocalRepo {
	return &LocalRepo{q: q}
}

// Create persiste un nuevo local. El nombre es la clave.
func (r *LocalRepo) Create(ctx context.Context, local *entity.Local) error {
	query := `
		INSERT INTO locals (name, type, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		local.Name, local.Type, local.Address, local.CreatedAt, local.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert local: %w", err)
	}
	return nil
}

// GetByName obtiene un local por nombre.
func (r *LocalRepo) GetByName(ctx context.Context, name string) (*entity.Local, error) {
	query := `
		SELECT name, type, address, created_at, updated_at
		FROM locals WHERE name = $1`
	var l entity.Local
	err := r.q.QueryRow(ctx, query, name).Scan(
		&l.Name, &l.Type, &l.Address, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get local: %w", err)
	}
	return &l, nil
}

// Update actualiza tipo y dirección de un local.
func (r *LocalRepo) Update(ctx context.Context, local *entity.Local) error {
	query := `
		UPDATE locals SET type = $2, address = $3, updated_at = $4
		WHERE name = $1`
	cmd, err := r.q.Exec(ctx, query, local.Name, local.Type, local.Address, local.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update local: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrLocalNotFound
	}
	return nil
}

// List lista locales por nombre con paginación.
func (r *LocalRepo) List(ctx context.Context, limit, offset int) ([]*entity.Local, error) {
	query := `
		SELECT name, type, address, created_at, updated_at
		FROM locals ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list locals: %w", err)
	}
	defer rows.Close()
	var list []*entity.Local
	for rows.Next() {
		var l entity.Local
		if err := rows.Scan(&l.Name, &l.Type, &l.Address, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan local: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Delete elimina un local por nombre.
func (r *LocalRepo) Delete(ctx context.Context, name string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM locals WHERE name = $1`, name)
	if err != nil {
		if isForeignKeyViolation(err) {
			// carrera con una asignación creada después del chequeo del guardián
			return &domain.LocalInUseError{Local: name, Reason: domain.ReasonAssignedToUsers}
		}
		return fmt.Errorf("delete local: %w", err)
	}
	return nil
}
