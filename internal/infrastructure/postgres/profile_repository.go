package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/recepciones-api/internal/domain"
	"github.com/jhoicas/recepciones-api/internal/domain/entity"
	"github.com/jhoicas/recepciones-api/internal/domain/rbac"
	"github.com/jhoicas/recepciones-api/internal/domain/repository"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo perfiles de usuario (nombre y rol). El rol puede ser NULL.
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

// nullableRole RoleNone se guarda como NULL.
func nullableRole(r rbac.Role) *string {
	if r == rbac.RoleNone {
		return nil
	}
	s := r.String()
	return &s
}

type profileScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row profileScanner) (*entity.Profile, error) {
	var p entity.Profile
	var role *string
	if err := row.Scan(&p.ID, &p.FullName, &role, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if role != nil {
		p.Role = rbac.ParseRole(*role)
	}
	return &p, nil
}

// Create persiste un perfil.
func (r *ProfileRepo) Create(ctx context.Context, p *entity.Profile) error {
	query := `
		INSERT INTO profiles (id, full_name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, p.ID, p.FullName, nullableRole(p.Role), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// GetByID obtiene un perfil por ID de usuario.
func (r *ProfileRepo) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	query := `SELECT id, full_name, role, created_at, updated_at FROM profiles WHERE id = $1`
	p, err := scanProfile(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// Update actualiza nombre y rol.
func (r *ProfileRepo) Update(ctx context.Context, p *entity.Profile) error {
	query := `UPDATE profiles SET full_name = $2, role = $3, updated_at = $4 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, p.ID, p.FullName, nullableRole(p.Role), p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// List lista perfiles con paginación, por nombre.
func (r *ProfileRepo) List(ctx context.Context, limit, offset int) ([]*entity.Profile, error) {
	query := `
		SELECT id, full_name, role, created_at, updated_at
		FROM profiles ORDER BY full_name, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina el perfil. Idempotente.
func (r *ProfileRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
