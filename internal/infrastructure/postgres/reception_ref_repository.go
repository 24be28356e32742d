package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/recepciones-api/internal/domain/repository"
)

var _ repository.ReceptionRefRepository = (*ReceptionRefRepo)(nil)

// ReceptionRefRepo consultas de existencia sobre receptions y completed_receptions.
// Ambas tablas referencian el local por nombre, sin clave foránea.
type ReceptionRefRepo struct {
	q Querier
}

// NewReceptionRefRepository construye el adaptador.
func NewReceptionRefRepository(q Querier) *ReceptionRefRepo {
	return &ReceptionRefRepo{q: q}
}

// ExistsInReceptions indica si hay datos de recepción para el local.
func (r *ReceptionRefRepo) ExistsInReceptions(ctx context.Context, localName string) (bool, error) {
	return exists(ctx, r.q, `SELECT EXISTS (SELECT 1 FROM receptions WHERE local_name = $1)`, localName)
}

// ExistsInCompletedReceptions indica si hay recepciones completadas para el local.
func (r *ReceptionRefRepo) ExistsInCompletedReceptions(ctx context.Context, localName string) (bool, error) {
	return exists(ctx, r.q, `SELECT EXISTS (SELECT 1 FROM completed_receptions WHERE local_name = $1)`, localName)
}

func exists(ctx context.Context, q Querier, query string, args ...any) (bool, error) {
	var ok bool
	if err := q.QueryRow(ctx, query, args...).Scan(&ok); err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}
	return ok, nil
}
