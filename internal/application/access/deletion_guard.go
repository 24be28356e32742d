package access

import (
	"context"

	"github.com/jhoicas/recepciones-api/internal/domain"
	"github.com/jhoicas/recepciones-api/internal/domain/repository"
)

// LocalDeletionCheck resultado de la verificación previa a eliminar un local.
type LocalDeletionCheck struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// LocalDeletionGuard impide eliminar un local mientras esté referenciado por nombre.
type LocalDeletionGuard struct {
	assignments repository.UserLocalRepository
	receptions  repository.ReceptionRefRepository
}

// NewLocalDeletionGuard construye el guardián con los puertos de asignaciones y recepciones.
func NewLocalDeletionGuard(assignments repository.UserLocalRepository, receptions repository.ReceptionRefRepository) *LocalDeletionGuard {
	return &LocalDeletionGuard{assignments: assignments, receptions: receptions}
}

// CanDeleteLocal comprueba, en orden, asignaciones a usuarios, datos de recepción y
// recepciones completadas. Se detiene en la primera referencia encontrada.
func (g *LocalDeletionGuard) CanDeleteLocal(ctx context.Context, localName string) (LocalDeletionCheck, error) {
	checks := []struct {
		reason string
		exists func(context.Context, string) (bool, error)
	}{
		{domain.ReasonAssignedToUsers, g.assignments.ExistsByLocal},
		{domain.ReasonInReceptionData, g.receptions.ExistsInReceptions},
		{domain.ReasonInCompletedReceptions, g.receptions.ExistsInCompletedReceptions},
	}
	for _, c := range checks {
		found, err := c.exists(ctx, localName)
		if err != nil {
			return LocalDeletionCheck{}, domain.NewLookupError("referencias del local", err)
		}
		if found {
			return LocalDeletionCheck{Allowed: false, Reason: c.reason}, nil
		}
	}
	return LocalDeletionCheck{Allowed: true}, nil
}
