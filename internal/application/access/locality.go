package access

import (
	"context"

	"github.com/jhoicas/recepciones-api/internal/domain"
	"github.com/jhoicas/recepciones-api/internal/domain/entity"
	"github.com/jhoicas/recepciones-api/internal/domain/repository"
)

// LocalityResolver determina los locales de un usuario y su local principal.
// Solo lectura y sin estado propio.
type LocalityResolver struct {
	repo repository.UserLocalRepository
}

// NewLocalityResolver construye el resolvedor sobre el puerto de asignaciones.
func NewLocalityResolver(repo repository.UserLocalRepository) *LocalityResolver {
	return &LocalityResolver{repo: repo}
}

// Locals devuelve las asignaciones del usuario ordenadas por (assigned_at, local_name).
// Un fallo del almacén se devuelve como *domain.LookupError.
func (r *LocalityResolver) Locals(ctx context.Context, userID string) ([]entity.UserLocal, error) {
	list, err := r.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewLookupError("locales del usuario", err)
	}
	entity.SortAssignments(list)
	return list, nil
}

// PrimaryLocal devuelve el local principal del usuario o nil si no tiene locales.
// Un fallo del almacén nunca se traduce en nil: se devuelve *domain.LookupError.
func (r *LocalityResolver) PrimaryLocal(ctx context.Context, userID string) (*string, error) {
	list, err := r.Locals(ctx, userID)
	if err != nil {
		return nil, err
	}
	return entity.PrimaryLocal(list), nil
}
