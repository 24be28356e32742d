package usecase

import (
	"context"

	"github.com/jhoicas/recepciones-api/internal/domain/repository"
)

// UserLocalsTxRunner ejecuta fn dentro de una transacción de BD con el repositorio de
// asignaciones atado a esa tx. El reemplazo borrar-todo-e-insertar queda atómico.
type UserLocalsTxRunner interface {
	RunUserLocals(ctx context.Context, fn func(repo repository.UserLocalRepository) error) error
}
