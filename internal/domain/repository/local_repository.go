package repository

import (
	"context"

	"github.com/jhoicas/recepciones-api/internal/domain/entity"
)

// LocalRepository define el puerto de persistencia para Local (DIP).
type LocalRepository interface {
	Create(ctx context.Context, local *entity.Local) error
	GetByName(ctx context.Context, name string) (*entity.Local, error)
	Update(ctx context.Context, local *entity.Local) error
	List(ctx context.Context, limit, offset int) ([]*entity.Local, error)
	Delete(ctx context.Context, name string) error
}

// UserLocalRepository define el puerto de persistencia para las asignaciones usuario ↔ local.
type UserLocalRepository interface {
	// ListByUser devuelve las asignaciones ordenadas por (assigned_at, local_name).
	ListByUser(ctx context.Context, userID string) ([]entity.UserLocal, error)
	InsertMany(ctx context.Context, assignments []entity.UserLocal) error
	// DeleteByUser es idempotente.
	DeleteByUser(ctx context.Context, userID string) error
	ExistsByLocal(ctx context.Context, localName string) (bool, error)
}

// ReceptionRefRepository consultas de existencia sobre los datos de recepción que
// referencian un local por nombre.
type ReceptionRefRepository interface {
	ExistsInReceptions(ctx context.Context, localName string) (bool, error)
	ExistsInCompletedReceptions(ctx context.Context, localName string) (bool, error)
}
