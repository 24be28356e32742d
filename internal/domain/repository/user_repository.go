package repository

import (
	"context"

	"github.com/jhoicas/recepciones-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para la identidad de acceso (DIP).
// Get* devuelven (nil, nil) cuando el registro no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// Delete es idempotente: borrar un usuario inexistente no es error.
	Delete(ctx context.Context, id string) error
}

// ProfileRepository define el puerto de persistencia para perfiles (nombre y rol).
type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	Update(ctx context.Context, profile *entity.Profile) error
	List(ctx context.Context, limit, offset int) ([]*entity.Profile, error)
	// Delete es idempotente.
	Delete(ctx context.Context, id string) error
}
