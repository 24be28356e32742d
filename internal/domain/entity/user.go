package entity

import (
	"time"

	"github.com/jhoicas/recepciones-api/internal/domain/rbac"
)

// Estados de la identidad de acceso.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User identidad de acceso (credenciales). El rol vive en Profile.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile datos de negocio del usuario: nombre y rol (nullable).
type Profile struct {
	ID        string // mismo ID que User
	FullName  string
	Role      rbac.Role // RoleNone si la columna es NULL
	CreatedAt time.Time
	UpdatedAt time.Time
}
