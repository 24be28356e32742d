package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8"`
	FullName string   `json:"full_name" validate:"required,min=1,max=200"`
	Role     string   `json:"role" validate:"required,role"`
	Locals   []string `json:"locals" validate:"omitempty,dive,required,max=120"`
}

// UpdateUserRequest entrada para actualizar perfil y estado. Campos nil no se modifican.
type UpdateUserRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=1,max=200"`
	Role     *string `json:"role" validate:"omitempty,role"`
	Status   *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// AssignLocalsRequest reemplaza por completo los locales de un usuario.
type AssignLocalsRequest struct {
	Locals []string `json:"locals" validate:"dive,required,max=120"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email,omitempty"`
	FullName     string    `json:"full_name"`
	Role         *string   `json:"role"`
	Status       string    `json:"status,omitempty"`
	PrimaryLocal *string   `json:"primary_local"`
	Locals       []string  `json:"locals"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// UserLocalsResponse locales asignados a un usuario.
type UserLocalsResponse struct {
	UserID       string   `json:"user_id"`
	PrimaryLocal *string  `json:"primary_local"`
	Locals       []string `json:"locals"`
}

// AssignableRolesResponse roles que el actor puede otorgar.
type AssignableRolesResponse struct {
	Role  string   `json:"role"`
	Roles []string `json:"roles"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
