package dto

import "time"

// CreateLocalRequest entrada para crear un local.
type CreateLocalRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=120"`
	Type    string `json:"type" validate:"required,local_type"`
	Address string `json:"address" validate:"max=300"`
}

// UpdateLocalRequest entrada para actualizar un local. El nombre no se modifica.
type UpdateLocalRequest struct {
	Type    *string `json:"type" validate:"omitempty,local_type"`
	Address *string `json:"address" validate:"omitempty,max=300"`
}

// LocalResponse salida de un local.
type LocalResponse struct {
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocalListResponse lista paginada de locales.
type LocalListResponse struct {
	Items []LocalResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
