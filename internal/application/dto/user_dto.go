package dto

import "time"

// StoreUserRequest datos del usuario autenticado (el subject viene del token).
type StoreUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"omitempty,max=200"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

// SyncUserRequest evento del proveedor de identidad (webhook).
type SyncUserRequest struct {
	ExternalID string `json:"external_id" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Name       string `json:"name"`
	ImageURL   string `json:"image_url"`
}

// UserResponse salida de un usuario.
type UserResponse struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"external_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name,omitempty"`
	ImageURL   string    `json:"image_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
