package dto

import "time"

// StoreOrganizationRequest sincroniza la organización activa del proveedor de identidad.
type StoreOrganizationRequest struct {
	ExternalID string `json:"external_id" validate:"required"`
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Slug       string `json:"slug"`
	ImageURL   string `json:"image_url" validate:"omitempty,url"`
}

// OrganizationResponse salida de una organización.
type OrganizationResponse struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"external_id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug,omitempty"`
	ImageURL   string    `json:"image_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IDResponse respuesta mínima de una creación.
type IDResponse struct {
	ID string `json:"id"`
}
