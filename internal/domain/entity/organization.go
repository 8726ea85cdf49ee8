package entity

import "time"

// Organization representa un tenant del sistema. ExternalID es el id de organización
// que entrega el proveedor de identidad (claim org_id del token).
type Organization struct {
	ID         string
	ExternalID string
	Name       string
	Slug       string
	ImageURL   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
