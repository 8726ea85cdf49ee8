package entity

import "time"

// User representa un usuario sincronizado desde el proveedor de identidad.
// ExternalID corresponde al subject del token.
type User struct {
	ID         string
	ExternalID string
	Email      string
	Name       string
	ImageURL   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
