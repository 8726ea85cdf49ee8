package entity

import "time"

// Customer cliente que alquila equipos.
type Customer struct {
	ID             string
	OrganizationID string
	Name           string
	Email          string
	Phone          string
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (c *Customer) OwnerID() string { return c.OrganizationID }
