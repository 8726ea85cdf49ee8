package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RentalStatus estado derivado de un alquiler. Nunca se persiste.
type RentalStatus string

const (
	RentalActive   RentalStatus = "active"
	RentalOverdue  RentalStatus = "overdue"
	RentalReturned RentalStatus = "returned"
)

// Rental alquiler de un equipo a un cliente. ReturnDate nil = aún no devuelto.
type Rental struct {
	ID             string
	OrganizationID string
	EquipmentID    string
	CustomerID     string
	StartDate      time.Time
	EndDate        time.Time
	ReturnDate     *time.Time
	DailyRate      decimal.Decimal
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (r *Rental) OwnerID() string { return r.OrganizationID }

// Returned indica si el alquiler ya tiene fecha de devolución.
func (r *Rental) Returned() bool { return r.ReturnDate != nil }
