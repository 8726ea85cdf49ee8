package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRentalRequest entrada para alquilar un equipo disponible.
type CreateRentalRequest struct {
	EquipmentID string          `json:"equipment_id" validate:"required"`
	CustomerID  string          `json:"customer_id" validate:"required"`
	StartDate   time.Time       `json:"start_date" validate:"required"`
	EndDate     time.Time       `json:"end_date" validate:"required"`
	DailyRate   decimal.Decimal `json:"daily_rate"`
	Notes       string          `json:"notes"`
}

// MarkReturnedRequest devolución; ReturnDate nil = ahora.
type MarkReturnedRequest struct {
	ReturnDate *time.Time `json:"return_date"`
}

// UpdateRentalRequest actualización parcial sin efectos sobre el equipo.
type UpdateRentalRequest struct {
	EndDate   *time.Time       `json:"end_date"`
	DailyRate *decimal.Decimal `json:"daily_rate"`
	Notes     *string          `json:"notes"`
}

// RentalResponse salida de un alquiler con su estado derivado y nombres resueltos.
type RentalResponse struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organization_id"`
	EquipmentID    string          `json:"equipment_id"`
	CustomerID     string          `json:"customer_id"`
	EquipmentName  string          `json:"equipment_name,omitempty"`
	CustomerName   string          `json:"customer_name,omitempty"`
	StartDate      time.Time       `json:"start_date"`
	EndDate        time.Time       `json:"end_date"`
	ReturnDate     *time.Time      `json:"return_date,omitempty"`
	DailyRate      decimal.Decimal `json:"daily_rate"`
	Status         string          `json:"status"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// RentalStatsResponse indicadores de alquileres.
type RentalStatsResponse struct {
	Total        int             `json:"total"`
	Active       int             `json:"active"`
	Returned     int             `json:"returned"`
	Overdue      int             `json:"overdue"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}
