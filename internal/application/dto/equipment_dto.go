package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEquipmentRequest entrada para registrar un equipo. Status vacío = available;
// intervalos nil = 30 días / 250 horas.
type CreateEquipmentRequest struct {
	Name                 string          `json:"name" validate:"required,min=1,max=200"`
	Category             string          `json:"category" validate:"required"`
	Status               string          `json:"status" validate:"omitempty,oneof=available rented maintenance"`
	AssetValue           decimal.Decimal `json:"asset_value"`
	TotalHoursUsed       *float64        `json:"total_hours_used"`
	ServiceIntervalDays  *int            `json:"service_interval_days"`
	ServiceIntervalHours *float64        `json:"service_interval_hours"`
	Notes                string          `json:"notes"`
}

// UpdateEquipmentRequest actualización parcial: solo cambian los campos presentes.
type UpdateEquipmentRequest struct {
	Name                 *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category             *string          `json:"category"`
	Status               *string          `json:"status" validate:"omitempty,oneof=available rented maintenance"`
	AssetValue           *decimal.Decimal `json:"asset_value"`
	TotalHoursUsed       *float64         `json:"total_hours_used"`
	ServiceIntervalDays  *int             `json:"service_interval_days"`
	ServiceIntervalHours *float64         `json:"service_interval_hours"`
	Notes                *string          `json:"notes"`
}

// UpdateEquipmentStatusRequest cambio manual de estado.
type UpdateEquipmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available rented maintenance"`
}

// UpdateHoursRequest lectura del horómetro (sobrescribe sin condiciones).
type UpdateHoursRequest struct {
	TotalHoursUsed float64 `json:"total_hours_used" validate:"min=0"`
}

// EquipmentFilter filtros opcionales del listado.
type EquipmentFilter struct {
	Query    string `query:"q"`
	Category string `query:"category"`
}

// EquipmentResponse salida de un equipo.
type EquipmentResponse struct {
	ID                   string          `json:"id"`
	OrganizationID       string          `json:"organization_id"`
	Name                 string          `json:"name"`
	Category             string          `json:"category"`
	Status               string          `json:"status"`
	AssetValue           decimal.Decimal `json:"asset_value"`
	TotalHoursUsed       *float64        `json:"total_hours_used,omitempty"`
	LastServiceDate      *time.Time      `json:"last_service_date,omitempty"`
	LastServiceHours     *float64        `json:"last_service_hours,omitempty"`
	NextServiceDate      *time.Time      `json:"next_service_date,omitempty"`
	NextServiceHours     *float64        `json:"next_service_hours,omitempty"`
	ServiceIntervalDays  int             `json:"service_interval_days"`
	ServiceIntervalHours float64         `json:"service_interval_hours"`
	Notes                string          `json:"notes,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// MaintenanceDueResponse equipo con servicio vencido y los motivos.
type MaintenanceDueResponse struct {
	Equipment    EquipmentResponse `json:"equipment"`
	TimeOverdue  bool              `json:"time_overdue"`
	HoursOverdue bool              `json:"hours_overdue"`
}

// EquipmentStatsResponse indicadores de la flota.
type EquipmentStatsResponse struct {
	Total           int             `json:"total"`
	Available       int             `json:"available"`
	Rented          int             `json:"rented"`
	Maintenance     int             `json:"maintenance"`
	TotalAssetValue decimal.Decimal `json:"total_asset_value"`
	UtilizationRate float64         `json:"utilization_rate"`
}
