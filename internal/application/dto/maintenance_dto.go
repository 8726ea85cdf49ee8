package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaintenanceRequest abre una orden de trabajo.
type CreateMaintenanceRequest struct {
	EquipmentID  string  `json:"equipment_id" validate:"required"`
	Source       string  `json:"source" validate:"required,oneof=inspection_flagged preventive_time preventive_hours"`
	InspectionID *string `json:"inspection_id"`
	WorkOrder    string  `json:"work_order" validate:"required"`
	AssignedTo   string  `json:"assigned_to"`
	Notes        string  `json:"notes"`
}

// CreateFromInspectionRequest abre una orden a partir de una inspección marcada.
type CreateFromInspectionRequest struct {
	InspectionID string  `json:"inspection_id" validate:"required"`
	WorkOrder    *string `json:"work_order"`
}

// CompleteMaintenanceRequest cierre de la orden; los campos presentes se guardan.
type CompleteMaintenanceRequest struct {
	PartsUsed        *string          `json:"parts_used"`
	LaborDescription *string          `json:"labor_description"`
	Cost             *decimal.Decimal `json:"cost"`
	HoursAtService   *float64         `json:"hours_at_service"`
	Notes            *string          `json:"notes"`
}

// UpdateMaintenanceRequest actualización libre, sin efectos sobre el equipo.
type UpdateMaintenanceRequest struct {
	WorkOrder        *string          `json:"work_order"`
	Status           *string          `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	PartsUsed        *string          `json:"parts_used"`
	LaborDescription *string          `json:"labor_description"`
	Cost             *decimal.Decimal `json:"cost"`
	HoursAtService   *float64         `json:"hours_at_service"`
	AssignedTo       *string          `json:"assigned_to"`
	Notes            *string          `json:"notes"`
}

// MaintenanceResponse salida de una orden de trabajo.
type MaintenanceResponse struct {
	ID               string           `json:"id"`
	OrganizationID   string           `json:"organization_id"`
	EquipmentID      string           `json:"equipment_id"`
	EquipmentName    string           `json:"equipment_name,omitempty"`
	Source           string           `json:"source"`
	InspectionID     *string          `json:"inspection_id,omitempty"`
	WorkOrder        string           `json:"work_order"`
	Status           string           `json:"status"`
	PartsUsed        string           `json:"parts_used,omitempty"`
	LaborDescription string           `json:"labor_description,omitempty"`
	Cost             *decimal.Decimal `json:"cost,omitempty"`
	HoursAtService   *float64         `json:"hours_at_service,omitempty"`
	AssignedTo       string           `json:"assigned_to,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	CompletedAt      *time.Time       `json:"completed_at,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// MaintenanceDetailResponse orden con equipo e inspección de origen.
type MaintenanceDetailResponse struct {
	MaintenanceResponse
	Equipment  *EquipmentResponse  `json:"equipment"`
	Inspection *InspectionResponse `json:"inspection"`
}

// MaintenanceStatsResponse indicadores de mantenimiento. AvgCompletionTime en horas.
type MaintenanceStatsResponse struct {
	Total             int             `json:"total"`
	Pending           int             `json:"pending"`
	InProgress        int             `json:"in_progress"`
	Completed         int             `json:"completed"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	AvgCompletionTime float64         `json:"avg_completion_time"`
}
