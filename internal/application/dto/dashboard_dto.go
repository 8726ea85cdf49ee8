package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardResponse respuesta de GET /api/dashboard: los cuatro bloques de indicadores.
type DashboardResponse struct {
	Equipment   EquipmentStatsResponse   `json:"equipment"`
	Rentals     RentalStatsResponse      `json:"rentals"`
	Inspections InspectionStatsResponse  `json:"inspections"`
	Maintenance MaintenanceStatsResponse `json:"maintenance"`
	GeneratedAt time.Time                `json:"generated_at"`
}

// ── Cola de inspecciones ──────────────────────────────────────────────────────

type PreRentalDueDTO struct {
	RentalID      string    `json:"rental_id"`
	EquipmentID   string    `json:"equipment_id"`
	EquipmentName string    `json:"equipment_name"`
	CustomerName  string    `json:"customer_name"`
	StartDate     time.Time `json:"start_date"`
}

type PostRentalDueDTO struct {
	RentalID      string    `json:"rental_id"`
	EquipmentID   string    `json:"equipment_id"`
	EquipmentName string    `json:"equipment_name"`
	CustomerName  string    `json:"customer_name"`
	ReturnDate    time.Time `json:"return_date"`
}

type RoutineOverdueDTO struct {
	EquipmentID     string    `json:"equipment_id"`
	EquipmentName   string    `json:"equipment_name"`
	NextServiceDate time.Time `json:"next_service_date"`
	DaysOverdue     int       `json:"days_overdue"`
}

type FlaggedInspectionDTO struct {
	InspectionID     string    `json:"inspection_id"`
	EquipmentID      string    `json:"equipment_id"`
	EquipmentName    string    `json:"equipment_name"`
	MaintenanceNotes string    `json:"maintenance_notes,omitempty"`
	InspectedAt      time.Time `json:"inspected_at"`
}

type InspectionQueueResponse struct {
	PreRentalDue          []PreRentalDueDTO      `json:"pre_rental_due"`
	PostRentalDue         []PostRentalDueDTO     `json:"post_rental_due"`
	RoutineOverdue        []RoutineOverdueDTO    `json:"routine_overdue"`
	FlaggedFromInspection []FlaggedInspectionDTO `json:"flagged_from_inspection"`
}

// ── Cola de mantenimiento ─────────────────────────────────────────────────────

type WorkOrderItemDTO struct {
	ID            string           `json:"id"`
	EquipmentID   string           `json:"equipment_id"`
	EquipmentName string           `json:"equipment_name"`
	WorkOrder     string           `json:"work_order"`
	InspectionID  *string          `json:"inspection_id,omitempty"`
	AssignedTo    string           `json:"assigned_to,omitempty"`
	Cost          *decimal.Decimal `json:"cost,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	CompletedAt   *time.Time       `json:"completed_at,omitempty"`
}

type PreventiveDueDTO struct {
	EquipmentID      string     `json:"equipment_id"`
	EquipmentName    string     `json:"equipment_name"`
	Source           string     `json:"source"`
	NextServiceDate  *time.Time `json:"next_service_date,omitempty"`
	NextServiceHours *float64   `json:"next_service_hours,omitempty"`
	CurrentHours     *float64   `json:"current_hours,omitempty"`
}

type MaintenanceQueueResponse struct {
	FlaggedFromInspections []WorkOrderItemDTO `json:"flagged_from_inspections"`
	PreventiveDue          []PreventiveDueDTO `json:"preventive_due"`
	InProgress             []WorkOrderItemDTO `json:"in_progress"`
	RecentlyCompleted      []WorkOrderItemDTO `json:"recently_completed"`
}
