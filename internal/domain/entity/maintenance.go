package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type MaintenanceSource string

const (
	SourceInspectionFlagged MaintenanceSource = "inspection_flagged"
	SourcePreventiveTime    MaintenanceSource = "preventive_time"
	SourcePreventiveHours   MaintenanceSource = "preventive_hours"
)

func (s MaintenanceSource) Valid() bool {
	return s == SourceInspectionFlagged || s == SourcePreventiveTime || s == SourcePreventiveHours
}

// MaintenanceStatus pending -> in_progress -> completed.
type MaintenanceStatus string

const (
	MaintenancePending    MaintenanceStatus = "pending"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
)

func (s MaintenanceStatus) Valid() bool {
	return s == MaintenancePending || s == MaintenanceInProgress || s == MaintenanceCompleted
}

// DefaultWorkOrder orden de trabajo cuando la inspección no trae notas.
const DefaultWorkOrder = "Maintenance required from inspection"

// MaintenanceRecord orden de trabajo de mantenimiento sobre un equipo.
type MaintenanceRecord struct {
	ID               string
	OrganizationID   string
	EquipmentID      string
	Source           MaintenanceSource
	InspectionID     *string
	WorkOrder        string
	Status           MaintenanceStatus
	PartsUsed        string
	LaborDescription string
	Cost             *decimal.Decimal
	HoursAtService   *float64
	AssignedTo       string
	Notes            string
	CompletedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (m *MaintenanceRecord) OwnerID() string { return m.OrganizationID }

// Open indica si el registro retiene el equipo en mantenimiento.
func (m *MaintenanceRecord) Open() bool {
	return m.Status == MaintenancePending || m.Status == MaintenanceInProgress
}
