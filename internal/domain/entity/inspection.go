package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type InspectionType string

const (
	InspectionPreRental  InspectionType = "pre_rental"
	InspectionPostRental InspectionType = "post_rental"
	InspectionRoutine    InspectionType = "routine"
)

func (t InspectionType) Valid() bool {
	return t == InspectionPreRental || t == InspectionPostRental || t == InspectionRoutine
}

type ChecklistStatus string

const (
	ChecklistOK             ChecklistStatus = "ok"
	ChecklistNeedsAttention ChecklistStatus = "needs_attention"
	ChecklistNotApplicable  ChecklistStatus = "not_applicable"
)

func (s ChecklistStatus) Valid() bool {
	switch s {
	case ChecklistOK, ChecklistNeedsAttention, ChecklistNotApplicable:
		return true
	}
	return false
}

type OverallCondition string

const (
	ConditionExcellent OverallCondition = "excellent"
	ConditionGood      OverallCondition = "good"
	ConditionFair      OverallCondition = "fair"
	ConditionPoor      OverallCondition = "poor"
	ConditionDamaged   OverallCondition = "damaged"
)

func (c OverallCondition) Valid() bool {
	switch c {
	case ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor, ConditionDamaged:
		return true
	}
	return false
}

// Passed: condición excelente o buena.
func (c OverallCondition) Passed() bool {
	return c == ConditionExcellent || c == ConditionGood
}

// DefaultChecklistItems ítems sugeridos para una inspección nueva.
var DefaultChecklistItems = []string{
	"Tires/Tracks",
	"Hydraulics",
	"Engine/Power",
	"Body/Frame",
	"Safety Features",
	"Fluids",
	"Controls",
	"Attachments",
}

// ChecklistResult resultado de un ítem del checklist.
type ChecklistResult struct {
	Item   string          `json:"item"`
	Status ChecklistStatus `json:"status"`
	Notes  string          `json:"notes,omitempty"`
}

// Inspection registro inmutable de una inspección de equipo.
// Photos guarda las referencias devueltas por el blob store, sin interpretar.
type Inspection struct {
	ID                  string
	OrganizationID      string
	EquipmentID         string
	Type                InspectionType
	RentalID            *string
	ChecklistResults    []ChecklistResult
	OverallCondition    OverallCondition
	DamageFound         bool
	DamageDescription   string
	DamageCost          *decimal.Decimal
	MaintenanceRequired bool
	MaintenanceNotes    string
	Photos              []string
	InspectorID         string
	InspectedAt         time.Time
	CreatedAt           time.Time
}

func (i *Inspection) OwnerID() string { return i.OrganizationID }
