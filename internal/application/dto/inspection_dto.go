package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChecklistResultDTO resultado de un ítem del checklist.
type ChecklistResultDTO struct {
	Item   string `json:"item" validate:"required"`
	Status string `json:"status" validate:"required,oneof=ok needs_attention not_applicable"`
	Notes  string `json:"notes,omitempty"`
}

// CreateInspectionRequest entrada para registrar una inspección.
type CreateInspectionRequest struct {
	EquipmentID         string               `json:"equipment_id" validate:"required"`
	Type                string               `json:"type" validate:"required,oneof=pre_rental post_rental routine"`
	RentalID            *string              `json:"rental_id"`
	ChecklistResults    []ChecklistResultDTO `json:"checklist_results"`
	OverallCondition    string               `json:"overall_condition" validate:"required,oneof=excellent good fair poor damaged"`
	DamageFound         bool                 `json:"damage_found"`
	DamageDescription   string               `json:"damage_description"`
	DamageCost          *decimal.Decimal     `json:"damage_cost"`
	MaintenanceRequired bool                 `json:"maintenance_required"`
	MaintenanceNotes    string               `json:"maintenance_notes"`
	Photos              []string             `json:"photos"`
}

// InspectionResponse salida de una inspección. EquipmentName se llena en los listados.
type InspectionResponse struct {
	ID                  string               `json:"id"`
	OrganizationID      string               `json:"organization_id"`
	EquipmentID         string               `json:"equipment_id"`
	EquipmentName       string               `json:"equipment_name,omitempty"`
	Type                string               `json:"type"`
	RentalID            *string              `json:"rental_id,omitempty"`
	ChecklistResults    []ChecklistResultDTO `json:"checklist_results"`
	OverallCondition    string               `json:"overall_condition"`
	DamageFound         bool                 `json:"damage_found"`
	DamageDescription   string               `json:"damage_description,omitempty"`
	DamageCost          *decimal.Decimal     `json:"damage_cost,omitempty"`
	MaintenanceRequired bool                 `json:"maintenance_required"`
	MaintenanceNotes    string               `json:"maintenance_notes,omitempty"`
	Photos              []string             `json:"photos"`
	InspectorID         string               `json:"inspector_id"`
	InspectedAt         time.Time            `json:"inspected_at"`
	CreatedAt           time.Time            `json:"created_at"`
}

// InspectionDetailResponse inspección con sus referencias resueltas (nil si ya no existen).
type InspectionDetailResponse struct {
	InspectionResponse
	Equipment *EquipmentResponse `json:"equipment"`
	Rental    *RentalResponse    `json:"rental"`
	Inspector *UserResponse      `json:"inspector"`
}

// ChecklistTemplateResponse ítems sugeridos para una inspección nueva.
type ChecklistTemplateResponse struct {
	Items []string `json:"items"`
}

// UploadURLResponse URL de subida de un solo uso para fotos.
type UploadURLResponse struct {
	UploadURL string    `json:"upload_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UploadResponse referencia del archivo subido (se guarda en photos).
type UploadResponse struct {
	StorageID string `json:"storage_id"`
}

// InspectionStatsResponse indicadores de inspecciones.
type InspectionStatsResponse struct {
	Total                 int             `json:"total"`
	PreRental             int             `json:"pre_rental"`
	PostRental            int             `json:"post_rental"`
	Routine               int             `json:"routine"`
	PassedCount           int             `json:"passed_count"`
	NeedsMaintenanceCount int             `json:"needs_maintenance_count"`
	DamageFoundCount      int             `json:"damage_found_count"`
	TotalDamageCost       decimal.Decimal `json:"total_damage_cost"`
}
