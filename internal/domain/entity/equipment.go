package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EquipmentStatus estado operativo de un equipo.
type EquipmentStatus string

const (
	EquipmentAvailable   EquipmentStatus = "available"
	EquipmentRented      EquipmentStatus = "rented"
	EquipmentMaintenance EquipmentStatus = "maintenance"
)

// Valid indica si el estado es uno de los tres conocidos.
func (s EquipmentStatus) Valid() bool {
	switch s {
	case EquipmentAvailable, EquipmentRented, EquipmentMaintenance:
		return true
	}
	return false
}

// EquipmentCategory categoría de la flota.
type EquipmentCategory string

const (
	CategoryEarthmoving          EquipmentCategory = "earthmoving"
	CategoryMEWP                 EquipmentCategory = "mewp"
	CategoryMaterialHandling     EquipmentCategory = "material_handling"
	CategoryPowerGeneration      EquipmentCategory = "power_generation"
	CategoryAirCompressors       EquipmentCategory = "air_compressors"
	CategoryLawnGarden           EquipmentCategory = "lawn_garden"
	CategoryCompactionPaving     EquipmentCategory = "compaction_paving"
	CategoryConcreteMasonry      EquipmentCategory = "concrete_masonry"
	CategoryLighting             EquipmentCategory = "lighting"
	CategoryTrucksTransportation EquipmentCategory = "trucks_transportation"
)

// EquipmentCategories lista las categorías válidas en orden de presentación.
var EquipmentCategories = []EquipmentCategory{
	CategoryEarthmoving,
	CategoryMEWP,
	CategoryMaterialHandling,
	CategoryPowerGeneration,
	CategoryAirCompressors,
	CategoryLawnGarden,
	CategoryCompactionPaving,
	CategoryConcreteMasonry,
	CategoryLighting,
	CategoryTrucksTransportation,
}

func (c EquipmentCategory) Valid() bool {
	for _, v := range EquipmentCategories {
		if v == c {
			return true
		}
	}
	return false
}

// Intervalos de servicio por defecto al crear un equipo.
const (
	DefaultServiceIntervalDays  = 30
	DefaultServiceIntervalHours = 250.0
)

// Equipment unidad de la flota. Los umbrales de servicio son opcionales (nil = sin definir).
type Equipment struct {
	ID                   string
	OrganizationID       string
	Name                 string
	Category             EquipmentCategory
	Status               EquipmentStatus
	AssetValue           decimal.Decimal
	TotalHoursUsed       *float64
	LastServiceDate      *time.Time
	LastServiceHours     *float64
	NextServiceDate      *time.Time
	NextServiceHours     *float64
	ServiceIntervalDays  int
	ServiceIntervalHours float64
	Notes                string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (e *Equipment) OwnerID() string { return e.OrganizationID }
