package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Alquiler-api/internal/application/ports"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
)

func TestWorkOrderGenerator_Generate(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC)
	cost := decimal.NewFromInt(1250000)
	hours := 512.5
	inspID := "insp-1"
	doc := ports.WorkOrderDocument{
		Organization: &entity.Organization{ID: "org-1", Name: "Alquileres Andinos"},
		Equipment:    &entity.Equipment{ID: "eq-1", Name: "Retroexcavadora 420F", Category: entity.CategoryEarthmoving, TotalHoursUsed: &hours},
		Record: &entity.MaintenanceRecord{
			ID: "rec-1", EquipmentID: "eq-1", Source: entity.SourceInspectionFlagged, InspectionID: &inspID,
			WorkOrder: "Cambiar manguera hidráulica", Status: entity.MaintenanceCompleted,
			PartsUsed: "Manguera 3/4", Cost: &cost, HoursAtService: &hours, AssignedTo: "Taller norte",
			CompletedAt: &now, CreatedAt: now.AddDate(0, 0, -2),
		},
		Inspection: &entity.Inspection{ID: inspID, Type: entity.InspectionPostRental, OverallCondition: entity.ConditionPoor, InspectedAt: now.AddDate(0, 0, -2)},
	}

	out, err := NewWorkOrderGenerator().Generate(doc)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestWorkOrderGenerator_DocumentoIncompleto(t *testing.T) {
	_, err := NewWorkOrderGenerator().Generate(ports.WorkOrderDocument{})
	assert.Error(t, err)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "25.000", formatMoney("25000"))
	assert.Equal(t, "1.000.000", formatMoney("1000000"))
	assert.Equal(t, "-1.500", formatMoney("-1500"))
	assert.Equal(t, "999", formatMoney("999"))
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Material Handling", categoryLabel(entity.CategoryMaterialHandling))
}
