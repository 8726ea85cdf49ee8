package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
)

func TestParseFleetCSV(t *testing.T) {
	in := "\ufeffName,Category,asset_value,total_hours_used,service_interval_days,notes\n" +
		"Retroexcavadora 420F,earthmoving,\"85,000.00\",1200.5,45,\n" +
		"Generador 60kVA,Power Generation,42000,,,Cabina insonorizada\n" +
		",,,,,\n"

	rows, err := ParseFleetCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0].Request
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "Retroexcavadora 420F", first.Name)
	assert.Equal(t, string(entity.CategoryEarthmoving), first.Category)
	assert.Equal(t, "85000", first.AssetValue.String())
	require.NotNil(t, first.TotalHoursUsed)
	assert.Equal(t, 1200.5, *first.TotalHoursUsed)
	require.NotNil(t, first.ServiceIntervalDays)
	assert.Equal(t, 45, *first.ServiceIntervalDays)
	assert.Nil(t, first.ServiceIntervalHours)

	assert.Equal(t, string(entity.CategoryPowerGeneration), rows[1].Request.Category)
	assert.Equal(t, "Cabina insonorizada", rows[1].Request.Notes)
}

func TestParseFleetCSV_Latin1PuntoYComa(t *testing.T) {
	utf8 := "name;category;asset_value\nCompactadora vibratoria;Compaction Paving;1.250.000,50\n"
	latin1, err := charmap.ISO8859_1.NewEncoder().String(utf8)
	require.NoError(t, err)

	rows, err := ParseFleetCSV(transform.NewReader(strings.NewReader(latin1), charmap.ISO8859_1.NewDecoder()))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Compactadora vibratoria", rows[0].Request.Name)
	assert.Equal(t, string(entity.CategoryCompactionPaving), rows[0].Request.Category)
	assert.Equal(t, "1250000.5", rows[0].Request.AssetValue.String())
}

func TestParseFleetCSV_Errores(t *testing.T) {
	_, err := ParseFleetCSV(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ParseFleetCSV(strings.NewReader("name,asset_value\nGrúa,100\n"))
	assert.ErrorContains(t, err, "category")

	_, err = ParseFleetCSV(strings.NewReader("name,category\nGrúa,cranes\n"))
	assert.ErrorContains(t, err, "línea 2")
}

func TestParseCategory(t *testing.T) {
	tests := map[string]entity.EquipmentCategory{
		"mewp":                    entity.CategoryMEWP,
		"Material Handling":       entity.CategoryMaterialHandling,
		"LAWN & GARDEN":           entity.CategoryLawnGarden,
		"Trucks / Transportation": entity.CategoryTrucksTransportation,
		"concrete-masonry":        entity.CategoryConcreteMasonry,
	}
	for in, want := range tests {
		got, ok := ParseCategory(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseCategory("grúas")
	assert.False(t, ok)
}
