package fleet_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/fleet"
)

var now = time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC)

func ptrF(v float64) *float64        { return &v }
func ptrT(v time.Time) *time.Time    { return &v }
func ptrS(v string) *string          { return &v }
func ptrD(v string) *decimal.Decimal { d := decimal.RequireFromString(v); return &d }

// ──────────────────────────────────────────────────────────────────────────────
// Umbrales de servicio
// ──────────────────────────────────────────────────────────────────────────────

func TestIsTimeOverdue(t *testing.T) {
	e := &entity.Equipment{}
	assert.False(t, fleet.IsTimeOverdue(e, now), "sin fecha de servicio no hay vencimiento")

	e.NextServiceDate = ptrT(now)
	assert.True(t, fleet.IsTimeOverdue(e, now), "vence exactamente en now")

	e.NextServiceDate = ptrT(now.Add(time.Millisecond))
	assert.False(t, fleet.IsTimeOverdue(e, now))
}

func TestIsHoursOverdue_RequiereAmbosValores(t *testing.T) {
	e := &entity.Equipment{TotalHoursUsed: ptrF(1_000_000)}
	assert.False(t, fleet.IsHoursOverdue(e), "sin NextServiceHours nunca vence")

	e = &entity.Equipment{NextServiceHours: ptrF(0)}
	assert.False(t, fleet.IsHoursOverdue(e), "sin TotalHoursUsed nunca vence")

	e = &entity.Equipment{NextServiceHours: ptrF(250), TotalHoursUsed: ptrF(250)}
	assert.True(t, fleet.IsHoursOverdue(e))

	e.TotalHoursUsed = ptrF(249.9)
	assert.False(t, fleet.IsHoursOverdue(e))
}

func TestMaintenanceDueList_ExcluyeAlquilados(t *testing.T) {
	overdue := now.Add(-fleet.Day)
	list := []*entity.Equipment{
		{ID: "a", Status: entity.EquipmentAvailable, NextServiceDate: &overdue},
		{ID: "b", Status: entity.EquipmentRented, NextServiceDate: &overdue},
		{ID: "c", Status: entity.EquipmentMaintenance, NextServiceHours: ptrF(10), TotalHoursUsed: ptrF(20)},
		{ID: "d", Status: entity.EquipmentAvailable},
	}
	due := fleet.MaintenanceDueList(list, now)
	require.Len(t, due, 2)
	assert.Equal(t, "a", due[0].Equipment.ID)
	assert.True(t, due[0].TimeOverdue)
	assert.False(t, due[0].HoursOverdue)
	assert.Equal(t, "c", due[1].Equipment.ID)
	assert.False(t, due[1].TimeOverdue)
	assert.True(t, due[1].HoursOverdue)
}

// ──────────────────────────────────────────────────────────────────────────────
// Estado derivado del alquiler e ingresos
// ──────────────────────────────────────────────────────────────────────────────

func TestRentalStatus(t *testing.T) {
	r := &entity.Rental{StartDate: now.Add(-3 * fleet.Day), EndDate: now.Add(-fleet.Day)}
	assert.Equal(t, entity.RentalOverdue, fleet.RentalStatus(r, now))

	r.EndDate = now
	assert.Equal(t, entity.RentalActive, fleet.RentalStatus(r, now), "now == endDate sigue activo")

	r.ReturnDate = ptrT(now.Add(10 * fleet.Day))
	r.EndDate = now.Add(-fleet.Day)
	assert.Equal(t, entity.RentalReturned, fleet.RentalStatus(r, now), "returned sin importar fechas")
}

func TestBillableDays(t *testing.T) {
	start := now
	cases := []struct {
		name   string
		ret    time.Time
		expect int64
	}{
		{"mismo instante cobra un día", start, 1},
		{"devuelto antes del inicio cobra un día", start.Add(-time.Hour), 1},
		{"una hora cobra un día", start.Add(time.Hour), 1},
		{"exactamente dos días", start.Add(2 * fleet.Day), 2},
		{"dos días y un milisegundo", start.Add(2*fleet.Day + time.Millisecond), 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := &entity.Rental{StartDate: start, ReturnDate: ptrT(tc.ret)}
			assert.Equal(t, tc.expect, fleet.BillableDays(r))
		})
	}

	assert.Equal(t, int64(0), fleet.BillableDays(&entity.Rental{StartDate: start}))
}

func TestRentalRevenue(t *testing.T) {
	r := &entity.Rental{
		StartDate:  now,
		ReturnDate: ptrT(now.Add(36 * time.Hour)),
		DailyRate:  decimal.RequireFromString("150.50"),
	}
	assert.True(t, decimal.RequireFromString("301").Equal(fleet.RentalRevenue(r)))

	open := &entity.Rental{StartDate: now, DailyRate: decimal.NewFromInt(100)}
	assert.True(t, fleet.RentalRevenue(open).IsZero(), "alquiler abierto no causa ingreso")
}

// ──────────────────────────────────────────────────────────────────────────────
// Programación de servicio
// ──────────────────────────────────────────────────────────────────────────────

func TestNextService_ConHorasDelServicio(t *testing.T) {
	e := &entity.Equipment{TotalHoursUsed: ptrF(90), ServiceIntervalDays: 45, ServiceIntervalHours: 100}
	s := fleet.NextService(e, ptrF(120), now)

	assert.Equal(t, 120.0, s.LastServiceHours)
	assert.Equal(t, 220.0, s.NextServiceHours)
	assert.True(t, s.NextServiceDate.Equal(now.Add(45*fleet.Day)))
	assert.True(t, s.LastServiceDate.Equal(now))

	s.Apply(e)
	require.NotNil(t, e.NextServiceHours)
	assert.Equal(t, 220.0, *e.NextServiceHours)
	assert.Equal(t, 120.0, *e.LastServiceHours)
}

func TestNextService_FallbackHorasEquipoYCero(t *testing.T) {
	e := &entity.Equipment{TotalHoursUsed: ptrF(80), ServiceIntervalDays: 30, ServiceIntervalHours: 250}
	assert.Equal(t, 80.0, fleet.NextService(e, nil, now).LastServiceHours)

	e.TotalHoursUsed = nil
	s := fleet.NextService(e, nil, now)
	assert.Equal(t, 0.0, s.LastServiceHours)
	assert.Equal(t, 250.0, s.NextServiceHours)
}

func TestNextService_IntervalosSinDefinirUsanDefecto(t *testing.T) {
	s := fleet.NextService(&entity.Equipment{}, ptrF(10), now)
	assert.True(t, s.NextServiceDate.Equal(now.Add(30*fleet.Day)))
	assert.Equal(t, 260.0, s.NextServiceHours)
}

func TestHasOtherOpenRecord(t *testing.T) {
	records := []*entity.MaintenanceRecord{
		{ID: "m1", EquipmentID: "e1", Status: entity.MaintenancePending},
		{ID: "m2", EquipmentID: "e1", Status: entity.MaintenanceCompleted},
		{ID: "m3", EquipmentID: "e2", Status: entity.MaintenanceInProgress},
	}
	assert.False(t, fleet.HasOtherOpenRecord(records, "e1", "m1"))
	assert.True(t, fleet.HasOtherOpenRecord(records, "e1", "m2"))
	assert.False(t, fleet.HasOtherOpenRecord(records, "e3", ""))
}
