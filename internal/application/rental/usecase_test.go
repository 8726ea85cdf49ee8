package rental_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/application/rental"
	"github.com/jhoicas/Alquiler-api/internal/application/tenant"
	"github.com/jhoicas/Alquiler-api/internal/domain"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/fleet"
	"github.com/jhoicas/Alquiler-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var now = time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC)

type fixture struct {
	ctx      context.Context
	store    *memory.Store
	uc       *rental.UseCase
	id       tenant.Identity
	org      *entity.Organization
	customer *entity.Customer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	org := &entity.Organization{ID: "org-1", ExternalID: "ext-org-1", Name: "Alquileres Andinos"}
	require.NoError(t, store.Organizations().Create(ctx, org))
	customer := &entity.Customer{ID: "cus-1", OrganizationID: org.ID, Name: "Constructora Sol", CreatedAt: now}
	require.NoError(t, store.Customers().Create(ctx, customer))

	resolver := tenant.NewResolver(store.Organizations(), store.Users())
	uc := rental.NewUseCase(
		rental.Repos{Equipment: store.Equipment(), Customers: store.Customers(), Rentals: store.Rentals()},
		store, resolver, func() time.Time { return now }, zerolog.Nop(),
	)
	return &fixture{
		ctx:      ctx,
		store:    store,
		uc:       uc,
		id:       tenant.Identity{Subject: "user_1", OrgID: org.ExternalID},
		org:      org,
		customer: customer,
	}
}

func (f *fixture) equipment(t *testing.T, id string, status entity.EquipmentStatus) *entity.Equipment {
	t.Helper()
	e := &entity.Equipment{
		ID:             id,
		OrganizationID: f.org.ID,
		Name:           "Excavadora " + id,
		Category:       entity.CategoryEarthmoving,
		Status:         status,
		CreatedAt:      now,
	}
	require.NoError(t, f.store.Equipment().Create(f.ctx, e))
	return e
}

func (f *fixture) equipmentStatus(t *testing.T, id string) entity.EquipmentStatus {
	t.Helper()
	e, err := f.store.Equipment().GetByID(f.ctx, id)
	require.NoError(t, err)
	require.NotNil(t, e)
	return e.Status
}

func (f *fixture) request(equipmentID string) dto.CreateRentalRequest {
	return dto.CreateRentalRequest{
		EquipmentID: equipmentID,
		CustomerID:  f.customer.ID,
		StartDate:   now,
		EndDate:     now.Add(3 * fleet.Day),
		DailyRate:   decimal.NewFromInt(150),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de alquiler
// ──────────────────────────────────────────────────────────────────────────────

func TestRental_CicloCompleto(t *testing.T) {
	f := newFixture(t)
	f.equipment(t, "eq-1", entity.EquipmentAvailable)

	created, err := f.uc.Create(f.ctx, f.id, f.request("eq-1"))
	require.NoError(t, err)
	assert.Equal(t, string(entity.RentalActive), created.Status)
	assert.Equal(t, "Excavadora eq-1", created.EquipmentName)
	assert.Equal(t, "Constructora Sol", created.CustomerName)
	assert.Equal(t, entity.EquipmentRented, f.equipmentStatus(t, "eq-1"))

	_, err = f.uc.Create(f.ctx, f.id, f.request("eq-1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEquipmentUnavailable)
	var unavailable *domain.EquipmentUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, "rented", unavailable.Status)

	returned, err := f.uc.MarkReturned(f.ctx, f.id, created.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, string(entity.RentalReturned), returned.Status)
	require.NotNil(t, returned.ReturnDate)
	assert.True(t, returned.ReturnDate.Equal(now))
	assert.Equal(t, entity.EquipmentAvailable, f.equipmentStatus(t, "eq-1"))
}

func TestRental_DobleDevolucionFallaSinCambios(t *testing.T) {
	f := newFixture(t)
	f.equipment(t, "eq-1", entity.EquipmentAvailable)
	created, err := f.uc.Create(f.ctx, f.id, f.request("eq-1"))
	require.NoError(t, err)

	first := now.Add(2 * fleet.Day)
	_, err = f.uc.MarkReturned(f.ctx, f.id, created.ID, &first)
	require.NoError(t, err)

	// Otro alquiler sobre el equipo liberado: una segunda devolución no debe liberarlo.
	second, err := f.uc.Create(f.ctx, f.id, f.request("eq-1"))
	require.NoError(t, err)

	later := now.Add(5 * fleet.Day)
	_, err = f.uc.MarkReturned(f.ctx, f.id, created.ID, &later)
	assert.ErrorIs(t, err, domain.ErrAlreadyReturned)

	stored, err := f.store.Rentals().GetByID(f.ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, stored.ReturnDate.Equal(first))
	assert.Equal(t, entity.EquipmentRented, f.equipmentStatus(t, "eq-1"))

	got, err := f.uc.GetByID(f.ctx, f.id, second.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.RentalActive), got.Status)
}

func TestRental_VencidoHastaDevolver(t *testing.T) {
	f := newFixture(t)
	f.equipment(t, "eq-1", entity.EquipmentAvailable)
	in := f.request("eq-1")
	in.StartDate = now.Add(-4 * fleet.Day)
	in.EndDate = now.Add(-1 * fleet.Day)
	created, err := f.uc.Create(f.ctx, f.id, in)
	require.NoError(t, err)
	assert.Equal(t, string(entity.RentalOverdue), created.Status)

	returned, err := f.uc.MarkReturned(f.ctx, f.id, created.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, string(entity.RentalReturned), returned.Status)

	stats, err := f.uc.Stats(f.ctx, f.id)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Returned)
	assert.Equal(t, 0, stats.Overdue)
	// 4 días facturables a 150.
	assert.True(t, decimal.NewFromInt(600).Equal(stats.TotalRevenue), stats.TotalRevenue.String())
}

func TestRental_EquipoEnMantenimientoNoSeAlquila(t *testing.T) {
	f := newFixture(t)
	f.equipment(t, "eq-1", entity.EquipmentMaintenance)

	_, err := f.uc.Create(f.ctx, f.id, f.request("eq-1"))
	assert.ErrorIs(t, err, domain.ErrEquipmentUnavailable)
	assert.Contains(t, err.Error(), "maintenance")

	list, err := f.uc.GetAll(f.ctx, f.id)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRental_EliminarActivoLiberaEquipo(t *testing.T) {
	f := newFixture(t)
	f.equipment(t, "eq-1", entity.EquipmentAvailable)
	created, err := f.uc.Create(f.ctx, f.id, f.request("eq-1"))
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(f.ctx, f.id, created.ID))
	assert.Equal(t, entity.EquipmentAvailable, f.equipmentStatus(t, "eq-1"))

	got, err := f.uc.GetByID(f.ctx, f.id, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRental_ActualizarNoCambiaEquipo(t *testing.T) {
	f := newFixture(t)
	f.equipment(t, "eq-1", entity.EquipmentAvailable)
	created, err := f.uc.Create(f.ctx, f.id, f.request("eq-1"))
	require.NoError(t, err)

	notes := "entregar en obra"
	rate := decimal.NewFromInt(175)
	updated, err := f.uc.Update(f.ctx, f.id, created.ID, dto.UpdateRentalRequest{Notes: &notes, DailyRate: &rate})
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)
	assert.True(t, rate.Equal(updated.DailyRate))
	assert.Equal(t, entity.EquipmentRented, f.equipmentStatus(t, "eq-1"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Organización y aislamiento
// ──────────────────────────────────────────────────────────────────────────────

func TestRental_EscriturasSinIdentidad(t *testing.T) {
	f := newFixture(t)
	f.equipment(t, "eq-1", entity.EquipmentAvailable)

	_, err := f.uc.Create(f.ctx, tenant.Identity{}, f.request("eq-1"))
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)

	_, err = f.uc.Create(f.ctx, tenant.Identity{Subject: "user_1", OrgID: "desconocida"}, f.request("eq-1"))
	assert.ErrorIs(t, err, domain.ErrOrganizationNotFound)

	assert.Equal(t, entity.EquipmentAvailable, f.equipmentStatus(t, "eq-1"))
}

func TestRental_LecturasSinOrganizacionVacias(t *testing.T) {
	f := newFixture(t)
	f.equipment(t, "eq-1", entity.EquipmentAvailable)
	_, err := f.uc.Create(f.ctx, f.id, f.request("eq-1"))
	require.NoError(t, err)

	list, err := f.uc.GetAll(f.ctx, tenant.Identity{})
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	stats, err := f.uc.Stats(f.ctx, tenant.Identity{OrgID: "desconocida"})
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
}

func TestRental_OtraOrganizacionEsNotFound(t *testing.T) {
	f := newFixture(t)
	f.equipment(t, "eq-1", entity.EquipmentAvailable)
	created, err := f.uc.Create(f.ctx, f.id, f.request("eq-1"))
	require.NoError(t, err)

	other := &entity.Organization{ID: "org-2", ExternalID: "ext-org-2", Name: "Otra"}
	require.NoError(t, f.store.Organizations().Create(f.ctx, other))
	intruder := tenant.Identity{Subject: "user_2", OrgID: other.ExternalID}

	_, err = f.uc.MarkReturned(f.ctx, intruder, created.ID, nil)
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "alquiler", nf.Entity)

	got, err := f.uc.GetByID(f.ctx, intruder, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Cliente ajeno: tampoco se puede alquilar con él.
	foreign := &entity.Customer{ID: "cus-2", OrganizationID: other.ID, Name: "Ajeno"}
	require.NoError(t, f.store.Customers().Create(f.ctx, foreign))
	f.equipment(t, "eq-2", entity.EquipmentAvailable)
	in := f.request("eq-2")
	in.CustomerID = foreign.ID
	_, err = f.uc.Create(f.ctx, f.id, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, entity.EquipmentAvailable, f.equipmentStatus(t, "eq-2"))
}

func TestRental_NombresDesconocidos(t *testing.T) {
	f := newFixture(t)
	f.equipment(t, "eq-1", entity.EquipmentAvailable)
	created, err := f.uc.Create(f.ctx, f.id, f.request("eq-1"))
	require.NoError(t, err)
	require.NoError(t, f.store.Equipment().Delete(f.ctx, "eq-1"))
	require.NoError(t, f.store.Customers().Delete(f.ctx, f.customer.ID))

	list, err := f.uc.GetAll(f.ctx, f.id)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, fleet.UnknownEquipment, list[0].EquipmentName)
	assert.Equal(t, fleet.UnknownCustomer, list[0].CustomerName)
}
