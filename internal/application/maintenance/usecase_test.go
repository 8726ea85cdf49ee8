package maintenance_test

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/application/maintenance"
	"github.com/jhoicas/Alquiler-api/internal/application/ports"
	"github.com/jhoicas/Alquiler-api/internal/application/tenant"
	"github.com/jhoicas/Alquiler-api/internal/domain"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Mocks
// ──────────────────────────────────────────────────────────────────────────────

type pdfMock struct{ mock.Mock }

func (m *pdfMock) Generate(doc ports.WorkOrderDocument) ([]byte, error) {
	args := m.Called(doc)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

type blobMock struct{ mock.Mock }

func (m *blobMock) GenerateUploadURL(ctx context.Context) (*ports.UploadTicket, error) {
	args := m.Called(ctx)
	t, _ := args.Get(0).(*ports.UploadTicket)
	return t, args.Error(1)
}

func (m *blobMock) Upload(ctx context.Context, token, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, token, contentType, body)
	return args.String(0), args.Error(1)
}

func (m *blobMock) Open(ctx context.Context, storageID string) (io.ReadCloser, string, error) {
	args := m.Called(ctx, storageID)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.String(1), args.Error(2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var now = time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC)

type fixture struct {
	ctx         context.Context
	store       *memory.Store
	pdf         *pdfMock
	blobs       *blobMock
	maintenance *maintenance.UseCase
	inspections *maintenance.InspectionUseCase
	id          tenant.Identity
	org         *entity.Organization
	user        *entity.User
	current     *time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	org := &entity.Organization{ID: "org-1", ExternalID: "ext-org-1", Name: "Alquileres Andinos"}
	require.NoError(t, store.Organizations().Create(ctx, org))
	user := &entity.User{ID: "usr-1", ExternalID: "user_1", Email: "tecnico@andinos.co", Name: "Ana Técnica"}
	require.NoError(t, store.Users().Create(ctx, user))

	repos := maintenance.Repos{
		Equipment:   store.Equipment(),
		Rentals:     store.Rentals(),
		Inspections: store.Inspections(),
		Maintenance: store.Maintenance(),
		Users:       store.Users(),
	}
	resolver := tenant.NewResolver(store.Organizations(), store.Users())
	current := now
	clock := ports.Clock(func() time.Time { return current })
	pdf := &pdfMock{}
	blobs := &blobMock{}
	return &fixture{
		ctx:         ctx,
		store:       store,
		pdf:         pdf,
		blobs:       blobs,
		maintenance: maintenance.NewUseCase(repos, store, pdf, resolver, clock, zerolog.Nop()),
		inspections: maintenance.NewInspectionUseCase(repos, blobs, resolver, clock, zerolog.Nop()),
		id:          tenant.Identity{Subject: user.ExternalID, OrgID: org.ExternalID},
		org:         org,
		user:        user,
		current:     &current,
	}
}

// setNow mueve el reloj de los casos de uso.
func (f *fixture) setNow(at time.Time) { *f.current = at }

func (f *fixture) equipment(t *testing.T, id string, hours *float64) *entity.Equipment {
	t.Helper()
	e := &entity.Equipment{
		ID:                   id,
		OrganizationID:       f.org.ID,
		Name:                 "Manipulador " + id,
		Category:             entity.CategoryMaterialHandling,
		Status:               entity.EquipmentAvailable,
		TotalHoursUsed:       hours,
		ServiceIntervalDays:  entity.DefaultServiceIntervalDays,
		ServiceIntervalHours: entity.DefaultServiceIntervalHours,
		CreatedAt:            now,
	}
	require.NoError(t, f.store.Equipment().Create(f.ctx, e))
	return e
}

func (f *fixture) reload(t *testing.T, id string) *entity.Equipment {
	t.Helper()
	e, err := f.store.Equipment().GetByID(f.ctx, id)
	require.NoError(t, err)
	require.NotNil(t, e)
	return e
}

func (f *fixture) open(t *testing.T, equipmentID, workOrder string) *dto.MaintenanceResponse {
	t.Helper()
	m, err := f.maintenance.Create(f.ctx, f.id, dto.CreateMaintenanceRequest{
		EquipmentID: equipmentID,
		Source:      string(entity.SourcePreventiveTime),
		WorkOrder:   workOrder,
	})
	require.NoError(t, err)
	return m
}

func (f *fixture) inspect(t *testing.T, equipmentID string, required bool, notes string) *dto.InspectionResponse {
	t.Helper()
	i, err := f.inspections.Create(f.ctx, f.id, dto.CreateInspectionRequest{
		EquipmentID:         equipmentID,
		Type:                string(entity.InspectionRoutine),
		OverallCondition:    "fair",
		MaintenanceRequired: required,
		MaintenanceNotes:    notes,
		ChecklistResults: []dto.ChecklistResultDTO{
			{Item: "Hydraulics", Status: "needs_attention", Notes: "fuga en cilindro"},
		},
	})
	require.NoError(t, err)
	return i
}

func ptrF(v float64) *float64 { return &v }
func ptrS(v string) *string   { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes de trabajo
// ──────────────────────────────────────────────────────────────────────────────

func TestMaintenance_CrearPasaEquipoAMantenimiento(t *testing.T) {
	f := newFixture(t)
	f.equipment(t, "eq-1", nil)

	m := f.open(t, "eq-1", "Cambio de aceite")
	assert.Equal(t, string(entity.MaintenancePending), m.Status)
	assert.Equal(t, "Manipulador eq-1", m.EquipmentName)
	assert.Equal(t, entity.EquipmentMaintenance, f.reload(t, "eq-1").Status)

	started, err := f.maintenance.MarkInProgress(f.ctx, f.id, m.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.MaintenanceInProgress), started.Status)
	assert.Equal(t, entity.EquipmentMaintenance, f.reload(t, "eq-1").Status)
}

func TestMaintenance_EquipoSeLiberaConLaUltimaOrden(t *testing.T) {
	f := newFixture(t)
	f.equipment(t, "eq-1", nil)
	first := f.open(t, "eq-1", "Frenos")
	second := f.open(t, "eq-1", "Llantas")

	_, err := f.maintenance.MarkCompleted(f.ctx, f.id, first.ID, dto.CompleteMaintenanceRequest{})
	require.NoError(t, err)
	assert.Equal(t, entity.EquipmentMaintenance, f.reload(t, "eq-1").Status)

	_, err = f.maintenance.MarkInProgress(f.ctx, f.id, second.ID)
	require.NoError(t, err)
	_, err = f.maintenance.MarkCompleted(f.ctx, f.id, second.ID, dto.CompleteMaintenanceRequest{})
	require.NoError(t, err)
	assert.Equal(t, entity.EquipmentAvailable, f.reload(t, "eq-1").Status)
}

func TestMaintenance_CompletarRecalculaProgramacion(t *testing.T) {
	f := newFixture(t)
	f.equipment(t, "eq-1", ptrF(480))
	m := f.open(t, "eq-1", "Servicio 500h")

	cost := decimal.RequireFromString("320.50")
	done, err := f.maintenance.MarkCompleted(f.ctx, f.id, m.ID, dto.CompleteMaintenanceRequest{
		PartsUsed:      ptrS("filtro de aceite"),
		Cost:           &cost,
		HoursAtService: ptrF(500),
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.MaintenanceCompleted), done.Status)
	require.NotNil(t, done.CompletedAt)
	assert.True(t, done.CompletedAt.Equal(now))
	assert.Equal(t, "filtro de aceite", done.PartsUsed)

	e := f.reload(t, "eq-1")
	require.NotNil(t, e.NextServiceHours)
	assert.Equal(t, 750.0, *e.NextServiceHours)
	assert.Equal(t, 500.0, *e.LastServiceHours)
	require.NotNil(t, e.NextServiceDate)
	assert.True(t, e.NextServiceDate.Equal(now.Add(30*24*time.Hour)))
	assert.True(t, e.LastServiceDate.Equal(now))
}

func TestMaintenance_RecompletarRecalcula(t *testing.T) {
	f := newFixture(t)
	f.equipment(t, "eq-1", ptrF(480))
	m := f.open(t, "eq-1", "Servicio 500h")
	_, err := f.maintenance.MarkCompleted(f.ctx, f.id, m.ID, dto.CompleteMaintenanceRequest{HoursAtService: ptrF(500)})
	require.NoError(t, err)

	later := now.Add(48 * time.Hour)
	f.setNow(later)
	again, err := f.maintenance.MarkCompleted(f.ctx, f.id, m.ID, dto.CompleteMaintenanceRequest{HoursAtService: ptrF(510)})
	require.NoError(t, err)
	assert.Equal(t, string(entity.MaintenanceCompleted), again.Status)
	require.NotNil(t, again.CompletedAt)
	assert.True(t, again.CompletedAt.Equal(later))

	e := f.reload(t, "eq-1")
	assert.Equal(t, 510.0, *e.LastServiceHours)
	assert.Equal(t, 760.0, *e.NextServiceHours)
	assert.True(t, e.NextServiceDate.Equal(later.Add(30*24*time.Hour)))
	assert.Equal(t, entity.EquipmentAvailable, e.Status)
}

func TestMaintenance_HorasGuardadasNoReemplazanHorometro(t *testing.T) {
	f := newFixture(t)
	f.equipment(t, "eq-1", ptrF(480))
	m := f.open(t, "eq-1", "Revisión")
	_, err := f.maintenance.Update(f.ctx, f.id, m.ID, dto.UpdateMaintenanceRequest{HoursAtService: ptrF(100)})
	require.NoError(t, err)

	_, err = f.maintenance.MarkCompleted(f.ctx, f.id, m.ID, dto.CompleteMaintenanceRequest{})
	require.NoError(t, err)

	e := f.reload(t, "eq-1")
	assert.Equal(t, 480.0, *e.LastServiceHours)
	assert.Equal(t, 730.0, *e.NextServiceHours)
}

func TestMaintenance_CompletarSinEquipoEsNotFound(t *testing.T) {
	f := newFixture(t)
	f.equipment(t, "eq-1", nil)
	m := f.open(t, "eq-1", "Revisión")
	require.NoError(t, f.store.Equipment().Delete(f.ctx, "eq-1"))

	_, err := f.maintenance.MarkCompleted(f.ctx, f.id, m.ID, dto.CompleteMaintenanceRequest{})
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "equipo", nf.Entity)

	got, err := f.store.Maintenance().GetByID(f.ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MaintenancePending, got.Status)
	assert.Nil(t, got.CompletedAt)
}

func TestMaintenance_EnProgresoReafirmaMantenimiento(t *testing.T) {
	f := newFixture(t)
	f.equipment(t, "eq-1", nil)
	m := f.open(t, "eq-1", "Frenos")

	e := f.reload(t, "eq-1")
	e.Status = entity.EquipmentAvailable
	require.NoError(t, f.store.Equipment().Update(f.ctx, e))

	_, err := f.maintenance.MarkInProgress(f.ctx, f.id, m.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EquipmentMaintenance, f.reload(t, "eq-1").Status)

	_, err = f.maintenance.MarkCompleted(f.ctx, f.id, m.ID, dto.CompleteMaintenanceRequest{})
	require.NoError(t, err)
	_, err = f.maintenance.MarkInProgress(f.ctx, f.id, m.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.EquipmentAvailable, f.reload(t, "eq-1").Status)
}

func TestMaintenance_CierresConcurrentesSeSerializan(t *testing.T) {
	f := newFixture(t)
	const units = 10
	var records []string
	for i := 0; i < units; i++ {
		id := fmt.Sprintf("eq-%d", i)
		f.equipment(t, id, ptrF(100))
		records = append(records, f.open(t, id, "Frenos").ID, f.open(t, id, "Llantas").ID)
	}
	f.equipment(t, "eq-abierto", nil)
	openA := f.open(t, "eq-abierto", "A").ID
	openB := f.open(t, "eq-abierto", "B").ID
	f.open(t, "eq-abierto", "C")
	records = append(records, openA, openB)

	var wg sync.WaitGroup
	errs := make(chan error, len(records))
	for _, id := range records {
		wg.Add(1)
		go func(recordID string) {
			defer wg.Done()
			_, err := f.maintenance.MarkCompleted(f.ctx, f.id, recordID, dto.CompleteMaintenanceRequest{})
			errs <- err
		}(id)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	for i := 0; i < units; i++ {
		e := f.reload(t, fmt.Sprintf("eq-%d", i))
		assert.Equal(t, entity.EquipmentAvailable, e.Status, e.ID)
		assert.Equal(t, 350.0, *e.NextServiceHours, e.ID)
	}
	assert.Equal(t, entity.EquipmentMaintenance, f.reload(t, "eq-abierto").Status)
}

func TestMaintenance_SinHorasUsaHorometro(t *testing.T) {
	f := newFixture(t)
	f.equipment(t, "eq-1", ptrF(120))
	m := f.open(t, "eq-1", "Revisión")

	_, err := f.maintenance.MarkCompleted(f.ctx, f.id, m.ID, dto.CompleteMaintenanceRequest{})
	require.NoError(t, err)
	assert.Equal(t, 370.0, *f.reload(t, "eq-1").NextServiceHours)
}

func TestMaintenance_CompletadaSigueEditable(t *testing.T) {
	f := newFixture(t)
	f.equipment(t, "eq-1", nil)
	m := f.open(t, "eq-1", "Pintura")
	_, err := f.maintenance.MarkCompleted(f.ctx, f.id, m.ID, dto.CompleteMaintenanceRequest{})
	require.NoError(t, err)

	updated, err := f.maintenance.Update(f.ctx, f.id, m.ID, dto.UpdateMaintenanceRequest{Notes: ptrS("retoque")})
	require.NoError(t, err)
	assert.Equal(t, "retoque", updated.Notes)
	assert.Equal(t, string(entity.MaintenanceCompleted), updated.Status)
	assert.Equal(t, entity.EquipmentAvailable, f.reload(t, "eq-1").Status)
}

func TestMaintenance_StatsSumaTodosLosCostos(t *testing.T) {
	f := newFixture(t)
	f.equipment(t, "eq-1", nil)
	a := f.open(t, "eq-1", "A")
	b := f.open(t, "eq-1", "B")
	costA := decimal.NewFromInt(100)
	costB := decimal.NewFromInt(40)
	_, err := f.maintenance.MarkCompleted(f.ctx, f.id, a.ID, dto.CompleteMaintenanceRequest{Cost: &costA})
	require.NoError(t, err)
	_, err = f.maintenance.Update(f.ctx, f.id, b.ID, dto.UpdateMaintenanceRequest{Cost: &costB})
	require.NoError(t, err)

	stats, err := f.maintenance.Stats(f.ctx, f.id)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Completed)
	assert.True(t, decimal.NewFromInt(140).Equal(stats.TotalCost))
}

// ──────────────────────────────────────────────────────────────────────────────
// Desde inspección
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateFromInspection_RequiereMantenimiento(t *testing.T) {
	f := newFixture(t)
	f.equipment(t, "eq-1", nil)
	i := f.inspect(t, "eq-1", false, "")

	_, err := f.maintenance.CreateFromInspection(f.ctx, f.id, i.ID, nil)
	assert.ErrorIs(t, err, domain.ErrMaintenanceNotRequired)
	assert.Equal(t, entity.EquipmentAvailable, f.reload(t, "eq-1").Status)
}

func TestCreateFromInspection_OrdenDeTrabajo(t *testing.T) {
	tests := []struct {
		name      string
		notes     string
		workOrder *string
		want      string
	}{
		{name: "argumento", notes: "fuga hidráulica", workOrder: ptrS("Reemplazar sello"), want: "Reemplazar sello"},
		{name: "notas de la inspección", notes: "fuga hidráulica", want: "fuga hidráulica"},
		{name: "por defecto", want: entity.DefaultWorkOrder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.equipment(t, "eq-1", nil)
			i := f.inspect(t, "eq-1", true, tt.notes)

			m, err := f.maintenance.CreateFromInspection(f.ctx, f.id, i.ID, tt.workOrder)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.WorkOrder)
			assert.Equal(t, tt.notes, m.Notes)
			assert.Equal(t, string(entity.SourceInspectionFlagged), m.Source)
			require.NotNil(t, m.InspectionID)
			assert.Equal(t, i.ID, *m.InspectionID)
			assert.Equal(t, entity.EquipmentMaintenance, f.reload(t, "eq-1").Status)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Inspecciones
// ──────────────────────────────────────────────────────────────────────────────

func TestInspection_NoModificaEquipo(t *testing.T) {
	f := newFixture(t)
	f.equipment(t, "eq-1", nil)
	i := f.inspect(t, "eq-1", true, "revisar mangueras")

	assert.Equal(t, f.user.ID, i.InspectorID)
	assert.True(t, i.InspectedAt.Equal(now))
	assert.NotNil(t, i.Photos)
	assert.Equal(t, entity.EquipmentAvailable, f.reload(t, "eq-1").Status)

	detail, err := f.inspections.GetByID(f.ctx, f.id, i.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Equipment)
	require.NotNil(t, detail.Inspector)
	assert.Equal(t, "Ana Técnica", detail.Inspector.Name)
	assert.Nil(t, detail.Rental)
}

func TestInspection_UsuarioNoSincronizado(t *testing.T) {
	f := newFixture(t)
	f.equipment(t, "eq-1", nil)
	_, err := f.inspections.Create(f.ctx, tenant.Identity{Subject: "user_x", OrgID: f.org.ExternalID}, dto.CreateInspectionRequest{
		EquipmentID:      "eq-1",
		Type:             "pre_rental",
		OverallCondition: "good",
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestInspection_AlquilerAjenoEsNotFound(t *testing.T) {
	f := newFixture(t)
	f.equipment(t, "eq-1", nil)
	foreign := &entity.Rental{ID: "ren-x", OrganizationID: "org-2", EquipmentID: "eq-9", CustomerID: "cus-9"}
	require.NoError(t, f.store.Rentals().Create(f.ctx, foreign))

	_, err := f.inspections.Create(f.ctx, f.id, dto.CreateInspectionRequest{
		EquipmentID:      "eq-1",
		Type:             "post_rental",
		RentalID:         ptrS(foreign.ID),
		OverallCondition: "good",
	})
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "alquiler", nf.Entity)
}

func TestInspection_ChecklistYUploadURL(t *testing.T) {
	f := newFixture(t)
	tpl := f.inspections.Checklist()
	assert.Len(t, tpl.Items, 8)
	assert.Equal(t, "Tires/Tracks", tpl.Items[0])

	_, err := f.inspections.GenerateUploadURL(f.ctx, tenant.Identity{})
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)

	exp := now.Add(15 * time.Minute)
	f.blobs.On("GenerateUploadURL", mock.Anything).
		Return(&ports.UploadTicket{URL: "http://localhost/api/uploads/tok", ExpiresAt: exp}, nil).Once()
	got, err := f.inspections.GenerateUploadURL(f.ctx, f.id)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost/api/uploads/tok", got.UploadURL)
	f.blobs.AssertExpectations(t)
}

// ──────────────────────────────────────────────────────────────────────────────
// PDF y aislamiento
// ──────────────────────────────────────────────────────────────────────────────

func TestWorkOrderPDF(t *testing.T) {
	f := newFixture(t)
	f.equipment(t, "eq-1", nil)
	i := f.inspect(t, "eq-1", true, "fuga")
	m, err := f.maintenance.CreateFromInspection(f.ctx, f.id, i.ID, nil)
	require.NoError(t, err)

	f.pdf.On("Generate", mock.MatchedBy(func(doc ports.WorkOrderDocument) bool {
		return doc.Record.ID == m.ID &&
			doc.Equipment != nil && doc.Equipment.ID == "eq-1" &&
			doc.Inspection != nil && doc.Inspection.ID == i.ID &&
			doc.Organization.ID == f.org.ID
	})).Return([]byte("%PDF-1.4"), nil).Once()

	pdf, err := f.maintenance.WorkOrderPDF(f.ctx, f.id, m.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), pdf)
	f.pdf.AssertExpectations(t)

	other := &entity.Organization{ID: "org-2", ExternalID: "ext-org-2", Name: "Otra"}
	require.NoError(t, f.store.Organizations().Create(f.ctx, other))
	_, err = f.maintenance.WorkOrderPDF(f.ctx, tenant.Identity{Subject: "u2", OrgID: other.ExternalID}, m.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMaintenance_OtraOrganizacion(t *testing.T) {
	f := newFixture(t)
	f.equipment(t, "eq-1", nil)
	m := f.open(t, "eq-1", "Frenos")

	other := &entity.Organization{ID: "org-2", ExternalID: "ext-org-2", Name: "Otra"}
	require.NoError(t, f.store.Organizations().Create(f.ctx, other))
	intruder := tenant.Identity{Subject: "u2", OrgID: other.ExternalID}

	_, err := f.maintenance.MarkCompleted(f.ctx, intruder, m.ID, dto.CompleteMaintenanceRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, entity.EquipmentMaintenance, f.reload(t, "eq-1").Status)

	list, err := f.maintenance.GetAll(f.ctx, intruder)
	require.NoError(t, err)
	assert.Empty(t, list)

	detail, err := f.maintenance.GetByID(f.ctx, intruder, m.ID)
	require.NoError(t, err)
	assert.Nil(t, detail)

	_, err = f.maintenance.Create(f.ctx, intruder, dto.CreateMaintenanceRequest{
		EquipmentID: "eq-1", Source: "preventive_hours", WorkOrder: "x",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
