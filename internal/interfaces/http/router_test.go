package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Alquiler-api/internal/application/analytics"
	"github.com/jhoicas/Alquiler-api/internal/application/maintenance"
	"github.com/jhoicas/Alquiler-api/internal/application/ports"
	"github.com/jhoicas/Alquiler-api/internal/application/rental"
	"github.com/jhoicas/Alquiler-api/internal/application/tenant"
	"github.com/jhoicas/Alquiler-api/internal/application/usecase"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/infrastructure/memory"
	"github.com/jhoicas/Alquiler-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Alquiler-api/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/Alquiler-api/internal/interfaces/http"
)

var fixedNow = time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC)

const publicURL = "http://files.test"

type testAPI struct {
	t     *testing.T
	app   *fiber.App
	token string
}

// newTestAPI arma el router completo sobre el store en memoria con una organización y
// un usuario sincronizados para testSubject/testOrgID.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	ctx := context.Background()
	clock := ports.Clock(func() time.Time { return fixedNow })
	store := memory.NewStore()
	require.NoError(t, store.Organizations().Create(ctx, &entity.Organization{ID: "org-1", ExternalID: testOrgID, Name: "Alquileres Andinos"}))
	require.NoError(t, store.Users().Create(ctx, &entity.User{ID: "u-1", ExternalID: testSubject, Email: "ana@andinos.co"}))

	blobs, err := storage.NewLocalStore(t.TempDir(), publicURL, 15*time.Minute, clock)
	require.NoError(t, err)

	log := zerolog.Nop()
	resolver := tenant.NewResolver(store.Organizations(), store.Users())
	mntRepos := maintenance.Repos{
		Equipment:   store.Equipment(),
		Rentals:     store.Rentals(),
		Inspections: store.Inspections(),
		Maintenance: store.Maintenance(),
		Users:       store.Users(),
	}
	analyticsRepos := analytics.Repos{
		Equipment:   store.Equipment(),
		Customers:   store.Customers(),
		Rentals:     store.Rentals(),
		Inspections: store.Inspections(),
		Maintenance: store.Maintenance(),
	}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		OrganizationUC: usecase.NewOrganizationUseCase(store.Organizations(), resolver, clock),
		UserUC:         usecase.NewUserUseCase(store.Users(), clock),
		EquipmentUC:    usecase.NewEquipmentUseCase(store.Equipment(), store, resolver, clock),
		CustomerUC:     usecase.NewCustomerUseCase(store.Customers(), resolver, clock),
		RentalUC: rental.NewUseCase(rental.Repos{
			Equipment: store.Equipment(),
			Customers: store.Customers(),
			Rentals:   store.Rentals(),
		}, store, resolver, clock, log),
		InspectionUC:  maintenance.NewInspectionUseCase(mntRepos, blobs, resolver, clock, log),
		MaintenanceUC: maintenance.NewUseCase(mntRepos, store, pdf.NewWorkOrderGenerator(), resolver, clock, log),
		QueueUC:       analytics.NewQueueUseCase(analyticsRepos, resolver, clock),
		DashboardUC:   analytics.NewDashboardUseCase(analyticsRepos, resolver, clock),
		Blobs:         blobs,
		JWTSecret:     testJWTSecret,
		WebhookSecret: testWebhookSecret,
	})
	return &testAPI{t: t, app: app, token: bearer(t, testSubject, testOrgID)}
}

func (a *testAPI) do(method, path string, body any, headers ...string) *http.Response {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	req.Header.Set(fiber.HeaderAuthorization, a.token)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func (a *testAPI) createEquipment(name string) string {
	a.t.Helper()
	resp := a.do(http.MethodPost, "/api/equipment", map[string]any{"name": name, "category": "earthmoving", "asset_value": "85000"})
	require.Equal(a.t, fiber.StatusCreated, resp.StatusCode)
	return decode[map[string]any](a.t, resp)["id"].(string)
}

func (a *testAPI) createCustomer(name string) string {
	a.t.Helper()
	resp := a.do(http.MethodPost, "/api/customers", map[string]any{"name": name})
	require.Equal(a.t, fiber.StatusCreated, resp.StatusCode)
	return decode[map[string]any](a.t, resp)["id"].(string)
}

func (a *testAPI) equipmentStatus(id string) string {
	a.t.Helper()
	resp := a.do(http.MethodGet, "/api/equipment/"+id, nil)
	require.Equal(a.t, fiber.StatusOK, resp.StatusCode)
	return decode[map[string]any](a.t, resp)["status"].(string)
}

func TestRouter_CicloDeAlquiler(t *testing.T) {
	api := newTestAPI(t)
	eqID := api.createEquipment("Retroexcavadora 420F")
	custID := api.createCustomer("Constructora Sur")

	rentalBody := map[string]any{
		"equipment_id": eqID,
		"customer_id":  custID,
		"start_date":   fixedNow.Format(time.RFC3339),
		"end_date":     fixedNow.AddDate(0, 0, 5).Format(time.RFC3339),
		"daily_rate":   "450",
	}
	resp := api.do(http.MethodPost, "/api/rentals", rentalBody)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode[map[string]any](t, resp)
	assert.Equal(t, "Retroexcavadora 420F", created["equipment_name"])
	assert.Equal(t, "active", created["status"])
	assert.Equal(t, "rented", api.equipmentStatus(eqID))

	resp = api.do(http.MethodPost, "/api/rentals", rentalBody)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EQUIPMENT_UNAVAILABLE", decode[map[string]string](t, resp)["code"])

	rentalID := created["id"].(string)
	resp = api.do(http.MethodPost, "/api/rentals/"+rentalID+"/return", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "returned", decode[map[string]any](t, resp)["status"])
	assert.Equal(t, "available", api.equipmentStatus(eqID))

	resp = api.do(http.MethodPost, "/api/rentals/"+rentalID+"/return", nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ALREADY_RETURNED", decode[map[string]string](t, resp)["code"])

	resp = api.do(http.MethodGet, "/api/inspections/queue", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	queue := decode[map[string][]map[string]any](t, resp)
	require.Len(t, queue["post_rental_due"], 1)
	assert.Equal(t, rentalID, queue["post_rental_due"][0]["rental_id"])
}

func TestRouter_InspeccionYMantenimiento(t *testing.T) {
	api := newTestAPI(t)
	eqID := api.createEquipment("Manipulador telescópico")

	resp := api.do(http.MethodPost, "/api/inspections", map[string]any{
		"equipment_id":      eqID,
		"type":              "routine",
		"overall_condition": "good",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	okID := decode[map[string]any](t, resp)["id"].(string)

	resp = api.do(http.MethodPost, "/api/maintenance/from-inspection", map[string]any{"inspection_id": okID})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "MAINTENANCE_NOT_REQUIRED", decode[map[string]string](t, resp)["code"])

	resp = api.do(http.MethodPost, "/api/inspections", map[string]any{
		"equipment_id":         eqID,
		"type":                 "routine",
		"overall_condition":    "poor",
		"maintenance_required": true,
		"maintenance_notes":    "Fuga en cilindro de elevación",
		"checklist_results":    []map[string]string{{"item": "Hydraulics", "status": "needs_attention"}},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	flaggedID := decode[map[string]any](t, resp)["id"].(string)

	resp = api.do(http.MethodPost, "/api/maintenance/from-inspection", map[string]any{"inspection_id": flaggedID})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	record := decode[map[string]any](t, resp)
	assert.Equal(t, "Fuga en cilindro de elevación", record["work_order"])
	assert.Equal(t, "maintenance", api.equipmentStatus(eqID))

	recordID := record["id"].(string)
	resp = api.do(http.MethodPost, "/api/maintenance/"+recordID+"/complete", map[string]any{"cost": "320000", "hours_at_service": 120})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "completed", decode[map[string]any](t, resp)["status"])
	assert.Equal(t, "available", api.equipmentStatus(eqID))

	resp = api.do(http.MethodGet, "/api/maintenance/"+recordID+"/work-order.pdf", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	raw, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp = api.do(http.MethodGet, "/api/maintenance/stats", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	stats := decode[map[string]any](t, resp)
	assert.EqualValues(t, 1, stats["completed"])
}

func TestRouter_SinOrganizacion(t *testing.T) {
	api := newTestAPI(t)
	api.createEquipment("Compresor 185")
	api.token = bearer(t, testSubject, "")

	resp := api.do(http.MethodGet, "/api/equipment", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]map[string]any](t, resp))

	resp = api.do(http.MethodPost, "/api/equipment", map[string]any{"name": "Otro", "category": "lighting"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = api.do(http.MethodGet, "/api/organizations/current", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRouter_NoEncontradoYValidacion(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(http.MethodGet, "/api/equipment/no-existe", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = api.do(http.MethodPost, "/api/equipment", map[string]any{"name": "Grúa", "category": "cranes"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[map[string]string](t, resp)["code"])

	resp = api.do(http.MethodGet, "/api/inspections/checklist", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[map[string][]string](t, resp)["items"], len(entity.DefaultChecklistItems))
}

func TestRouter_SubidaDeFotos(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(http.MethodPost, "/api/inspections/upload-url", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	uploadURL := decode[map[string]any](t, resp)["upload_url"].(string)
	require.True(t, strings.HasPrefix(uploadURL, publicURL+"/api/uploads/"))
	path := strings.TrimPrefix(uploadURL, publicURL)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("jpeg-bytes"))
	req.Header.Set(fiber.HeaderContentType, "image/jpeg")
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	storageID := decode[map[string]string](t, resp)["storage_id"]
	require.NotEmpty(t, storageID)

	resp, err = api.app.Test(httptest.NewRequest(http.MethodGet, "/api/files/"+storageID, nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get(fiber.HeaderContentType))
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "jpeg-bytes", string(raw))

	req = httptest.NewRequest(http.MethodPost, path, strings.NewReader("otra"))
	req.Header.Set(fiber.HeaderContentType, "image/jpeg")
	resp, err = api.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRouter_WebhookOrganizacion(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(http.MethodPost, "/api/webhooks/organizations",
		map[string]any{"external_id": "org_nueva", "name": "Maquinaria del Valle"},
		apphttp.WebhookSecretHeader, testWebhookSecret)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	api.token = bearer(t, testSubject, "org_nueva")
	resp = api.do(http.MethodGet, "/api/organizations/current", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Maquinaria del Valle", decode[map[string]any](t, resp)["name"])

	resp = api.do(http.MethodPost, "/api/webhooks/users",
		map[string]any{"external_id": "user_x", "email": "x@valle.co"},
		apphttp.WebhookSecretHeader, "malo")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
