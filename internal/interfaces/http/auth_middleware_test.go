package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/Alquiler-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Alquiler-api/pkg/jwt"
)

const (
	testJWTSecret     = "test-secret-key-for-unit-tests"
	testWebhookSecret = "whsec_test"
	testSubject       = "user_2abc"
	testOrgID         = "org_9xyz"
	testIssuer        = "alquiler-api-test"
)

// buildAuthApp aplicación mínima que devuelve la identidad cargada por el middleware.
func buildAuthApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		id := apphttp.GetIdentity(c)
		return c.JSON(fiber.Map{"subject": id.Subject, "org_id": id.OrgID})
	})
	app.Post("/hook", apphttp.WebhookMiddleware(testWebhookSecret), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func bearer(t *testing.T, subject, orgID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, subject, orgID, testIssuer, 60)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doGet(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddleware_CargaIdentidad(t *testing.T) {
	resp := doGet(t, buildAuthApp(), bearer(t, testSubject, testOrgID))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testSubject, body["subject"])
	assert.Equal(t, testOrgID, body["org_id"])
}

func TestAuthMiddleware_TokenSinOrganizacion(t *testing.T) {
	resp := doGet(t, buildAuthApp(), bearer(t, testSubject, ""))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body["org_id"])
}

func TestAuthMiddleware_Rechazos(t *testing.T) {
	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"sin Bearer", "Token abc", "INVALID_TOKEN"},
		{"token basura", "Bearer abc.def.ghi", "INVALID_TOKEN"},
	}
	app := buildAuthApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doGet(t, app, tt.header)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.code, body["code"])
		})
	}
}

func TestAuthMiddleware_FirmaIncorrecta(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secreto", testSubject, testOrgID, testIssuer, 60)
	require.NoError(t, err)
	resp := doGet(t, buildAuthApp(), "Bearer "+tok)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestWebhookMiddleware(t *testing.T) {
	app := buildAuthApp()

	req := httptest.NewRequest(http.MethodPost, "/hook", nil)
	req.Header.Set(apphttp.WebhookSecretHeader, testWebhookSecret)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/hook", nil)
	req.Header.Set(apphttp.WebhookSecretHeader, "incorrecto")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
