package http

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/application/tenant"
	"github.com/jhoicas/Alquiler-api/pkg/jwt"
)

// Locals keys para la identidad en Fiber.
const (
	LocalSubject = "subject"
	LocalOrgID   = "org_id"
)

// WebhookSecretHeader cabecera con el secreto compartido del proveedor de identidad.
const WebhookSecretHeader = "X-Webhook-Secret"

// AuthMiddleware valida el Bearer Token JWT y deja subject y org_id en c.Locals.
// Un token sin org_id es válido: las lecturas devuelven vacío y las escrituras 401.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		subject, orgID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalSubject, subject)
		c.Locals(LocalOrgID, orgID)
		return c.Next()
	}
}

// WebhookMiddleware exige el secreto compartido en X-Webhook-Secret.
// Con secreto vacío en configuración rechaza todo.
func WebhookMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		got := c.Get(WebhookSecretHeader)
		if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_WEBHOOK_SECRET", Message: "secreto de webhook inválido"})
		}
		return c.Next()
	}
}

// GetIdentity devuelve la identidad del contexto (después del middleware de auth).
func GetIdentity(c *fiber.Ctx) tenant.Identity {
	return tenant.Identity{Subject: localString(c, LocalSubject), OrgID: localString(c, LocalOrgID)}
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
