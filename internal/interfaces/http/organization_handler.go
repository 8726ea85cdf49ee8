package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/application/usecase"
)

// OrganizationHandler organizaciones y usuarios sincronizados desde el proveedor de identidad.
type OrganizationHandler struct {
	orgs  *usecase.OrganizationUseCase
	users *usecase.UserUseCase
}

func NewOrganizationHandler(orgs *usecase.OrganizationUseCase, users *usecase.UserUseCase) *OrganizationHandler {
	return &OrganizationHandler{orgs: orgs, users: users}
}

// CurrentOrganization organización activa del token.
// @Summary      Organización actual
// @Tags         organizations
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OrganizationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/organizations/current [get]
func (h *OrganizationHandler) CurrentOrganization(c *fiber.Ctx) error {
	out, err := h.orgs.Current(c.UserContext(), GetIdentity(c))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "organización")
	}
	return c.JSON(out)
}

// StoreOrganization crea o actualiza la organización.
// @Summary      Registrar organización
// @Tags         organizations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StoreOrganizationRequest  true  "external_id y name obligatorios"
// @Success      200   {object}  dto.OrganizationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/organizations [post]
func (h *OrganizationHandler) StoreOrganization(c *fiber.Ctx) error {
	var in dto.StoreOrganizationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.orgs.Store(c.UserContext(), GetIdentity(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CurrentUser GET /api/users/current
func (h *OrganizationHandler) CurrentUser(c *fiber.Ctx) error {
	out, err := h.users.Current(c.UserContext(), GetIdentity(c))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "usuario")
	}
	return c.JSON(out)
}

// StoreUser POST /api/users
func (h *OrganizationHandler) StoreUser(c *fiber.Ctx) error {
	var in dto.StoreUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.users.Store(c.UserContext(), GetIdentity(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SyncOrganization webhook del proveedor de identidad.
// @Summary      Sincronizar organización (webhook)
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Webhook-Secret  header  string                        true  "secreto compartido"
// @Param        body              body    dto.StoreOrganizationRequest  true  "organización"
// @Success      200  {object}  dto.OrganizationResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/webhooks/organizations [post]
func (h *OrganizationHandler) SyncOrganization(c *fiber.Ctx) error {
	var in dto.StoreOrganizationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.orgs.UpsertFromProvider(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SyncUser POST /api/webhooks/users
func (h *OrganizationHandler) SyncUser(c *fiber.Ctx) error {
	var in dto.SyncUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.users.UpsertFromProvider(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
