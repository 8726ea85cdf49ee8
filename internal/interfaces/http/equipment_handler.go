package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/application/maintenance"
	"github.com/jhoicas/Alquiler-api/internal/application/usecase"
)

// EquipmentHandler maneja las peticiones HTTP de la flota.
type EquipmentHandler struct {
	uc          *usecase.EquipmentUseCase
	inspections *maintenance.InspectionUseCase
	maintenance *maintenance.UseCase
}

func NewEquipmentHandler(uc *usecase.EquipmentUseCase, inspections *maintenance.InspectionUseCase, mnt *maintenance.UseCase) *EquipmentHandler {
	return &EquipmentHandler{uc: uc, inspections: inspections, maintenance: mnt}
}

// List devuelve la flota, más reciente primero.
// @Summary      Listar equipos
// @Tags         equipment
// @Security     Bearer
// @Produce      json
// @Param        q         query  string  false  "búsqueda por nombre (sin tildes ni mayúsculas)"
// @Param        category  query  string  false  "categoría exacta"
// @Success      200  {array}   dto.EquipmentResponse
// @Router       /api/equipment [get]
func (h *EquipmentHandler) List(c *fiber.Ctx) error {
	var f dto.EquipmentFilter
	if err := c.QueryParser(&f); err != nil {
		return badBody(c)
	}
	out, err := h.uc.GetAll(c.UserContext(), GetIdentity(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Available GET /api/equipment/available
func (h *EquipmentHandler) Available(c *fiber.Ctx) error {
	out, err := h.uc.GetAvailable(c.UserContext(), GetIdentity(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Stats GET /api/equipment/stats
func (h *EquipmentHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext(), GetIdentity(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MaintenanceDue equipos con servicio vencido por fecha u horómetro.
// @Summary      Equipos con mantenimiento vencido
// @Tags         equipment
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.MaintenanceDueResponse
// @Router       /api/equipment/maintenance-due [get]
func (h *EquipmentHandler) MaintenanceDue(c *fiber.Ctx) error {
	out, err := h.uc.MaintenanceDue(c.UserContext(), GetIdentity(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/equipment/:id
func (h *EquipmentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "equipo")
	}
	return c.JSON(out)
}

// Create registra un equipo. Estado por defecto available; intervalos 30 días / 250 horas.
// @Summary      Crear equipo
// @Tags         equipment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEquipmentRequest  true  "equipo"
// @Success      201   {object}  dto.EquipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/equipment [post]
func (h *EquipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEquipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetIdentity(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update PATCH /api/equipment/:id
func (h *EquipmentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEquipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus PUT /api/equipment/:id/status
func (h *EquipmentHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateEquipmentStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.UpdateStatus(c.UserContext(), GetIdentity(c), c.Params("id"), in.Status); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateHours PUT /api/equipment/:id/hours
func (h *EquipmentHandler) UpdateHours(c *fiber.Ctx) error {
	var in dto.UpdateHoursRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.UpdateHours(c.UserContext(), GetIdentity(c), c.Params("id"), in.TotalHoursUsed); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete DELETE /api/equipment/:id
func (h *EquipmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetIdentity(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Inspections GET /api/equipment/:id/inspections
func (h *EquipmentHandler) Inspections(c *fiber.Ctx) error {
	out, err := h.inspections.GetByEquipment(c.UserContext(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Maintenance GET /api/equipment/:id/maintenance
func (h *EquipmentHandler) Maintenance(c *fiber.Ctx) error {
	out, err := h.maintenance.GetByEquipment(c.UserContext(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
