package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Alquiler-api/internal/application/analytics"
	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/application/maintenance"
	"github.com/jhoicas/Alquiler-api/internal/infrastructure/metrics"
)

// InspectionHandler maneja las peticiones HTTP de inspecciones.
type InspectionHandler struct {
	uc    *maintenance.InspectionUseCase
	queue *analytics.QueueUseCase
}

func NewInspectionHandler(uc *maintenance.InspectionUseCase, queue *analytics.QueueUseCase) *InspectionHandler {
	return &InspectionHandler{uc: uc, queue: queue}
}

// List GET /api/inspections
func (h *InspectionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.GetAll(c.UserContext(), GetIdentity(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Queue agrupa el trabajo de inspección pendiente.
// @Summary      Cola de inspecciones
// @Description  pre_rental_due: alquileres que inician hoy sin inspección previa.
// @Description  post_rental_due: alquileres devueltos sin inspección posterior.
// @Description  routine_overdue: equipos con servicio vencido por fecha.
// @Description  flagged_from_inspection: inspecciones que piden mantenimiento sin registro abierto.
// @Tags         inspections
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InspectionQueueResponse
// @Router       /api/inspections/queue [get]
func (h *InspectionHandler) Queue(c *fiber.Ctx) error {
	out, err := h.queue.InspectionQueue(c.UserContext(), GetIdentity(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Stats GET /api/inspections/stats
func (h *InspectionHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext(), GetIdentity(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Checklist GET /api/inspections/checklist
func (h *InspectionHandler) Checklist(c *fiber.Ctx) error {
	return c.JSON(h.uc.Checklist())
}

// UploadURL POST /api/inspections/upload-url
func (h *InspectionHandler) UploadURL(c *fiber.Ctx) error {
	out, err := h.uc.GenerateUploadURL(c.UserContext(), GetIdentity(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/inspections/:id
func (h *InspectionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "inspección")
	}
	return c.JSON(out)
}

// Create registra una inspección. No modifica el equipo.
// @Summary      Crear inspección
// @Tags         inspections
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInspectionRequest  true  "inspección"
// @Success      201   {object}  dto.InspectionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse  "equipo, alquiler o usuario inexistente"
// @Router       /api/inspections [post]
func (h *InspectionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInspectionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetIdentity(c), in)
	if err != nil {
		return fail(c, "create_inspection", err)
	}
	metrics.InspectionsCreatedTotal.WithLabelValues(out.Type).Inc()
	return c.Status(fiber.StatusCreated).JSON(out)
}
