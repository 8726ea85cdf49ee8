package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Alquiler-api/internal/application/analytics"
	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/application/maintenance"
	"github.com/jhoicas/Alquiler-api/internal/infrastructure/metrics"
)

// MaintenanceHandler maneja las órdenes de trabajo de mantenimiento.
type MaintenanceHandler struct {
	uc    *maintenance.UseCase
	queue *analytics.QueueUseCase
}

func NewMaintenanceHandler(uc *maintenance.UseCase, queue *analytics.QueueUseCase) *MaintenanceHandler {
	return &MaintenanceHandler{uc: uc, queue: queue}
}

// List GET /api/maintenance
func (h *MaintenanceHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.GetAll(c.UserContext(), GetIdentity(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Queue GET /api/maintenance/queue
// @Summary      Cola de mantenimiento
// @Tags         maintenance
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MaintenanceQueueResponse
// @Router       /api/maintenance/queue [get]
func (h *MaintenanceHandler) Queue(c *fiber.Ctx) error {
	out, err := h.queue.MaintenanceQueue(c.UserContext(), GetIdentity(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Stats GET /api/maintenance/stats
func (h *MaintenanceHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext(), GetIdentity(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/maintenance/:id
func (h *MaintenanceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "mantenimiento")
	}
	return c.JSON(out)
}

// Create abre una orden de trabajo y pasa el equipo a maintenance.
// @Summary      Crear orden de mantenimiento
// @Tags         maintenance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMaintenanceRequest  true  "orden de trabajo"
// @Success      201   {object}  dto.MaintenanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/maintenance [post]
func (h *MaintenanceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaintenanceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetIdentity(c), in)
	if err != nil {
		return fail(c, "create_maintenance", err)
	}
	metrics.MaintenanceOpenedTotal.WithLabelValues(out.Source).Inc()
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateFromInspection abre la orden a partir de una inspección marcada.
// @Summary      Orden desde inspección
// @Tags         maintenance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFromInspectionRequest  true  "inspection_id y work_order opcional"
// @Success      201   {object}  dto.MaintenanceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse  "MAINTENANCE_NOT_REQUIRED"
// @Router       /api/maintenance/from-inspection [post]
func (h *MaintenanceHandler) CreateFromInspection(c *fiber.Ctx) error {
	var in dto.CreateFromInspectionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateFromInspection(c.UserContext(), GetIdentity(c), in.InspectionID, in.WorkOrder)
	if err != nil {
		return fail(c, "create_maintenance_from_inspection", err)
	}
	metrics.MaintenanceOpenedTotal.WithLabelValues(out.Source).Inc()
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Start POST /api/maintenance/:id/start
func (h *MaintenanceHandler) Start(c *fiber.Ctx) error {
	out, err := h.uc.MarkInProgress(c.UserContext(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return fail(c, "start_maintenance", err)
	}
	return c.JSON(out)
}

// Complete cierra la orden, recalcula el próximo servicio y libera el equipo si no
// quedan otras órdenes abiertas.
// @Summary      Completar mantenimiento
// @Tags         maintenance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true   "id del registro"
// @Param        body  body  dto.CompleteMaintenanceRequest  false  "repuestos, mano de obra, costo, horas"
// @Success      200   {object}  dto.MaintenanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/maintenance/{id}/complete [post]
func (h *MaintenanceHandler) Complete(c *fiber.Ctx) error {
	var in dto.CompleteMaintenanceRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.MarkCompleted(c.UserContext(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return fail(c, "complete_maintenance", err)
	}
	metrics.MaintenanceCompletedTotal.Inc()
	return c.JSON(out)
}

// Update PATCH /api/maintenance/:id
func (h *MaintenanceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMaintenanceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// WorkOrderPDF orden de trabajo imprimible.
// @Summary      PDF de la orden de trabajo
// @Tags         maintenance
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "id del registro"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/maintenance/{id}/work-order.pdf [get]
func (h *MaintenanceHandler) WorkOrderPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.uc.WorkOrderPDF(c.UserContext(), GetIdentity(c), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="orden-`+id+`.pdf"`)
	return c.Send(pdf)
}
