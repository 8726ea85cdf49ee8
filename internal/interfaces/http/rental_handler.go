package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/application/maintenance"
	"github.com/jhoicas/Alquiler-api/internal/application/rental"
	"github.com/jhoicas/Alquiler-api/internal/infrastructure/metrics"
)

// RentalHandler maneja las peticiones HTTP de alquileres.
type RentalHandler struct {
	uc          *rental.UseCase
	inspections *maintenance.InspectionUseCase
}

func NewRentalHandler(uc *rental.UseCase, inspections *maintenance.InspectionUseCase) *RentalHandler {
	return &RentalHandler{uc: uc, inspections: inspections}
}

// fail cuenta el error de una operación de ciclo de vida y lo responde.
func fail(c *fiber.Ctx, operation string, err error) error {
	metrics.OperationErrorsTotal.WithLabelValues(operation).Inc()
	return respondError(c, err)
}

// List GET /api/rentals
func (h *RentalHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.GetAll(c.UserContext(), GetIdentity(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Stats GET /api/rentals/stats
func (h *RentalHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext(), GetIdentity(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/rentals/:id
func (h *RentalHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "alquiler")
	}
	return c.JSON(out)
}

// Create alquila un equipo disponible y lo marca como rented en la misma transacción.
// @Summary      Crear alquiler
// @Tags         rentals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRentalRequest  true  "equipo, cliente, fechas y tarifa diaria"
// @Success      201   {object}  dto.RentalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "EQUIPMENT_UNAVAILABLE"
// @Router       /api/rentals [post]
func (h *RentalHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRentalRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetIdentity(c), in)
	if err != nil {
		return fail(c, "create_rental", err)
	}
	metrics.RentalsCreatedTotal.Inc()
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Return registra la devolución y libera el equipo.
// @Summary      Devolver alquiler
// @Tags         rentals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true   "id del alquiler"
// @Param        body  body  dto.MarkReturnedRequest  false  "return_date (default: ahora)"
// @Success      200   {object}  dto.RentalResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "ALREADY_RETURNED"
// @Router       /api/rentals/{id}/return [post]
func (h *RentalHandler) Return(c *fiber.Ctx) error {
	var in dto.MarkReturnedRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.MarkReturned(c.UserContext(), GetIdentity(c), c.Params("id"), in.ReturnDate)
	if err != nil {
		return fail(c, "return_rental", err)
	}
	metrics.RentalsReturnedTotal.Inc()
	return c.JSON(out)
}

// Update PATCH /api/rentals/:id
func (h *RentalHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRentalRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/rentals/:id
func (h *RentalHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetIdentity(c), c.Params("id")); err != nil {
		return fail(c, "delete_rental", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Inspections GET /api/rentals/:id/inspections
func (h *RentalHandler) Inspections(c *fiber.Ctx) error {
	out, err := h.inspections.GetByRental(c.UserContext(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
