// Package metrics contadores Prometheus del ciclo de vida de la flota.
package metrics

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RentalsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fleet_rentals_created_total",
		Help: "Alquileres creados.",
	})

	RentalsReturnedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fleet_rentals_returned_total",
		Help: "Alquileres marcados como devueltos.",
	})

	InspectionsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fleet_inspections_created_total",
		Help: "Inspecciones registradas por tipo.",
	},
		[]string{"type"},
	)

	MaintenanceOpenedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fleet_maintenance_opened_total",
		Help: "Registros de mantenimiento abiertos por origen.",
	},
		[]string{"source"},
	)

	MaintenanceCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fleet_maintenance_completed_total",
		Help: "Registros de mantenimiento completados.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fleet_operation_errors_total",
		Help: "Errores por operación.",
	},
		[]string{"operation"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fleet_http_requests_total",
		Help: "Peticiones HTTP por método, ruta y código.",
	},
		[]string{"method", "route", "status"},
	)
)

// Middleware cuenta cada petición por la ruta registrada (no por el path crudo).
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		HTTPRequestsTotal.WithLabelValues(c.Method(), c.Route().Path, strconv.Itoa(status)).Inc()
		return err
	}
}

// Handler expone el registro por defecto en formato Prometheus.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
