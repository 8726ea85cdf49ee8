package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Alquiler-api/internal/application/analytics"
	"github.com/jhoicas/Alquiler-api/internal/application/maintenance"
	"github.com/jhoicas/Alquiler-api/internal/application/ports"
	"github.com/jhoicas/Alquiler-api/internal/application/rental"
	"github.com/jhoicas/Alquiler-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OrganizationUC *usecase.OrganizationUseCase
	UserUC         *usecase.UserUseCase
	EquipmentUC    *usecase.EquipmentUseCase
	CustomerUC     *usecase.CustomerUseCase
	RentalUC       *rental.UseCase
	InspectionUC   *maintenance.InspectionUseCase
	MaintenanceUC  *maintenance.UseCase
	QueueUC        *analytics.QueueUseCase
	DashboardUC    *analytics.DashboardUseCase
	Blobs          ports.BlobStore
	JWTSecret      string
	WebhookSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	orgHandler := NewOrganizationHandler(deps.OrganizationUC, deps.UserUC)
	uploadHandler := NewUploadHandler(deps.Blobs)

	// Webhooks del proveedor de identidad (secreto compartido)
	webhooks := api.Group("/webhooks", WebhookMiddleware(deps.WebhookSecret))
	webhooks.Post("/organizations", orgHandler.SyncOrganization)
	webhooks.Post("/users", orgHandler.SyncUser)

	// Subida con token de un solo uso y descarga por storage id
	api.Post("/uploads/:token", uploadHandler.Upload)
	api.Get("/files/:storageId", uploadHandler.File)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/organizations/current", orgHandler.CurrentOrganization)
	protected.Post("/organizations", orgHandler.StoreOrganization)
	protected.Get("/users/current", orgHandler.CurrentUser)
	protected.Post("/users", orgHandler.StoreUser)

	equipment := protected.Group("/equipment")
	equipmentHandler := NewEquipmentHandler(deps.EquipmentUC, deps.InspectionUC, deps.MaintenanceUC)
	equipment.Get("/", equipmentHandler.List)
	equipment.Post("/", equipmentHandler.Create)
	equipment.Get("/available", equipmentHandler.Available)
	equipment.Get("/stats", equipmentHandler.Stats)
	equipment.Get("/maintenance-due", equipmentHandler.MaintenanceDue)
	equipment.Get("/:id", equipmentHandler.GetByID)
	equipment.Patch("/:id", equipmentHandler.Update)
	equipment.Delete("/:id", equipmentHandler.Delete)
	equipment.Put("/:id/status", equipmentHandler.UpdateStatus)
	equipment.Put("/:id/hours", equipmentHandler.UpdateHours)
	equipment.Get("/:id/inspections", equipmentHandler.Inspections)
	equipment.Get("/:id/maintenance", equipmentHandler.Maintenance)

	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	rentals := protected.Group("/rentals")
	rentalHandler := NewRentalHandler(deps.RentalUC, deps.InspectionUC)
	rentals.Get("/", rentalHandler.List)
	rentals.Post("/", rentalHandler.Create)
	rentals.Get("/stats", rentalHandler.Stats)
	rentals.Get("/:id", rentalHandler.GetByID)
	rentals.Patch("/:id", rentalHandler.Update)
	rentals.Delete("/:id", rentalHandler.Delete)
	rentals.Post("/:id/return", rentalHandler.Return)
	rentals.Get("/:id/inspections", rentalHandler.Inspections)

	inspections := protected.Group("/inspections")
	inspectionHandler := NewInspectionHandler(deps.InspectionUC, deps.QueueUC)
	inspections.Get("/", inspectionHandler.List)
	inspections.Post("/", inspectionHandler.Create)
	inspections.Get("/queue", inspectionHandler.Queue)
	inspections.Get("/stats", inspectionHandler.Stats)
	inspections.Get("/checklist", inspectionHandler.Checklist)
	inspections.Post("/upload-url", inspectionHandler.UploadURL)
	inspections.Get("/:id", inspectionHandler.GetByID)

	mnt := protected.Group("/maintenance")
	maintenanceHandler := NewMaintenanceHandler(deps.MaintenanceUC, deps.QueueUC)
	mnt.Get("/", maintenanceHandler.List)
	mnt.Post("/", maintenanceHandler.Create)
	mnt.Get("/queue", maintenanceHandler.Queue)
	mnt.Get("/stats", maintenanceHandler.Stats)
	mnt.Post("/from-inspection", maintenanceHandler.CreateFromInspection)
	mnt.Get("/:id", maintenanceHandler.GetByID)
	mnt.Patch("/:id", maintenanceHandler.Update)
	mnt.Post("/:id/start", maintenanceHandler.Start)
	mnt.Post("/:id/complete", maintenanceHandler.Complete)
	mnt.Get("/:id/work-order.pdf", maintenanceHandler.WorkOrderPDF)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.GetSummary)
}
