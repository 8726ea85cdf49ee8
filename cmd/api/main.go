package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/Alquiler-api/docs"
	"github.com/jhoicas/Alquiler-api/internal/application/analytics"
	"github.com/jhoicas/Alquiler-api/internal/application/maintenance"
	"github.com/jhoicas/Alquiler-api/internal/application/ports"
	"github.com/jhoicas/Alquiler-api/internal/application/rental"
	"github.com/jhoicas/Alquiler-api/internal/application/tenant"
	"github.com/jhoicas/Alquiler-api/internal/application/usecase"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
	"github.com/jhoicas/Alquiler-api/internal/infrastructure/memory"
	"github.com/jhoicas/Alquiler-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Alquiler-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Alquiler-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Alquiler-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Alquiler-api/internal/interfaces/http"
	"github.com/jhoicas/Alquiler-api/pkg/config"
	"github.com/jhoicas/Alquiler-api/pkg/logger"
)

// @title        Alquiler API
// @version      1.0
// @description  Ciclo de vida de una flota de equipos en alquiler: alquileres, inspecciones y mantenimiento.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization

// repositories conjunto de repositorios y unidad de trabajo de un driver.
type repositories struct {
	organizations repository.OrganizationRepository
	users         repository.UserRepository
	equipment     repository.EquipmentRepository
	customers     repository.CustomerRepository
	rentals       repository.RentalRepository
	inspections   repository.InspectionRepository
	maintenance   repository.MaintenanceRepository
	tx            ports.TxRunner
	close         func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		AppName: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer repos.close()

	blobs, err := storage.NewLocalStore(cfg.Storage.Dir, cfg.Storage.PublicURL, cfg.Storage.UploadTTL, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento de fotos")
	}

	var clock ports.Clock
	resolver := tenant.NewResolver(repos.organizations, repos.users)
	mntRepos := maintenance.Repos{
		Equipment:   repos.equipment,
		Rentals:     repos.rentals,
		Inspections: repos.inspections,
		Maintenance: repos.maintenance,
		Users:       repos.users,
	}
	analyticsRepos := analytics.Repos{
		Equipment:   repos.equipment,
		Customers:   repos.customers,
		Rentals:     repos.rentals,
		Inspections: repos.inspections,
		Maintenance: repos.maintenance,
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    storage.MaxUploadBytes + 1<<20,
	})
	app.Use(recover.New())
	app.Use(metrics.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Alquiler API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", metrics.Handler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		OrganizationUC: usecase.NewOrganizationUseCase(repos.organizations, resolver, clock),
		UserUC:         usecase.NewUserUseCase(repos.users, clock),
		EquipmentUC:    usecase.NewEquipmentUseCase(repos.equipment, repos.tx, resolver, clock),
		CustomerUC:     usecase.NewCustomerUseCase(repos.customers, resolver, clock),
		RentalUC: rental.NewUseCase(rental.Repos{
			Equipment: repos.equipment,
			Customers: repos.customers,
			Rentals:   repos.rentals,
		}, repos.tx, resolver, clock, log.Zerolog()),
		InspectionUC:  maintenance.NewInspectionUseCase(mntRepos, blobs, resolver, clock, log.Zerolog()),
		MaintenanceUC: maintenance.NewUseCase(mntRepos, repos.tx, infrapdf.NewWorkOrderGenerator(), resolver, clock, log.Zerolog()),
		QueueUC:       analytics.NewQueueUseCase(analyticsRepos, resolver, clock),
		DashboardUC:   analytics.NewDashboardUseCase(analyticsRepos, resolver, clock),
		Blobs:         blobs,
		JWTSecret:     cfg.JWT.Secret,
		WebhookSecret: cfg.Webhook.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openRepositories abre PostgreSQL (con migraciones opcionales) o el store en memoria.
func openRepositories(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repositories, error) {
	if cfg.Store.Driver == config.DriverMemory {
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &repositories{
			organizations: s.Organizations(),
			users:         s.Users(),
			equipment:     s.Equipment(),
			customers:     s.Customers(),
			rentals:       s.Rentals(),
			inspections:   s.Inspections(),
			maintenance:   s.Maintenance(),
			tx:            s,
			close:         func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.Migrate {
		if err := postgres.Migrate(ctx, pool, log.Component("migrate")); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return &repositories{
		organizations: postgres.NewOrganizationRepository(pool),
		users:         postgres.NewUserRepository(pool),
		equipment:     postgres.NewEquipmentRepository(pool),
		customers:     postgres.NewCustomerRepository(pool),
		rentals:       postgres.NewRentalRepository(pool),
		inspections:   postgres.NewInspectionRepository(pool),
		maintenance:   postgres.NewMaintenanceRepository(pool),
		tx:            postgres.NewTxRunner(pool),
		close:         pool.Close,
	}, nil
}
