// import_fleet carga equipos en bloque desde un CSV exportado de hoja de cálculo.
//
// Uso: go run ./cmd/import_fleet -org <external_org_id> -file flota.csv [-latin1] [-dry-run]
//
// Columnas (con encabezado, en cualquier orden): name, category, asset_value,
// total_hours_used, service_interval_days, service_interval_hours, notes.
// Solo name y category son obligatorias. La categoría acepta el código
// (material_handling) o el nombre legible (Material Handling).
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Alquiler-api/internal/application/ports"
	"github.com/jhoicas/Alquiler-api/internal/application/tenant"
	"github.com/jhoicas/Alquiler-api/internal/application/usecase"
	"github.com/jhoicas/Alquiler-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Alquiler-api/pkg/config"
	"github.com/jhoicas/Alquiler-api/pkg/logger"
)

func main() {
	orgID := flag.String("org", "", "id externo de la organización (claim org_id)")
	path := flag.String("file", "", "ruta del CSV")
	latin1 := flag.Bool("latin1", false, "el CSV está en ISO-8859-1 (exportación de Excel)")
	dryRun := flag.Bool("dry-run", false, "solo valida el archivo")
	flag.Parse()

	if *orgID == "" || *path == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, AppName: "import_fleet"})

	f, err := os.Open(*path)
	if err != nil {
		log.Fatal().Err(err).Str("file", *path).Msg("abrir CSV")
	}
	defer f.Close()

	var r io.Reader = f
	if *latin1 {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	rows, err := ParseFleetCSV(r)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}
	log.Info().Int("rows", len(rows)).Msg("CSV válido")
	if *dryRun {
		return
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	var clock ports.Clock
	orgs := postgres.NewOrganizationRepository(pool)
	resolver := tenant.NewResolver(orgs, postgres.NewUserRepository(pool))
	orgUC := usecase.NewOrganizationUseCase(orgs, resolver, clock)
	org, err := orgUC.GetByExternalID(ctx, *orgID)
	if err != nil {
		log.Fatal().Err(err).Msg("buscar organización")
	}
	if org == nil {
		log.Fatal().Str("org", *orgID).Msg("organización no registrada")
	}

	equipmentUC := usecase.NewEquipmentUseCase(postgres.NewEquipmentRepository(pool), postgres.NewTxRunner(pool), resolver, clock)
	id := tenant.Identity{Subject: "import_fleet", OrgID: *orgID}

	created := 0
	for _, row := range rows {
		if _, err := equipmentUC.Create(ctx, id, row.Request); err != nil {
			log.Error().Err(err).Int("line", row.Line).Str("name", row.Request.Name).Msg("crear equipo")
			continue
		}
		created++
	}
	log.Info().Str("organization", org.Name).Int("created", created).Int("failed", len(rows)-created).Msg("importación terminada")
}
