// Package analytics contiene las vistas de solo lectura de la flota: colas de trabajo
// de inspección y mantenimiento y el resumen del Dashboard.
package analytics

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/application/ports"
	"github.com/jhoicas/Alquiler-api/internal/application/tenant"
	"github.com/jhoicas/Alquiler-api/internal/domain/fleet"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
)

// Repos repositorios leídos por las vistas.
type Repos struct {
	Equipment   repository.EquipmentRepository
	Customers   repository.CustomerRepository
	Rentals     repository.RentalRepository
	Inspections repository.InspectionRepository
	Maintenance repository.MaintenanceRepository
}

// loadSnapshot lee en paralelo todas las filas de la organización.
// Se recalcula en cada llamada; no hay estado en caché.
func loadSnapshot(ctx context.Context, repos Repos, orgID string) (fleet.Snapshot, error) {
	var s fleet.Snapshot
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		s.Equipment, err = repos.Equipment.ListByOrganization(ctx, orgID)
		return wrap("equipos", err)
	})
	g.Go(func() (err error) {
		s.Customers, err = repos.Customers.ListByOrganization(ctx, orgID)
		return wrap("clientes", err)
	})
	g.Go(func() (err error) {
		s.Rentals, err = repos.Rentals.ListByOrganization(ctx, orgID)
		return wrap("alquileres", err)
	})
	g.Go(func() (err error) {
		s.Inspections, err = repos.Inspections.ListByOrganization(ctx, orgID)
		return wrap("inspecciones", err)
	})
	g.Go(func() (err error) {
		s.Maintenance, err = repos.Maintenance.ListByOrganization(ctx, orgID)
		return wrap("mantenimiento", err)
	})
	if err := g.Wait(); err != nil {
		return fleet.Snapshot{}, err
	}
	return s, nil
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("analytics: listar %s: %w", what, err)
	}
	return nil
}

// DashboardUseCase resumen de indicadores de la flota.
type DashboardUseCase struct {
	repos  Repos
	tenant *tenant.Resolver
	clock  ports.Clock
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repos Repos, resolver *tenant.Resolver, clock ports.Clock) *DashboardUseCase {
	return &DashboardUseCase{repos: repos, tenant: resolver, clock: clock}
}

// GetSummary calcula los cuatro bloques de indicadores. Sin organización resuelta
// devuelve todos los conteos en cero.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, id tenant.Identity) (*dto.DashboardResponse, error) {
	now := uc.clock.Now()
	org, err := uc.tenant.ForRead(ctx, id)
	if err != nil {
		return nil, err
	}
	var s fleet.Snapshot
	if org != nil {
		if s, err = loadSnapshot(ctx, uc.repos, org.ID); err != nil {
			return nil, fmt.Errorf("dashboard: %w", err)
		}
	}

	out := &dto.DashboardResponse{GeneratedAt: now}
	var g errgroup.Group
	g.Go(func() error {
		out.Equipment = dto.FromEquipmentStats(fleet.ComputeEquipmentStats(s.Equipment))
		return nil
	})
	g.Go(func() error {
		out.Rentals = dto.FromRentalStats(fleet.ComputeRentalStats(s.Rentals, now))
		return nil
	})
	g.Go(func() error {
		out.Inspections = dto.FromInspectionStats(fleet.ComputeInspectionStats(s.Inspections))
		return nil
	})
	g.Go(func() error {
		out.Maintenance = dto.FromMaintenanceStats(fleet.ComputeMaintenanceStats(s.Maintenance))
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
