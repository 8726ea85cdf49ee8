package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/application/ports"
	"github.com/jhoicas/Alquiler-api/internal/application/tenant"
	"github.com/jhoicas/Alquiler-api/internal/domain/fleet"
)

// QueueUseCase colas de trabajo pendientes de inspección y mantenimiento.
type QueueUseCase struct {
	repos  Repos
	tenant *tenant.Resolver
	clock  ports.Clock
}

func NewQueueUseCase(repos Repos, resolver *tenant.Resolver, clock ports.Clock) *QueueUseCase {
	return &QueueUseCase{repos: repos, tenant: resolver, clock: clock}
}

func (uc *QueueUseCase) snapshot(ctx context.Context, id tenant.Identity) (fleet.Snapshot, error) {
	org, err := uc.tenant.ForRead(ctx, id)
	if err != nil || org == nil {
		return fleet.Snapshot{}, err
	}
	return loadSnapshot(ctx, uc.repos, org.ID)
}

// InspectionQueue alquileres que inician hoy sin inspección previa, devoluciones sin
// inspección posterior, equipos con servicio vencido e inspecciones marcadas sin orden.
func (uc *QueueUseCase) InspectionQueue(ctx context.Context, id tenant.Identity) (dto.InspectionQueueResponse, error) {
	s, err := uc.snapshot(ctx, id)
	if err != nil {
		return dto.InspectionQueueResponse{}, fmt.Errorf("cola de inspecciones: %w", err)
	}
	return dto.FromInspectionQueue(fleet.BuildInspectionQueue(s, uc.clock.Now())), nil
}

// MaintenanceQueue órdenes pendientes de inspección, preventivos vencidos sin orden,
// órdenes en curso y completadas en los últimos 30 días.
func (uc *QueueUseCase) MaintenanceQueue(ctx context.Context, id tenant.Identity) (dto.MaintenanceQueueResponse, error) {
	s, err := uc.snapshot(ctx, id)
	if err != nil {
		return dto.MaintenanceQueueResponse{}, fmt.Errorf("cola de mantenimiento: %w", err)
	}
	return dto.FromMaintenanceQueue(fleet.BuildMaintenanceQueue(s, uc.clock.Now())), nil
}
