package repository

import (
	"context"

	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
)

// MaintenanceRepository puerto de persistencia para MaintenanceRecord (sin borrado).
type MaintenanceRepository interface {
	Create(ctx context.Context, m *entity.MaintenanceRecord) error
	GetByID(ctx context.Context, id string) (*entity.MaintenanceRecord, error)
	ListByOrganization(ctx context.Context, orgID string) ([]*entity.MaintenanceRecord, error)
	ListByEquipment(ctx context.Context, equipmentID string) ([]*entity.MaintenanceRecord, error)
	Update(ctx context.Context, m *entity.MaintenanceRecord) error
}
