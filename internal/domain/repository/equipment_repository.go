package repository

import (
	"context"

	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
)

// EquipmentRepository puerto de persistencia para Equipment.
// Los listados van ordenados del más reciente al más antiguo.
type EquipmentRepository interface {
	Create(ctx context.Context, e *entity.Equipment) error
	GetByID(ctx context.Context, id string) (*entity.Equipment, error)
	// GetByIDForUpdate bloquea la fila hasta el fin de la transacción en curso.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Equipment, error)
	ListByOrganization(ctx context.Context, orgID string) ([]*entity.Equipment, error)
	ListByOrganizationAndStatus(ctx context.Context, orgID string, status entity.EquipmentStatus) ([]*entity.Equipment, error)
	Update(ctx context.Context, e *entity.Equipment) error
	Delete(ctx context.Context, id string) error
}
