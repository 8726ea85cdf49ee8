package repository

import (
	"context"

	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
)

// InspectionRepository puerto de persistencia para Inspection (solo inserción y lectura).
type InspectionRepository interface {
	Create(ctx context.Context, i *entity.Inspection) error
	GetByID(ctx context.Context, id string) (*entity.Inspection, error)
	ListByOrganization(ctx context.Context, orgID string) ([]*entity.Inspection, error)
	ListByEquipment(ctx context.Context, equipmentID string) ([]*entity.Inspection, error)
	ListByRental(ctx context.Context, rentalID string) ([]*entity.Inspection, error)
}
