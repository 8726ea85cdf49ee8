package repository

import (
	"context"

	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
)

// RentalRepository puerto de persistencia para Rental.
type RentalRepository interface {
	Create(ctx context.Context, r *entity.Rental) error
	GetByID(ctx context.Context, id string) (*entity.Rental, error)
	ListByOrganization(ctx context.Context, orgID string) ([]*entity.Rental, error)
	ListByEquipment(ctx context.Context, equipmentID string) ([]*entity.Rental, error)
	Update(ctx context.Context, r *entity.Rental) error
	Delete(ctx context.Context, id string) error
}
