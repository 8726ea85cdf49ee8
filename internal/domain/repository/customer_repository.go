package repository

import (
	"context"

	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
)

// CustomerRepository puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, c *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	ListByOrganization(ctx context.Context, orgID string) ([]*entity.Customer, error)
	Update(ctx context.Context, c *entity.Customer) error
	Delete(ctx context.Context, id string) error
}
