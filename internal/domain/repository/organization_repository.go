package repository

import (
	"context"

	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
)

// OrganizationRepository puerto de persistencia para Organization.
// Los Get devuelven (nil, nil) cuando no existe la fila.
type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization) error
	GetByID(ctx context.Context, id string) (*entity.Organization, error)
	GetByExternalID(ctx context.Context, externalID string) (*entity.Organization, error)
	Update(ctx context.Context, org *entity.Organization) error
}
