package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/application/ports"
	"github.com/jhoicas/Alquiler-api/internal/application/tenant"
	"github.com/jhoicas/Alquiler-api/internal/domain"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
)

// OrganizationUseCase sincroniza organizaciones del proveedor de identidad.
type OrganizationUseCase struct {
	repo   repository.OrganizationRepository
	tenant *tenant.Resolver
	clock  ports.Clock
}

// NewOrganizationUseCase construye el caso de uso con el puerto de persistencia.
func NewOrganizationUseCase(repo repository.OrganizationRepository, resolver *tenant.Resolver, clock ports.Clock) *OrganizationUseCase {
	return &OrganizationUseCase{repo: repo, tenant: resolver, clock: clock}
}

// Store crea o actualiza la organización indicada por el cliente autenticado.
// Solo escribe cuando algún campo cambió.
func (uc *OrganizationUseCase) Store(ctx context.Context, id tenant.Identity, in dto.StoreOrganizationRequest) (*dto.OrganizationResponse, error) {
	if id.Subject == "" {
		return nil, domain.ErrNotAuthenticated
	}
	return uc.upsert(ctx, in, false)
}

// UpsertFromProvider aplica un evento del proveedor de identidad. Siempre escribe.
func (uc *OrganizationUseCase) UpsertFromProvider(ctx context.Context, in dto.StoreOrganizationRequest) (*dto.OrganizationResponse, error) {
	return uc.upsert(ctx, in, true)
}

func (uc *OrganizationUseCase) upsert(ctx context.Context, in dto.StoreOrganizationRequest, force bool) (*dto.OrganizationResponse, error) {
	if in.ExternalID == "" || in.Name == "" {
		return nil, domain.Invalid("external_id y name son obligatorios")
	}
	now := uc.clock.Now()
	org, err := uc.repo.GetByExternalID(ctx, in.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("organization: buscar %s: %w", in.ExternalID, err)
	}
	if org == nil {
		org = &entity.Organization{
			ID:         uuid.New().String(),
			ExternalID: in.ExternalID,
			Name:       in.Name,
			Slug:       in.Slug,
			ImageURL:   in.ImageURL,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := uc.repo.Create(ctx, org); err != nil {
			return nil, err
		}
		return dto.FromOrganization(org), nil
	}

	changed := org.Name != in.Name || org.Slug != in.Slug || org.ImageURL != in.ImageURL
	if !changed && !force {
		return dto.FromOrganization(org), nil
	}
	org.Name = in.Name
	org.Slug = in.Slug
	org.ImageURL = in.ImageURL
	org.UpdatedAt = now
	if err := uc.repo.Update(ctx, org); err != nil {
		return nil, err
	}
	return dto.FromOrganization(org), nil
}

// Current devuelve la organización seleccionada por el llamador, o nil si no se resuelve.
func (uc *OrganizationUseCase) Current(ctx context.Context, id tenant.Identity) (*dto.OrganizationResponse, error) {
	org, err := uc.tenant.ForRead(ctx, id)
	if err != nil || org == nil {
		return nil, err
	}
	return dto.FromOrganization(org), nil
}

// GetByExternalID busca por el id del proveedor. nil si no existe.
func (uc *OrganizationUseCase) GetByExternalID(ctx context.Context, externalID string) (*dto.OrganizationResponse, error) {
	org, err := uc.repo.GetByExternalID(ctx, externalID)
	if err != nil || org == nil {
		return nil, err
	}
	return dto.FromOrganization(org), nil
}
