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
	"github.com/jhoicas/Alquiler-api/pkg/textutil"
)

const customerEntity = "cliente"

// CustomerUseCase CRUD de clientes de alquiler.
type CustomerUseCase struct {
	repo   repository.CustomerRepository
	tenant *tenant.Resolver
	clock  ports.Clock
}

func NewCustomerUseCase(repo repository.CustomerRepository, resolver *tenant.Resolver, clock ports.Clock) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, tenant: resolver, clock: clock}
}

// GetAll lista clientes, más recientes primero. query filtra por nombre o email.
func (uc *CustomerUseCase) GetAll(ctx context.Context, id tenant.Identity, query string) ([]dto.CustomerResponse, error) {
	out := []dto.CustomerResponse{}
	org, err := uc.tenant.ForRead(ctx, id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return out, nil
	}
	list, err := uc.repo.ListByOrganization(ctx, org.ID)
	if err != nil {
		return nil, err
	}
	for _, c := range list {
		if textutil.Contains(c.Name, query) || (query != "" && textutil.Contains(c.Email, query)) {
			out = append(out, *dto.FromCustomer(c))
		}
	}
	return out, nil
}

func (uc *CustomerUseCase) GetByID(ctx context.Context, id tenant.Identity, customerID string) (*dto.CustomerResponse, error) {
	org, err := uc.tenant.ForRead(ctx, id)
	if err != nil || org == nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !tenant.Owns(c, org.ID) {
		return nil, nil
	}
	return dto.FromCustomer(c), nil
}

func (uc *CustomerUseCase) Create(ctx context.Context, id tenant.Identity, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	org, err := uc.tenant.ForWrite(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, domain.Invalid("name es obligatorio")
	}
	now := uc.clock.Now()
	c := &entity.Customer{
		ID:             uuid.New().String(),
		OrganizationID: org.ID,
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("customer: crear: %w", err)
	}
	return dto.FromCustomer(c), nil
}

// Update reemplaza nombre, email, teléfono y notas.
func (uc *CustomerUseCase) Update(ctx context.Context, id tenant.Identity, customerID string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	org, err := uc.tenant.ForWrite(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, domain.Invalid("name es obligatorio")
	}
	c, err := tenant.Load(ctx, uc.repo.GetByID, customerID, org.ID, customerEntity)
	if err != nil {
		return nil, err
	}
	c.Name = in.Name
	c.Email = in.Email
	c.Phone = in.Phone
	c.Notes = in.Notes
	c.UpdatedAt = uc.clock.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return dto.FromCustomer(c), nil
}

func (uc *CustomerUseCase) Delete(ctx context.Context, id tenant.Identity, customerID string) error {
	org, err := uc.tenant.ForWrite(ctx, id)
	if err != nil {
		return err
	}
	if _, err := tenant.Load(ctx, uc.repo.GetByID, customerID, org.ID, customerEntity); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, customerID)
}
