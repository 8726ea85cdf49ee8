package memory

import (
	"context"

	"github.com/jhoicas/Alquiler-api/internal/domain"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
)

var (
	_ repository.OrganizationRepository = (*OrganizationRepo)(nil)
	_ repository.UserRepository         = (*UserRepo)(nil)
	_ repository.EquipmentRepository    = (*EquipmentRepo)(nil)
	_ repository.CustomerRepository     = (*CustomerRepo)(nil)
	_ repository.RentalRepository       = (*RentalRepo)(nil)
	_ repository.InspectionRepository   = (*InspectionRepo)(nil)
	_ repository.MaintenanceRepository  = (*MaintenanceRepo)(nil)
)

// ── Organizations ─────────────────────────────────────────────────────────────

type OrganizationRepo struct{ base }

func (r *OrganizationRepo) Create(_ context.Context, org *entity.Organization) error {
	defer r.lock()()
	t := r.s.t.orgs
	if t.first(func(o *entity.Organization) bool { return o.ExternalID == org.ExternalID }) != nil {
		return domain.ErrDuplicate
	}
	t.put(org.ID, org)
	return nil
}

func (r *OrganizationRepo) GetByID(_ context.Context, id string) (*entity.Organization, error) {
	defer r.lock()()
	return r.s.t.orgs.get(id), nil
}

func (r *OrganizationRepo) GetByExternalID(_ context.Context, externalID string) (*entity.Organization, error) {
	defer r.lock()()
	return r.s.t.orgs.first(func(o *entity.Organization) bool { return o.ExternalID == externalID }), nil
}

func (r *OrganizationRepo) Update(_ context.Context, org *entity.Organization) error {
	defer r.lock()()
	if !r.s.t.orgs.has(org.ID) {
		return nil
	}
	r.s.t.orgs.put(org.ID, org)
	return nil
}

// ── Users ─────────────────────────────────────────────────────────────────────

type UserRepo struct{ base }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	defer r.lock()()
	t := r.s.t.users
	if t.first(func(x *entity.User) bool { return x.ExternalID == u.ExternalID }) != nil {
		return domain.ErrDuplicate
	}
	t.put(u.ID, u)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	defer r.lock()()
	return r.s.t.users.get(id), nil
}

func (r *UserRepo) GetByExternalID(_ context.Context, externalID string) (*entity.User, error) {
	defer r.lock()()
	return r.s.t.users.first(func(u *entity.User) bool { return u.ExternalID == externalID }), nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	defer r.lock()()
	if r.s.t.users.has(u.ID) {
		r.s.t.users.put(u.ID, u)
	}
	return nil
}

// ── Equipment ─────────────────────────────────────────────────────────────────

type EquipmentRepo struct{ base }

func (r *EquipmentRepo) Create(_ context.Context, e *entity.Equipment) error {
	defer r.lock()()
	if r.s.t.equipment.has(e.ID) {
		return domain.ErrDuplicate
	}
	r.s.t.equipment.put(e.ID, e)
	return nil
}

func (r *EquipmentRepo) GetByID(_ context.Context, id string) (*entity.Equipment, error) {
	defer r.lock()()
	return r.s.t.equipment.get(id), nil
}

// GetByIDForUpdate igual que GetByID: la unidad de trabajo ya tiene el store en exclusiva.
func (r *EquipmentRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Equipment, error) {
	return r.GetByID(ctx, id)
}

func (r *EquipmentRepo) ListByOrganization(_ context.Context, orgID string) ([]*entity.Equipment, error) {
	defer r.lock()()
	return r.s.t.equipment.desc(func(e *entity.Equipment) bool { return e.OrganizationID == orgID }), nil
}

func (r *EquipmentRepo) ListByOrganizationAndStatus(_ context.Context, orgID string, status entity.EquipmentStatus) ([]*entity.Equipment, error) {
	defer r.lock()()
	return r.s.t.equipment.desc(func(e *entity.Equipment) bool {
		return e.OrganizationID == orgID && e.Status == status
	}), nil
}

func (r *EquipmentRepo) Update(_ context.Context, e *entity.Equipment) error {
	defer r.lock()()
	if r.s.t.equipment.has(e.ID) {
		r.s.t.equipment.put(e.ID, e)
	}
	return nil
}

func (r *EquipmentRepo) Delete(_ context.Context, id string) error {
	defer r.lock()()
	r.s.t.equipment.del(id)
	return nil
}

// ── Customers ─────────────────────────────────────────────────────────────────

type CustomerRepo struct{ base }

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	defer r.lock()()
	if r.s.t.customers.has(c.ID) {
		return domain.ErrDuplicate
	}
	r.s.t.customers.put(c.ID, c)
	return nil
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	defer r.lock()()
	return r.s.t.customers.get(id), nil
}

func (r *CustomerRepo) ListByOrganization(_ context.Context, orgID string) ([]*entity.Customer, error) {
	defer r.lock()()
	return r.s.t.customers.desc(func(c *entity.Customer) bool { return c.OrganizationID == orgID }), nil
}

func (r *CustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	defer r.lock()()
	if r.s.t.customers.has(c.ID) {
		r.s.t.customers.put(c.ID, c)
	}
	return nil
}

func (r *CustomerRepo) Delete(_ context.Context, id string) error {
	defer r.lock()()
	r.s.t.customers.del(id)
	return nil
}

// ── Rentals ───────────────────────────────────────────────────────────────────

type RentalRepo struct{ base }

func (r *RentalRepo) Create(_ context.Context, x *entity.Rental) error {
	defer r.lock()()
	if r.s.t.rentals.has(x.ID) {
		return domain.ErrDuplicate
	}
	r.s.t.rentals.put(x.ID, x)
	return nil
}

func (r *RentalRepo) GetByID(_ context.Context, id string) (*entity.Rental, error) {
	defer r.lock()()
	return r.s.t.rentals.get(id), nil
}

func (r *RentalRepo) ListByOrganization(_ context.Context, orgID string) ([]*entity.Rental, error) {
	defer r.lock()()
	return r.s.t.rentals.desc(func(x *entity.Rental) bool { return x.OrganizationID == orgID }), nil
}

func (r *RentalRepo) ListByEquipment(_ context.Context, equipmentID string) ([]*entity.Rental, error) {
	defer r.lock()()
	return r.s.t.rentals.desc(func(x *entity.Rental) bool { return x.EquipmentID == equipmentID }), nil
}

func (r *RentalRepo) Update(_ context.Context, x *entity.Rental) error {
	defer r.lock()()
	if r.s.t.rentals.has(x.ID) {
		r.s.t.rentals.put(x.ID, x)
	}
	return nil
}

func (r *RentalRepo) Delete(_ context.Context, id string) error {
	defer r.lock()()
	r.s.t.rentals.del(id)
	return nil
}

// ── Inspections ───────────────────────────────────────────────────────────────

type InspectionRepo struct{ base }

func (r *InspectionRepo) Create(_ context.Context, i *entity.Inspection) error {
	defer r.lock()()
	if r.s.t.inspections.has(i.ID) {
		return domain.ErrDuplicate
	}
	r.s.t.inspections.put(i.ID, i)
	return nil
}

func (r *InspectionRepo) GetByID(_ context.Context, id string) (*entity.Inspection, error) {
	defer r.lock()()
	return r.s.t.inspections.get(id), nil
}

func (r *InspectionRepo) ListByOrganization(_ context.Context, orgID string) ([]*entity.Inspection, error) {
	defer r.lock()()
	return r.s.t.inspections.desc(func(i *entity.Inspection) bool { return i.OrganizationID == orgID }), nil
}

func (r *InspectionRepo) ListByEquipment(_ context.Context, equipmentID string) ([]*entity.Inspection, error) {
	defer r.lock()()
	return r.s.t.inspections.desc(func(i *entity.Inspection) bool { return i.EquipmentID == equipmentID }), nil
}

func (r *InspectionRepo) ListByRental(_ context.Context, rentalID string) ([]*entity.Inspection, error) {
	defer r.lock()()
	return r.s.t.inspections.desc(func(i *entity.Inspection) bool {
		return i.RentalID != nil && *i.RentalID == rentalID
	}), nil
}

// ── Maintenance ───────────────────────────────────────────────────────────────

type MaintenanceRepo struct{ base }

func (r *MaintenanceRepo) Create(_ context.Context, m *entity.MaintenanceRecord) error {
	defer r.lock()()
	if r.s.t.maintenance.has(m.ID) {
		return domain.ErrDuplicate
	}
	r.s.t.maintenance.put(m.ID, m)
	return nil
}

func (r *MaintenanceRepo) GetByID(_ context.Context, id string) (*entity.MaintenanceRecord, error) {
	defer r.lock()()
	return r.s.t.maintenance.get(id), nil
}

func (r *MaintenanceRepo) ListByOrganization(_ context.Context, orgID string) ([]*entity.MaintenanceRecord, error) {
	defer r.lock()()
	return r.s.t.maintenance.desc(func(m *entity.MaintenanceRecord) bool { return m.OrganizationID == orgID }), nil
}

func (r *MaintenanceRepo) ListByEquipment(_ context.Context, equipmentID string) ([]*entity.MaintenanceRecord, error) {
	defer r.lock()()
	return r.s.t.maintenance.desc(func(m *entity.MaintenanceRecord) bool { return m.EquipmentID == equipmentID }), nil
}

func (r *MaintenanceRepo) Update(_ context.Context, m *entity.MaintenanceRecord) error {
	defer r.lock()()
	if r.s.t.maintenance.has(m.ID) {
		r.s.t.maintenance.put(m.ID, m)
	}
	return nil
}
