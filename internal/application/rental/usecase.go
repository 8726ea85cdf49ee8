// Package rental implementa el ciclo de vida de un alquiler: creación atómica contra la
// disponibilidad del equipo, devolución y consultas enriquecidas.
package rental

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/application/ports"
	"github.com/jhoicas/Alquiler-api/internal/application/tenant"
	"github.com/jhoicas/Alquiler-api/internal/domain"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/fleet"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
)

const (
	rentalEntity    = "alquiler"
	equipmentEntity = "equipo"
	customerEntity  = "cliente"
)

// Repos repositorios de solo lectura que usa el caso de uso fuera de una transacción.
type Repos struct {
	Equipment repository.EquipmentRepository
	Customers repository.CustomerRepository
	Rentals   repository.RentalRepository
}

// UseCase casos de uso de alquileres.
type UseCase struct {
	repos  Repos
	tx     ports.TxRunner
	tenant *tenant.Resolver
	clock  ports.Clock
	log    zerolog.Logger
}

func NewUseCase(repos Repos, tx ports.TxRunner, resolver *tenant.Resolver, clock ports.Clock, log zerolog.Logger) *UseCase {
	return &UseCase{
		repos:  repos,
		tx:     tx,
		tenant: resolver,
		clock:  clock,
		log:    log.With().Str("component", "rental").Logger(),
	}
}

// Create registra el alquiler y pasa el equipo a rented en la misma unidad de trabajo.
// Falla con EquipmentUnavailable si el equipo no está available.
func (uc *UseCase) Create(ctx context.Context, id tenant.Identity, in dto.CreateRentalRequest) (*dto.RentalResponse, error) {
	org, err := uc.tenant.ForWrite(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.EquipmentID == "" || in.CustomerID == "" {
		return nil, domain.Invalid("equipment_id y customer_id son obligatorios")
	}
	if in.EndDate.Before(in.StartDate) {
		return nil, domain.Invalid("end_date anterior a start_date")
	}
	if in.DailyRate.IsNegative() {
		return nil, domain.Invalid("daily_rate no puede ser negativo")
	}

	now := uc.clock.Now()
	r := &entity.Rental{
		ID:             uuid.New().String(),
		OrganizationID: org.ID,
		EquipmentID:    in.EquipmentID,
		CustomerID:     in.CustomerID,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		DailyRate:      in.DailyRate,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	var names [2]string
	err = uc.tx.Run(ctx, func(repos ports.TxRepos) error {
		e, err := tenant.Load(ctx, repos.Equipment.GetByIDForUpdate, in.EquipmentID, org.ID, equipmentEntity)
		if err != nil {
			return err
		}
		c, err := tenant.Load(ctx, repos.Customers.GetByID, in.CustomerID, org.ID, customerEntity)
		if err != nil {
			return err
		}
		if e.Status != entity.EquipmentAvailable {
			return domain.EquipmentUnavailable(string(e.Status))
		}
		if err := repos.Rentals.Create(ctx, r); err != nil {
			return fmt.Errorf("rental: crear: %w", err)
		}
		e.Status = entity.EquipmentRented
		e.UpdatedAt = now
		names = [2]string{e.Name, c.Name}
		return repos.Equipment.Update(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("rental_id", r.ID).Str("equipment_id", r.EquipmentID).Msg("alquiler creado")
	resp := dto.FromRental(r, now)
	resp.EquipmentName, resp.CustomerName = names[0], names[1]
	return resp, nil
}

// MarkReturned registra la devolución (returnDate o now) y libera el equipo.
// Una segunda devolución falla con AlreadyReturned sin modificar nada.
func (uc *UseCase) MarkReturned(ctx context.Context, id tenant.Identity, rentalID string, returnDate *time.Time) (*dto.RentalResponse, error) {
	org, err := uc.tenant.ForWrite(ctx, id)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	var r *entity.Rental
	err = uc.tx.Run(ctx, func(repos ports.TxRepos) error {
		var err error
		r, err = tenant.Load(ctx, repos.Rentals.GetByID, rentalID, org.ID, rentalEntity)
		if err != nil {
			return err
		}
		e, err := repos.Equipment.GetByIDForUpdate(ctx, r.EquipmentID)
		if err != nil {
			return err
		}
		// Releer el alquiler con el equipo bloqueado: otra devolución pudo confirmarse antes.
		if r, err = repos.Rentals.GetByID(ctx, rentalID); err != nil {
			return err
		}
		if r == nil {
			return domain.NotFound(rentalEntity)
		}
		if r.Returned() {
			return domain.ErrAlreadyReturned
		}
		returned := now
		if returnDate != nil {
			returned = *returnDate
		}
		r.ReturnDate = &returned
		r.UpdatedAt = now
		if err := repos.Rentals.Update(ctx, r); err != nil {
			return err
		}
		if e == nil {
			return nil
		}
		e.Status = entity.EquipmentAvailable
		e.UpdatedAt = now
		return repos.Equipment.Update(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("rental_id", r.ID).Str("equipment_id", r.EquipmentID).Msg("alquiler devuelto")
	return dto.FromRental(r, now), nil
}

// Update modifica fecha de fin, tarifa o notas. No cambia el estado del equipo.
func (uc *UseCase) Update(ctx context.Context, id tenant.Identity, rentalID string, in dto.UpdateRentalRequest) (*dto.RentalResponse, error) {
	org, err := uc.tenant.ForWrite(ctx, id)
	if err != nil {
		return nil, err
	}
	r, err := tenant.Load(ctx, uc.repos.Rentals.GetByID, rentalID, org.ID, rentalEntity)
	if err != nil {
		return nil, err
	}
	if in.EndDate != nil {
		if in.EndDate.Before(r.StartDate) {
			return nil, domain.Invalid("end_date anterior a start_date")
		}
		r.EndDate = *in.EndDate
	}
	if in.DailyRate != nil {
		if in.DailyRate.IsNegative() {
			return nil, domain.Invalid("daily_rate no puede ser negativo")
		}
		r.DailyRate = *in.DailyRate
	}
	if in.Notes != nil {
		r.Notes = *in.Notes
	}
	now := uc.clock.Now()
	r.UpdatedAt = now
	if err := uc.repos.Rentals.Update(ctx, r); err != nil {
		return nil, err
	}
	return dto.FromRental(r, now), nil
}

// Delete elimina el alquiler. Si no había sido devuelto, el equipo vuelve a available.
func (uc *UseCase) Delete(ctx context.Context, id tenant.Identity, rentalID string) error {
	org, err := uc.tenant.ForWrite(ctx, id)
	if err != nil {
		return err
	}
	now := uc.clock.Now()
	return uc.tx.Run(ctx, func(repos ports.TxRepos) error {
		r, err := tenant.Load(ctx, repos.Rentals.GetByID, rentalID, org.ID, rentalEntity)
		if err != nil {
			return err
		}
		if err := repos.Rentals.Delete(ctx, r.ID); err != nil {
			return err
		}
		if r.Returned() {
			return nil
		}
		e, err := repos.Equipment.GetByIDForUpdate(ctx, r.EquipmentID)
		if err != nil || e == nil || e.Status != entity.EquipmentRented {
			return err
		}
		e.Status = entity.EquipmentAvailable
		e.UpdatedAt = now
		return repos.Equipment.Update(ctx, e)
	})
}

// GetAll lista los alquileres con nombre de equipo y cliente, más recientes primero.
func (uc *UseCase) GetAll(ctx context.Context, id tenant.Identity) ([]dto.RentalResponse, error) {
	out := []dto.RentalResponse{}
	org, err := uc.tenant.ForRead(ctx, id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return out, nil
	}
	rentals, err := uc.repos.Rentals.ListByOrganization(ctx, org.ID)
	if err != nil {
		return nil, err
	}
	names, err := uc.names(ctx, org.ID)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	for _, r := range rentals {
		resp := dto.FromRental(r, now)
		resp.EquipmentName = names.Equipment(r.EquipmentID)
		resp.CustomerName = names.Customer(r.CustomerID)
		out = append(out, *resp)
	}
	return out, nil
}

func (uc *UseCase) names(ctx context.Context, orgID string) (fleet.Names, error) {
	equipment, err := uc.repos.Equipment.ListByOrganization(ctx, orgID)
	if err != nil {
		return fleet.Names{}, err
	}
	customers, err := uc.repos.Customers.ListByOrganization(ctx, orgID)
	if err != nil {
		return fleet.Names{}, err
	}
	return fleet.NewNames(equipment, customers), nil
}

// GetByID devuelve nil si el alquiler no existe o es de otra organización.
func (uc *UseCase) GetByID(ctx context.Context, id tenant.Identity, rentalID string) (*dto.RentalResponse, error) {
	org, err := uc.tenant.ForRead(ctx, id)
	if err != nil || org == nil {
		return nil, err
	}
	r, err := uc.repos.Rentals.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if !tenant.Owns(r, org.ID) {
		return nil, nil
	}
	resp := dto.FromRental(r, uc.clock.Now())
	resp.EquipmentName = fleet.UnknownEquipment
	resp.CustomerName = fleet.UnknownCustomer
	if e, err := uc.repos.Equipment.GetByID(ctx, r.EquipmentID); err != nil {
		return nil, err
	} else if tenant.Owns(e, org.ID) {
		resp.EquipmentName = e.Name
	}
	if c, err := uc.repos.Customers.GetByID(ctx, r.CustomerID); err != nil {
		return nil, err
	} else if tenant.Owns(c, org.ID) {
		resp.CustomerName = c.Name
	}
	return resp, nil
}

// Stats conteos por estado derivado e ingreso de los alquileres devueltos.
func (uc *UseCase) Stats(ctx context.Context, id tenant.Identity) (dto.RentalStatsResponse, error) {
	org, err := uc.tenant.ForRead(ctx, id)
	if err != nil {
		return dto.RentalStatsResponse{}, err
	}
	if org == nil {
		return dto.FromRentalStats(fleet.ComputeRentalStats(nil, uc.clock.Now())), nil
	}
	rentals, err := uc.repos.Rentals.ListByOrganization(ctx, org.ID)
	if err != nil {
		return dto.RentalStatsResponse{}, err
	}
	return dto.FromRentalStats(fleet.ComputeRentalStats(rentals, uc.clock.Now())), nil
}
