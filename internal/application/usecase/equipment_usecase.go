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
	"github.com/jhoicas/Alquiler-api/internal/domain/fleet"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
	"github.com/jhoicas/Alquiler-api/pkg/textutil"
)

const equipmentEntity = "equipo"

// EquipmentUseCase CRUD de equipos y consultas de estado de servicio.
type EquipmentUseCase struct {
	repo   repository.EquipmentRepository
	tx     ports.TxRunner
	tenant *tenant.Resolver
	clock  ports.Clock
}

// NewEquipmentUseCase construye el caso de uso.
func NewEquipmentUseCase(repo repository.EquipmentRepository, tx ports.TxRunner, resolver *tenant.Resolver, clock ports.Clock) *EquipmentUseCase {
	return &EquipmentUseCase{repo: repo, tx: tx, tenant: resolver, clock: clock}
}

// GetAll lista los equipos de la organización, más recientes primero.
// Sin organización resuelta devuelve una lista vacía.
func (uc *EquipmentUseCase) GetAll(ctx context.Context, id tenant.Identity, f dto.EquipmentFilter) ([]dto.EquipmentResponse, error) {
	list, err := uc.list(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EquipmentResponse, 0, len(list))
	for _, e := range list {
		if f.Category != "" && string(e.Category) != f.Category {
			continue
		}
		if !textutil.Contains(e.Name, f.Query) {
			continue
		}
		out = append(out, *dto.FromEquipment(e))
	}
	return out, nil
}

func (uc *EquipmentUseCase) list(ctx context.Context, id tenant.Identity) ([]*entity.Equipment, error) {
	org, err := uc.tenant.ForRead(ctx, id)
	if err != nil || org == nil {
		return nil, err
	}
	return uc.repo.ListByOrganization(ctx, org.ID)
}

// GetByID devuelve nil si el equipo no existe o es de otra organización.
func (uc *EquipmentUseCase) GetByID(ctx context.Context, id tenant.Identity, equipmentID string) (*dto.EquipmentResponse, error) {
	org, err := uc.tenant.ForRead(ctx, id)
	if err != nil || org == nil {
		return nil, err
	}
	e, err := uc.repo.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if !tenant.Owns(e, org.ID) {
		return nil, nil
	}
	return dto.FromEquipment(e), nil
}

// GetAvailable lista los equipos en estado available.
func (uc *EquipmentUseCase) GetAvailable(ctx context.Context, id tenant.Identity) ([]dto.EquipmentResponse, error) {
	org, err := uc.tenant.ForRead(ctx, id)
	if err != nil {
		return nil, err
	}
	out := []dto.EquipmentResponse{}
	if org == nil {
		return out, nil
	}
	list, err := uc.repo.ListByOrganizationAndStatus(ctx, org.ID, entity.EquipmentAvailable)
	if err != nil {
		return nil, err
	}
	for _, e := range list {
		out = append(out, *dto.FromEquipment(e))
	}
	return out, nil
}

// Create registra un equipo. El estado por defecto es available y los intervalos de
// servicio por defecto son 30 días y 250 horas.
func (uc *EquipmentUseCase) Create(ctx context.Context, id tenant.Identity, in dto.CreateEquipmentRequest) (*dto.EquipmentResponse, error) {
	org, err := uc.tenant.ForWrite(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, domain.Invalid("name es obligatorio")
	}
	category := entity.EquipmentCategory(in.Category)
	if !category.Valid() {
		return nil, domain.Invalid("categoría desconocida: " + in.Category)
	}
	status := entity.EquipmentAvailable
	if in.Status != "" {
		status = entity.EquipmentStatus(in.Status)
		if !status.Valid() {
			return nil, domain.Invalid("estado desconocido: " + in.Status)
		}
	}
	days := entity.DefaultServiceIntervalDays
	if in.ServiceIntervalDays != nil && *in.ServiceIntervalDays > 0 {
		days = *in.ServiceIntervalDays
	}
	hours := entity.DefaultServiceIntervalHours
	if in.ServiceIntervalHours != nil && *in.ServiceIntervalHours > 0 {
		hours = *in.ServiceIntervalHours
	}

	now := uc.clock.Now()
	e := &entity.Equipment{
		ID:                   uuid.New().String(),
		OrganizationID:       org.ID,
		Name:                 in.Name,
		Category:             category,
		Status:               status,
		AssetValue:           in.AssetValue,
		TotalHoursUsed:       in.TotalHoursUsed,
		ServiceIntervalDays:  days,
		ServiceIntervalHours: hours,
		Notes:                in.Notes,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("equipment: crear: %w", err)
	}
	return dto.FromEquipment(e), nil
}

// Update aplica los campos presentes en la petición.
func (uc *EquipmentUseCase) Update(ctx context.Context, id tenant.Identity, equipmentID string, in dto.UpdateEquipmentRequest) (*dto.EquipmentResponse, error) {
	org, err := uc.tenant.ForWrite(ctx, id)
	if err != nil {
		return nil, err
	}
	var out *entity.Equipment
	err = uc.tx.Run(ctx, func(repos ports.TxRepos) error {
		e, err := tenant.Load(ctx, repos.Equipment.GetByIDForUpdate, equipmentID, org.ID, equipmentEntity)
		if err != nil {
			return err
		}
		if in.Name != nil {
			if *in.Name == "" {
				return domain.Invalid("name no puede ser vacío")
			}
			e.Name = *in.Name
		}
		if in.Category != nil {
			c := entity.EquipmentCategory(*in.Category)
			if !c.Valid() {
				return domain.Invalid("categoría desconocida: " + *in.Category)
			}
			e.Category = c
		}
		if in.Status != nil {
			s := entity.EquipmentStatus(*in.Status)
			if !s.Valid() {
				return domain.Invalid("estado desconocido: " + *in.Status)
			}
			e.Status = s
		}
		if in.AssetValue != nil {
			e.AssetValue = *in.AssetValue
		}
		if in.TotalHoursUsed != nil {
			e.TotalHoursUsed = in.TotalHoursUsed
		}
		if in.ServiceIntervalDays != nil && *in.ServiceIntervalDays > 0 {
			e.ServiceIntervalDays = *in.ServiceIntervalDays
		}
		if in.ServiceIntervalHours != nil && *in.ServiceIntervalHours > 0 {
			e.ServiceIntervalHours = *in.ServiceIntervalHours
		}
		if in.Notes != nil {
			e.Notes = *in.Notes
		}
		e.UpdatedAt = uc.clock.Now()
		out = e
		return repos.Equipment.Update(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	return dto.FromEquipment(out), nil
}

// UpdateStatus fija el estado del equipo sin validar alquileres ni mantenimientos abiertos.
func (uc *EquipmentUseCase) UpdateStatus(ctx context.Context, id tenant.Identity, equipmentID, status string) error {
	s := entity.EquipmentStatus(status)
	if !s.Valid() {
		return domain.Invalid("estado desconocido: " + status)
	}
	org, err := uc.tenant.ForWrite(ctx, id)
	if err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(repos ports.TxRepos) error {
		e, err := tenant.Load(ctx, repos.Equipment.GetByIDForUpdate, equipmentID, org.ID, equipmentEntity)
		if err != nil {
			return err
		}
		e.Status = s
		e.UpdatedAt = uc.clock.Now()
		return repos.Equipment.Update(ctx, e)
	})
}

// UpdateHours sobrescribe el horómetro.
func (uc *EquipmentUseCase) UpdateHours(ctx context.Context, id tenant.Identity, equipmentID string, totalHoursUsed float64) error {
	if totalHoursUsed < 0 {
		return domain.Invalid("total_hours_used no puede ser negativo")
	}
	org, err := uc.tenant.ForWrite(ctx, id)
	if err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(repos ports.TxRepos) error {
		e, err := tenant.Load(ctx, repos.Equipment.GetByIDForUpdate, equipmentID, org.ID, equipmentEntity)
		if err != nil {
			return err
		}
		e.TotalHoursUsed = &totalHoursUsed
		e.UpdatedAt = uc.clock.Now()
		return repos.Equipment.Update(ctx, e)
	})
}

// Delete elimina el equipo. Los alquileres e inspecciones que lo referencian se conservan.
func (uc *EquipmentUseCase) Delete(ctx context.Context, id tenant.Identity, equipmentID string) error {
	org, err := uc.tenant.ForWrite(ctx, id)
	if err != nil {
		return err
	}
	if _, err := tenant.Load(ctx, uc.repo.GetByID, equipmentID, org.ID, equipmentEntity); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, equipmentID)
}

// MaintenanceDue lista los equipos no alquilados con servicio vencido por fecha u horas.
func (uc *EquipmentUseCase) MaintenanceDue(ctx context.Context, id tenant.Identity) ([]dto.MaintenanceDueResponse, error) {
	list, err := uc.list(ctx, id)
	if err != nil {
		return nil, err
	}
	due := fleet.MaintenanceDueList(list, uc.clock.Now())
	out := make([]dto.MaintenanceDueResponse, 0, len(due))
	for _, d := range due {
		out = append(out, dto.MaintenanceDueResponse{
			Equipment:    *dto.FromEquipment(d.Equipment),
			TimeOverdue:  d.TimeOverdue,
			HoursOverdue: d.HoursOverdue,
		})
	}
	return out, nil
}

// Stats conteos por estado, valor total y tasa de utilización.
func (uc *EquipmentUseCase) Stats(ctx context.Context, id tenant.Identity) (dto.EquipmentStatsResponse, error) {
	list, err := uc.list(ctx, id)
	if err != nil {
		return dto.EquipmentStatsResponse{}, err
	}
	return dto.FromEquipmentStats(fleet.ComputeEquipmentStats(list)), nil
}
