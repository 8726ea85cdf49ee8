package maintenance

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/application/ports"
	"github.com/jhoicas/Alquiler-api/internal/application/tenant"
	"github.com/jhoicas/Alquiler-api/internal/domain"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/fleet"
)

// UseCase órdenes de trabajo de mantenimiento.
type UseCase struct {
	repos  Repos
	tx     ports.TxRunner
	pdf    ports.WorkOrderPDFGenerator
	tenant *tenant.Resolver
	clock  ports.Clock
	log    zerolog.Logger
}

func NewUseCase(repos Repos, tx ports.TxRunner, pdf ports.WorkOrderPDFGenerator, resolver *tenant.Resolver, clock ports.Clock, log zerolog.Logger) *UseCase {
	return &UseCase{
		repos:  repos,
		tx:     tx,
		pdf:    pdf,
		tenant: resolver,
		clock:  clock,
		log:    log.With().Str("component", "maintenance").Logger(),
	}
}

// Create abre una orden de trabajo pending y pasa el equipo a maintenance.
func (uc *UseCase) Create(ctx context.Context, id tenant.Identity, in dto.CreateMaintenanceRequest) (*dto.MaintenanceResponse, error) {
	org, err := uc.tenant.ForWrite(ctx, id)
	if err != nil {
		return nil, err
	}
	source := entity.MaintenanceSource(in.Source)
	if !source.Valid() {
		return nil, domain.Invalid("origen desconocido: " + in.Source)
	}
	if in.WorkOrder == "" {
		return nil, domain.Invalid("work_order es obligatorio")
	}
	if in.InspectionID != nil && *in.InspectionID == "" {
		in.InspectionID = nil
	}
	if in.InspectionID != nil {
		if _, err := tenant.Load(ctx, uc.repos.Inspections.GetByID, *in.InspectionID, org.ID, inspectionEntity); err != nil {
			return nil, err
		}
	}
	return uc.open(ctx, org.ID, &entity.MaintenanceRecord{
		EquipmentID:  in.EquipmentID,
		Source:       source,
		InspectionID: in.InspectionID,
		WorkOrder:    in.WorkOrder,
		AssignedTo:   in.AssignedTo,
		Notes:        in.Notes,
	})
}

// CreateFromInspection abre una orden de trabajo a partir de una inspección que requiere
// mantenimiento. La orden es workOrder, si no las notas de la inspección, si no
// entity.DefaultWorkOrder.
func (uc *UseCase) CreateFromInspection(ctx context.Context, id tenant.Identity, inspectionID string, workOrder *string) (*dto.MaintenanceResponse, error) {
	org, err := uc.tenant.ForWrite(ctx, id)
	if err != nil {
		return nil, err
	}
	insp, err := tenant.Load(ctx, uc.repos.Inspections.GetByID, inspectionID, org.ID, inspectionEntity)
	if err != nil {
		return nil, err
	}
	if !insp.MaintenanceRequired {
		return nil, domain.ErrMaintenanceNotRequired
	}
	order := entity.DefaultWorkOrder
	switch {
	case workOrder != nil && *workOrder != "":
		order = *workOrder
	case insp.MaintenanceNotes != "":
		order = insp.MaintenanceNotes
	}
	inspID := insp.ID
	return uc.open(ctx, org.ID, &entity.MaintenanceRecord{
		EquipmentID:  insp.EquipmentID,
		Source:       entity.SourceInspectionFlagged,
		InspectionID: &inspID,
		WorkOrder:    order,
		Notes:        insp.MaintenanceNotes,
	})
}

func (uc *UseCase) open(ctx context.Context, orgID string, m *entity.MaintenanceRecord) (*dto.MaintenanceResponse, error) {
	now := uc.clock.Now()
	m.ID = uuid.New().String()
	m.OrganizationID = orgID
	m.Status = entity.MaintenancePending
	m.CreatedAt = now
	m.UpdatedAt = now

	var equipmentName string
	err := uc.tx.Run(ctx, func(repos ports.TxRepos) error {
		e, err := tenant.Load(ctx, repos.Equipment.GetByIDForUpdate, m.EquipmentID, orgID, equipmentEntity)
		if err != nil {
			return err
		}
		if err := repos.Maintenance.Create(ctx, m); err != nil {
			return fmt.Errorf("maintenance: crear: %w", err)
		}
		equipmentName = e.Name
		if e.Status == entity.EquipmentMaintenance {
			return nil
		}
		e.Status = entity.EquipmentMaintenance
		e.UpdatedAt = now
		return repos.Equipment.Update(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("record_id", m.ID).
		Str("equipment_id", m.EquipmentID).
		Str("source", string(m.Source)).
		Msg("orden de trabajo abierta")
	resp := dto.FromMaintenance(m)
	resp.EquipmentName = equipmentName
	return resp, nil
}

// MarkInProgress pasa la orden a in_progress y reafirma el equipo en maintenance.
func (uc *UseCase) MarkInProgress(ctx context.Context, id tenant.Identity, recordID string) (*dto.MaintenanceResponse, error) {
	org, err := uc.tenant.ForWrite(ctx, id)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	var m *entity.MaintenanceRecord
	err = uc.tx.Run(ctx, func(repos ports.TxRepos) error {
		var err error
		m, err = tenant.Load(ctx, repos.Maintenance.GetByID, recordID, org.ID, maintenanceEntity)
		if err != nil {
			return err
		}
		if m.Status == entity.MaintenanceCompleted {
			return domain.Invalid("la orden de trabajo ya está completada")
		}
		e, err := repos.Equipment.GetByIDForUpdate(ctx, m.EquipmentID)
		if err != nil {
			return err
		}
		if e == nil {
			return domain.NotFound(equipmentEntity)
		}
		m.Status = entity.MaintenanceInProgress
		m.UpdatedAt = now
		if err := repos.Maintenance.Update(ctx, m); err != nil {
			return err
		}
		if e.Status == entity.EquipmentMaintenance {
			return nil
		}
		e.Status = entity.EquipmentMaintenance
		e.UpdatedAt = now
		return repos.Equipment.Update(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("record_id", m.ID).Msg("orden de trabajo en progreso")
	return dto.FromMaintenance(m), nil
}

// MarkCompleted cierra la orden, recalcula la programación de servicio del equipo y lo
// devuelve a available solo si no queda otra orden abierta sobre él. Repetirlo sobre una
// orden completada vuelve a sellar completedAt y recalcula.
func (uc *UseCase) MarkCompleted(ctx context.Context, id tenant.Identity, recordID string, in dto.CompleteMaintenanceRequest) (*dto.MaintenanceResponse, error) {
	org, err := uc.tenant.ForWrite(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Cost != nil && in.Cost.IsNegative() {
		return nil, domain.Invalid("cost no puede ser negativo")
	}
	now := uc.clock.Now()
	var (
		m        *entity.MaintenanceRecord
		released bool
	)
	err = uc.tx.Run(ctx, func(repos ports.TxRepos) error {
		var err error
		m, err = tenant.Load(ctx, repos.Maintenance.GetByID, recordID, org.ID, maintenanceEntity)
		if err != nil {
			return err
		}
		e, err := repos.Equipment.GetByIDForUpdate(ctx, m.EquipmentID)
		if err != nil {
			return err
		}
		// Releer con el equipo bloqueado: las órdenes hermanas se evalúan sobre datos confirmados.
		if m, err = repos.Maintenance.GetByID(ctx, recordID); err != nil {
			return err
		}
		if m == nil {
			return domain.NotFound(maintenanceEntity)
		}
		if e == nil {
			return domain.NotFound(equipmentEntity)
		}

		applyCompletion(m, in)
		m.Status = entity.MaintenanceCompleted
		m.CompletedAt = &now
		m.UpdatedAt = now
		if err := repos.Maintenance.Update(ctx, m); err != nil {
			return err
		}

		// Solo las horas informadas al cerrar; las guardadas antes por Update no cuentan.
		fleet.NextService(e, in.HoursAtService, now).Apply(e)
		siblings, err := repos.Maintenance.ListByEquipment(ctx, e.ID)
		if err != nil {
			return err
		}
		if !fleet.HasOtherOpenRecord(siblings, e.ID, m.ID) {
			e.Status = entity.EquipmentAvailable
			released = true
		}
		e.UpdatedAt = now
		return repos.Equipment.Update(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("record_id", m.ID).
		Str("equipment_id", m.EquipmentID).
		Bool("equipment_released", released).
		Msg("orden de trabajo completada")
	return dto.FromMaintenance(m), nil
}

func applyCompletion(m *entity.MaintenanceRecord, in dto.CompleteMaintenanceRequest) {
	if in.PartsUsed != nil {
		m.PartsUsed = *in.PartsUsed
	}
	if in.LaborDescription != nil {
		m.LaborDescription = *in.LaborDescription
	}
	if in.Cost != nil {
		m.Cost = in.Cost
	}
	if in.HoursAtService != nil {
		m.HoursAtService = in.HoursAtService
	}
	if in.Notes != nil {
		m.Notes = *in.Notes
	}
}

// Update mezcla los campos presentes. No toca el equipo y también aplica a órdenes
// completadas.
func (uc *UseCase) Update(ctx context.Context, id tenant.Identity, recordID string, in dto.UpdateMaintenanceRequest) (*dto.MaintenanceResponse, error) {
	org, err := uc.tenant.ForWrite(ctx, id)
	if err != nil {
		return nil, err
	}
	m, err := tenant.Load(ctx, uc.repos.Maintenance.GetByID, recordID, org.ID, maintenanceEntity)
	if err != nil {
		return nil, err
	}
	if in.Status != nil {
		s := entity.MaintenanceStatus(*in.Status)
		if !s.Valid() {
			return nil, domain.Invalid("estado desconocido: " + *in.Status)
		}
		m.Status = s
	}
	if in.WorkOrder != nil {
		m.WorkOrder = *in.WorkOrder
	}
	if in.AssignedTo != nil {
		m.AssignedTo = *in.AssignedTo
	}
	applyCompletion(m, dto.CompleteMaintenanceRequest{
		PartsUsed:        in.PartsUsed,
		LaborDescription: in.LaborDescription,
		Cost:             in.Cost,
		HoursAtService:   in.HoursAtService,
		Notes:            in.Notes,
	})
	m.UpdatedAt = uc.clock.Now()
	if err := uc.repos.Maintenance.Update(ctx, m); err != nil {
		return nil, err
	}
	return dto.FromMaintenance(m), nil
}

// GetAll lista las órdenes con el nombre del equipo, más recientes primero.
func (uc *UseCase) GetAll(ctx context.Context, id tenant.Identity) ([]dto.MaintenanceResponse, error) {
	out := []dto.MaintenanceResponse{}
	org, err := uc.tenant.ForRead(ctx, id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return out, nil
	}
	list, err := uc.repos.Maintenance.ListByOrganization(ctx, org.ID)
	if err != nil {
		return nil, err
	}
	equipment, err := uc.repos.Equipment.ListByOrganization(ctx, org.ID)
	if err != nil {
		return nil, err
	}
	names := fleet.NewNames(equipment, nil)
	for _, m := range list {
		resp := dto.FromMaintenance(m)
		resp.EquipmentName = names.Equipment(m.EquipmentID)
		out = append(out, *resp)
	}
	return out, nil
}

// GetByID devuelve la orden con su equipo e inspección de origen, o nil.
func (uc *UseCase) GetByID(ctx context.Context, id tenant.Identity, recordID string) (*dto.MaintenanceDetailResponse, error) {
	org, err := uc.tenant.ForRead(ctx, id)
	if err != nil || org == nil {
		return nil, err
	}
	doc, err := uc.load(ctx, org, recordID)
	if err != nil || doc == nil {
		return nil, err
	}
	out := &dto.MaintenanceDetailResponse{MaintenanceResponse: *dto.FromMaintenance(doc.Record)}
	out.EquipmentName = fleet.UnknownEquipment
	if doc.Equipment != nil {
		out.Equipment = dto.FromEquipment(doc.Equipment)
		out.EquipmentName = doc.Equipment.Name
	}
	if doc.Inspection != nil {
		out.Inspection = dto.FromInspection(doc.Inspection)
	}
	return out, nil
}

// load arma la orden con sus referencias de la misma organización. nil si no existe.
func (uc *UseCase) load(ctx context.Context, org *entity.Organization, recordID string) (*ports.WorkOrderDocument, error) {
	m, err := uc.repos.Maintenance.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if !tenant.Owns(m, org.ID) {
		return nil, nil
	}
	doc := &ports.WorkOrderDocument{Organization: org, Record: m}
	e, err := uc.repos.Equipment.GetByID(ctx, m.EquipmentID)
	if err != nil {
		return nil, err
	}
	if tenant.Owns(e, org.ID) {
		doc.Equipment = e
	}
	if m.InspectionID != nil {
		i, err := uc.repos.Inspections.GetByID(ctx, *m.InspectionID)
		if err != nil {
			return nil, err
		}
		if tenant.Owns(i, org.ID) {
			doc.Inspection = i
		}
	}
	return doc, nil
}

// GetByEquipment historial de mantenimiento del equipo.
func (uc *UseCase) GetByEquipment(ctx context.Context, id tenant.Identity, equipmentID string) ([]dto.MaintenanceResponse, error) {
	out := []dto.MaintenanceResponse{}
	org, err := uc.tenant.ForRead(ctx, id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return out, nil
	}
	list, err := uc.repos.Maintenance.ListByEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	for _, m := range list {
		if tenant.Owns(m, org.ID) {
			out = append(out, *dto.FromMaintenance(m))
		}
	}
	return out, nil
}

// Stats resumen de órdenes de trabajo.
func (uc *UseCase) Stats(ctx context.Context, id tenant.Identity) (dto.MaintenanceStatsResponse, error) {
	org, err := uc.tenant.ForRead(ctx, id)
	if err != nil {
		return dto.MaintenanceStatsResponse{}, err
	}
	var list []*entity.MaintenanceRecord
	if org != nil {
		if list, err = uc.repos.Maintenance.ListByOrganization(ctx, org.ID); err != nil {
			return dto.MaintenanceStatsResponse{}, err
		}
	}
	return dto.FromMaintenanceStats(fleet.ComputeMaintenanceStats(list)), nil
}

// WorkOrderPDF imprime la orden de trabajo. NotFound si no pertenece a la organización.
func (uc *UseCase) WorkOrderPDF(ctx context.Context, id tenant.Identity, recordID string) ([]byte, error) {
	org, err := uc.tenant.ForRead(ctx, id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.NotFound(maintenanceEntity)
	}
	doc, err := uc.load(ctx, org, recordID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.NotFound(maintenanceEntity)
	}
	pdf, err := uc.pdf.Generate(*doc)
	if err != nil {
		return nil, fmt.Errorf("maintenance: generar pdf %s: %w", recordID, err)
	}
	return pdf, nil
}
