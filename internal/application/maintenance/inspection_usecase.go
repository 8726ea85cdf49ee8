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

// InspectionUseCase registro y consulta de inspecciones.
type InspectionUseCase struct {
	repos  Repos
	blobs  ports.BlobStore
	tenant *tenant.Resolver
	clock  ports.Clock
	log    zerolog.Logger
}

func NewInspectionUseCase(repos Repos, blobs ports.BlobStore, resolver *tenant.Resolver, clock ports.Clock, log zerolog.Logger) *InspectionUseCase {
	return &InspectionUseCase{
		repos:  repos,
		blobs:  blobs,
		tenant: resolver,
		clock:  clock,
		log:    log.With().Str("component", "inspection").Logger(),
	}
}

// Create registra una inspección hecha por el usuario autenticado. No modifica el equipo:
// marcar maintenance_required no abre una orden de trabajo.
func (uc *InspectionUseCase) Create(ctx context.Context, id tenant.Identity, in dto.CreateInspectionRequest) (*dto.InspectionResponse, error) {
	org, err := uc.tenant.ForWrite(ctx, id)
	if err != nil {
		return nil, err
	}
	inspType := entity.InspectionType(in.Type)
	if !inspType.Valid() {
		return nil, domain.Invalid("tipo de inspección desconocido: " + in.Type)
	}
	condition := entity.OverallCondition(in.OverallCondition)
	if !condition.Valid() {
		return nil, domain.Invalid("condición desconocida: " + in.OverallCondition)
	}
	checklist := make([]entity.ChecklistResult, 0, len(in.ChecklistResults))
	for _, c := range in.ChecklistResults {
		st := entity.ChecklistStatus(c.Status)
		if !st.Valid() {
			return nil, domain.Invalid("estado de checklist desconocido: " + c.Status)
		}
		checklist = append(checklist, entity.ChecklistResult{Item: c.Item, Status: st, Notes: c.Notes})
	}
	if in.DamageCost != nil && in.DamageCost.IsNegative() {
		return nil, domain.Invalid("damage_cost no puede ser negativo")
	}

	if _, err := tenant.Load(ctx, uc.repos.Equipment.GetByID, in.EquipmentID, org.ID, equipmentEntity); err != nil {
		return nil, err
	}
	if in.RentalID != nil && *in.RentalID != "" {
		if _, err := tenant.Load(ctx, uc.repos.Rentals.GetByID, *in.RentalID, org.ID, rentalEntity); err != nil {
			return nil, err
		}
	} else {
		in.RentalID = nil
	}
	inspector, err := uc.tenant.User(ctx, id)
	if err != nil {
		return nil, err
	}

	photos := in.Photos
	if photos == nil {
		photos = []string{}
	}
	now := uc.clock.Now()
	i := &entity.Inspection{
		ID:                  uuid.New().String(),
		OrganizationID:      org.ID,
		EquipmentID:         in.EquipmentID,
		Type:                inspType,
		RentalID:            in.RentalID,
		ChecklistResults:    checklist,
		OverallCondition:    condition,
		DamageFound:         in.DamageFound,
		DamageDescription:   in.DamageDescription,
		DamageCost:          in.DamageCost,
		MaintenanceRequired: in.MaintenanceRequired,
		MaintenanceNotes:    in.MaintenanceNotes,
		Photos:              photos,
		InspectorID:         inspector.ID,
		InspectedAt:         now,
		CreatedAt:           now,
	}
	if err := uc.repos.Inspections.Create(ctx, i); err != nil {
		return nil, fmt.Errorf("inspection: crear: %w", err)
	}
	uc.log.Info().
		Str("inspection_id", i.ID).
		Str("equipment_id", i.EquipmentID).
		Str("type", string(i.Type)).
		Bool("maintenance_required", i.MaintenanceRequired).
		Msg("inspección registrada")
	return dto.FromInspection(i), nil
}

// GetAll lista las inspecciones con el nombre del equipo, más recientes primero.
func (uc *InspectionUseCase) GetAll(ctx context.Context, id tenant.Identity) ([]dto.InspectionResponse, error) {
	out := []dto.InspectionResponse{}
	org, err := uc.tenant.ForRead(ctx, id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return out, nil
	}
	list, err := uc.repos.Inspections.ListByOrganization(ctx, org.ID)
	if err != nil {
		return nil, err
	}
	equipment, err := uc.repos.Equipment.ListByOrganization(ctx, org.ID)
	if err != nil {
		return nil, err
	}
	names := fleet.NewNames(equipment, nil)
	for _, i := range list {
		resp := dto.FromInspection(i)
		resp.EquipmentName = names.Equipment(i.EquipmentID)
		out = append(out, *resp)
	}
	return out, nil
}

// GetByID devuelve la inspección con su equipo, alquiler e inspector, o nil.
func (uc *InspectionUseCase) GetByID(ctx context.Context, id tenant.Identity, inspectionID string) (*dto.InspectionDetailResponse, error) {
	org, err := uc.tenant.ForRead(ctx, id)
	if err != nil || org == nil {
		return nil, err
	}
	i, err := uc.repos.Inspections.GetByID(ctx, inspectionID)
	if err != nil {
		return nil, err
	}
	if !tenant.Owns(i, org.ID) {
		return nil, nil
	}
	out := &dto.InspectionDetailResponse{InspectionResponse: *dto.FromInspection(i)}
	out.EquipmentName = fleet.UnknownEquipment
	e, err := uc.repos.Equipment.GetByID(ctx, i.EquipmentID)
	if err != nil {
		return nil, err
	}
	if tenant.Owns(e, org.ID) {
		out.Equipment = dto.FromEquipment(e)
		out.EquipmentName = e.Name
	}
	if i.RentalID != nil {
		r, err := uc.repos.Rentals.GetByID(ctx, *i.RentalID)
		if err != nil {
			return nil, err
		}
		if tenant.Owns(r, org.ID) {
			out.Rental = dto.FromRental(r, uc.clock.Now())
		}
	}
	u, err := uc.repos.Users.GetByID(ctx, i.InspectorID)
	if err != nil {
		return nil, err
	}
	if u != nil {
		out.Inspector = dto.FromUser(u)
	}
	return out, nil
}

// GetByEquipment historial de inspecciones del equipo.
func (uc *InspectionUseCase) GetByEquipment(ctx context.Context, id tenant.Identity, equipmentID string) ([]dto.InspectionResponse, error) {
	return uc.listOwned(ctx, id, func(ctx context.Context) ([]*entity.Inspection, error) {
		return uc.repos.Inspections.ListByEquipment(ctx, equipmentID)
	})
}

// GetByRental inspecciones asociadas al alquiler.
func (uc *InspectionUseCase) GetByRental(ctx context.Context, id tenant.Identity, rentalID string) ([]dto.InspectionResponse, error) {
	return uc.listOwned(ctx, id, func(ctx context.Context) ([]*entity.Inspection, error) {
		return uc.repos.Inspections.ListByRental(ctx, rentalID)
	})
}

func (uc *InspectionUseCase) listOwned(ctx context.Context, id tenant.Identity, list func(context.Context) ([]*entity.Inspection, error)) ([]dto.InspectionResponse, error) {
	out := []dto.InspectionResponse{}
	org, err := uc.tenant.ForRead(ctx, id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return out, nil
	}
	rows, err := list(ctx)
	if err != nil {
		return nil, err
	}
	for _, i := range rows {
		if tenant.Owns(i, org.ID) {
			out = append(out, *dto.FromInspection(i))
		}
	}
	return out, nil
}

// Checklist ítems sugeridos para una inspección nueva.
func (uc *InspectionUseCase) Checklist() dto.ChecklistTemplateResponse {
	items := make([]string, len(entity.DefaultChecklistItems))
	copy(items, entity.DefaultChecklistItems)
	return dto.ChecklistTemplateResponse{Items: items}
}

// GenerateUploadURL emite una URL de un solo uso para subir una foto de inspección.
func (uc *InspectionUseCase) GenerateUploadURL(ctx context.Context, id tenant.Identity) (*dto.UploadURLResponse, error) {
	if id.Subject == "" {
		return nil, domain.ErrNotAuthenticated
	}
	ticket, err := uc.blobs.GenerateUploadURL(ctx)
	if err != nil {
		return nil, fmt.Errorf("inspection: url de subida: %w", err)
	}
	return &dto.UploadURLResponse{UploadURL: ticket.URL, ExpiresAt: ticket.ExpiresAt}, nil
}

// Stats resumen de inspecciones de la organización.
func (uc *InspectionUseCase) Stats(ctx context.Context, id tenant.Identity) (dto.InspectionStatsResponse, error) {
	org, err := uc.tenant.ForRead(ctx, id)
	if err != nil {
		return dto.InspectionStatsResponse{}, err
	}
	var list []*entity.Inspection
	if org != nil {
		if list, err = uc.repos.Inspections.ListByOrganization(ctx, org.ID); err != nil {
			return dto.InspectionStatsResponse{}, err
		}
	}
	return dto.FromInspectionStats(fleet.ComputeInspectionStats(list)), nil
}
