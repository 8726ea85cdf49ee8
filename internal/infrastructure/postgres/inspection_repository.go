package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Alquiler-api/internal/domain"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
)

var _ repository.InspectionRepository = (*InspectionRepo)(nil)

// InspectionRepo implementación de InspectionRepository. El checklist se guarda como
// JSONB y las fotos como TEXT[].
type InspectionRepo struct {
	q Querier
}

func NewInspectionRepository(q Querier) *InspectionRepo {
	return &InspectionRepo{q: q}
}

const inspectionColumns = `
	id, organization_id, equipment_id, type, rental_id, checklist_results, overall_condition,
	damage_found, damage_description, damage_cost, maintenance_required, maintenance_notes,
	photos, inspector_id, inspected_at, created_at`

func scanInspection(row pgx.Row) (*entity.Inspection, error) {
	var (
		i         entity.Inspection
		checklist []byte
	)
	err := row.Scan(
		&i.ID, &i.OrganizationID, &i.EquipmentID, &i.Type, &i.RentalID, &checklist, &i.OverallCondition,
		&i.DamageFound, &i.DamageDescription, &i.DamageCost, &i.MaintenanceRequired, &i.MaintenanceNotes,
		&i.Photos, &i.InspectorID, &i.InspectedAt, &i.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(checklist) > 0 {
		if err := json.Unmarshal(checklist, &i.ChecklistResults); err != nil {
			return nil, fmt.Errorf("decode checklist_results: %w", err)
		}
	}
	return &i, nil
}

func (r *InspectionRepo) Create(ctx context.Context, i *entity.Inspection) error {
	checklist := i.ChecklistResults
	if checklist == nil {
		checklist = []entity.ChecklistResult{}
	}
	raw, err := json.Marshal(checklist)
	if err != nil {
		return fmt.Errorf("encode checklist_results: %w", err)
	}
	photos := i.Photos
	if photos == nil {
		photos = []string{}
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO inspections (`+inspectionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		i.ID, i.OrganizationID, i.EquipmentID, i.Type, i.RentalID, raw, i.OverallCondition,
		i.DamageFound, i.DamageDescription, i.DamageCost, i.MaintenanceRequired, i.MaintenanceNotes,
		photos, i.InspectorID, i.InspectedAt, i.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inspection: %w", err)
	}
	return nil
}

func (r *InspectionRepo) GetByID(ctx context.Context, id string) (*entity.Inspection, error) {
	i, err := scanInspection(r.q.QueryRow(ctx, `SELECT `+inspectionColumns+` FROM inspections WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inspection: %w", err)
	}
	return i, nil
}

func (r *InspectionRepo) list(ctx context.Context, where string, arg any) ([]*entity.Inspection, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+inspectionColumns+` FROM inspections
		WHERE `+where+` ORDER BY created_at DESC, id DESC`, arg)
	if err != nil {
		return nil, fmt.Errorf("list inspections: %w", err)
	}
	return collect(rows, func(rows pgx.Rows) (*entity.Inspection, error) { return scanInspection(rows) })
}

func (r *InspectionRepo) ListByOrganization(ctx context.Context, orgID string) ([]*entity.Inspection, error) {
	return r.list(ctx, "organization_id = $1", orgID)
}

func (r *InspectionRepo) ListByEquipment(ctx context.Context, equipmentID string) ([]*entity.Inspection, error) {
	return r.list(ctx, "equipment_id = $1", equipmentID)
}

func (r *InspectionRepo) ListByRental(ctx context.Context, rentalID string) ([]*entity.Inspection, error) {
	return r.list(ctx, "rental_id = $1", rentalID)
}
