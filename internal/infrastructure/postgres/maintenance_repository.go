package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Alquiler-api/internal/domain"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
)

var _ repository.MaintenanceRepository = (*MaintenanceRepo)(nil)

// MaintenanceRepo implementación de MaintenanceRepository (usable con pool o tx).
type MaintenanceRepo struct {
	q Querier
}

func NewMaintenanceRepository(q Querier) *MaintenanceRepo {
	return &MaintenanceRepo{q: q}
}

const maintenanceColumns = `
	id, organization_id, equipment_id, source, inspection_id, work_order, status, parts_used,
	labor_description, cost, hours_at_service, assigned_to, notes, completed_at, created_at, updated_at`

func scanMaintenance(row pgx.Row) (*entity.MaintenanceRecord, error) {
	var m entity.MaintenanceRecord
	err := row.Scan(
		&m.ID, &m.OrganizationID, &m.EquipmentID, &m.Source, &m.InspectionID, &m.WorkOrder, &m.Status, &m.PartsUsed,
		&m.LaborDescription, &m.Cost, &m.HoursAtService, &m.AssignedTo, &m.Notes, &m.CompletedAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MaintenanceRepo) Create(ctx context.Context, m *entity.MaintenanceRecord) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO maintenance_records (`+maintenanceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		m.ID, m.OrganizationID, m.EquipmentID, m.Source, m.InspectionID, m.WorkOrder, m.Status, m.PartsUsed,
		m.LaborDescription, m.Cost, m.HoursAtService, m.AssignedTo, m.Notes, m.CompletedAt, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert maintenance record: %w", err)
	}
	return nil
}

func (r *MaintenanceRepo) GetByID(ctx context.Context, id string) (*entity.MaintenanceRecord, error) {
	m, err := scanMaintenance(r.q.QueryRow(ctx, `SELECT `+maintenanceColumns+` FROM maintenance_records WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get maintenance record: %w", err)
	}
	return m, nil
}

func (r *MaintenanceRepo) list(ctx context.Context, where string, arg any) ([]*entity.MaintenanceRecord, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+maintenanceColumns+` FROM maintenance_records
		WHERE `+where+` ORDER BY created_at DESC, id DESC`, arg)
	if err != nil {
		return nil, fmt.Errorf("list maintenance records: %w", err)
	}
	return collect(rows, func(rows pgx.Rows) (*entity.MaintenanceRecord, error) { return scanMaintenance(rows) })
}

func (r *MaintenanceRepo) ListByOrganization(ctx context.Context, orgID string) ([]*entity.MaintenanceRecord, error) {
	return r.list(ctx, "organization_id = $1", orgID)
}

func (r *MaintenanceRepo) ListByEquipment(ctx context.Context, equipmentID string) ([]*entity.MaintenanceRecord, error) {
	return r.list(ctx, "equipment_id = $1", equipmentID)
}

func (r *MaintenanceRepo) Update(ctx context.Context, m *entity.MaintenanceRecord) error {
	_, err := r.q.Exec(ctx, `
		UPDATE maintenance_records SET
			work_order = $2, status = $3, parts_used = $4, labor_description = $5, cost = $6,
			hours_at_service = $7, assigned_to = $8, notes = $9, completed_at = $10, updated_at = $11
		WHERE id = $1`,
		m.ID, m.WorkOrder, m.Status, m.PartsUsed, m.LaborDescription, m.Cost,
		m.HoursAtService, m.AssignedTo, m.Notes, m.CompletedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update maintenance record: %w", err)
	}
	return nil
}
