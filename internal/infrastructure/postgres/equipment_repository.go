package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Alquiler-api/internal/domain"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
)

var _ repository.EquipmentRepository = (*EquipmentRepo)(nil)

// EquipmentRepo implementación de EquipmentRepository (usable con pool o tx).
type EquipmentRepo struct {
	q Querier
}

// NewEquipmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEquipmentRepository(q Querier) *EquipmentRepo {
	return &EquipmentRepo{q: q}
}

const equipmentColumns = `
	id, organization_id, name, category, status, asset_value, total_hours_used,
	last_service_date, last_service_hours, next_service_date, next_service_hours,
	service_interval_days, service_interval_hours, notes, created_at, updated_at`

func scanEquipment(row pgx.Row) (*entity.Equipment, error) {
	var e entity.Equipment
	err := row.Scan(
		&e.ID, &e.OrganizationID, &e.Name, &e.Category, &e.Status, &e.AssetValue, &e.TotalHoursUsed,
		&e.LastServiceDate, &e.LastServiceHours, &e.NextServiceDate, &e.NextServiceHours,
		&e.ServiceIntervalDays, &e.ServiceIntervalHours, &e.Notes, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EquipmentRepo) Create(ctx context.Context, e *entity.Equipment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO equipment (`+equipmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		e.ID, e.OrganizationID, e.Name, e.Category, e.Status, e.AssetValue, e.TotalHoursUsed,
		e.LastServiceDate, e.LastServiceHours, e.NextServiceDate, e.NextServiceHours,
		e.ServiceIntervalDays, e.ServiceIntervalHours, e.Notes, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert equipment: %w", err)
	}
	return nil
}

func (r *EquipmentRepo) getBy(ctx context.Context, query, id string) (*entity.Equipment, error) {
	e, err := scanEquipment(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get equipment: %w", err)
	}
	return e, nil
}

func (r *EquipmentRepo) GetByID(ctx context.Context, id string) (*entity.Equipment, error) {
	return r.getBy(ctx, `SELECT `+equipmentColumns+` FROM equipment WHERE id = $1`, id)
}

// GetByIDForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
func (r *EquipmentRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Equipment, error) {
	return r.getBy(ctx, `SELECT `+equipmentColumns+` FROM equipment WHERE id = $1 FOR UPDATE`, id)
}

func (r *EquipmentRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Equipment, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	return collect(rows, func(rows pgx.Rows) (*entity.Equipment, error) { return scanEquipment(rows) })
}

func (r *EquipmentRepo) ListByOrganization(ctx context.Context, orgID string) ([]*entity.Equipment, error) {
	return r.list(ctx, `
		SELECT `+equipmentColumns+` FROM equipment
		WHERE organization_id = $1 ORDER BY created_at DESC, id DESC`, orgID)
}

func (r *EquipmentRepo) ListByOrganizationAndStatus(ctx context.Context, orgID string, status entity.EquipmentStatus) ([]*entity.Equipment, error) {
	return r.list(ctx, `
		SELECT `+equipmentColumns+` FROM equipment
		WHERE organization_id = $1 AND status = $2 ORDER BY created_at DESC, id DESC`, orgID, status)
}

func (r *EquipmentRepo) Update(ctx context.Context, e *entity.Equipment) error {
	_, err := r.q.Exec(ctx, `
		UPDATE equipment SET
			name = $2, category = $3, status = $4, asset_value = $5, total_hours_used = $6,
			last_service_date = $7, last_service_hours = $8, next_service_date = $9, next_service_hours = $10,
			service_interval_days = $11, service_interval_hours = $12, notes = $13, updated_at = $14
		WHERE id = $1`,
		e.ID, e.Name, e.Category, e.Status, e.AssetValue, e.TotalHoursUsed,
		e.LastServiceDate, e.LastServiceHours, e.NextServiceDate, e.NextServiceHours,
		e.ServiceIntervalDays, e.ServiceIntervalHours, e.Notes, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update equipment: %w", err)
	}
	return nil
}

func (r *EquipmentRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM equipment WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete equipment: %w", err)
	}
	return nil
}
