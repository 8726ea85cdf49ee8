package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Alquiler-api/internal/domain"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
)

var _ repository.RentalRepository = (*RentalRepo)(nil)

// RentalRepo implementación de RentalRepository (usable con pool o tx).
type RentalRepo struct {
	q Querier
}

func NewRentalRepository(q Querier) *RentalRepo {
	return &RentalRepo{q: q}
}

const rentalColumns = `
	id, organization_id, equipment_id, customer_id, start_date, end_date, return_date,
	daily_rate, notes, created_at, updated_at`

func scanRental(row pgx.Row) (*entity.Rental, error) {
	var x entity.Rental
	err := row.Scan(
		&x.ID, &x.OrganizationID, &x.EquipmentID, &x.CustomerID, &x.StartDate, &x.EndDate, &x.ReturnDate,
		&x.DailyRate, &x.Notes, &x.CreatedAt, &x.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &x, nil
}

func (r *RentalRepo) Create(ctx context.Context, x *entity.Rental) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO rentals (`+rentalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		x.ID, x.OrganizationID, x.EquipmentID, x.CustomerID, x.StartDate, x.EndDate, x.ReturnDate,
		x.DailyRate, x.Notes, x.CreatedAt, x.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert rental: %w", err)
	}
	return nil
}

func (r *RentalRepo) GetByID(ctx context.Context, id string) (*entity.Rental, error) {
	x, err := scanRental(r.q.QueryRow(ctx, `SELECT `+rentalColumns+` FROM rentals WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rental: %w", err)
	}
	return x, nil
}

func (r *RentalRepo) list(ctx context.Context, where string, arg any) ([]*entity.Rental, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+rentalColumns+` FROM rentals
		WHERE `+where+` ORDER BY created_at DESC, id DESC`, arg)
	if err != nil {
		return nil, fmt.Errorf("list rentals: %w", err)
	}
	return collect(rows, func(rows pgx.Rows) (*entity.Rental, error) { return scanRental(rows) })
}

func (r *RentalRepo) ListByOrganization(ctx context.Context, orgID string) ([]*entity.Rental, error) {
	return r.list(ctx, "organization_id = $1", orgID)
}

func (r *RentalRepo) ListByEquipment(ctx context.Context, equipmentID string) ([]*entity.Rental, error) {
	return r.list(ctx, "equipment_id = $1", equipmentID)
}

func (r *RentalRepo) Update(ctx context.Context, x *entity.Rental) error {
	_, err := r.q.Exec(ctx, `
		UPDATE rentals SET end_date = $2, return_date = $3, daily_rate = $4, notes = $5, updated_at = $6
		WHERE id = $1`,
		x.ID, x.EndDate, x.ReturnDate, x.DailyRate, x.Notes, x.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update rental: %w", err)
	}
	return nil
}

func (r *RentalRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM rentals WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete rental: %w", err)
	}
	return nil
}
