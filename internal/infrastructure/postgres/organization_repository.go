package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Alquiler-api/internal/domain"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
)

var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

// OrganizationRepo implementación de OrganizationRepository.
type OrganizationRepo struct {
	q Querier
}

func NewOrganizationRepository(q Querier) *OrganizationRepo {
	return &OrganizationRepo{q: q}
}

const orgColumns = `id, external_id, name, slug, image_url, created_at, updated_at`

func (r *OrganizationRepo) Create(ctx context.Context, org *entity.Organization) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO organizations (`+orgColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		org.ID, org.ExternalID, org.Name, org.Slug, org.ImageURL, org.CreatedAt, org.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

func (r *OrganizationRepo) get(ctx context.Context, where string, arg any) (*entity.Organization, error) {
	var o entity.Organization
	err := r.q.QueryRow(ctx, `SELECT `+orgColumns+` FROM organizations WHERE `+where, arg).Scan(
		&o.ID, &o.ExternalID, &o.Name, &o.Slug, &o.ImageURL, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return &o, nil
}

func (r *OrganizationRepo) GetByID(ctx context.Context, id string) (*entity.Organization, error) {
	return r.get(ctx, "id = $1", id)
}

func (r *OrganizationRepo) GetByExternalID(ctx context.Context, externalID string) (*entity.Organization, error) {
	return r.get(ctx, "external_id = $1", externalID)
}

func (r *OrganizationRepo) Update(ctx context.Context, org *entity.Organization) error {
	_, err := r.q.Exec(ctx, `
		UPDATE organizations SET name = $2, slug = $3, image_url = $4, updated_at = $5
		WHERE id = $1`,
		org.ID, org.Name, org.Slug, org.ImageURL, org.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update organization: %w", err)
	}
	return nil
}
