// Package tenant resuelve la organización del llamador y aplica el control de propiedad
// sobre cada fila leída, en un solo lugar para todas las entidades.
package tenant

import (
	"context"
	"fmt"

	"github.com/jhoicas/Alquiler-api/internal/domain"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
)

// Identity identidad entregada por el proveedor externo en cada petición.
// OrgID es opaco: se resuelve contra Organization.ExternalID.
type Identity struct {
	Subject string
	OrgID   string
}

// Resolver traduce una Identity a la organización (y usuario) almacenados.
type Resolver struct {
	orgs  repository.OrganizationRepository
	users repository.UserRepository
}

func NewResolver(orgs repository.OrganizationRepository, users repository.UserRepository) *Resolver {
	return &Resolver{orgs: orgs, users: users}
}

// ForWrite resuelve la organización para una escritura.
// Sin identidad u organización seleccionada: ErrNotAuthenticated.
// Organización desconocida: ErrOrganizationNotFound.
func (r *Resolver) ForWrite(ctx context.Context, id Identity) (*entity.Organization, error) {
	if id.Subject == "" || id.OrgID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	org, err := r.orgs.GetByExternalID(ctx, id.OrgID)
	if err != nil {
		return nil, fmt.Errorf("tenant: obtener organización: %w", err)
	}
	if org == nil {
		return nil, domain.ErrOrganizationNotFound
	}
	return org, nil
}

// ForRead resuelve la organización para una lectura. Devuelve (nil, nil) cuando no se
// puede resolver; el llamador responde con resultados vacíos.
func (r *Resolver) ForRead(ctx context.Context, id Identity) (*entity.Organization, error) {
	if id.OrgID == "" {
		return nil, nil
	}
	org, err := r.orgs.GetByExternalID(ctx, id.OrgID)
	if err != nil {
		return nil, fmt.Errorf("tenant: obtener organización: %w", err)
	}
	return org, nil
}

// User resuelve el usuario por el subject de la identidad.
func (r *Resolver) User(ctx context.Context, id Identity) (*entity.User, error) {
	if id.Subject == "" {
		return nil, domain.ErrNotAuthenticated
	}
	u, err := r.users.GetByExternalID(ctx, id.Subject)
	if err != nil {
		return nil, fmt.Errorf("tenant: obtener usuario: %w", err)
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// Owned entidad con organización dueña. Los punteros a entidad la implementan.
type Owned interface {
	comparable
	OwnerID() string
}

// Load obtiene una fila con get y verifica que pertenezca a orgID. Una fila inexistente
// y una fila de otra organización producen el mismo domain.NotFound(name).
func Load[T Owned](ctx context.Context, get func(context.Context, string) (T, error), id, orgID, name string) (T, error) {
	var zero T
	v, err := get(ctx, id)
	if err != nil {
		return zero, err
	}
	if v == zero || v.OwnerID() != orgID {
		return zero, domain.NotFound(name)
	}
	return v, nil
}

// Owns indica si v existe y pertenece a orgID.
func Owns[T Owned](v T, orgID string) bool {
	var zero T
	return v != zero && v.OwnerID() == orgID
}
