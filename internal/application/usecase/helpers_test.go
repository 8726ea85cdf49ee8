package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Alquiler-api/internal/application/ports"
	"github.com/jhoicas/Alquiler-api/internal/application/tenant"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/infrastructure/memory"
)

var now = time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC)

var clock = ports.Clock(func() time.Time { return now })

type env struct {
	ctx      context.Context
	store    *memory.Store
	resolver *tenant.Resolver
	org      *entity.Organization
	id       tenant.Identity
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	org := &entity.Organization{ID: "org-1", ExternalID: "ext-org-1", Name: "Alquileres Andinos", CreatedAt: now}
	require.NoError(t, store.Organizations().Create(ctx, org))
	return &env{
		ctx:      ctx,
		store:    store,
		resolver: tenant.NewResolver(store.Organizations(), store.Users()),
		org:      org,
		id:       tenant.Identity{Subject: "user_1", OrgID: org.ExternalID},
	}
}

// otherOrg registra una segunda organización y devuelve una identidad sobre ella.
func (e *env) otherOrg(t *testing.T) tenant.Identity {
	t.Helper()
	org := &entity.Organization{ID: "org-2", ExternalID: "ext-org-2", Name: "Otra"}
	require.NoError(t, e.store.Organizations().Create(e.ctx, org))
	return tenant.Identity{Subject: "user_2", OrgID: org.ExternalID}
}
