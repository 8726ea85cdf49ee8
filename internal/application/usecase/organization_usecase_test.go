package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/application/ports"
	"github.com/jhoicas/Alquiler-api/internal/application/tenant"
	"github.com/jhoicas/Alquiler-api/internal/application/usecase"
	"github.com/jhoicas/Alquiler-api/internal/domain"
)

func TestOrganization_StoreSoloEscribeCambios(t *testing.T) {
	e := newEnv(t)
	current := now
	uc := usecase.NewOrganizationUseCase(e.store.Organizations(), e.resolver, ports.Clock(func() time.Time { return current }))

	_, err := uc.Store(e.ctx, tenant.Identity{}, dto.StoreOrganizationRequest{ExternalID: "x", Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)

	in := dto.StoreOrganizationRequest{ExternalID: "ext-org-9", Name: "Rentas del Norte", Slug: "rentas-norte"}
	created, err := uc.Store(e.ctx, e.id, in)
	require.NoError(t, err)

	current = now.Add(time.Hour)
	same, err := uc.Store(e.ctx, e.id, in)
	require.NoError(t, err)
	assert.Equal(t, created.ID, same.ID)
	assert.True(t, same.UpdatedAt.Equal(now), "sin cambios no se actualiza")

	in.Name = "Rentas del Norte S.A."
	changed, err := uc.Store(e.ctx, e.id, in)
	require.NoError(t, err)
	assert.True(t, changed.UpdatedAt.Equal(current))

	current = now.Add(2 * time.Hour)
	synced, err := uc.UpsertFromProvider(e.ctx, in)
	require.NoError(t, err)
	assert.True(t, synced.UpdatedAt.Equal(current), "el webhook siempre escribe")
}

func TestOrganization_Current(t *testing.T) {
	e := newEnv(t)
	uc := usecase.NewOrganizationUseCase(e.store.Organizations(), e.resolver, clock)

	got, err := uc.Current(e.ctx, e.id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, e.org.Name, got.Name)

	none, err := uc.Current(e.ctx, tenant.Identity{Subject: "user_1"})
	require.NoError(t, err)
	assert.Nil(t, none)

	byExt, err := uc.GetByExternalID(e.ctx, "ext-org-1")
	require.NoError(t, err)
	assert.Equal(t, e.org.ID, byExt.ID)
}

func TestUser_StoreYCurrent(t *testing.T) {
	e := newEnv(t)
	uc := usecase.NewUserUseCase(e.store.Users(), clock)

	none, err := uc.Current(e.ctx, e.id)
	require.NoError(t, err)
	assert.Nil(t, none)

	created, err := uc.Store(e.ctx, e.id, dto.StoreUserRequest{Email: "ana@andinos.co", Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "user_1", created.ExternalID)

	updated, err := uc.UpsertFromProvider(e.ctx, dto.SyncUserRequest{ExternalID: "user_1", Email: "ana.r@andinos.co"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	got, err := uc.Current(e.ctx, e.id)
	require.NoError(t, err)
	assert.Equal(t, "ana.r@andinos.co", got.Email)

	_, err = uc.Store(e.ctx, tenant.Identity{}, dto.StoreUserRequest{Email: "x@y.z"})
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}
