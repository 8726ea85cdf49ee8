package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Alquiler-api/internal/application/ports"
	"github.com/jhoicas/Alquiler-api/internal/domain"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/infrastructure/memory"
)

func TestStore_ListadoMasRecientePrimero(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := store.Customers()
	for _, id := range []string{"c1", "c2", "c3"} {
		require.NoError(t, repo.Create(ctx, &entity.Customer{ID: id, OrganizationID: "org"}))
	}
	require.NoError(t, repo.Create(ctx, &entity.Customer{ID: "otro", OrganizationID: "org-2"}))
	require.NoError(t, repo.Delete(ctx, "c2"))

	list, err := repo.ListByOrganization(ctx, "org")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c3", list[0].ID)
	assert.Equal(t, "c1", list[1].ID)
}

func TestStore_DevuelveCopias(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Equipment().Create(ctx, &entity.Equipment{ID: "e1", Name: "Original"}))

	e, err := store.Equipment().GetByID(ctx, "e1")
	require.NoError(t, err)
	e.Name = "Mutado"

	again, _ := store.Equipment().GetByID(ctx, "e1")
	assert.Equal(t, "Original", again.Name, "mutar la copia no debe alterar la fila")
}

func TestStore_RunRestauraAnteError(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Equipment().Create(ctx, &entity.Equipment{ID: "e1", Status: entity.EquipmentAvailable}))

	boom := errors.New("boom")
	err := store.Run(ctx, func(repos ports.TxRepos) error {
		e, err := repos.Equipment.GetByIDForUpdate(ctx, "e1")
		require.NoError(t, err)
		e.Status = entity.EquipmentRented
		require.NoError(t, repos.Equipment.Update(ctx, e))
		require.NoError(t, repos.Rentals.Create(ctx, &entity.Rental{ID: "r1", EquipmentID: "e1", StartDate: time.Now()}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	e, _ := store.Equipment().GetByID(ctx, "e1")
	assert.Equal(t, entity.EquipmentAvailable, e.Status, "el cambio de estado debe revertirse")
	r, _ := store.Rentals().GetByID(ctx, "r1")
	assert.Nil(t, r, "la inserción debe revertirse")
}

func TestStore_RunConfirma(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	err := store.Run(ctx, func(repos ports.TxRepos) error {
		return repos.Maintenance.Create(ctx, &entity.MaintenanceRecord{ID: "m1", EquipmentID: "e1"})
	})
	require.NoError(t, err)
	list, _ := store.Maintenance().ListByEquipment(ctx, "e1")
	assert.Len(t, list, 1)
}

func TestOrganizationRepo_ExternalIDUnico(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Organizations()
	require.NoError(t, repo.Create(ctx, &entity.Organization{ID: "o1", ExternalID: "org_abc"}))
	err := repo.Create(ctx, &entity.Organization{ID: "o2", ExternalID: "org_abc"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := repo.GetByExternalID(ctx, "org_abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "o1", got.ID)
}
