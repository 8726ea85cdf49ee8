package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/application/usecase"
	"github.com/jhoicas/Alquiler-api/internal/domain"
)

func TestCustomer_CRUD(t *testing.T) {
	e := newEnv(t)
	uc := usecase.NewCustomerUseCase(e.store.Customers(), e.resolver, clock)

	created, err := uc.Create(e.ctx, e.id, dto.CreateCustomerRequest{
		Name:  "Constructora Peñalosa",
		Email: "compras@penalosa.co",
		Phone: "+57 300 000 0000",
		Notes: "pago a 30 días",
	})
	require.NoError(t, err)

	found, err := uc.GetAll(e.ctx, e.id, "penalosa")
	require.NoError(t, err)
	require.Len(t, found, 1)

	// Update reemplaza todos los campos, incluidos los que llegan vacíos.
	updated, err := uc.Update(e.ctx, e.id, created.ID, dto.UpdateCustomerRequest{Name: "Peñalosa S.A.S."})
	require.NoError(t, err)
	assert.Equal(t, "Peñalosa S.A.S.", updated.Name)
	assert.Empty(t, updated.Email)
	assert.Empty(t, updated.Notes)

	_, err = uc.Update(e.ctx, e.id, created.ID, dto.UpdateCustomerRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	intruder := e.otherOrg(t)
	assert.ErrorIs(t, uc.Delete(e.ctx, intruder, created.ID), domain.ErrNotFound)
	got, err := uc.GetByID(e.ctx, intruder, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, uc.Delete(e.ctx, e.id, created.ID))
	list, err := uc.GetAll(e.ctx, e.id, "")
	require.NoError(t, err)
	assert.Empty(t, list)
}
