package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse(t *testing.T) {
	token, err := Generate("secreto", "user_2abc", "org_9xyz", "alquiler-api", 5)
	require.NoError(t, err)

	sub, org, err := Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "user_2abc", sub)
	assert.Equal(t, "org_9xyz", org)
}

func TestParse_SinOrganizacion(t *testing.T) {
	token, err := Generate("secreto", "user_2abc", "", "alquiler-api", 5)
	require.NoError(t, err)

	sub, org, err := Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "user_2abc", sub)
	assert.Empty(t, org)
}

func TestParse_Errores(t *testing.T) {
	token, err := Generate("secreto", "user_2abc", "org_9xyz", "alquiler-api", 5)
	require.NoError(t, err)

	_, _, err = Parse("otro", token)
	assert.Error(t, err)

	expired, err := Generate("secreto", "user_2abc", "org_9xyz", "alquiler-api", -1)
	require.NoError(t, err)
	_, _, err = Parse("secreto", expired)
	assert.Error(t, err)

	_, err = Generate("", "user_2abc", "", "", 5)
	assert.Error(t, err)
}
