package postgres

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigraciones_CubrenTodasLasTablas(t *testing.T) {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	script, err := migrationsFS.ReadFile(names[0])
	require.NoError(t, err)
	for _, table := range []string{
		"organizations", "users", "equipment", "customers", "rentals", "inspections", "maintenance_records",
	} {
		assert.Contains(t, string(script), "CREATE TABLE IF NOT EXISTS "+table+" (", table)
	}
}
