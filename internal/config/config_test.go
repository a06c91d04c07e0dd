package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(prev))
	})
}

func clearMigrationEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DATABASE_URL", "MIGRATIONS_DIR", "MIG_ONLY", "MIG_FROM"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearMigrationEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Empty(t, cfg.DatabaseURL)
	require.Equal(t, "migrations", cfg.Dir)
	require.Empty(t, cfg.Only)
	require.Empty(t, cfg.From)
}

func TestLoadReadsEnvironment(t *testing.T) {
	clearMigrationEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/app")
	t.Setenv("MIGRATIONS_DIR", "db/migrations")
	t.Setenv("MIG_ONLY", "001_a.sql")
	t.Setenv("MIG_FROM", "002_b.sql")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "postgres://localhost/app", cfg.DatabaseURL)
	require.Equal(t, "db/migrations", cfg.Dir)
	require.Equal(t, "001_a.sql", cfg.Only)
	require.Equal(t, "002_b.sql", cfg.From)
}

func TestLoadDotenvOverridesEnvironment(t *testing.T) {
	clearMigrationEnv(t)
	t.Setenv("DATABASE_URL", "postgres://fromenv/app")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(dir+"/.env", []byte("# local overrides\nDATABASE_URL=\"postgres://fromfile/app\"\n\nMIG_FROM=002_b.sql\n"), 0o600))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "postgres://fromfile/app", cfg.DatabaseURL)
	require.Equal(t, "002_b.sql", cfg.From)
}

func TestLoadTolerantOfMissingDotenv(t *testing.T) {
	clearMigrationEnv(t)
	chdir(t, t.TempDir())

	_, err := Load()
	require.NoError(t, err)
}
