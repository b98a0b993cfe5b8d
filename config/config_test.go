package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/scheduling-engine/config"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.Listen)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "£", cfg.Currency)
}

func TestLoad_NormalizesPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: \":9000\"\nstore:\n  driver: bogus\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, "sqlite", cfg.Store.Driver, "unknown driver falls back to sqlite")
	assert.Equal(t, "catalog.db", cfg.Store.DBPath)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	in := config.DefaultConfig()
	in.Listen = ":8181"
	in.Store.Driver = "csv"
	in.Store.ServiceTypesCSV = "/data/service_types.csv"
	require.NoError(t, config.Save(path, in))

	out, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8181", out.Listen)
	assert.Equal(t, "csv", out.Store.Driver)
	assert.Equal(t, "/data/service_types.csv", out.Store.ServiceTypesCSV)
}
