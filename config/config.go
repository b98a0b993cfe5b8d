// Package config provides the YAML-based application configuration.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// StoreConfig selects and configures the catalog storage backend.
type StoreConfig struct {
	// Driver is "sqlite" or "csv".
	Driver string `yaml:"driver"`

	// DBPath is the SQLite database path (sqlite driver).
	// Use ":memory:" for an in-memory database.
	DBPath string `yaml:"db_path"`

	// ServiceTypesCSV and ServiceRatesCSV are the CSV file paths
	// (csv driver). They match the original system's on-disk files.
	ServiceTypesCSV string `yaml:"service_types_csv"`
	ServiceRatesCSV string `yaml:"service_rates_csv"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`

	// Currency is the symbol prefixed to formatted amounts in API
	// responses.
	Currency string `yaml:"currency"`

	// Store configures catalog storage.
	Store StoreConfig `yaml:"store"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:   "127.0.0.1:8080",
		Currency: "£",
		Store: StoreConfig{
			Driver:          "sqlite",
			DBPath:          "catalog.db",
			ServiceTypesCSV: "service_types.csv",
			ServiceRatesCSV: "services.csv",
		},
	}
}

// Normalize fills in missing/zero values so partially filled configs still
// behave correctly.
func (c *Config) Normalize() {
	defaults := DefaultConfig()
	if c.Listen == "" {
		c.Listen = defaults.Listen
	}
	if c.Currency == "" {
		c.Currency = defaults.Currency
	}
	switch c.Store.Driver {
	case "sqlite", "csv":
		// ok
	default:
		c.Store.Driver = defaults.Store.Driver
	}
	if c.Store.DBPath == "" {
		c.Store.DBPath = defaults.Store.DBPath
	}
	if c.Store.ServiceTypesCSV == "" {
		c.Store.ServiceTypesCSV = defaults.Store.ServiceTypesCSV
	}
	if c.Store.ServiceRatesCSV == "" {
		c.Store.ServiceRatesCSV = defaults.Store.ServiceRatesCSV
	}
}

// Load loads configuration from the given YAML path. A missing file yields
// the defaults without error; the first explicit Save creates it.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes the configuration atomically (temp file + rename). The
// server itself only reads its configuration; Save is for provisioning
// and setup tooling that generates config files.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".scheduler-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
