// Package config loads tactica runtime settings from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "TACTICA_"

// Config holds everything cmd/tactica needs to build a session.
type Config struct {
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	// Content
	ContentDir    string `yaml:"content_dir" env:"CONTENT_DIR"`
	EquationsPath string `yaml:"equations_path" env:"EQUATIONS_PATH"`

	Database DatabaseConfig `yaml:"database" envPrefix:"DB_"`

	// Seed for the combat random stream. Zero means derive it from the clock.
	Seed uint64 `yaml:"seed" env:"SEED"`
}

// DatabaseConfig selects the save store.
type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"DRIVER"` // "sqlite" or "postgres"
	DSN    string `yaml:"dsn" env:"DSN"`
}

// Enabled reports whether a store is configured.
func (d DatabaseConfig) Enabled() bool { return d.Driver != "" && d.DSN != "" }

// Default returns Config with sensible defaults.
func Default() Config {
	return Config{
		LogLevel:      "info",
		ContentDir:    "content/catalog",
		EquationsPath: "content/equations.yaml",
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "file:tactica.db",
		},
	}
}

// Load reads config from a YAML file and applies TACTICA_* environment
// overrides. If the file doesn't exist, defaults are used.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}
