package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/ddc/pkg/ddc/internalerr"
	"github.com/cognicore/ddc/pkg/ddc/results"
)

// Config represents the ddc configuration file
type Config struct {
	Catalog        string   `yaml:"catalog"`
	DB             string   `yaml:"db"`
	LogLevel       string   `yaml:"log_level"`
	ReservedLabels []string `yaml:"reserved_labels"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		LogLevel:       "info",
		ReservedLabels: append([]string(nil), results.DefaultReserved...),
	}
}

// LoadConfig loads a configuration from a YAML file. Relative catalog and
// db paths are resolved against the directory holding the file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}

	dir := filepath.Dir(path)
	cfg.Catalog = resolve(dir, cfg.Catalog)
	cfg.DB = resolve(dir, cfg.DB)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for obvious mistakes
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", internalerr.ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
