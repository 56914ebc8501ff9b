package config

import (
	"fmt"

	"github.com/cognicore/ddc/pkg/ddc/catalog"
)

// Loader loads the configuration file and the catalog it names. Non-empty
// override fields win over the file.
type Loader struct {
	ConfigPath  string
	CatalogPath string
	DBPath      string
	LogLevel    string
}

// Components holds all loaded configuration components
type Components struct {
	Config *Config
	// Tree is nil when no catalog file is configured; callers then read
	// the catalog from the store.
	Tree *catalog.Tree
}

// Load reads the configuration and catalog and returns initialized components
func (l *Loader) Load() (*Components, error) {
	cfg := Default()
	if l.ConfigPath != "" {
		loaded, err := LoadConfig(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if l.CatalogPath != "" {
		cfg.Catalog = l.CatalogPath
	}
	if l.DBPath != "" {
		cfg.DB = l.DBPath
	}
	if l.LogLevel != "" {
		cfg.LogLevel = l.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	comp := &Components{Config: cfg}
	if cfg.Catalog != "" {
		tree, err := catalog.Load(cfg.Catalog)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		comp.Tree = tree
	}

	return comp, nil
}
