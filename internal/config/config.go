package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

const DefaultSQLiteDSN = "sqlite://posecraft.db"

type ProjectConfig struct {
	Project string      `yaml:"project"`
	Version int         `yaml:"version"`
	Store   StoreConfig `yaml:"store"`
	RigFile string      `yaml:"rig"`
}

type StoreConfig struct {
	Backend string `yaml:"backend"`
	DSN     string `yaml:"dsn"`
}

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	applyStoreDefaults(&cfg)

	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &cfg, nil
}

func applyStoreDefaults(cfg *ProjectConfig) {
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = BackendSQLite
	}
	if cfg.Store.Backend == BackendSQLite && strings.TrimSpace(cfg.Store.DSN) == "" {
		cfg.Store.DSN = DefaultSQLiteDSN
	}
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}

	switch cfg.Store.Backend {
	case BackendMemory, BackendSQLite:
	case BackendPostgres:
		if strings.TrimSpace(cfg.Store.DSN) == "" {
			return fmt.Errorf("postgres backend requires a dsn")
		}
	default:
		return fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}

	return nil
}
