package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/fraymodernizacion/control-transito/internal/core/catalog"
)

// Config represents the top-level application config plus the resolved
// vehicle-type catalog.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Catalogo  CatalogoConfig  `koanf:"catalogo"`
	Dashboard DashboardConfig `koanf:"dashboard"`
	Export    ExportConfig    `koanf:"export"`
	Backup    BackupConfig    `koanf:"backup"`

	// Tipos is populated by Load after parsing the catalog files.
	Tipos *catalog.Catalogo `koanf:"-"`
}

type ServerConfig struct {
	Port          int    `koanf:"port"`
	Host          string `koanf:"host"`
	MaxBodySizeMB int    `koanf:"max_body_size_mb"`
	Mode          string `koanf:"mode"` // debug | release
}

type DatabaseConfig struct {
	// Driver selects the backend: sqlite (embedded relational file) or
	// planilla (spreadsheet-style CSV sheet).
	Driver       string `koanf:"driver"`
	Path         string `koanf:"path"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
}

type CatalogoConfig struct {
	Dir string `koanf:"dir"`
}

type DashboardConfig struct {
	HistoryLimit     int `koanf:"history_limit"`
	DefaultRangeDays int `koanf:"default_range_days"`
}

type ExportConfig struct {
	MaxDetalle   int    `koanf:"max_detalle"`
	Organizacion string `koanf:"organizacion"`
	Dependencia  string `koanf:"dependencia"`
}

type BackupConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Interval string `koanf:"interval"` // parsed and validated on startup
	Dir      string `koanf:"dir"`
	Keep     int    `koanf:"keep"`
}

func (c BackupConfig) EffectiveInterval() string {
	if c.Interval != "" {
		return c.Interval
	}
	return "24h"
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.MaxBodySizeMB <= 0 {
		return fmt.Errorf("server.max_body_size_mb must be > 0")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}

	if c.Database.Driver != "sqlite" && c.Database.Driver != "planilla" {
		return fmt.Errorf("unsupported database.driver %q (must be sqlite or planilla)", c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be > 0")
	}
	if c.Database.MaxIdleConns <= 0 {
		return fmt.Errorf("database.max_idle_conns must be > 0")
	}

	if c.Dashboard.HistoryLimit <= 0 {
		return fmt.Errorf("dashboard.history_limit must be > 0")
	}
	if c.Dashboard.DefaultRangeDays <= 0 {
		return fmt.Errorf("dashboard.default_range_days must be > 0")
	}

	if c.Export.MaxDetalle <= 0 {
		return fmt.Errorf("export.max_detalle must be > 0")
	}

	if c.Backup.Enabled {
		interval, err := time.ParseDuration(c.Backup.EffectiveInterval())
		if err != nil {
			return fmt.Errorf("invalid backup.interval %q: %w", c.Backup.EffectiveInterval(), err)
		}
		if interval <= 0 {
			return fmt.Errorf("backup.interval must be > 0")
		}
		if strings.TrimSpace(c.Backup.Dir) == "" {
			return fmt.Errorf("backup.dir is required when backup.enabled")
		}
		if c.Backup.Keep <= 0 {
			return fmt.Errorf("backup.keep must be > 0")
		}
	}

	return nil
}

// Load parses config from file + env, validates it, then loads the vehicle
// type catalog.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.port":                  8080,
		"server.host":                  "0.0.0.0",
		"server.max_body_size_mb":      1,
		"server.mode":                  "release",
		"database.driver":              "sqlite",
		"database.path":                "transito.db",
		"database.max_open_conns":      25,
		"database.max_idle_conns":      25,
		"database.auto_migrate":        true,
		"catalogo.dir":                 "./config/catalogo",
		"dashboard.history_limit":      10,
		"dashboard.default_range_days": 30,
		"export.max_detalle":           8,
		"export.organizacion":          "",
		"export.dependencia":           "",
		"backup.enabled":               false,
		"backup.interval":              "24h",
		"backup.dir":                   "./backups",
		"backup.keep":                  7,
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("TRANSITO_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "TRANSITO_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tipos, err := catalog.LoadDir(cfg.Catalogo.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load vehicle type catalog: %w", err)
	}
	cfg.Tipos = tipos

	return &cfg, nil
}
