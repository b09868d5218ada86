package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/GriffinCanCode/hildon-home/internal/shared/paths"
)

// Store backends
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds all process configuration.
type Config struct {
	Store   StoreConfig
	Theme   ThemeConfig
	Home    HomeConfig
	Status  StatusConfig
	Logging LogConfig
}

// StoreConfig selects the views configuration backend.
type StoreConfig struct {
	Backend string `envconfig:"HOME_STORE_BACKEND" default:"file"`
	Path    string `envconfig:"HOME_STORE_PATH"`
}

// ThemeConfig locates the theme background descriptors.
type ThemeConfig struct {
	Current string `envconfig:"HOME_THEME_CURRENT" default:"/etc/hildon/theme/backgrounds/theme_bg.desktop"`
	Default string `envconfig:"HOME_THEME_DEFAULT" default:"/usr/share/themes/default/backgrounds/theme_bg.desktop"`
}

// HomeConfig holds process lifecycle settings.
type HomeConfig struct {
	StampFile   string `envconfig:"HOME_STAMP_FILE" default:"/tmp/osso-appl-states/hildon-desktop/hildon-home.stamp"`
	DBusEnabled bool   `envconfig:"HOME_DBUS_ENABLED" default:"true"`
}

// StatusConfig holds the optional HTTP status listener serving health,
// the current views and Prometheus metrics. An empty Addr disables it.
type StatusConfig struct {
	Addr              string   `envconfig:"HOME_STATUS_ADDR"`
	AllowOrigins      []string `envconfig:"HOME_STATUS_ORIGINS"`
	RequestsPerSecond int      `envconfig:"HOME_STATUS_RPS" default:"5"`
	Burst             int      `envconfig:"HOME_STATUS_BURST" default:"10"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Finalize validates the configuration and fills in paths derived from the
// store backend. Call it again after changing fields by hand.
func (c *Config) Finalize() error {
	if err := c.validate(); err != nil {
		return err
	}
	c.applyDerivedDefaults()
	return nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	cfg := &Config{
		Store: StoreConfig{
			Backend: BackendFile,
		},
		Theme: ThemeConfig{
			Current: paths.CurrentThemeBackgrounds,
			Default: paths.DefaultThemeBackgrounds,
		},
		Home: HomeConfig{
			StampFile:   paths.StampFile,
			DBusEnabled: true,
		},
		Status: StatusConfig{
			RequestsPerSecond: 5,
			Burst:             10,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
	cfg.applyDerivedDefaults()
	return cfg
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("HOME_STORE_BACKEND must be one of file, sqlite, memory: got %q", c.Store.Backend)
	}
	if c.Status.RequestsPerSecond <= 0 || c.Status.Burst <= 0 {
		return fmt.Errorf("HOME_STATUS_RPS and HOME_STATUS_BURST must be positive")
	}
	return nil
}

func (c *Config) applyDerivedDefaults() {
	if c.Store.Path != "" {
		return
	}
	switch c.Store.Backend {
	case BackendSQLite:
		c.Store.Path = paths.UserConfigDir() + "/views.db"
	case BackendFile:
		c.Store.Path = paths.DefaultStorePath()
	}
}
