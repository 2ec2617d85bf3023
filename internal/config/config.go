package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/planforge/planforge/internal/vectorize"
	"github.com/planforge/planforge/pkg/database"
	"github.com/planforge/planforge/pkg/identity"
	"github.com/planforge/planforge/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvPlanforgeEnv             = "PLANFORGE_ENV"
	EnvPlanforgeShutdownTimeout = "PLANFORGE_SHUTDOWN_TIMEOUT"
	EnvPlanforgeVersion         = "PLANFORGE_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "PLANFORGE_DB_HOST",
	Port:            "PLANFORGE_DB_PORT",
	Name:            "PLANFORGE_DB_NAME",
	User:            "PLANFORGE_DB_USER",
	Password:        "PLANFORGE_DB_PASSWORD",
	SSLMode:         "PLANFORGE_DB_SSL_MODE",
	MaxOpenConns:    "PLANFORGE_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "PLANFORGE_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "PLANFORGE_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "PLANFORGE_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	PlanContainer:    "PLANFORGE_STORAGE_PLAN_CONTAINER",
	OutputContainer:  "PLANFORGE_STORAGE_OUTPUT_CONTAINER",
	ConnectionString: "PLANFORGE_STORAGE_CONNECTION_STRING",
	AccountURL:       "PLANFORGE_STORAGE_ACCOUNT_URL",
}

var vectorizeEnv = &vectorize.Env{
	Endpoint:       "PLANFORGE_VECTORIZE_ENDPOINT",
	Timeout:        "PLANFORGE_VECTORIZE_TIMEOUT",
	DefaultPxPerFt: "PLANFORGE_VECTORIZE_DEFAULT_PX_PER_FT",
}

var identityEnv = &identity.Env{
	Enabled:  "PLANFORGE_IDENTITY_ENABLED",
	Issuer:   "PLANFORGE_IDENTITY_ISSUER",
	ClientID: "PLANFORGE_IDENTITY_CLIENT_ID",
}

// Config is the root configuration for the Planforge service.
type Config struct {
	Server          ServerConfig     `toml:"server"`
	Database        database.Config  `toml:"database"`
	Storage         storage.Config   `toml:"storage"`
	Vectorize       vectorize.Config `toml:"vectorize"`
	Identity        identity.Config  `toml:"identity"`
	API             APIConfig        `toml:"api"`
	ShutdownTimeout string           `toml:"shutdown_timeout"`
	Version         string           `toml:"version"`
}

// Env returns the PLANFORGE_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvPlanforgeEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Vectorize.Merge(&overlay.Vectorize)
	c.Identity.Merge(&overlay.Identity)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Vectorize.Finalize(vectorizeEnv); err != nil {
		return fmt.Errorf("vectorize: %w", err)
	}
	if err := c.Identity.Finalize(identityEnv); err != nil {
		return fmt.Errorf("identity: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvPlanforgeShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvPlanforgeVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvPlanforgeEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
