package vectorize

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds connection parameters for the vectorization service.
type Config struct {
	Endpoint       string  `toml:"endpoint"`
	Timeout        string  `toml:"timeout"`
	DefaultPxPerFt float64 `toml:"default_px_per_ft"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Endpoint       string
	Timeout        string
	DefaultPxPerFt string
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Endpoint != "" {
		c.Endpoint = overlay.Endpoint
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.DefaultPxPerFt != 0 {
		c.DefaultPxPerFt = overlay.DefaultPxPerFt
	}
}

func (c *Config) loadDefaults() {
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
	if c.DefaultPxPerFt == 0 {
		c.DefaultPxPerFt = 12.0
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Endpoint != "" {
		if v := os.Getenv(env.Endpoint); v != "" {
			c.Endpoint = v
		}
	}
	if env.Timeout != "" {
		if v := os.Getenv(env.Timeout); v != "" {
			c.Timeout = v
		}
	}
	if env.DefaultPxPerFt != "" {
		if v := os.Getenv(env.DefaultPxPerFt); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
				c.DefaultPxPerFt = f
			}
		}
	}
}

func (c *Config) validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint required")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if c.DefaultPxPerFt <= 0 {
		return fmt.Errorf("default_px_per_ft must be positive")
	}
	return nil
}
