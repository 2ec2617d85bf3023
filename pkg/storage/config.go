package storage

import (
	"fmt"
	"os"
)

// Config holds Azure Blob Storage connection parameters. Either
// ConnectionString or AccountURL must be set; the connection string wins
// when both are present.
type Config struct {
	PlanContainer    string `toml:"plan_container"`
	OutputContainer  string `toml:"output_container"`
	ConnectionString string `toml:"connection_string"`
	AccountURL       string `toml:"account_url"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	PlanContainer    string
	OutputContainer  string
	ConnectionString string
	AccountURL       string
}

// Containers returns all configured container names.
func (c *Config) Containers() []string {
	return []string{c.PlanContainer, c.OutputContainer}
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
	if overlay.PlanContainer != "" {
		c.PlanContainer = overlay.PlanContainer
	}
	if overlay.OutputContainer != "" {
		c.OutputContainer = overlay.OutputContainer
	}
	if overlay.ConnectionString != "" {
		c.ConnectionString = overlay.ConnectionString
	}
	if overlay.AccountURL != "" {
		c.AccountURL = overlay.AccountURL
	}
}

func (c *Config) loadDefaults() {
	if c.PlanContainer == "" {
		c.PlanContainer = "plans"
	}
	if c.OutputContainer == "" {
		c.OutputContainer = "outputs"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.PlanContainer != "" {
		if v := os.Getenv(env.PlanContainer); v != "" {
			c.PlanContainer = v
		}
	}
	if env.OutputContainer != "" {
		if v := os.Getenv(env.OutputContainer); v != "" {
			c.OutputContainer = v
		}
	}
	if env.ConnectionString != "" {
		if v := os.Getenv(env.ConnectionString); v != "" {
			c.ConnectionString = v
		}
	}
	if env.AccountURL != "" {
		if v := os.Getenv(env.AccountURL); v != "" {
			c.AccountURL = v
		}
	}
}

func (c *Config) validate() error {
	if c.PlanContainer == "" {
		return fmt.Errorf("plan_container required")
	}
	if c.OutputContainer == "" {
		return fmt.Errorf("output_container required")
	}
	if c.ConnectionString == "" && c.AccountURL == "" {
		return fmt.Errorf("connection_string or account_url required")
	}
	return nil
}
