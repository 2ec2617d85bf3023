package config_test

import (
	"testing"

	"github.com/planforge/planforge/internal/config"
)

func TestServerConfigDefaults(t *testing.T) {
	var cfg config.ServerConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("addr: got %s, want 0.0.0.0:8080", cfg.Addr())
	}
	if cfg.ReadTimeoutDuration().String() != "1m0s" {
		t.Errorf("read timeout: got %s", cfg.ReadTimeoutDuration())
	}
}

func TestServerConfigEnvOverride(t *testing.T) {
	t.Setenv("PLANFORGE_SERVER_PORT", "9090")
	t.Setenv("PLANFORGE_SERVER_HOST", "127.0.0.1")

	var cfg config.ServerConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	if cfg.Addr() != "127.0.0.1:9090" {
		t.Errorf("addr: got %s, want 127.0.0.1:9090", cfg.Addr())
	}
}

func TestServerConfigInvalidPort(t *testing.T) {
	cfg := config.ServerConfig{Port: 99999}
	if err := cfg.Finalize(); err == nil {
		t.Error("Finalize should reject out-of-range port")
	}
}

func TestServerConfigMerge(t *testing.T) {
	cfg := config.ServerConfig{Host: "0.0.0.0", Port: 8080}
	cfg.Merge(&config.ServerConfig{Port: 9000})

	if cfg.Host != "0.0.0.0" {
		t.Errorf("host: got %s, want 0.0.0.0", cfg.Host)
	}
	if cfg.Port != 9000 {
		t.Errorf("port: got %d, want 9000", cfg.Port)
	}
}

func TestAPIConfigDefaults(t *testing.T) {
	var cfg config.APIConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	if cfg.BasePath != "/api" {
		t.Errorf("base path: got %s, want /api", cfg.BasePath)
	}
	if cfg.MaxUploadSizeBytes() != 50*1024*1024 {
		t.Errorf("max upload size: got %d", cfg.MaxUploadSizeBytes())
	}
}

func TestAPIConfigUploadSizeParsing(t *testing.T) {
	cfg := config.APIConfig{MaxUploadSize: "10MB"}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	if cfg.MaxUploadSizeBytes() != 10*1024*1024 {
		t.Errorf("max upload size: got %d, want %d", cfg.MaxUploadSizeBytes(), 10*1024*1024)
	}
}
