package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOYMILES_DTU_HOST", "192.168.1.50")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DTUHost != "192.168.1.50" {
		t.Errorf("Expected host 192.168.1.50, got %q", cfg.DTUHost)
	}
	if cfg.PollInterval != 60*time.Second {
		t.Errorf("Expected default poll interval 60s, got %v", cfg.PollInterval)
	}
	if cfg.FetchTimeout != 20*time.Second {
		t.Errorf("Expected default fetch timeout 20s, got %v", cfg.FetchTimeout)
	}
	if cfg.Listen != ":12212" {
		t.Errorf("Expected default listen :12212, got %q", cfg.Listen)
	}
	if cfg.Instance != "" {
		t.Errorf("Expected empty instance, got %q", cfg.Instance)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level info, got %q", cfg.LogLevel)
	}
}

func TestLoad_AllValuesSet(t *testing.T) {
	t.Setenv("HOYMILES_DTU_HOST", "dtu.lan")
	t.Setenv("HOYMILES_POLL_INTERVAL", "30")
	t.Setenv("HOYMILES_FETCH_TIMEOUT", "5")
	t.Setenv("HOYMILES_LISTEN", "127.0.0.1:9999")
	t.Setenv("HOYMILES_INSTANCE", "home")
	t.Setenv("HOYMILES_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DTUHost != "dtu.lan" {
		t.Errorf("Expected host dtu.lan, got %q", cfg.DTUHost)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Errorf("Expected poll interval 30s, got %v", cfg.PollInterval)
	}
	if cfg.FetchTimeout != 5*time.Second {
		t.Errorf("Expected fetch timeout 5s, got %v", cfg.FetchTimeout)
	}
	if cfg.Listen != "127.0.0.1:9999" {
		t.Errorf("Expected listen 127.0.0.1:9999, got %q", cfg.Listen)
	}
	if cfg.Instance != "home" {
		t.Errorf("Expected instance home, got %q", cfg.Instance)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %q", cfg.LogLevel)
	}
}

func TestLoad_MissingHost(t *testing.T) {
	if _, err := Load(); err == nil {
		t.Error("Expected error when HOYMILES_DTU_HOST is unset")
	}
}

func TestLoad_InvalidPollInterval(t *testing.T) {
	t.Setenv("HOYMILES_DTU_HOST", "192.168.1.50")
	t.Setenv("HOYMILES_POLL_INTERVAL", "0")
	if _, err := Load(); err == nil {
		t.Error("Expected error for zero poll interval")
	}

	t.Setenv("HOYMILES_POLL_INTERVAL", "sixty")
	if _, err := Load(); err == nil {
		t.Error("Expected error for non-numeric poll interval")
	}
}

func TestLoad_InvalidListen(t *testing.T) {
	t.Setenv("HOYMILES_DTU_HOST", "192.168.1.50")
	t.Setenv("HOYMILES_LISTEN", "no-port-here")
	if _, err := Load(); err == nil {
		t.Error("Expected error for listen address without a port")
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("HOYMILES_DTU_HOST", "192.168.1.50")
	t.Setenv("HOYMILES_LOG_LEVEL", "verbose")
	if _, err := Load(); err == nil {
		t.Error("Expected error for unknown log level")
	}
}
