package config

import (
	"fmt"
	"net"
	"time"

	"github.com/spf13/viper"
)

// Config holds every configurable value for the exporter. It is loaded once
// at startup and never mutated afterwards.
type Config struct {
	DTUHost      string        // host or IP of the Hoymiles DTU, required
	PollInterval time.Duration // how often to fetch telemetry
	FetchTimeout time.Duration // per-fetch deadline for the hoymiles-wifi call
	Listen       string        // HTTP listen address for /metrics
	Instance     string        // optional instance name, exposed as a label
	LogLevel     string        // debug|info|warn|error
}

// Load reads configuration from HOYMILES_* environment variables, typically
// provided via an /etc/default/hoymiles-<instance> file under systemd:
//
//	HOYMILES_DTU_HOST      host/IP of the DTU (required)
//	HOYMILES_POLL_INTERVAL poll interval in seconds (default 60)
//	HOYMILES_FETCH_TIMEOUT per-fetch timeout in seconds (default 20)
//	HOYMILES_LISTEN        listen address (default ":12212")
//	HOYMILES_INSTANCE      instance name label (default none)
//	HOYMILES_LOG_LEVEL     log level (default "info")
//
// It returns a fully populated *Config or an error describing the first
// invalid value found.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("hoymiles")
	v.AutomaticEnv()

	v.SetDefault("poll_interval", 60)
	v.SetDefault("fetch_timeout", 20)
	v.SetDefault("listen", ":12212")
	v.SetDefault("log_level", "info")

	cfg := &Config{
		DTUHost:      v.GetString("dtu_host"),
		PollInterval: time.Duration(v.GetInt("poll_interval")) * time.Second,
		FetchTimeout: time.Duration(v.GetInt("fetch_timeout")) * time.Second,
		Listen:       v.GetString("listen"),
		Instance:     v.GetString("instance"),
		LogLevel:     v.GetString("log_level"),
	}

	if cfg.DTUHost == "" {
		return nil, fmt.Errorf("HOYMILES_DTU_HOST must be set")
	}
	if cfg.PollInterval < time.Second {
		return nil, fmt.Errorf("HOYMILES_POLL_INTERVAL must be a whole number of seconds >= 1")
	}
	if cfg.FetchTimeout < time.Second {
		return nil, fmt.Errorf("HOYMILES_FETCH_TIMEOUT must be a whole number of seconds >= 1")
	}
	if _, _, err := net.SplitHostPort(cfg.Listen); err != nil {
		return nil, fmt.Errorf("HOYMILES_LISTEN %q is not a valid listen address: %v", cfg.Listen, err)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("HOYMILES_LOG_LEVEL %q is not one of debug, info, warn, error", cfg.LogLevel)
	}

	return cfg, nil
}
