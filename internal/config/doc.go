// Package config loads the exporter's environment-variable configuration.
package config
