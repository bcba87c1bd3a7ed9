// Package main implements the Hoymiles Prometheus exporter.
//
// This exporter polls a Hoymiles DTU through the hoymiles-wifi library and
// exports per-inverter and per-panel telemetry to Prometheus on port 12212
// (configurable). Configuration comes from HOYMILES_* environment variables,
// typically provided by a systemd template unit with an /etc/default
// environment file per inverter instance.
package main
