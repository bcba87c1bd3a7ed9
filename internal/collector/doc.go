// Package collector implements the Prometheus collector for Hoymiles telemetry.
//
// The collector package provides a background poller that fetches inverter
// telemetry from the DTU on a fixed interval and retains the latest
// successful snapshot, and a prometheus.Collector that exposes that snapshot
// on scrape. Polling and scraping are decoupled: a scrape never triggers a
// fetch, and a failed poll leaves the previous snapshot in place.
package collector
