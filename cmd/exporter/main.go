package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hoymiles-homes/hoymiles-exporter/internal/client"
	"github.com/hoymiles-homes/hoymiles-exporter/internal/collector"
	"github.com/hoymiles-homes/hoymiles-exporter/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create DTU client and start the poller
	dtuClient := client.NewCLIClient(cfg.DTUHost)
	poller := collector.NewPoller(dtuClient, cfg.PollInterval, cfg.FetchTimeout, logger)
	go poller.Start(ctx)

	// Register the collector on a dedicated registry so /metrics carries
	// only exporter metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collector.NewDTUCollector(poller, cfg.Instance, logger))

	// Setup HTTP server with timeouts
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{
		Addr:         cfg.Listen,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server in goroutine
	go func() {
		logger.Info("Starting Hoymiles exporter",
			"address", cfg.Listen,
			"dtu", cfg.DTUHost,
			"interval", cfg.PollInterval,
			"instance", cfg.Instance)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			cancel() // Cancel context before exit
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutdown signal received, stopping gracefully...")

	// Shutdown HTTP server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	// Stop the poller
	cancel()
	poller.Stop()

	logger.Info("Exporter stopped")
}
