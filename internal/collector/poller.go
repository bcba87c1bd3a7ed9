package collector

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hoymiles-homes/hoymiles-exporter/internal/client"
)

// Poller fetches telemetry from the DTU on a fixed interval and retains the
// most recent successful snapshot for scrapes. A failed fetch leaves the
// previous snapshot in place, so scrapers see stale values rather than a gap.
type Poller struct {
	mu           sync.RWMutex
	client       client.Client
	logger       *slog.Logger
	interval     time.Duration
	fetchTimeout time.Duration

	snapshot    *client.RealData // last successful fetch, nil until one succeeds
	lastSuccess time.Time
	healthy     bool    // most recent poll succeeded
	errorCount  float64 // failed polls since start

	stopCh    chan struct{}
	stoppedCh chan struct{}
	stopOnce  sync.Once
}

// NewPoller creates a poller that fetches every interval, bounding each
// fetch by fetchTimeout so a hung device cannot stall the loop.
func NewPoller(c client.Client, interval, fetchTimeout time.Duration, logger *slog.Logger) *Poller {
	return &Poller{
		client:       c,
		logger:       logger,
		interval:     interval,
		fetchTimeout: fetchTimeout,
		stopCh:       make(chan struct{}),
		stoppedCh:    make(chan struct{}),
	}
}

// Start runs the poll loop until ctx is cancelled or Stop is called.
// The first fetch happens immediately, then once per interval.
func (p *Poller) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	defer close(p.stoppedCh)

	p.logger.Info("Poller started", "interval", p.interval)

	p.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Poller stopping")
			return
		case <-p.stopCh:
			p.logger.Info("Poller stopping")
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

// Stop stops the poller and waits for the loop to exit (safe to call multiple times)
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopCh)
	})
	<-p.stoppedCh
}

// poll performs one fetch and swaps in the new snapshot on success
func (p *Poller) poll(ctx context.Context) {
	fetchCtx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
	defer cancel()

	data, err := p.client.FetchRealData(fetchCtx)
	if err != nil {
		p.mu.Lock()
		p.healthy = false
		p.errorCount++
		p.mu.Unlock()
		p.logger.Warn("Failed to fetch telemetry", "error", err)
		return
	}

	p.mu.Lock()
	p.snapshot = data
	p.lastSuccess = time.Now()
	p.healthy = true
	p.mu.Unlock()

	p.logger.Debug("Telemetry updated",
		"dtu_serial", data.DTUSerial,
		"inverters", len(data.SGS),
		"pv_ports", len(data.PV))
}

// Snapshot returns the last successful telemetry snapshot, the time it was
// fetched, and whether any poll has ever succeeded. The returned snapshot is
// replaced wholesale by the poll loop and must not be mutated.
func (p *Poller) Snapshot() (*client.RealData, time.Time, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot, p.lastSuccess, p.snapshot != nil
}

// Healthy reports whether the most recent poll succeeded
func (p *Poller) Healthy() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.healthy
}

// ErrorCount returns the number of failed polls since the process started
func (p *Poller) ErrorCount() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.errorCount
}
