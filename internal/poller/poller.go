package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/baolongdinh/alpha-agent/internal/catalog"
)

// Refresher is refreshed on every tick. *catalog.Store satisfies it.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RefresherFunc is a function adapter for Refresher.
type RefresherFunc func(context.Context) error

func (f RefresherFunc) Refresh(ctx context.Context) error {
	return f(ctx)
}

// Config holds poller configuration.
type Config struct {
	Interval  time.Duration // Refresh interval (default: 5m)
	Timeout   time.Duration // Per-refresh timeout (default: 30s)
	Immediate bool          // Refresh once on start
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval:  5 * time.Minute,
		Timeout:   30 * time.Second,
		Immediate: true,
	}
}

// Stats reports poller activity.
type Stats struct {
	Refreshes  int64
	Failures   int64
	Superseded int64
}

// Poller periodically refreshes a catalog.
type Poller struct {
	cfg    Config
	target Refresher
	logger *slog.Logger

	trigger chan struct{}

	refreshes  atomic.Int64
	failures   atomic.Int64
	superseded atomic.Int64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new Poller.
func New(cfg Config, target Refresher, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	defaults := DefaultConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = defaults.Interval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	return &Poller{
		cfg:     cfg,
		target:  target,
		logger:  logger,
		trigger: make(chan struct{}, 1),
	}
}

// Start begins the polling loop.
func (p *Poller) Start(ctx context.Context) error {
	p.ctx, p.cancel = context.WithCancel(ctx)

	p.wg.Add(1)
	go p.run()

	p.logger.Info("catalog poller started",
		"interval", p.cfg.Interval,
		"timeout", p.cfg.Timeout,
	)

	return nil
}

// Stop gracefully shuts down the poller.
func (p *Poller) Stop(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("catalog poller stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Trigger requests a refresh before the next tick. Triggers received while
// one is pending are coalesced.
func (p *Poller) Trigger() {
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

// Stats returns refresh counters.
func (p *Poller) Stats() Stats {
	return Stats{
		Refreshes:  p.refreshes.Load(),
		Failures:   p.failures.Load(),
		Superseded: p.superseded.Load(),
	}
}

// run is the main polling loop.
func (p *Poller) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	if p.cfg.Immediate {
		p.poll()
	}

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.poll()
		case <-p.trigger:
			p.poll()
			ticker.Reset(p.cfg.Interval)
		}
	}
}

// poll runs a single bounded refresh.
func (p *Poller) poll() {
	ctx, cancel := context.WithTimeout(p.ctx, p.cfg.Timeout)
	defer cancel()

	start := time.Now()
	p.refreshes.Add(1)

	err := p.target.Refresh(ctx)
	switch {
	case err == nil:
		p.logger.Debug("poll cycle complete", "duration", time.Since(start))
	case errors.Is(err, catalog.ErrSuperseded):
		p.superseded.Add(1)
		p.logger.Debug("poll refresh superseded")
	case p.ctx.Err() != nil:
		// Shutting down.
	default:
		p.failures.Add(1)
		p.logger.Warn("poll refresh failed",
			"err", err,
			"duration", time.Since(start),
		)
	}
}
