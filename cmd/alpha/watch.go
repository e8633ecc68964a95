package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/baolongdinh/alpha-agent/internal/catalog"
	"github.com/baolongdinh/alpha-agent/internal/metrics"
	"github.com/baolongdinh/alpha-agent/internal/poller"
	"github.com/baolongdinh/alpha-agent/internal/version"
)

func newWatchCmd(deps func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Keep the catalog fresh and serve health, debug and metrics endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), deps())
		},
	}
}

func runWatch(parent context.Context, a *app) error {
	logger := a.logger

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received shutdown signal", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	store, err := a.newStore()
	if err != nil {
		return err
	}
	defer store.Close()

	go trackCatalogSize(store.Subscribe(), a.metrics)

	p := poller.New(poller.Config{
		Interval:  a.cfg.Poller.Interval,
		Timeout:   a.cfg.Poller.Timeout,
		Immediate: true,
	}, store, logger)

	healthServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.Metrics.Port),
		Handler:           createHealthHandler(store, p, a.metrics, a.cfg.Metrics.Path, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting health server", "port", a.cfg.Metrics.Port)
		if err := healthServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("health server error", "error", err)
			cancel()
		}
	}()

	if err := p.Start(ctx); err != nil {
		return fmt.Errorf("start poller: %w", err)
	}

	logger.Info("watching catalog",
		"mode", store.Mode(),
		"interval", a.cfg.Poller.Interval,
		"health_url", fmt.Sprintf("http://localhost:%d/health", a.cfg.Metrics.Port),
	)

	// Wait for shutdown
	<-ctx.Done()

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := p.Stop(shutdownCtx); err != nil {
		logger.Warn("poller stop", "error", err)
	}
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("health server shutdown", "error", err)
	}

	logger.Info("watch stopped")
	return nil
}

// trackCatalogSize mirrors the catalog size into the metrics gauge until the
// subscription is closed.
func trackCatalogSize(sub *catalog.Subscription, m *metrics.Collector) {
	for {
		c, ok := sub.Receive()
		if !ok {
			return
		}
		if c.Kind == catalog.ChangeLoading {
			continue
		}
		m.SetCatalogSize(c.Count)
	}
}

// refreshTrigger is the part of the poller the HTTP handler drives.
type refreshTrigger interface {
	Trigger()
	Stats() poller.Stats
}

// createHealthHandler creates the HTTP handler for health checks.
func createHealthHandler(store *catalog.Store, trigger refreshTrigger, m *metrics.Collector, metricsPath string, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		health := struct {
			Status     string         `json:"status"`
			Version    version.Info   `json:"version"`
			Components map[string]any `json:"components"`
		}{
			Status:     "healthy",
			Version:    version.Get(),
			Components: make(map[string]any),
		}

		status := store.Status()
		catalogHealth := map[string]any{
			"state":  status.State,
			"tokens": store.Len(),
		}
		if !status.LastFetch.IsZero() {
			catalogHealth["last_fetch"] = status.LastFetch
		}
		if msg, failed := status.Err(); failed {
			catalogHealth["error"] = msg
			health.Status = "unhealthy"
		} else if !store.HasTokens() && !status.Loading() {
			health.Status = "degraded"
		}
		health.Components["catalog"] = catalogHealth

		stats := trigger.Stats()
		health.Components["poller"] = map[string]int64{
			"refreshes":  stats.Refreshes,
			"failures":   stats.Failures,
			"superseded": stats.Superseded,
		}

		w.Header().Set("Content-Type", "application/json")
		if health.Status == "unhealthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(health)
	})

	mux.HandleFunc("/debug/tokens", func(w http.ResponseWriter, r *http.Request) {
		tokens := store.Visible()

		limit := 100
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			limit = n
		}
		showing := store.TopN(limit)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"count":      len(tokens),
			"showing":    len(showing),
			"pagination": store.Pagination(),
			"tokens":     showing,
		})
	})

	mux.HandleFunc("/refresh", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		logger.Info("refresh requested", "remote", r.RemoteAddr)
		trigger.Trigger()
		w.WriteHeader(http.StatusAccepted)
	})

	if m != nil && metricsPath != "" {
		mux.Handle(metricsPath, m.Handler())
	}

	return mux
}
