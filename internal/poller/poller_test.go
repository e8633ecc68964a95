package poller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/baolongdinh/alpha-agent/internal/api"
	"github.com/baolongdinh/alpha-agent/internal/catalog"
)

func TestPoller_Poll(t *testing.T) {
	var calls atomic.Int32
	target := RefresherFunc(func(ctx context.Context) error {
		calls.Add(1)
		if _, ok := ctx.Deadline(); !ok {
			t.Error("refresh context has no deadline")
		}
		return nil
	})

	cfg := Config{
		Interval: time.Hour, // Long interval, we'll trigger manually.
		Timeout:  5 * time.Second,
	}
	p := New(cfg, target, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p.ctx = ctx

	p.poll()

	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
	if s := p.Stats(); s.Refreshes != 1 || s.Failures != 0 {
		t.Errorf("Stats() = %+v, want 1 refresh 0 failures", s)
	}
}

func TestPoller_PollCountsFailures(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantFailures   int64
		wantSuperseded int64
	}{
		{"failure", errors.New("backend down"), 1, 0},
		{"superseded", catalog.ErrSuperseded, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(Config{Interval: time.Hour}, RefresherFunc(func(context.Context) error {
				return tt.err
			}), nil)
			p.ctx = context.Background()

			p.poll()

			s := p.Stats()
			if s.Failures != tt.wantFailures || s.Superseded != tt.wantSuperseded {
				t.Errorf("Stats() = %+v, want failures=%d superseded=%d", s, tt.wantFailures, tt.wantSuperseded)
			}
		})
	}
}

func TestPoller_StartStop(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/market/stats" {
			json.NewEncoder(w).Encode(map[string]any{"total_market_cap": 1})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status":  "success",
			"data":    []map[string]any{{"symbol": "BTC", "name": "Bitcoin"}},
			"hasMore": false,
		})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, "", api.WithTimeout(5*time.Second))
	store := catalog.New(catalog.DefaultConfig(), client, nil)

	cfg := Config{
		Interval:  100 * time.Millisecond,
		Timeout:   5 * time.Second,
		Immediate: true,
	}
	p := New(cfg, store, nil)

	ctx := context.Background()
	if err := p.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Wait for the immediate refresh and at least one tick.
	time.Sleep(250 * time.Millisecond)

	stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.Stop(stopCtx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	if got := p.Stats().Refreshes; got < 2 {
		t.Errorf("Refreshes = %d, want at least 2", got)
	}
	if _, ok := store.Lookup("BTC"); !ok {
		t.Error("store was not refreshed")
	}
}

func TestPoller_Trigger(t *testing.T) {
	refreshed := make(chan struct{}, 4)
	target := RefresherFunc(func(context.Context) error {
		refreshed <- struct{}{}
		return nil
	})

	p := New(Config{Interval: time.Hour, Timeout: time.Second}, target, nil)
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer p.Stop(context.Background())

	p.Trigger()
	select {
	case <-refreshed:
	case <-time.After(2 * time.Second):
		t.Fatal("Trigger() did not cause a refresh")
	}
}

func TestNew_Defaults(t *testing.T) {
	p := New(Config{}, RefresherFunc(func(context.Context) error { return nil }), nil)
	want := DefaultConfig()
	if p.cfg.Interval != want.Interval {
		t.Errorf("Interval = %v, want %v", p.cfg.Interval, want.Interval)
	}
	if p.cfg.Timeout != want.Timeout {
		t.Errorf("Timeout = %v, want %v", p.cfg.Timeout, want.Timeout)
	}
}
