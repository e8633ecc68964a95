package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/baolongdinh/alpha-agent/internal/api"
)

func TestCollector_ObserveFetch(t *testing.T) {
	c := NewCollector()

	c.ObserveFetch("refresh", 120*time.Millisecond, nil)
	c.ObserveFetch("refresh", 80*time.Millisecond, errors.New("dial tcp"))
	c.ObserveFetch("load_more", 10*time.Millisecond, &api.StatusError{Status: "error"})
	c.ObserveDiscard("refresh")

	if got := testutil.ToFloat64(c.fetches.WithLabelValues("refresh")); got != 2 {
		t.Errorf("fetches{refresh} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.failures.WithLabelValues("refresh", "network")); got != 1 {
		t.Errorf("failures{refresh,network} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.failures.WithLabelValues("load_more", "backend_status")); got != 1 {
		t.Errorf("failures{load_more,backend_status} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.discards.WithLabelValues("refresh")); got != 1 {
		t.Errorf("discards{refresh} = %v, want 1", got)
	}
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector()
	c.SetCatalogSize(42)
	c.SetWatchlistSize(3)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{"alpha_catalog_tokens 42", "alpha_watchlist_symbols 3", "go_goroutines"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
