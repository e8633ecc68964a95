package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/baolongdinh/alpha-agent/internal/api"
	"github.com/baolongdinh/alpha-agent/internal/model"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return api.NewClient(server.URL, "", api.WithTimeout(5*time.Second), api.WithRetries(0, time.Millisecond))
}

func TestAnalyzer_Analyze(t *testing.T) {
	var got api.AnalysisRequest
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/analyze" {
			t.Errorf("request = %s %s, want POST /analyze", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status":       "success",
			"cached":       true,
			"analysis":     "Strong fundamentals.",
			"generated_at": "2024-01-01T00:00:00Z",
		})
	})

	a := New(client, nil)
	token := model.Token{Symbol: "ETH", Name: "Ethereum", Price: model.Float(3000), Rank: 2}

	text, err := a.Analyze(context.Background(), token)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if text != "Strong fundamentals." {
		t.Errorf("Analyze() = %q", text)
	}

	if got.Symbol != "ETH" || got.Price != 3000 || got.TVL != 0 || got.Rank != 2 {
		t.Errorf("payload = %+v", got)
	}

	s := a.State()
	if s.Analyzing || s.Err != nil || s.Analysis != text || !s.Cached {
		t.Errorf("State() = %+v", s)
	}
}

func TestAnalyzer_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{
			name: "empty analysis",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{"status": "success"})
			},
			want: ErrEmpty,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			want: ErrFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(newTestServer(t, tt.handler), nil)

			text, err := a.Analyze(context.Background(), model.Token{Symbol: "BTC"})
			if !errors.Is(err, tt.want) {
				t.Errorf("Analyze() error = %v, want %v", err, tt.want)
			}
			if text != "" {
				t.Errorf("Analyze() = %q, want empty", text)
			}

			s := a.State()
			if s.Analyzing {
				t.Error("Analyzing should be false after completion")
			}
			if !errors.Is(s.Err, tt.want) {
				t.Errorf("State().Err = %v, want %v", s.Err, tt.want)
			}
		})
	}
}

type blockingBackend struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingBackend) Analyze(ctx context.Context, req api.AnalysisRequest) (*api.AnalysisResponse, error) {
	close(b.started)
	<-b.release
	return &api.AnalysisResponse{Status: "success", Analysis: "late"}, nil
}

func TestAnalyzer_Clear(t *testing.T) {
	b := &blockingBackend{started: make(chan struct{}), release: make(chan struct{})}
	a := New(b, nil)

	done := make(chan struct{})
	go func() {
		a.Analyze(context.Background(), model.Token{Symbol: "SOL"})
		close(done)
	}()
	<-b.started

	if s := a.State(); !s.Analyzing || s.Symbol != "SOL" {
		t.Errorf("State() during request = %+v, want analyzing SOL", s)
	}

	a.Clear()
	close(b.release)
	<-done

	if s := a.State(); s != (State{}) {
		t.Errorf("State() after Clear = %+v, want zero", s)
	}
}
