// Package analysis requests AI commentary for a single token and tracks the
// outcome of the most recent request.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/baolongdinh/alpha-agent/internal/api"
	"github.com/baolongdinh/alpha-agent/internal/model"
)

var (
	// ErrEmpty means the backend answered without an analysis.
	ErrEmpty = errors.New("AI response was empty")
	// ErrFailed means the request itself failed.
	ErrFailed = errors.New("failed to generate analysis")
)

// Backend generates analyses. *api.Client satisfies it.
type Backend interface {
	Analyze(ctx context.Context, req api.AnalysisRequest) (*api.AnalysisResponse, error)
}

// State is a snapshot of the analyzer.
type State struct {
	Symbol      string
	Analysis    string
	Analyzing   bool
	Err         error
	Cached      bool
	GeneratedAt string
}

// Analyzer holds the outcome of the latest Analyze call.
type Analyzer struct {
	backend Backend
	logger  *slog.Logger

	mu    sync.RWMutex
	state State
	seq   uint64
}

// New creates an Analyzer.
func New(backend Backend, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{backend: backend, logger: logger}
}

// Analyze requests an analysis of t. The previous analysis and error are
// cleared when the request starts. Only the latest call updates the state.
func (a *Analyzer) Analyze(ctx context.Context, t model.Token) (string, error) {
	a.mu.Lock()
	a.seq++
	seq := a.seq
	a.state = State{Symbol: t.Symbol, Analyzing: true}
	a.mu.Unlock()

	resp, err := a.backend.Analyze(ctx, api.NewAnalysisRequest(t))

	var result State
	switch {
	case err == nil:
		result = State{
			Symbol:      t.Symbol,
			Analysis:    resp.Analysis,
			Cached:      resp.Cached,
			GeneratedAt: resp.GeneratedAt,
		}
	case api.IsStatusError(err):
		a.logger.Warn("analysis response missing analysis", "symbol", t.Symbol, "err", err)
		result = State{Symbol: t.Symbol, Err: fmt.Errorf("%w: %v", ErrEmpty, err)}
	default:
		a.logger.Error("analysis request failed", "symbol", t.Symbol, "err", err)
		result = State{Symbol: t.Symbol, Err: fmt.Errorf("%w: %v", ErrFailed, err)}
	}

	a.mu.Lock()
	if seq == a.seq {
		a.state = result
	}
	a.mu.Unlock()

	return result.Analysis, result.Err
}

// State returns the current analyzer state.
func (a *Analyzer) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// Clear drops the stored analysis and error.
func (a *Analyzer) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seq++
	a.state = State{}
}
