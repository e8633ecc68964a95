package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/baolongdinh/alpha-agent/internal/api"
	"github.com/baolongdinh/alpha-agent/internal/filter"
	"github.com/baolongdinh/alpha-agent/internal/model"
)

// Source is the backend the store fetches from. *api.Client satisfies it.
type Source interface {
	GetTokens(ctx context.Context, q api.TokensQuery) (*api.TokensResponse, error)
	GetMarketStats(ctx context.Context) (*model.MarketStats, error)
	GetToken(ctx context.Context, id string) (*model.Token, error)
}

// FetchObserver receives fetch outcomes, e.g. for metrics.
type FetchObserver interface {
	ObserveFetch(op string, duration time.Duration, err error)
	ObserveDiscard(op string)
}

// Option configures a Store.
type Option func(*Store)

// WithObserver sets the fetch observer.
func WithObserver(o FetchObserver) Option {
	return func(s *Store) {
		s.observer = o
	}
}

// Store is the shared token catalog. It is safe for concurrent use.
type Store struct {
	cfg      Config
	source   Source
	logger   *slog.Logger
	observer FetchObserver

	state   *storeState
	feed    *feed
	details *cache.Cache
}

// New creates a Store with default filters and an empty catalog.
func New(cfg Config, source Source, logger *slog.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	defaults := DefaultConfig()
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaults.PageSize
	}
	if cfg.FullLoadLimit <= 0 {
		cfg.FullLoadLimit = defaults.FullLoadLimit
	}
	if cfg.DetailTTL <= 0 {
		cfg.DetailTTL = defaults.DetailTTL
	}

	s := &Store{
		cfg:     cfg,
		source:  source,
		logger:  logger,
		state:   newState(model.DefaultFilters(cfg.PageSize)),
		feed:    newFeed(),
		details: cache.New(cfg.DetailTTL, 2*cfg.DetailTTL),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mode returns the configured filtering mode.
func (s *Store) Mode() Mode {
	return s.cfg.Mode
}

// Catalog returns a deep copy of the merged catalog in fetch order.
func (s *Store) Catalog() []model.Token {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()
	return model.CloneTokens(s.state.catalog)
}

// Len returns the number of tokens in the catalog.
func (s *Store) Len() int {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()
	return len(s.state.catalog)
}

// Visible returns the tokens to display.
func (s *Store) Visible() []model.Token {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()
	return model.CloneTokens(s.state.visible)
}

// TopN returns the first n visible tokens.
func (s *Store) TopN(n int) []model.Token {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	if n <= 0 {
		return []model.Token{}
	}
	if n > len(s.state.visible) {
		n = len(s.state.visible)
	}
	return model.CloneTokens(s.state.visible[:n])
}

// Lookup returns the catalog token with the given symbol.
func (s *Store) Lookup(symbol string) (model.Token, bool) {
	return s.state.lookup(symbol)
}

func (s *Store) Status() model.FetchStatus {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()
	return s.state.status
}

func (s *Store) Pagination() model.PaginationCursor {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()
	return s.state.cursor
}

func (s *Store) Filters() model.FilterState {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()
	return s.state.filters
}

// Stats returns the last fetched market stats, or nil.
func (s *Store) Stats() *model.MarketStats {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()
	if s.state.stats == nil {
		return nil
	}
	stats := s.state.stats.Clone()
	return &stats
}

// HasTokens reports whether any token is visible.
func (s *Store) HasTokens() bool {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()
	return len(s.state.visible) > 0
}

// IsEmpty reports whether no fetch is in flight and nothing is visible.
func (s *Store) IsEmpty() bool {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()
	return !s.state.status.Loading() && len(s.state.visible) == 0
}

// Subscribe returns a feed of state changes. Close it when done.
func (s *Store) Subscribe() *Subscription {
	return s.feed.subscribe()
}

// Close cancels any fetch in flight and closes all subscriptions.
func (s *Store) Close() {
	s.state.mu.Lock()
	s.state.supersedeLocked()
	if s.state.status.Loading() {
		s.state.status.State = model.FetchIdle
	}
	s.state.mu.Unlock()

	s.feed.closeAll()
	s.details.Flush()
}

// recomputeLocked rebuilds the visible view (caller must hold write lock).
func (s *Store) recomputeLocked() {
	st := s.state
	switch s.cfg.Mode {
	case ModeServer:
		st.visible = st.catalog
	case ModeClient:
		st.visible = filter.Apply(st.catalog, st.filters, s.filterOptions())
	case ModeClientPaged:
		filtered := filter.Apply(st.catalog, st.filters, s.filterOptions())
		page := s.pageSize(st.filters)
		window := st.revealed * page
		if window > len(filtered) {
			window = len(filtered)
		}
		st.visible = filtered[:window]
		st.cursor = model.PaginationCursor{
			Offset:  (st.revealed - 1) * page,
			HasMore: len(filtered) > st.revealed*page,
		}
	}
}

func (s *Store) filterOptions() filter.Options {
	return filter.Options{Missing: s.cfg.Missing}
}

func (s *Store) pageSize(f model.FilterState) int {
	if f.Limit > 0 {
		return f.Limit
	}
	return s.cfg.PageSize
}

// query builds the backend request for a page starting at offset.
func (s *Store) query(f model.FilterState, offset int) api.TokensQuery {
	switch s.cfg.Mode {
	case ModeClient:
		return api.TokensQuery{Limit: s.pageSize(f), Offset: offset}
	case ModeClientPaged:
		return api.TokensQuery{Limit: s.cfg.FullLoadLimit}
	default:
		q := api.QueryFromFilters(f, offset)
		q.Limit = s.pageSize(f)
		return q
	}
}

func (s *Store) observe(op string, start time.Time, err error) {
	if s.observer != nil {
		s.observer.ObserveFetch(op, time.Since(start), err)
	}
}
