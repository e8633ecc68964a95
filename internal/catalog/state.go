package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/baolongdinh/alpha-agent/internal/model"
)

// storeState holds the thread-safe catalog state.
type storeState struct {
	mu sync.RWMutex

	// Merged raw data in fetch order, and symbol -> position.
	catalog []model.Token
	index   map[string]int

	// Derived view, recomputed on every mutation.
	visible []model.Token

	filters model.FilterState
	cursor  model.PaginationCursor
	status  model.FetchStatus
	stats   *model.MarketStats

	// Pages of the filtered view revealed in ModeClientPaged.
	revealed int

	// Set when the server-side filters changed without a refetch, so the
	// catalog does not hold page 0 of the current filters.
	stale bool

	// Incremented by every fetch that supersedes the one in flight.
	generation     uint64
	cancelInflight context.CancelFunc
}

func newState(filters model.FilterState) *storeState {
	return &storeState{
		index:    make(map[string]int),
		filters:  filters,
		cursor:   model.PaginationCursor{HasMore: true},
		status:   model.FetchStatus{State: model.FetchIdle},
		revealed: 1,
	}
}

// supersedeLocked starts a new generation and cancels the fetch in flight
// (caller must hold write lock).
func (s *storeState) supersedeLocked() uint64 {
	s.generation++
	if s.cancelInflight != nil {
		s.cancelInflight()
		s.cancelInflight = nil
	}
	return s.generation
}

// replaceLocked replaces the catalog. A symbol seen twice keeps its first
// position and its last data (caller must hold write lock).
func (s *storeState) replaceLocked(tokens []model.Token) {
	catalog := make([]model.Token, 0, len(tokens))
	index := make(map[string]int, len(tokens))
	for _, t := range tokens {
		if t.Symbol == "" {
			continue
		}
		if i, ok := index[t.Symbol]; ok {
			catalog[i] = t
			continue
		}
		index[t.Symbol] = len(catalog)
		catalog = append(catalog, t)
	}
	s.catalog = catalog
	s.index = index
}

// appendLocked appends tokens whose symbol is not yet in the catalog and
// returns how many were added (caller must hold write lock).
func (s *storeState) appendLocked(tokens []model.Token) int {
	added := 0
	for _, t := range tokens {
		if t.Symbol == "" {
			continue
		}
		if _, ok := s.index[t.Symbol]; ok {
			continue
		}
		s.index[t.Symbol] = len(s.catalog)
		s.catalog = append(s.catalog, t)
		added++
	}
	return added
}

// clearLocked empties the catalog (caller must hold write lock).
func (s *storeState) clearLocked() {
	s.catalog = nil
	s.index = make(map[string]int)
}

// lookup finds a token by symbol, falling back to a case-insensitive scan
// (read-locked).
func (s *storeState) lookup(symbol string) (model.Token, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i, ok := s.index[symbol]; ok {
		return s.catalog[i].Clone(), true
	}
	for _, t := range s.catalog {
		if strings.EqualFold(t.Symbol, symbol) {
			return t.Clone(), true
		}
	}
	return model.Token{}, false
}
