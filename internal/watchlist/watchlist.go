package watchlist

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"sync"
)

// DefaultKey is the key the favourites are stored under.
const DefaultKey = "crypto_agent_favorites"

// Watchlist is a persisted set of favourite symbols. It is safe for
// concurrent use.
type Watchlist struct {
	kv     KV
	key    string
	logger *slog.Logger

	mu  sync.RWMutex
	set map[string]struct{}
}

// New creates an empty Watchlist backed by kv. Call Load to read the stored set.
func New(kv KV, key string, logger *slog.Logger) *Watchlist {
	if logger == nil {
		logger = slog.Default()
	}
	if key == "" {
		key = DefaultKey
	}
	return &Watchlist{
		kv:     kv,
		key:    key,
		logger: logger,
		set:    make(map[string]struct{}),
	}
}

// Load replaces the in-memory set with the stored one. An absent or
// unreadable value leaves the set unchanged.
func (w *Watchlist) Load(ctx context.Context) {
	raw, ok, err := w.kv.Get(ctx, w.key)
	if err != nil {
		w.logger.Error("failed to load watchlist", "key", w.key, "err", err)
		return
	}
	if !ok || raw == "" {
		return
	}

	var symbols []string
	if err := json.Unmarshal([]byte(raw), &symbols); err != nil {
		w.logger.Error("failed to decode watchlist", "key", w.key, "err", err)
		return
	}

	set := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		set[s] = struct{}{}
	}

	w.mu.Lock()
	w.set = set
	w.mu.Unlock()

	w.logger.Debug("watchlist loaded", "symbols", len(set))
}

// Toggle adds symbol if absent, removes it otherwise, and persists the set.
// Reports whether symbol is a favourite afterwards.
func (w *Watchlist) Toggle(ctx context.Context, symbol string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, had := w.set[symbol]
	if had {
		delete(w.set, symbol)
	} else {
		w.set[symbol] = struct{}{}
	}
	// Saved under the lock so stored snapshots follow toggle order.
	w.save(ctx, w.sortedLocked())
	return !had
}

// IsFavorite reports whether symbol is in the set.
func (w *Watchlist) IsFavorite(symbol string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.set[symbol]
	return ok
}

// Symbols returns the favourites in sorted order.
func (w *Watchlist) Symbols() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.sortedLocked()
}

func (w *Watchlist) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.set)
}

func (w *Watchlist) sortedLocked() []string {
	out := make([]string, 0, len(w.set))
	for s := range w.set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func (w *Watchlist) save(ctx context.Context, symbols []string) {
	data, err := json.Marshal(symbols)
	if err != nil {
		w.logger.Error("failed to encode watchlist", "err", err)
		return
	}
	if err := w.kv.Set(ctx, w.key, string(data)); err != nil {
		w.logger.Error("failed to save watchlist", "key", w.key, "err", err)
	}
}
