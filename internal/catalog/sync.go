package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/baolongdinh/alpha-agent/internal/api"
	"github.com/baolongdinh/alpha-agent/internal/model"
)

// Refresh fetches page 0 with the current filters together with market
// stats, and replaces the catalog. On failure the catalog is emptied and the
// status records the reason. Returns ErrSuperseded if a newer fetch started
// while this one was in flight; its result is then discarded.
func (s *Store) Refresh(ctx context.Context) error {
	return s.refresh(ctx, nil)
}

// UpdateFilters merges patch into the filters and refreshes.
func (s *Store) UpdateFilters(ctx context.Context, patch model.FilterPatch) error {
	return s.refresh(ctx, &patch)
}

// ResetFilters restores the default filters and resets the cursor. Any
// fetch in flight is discarded. The catalog is refetched only when
// Config.RefreshOnReset is set; otherwise in ModeServer the next LoadMore
// starts over from page 0 of the default filters.
func (s *Store) ResetFilters(ctx context.Context) error {
	st := s.state
	st.mu.Lock()
	gen := st.supersedeLocked()
	if st.status.Loading() {
		st.status = model.FetchStatus{State: model.FetchIdle, LastFetch: st.status.LastFetch}
	}
	st.filters = model.DefaultFilters(s.cfg.PageSize)
	st.cursor = model.PaginationCursor{HasMore: true}
	st.revealed = 1
	st.stale = s.cfg.Mode == ModeServer
	s.recomputeLocked()
	count := len(st.catalog)
	st.mu.Unlock()

	s.feed.publish(Change{Kind: ChangeFilters, Generation: gen, Count: count})

	if s.cfg.RefreshOnReset {
		return s.Refresh(ctx)
	}
	return nil
}

func (s *Store) refresh(ctx context.Context, patch *model.FilterPatch) error {
	st := s.state
	st.mu.Lock()
	if patch != nil {
		st.filters = st.filters.Merge(*patch)
	}
	gen := st.supersedeLocked()
	fctx, cancel := context.WithCancel(ctx)
	st.cancelInflight = cancel
	st.status = model.FetchStatus{State: model.FetchLoading, LastFetch: st.status.LastFetch}
	st.cursor = model.PaginationCursor{HasMore: true}
	st.revealed = 1
	st.stale = false
	filters := st.filters
	count := len(st.catalog)
	st.mu.Unlock()
	defer cancel()

	s.feed.publish(Change{Kind: ChangeLoading, Generation: gen, Count: count})

	start := time.Now()
	tokens, hasMore, stats, err := s.fetchFirstPage(fctx, filters)

	st.mu.Lock()
	if gen != st.generation {
		st.mu.Unlock()
		s.discard("refresh", gen)
		return ErrSuperseded
	}
	s.observe("refresh", start, err)
	st.cancelInflight = nil

	if err != nil {
		msg := describe(err)
		st.clearLocked()
		st.cursor.HasMore = false
		st.status = model.FetchStatus{State: model.FetchError, Message: msg, LastFetch: st.status.LastFetch}
		s.recomputeLocked()
		st.mu.Unlock()

		s.logger.Error("catalog refresh failed", "kind", Classify(err), "err", err)
		s.feed.publish(Change{Kind: ChangeFailed, Generation: gen, Message: msg})
		return err
	}

	st.replaceLocked(tokens)
	st.cursor.HasMore = hasMore
	st.stats = stats
	st.status = model.FetchStatus{State: model.FetchIdle, LastFetch: time.Now()}
	s.recomputeLocked()
	count = len(st.catalog)
	visible := len(st.visible)
	st.mu.Unlock()

	s.logger.Info("catalog refreshed",
		"tokens", count,
		"visible", visible,
		"has_more", hasMore,
		"duration", time.Since(start),
	)
	s.feed.publish(Change{Kind: ChangeReplaced, Generation: gen, Count: count})
	return nil
}

// fetchFirstPage fetches page 0 and market stats concurrently. A stats
// failure is logged and yields nil stats.
func (s *Store) fetchFirstPage(ctx context.Context, f model.FilterState) ([]model.Token, bool, *model.MarketStats, error) {
	var (
		resp  *api.TokensResponse
		stats *model.MarketStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.source.GetTokens(gctx, s.query(f, 0))
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		ms, err := s.source.GetMarketStats(gctx)
		if err != nil && gctx.Err() != nil {
			return nil
		}
		s.observe("stats", start, err)
		if err != nil {
			s.logger.Warn("market stats fetch failed", "err", err)
			return nil
		}
		stats = ms
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, false, nil, err
	}
	return api.ToModels(resp.Data), resp.HasMore, stats, nil
}

// LoadMore fetches the next page and appends tokens not yet in the catalog.
// It does nothing while a fetch is in flight or when the backend reported no
// more pages. On failure the catalog and offset are kept. In ModeClientPaged
// it reveals the next page of the filtered view without a request. After a
// ResetFilters that did not refetch, it refreshes instead.
func (s *Store) LoadMore(ctx context.Context) error {
	st := s.state
	st.mu.Lock()
	if st.status.Loading() || !st.cursor.HasMore {
		st.mu.Unlock()
		return nil
	}
	if st.stale {
		st.mu.Unlock()
		return s.Refresh(ctx)
	}

	if s.cfg.Mode == ModeClientPaged {
		st.revealed++
		s.recomputeLocked()
		gen, count := st.generation, len(st.catalog)
		st.mu.Unlock()

		s.feed.publish(Change{Kind: ChangeRevealed, Generation: gen, Count: count})
		return nil
	}

	gen := st.generation
	filters := st.filters
	next := st.cursor.Offset + s.pageSize(filters)
	fctx, cancel := context.WithCancel(ctx)
	st.cancelInflight = cancel
	st.status = model.FetchStatus{State: model.FetchLoading, LastFetch: st.status.LastFetch}
	count := len(st.catalog)
	st.mu.Unlock()
	defer cancel()

	s.feed.publish(Change{Kind: ChangeLoading, Generation: gen, Count: count})

	start := time.Now()
	resp, err := s.source.GetTokens(fctx, s.query(filters, next))

	st.mu.Lock()
	if gen != st.generation {
		st.mu.Unlock()
		s.discard("load_more", gen)
		return ErrSuperseded
	}
	s.observe("load_more", start, err)
	st.cancelInflight = nil

	if err != nil {
		msg := describe(err)
		st.status = model.FetchStatus{State: model.FetchError, Message: msg, LastFetch: st.status.LastFetch}
		count = len(st.catalog)
		st.mu.Unlock()

		s.logger.Error("catalog load more failed", "offset", next, "kind", Classify(err), "err", err)
		s.feed.publish(Change{Kind: ChangeFailed, Generation: gen, Count: count, Message: msg})
		return err
	}

	added := st.appendLocked(api.ToModels(resp.Data))
	st.cursor = model.PaginationCursor{Offset: next, HasMore: resp.HasMore}
	st.status = model.FetchStatus{State: model.FetchIdle, LastFetch: time.Now()}
	s.recomputeLocked()
	count = len(st.catalog)
	st.mu.Unlock()

	s.logger.Debug("catalog page loaded",
		"offset", next,
		"added", added,
		"tokens", count,
		"has_more", resp.HasMore,
	)
	s.feed.publish(Change{Kind: ChangeAppended, Generation: gen, Count: count})
	return nil
}

// TokenDetail fetches a token's full detail, served from a short-lived
// per-id cache when possible.
func (s *Store) TokenDetail(ctx context.Context, id string) (*model.Token, error) {
	key := strings.ToLower(strings.TrimSpace(id))
	if v, ok := s.details.Get(key); ok {
		t := v.(model.Token).Clone()
		return &t, nil
	}

	start := time.Now()
	t, err := s.source.GetToken(ctx, id)
	s.observe("detail", start, err)
	if err != nil {
		s.logger.Warn("token detail fetch failed", "id", id, "kind", Classify(err), "err", err)
		return nil, err
	}

	s.details.Set(key, t.Clone(), cache.DefaultExpiration)
	detail := t.Clone()
	return &detail, nil
}

func (s *Store) discard(op string, gen uint64) {
	s.logger.Debug("discarding superseded fetch", "op", op, "generation", gen)
	if s.observer != nil {
		s.observer.ObserveDiscard(op)
	}
}
