package model

import "time"

// -----------------------------------------------------------------------------
// Market Types
// -----------------------------------------------------------------------------

// Token is a market entity as held in the catalog.
// Tokens are replaced wholesale on refetch and never mutated in place.
type Token struct {
	ID       string `json:"id"`     // Normalized id ("bitcoin", "wrapped-bitcoin")
	Symbol   string `json:"symbol"` // Catalog key
	Name     string `json:"name"`
	Image    string `json:"image,omitempty"`
	Category string `json:"category,omitempty"`
	Rank     int    `json:"rank"`

	Price      *float64 `json:"price"`
	MarketCap  *float64 `json:"market_cap"`
	Volume24h  *float64 `json:"volume_24h"`
	TVL        *float64 `json:"tvl"`
	Liquidity  *float64 `json:"liquidity"`
	TrustScore *float64 `json:"trust_score"`
	FDV        *float64 `json:"fdv"`
	Ath        *float64 `json:"ath"`
	AthChange  *float64 `json:"ath_change"`

	Change24h *float64 `json:"change_24h"`
	Change7d  *float64 `json:"change_7d"`
	Change30d *float64 `json:"change_30d"`
	Change90d *float64 `json:"change_90d"`

	CirculatingSupply *float64 `json:"circulating_supply"`
	TotalSupply       *float64 `json:"total_supply"`
	MaxSupply         *float64 `json:"max_supply"`
	HolderCount       int      `json:"holder_count,omitempty"`

	Sparkline      []float64       `json:"sparkline,omitempty"`       // Optional 7d price series
	ScoreBreakdown *ScoreBreakdown `json:"score_breakdown,omitempty"` // Optional scoring detail
}

// Clone returns a deep copy of t. The copy shares no pointers, slices or
// breakdown with t.
func (t Token) Clone() Token {
	out := t
	for _, f := range []**float64{
		&out.Price, &out.MarketCap, &out.Volume24h, &out.TVL, &out.Liquidity,
		&out.TrustScore, &out.FDV, &out.Ath, &out.AthChange,
		&out.Change24h, &out.Change7d, &out.Change30d, &out.Change90d,
		&out.CirculatingSupply, &out.TotalSupply, &out.MaxSupply,
	} {
		if *f != nil {
			v := **f
			*f = &v
		}
	}
	if t.Sparkline != nil {
		out.Sparkline = append([]float64(nil), t.Sparkline...)
	}
	if t.ScoreBreakdown != nil {
		sb := *t.ScoreBreakdown
		out.ScoreBreakdown = &sb
	}
	return out
}

// CloneTokens deep-copies a token slice. A nil input yields an empty slice.
func CloneTokens(tokens []Token) []Token {
	out := make([]Token, len(tokens))
	for i := range tokens {
		out[i] = tokens[i].Clone()
	}
	return out
}

// ScoreBreakdown is the per-category trust score detail computed by the backend.
type ScoreBreakdown struct {
	LiquidityScore    float64 `json:"liquidity_score"`
	VolumeScore       float64 `json:"volume_score"`
	TVLScore          float64 `json:"tvl_score"`
	TrendScore        float64 `json:"trend_score"`
	MarketHealthScore float64 `json:"market_health_score"`
	SocialScore       float64 `json:"social_score"`
	RiskScore         float64 `json:"risk_score"`
	TotalScore        float64 `json:"total_score"`
	Grade             string  `json:"grade"` // S, A, B, C, D, F
	Confidence        float64 `json:"confidence"`
}

// MarketStats is the global market snapshot held alongside the catalog.
type MarketStats struct {
	TotalMarketCap      float64            `json:"total_market_cap"`
	TotalVolume         float64            `json:"total_volume"`
	MarketCapPercentage map[string]float64 `json:"market_cap_percentage"`
	MarketCapChange24h  float64            `json:"market_cap_change_24h"`
	BTCDominance        float64            `json:"btc_dominance"`
	ETHDominance        float64            `json:"eth_dominance"`
}

// Clone returns a copy of s with its own percentage map.
func (s MarketStats) Clone() MarketStats {
	out := s
	if s.MarketCapPercentage != nil {
		out.MarketCapPercentage = make(map[string]float64, len(s.MarketCapPercentage))
		for k, v := range s.MarketCapPercentage {
			out.MarketCapPercentage[k] = v
		}
	}
	return out
}

// Float returns a pointer to v. Used to build optional market figures.
func Float(v float64) *float64 {
	return &v
}

// Value returns the figure and whether it was reported.
func Value(f *float64) (float64, bool) {
	if f == nil {
		return 0, false
	}
	return *f, true
}

// OrZero returns the figure or 0 when it was not reported.
func OrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// -----------------------------------------------------------------------------
// Catalog State Types
// -----------------------------------------------------------------------------

// AllCategories is the category value that imposes no constraint.
const AllCategories = "All Sectors"

// DefaultPageSize is the page size used when none is configured.
const DefaultPageSize = 50

// FilterState constrains which catalog tokens are visible.
// A nil bound is open.
type FilterState struct {
	Search    string
	MinMcap   *float64
	MaxMcap   *float64
	MinScore  *float64
	MaxScore  *float64
	MinPrice  *float64
	MaxPrice  *float64
	MinChange *float64
	MaxChange *float64
	Category  string
	Limit     int // Page size
}

// DefaultFilters returns the filter state a store starts with and resets to.
func DefaultFilters(pageSize int) FilterState {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return FilterState{Limit: pageSize}
}

// Bound names a single range bound of a FilterState.
type Bound string

const (
	BoundMinMcap   Bound = "min_mcap"
	BoundMaxMcap   Bound = "max_mcap"
	BoundMinScore  Bound = "min_score"
	BoundMaxScore  Bound = "max_score"
	BoundMinPrice  Bound = "min_price"
	BoundMaxPrice  Bound = "max_price"
	BoundMinChange Bound = "min_change"
	BoundMaxChange Bound = "max_change"
)

// FilterPatch is a partial FilterState. Nil fields leave the current value untouched.
// ClearBounds reopens the named bounds after the patch is applied.
type FilterPatch struct {
	Search      *string
	MinMcap     *float64
	MaxMcap     *float64
	MinScore    *float64
	MaxScore    *float64
	MinPrice    *float64
	MaxPrice    *float64
	MinChange   *float64
	MaxChange   *float64
	Category    *string
	Limit       *int
	ClearBounds []Bound
}

// Merge returns f with the fields set in p overridden.
func (f FilterState) Merge(p FilterPatch) FilterState {
	out := f
	if p.Search != nil {
		out.Search = *p.Search
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.Limit != nil && *p.Limit > 0 {
		out.Limit = *p.Limit
	}

	set := func(dst **float64, src *float64) {
		if src != nil {
			v := *src
			*dst = &v
		}
	}
	set(&out.MinMcap, p.MinMcap)
	set(&out.MaxMcap, p.MaxMcap)
	set(&out.MinScore, p.MinScore)
	set(&out.MaxScore, p.MaxScore)
	set(&out.MinPrice, p.MinPrice)
	set(&out.MaxPrice, p.MaxPrice)
	set(&out.MinChange, p.MinChange)
	set(&out.MaxChange, p.MaxChange)

	for _, b := range p.ClearBounds {
		if ptr := out.bound(b); ptr != nil {
			*ptr = nil
		}
	}
	return out
}

func (f *FilterState) bound(b Bound) **float64 {
	switch b {
	case BoundMinMcap:
		return &f.MinMcap
	case BoundMaxMcap:
		return &f.MaxMcap
	case BoundMinScore:
		return &f.MinScore
	case BoundMaxScore:
		return &f.MaxScore
	case BoundMinPrice:
		return &f.MinPrice
	case BoundMaxPrice:
		return &f.MaxPrice
	case BoundMinChange:
		return &f.MinChange
	case BoundMaxChange:
		return &f.MaxChange
	}
	return nil
}

// Equal reports whether two filter states constrain identically.
func (f FilterState) Equal(o FilterState) bool {
	eq := func(a, b *float64) bool {
		if a == nil || b == nil {
			return a == nil && b == nil
		}
		return *a == *b
	}
	return f.Search == o.Search &&
		f.Category == o.Category &&
		f.Limit == o.Limit &&
		eq(f.MinMcap, o.MinMcap) && eq(f.MaxMcap, o.MaxMcap) &&
		eq(f.MinScore, o.MinScore) && eq(f.MaxScore, o.MaxScore) &&
		eq(f.MinPrice, o.MinPrice) && eq(f.MaxPrice, o.MaxPrice) &&
		eq(f.MinChange, o.MinChange) && eq(f.MaxChange, o.MaxChange)
}

// PaginationCursor tracks incremental loading.
type PaginationCursor struct {
	Offset  int  // Start of the most recently loaded page
	HasMore bool // Server-reported continuation flag
}

// FetchState is the coarse state of the catalog's fetch lifecycle.
type FetchState string

const (
	FetchIdle    FetchState = "idle"
	FetchLoading FetchState = "loading"
	FetchError   FetchState = "error"
)

// FetchStatus reports the outcome of the most recent fetch.
type FetchStatus struct {
	State     FetchState
	Message   string    // Human-readable reason, set only in FetchError
	LastFetch time.Time // Time of last successful fetch, zero if none
}

// Loading reports whether a fetch is in flight.
func (s FetchStatus) Loading() bool {
	return s.State == FetchLoading
}

// Err reports the error message, if any.
func (s FetchStatus) Err() (string, bool) {
	return s.Message, s.State == FetchError
}
