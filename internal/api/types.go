package api

// TokensResponse from GET /tokens
type TokensResponse struct {
	Status      string     `json:"status"`
	Timestamp   string     `json:"timestamp"`
	Total       int        `json:"total"`
	Data        []TokenDTO `json:"data"`
	HasMore     bool       `json:"hasMore"`
	Message     string     `json:"message,omitempty"`
	FetchTimeMs int64      `json:"fetch_time_ms"`
}

// TokenDTO is the wire form of a token. Market figures are pointers so that
// fields the backend omits stay distinguishable from zero.
type TokenDTO struct {
	ID       string `json:"id"`
	Rank     int    `json:"rank"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	Category string `json:"category"`

	Price     *float64 `json:"price"`
	MarketCap *float64 `json:"market_cap"`
	Volume24h *float64 `json:"volume_24h"`
	TVL       *float64 `json:"tvl"`
	Liquidity *float64 `json:"liquidity"`

	Change24h *float64 `json:"change_24h"`
	Change7d  *float64 `json:"change_7d"`
	Change30d *float64 `json:"change_30d"`
	Change90d *float64 `json:"change_90d"`

	Ath               *float64 `json:"ath"`
	AthChange         *float64 `json:"ath_change"`
	FDV               *float64 `json:"fdv"`
	CirculatingSupply *float64 `json:"circulating_supply"`
	TotalSupply       *float64 `json:"total_supply"`
	MaxSupply         *float64 `json:"max_supply"`
	HolderCount       int      `json:"holder_count"`

	Sparkline      []float64          `json:"sparkline"`
	TrustScore     *float64           `json:"trust_score"`
	ScoreBreakdown *ScoreBreakdownDTO `json:"score_breakdown"`
}

// ScoreBreakdownDTO is the wire form of the trust score breakdown.
type ScoreBreakdownDTO struct {
	LiquidityScore    float64 `json:"liquidity_score"`
	VolumeScore       float64 `json:"volume_score"`
	TVLScore          float64 `json:"tvl_score"`
	TrendScore        float64 `json:"trend_score"`
	MarketHealthScore float64 `json:"market_health_score"`
	SocialScore       float64 `json:"social_score"`
	RiskScore         float64 `json:"risk_score"`
	TotalScore        float64 `json:"total_score"`
	Grade             string  `json:"grade"`
	Confidence        float64 `json:"confidence"`
}

// MarketStatsDTO from GET /market/stats
type MarketStatsDTO struct {
	TotalMarketCap      float64            `json:"total_market_cap"`
	TotalVolume         float64            `json:"total_volume"`
	MarketCapPercentage map[string]float64 `json:"market_cap_percentage"`
	MarketCapChange24h  float64            `json:"market_cap_change_24h"`
	BTCDominance        float64            `json:"btc_dominance"`
	ETHDominance        float64            `json:"eth_dominance"`
}

// AnalysisRequest is the reduced token payload for POST /analyze.
type AnalysisRequest struct {
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	MarketCap         float64 `json:"market_cap"`
	Volume24h         float64 `json:"volume_24h"`
	Change24h         float64 `json:"change_24h"`
	Change7d          float64 `json:"change_7d"`
	Change30d         float64 `json:"change_30d"`
	Change90d         float64 `json:"change_90d"`
	TVL               float64 `json:"tvl"`
	TrustScore        float64 `json:"trust_score"`
	Liquidity         float64 `json:"liquidity"`
	Rank              int     `json:"rank"`
	HolderCount       int     `json:"holder_count"`
	CirculatingSupply float64 `json:"circulating_supply"`
	MaxSupply         float64 `json:"max_supply"`
	TotalSupply       float64 `json:"total_supply"`
}

// AnalysisResponse from POST /analyze
type AnalysisResponse struct {
	Status      string `json:"status"`
	Cached      bool   `json:"cached"`
	Analysis    string `json:"analysis"`
	GeneratedAt string `json:"generated_at"`
	Message     string `json:"message,omitempty"`
}

// TokensQuery configures a GetTokens request.
type TokensQuery struct {
	Limit  int
	Offset int

	// Server-side filters. Nil bounds and empty strings are not sent.
	Search    string
	Category  string
	MinMcap   *float64
	MaxMcap   *float64
	MinScore  *float64
	MaxScore  *float64
	MinPrice  *float64
	MaxPrice  *float64
	MinChange *float64
	MaxChange *float64
}
