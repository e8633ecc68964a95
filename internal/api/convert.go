package api

import (
	"regexp"
	"strings"

	"github.com/baolongdinh/alpha-agent/internal/model"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeID derives a token id: the backend id if present, else the name,
// lowercased with every whitespace run replaced by a hyphen.
// "Wrapped Bitcoin" -> "wrapped-bitcoin"
func NormalizeID(id, name string) string {
	base := id
	if base == "" {
		base = name
	}
	return whitespaceRun.ReplaceAllString(strings.ToLower(base), "-")
}

// QueryFromFilters builds a TokensQuery forwarding every active filter.
func QueryFromFilters(f model.FilterState, offset int) TokensQuery {
	q := TokensQuery{
		Limit:     f.Limit,
		Offset:    offset,
		Search:    strings.TrimSpace(f.Search),
		MinMcap:   f.MinMcap,
		MaxMcap:   f.MaxMcap,
		MinScore:  f.MinScore,
		MaxScore:  f.MaxScore,
		MinPrice:  f.MinPrice,
		MaxPrice:  f.MaxPrice,
		MinChange: f.MinChange,
		MaxChange: f.MaxChange,
	}
	if f.Category != model.AllCategories {
		q.Category = f.Category
	}
	return q
}

// ToModel converts a TokenDTO to model.Token.
func (d *TokenDTO) ToModel() model.Token {
	t := model.Token{
		ID:                NormalizeID(d.ID, d.Name),
		Symbol:            d.Symbol,
		Name:              d.Name,
		Image:             d.Image,
		Category:          d.Category,
		Rank:              d.Rank,
		Price:             d.Price,
		MarketCap:         d.MarketCap,
		Volume24h:         d.Volume24h,
		TVL:               d.TVL,
		Liquidity:         d.Liquidity,
		TrustScore:        d.TrustScore,
		FDV:               d.FDV,
		Ath:               d.Ath,
		AthChange:         d.AthChange,
		Change24h:         d.Change24h,
		Change7d:          d.Change7d,
		Change30d:         d.Change30d,
		Change90d:         d.Change90d,
		CirculatingSupply: d.CirculatingSupply,
		TotalSupply:       d.TotalSupply,
		MaxSupply:         d.MaxSupply,
		HolderCount:       d.HolderCount,
	}

	if len(d.Sparkline) > 0 {
		t.Sparkline = append([]float64(nil), d.Sparkline...)
	}

	if b := d.ScoreBreakdown; b != nil {
		t.ScoreBreakdown = &model.ScoreBreakdown{
			LiquidityScore:    b.LiquidityScore,
			VolumeScore:       b.VolumeScore,
			TVLScore:          b.TVLScore,
			TrendScore:        b.TrendScore,
			MarketHealthScore: b.MarketHealthScore,
			SocialScore:       b.SocialScore,
			RiskScore:         b.RiskScore,
			TotalScore:        b.TotalScore,
			Grade:             b.Grade,
			Confidence:        b.Confidence,
		}
	}

	return t
}

// ToModels converts a page of DTOs, preserving order.
func ToModels(dtos []TokenDTO) []model.Token {
	out := make([]model.Token, 0, len(dtos))
	for i := range dtos {
		out = append(out, dtos[i].ToModel())
	}
	return out
}

// ToModel converts a MarketStatsDTO to model.MarketStats.
func (s *MarketStatsDTO) ToModel() model.MarketStats {
	pct := make(map[string]float64, len(s.MarketCapPercentage))
	for k, v := range s.MarketCapPercentage {
		pct[k] = v
	}
	return model.MarketStats{
		TotalMarketCap:      s.TotalMarketCap,
		TotalVolume:         s.TotalVolume,
		MarketCapPercentage: pct,
		MarketCapChange24h:  s.MarketCapChange24h,
		BTCDominance:        s.BTCDominance,
		ETHDominance:        s.ETHDominance,
	}
}

// NewAnalysisRequest reduces a token to the analysis payload.
// Absent figures are sent as 0.
func NewAnalysisRequest(t model.Token) AnalysisRequest {
	return AnalysisRequest{
		Symbol:            t.Symbol,
		Name:              t.Name,
		Price:             model.OrZero(t.Price),
		MarketCap:         model.OrZero(t.MarketCap),
		Volume24h:         model.OrZero(t.Volume24h),
		Change24h:         model.OrZero(t.Change24h),
		Change7d:          model.OrZero(t.Change7d),
		Change30d:         model.OrZero(t.Change30d),
		Change90d:         model.OrZero(t.Change90d),
		TVL:               model.OrZero(t.TVL),
		TrustScore:        model.OrZero(t.TrustScore),
		Liquidity:         model.OrZero(t.Liquidity),
		Rank:              t.Rank,
		HolderCount:       t.HolderCount,
		CirculatingSupply: model.OrZero(t.CirculatingSupply),
		MaxSupply:         model.OrZero(t.MaxSupply),
		TotalSupply:       model.OrZero(t.TotalSupply),
	}
}
