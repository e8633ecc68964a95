package filter

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/baolongdinh/alpha-agent/internal/model"
)

func symbols(tokens []model.Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Symbol
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sampleCatalog() []model.Token {
	return []model.Token{
		{Symbol: "BTC", Name: "Bitcoin", Category: "Layer 1", MarketCap: model.Float(900), Price: model.Float(65000), TrustScore: model.Float(92), Change24h: model.Float(1.2)},
		{Symbol: "ETH", Name: "Ethereum", Category: "Layer 1", MarketCap: model.Float(300), Price: model.Float(3000), TrustScore: model.Float(88), Change24h: model.Float(-2.5)},
		{Symbol: "UNI", Name: "Uniswap", Category: "DeFi", MarketCap: model.Float(5), Price: model.Float(7), TrustScore: model.Float(70), Change24h: model.Float(4)},
		{Symbol: "WBTC", Name: "Wrapped Bitcoin", Category: "Wrapped", MarketCap: model.Float(10), Price: model.Float(64900)},
		{Symbol: "NEW", Name: "Newcoin", Category: "DeFi"},
	}
}

func TestApply_NoFilters(t *testing.T) {
	catalog := sampleCatalog()
	got := Apply(catalog, model.DefaultFilters(50), Options{})
	if !equalStrings(symbols(got), symbols(catalog)) {
		t.Errorf("Apply = %v, want %v", symbols(got), symbols(catalog))
	}

	got = Apply(catalog, model.DefaultFilters(50), Options{Missing: MissingExclude})
	if !equalStrings(symbols(got), symbols(catalog)) {
		t.Errorf("Apply with exclude policy = %v, want %v", symbols(got), symbols(catalog))
	}
}

func TestApply_MinMcapScenario(t *testing.T) {
	catalog := []model.Token{
		{Symbol: "BTC", MarketCap: model.Float(900)},
		{Symbol: "ETH", MarketCap: model.Float(300)},
	}
	got := Apply(catalog, model.FilterState{MinMcap: model.Float(500)}, Options{})
	if !equalStrings(symbols(got), []string{"BTC"}) {
		t.Errorf("Apply = %v, want [BTC]", symbols(got))
	}
}

func TestApply_Predicates(t *testing.T) {
	tests := []struct {
		name   string
		filter model.FilterState
		opts   Options
		want   []string
	}{
		{"search symbol", model.FilterState{Search: "btc"}, Options{}, []string{"BTC", "WBTC"}},
		{"search name trimmed", model.FilterState{Search: "  BITCOIN "}, Options{}, []string{"BTC", "WBTC"}},
		{"whitespace search is open", model.FilterState{Search: "   "}, Options{}, []string{"BTC", "ETH", "UNI", "WBTC", "NEW"}},
		{"category", model.FilterState{Category: "DeFi"}, Options{}, []string{"UNI", "NEW"}},
		{"all categories sentinel", model.FilterState{Category: model.AllCategories}, Options{}, []string{"BTC", "ETH", "UNI", "WBTC", "NEW"}},
		{"inclusive mcap range", model.FilterState{MinMcap: model.Float(10), MaxMcap: model.Float(300)}, Options{}, []string{"ETH", "WBTC", "NEW"}},
		{"inclusive mcap range exclude missing", model.FilterState{MinMcap: model.Float(10), MaxMcap: model.Float(300)}, Options{Missing: MissingExclude}, []string{"ETH", "WBTC"}},
		{"score floor include missing", model.FilterState{MinScore: model.Float(80)}, Options{}, []string{"BTC", "ETH", "WBTC", "NEW"}},
		{"score floor exclude missing", model.FilterState{MinScore: model.Float(80)}, Options{Missing: MissingExclude}, []string{"BTC", "ETH"}},
		{"price ceiling", model.FilterState{MaxPrice: model.Float(3000)}, Options{Missing: MissingExclude}, []string{"ETH", "UNI"}},
		{"change window", model.FilterState{MinChange: model.Float(-3), MaxChange: model.Float(1.2)}, Options{Missing: MissingExclude}, []string{"BTC", "ETH"}},
		{"combined AND", model.FilterState{Category: "Layer 1", Search: "eth", MinScore: model.Float(50)}, Options{}, []string{"ETH"}},
		{"nothing matches", model.FilterState{Search: "doge"}, Options{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(sampleCatalog(), tt.filter, tt.opts)
			if !equalStrings(symbols(got), tt.want) {
				t.Errorf("Apply = %v, want %v", symbols(got), tt.want)
			}
		})
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	catalog := sampleCatalog()
	_ = Apply(catalog, model.FilterState{Search: "eth"}, Options{})
	if len(catalog) != 5 || catalog[0].Symbol != "BTC" {
		t.Error("input catalog modified")
	}
}

// TestApply_Soundness checks on random data that every visible token satisfies
// every active bound and every hidden token violates at least one.
func TestApply_Soundness(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	maybe := func(v float64) *float64 {
		if r.IntN(4) == 0 {
			return nil
		}
		return model.Float(v)
	}

	for iter := 0; iter < 200; iter++ {
		catalog := make([]model.Token, 30)
		for i := range catalog {
			catalog[i] = model.Token{
				Symbol:     fmt.Sprintf("T%d", i),
				MarketCap:  maybe(r.Float64() * 1000),
				TrustScore: maybe(r.Float64() * 100),
				Price:      maybe(r.Float64() * 50),
				Change24h:  maybe(r.Float64()*20 - 10),
			}
		}
		f := model.FilterState{
			MinMcap:   maybe(r.Float64() * 500),
			MaxScore:  maybe(50 + r.Float64()*50),
			MinChange: maybe(r.Float64()*10 - 5),
		}

		for _, policy := range []MissingPolicy{MissingInclude, MissingExclude} {
			opts := Options{Missing: policy}
			visible := Apply(catalog, f, opts)
			seen := make(map[string]bool, len(visible))
			for _, tok := range visible {
				seen[tok.Symbol] = true
				if v, ok := model.Value(tok.MarketCap); ok && f.MinMcap != nil && v < *f.MinMcap {
					t.Fatalf("visible %s violates min_mcap", tok.Symbol)
				}
				if v, ok := model.Value(tok.TrustScore); ok && f.MaxScore != nil && v > *f.MaxScore {
					t.Fatalf("visible %s violates max_score", tok.Symbol)
				}
				if v, ok := model.Value(tok.Change24h); ok && f.MinChange != nil && v < *f.MinChange {
					t.Fatalf("visible %s violates min_change", tok.Symbol)
				}
			}
			for _, tok := range catalog {
				if seen[tok.Symbol] != Match(tok, f, opts) {
					t.Fatalf("Apply and Match disagree on %s", tok.Symbol)
				}
			}
		}
	}
}

func TestActive(t *testing.T) {
	if Active(model.DefaultFilters(50)) {
		t.Error("defaults should not be active")
	}
	if Active(model.FilterState{Search: "  ", Category: model.AllCategories}) {
		t.Error("blank search and sentinel category should not be active")
	}
	if !Active(model.FilterState{MaxChange: model.Float(0)}) {
		t.Error("zero bound is still a bound")
	}
}

func TestParseMissingPolicy(t *testing.T) {
	tests := []struct {
		in   string
		want MissingPolicy
		ok   bool
	}{
		{"", MissingInclude, true},
		{"include", MissingInclude, true},
		{" Exclude ", MissingExclude, true},
		{"drop", MissingInclude, false},
	}
	for _, tt := range tests {
		got, ok := ParseMissingPolicy(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseMissingPolicy(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
	if MissingExclude.String() != "exclude" || MissingInclude.String() != "include" {
		t.Error("String() mismatch")
	}
}
