// Package filter derives the visible subset of a token catalog from a FilterState.
//
// All active predicates are ANDed. Filtering never reorders its input.
package filter

import (
	"strings"

	"github.com/baolongdinh/alpha-agent/internal/model"
)

// MissingPolicy decides how an active range bound treats a token whose
// field was not reported by the backend.
type MissingPolicy int

const (
	// MissingInclude keeps tokens with an absent field; the bound does not apply.
	MissingInclude MissingPolicy = iota
	// MissingExclude drops tokens with an absent field whenever a bound on it is set.
	MissingExclude
)

// ParseMissingPolicy maps a config value to a MissingPolicy.
func ParseMissingPolicy(s string) (MissingPolicy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "include":
		return MissingInclude, true
	case "exclude":
		return MissingExclude, true
	}
	return MissingInclude, false
}

func (p MissingPolicy) String() string {
	if p == MissingExclude {
		return "exclude"
	}
	return "include"
}

// Options configures filtering.
type Options struct {
	Missing MissingPolicy
}

// rangeCheck is one optional inclusive numeric bound pair over a token field.
type rangeCheck struct {
	min, max *float64
	field    func(*model.Token) *float64
}

func ranges(f *model.FilterState) [4]rangeCheck {
	return [4]rangeCheck{
		{f.MinMcap, f.MaxMcap, func(t *model.Token) *float64 { return t.MarketCap }},
		{f.MinScore, f.MaxScore, func(t *model.Token) *float64 { return t.TrustScore }},
		{f.MinPrice, f.MaxPrice, func(t *model.Token) *float64 { return t.Price }},
		{f.MinChange, f.MaxChange, func(t *model.Token) *float64 { return t.Change24h }},
	}
}

// Active reports whether any predicate of f constrains the catalog.
func Active(f model.FilterState) bool {
	if normalizeSearch(f.Search) != "" || categoryActive(f.Category) {
		return true
	}
	for _, r := range ranges(&f) {
		if r.min != nil || r.max != nil {
			return true
		}
	}
	return false
}

// Apply returns the tokens that satisfy every active predicate, in input order.
// With no active predicate the result has the same elements as the input.
func Apply(tokens []model.Token, f model.FilterState, opts Options) []model.Token {
	out := make([]model.Token, 0, len(tokens))
	m := newMatcher(f, opts)
	for i := range tokens {
		if m.match(&tokens[i]) {
			out = append(out, tokens[i])
		}
	}
	return out
}

// Match reports whether a single token satisfies f.
func Match(t model.Token, f model.FilterState, opts Options) bool {
	return newMatcher(f, opts).match(&t)
}

type matcher struct {
	search   string
	category string
	ranges   [4]rangeCheck
	missing  MissingPolicy
}

func newMatcher(f model.FilterState, opts Options) matcher {
	m := matcher{
		search:  normalizeSearch(f.Search),
		ranges:  ranges(&f),
		missing: opts.Missing,
	}
	if categoryActive(f.Category) {
		m.category = f.Category
	}
	return m
}

func (m matcher) match(t *model.Token) bool {
	if m.category != "" && t.Category != m.category {
		return false
	}

	if m.search != "" &&
		!strings.Contains(strings.ToLower(t.Symbol), m.search) &&
		!strings.Contains(strings.ToLower(t.Name), m.search) {
		return false
	}

	for _, r := range m.ranges {
		if r.min == nil && r.max == nil {
			continue
		}
		v, ok := model.Value(r.field(t))
		if !ok {
			if m.missing == MissingExclude {
				return false
			}
			continue
		}
		if r.min != nil && v < *r.min {
			return false
		}
		if r.max != nil && v > *r.max {
			return false
		}
	}

	return true
}

func normalizeSearch(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func categoryActive(c string) bool {
	return c != "" && c != model.AllCategories
}
