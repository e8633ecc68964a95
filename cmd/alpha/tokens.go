package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/baolongdinh/alpha-agent/internal/format"
	"github.com/baolongdinh/alpha-agent/internal/model"
)

// boundFlags maps range flags to filter bounds.
var boundFlags = []struct {
	flag  string
	bound model.Bound
	usage string
}{
	{"min-mcap", model.BoundMinMcap, "minimum market cap"},
	{"max-mcap", model.BoundMaxMcap, "maximum market cap"},
	{"min-score", model.BoundMinScore, "minimum trust score"},
	{"max-score", model.BoundMaxScore, "maximum trust score"},
	{"min-price", model.BoundMinPrice, "minimum price"},
	{"max-price", model.BoundMaxPrice, "maximum price"},
	{"min-change", model.BoundMinChange, "minimum 24h change (%)"},
	{"max-change", model.BoundMaxChange, "maximum 24h change (%)"},
}

type tokensOptions struct {
	search    string
	category  string
	limit     int
	pages     int
	top       int
	favorites bool
}

func newTokensCmd(deps func() *app, root *rootOptions) *cobra.Command {
	opts := &tokensOptions{}

	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "List tokens matching the given filters",
		Example: `  alpha tokens --search eth --min-mcap 1e9
  alpha tokens --category DeFi --pages 3 --mode client`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := deps()
			ctx := cmd.Context()

			patch, err := filterPatch(cmd, opts)
			if err != nil {
				return err
			}

			store, err := a.newStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.UpdateFilters(ctx, patch); err != nil {
				return storeError(store, err)
			}
			for i := 1; i < opts.pages && store.Pagination().HasMore; i++ {
				if err := store.LoadMore(ctx); err != nil {
					return storeError(store, err)
				}
			}

			tokens := store.Visible()
			if opts.top > 0 {
				tokens = store.TopN(opts.top)
			}

			var favorites func(string) bool
			if opts.favorites || !root.jsonOutput {
				wl, err := a.openWatchlist(ctx)
				if err != nil {
					a.logger.Warn("watchlist unavailable", "err", err)
				} else {
					favorites = wl.IsFavorite
				}
			}
			if opts.favorites {
				if favorites == nil {
					return fmt.Errorf("--favorites requires a watchlist backend")
				}
				tokens = onlyFavorites(tokens, favorites)
			}

			if root.jsonOutput {
				return writeJSON(a.out, tokens)
			}
			renderTokens(a.out, tokens, favorites)

			p := store.Pagination()
			fmt.Fprintf(a.out, "\n%d tokens shown, %d in catalog", len(tokens), len(store.Catalog()))
			if p.HasMore {
				fmt.Fprint(a.out, ", more available (--pages)")
			}
			fmt.Fprintln(a.out)
			return nil
		},
	}

	bindTokensFlags(cmd, opts)
	return cmd
}

func bindTokensFlags(cmd *cobra.Command, opts *tokensOptions) {
	f := cmd.Flags()
	f.StringVarP(&opts.search, "search", "s", "", "symbol or name substring")
	f.StringVar(&opts.category, "category", "", "exact category ("+model.AllCategories+" for any)")
	f.IntVarP(&opts.limit, "limit", "n", 0, "page size (default from config)")
	f.IntVar(&opts.pages, "pages", 1, "number of pages to load")
	f.IntVar(&opts.top, "top", 0, "only show the first N tokens")
	f.BoolVar(&opts.favorites, "favorites", false, "only show watchlist symbols")
	for _, b := range boundFlags {
		f.Float64(b.flag, 0, b.usage)
	}
}

// filterPatch converts the flags that were set into a FilterPatch.
func filterPatch(cmd *cobra.Command, opts *tokensOptions) (model.FilterPatch, error) {
	var patch model.FilterPatch
	f := cmd.Flags()

	if f.Changed("search") {
		patch.Search = &opts.search
	}
	if f.Changed("category") {
		patch.Category = &opts.category
	}
	if f.Changed("limit") {
		if opts.limit < 1 {
			return patch, fmt.Errorf("--limit must be >= 1")
		}
		patch.Limit = &opts.limit
	}

	for _, b := range boundFlags {
		if !f.Changed(b.flag) {
			continue
		}
		v, err := f.GetFloat64(b.flag)
		if err != nil {
			return patch, err
		}
		setBound(&patch, b.bound, v)
	}
	return patch, nil
}

func setBound(p *model.FilterPatch, b model.Bound, v float64) {
	switch b {
	case model.BoundMinMcap:
		p.MinMcap = &v
	case model.BoundMaxMcap:
		p.MaxMcap = &v
	case model.BoundMinScore:
		p.MinScore = &v
	case model.BoundMaxScore:
		p.MaxScore = &v
	case model.BoundMinPrice:
		p.MinPrice = &v
	case model.BoundMaxPrice:
		p.MaxPrice = &v
	case model.BoundMinChange:
		p.MinChange = &v
	case model.BoundMaxChange:
		p.MaxChange = &v
	}
}

func onlyFavorites(tokens []model.Token, isFavorite func(string) bool) []model.Token {
	out := make([]model.Token, 0, len(tokens))
	for _, t := range tokens {
		if isFavorite(t.Symbol) {
			out = append(out, t)
		}
	}
	return out
}

func renderTokens(w io.Writer, tokens []model.Token, isFavorite func(string) bool) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tSYMBOL\tNAME\tPRICE\tMCAP\t24H\t7D\tSCORE\tCATEGORY\t")
	for _, t := range tokens {
		star := ""
		if isFavorite != nil && isFavorite(t.Symbol) {
			star = "*"
		}
		score := format.NA
		if v, ok := model.Value(t.TrustScore); ok {
			score = fmt.Sprintf("%.0f", v)
		}
		fmt.Fprintf(tw, "%s\t%s%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			format.Rank(t.Rank),
			t.Symbol, star,
			format.Truncate(t.Name, 24),
			format.Price(t.Price),
			format.Compact(t.MarketCap),
			format.Percent(t.Change24h),
			format.Percent(t.Change7d),
			score,
			t.Category,
		)
	}
	tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// resolveToken looks a token up by id, falling back to a symbol match in a
// freshly searched catalog.
func resolveToken(ctx context.Context, a *app, ref string) (*model.Token, error) {
	store, err := a.newStore()
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if t, err := store.TokenDetail(ctx, strings.ToLower(ref)); err == nil {
		return t, nil
	}

	search := ref
	if err := store.UpdateFilters(ctx, model.FilterPatch{Search: &search}); err != nil {
		return nil, storeError(store, err)
	}
	if t, ok := store.Lookup(ref); ok {
		return &t, nil
	}
	return nil, fmt.Errorf("token %q not found", ref)
}
