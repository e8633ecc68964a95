package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/baolongdinh/alpha-agent/internal/format"
	"github.com/baolongdinh/alpha-agent/internal/model"
)

func newTokenCmd(deps func() *app, root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "token <id|symbol>",
		Short: "Show the full detail of one token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := deps()
			t, err := resolveToken(cmd.Context(), a, args[0])
			if err != nil {
				return err
			}
			if root.jsonOutput {
				return writeJSON(a.out, t)
			}
			renderToken(a.out, t)
			return nil
		},
	}
}

func renderToken(w io.Writer, t *model.Token) {
	fmt.Fprintf(w, "%s (%s)  %s  rank %s\n\n", t.Name, t.Symbol, t.Category, format.Rank(t.Rank))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"Price", format.Currency(t.Price)},
		{"Market cap", format.Currency(t.MarketCap)},
		{"FDV", format.Compact(t.FDV)},
		{"Volume 24h", format.Compact(t.Volume24h)},
		{"Liquidity", format.Compact(t.Liquidity)},
		{"TVL", format.Compact(t.TVL)},
		{"Change 24h", format.Percent(t.Change24h)},
		{"Change 7d", format.Percent(t.Change7d)},
		{"Change 30d", format.Percent(t.Change30d)},
		{"Change 90d", format.Percent(t.Change90d)},
		{"ATH", format.Currency(t.Ath)},
		{"From ATH", format.Percent(t.AthChange)},
		{"Circulating", format.Compact(t.CirculatingSupply)},
		{"Total supply", format.Compact(t.TotalSupply)},
		{"Max supply", format.Compact(t.MaxSupply)},
	}
	if t.HolderCount > 0 {
		rows = append(rows, [2]string{"Holders", fmt.Sprintf("%d", t.HolderCount)})
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", r[0], r[1])
	}
	tw.Flush()

	if len(t.Sparkline) > 0 {
		fmt.Fprintf(w, "\n7d  %s\n", sparkline(t.Sparkline, 40))
	}

	if sb := t.ScoreBreakdown; sb != nil {
		fmt.Fprintf(w, "\nTrust score %.1f  grade %s  confidence %.0f%%\n", sb.TotalScore, sb.Grade, sb.Confidence*100)
		parts := map[string]float64{
			"liquidity": sb.LiquidityScore,
			"volume":    sb.VolumeScore,
			"tvl":       sb.TVLScore,
			"trend":     sb.TrendScore,
			"health":    sb.MarketHealthScore,
			"social":    sb.SocialScore,
			"risk":      sb.RiskScore,
		}
		names := make([]string, 0, len(parts))
		for n := range parts {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			fmt.Fprintf(w, "  %-10s %5.1f\n", n, parts[n])
		}
	}
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// sparkline renders at most width samples of series as block characters.
func sparkline(series []float64, width int) string {
	if len(series) == 0 || width <= 0 {
		return ""
	}
	step := 1
	if len(series) > width {
		step = (len(series) + width - 1) / width
	}

	lo, hi := series[0], series[0]
	for _, v := range series {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	var b strings.Builder
	for i := 0; i < len(series); i += step {
		idx := 0
		if hi > lo {
			idx = int((series[i] - lo) / (hi - lo) * float64(len(sparkRunes)-1))
		}
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}
