package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/baolongdinh/alpha-agent/internal/format"
	"github.com/baolongdinh/alpha-agent/internal/model"
)

func newStatsCmd(deps func() *app, root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show global market stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := deps()
			stats, err := a.client.GetMarketStats(cmd.Context())
			if err != nil {
				return err
			}
			if root.jsonOutput {
				return writeJSON(a.out, stats)
			}

			fmt.Fprintf(a.out, "Market cap     %s (%s 24h)\n",
				format.Currency(&stats.TotalMarketCap), format.Percent(&stats.MarketCapChange24h))
			fmt.Fprintf(a.out, "Volume 24h     %s\n", format.Currency(&stats.TotalVolume))
			fmt.Fprintf(a.out, "BTC dominance  %.2f%%\n", stats.BTCDominance)
			fmt.Fprintf(a.out, "ETH dominance  %.2f%%\n", stats.ETHDominance)

			for _, e := range topShares(stats, 5) {
				fmt.Fprintf(a.out, "  %-6s %6.2f%%\n", e.symbol, e.share)
			}
			return nil
		},
	}
}

type share struct {
	symbol string
	share  float64
}

// topShares returns the n largest market cap shares, largest first.
func topShares(s *model.MarketStats, n int) []share {
	out := make([]share, 0, len(s.MarketCapPercentage))
	for sym, pct := range s.MarketCapPercentage {
		out = append(out, share{symbol: sym, share: pct})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].share != out[j].share {
			return out[i].share > out[j].share
		}
		return out[i].symbol < out[j].symbol
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
