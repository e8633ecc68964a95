package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/baolongdinh/alpha-agent/internal/metrics"
	"github.com/baolongdinh/alpha-agent/internal/watchlist"
)

func newWatchlistCmd(deps func() *app, root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "watchlist",
		Aliases: []string{"fav"},
		Short:   "List favourite symbols",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := deps()
			wl, err := a.openWatchlist(cmd.Context())
			if err != nil {
				return err
			}

			symbols := wl.Symbols()
			if root.jsonOutput {
				return writeJSON(a.out, symbols)
			}
			if len(symbols) == 0 {
				fmt.Fprintln(a.out, "watchlist is empty")
				return nil
			}
			fmt.Fprintln(a.out, strings.Join(symbols, "\n"))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle <symbol>...",
		Short: "Add or remove symbols",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := deps()
			wl, err := a.openWatchlist(cmd.Context())
			if err != nil {
				return err
			}
			toggleSymbols(cmd.Context(), wl, a.metrics, a.out, args)
			return nil
		},
	})
	return cmd
}

// toggleSymbols flips each symbol and keeps the watchlist gauge current.
func toggleSymbols(ctx context.Context, wl *watchlist.Watchlist, m *metrics.Collector, out io.Writer, symbols []string) {
	for _, sym := range symbols {
		if wl.Toggle(ctx, sym) {
			fmt.Fprintf(out, "+ %s\n", sym)
		} else {
			fmt.Fprintf(out, "- %s\n", sym)
		}
	}
	m.SetWatchlistSize(wl.Len())
}
