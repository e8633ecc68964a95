package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baolongdinh/alpha-agent/internal/analysis"
)

func newAnalyzeCmd(deps func() *app, root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <id|symbol>",
		Short: "Request an AI analysis of one token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := deps()
			ctx := cmd.Context()

			t, err := resolveToken(ctx, a, args[0])
			if err != nil {
				return err
			}

			analyzer := analysis.New(a.client, a.logger)
			text, err := analyzer.Analyze(ctx, *t)
			if err != nil {
				return err
			}

			state := analyzer.State()
			if root.jsonOutput {
				return writeJSON(a.out, map[string]any{
					"symbol":       state.Symbol,
					"analysis":     text,
					"cached":       state.Cached,
					"generated_at": state.GeneratedAt,
				})
			}

			fmt.Fprintf(a.out, "%s (%s)\n\n%s\n", t.Name, t.Symbol, text)
			if state.Cached {
				fmt.Fprintf(a.out, "\n(cached, generated %s)\n", state.GeneratedAt)
			}
			return nil
		},
	}
}
