package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/baolongdinh/alpha-agent/internal/api"
	"github.com/baolongdinh/alpha-agent/internal/catalog"
	"github.com/baolongdinh/alpha-agent/internal/config"
	"github.com/baolongdinh/alpha-agent/internal/filter"
	"github.com/baolongdinh/alpha-agent/internal/logging"
	"github.com/baolongdinh/alpha-agent/internal/metrics"
	"github.com/baolongdinh/alpha-agent/internal/version"
	"github.com/baolongdinh/alpha-agent/internal/watchlist"
)

type rootOptions struct {
	configPath string
	envFile    string
	mode       string
	logLevel   string
	jsonOutput bool
}

// app holds the dependencies shared by subcommands.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	client  *api.Client
	metrics *metrics.Collector
	out     io.Writer

	closers []io.Closer
}

// newRootCmd builds the command tree. The returned cleanup releases whatever
// the executed command opened.
func newRootCmd() (*cobra.Command, func() error) {
	opts := &rootOptions{}
	var a *app

	root := &cobra.Command{
		Use:           "alpha",
		Short:         "Browse the AlphaAgent token catalog",
		Version:       version.String(),
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a, err = newApp(opts, cmd.OutOrStdout())
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "path to config file")
	pf.StringVar(&opts.envFile, "env-file", ".env", "env file loaded before the config")
	pf.StringVar(&opts.mode, "mode", "", "catalog mode: server, client or client_paged")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level override")
	pf.BoolVar(&opts.jsonOutput, "json", false, "print JSON instead of tables")

	deps := func() *app { return a }
	root.AddCommand(
		newTokensCmd(deps, opts),
		newTokenCmd(deps, opts),
		newStatsCmd(deps, opts),
		newAnalyzeCmd(deps, opts),
		newWatchlistCmd(deps, opts),
		newWatchCmd(deps),
	)

	cleanup := func() error {
		if a == nil {
			return nil
		}
		return a.Close()
	}
	return root, cleanup
}

func newApp(opts *rootOptions, out io.Writer) (*app, error) {
	if err := config.LoadEnv(opts.envFile); err != nil {
		return nil, err
	}

	cfg, err := config.LoadWithDefaults(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.mode != "" {
		cfg.Catalog.Mode = opts.mode
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	logger, logCloser, err := logging.New(cfg.Logging, os.Stderr)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	logger.Debug("configuration loaded",
		"version", version.Version,
		"api_url", cfg.API.BaseURL,
		"mode", cfg.Catalog.Mode,
	)

	client := api.NewClient(
		cfg.API.BaseURL,
		cfg.API.APIKey,
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.MaxRetries, cfg.API.RetryBackoff),
		api.WithRateLimit(cfg.API.RateLimit, cfg.API.RateBurst),
	)

	return &app{
		cfg:     cfg,
		logger:  logger,
		client:  client,
		metrics: metrics.NewCollector(),
		out:     out,
		closers: []io.Closer{logCloser},
	}, nil
}

// newStore builds a catalog store from the catalog config section.
func (a *app) newStore(opts ...catalog.Option) (*catalog.Store, error) {
	mode, err := catalog.ParseMode(a.cfg.Catalog.Mode)
	if err != nil {
		return nil, err
	}
	missing, ok := filter.ParseMissingPolicy(a.cfg.Catalog.MissingFields)
	if !ok {
		return nil, fmt.Errorf("unknown missing field policy %q", a.cfg.Catalog.MissingFields)
	}

	cfg := catalog.Config{
		Mode:           mode,
		PageSize:       a.cfg.Catalog.PageSize,
		FullLoadLimit:  a.cfg.Catalog.FullLoadLimit,
		Missing:        missing,
		RefreshOnReset: a.cfg.Catalog.RefreshOnReset,
		DetailTTL:      a.cfg.Catalog.DetailTTL,
	}
	return catalog.New(cfg, a.client, a.logger, append(opts, catalog.WithObserver(a.metrics))...), nil
}

// openWatchlist connects the configured backend and loads the favourites.
func (a *app) openWatchlist(ctx context.Context) (*watchlist.Watchlist, error) {
	kv, err := watchlist.Open(ctx, a.cfg.Watchlist)
	if err != nil {
		return nil, fmt.Errorf("open watchlist: %w", err)
	}
	a.closers = append(a.closers, kv)

	wl := watchlist.New(kv, a.cfg.Watchlist.Key, a.logger)
	wl.Load(ctx)
	a.metrics.SetWatchlistSize(wl.Len())
	return wl, nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// storeError converts a failed fetch into the message recorded by the store.
func storeError(store *catalog.Store, err error) error {
	if msg, ok := store.Status().Err(); ok {
		return errors.New(msg)
	}
	return err
}
