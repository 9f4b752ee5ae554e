package main

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/myusername/cbb-statistic-scraper/internal/config"
	"github.com/myusername/cbb-statistic-scraper/internal/logging"
	"github.com/myusername/cbb-statistic-scraper/internal/pipeline"
	"github.com/myusername/cbb-statistic-scraper/internal/utils"
	"github.com/myusername/cbb-statistic-scraper/pkg/scraper"
	"github.com/myusername/cbb-statistic-scraper/pkg/store"
)

// app holds what every subcommand needs once configuration is loaded
type app struct {
	cfgFile string
	debug   bool
	dryRun  bool
	season  int

	cfg    *config.Config
	logger *logging.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "cbb-scraper",
		Short:         "Scrape men's college basketball statistics from Sports-Reference",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" && cmd.Parent() == cmd.Root() {
				return nil
			}
			return a.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./config.yaml or ./config/config.yaml)")
	flags.BoolVar(&a.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&a.dryRun, "dry-run", false, "keep records in memory instead of writing to the store")
	flags.IntVar(&a.season, "season", 0, "season to scrape (default from config)")

	root.AddCommand(
		newRatingsCommand(a),
		newRollingCommand(a),
		newTeamTotalsCommand(a),
		newMigrateCommand(a),
		newVersionCommand(),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.season != 0 {
		cfg.Scrape.Season = a.season
	}

	level := logging.ParseLevel(cfg.Log.Level)
	if a.debug {
		level = logging.LevelDebug
	}
	a.cfg = cfg
	a.logger = logging.New(level, cfg.Log.Format)
	logging.SetDefault(a.logger)

	a.logger.Debug("configuration loaded",
		"driver", cfg.Store.Driver,
		"season", cfg.Scrape.Season,
		"dry_run", a.dryRun,
	)
	return nil
}

// openSink returns the run's sink and a close func. Dry runs and the memory
// driver use an in-process store; SQL stores are migrated before use.
func (a *app) openSink(ctx context.Context) (store.Sink, func(), error) {
	if a.dryRun || a.cfg.Store.Driver == store.DriverMemory {
		return store.NewMemoryStore(), func() {}, nil
	}

	s, err := a.openSQLStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.MigrateUp(); err != nil {
		_ = s.Close()
		return nil, nil, err
	}
	return s, func() { _ = s.Close() }, nil
}

func (a *app) openSQLStore(ctx context.Context) (*store.SQLStore, error) {
	if a.cfg.Store.Driver == store.DriverMemory {
		return nil, errors.New("the memory store has no schema to migrate")
	}
	return store.Open(ctx, a.cfg.Store.Driver, a.cfg.Store.DSN)
}

// fetcher reads fromFile when set, otherwise fetches over HTTP through the
// optional HTML cache
func (a *app) fetcher(fromFile string) scraper.Fetcher {
	if fromFile != "" {
		return scraper.FileFetcher{Path: fromFile}
	}

	var f scraper.Fetcher = scraper.NewHTTPFetcher(a.cfg.Scrape.UserAgent, a.cfg.Scrape.Timeout, a.logger)
	if dir := a.cfg.Scrape.HTMLCacheDir; dir != "" {
		f = &scraper.CachedFetcher{Next: f, Dir: dir, Logger: a.logger}
	}
	return f
}

func (a *app) runner(fetcher scraper.Fetcher, sink store.Sink) *pipeline.Runner {
	opts := []pipeline.Option{pipeline.WithDelay(a.cfg.Scrape.Delay)}
	if dir := a.cfg.Scrape.CSVDir; dir != "" {
		opts = append(opts, pipeline.WithExporter(utils.CSVExporter{Dir: dir}))
	}
	return pipeline.New(fetcher, sink, a.logger, opts...)
}

func (a *app) urls() scraper.URLs {
	return scraper.URLs{Base: a.cfg.Scrape.BaseURL}
}
