package main

import (
	"github.com/spf13/cobra"

	"github.com/myusername/cbb-statistic-scraper/internal/pipeline"
	"github.com/myusername/cbb-statistic-scraper/internal/utils"
	"github.com/myusername/cbb-statistic-scraper/pkg/parser"
)

func newRatingsCommand(a *app) *cobra.Command {
	var (
		fromFile string
		maxRows  int
	)

	cmd := &cobra.Command{
		Use:   "ratings",
		Short: "Scrape the season ratings table and print the school slugs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			season := a.cfg.Scrape.Season
			if maxRows <= 0 {
				maxRows = a.cfg.Scrape.RatingsMaxRows
			}

			sink, closeSink, err := a.openSink(ctx)
			if err != nil {
				return err
			}
			defer closeSink()

			page := parser.RatingsPage(season, maxRows)
			runner := a.runner(a.fetcher(fromFile), sink)

			summary, records, err := runner.RunSinglePage(ctx, page, a.urls().Ratings(season), pipeline.SeasonContext(season))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.dryRun {
				utils.DisplayRecords(out, []string{"rank", "school", "conf_abbr", "wins", "losses", "srs"}, records, 25)
			}
			utils.PrintTeamSlugs(out, parser.TeamSlugs(records))
			utils.DisplaySummary(out, summary)

			a.logger.Info("ratings run finished", "season", season, "summary", summary.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&fromFile, "from-file", "", "parse a saved ratings page instead of fetching it")
	cmd.Flags().IntVar(&maxRows, "max-rows", 0, "maximum schools to keep (default from config)")
	return cmd
}
