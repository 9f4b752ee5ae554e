package main

import (
	"github.com/spf13/cobra"

	"github.com/myusername/cbb-statistic-scraper/internal/config"
	"github.com/myusername/cbb-statistic-scraper/internal/utils"
	"github.com/myusername/cbb-statistic-scraper/pkg/parser"
)

func newRollingCommand(a *app) *cobra.Command {
	var (
		teams  []string
		window int
	)

	cmd := &cobra.Command{
		Use:   "rolling",
		Short: "Scrape each team's most recent completed games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if window <= 0 {
				window = a.cfg.Scrape.RollingWindow
			}
			page := parser.RollingStatsPage(window, config.ConferenceCodes())
			season := a.cfg.Scrape.Season
			urls := a.urls()
			return a.runTeams(cmd, page, teams, func(team string) string {
				return urls.Schedule(team, season)
			})
		},
	}

	cmd.Flags().StringSliceVar(&teams, "teams", nil, "team slugs to scrape (default from config)")
	cmd.Flags().IntVar(&window, "window", 0, "number of recent games per team (default from config)")
	return cmd
}

func newTeamTotalsCommand(a *app) *cobra.Command {
	var teams []string

	cmd := &cobra.Command{
		Use:   "team-totals",
		Short: "Scrape each team's season totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			season := a.cfg.Scrape.Season
			urls := a.urls()
			return a.runTeams(cmd, parser.TeamTotalsPage(), teams, func(team string) string {
				return urls.Team(team, season)
			})
		},
	}

	cmd.Flags().StringSliceVar(&teams, "teams", nil, "team slugs to scrape (default from config)")
	return cmd
}

func (a *app) runTeams(cmd *cobra.Command, page parser.Page, teams []string, urlFor func(string) string) error {
	ctx := cmd.Context()
	if len(teams) == 0 {
		teams = a.cfg.Scrape.Teams
	}

	sink, closeSink, err := a.openSink(ctx)
	if err != nil {
		return err
	}
	defer closeSink()

	runner := a.runner(a.fetcher(""), sink)
	summary, err := runner.RunTeams(ctx, page, teams, a.cfg.Scrape.Season, urlFor)
	// the summary is shown even when the run was cut short
	utils.DisplaySummary(cmd.OutOrStdout(), summary)
	if err != nil {
		return err
	}

	a.logger.Info("team run finished", "page", page.Name, "teams", len(teams), "summary", summary.String())
	return nil
}
