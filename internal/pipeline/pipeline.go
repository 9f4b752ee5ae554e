// Package pipeline runs page scrapes: fetch, parse, upsert, one page at a time.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/myusername/cbb-statistic-scraper/internal/logging"
	"github.com/myusername/cbb-statistic-scraper/pkg/models"
	"github.com/myusername/cbb-statistic-scraper/pkg/parser"
	"github.com/myusername/cbb-statistic-scraper/pkg/scraper"
	"github.com/myusername/cbb-statistic-scraper/pkg/store"
)

// Exporter receives the records of one page after they are stored
type Exporter interface {
	Export(page parser.Page, item string, records []models.Record) error
}

// Failure is one team or page that produced no records
type Failure struct {
	Item   string
	Reason string
}

// Summary is reported once at the end of a run
type Summary struct {
	Page     string
	Parsed   int
	Inserted int
	Replaced int
	Failed   []Failure
}

// FailedItems returns the names of the failed items in run order
func (s *Summary) FailedItems() []string {
	items := make([]string, 0, len(s.Failed))
	for _, f := range s.Failed {
		items = append(items, f.Item)
	}
	return items
}

// String renders the counts on one line
func (s *Summary) String() string {
	return fmt.Sprintf("parsed=%d inserted=%d replaced=%d failed=%d", s.Parsed, s.Inserted, s.Replaced, len(s.Failed))
}

func (s *Summary) fail(item string, err error) {
	s.Failed = append(s.Failed, Failure{Item: item, Reason: err.Error()})
}

// Runner drives page scrapes against a fetcher and a sink
type Runner struct {
	fetcher  scraper.Fetcher
	sink     store.Sink
	logger   *logging.Logger
	delay    time.Duration
	sleep    func(time.Duration)
	exporter Exporter
}

// Option configures a Runner
type Option func(*Runner)

// WithDelay sets the pause between successive page fetches in a team run
func WithDelay(d time.Duration) Option {
	return func(r *Runner) { r.delay = d }
}

// WithSleep replaces time.Sleep, for tests
func WithSleep(sleep func(time.Duration)) Option {
	return func(r *Runner) { r.sleep = sleep }
}

// WithExporter adds an exporter called with every page's records
func WithExporter(e Exporter) Option {
	return func(r *Runner) { r.exporter = e }
}

func New(fetcher scraper.Fetcher, sink store.Sink, logger *logging.Logger, opts ...Option) *Runner {
	r := &Runner{
		fetcher: fetcher,
		sink:    sink,
		logger:  logger,
		sleep:   time.Sleep,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunSinglePage scrapes one page. Any fetch or structural failure aborts the
// run. The page's records are returned for callers that post-process them.
func (r *Runner) RunSinglePage(ctx context.Context, page parser.Page, url string, pageContext models.Record) (*Summary, []models.Record, error) {
	summary := &Summary{Page: page.Name}

	r.logger.Info("fetching page", "page", page.Name, "url", url)
	html, err := r.fetcher.Fetch(ctx, url)
	if err != nil {
		return summary, nil, errors.Wrapf(err, "fetch %s page", page.Name)
	}

	records, err := page.Parse(html, pageContext, r.logger)
	if err != nil {
		return summary, nil, err
	}

	if err := r.store(ctx, page, records, summary); err != nil {
		return summary, records, err
	}
	r.export(page, page.Name, records)

	return summary, records, nil
}

// RunTeams scrapes one page per team. A fetch or structural failure is recorded
// against the team and the loop moves on; ErrBlocked, a sink failure or a
// cancelled context ends the run.
func (r *Runner) RunTeams(ctx context.Context, page parser.Page, teams []string, season int, urlFor func(team string) string) (*Summary, error) {
	summary := &Summary{Page: page.Name}

	for i, team := range teams {
		if err := ctx.Err(); err != nil {
			return summary, errors.Wrap(err, "run cancelled")
		}

		url := urlFor(team)
		r.logger.Info("processing team", "page", page.Name, "team", team, "n", i+1, "of", len(teams), "url", url)

		stop, err := r.runTeam(ctx, page, team, season, url, summary)
		if stop {
			return summary, err
		}

		if i < len(teams)-1 && r.delay > 0 {
			r.sleep(r.delay)
		}
	}

	if len(summary.Failed) > 0 {
		r.logger.Warn("some teams failed", "page", page.Name, "teams", summary.FailedItems())
	}
	return summary, nil
}

// runTeam handles one team; stop reports whether the whole run must end
func (r *Runner) runTeam(ctx context.Context, page parser.Page, team string, season int, url string, summary *Summary) (bool, error) {
	html, err := r.fetcher.Fetch(ctx, url)
	if err != nil {
		if errors.Is(err, scraper.ErrBlocked) {
			return true, err
		}
		r.logger.Warn("failed to fetch team page", "team", team, "error", err)
		summary.fail(team, err)
		return false, nil
	}

	pageContext := models.Record{
		"team":   models.Text(team),
		"season": models.Integer(int64(season)),
	}
	records, err := page.Parse(html, pageContext, r.logger.With("team", team))
	if err != nil {
		r.logger.Warn("failed to parse team page", "team", team, "error", err)
		summary.fail(team, err)
		return false, nil
	}

	if err := r.store(ctx, page, records, summary); err != nil {
		return true, err
	}
	r.export(page, team, records)
	return false, nil
}

func (r *Runner) store(ctx context.Context, page parser.Page, records []models.Record, summary *Summary) error {
	summary.Parsed += len(records)

	for _, rec := range records {
		res, err := r.sink.Upsert(ctx, page.Collection, page.Key(rec), rec)
		if err != nil {
			return errors.Wrapf(err, "store %s record", page.Name)
		}
		switch res {
		case store.Inserted:
			summary.Inserted++
		case store.Replaced:
			summary.Replaced++
		}
	}
	return nil
}

func (r *Runner) export(page parser.Page, item string, records []models.Record) {
	if r.exporter == nil || len(records) == 0 {
		return
	}
	if err := r.exporter.Export(page, item, records); err != nil {
		r.logger.Warn("failed to export records", "page", page.Name, "item", item, "error", err)
	}
}

// SeasonContext is the context record for season-wide pages
func SeasonContext(season int) models.Record {
	return models.Record{"season": models.Integer(int64(season))}
}
