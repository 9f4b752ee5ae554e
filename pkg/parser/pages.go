package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"

	"github.com/myusername/cbb-statistic-scraper/internal/logging"
	"github.com/myusername/cbb-statistic-scraper/pkg/models"
)

// Page is one kind of sports-reference page and how to extract its table
type Page struct {
	// Name identifies the page type in logs and CSV file names
	Name string

	// Collection is the document-store collection records are written to
	Collection string

	TableIDs []string
	Rows     RowFilter
	Record   RecordSpec

	// IdentityFields must hold a non-empty value for a record to be kept
	IdentityFields []string

	// NaturalKey lists the fields that identify a record for upsert
	NaturalKey []string
}

var ratingsFields = models.ExpectedSchema{
	"rank", "school", "conf_abbr", "wins", "losses", "pts_per_g", "opp_pts_per_g",
	"mov", "sos", "srs_off", "srs_def", "srs", "off_rtg", "def_rtg", "net_rtg",
}

var rollingFields = models.ExpectedSchema{
	"g", "date_game", "game_type", "opp_name", "conf_abbr", "game_result", "pts", "opp_pts",
	"wins", "losses", "game_streak_result", "game_streak_num",
}

var teamTotalsFields = models.ExpectedSchema{
	"games", "mp", "fg", "fga", "fg_pct", "fg2", "fg2a", "fg2_pct", "fg3", "fg3a",
	"fg3_pct", "ft", "fta", "ft_pct", "orb", "drb", "trb", "ast", "stl", "blk", "tov",
}

// RatingsPage is the season ratings table, one row per school
func RatingsPage(season, maxRows int) Page {
	return Page{
		Name:       "ratings",
		Collection: "season-ratings-" + itoa(season),
		TableIDs:   []string{"ratings", "schools", "basic_school", "ratings_school"},
		Rows:       RowFilter{Mode: RowsFull, MaxRows: maxRows},
		Record: RecordSpec{
			Default:  CoerceGeneric,
			Expected: ratingsFields,
		},
		IdentityFields: []string{"school"},
		NaturalKey:     []string{"season", "school"},
	}
}

// RollingStatsPage is a team's schedule, reduced to its last window played games
func RollingStatsPage(window int, conferences map[string]int64) Page {
	return Page{
		Name:       "rolling",
		Collection: "rolling-stats",
		TableIDs:   []string{"schedule"},
		Rows:       RowFilter{Mode: RowsRecent, Window: window, ResultField: "game_result"},
		Record: RecordSpec{
			Fields: map[string]Coercion{
				"game_result": {Kind: CoerceResult},
				"game_streak": {Kind: CoerceStreakSplit},
				"conf_abbr":   {Kind: CoerceTable, Table: conferences},
			},
			Default:  CoerceGeneric,
			Expected: rollingFields,
		},
		IdentityFields: []string{"team"},
		NaturalKey:     []string{"team", "season", "date_game"},
	}
}

// TeamTotalsPage is the season totals table on a team page; only the team row is kept
func TeamTotalsPage() Page {
	return Page{
		Name:       "team-totals",
		Collection: "team-stats",
		TableIDs:   []string{"season-total_totals", "totals_team"},
		Rows:       RowFilter{Mode: RowsFull, MaxRows: 1},
		Record: RecordSpec{
			Default:  CoerceGeneric,
			Expected: teamTotalsFields,
		},
		IdentityFields: []string{"team"},
		NaturalKey:     []string{"team", "season"},
	}
}

// Parse runs the extraction pipeline over one page's HTML. Records without an
// identity are dropped here, before they can reach a sink.
func (p Page) Parse(htmlContent string, context models.Record, logger *logging.Logger) ([]models.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s page", p.Name)
	}
	return p.ParseDocument(doc, context, logger)
}

// ParseDocument is Parse for an already parsed document
func (p Page) ParseDocument(doc *goquery.Document, context models.Record, logger *logging.Logger) ([]models.Record, error) {
	table, err := LocateTable(doc, p.TableIDs)
	if err != nil {
		return nil, errors.Wrapf(err, "locate %s table", p.Name)
	}
	logger.Debug("located table", "page", p.Name, "id", table.ID, "tier", table.Tier.String())

	// in full mode the cap counts kept records, so rows without an identity
	// do not use up slots
	filter := p.Rows
	limit := 0
	if filter.Mode == RowsFull {
		limit, filter.MaxRows = filter.MaxRows, 0
	}

	rows, err := ExtractRows(table, filter)
	if err != nil {
		return nil, errors.Wrapf(err, "extract %s rows", p.Name)
	}

	records := make([]models.Record, 0, len(rows))
	for _, row := range rows {
		rec := BuildRecord(row, context, p.Record, logger)
		if !p.HasIdentity(rec) {
			continue
		}
		records = append(records, rec)
		if limit > 0 && len(records) >= limit {
			break
		}
	}

	logger.Debug("built records", "page", p.Name, "rows", len(rows), "records", len(records))
	return records, nil
}

// HasIdentity reports whether every identity field holds a non-null, non-empty value
func (p Page) HasIdentity(rec models.Record) bool {
	for _, f := range p.IdentityFields {
		v, ok := rec[f]
		if !ok || v.IsNull() || v.String() == "" {
			return false
		}
	}
	return true
}

// Key projects rec onto the page's natural key
func (p Page) Key(rec models.Record) models.Record {
	return rec.Project(p.NaturalKey)
}
