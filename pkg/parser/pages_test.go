package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myusername/cbb-statistic-scraper/internal/logging"
	"github.com/myusername/cbb-statistic-scraper/pkg/models"
)

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func TestPageParse_SingleSchoolRow(t *testing.T) {
	html := `<html><body><table id="schools"><tbody>
		<tr><th data-stat="rk">1</th><td data-stat="school_name">Duke</td><td data-stat="wins">24</td><td data-stat="srs">29.30</td></tr>
		<tr class="thead"><th data-stat="rk">Rk</th><td data-stat="school_name">School</td></tr>
	</tbody></table></body></html>`

	records, err := RatingsPage(2026, 100).Parse(html, models.Record{"season": models.Integer(2026)}, logging.NewNop())
	require.NoError(t, err)
	require.Len(t, records, 1)

	school, ok := records[0].Text("school")
	assert.True(t, ok)
	assert.Equal(t, "Duke", school)
	assert.False(t, records[0].Has("school_name"))
	assert.True(t, models.Float(29.3).Equal(records[0]["srs"]))
}

func TestRatingsPage_CommentedFixture(t *testing.T) {
	page := RatingsPage(2026, 100)
	logger, _ := observedLogger()

	records, err := page.Parse(loadFixture(t, "ratings.html"), models.Record{"season": models.Integer(2026)}, logger)
	require.NoError(t, err)

	// separator skipped, nameless row dropped
	require.Len(t, records, 3)
	assert.Equal(t, []string{"duke", "st-johns-ny", "texas-am"}, TeamSlugs(records))

	duke := records[0]
	assert.True(t, models.Integer(1).Equal(duke["rank"]))
	assert.True(t, models.Text("ACC").Equal(duke["conf_abbr"]))
	assert.True(t, models.Integer(24).Equal(duke["wins"]))
	assert.True(t, models.Float(22.2).Equal(duke["mov"]))
	assert.True(t, models.Float(124.5).Equal(duke["off_rtg"]))
	assert.True(t, models.Integer(2026).Equal(duke["season"]))

	want := models.Record{"season": models.Integer(2026), "school": models.Text("Duke")}
	if diff := cmp.Diff(want, page.Key(duke)); diff != "" {
		t.Errorf("Key mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "season-ratings-2026", page.Collection)
}

func TestRatingsPage_MaxRows(t *testing.T) {
	records, err := RatingsPage(2026, 2).Parse(loadFixture(t, "ratings.html"), nil, logging.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"duke", "st-johns-ny"}, TeamSlugs(records))
}

func TestRatingsPage_MaxRowsCountsKeptRecords(t *testing.T) {
	html := `<html><body><table id="ratings"><tbody>
		<tr><th data-stat="rk">1</th><td data-stat="school_name"></td><td data-stat="srs">30.1</td></tr>
		<tr><th data-stat="rk">2</th><td data-stat="school_name">Duke</td><td data-stat="srs">29.30</td></tr>
		<tr><th data-stat="rk">3</th><td data-stat="school_name">Houston</td><td data-stat="srs">27.10</td></tr>
	</tbody></table></body></html>`

	records, err := RatingsPage(2026, 1).Parse(html, nil, logging.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"duke"}, TeamSlugs(records))
}

func TestRollingStatsPage_Fixture(t *testing.T) {
	conferences := map[string]int64{"SEC": 11, "CAA": 5}
	page := RollingStatsPage(10, conferences)
	logger, logs := observedLogger()
	context := models.Record{"team": models.Text("houston"), "season": models.Integer(2026)}

	records, err := page.Parse(loadFixture(t, "schedule.html"), context, logger)
	require.NoError(t, err)

	// unplayed game 5 excluded, newest first
	require.Len(t, records, 4)
	var games []int64
	for _, rec := range records {
		g, ok := rec["g"].Int()
		require.True(t, ok)
		games = append(games, g)
	}
	assert.Equal(t, []int64{4, 3, 2, 1}, games)

	latest := records[0]
	want := models.Record{
		"team":               models.Text("houston"),
		"season":             models.Integer(2026),
		"g":                  models.Integer(4),
		"date_game":          models.Text("Sat Nov 15 2025"),
		"game_type":          models.Text("REG"),
		"opp_name":           models.Text("Towson"),
		"conf_abbr":          models.Integer(5),
		"game_result":        models.Integer(1),
		"pts":                models.Integer(77),
		"opp_pts":            models.Integer(50),
		"wins":               models.Integer(3),
		"losses":             models.Integer(1),
		"game_streak_result": models.Integer(1),
		"game_streak_num":    models.Integer(2),
		"arena":              models.Text("Fertitta Center"),
	}
	if diff := cmp.Diff(want, latest); diff != "" {
		t.Errorf("latest game mismatch (-want +got):\n%s", diff)
	}

	loss := records[2]
	assert.True(t, models.Integer(0).Equal(loss["game_result"]))
	assert.True(t, models.Text("N").Equal(loss["game_location"]))

	// Patriot is not in the lookup table
	assert.True(t, records[3]["conf_abbr"].IsNull())

	assert.Empty(t, warnings(logs))

	key := page.Key(latest)
	assert.Equal(t, []string{"date_game", "season", "team"}, key.Keys())
}

func TestTeamTotalsPage_Fixture(t *testing.T) {
	page := TeamTotalsPage()
	context := models.Record{"team": models.Text("michigan-state"), "season": models.Integer(2026)}

	records, err := page.Parse(loadFixture(t, "team.html"), context, logging.NewNop())
	require.NoError(t, err)
	require.Len(t, records, 1)

	totals := records[0]
	assert.True(t, models.Text("Team").Equal(totals["entity"]))
	assert.True(t, models.Integer(5250).Equal(totals["mp"]))
	assert.True(t, models.Integer(1045).Equal(totals["trb"]))
	assert.True(t, models.Float(0.467).Equal(totals["fg_pct"]))
	assert.True(t, models.Integer(2186).Equal(totals["pts"]))
}

func TestPageParse_TableNotFound(t *testing.T) {
	_, err := TeamTotalsPage().Parse(`<html><body><p>Page Not Found (404 error)</p></body></html>`, nil, logging.NewNop())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTableNotFound))
}

func TestPageHasIdentity(t *testing.T) {
	page := RatingsPage(2026, 0)

	assert.True(t, page.HasIdentity(models.Record{"school": models.Text("Gonzaga")}))
	assert.False(t, page.HasIdentity(models.Record{"school": models.Text("")}))
	assert.False(t, page.HasIdentity(models.Record{"school": models.Null()}))
	assert.False(t, page.HasIdentity(models.Record{"rank": models.Integer(1)}))
}

func TestTeamSlug(t *testing.T) {
	tests := map[string]string{
		"Duke":            "duke",
		"St. John's (NY)": "st-johns-ny",
		"Texas A&M":       "texas-am",
		"North Carolina":  "north-carolina",
		"Miami (FL)":      "miami-fl",
	}
	for in, want := range tests {
		assert.Equal(t, want, TeamSlug(in), in)
	}
}
