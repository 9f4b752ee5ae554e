package parser

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDoc(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func TestLocateTable_CandidateOrderBeatsDocumentOrder(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<table id="other"><tbody><tr><td>x</td></tr></tbody></table>
		<table id="schools"><tbody><tr><td data-stat="school_name">Duke</td></tr></tbody></table>
	</body></html>`)

	table, err := LocateTable(doc, []string{"ratings", "schools"})
	require.NoError(t, err)
	assert.Equal(t, "schools", table.ID)
	assert.Equal(t, TierDirect, table.Tier)
	assert.Equal(t, "Duke", strings.TrimSpace(table.Selection.Find("td").Text()))
}

func TestLocateTable_FirstCandidateWins(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<table id="schools"><tbody><tr><td>schools</td></tr></tbody></table>
		<table id="ratings"><tbody><tr><td>ratings</td></tr></tbody></table>
	</body></html>`)

	table, err := LocateTable(doc, []string{"ratings", "schools"})
	require.NoError(t, err)
	assert.Equal(t, "ratings", table.ID)
}

func TestLocateTable_CommentByID(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<div id="all_other"><!-- <table id="decoy"><tbody><tr><td>decoy</td></tr></tbody></table> --></div>
		<div id="all_ratings"><!--
			<table id="ratings"><tbody><tr><td data-stat="school_name">Houston</td></tr></tbody></table>
		--></div>
	</body></html>`)

	table, err := LocateTable(doc, []string{"ratings"})
	require.NoError(t, err)
	assert.Equal(t, TierCommentByID, table.Tier)
	assert.Equal(t, "ratings", table.ID)
	assert.Equal(t, "Houston", strings.TrimSpace(table.Selection.Find("td").Text()))
}

func TestLocateTable_CommentCandidateOrderWithinComment(t *testing.T) {
	doc := mustDoc(t, `<html><body><!--
		<table id="basic_school"><tbody><tr><td>basic</td></tr></tbody></table>
		<table id="schools"><tbody><tr><td>schools</td></tr></tbody></table>
	--></body></html>`)

	table, err := LocateTable(doc, []string{"ratings", "schools", "basic_school"})
	require.NoError(t, err)
	assert.Equal(t, TierCommentByID, table.Tier)
	assert.Equal(t, "schools", table.ID)
}

func TestLocateTable_SingleQuotedID(t *testing.T) {
	doc := mustDoc(t, `<html><body><!-- <table id='schedule'><tbody><tr><td>g</td></tr></tbody></table> --></body></html>`)

	table, err := LocateTable(doc, []string{"schedule"})
	require.NoError(t, err)
	assert.Equal(t, TierCommentByID, table.Tier)
}

func TestLocateTable_FallbackToAnyCommentedTable(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<!-- just a note -->
		<!-- <table id="unexpected"><tbody><tr><td>first</td></tr></tbody></table> -->
		<!-- <table id="later"><tbody><tr><td>second</td></tr></tbody></table> -->
	</body></html>`)

	table, err := LocateTable(doc, []string{"ratings"})
	require.NoError(t, err)
	assert.Equal(t, TierCommentAny, table.Tier)
	assert.Equal(t, "unexpected", table.ID)
	assert.Equal(t, "first", strings.TrimSpace(table.Selection.Text()))
}

func TestLocateTable_DirectBeatsComment(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<!-- <table id="ratings"><tbody><tr><td>commented</td></tr></tbody></table> -->
		<table id="basic_school"><tbody><tr><td>live</td></tr></tbody></table>
	</body></html>`)

	table, err := LocateTable(doc, []string{"ratings", "basic_school"})
	require.NoError(t, err)
	assert.Equal(t, TierDirect, table.Tier)
	assert.Equal(t, "basic_school", table.ID)
}

func TestLocateTable_NotFound(t *testing.T) {
	doc := mustDoc(t, `<html><body><div>no tables</div><!-- nor here --></body></html>`)

	table, err := LocateTable(doc, []string{"ratings"})
	assert.Nil(t, table)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTableNotFound))
}

func TestParseFragment_Independent(t *testing.T) {
	outer := mustDoc(t, `<html><body><table id="outer"></table></body></html>`)
	frag, err := ParseFragment(`<table id="inner"><tbody><tr><td>1</td></tr></tbody></table>`)
	require.NoError(t, err)

	assert.Equal(t, 0, frag.Find("#outer").Length())
	assert.Equal(t, 0, outer.Find("#inner").Length())
	assert.Equal(t, 1, frag.Find("#inner").Length())
}
