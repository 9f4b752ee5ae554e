package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
)

// ErrNoTableBody is returned when a located table has no <tbody>
var ErrNoTableBody = errors.New("table has no tbody")

// RowMode selects how rows are taken from a table body
type RowMode int

const (
	// RowsFull keeps every data row in document order
	RowsFull RowMode = iota
	// RowsRecent keeps the most recent played games, newest first
	RowsRecent
)

// DefaultSeparatorClass marks the repeated header rows inside a tbody
const DefaultSeparatorClass = "thead"

// RowFilter configures ExtractRows
type RowFilter struct {
	Mode RowMode

	// MaxRows truncates full mode after separator rows are dropped. Zero means no limit.
	MaxRows int

	// Window is how many played games recency mode collects
	Window int

	// ResultField is the data-stat of the cell that is filled in once a game is played
	ResultField string

	// SeparatorClasses defaults to DefaultSeparatorClass when empty
	SeparatorClasses []string
}

// ExtractRows returns the data rows of a table's body.
//
// In RowsRecent mode the body is scanned from the last row backwards and a row
// counts only when its result cell has text. Rows come back in the order they
// were collected, most recent game first.
func ExtractRows(t *Table, f RowFilter) ([]*goquery.Selection, error) {
	if t == nil || t.Selection == nil {
		return nil, errors.Wrap(ErrTableNotFound, "extract rows")
	}

	bodies := t.Selection.ChildrenFiltered("tbody")
	if bodies.Length() == 0 {
		return nil, errors.Wrapf(ErrNoTableBody, "table %q", t.ID)
	}

	separators := f.SeparatorClasses
	if len(separators) == 0 {
		separators = []string{DefaultSeparatorClass}
	}

	var candidates []*goquery.Selection
	bodies.ChildrenFiltered("tr").Each(func(_ int, tr *goquery.Selection) {
		if isSeparatorRow(tr, separators) {
			return
		}
		candidates = append(candidates, tr)
	})

	if f.Mode == RowsRecent {
		return recentRows(candidates, f.ResultField, f.Window), nil
	}

	if f.MaxRows > 0 && len(candidates) > f.MaxRows {
		candidates = candidates[:f.MaxRows]
	}
	return candidates, nil
}

func recentRows(rows []*goquery.Selection, resultField string, n int) []*goquery.Selection {
	if n <= 0 {
		return nil
	}
	out := make([]*goquery.Selection, 0, n)
	for i := len(rows) - 1; i >= 0; i-- {
		if len(out) >= n {
			break
		}

		result := rows[i].Find("td").FilterFunction(func(_ int, td *goquery.Selection) bool {
			return td.AttrOr("data-stat", "") == resultField
		}).First()
		if result.Length() == 0 {
			continue
		}
		if strings.TrimSpace(result.Text()) == "" {
			continue
		}

		out = append(out, rows[i])
	}
	return out
}

func isSeparatorRow(tr *goquery.Selection, classes []string) bool {
	for _, c := range classes {
		if tr.HasClass(c) {
			return true
		}
	}
	return false
}
