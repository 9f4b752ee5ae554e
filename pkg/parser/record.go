package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/myusername/cbb-statistic-scraper/internal/logging"
	"github.com/myusername/cbb-statistic-scraper/pkg/models"
)

// CoercionKind selects how a cell's text becomes a Value
type CoercionKind int

const (
	// CoerceGeneric tries integer, then float, then falls back to text
	CoerceGeneric CoercionKind = iota
	// CoerceRaw keeps the trimmed text as-is
	CoerceRaw
	// CoerceResult maps W/L to 1/0
	CoerceResult
	// CoerceStreakSplit writes <field>_result and <field>_num instead of <field>
	CoerceStreakSplit
	// CoerceTable maps the text through Coercion.Table
	CoerceTable
)

// Coercion is the rule applied to one field
type Coercion struct {
	Kind  CoercionKind
	Table map[string]int64
}

// RecordSpec describes how rows of one page type become Records
type RecordSpec struct {
	// Fields holds per-field coercions keyed by normalized data-stat
	Fields map[string]Coercion

	// Default applies to fields with no entry in Fields
	Default CoercionKind

	Expected models.ExpectedSchema
}

// NormalizeFieldID folds the site's aliases onto a single field name
func NormalizeFieldID(id string) string {
	switch id {
	case "rk", "":
		return "rank"
	case "school_name":
		return "school"
	default:
		return id
	}
}

// BuildRecord turns one table row into a Record seeded with context.
//
// Every th/td carrying a non-empty data-stat and non-empty text contributes a
// field. When expected fields are missing a single warning is logged and the
// record is still returned.
func BuildRecord(row *goquery.Selection, context models.Record, spec RecordSpec, logger *logging.Logger) models.Record {
	rec := context.Clone()

	row.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
		// Sports-Reference uses th for rank/school and td for the rest
		id := strings.TrimSpace(cell.AttrOr("data-stat", ""))
		if id == "" {
			return
		}
		text := strings.TrimSpace(cell.Text())
		if text == "" {
			return
		}

		field := NormalizeFieldID(id)
		spec.apply(rec, field, text)
	})

	if missing := spec.Expected.Missing(rec); len(missing) > 0 {
		logger.Warn("record missing expected fields", "missing", missing, "context", contextSummary(context))
	}

	return rec
}

func (s RecordSpec) apply(rec models.Record, field, text string) {
	c, ok := s.Fields[field]
	if !ok {
		c = Coercion{Kind: s.Default}
	}

	switch c.Kind {
	case CoerceRaw:
		rec[field] = models.Text(text)
	case CoerceResult:
		rec[field] = CoerceGameResult(text)
	case CoerceStreakSplit:
		result, num := CoerceStreak(text)
		rec[field+"_result"] = result
		rec[field+"_num"] = num
	case CoerceTable:
		rec[field] = CoerceLookup(text, c.Table)
	default:
		rec[field] = CoerceValue(text)
	}
}

func contextSummary(context models.Record) map[string]any {
	out := make(map[string]any, len(context))
	for k, v := range context {
		out[k] = v.Any()
	}
	return out
}
