package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/myusername/cbb-statistic-scraper/pkg/models"
)

// nullSentinels are placeholders the site uses for "no value". Matched case-sensitively.
var nullSentinels = map[string]bool{
	"":    true,
	"-":   true,
	"NA":  true,
	"N/A": true,
}

// CoerceValue converts raw cell text into an integer, float, null or the cleaned string.
// It never fails: text that is not a number comes back as Text.
func CoerceValue(text string) models.Value {
	v := strings.TrimSpace(text)
	if nullSentinels[v] {
		return models.Null()
	}

	// Thousands separators, e.g. attendance "12,345"
	v = strings.ReplaceAll(v, ",", "")

	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return models.Integer(i)
	}

	// ParseFloat also accepts "NaN" and "Inf"; those are names, not numbers
	if f, err := strconv.ParseFloat(v, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return models.Float(f)
	}

	return models.Text(v)
}

// CoerceGameResult maps a result cell to 1 for a win, 0 for a loss and Null otherwise.
// Only the first non-space character counts, so "W (OT)" is a win.
func CoerceGameResult(text string) models.Value {
	v := strings.TrimSpace(text)
	if v == "" {
		return models.Null()
	}

	switch v[0] {
	case 'W', 'w':
		return models.Integer(1)
	case 'L', 'l':
		return models.Integer(0)
	default:
		return models.Null()
	}
}

// CoerceStreak splits a streak like "W 5" into its result and count.
// Anything other than exactly two tokens yields (Null, Null).
func CoerceStreak(text string) (result, count models.Value) {
	parts := strings.Fields(text)
	if len(parts) != 2 {
		return models.Null(), models.Null()
	}

	result = CoerceGameResult(parts[0])
	count = models.Null()
	if n, err := strconv.ParseInt(parts[1], 10, 64); err == nil {
		count = models.Integer(n)
	}
	return result, count
}

// CoerceLookup maps text through a fixed table, e.g. conference abbreviation to code.
// Keys absent from the table yield Null.
func CoerceLookup(text string, table map[string]int64) models.Value {
	code, ok := table[strings.TrimSpace(text)]
	if !ok {
		return models.Null()
	}
	return models.Integer(code)
}
