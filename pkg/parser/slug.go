package parser

import (
	"strconv"
	"strings"

	"github.com/myusername/cbb-statistic-scraper/pkg/models"
)

var slugReplacer = strings.NewReplacer(
	" ", "-",
	"(", "",
	")", "",
	"'", "",
	"&", "",
	".", "",
)

// TeamSlug converts a school name into the path segment the site uses for it,
// e.g. "St. John's (NY)" becomes "st-johns-ny"
func TeamSlug(name string) string {
	return slugReplacer.Replace(strings.ToLower(name))
}

// TeamSlugs returns the slug of each record's school, skipping records without one
func TeamSlugs(records []models.Record) []string {
	slugs := make([]string, 0, len(records))
	for _, rec := range records {
		school, ok := rec.Text("school")
		if !ok || school == "" {
			continue
		}
		slugs = append(slugs, TeamSlug(school))
	}
	return slugs
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
