package scraper

import (
	"fmt"
	"strings"
)

// URLs builds page URLs under a base such as https://www.sports-reference.com/cbb
type URLs struct {
	Base string
}

func (u URLs) base() string {
	return strings.TrimRight(u.Base, "/")
}

// Ratings is the season ratings page
func (u URLs) Ratings(season int) string {
	return fmt.Sprintf("%s/seasons/men/%d-ratings.html", u.base(), season)
}

// Schedule is a team's schedule and results page
func (u URLs) Schedule(team string, season int) string {
	return fmt.Sprintf("%s/schools/%s/men/%d-schedule.html", u.base(), team, season)
}

// Team is a team's season page, which carries the totals table
func (u URLs) Team(team string, season int) string {
	return fmt.Sprintf("%s/schools/%s/men/%d.html", u.base(), team, season)
}
