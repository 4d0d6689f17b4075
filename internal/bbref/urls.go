package bbref

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseURL is the public baseball-reference site.
const DefaultBaseURL = "https://www.baseball-reference.com"

func trimBase(base string) string {
	return strings.TrimRight(base, "/")
}

// PitcherSplitsURL is the individual pitching splits page for id in year.
func PitcherSplitsURL(base, id string, year int) string {
	return fmt.Sprintf("%s/players/split.fcgi?id=%s&year=%d&t=p",
		trimBase(base), url.QueryEscape(id), year)
}

// LeagueBattingSplitsURL is the league-wide first-inning batting split page.
func LeagueBattingSplitsURL(base string, year int) string {
	params := fmt.Sprintf("innng|1st inning|ML|%d|bat|AB|", year)
	return fmt.Sprintf("%s/tools/split_stats_lg.cgi?full=1&params=%s",
		trimBase(base), url.QueryEscape(params))
}

// PreviewsURL lists today's games with probable pitchers.
func PreviewsURL(base string) string {
	return trimBase(base) + "/previews"
}
