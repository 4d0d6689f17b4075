package bbref

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tscizzle/mlb-stats/internal/logger"
)

// Matchup pairs a team's lineup with the opposing starting pitcher it faces.
type Matchup struct {
	Team        string `json:"team"`
	Opponent    string `json:"opponent"`
	Home        bool   `json:"home"`
	PitcherID   string `json:"pitcher_id"`
	PitcherName string `json:"pitcher_name"`
}

type probable struct {
	team        string
	pitcherID   string
	pitcherName string
}

// ParseMatchups parses a game previews page.
func ParseMatchups(html string) ([]Matchup, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return DiscoverMatchups(doc), nil
}

// DiscoverMatchups returns two matchups per game summary, in page order: the
// away team against the home pitcher, then the home team against the away
// pitcher. Games without both probable pitchers are skipped.
func DiscoverMatchups(doc *goquery.Document) []Matchup {
	matchups := make([]Matchup, 0, 32)

	container := doc.Find("div.game_summaries").First()
	container.Find("div.game_summary").Each(func(i int, game *goquery.Selection) {
		// The first table holds the line score; probables are in the second.
		rows := game.Find("table").Eq(1).Find("tr")
		if rows.Length() < 2 {
			logger.Debug("skipping game without probables table", logger.Fields{"game": i})
			return
		}

		away, ok := parseProbable(rows.Eq(0))
		if !ok {
			logger.Debug("skipping game with incomplete away row", logger.Fields{"game": i})
			return
		}
		home, ok := parseProbable(rows.Eq(1))
		if !ok {
			logger.Debug("skipping game with incomplete home row", logger.Fields{"game": i})
			return
		}

		matchups = append(matchups,
			Matchup{
				Team:        away.team,
				Opponent:    home.team,
				PitcherID:   home.pitcherID,
				PitcherName: home.pitcherName,
			},
			Matchup{
				Team:        home.team,
				Opponent:    away.team,
				Home:        true,
				PitcherID:   away.pitcherID,
				PitcherName: away.pitcherName,
			},
		)
	})

	return matchups
}

func parseProbable(tr *goquery.Selection) (probable, bool) {
	cells := tr.Find("td")
	team := strings.TrimSpace(cells.Eq(0).Find("strong").First().Text())
	link := cells.Eq(1).Find("a").First()
	href, _ := link.Attr("href")
	id := pitcherIDFromHref(href)

	if team == "" || id == "" {
		return probable{}, false
	}
	return probable{
		team:        team,
		pitcherID:   id,
		pitcherName: strings.TrimSpace(link.Text()),
	}, true
}

// pitcherIDFromHref takes the last path segment without its extension:
// "/players/c/colege01.shtml" -> "colege01".
func pitcherIDFromHref(href string) string {
	if href == "" {
		return ""
	}
	p := href
	if u, err := url.Parse(href); err == nil {
		p = u.Path
	}
	base := path.Base(p)
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
