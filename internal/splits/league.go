package splits

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// League split table layout.
const (
	TableLeagueSplit = "split1"
	StatTeam         = "team_ID"
	StatRuns         = "R"
	StatGames        = "G"
)

var (
	// ErrZeroGames is the arithmetic error for a team row that reports no
	// games; the rate would be infinite.
	ErrZeroGames = errors.New("zero games")
	// ErrTableNotFound reports that the league split table is missing.
	ErrTableNotFound = errors.New("table not found")
)

// LeagueFirstInningRates parses a league batting split page and returns
// first-inning runs per game keyed by team abbreviation.
func LeagueFirstInningRates(html string) (map[string]float64, error) {
	doc, err := Parse(html)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return TeamRunRates(doc, TableLeagueSplit)
}

// TeamRunRates computes runs / games for every team row in the body of
// table tableID. Repeated header rows and rows without a team are skipped.
// The first row with zero games aborts the computation with ErrZeroGames.
func TeamRunRates(doc *goquery.Document, tableID string) (map[string]float64, error) {
	table, ok := FindTable(doc, tableID)
	if !ok {
		return nil, fmt.Errorf("%s: %w", tableID, ErrTableNotFound)
	}

	rates := make(map[string]float64)
	var rowErr error

	table.Find("tbody tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		if strings.Contains(tr.AttrOr("class", ""), "thead") {
			return true
		}
		team := strings.TrimSpace(statCell(tr, StatTeam).Text())
		if team == "" {
			return true
		}

		runs, err := parseCount(statCell(tr, StatRuns))
		if err != nil {
			rowErr = fmt.Errorf("team %s runs: %w", team, err)
			return false
		}
		games, err := parseCount(statCell(tr, StatGames))
		if err != nil {
			rowErr = fmt.Errorf("team %s games: %w", team, err)
			return false
		}
		if games == 0 {
			rowErr = fmt.Errorf("team %s: %w", team, ErrZeroGames)
			return false
		}

		rates[team] = float64(runs) / float64(games)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	return rates, nil
}

// statCell finds the cell for key; team cells are often th, counts are td.
func statCell(tr *goquery.Selection, key string) *goquery.Selection {
	return tr.Find(`th[data-stat="` + key + `"], td[data-stat="` + key + `"]`).First()
}

func parseCount(cell *goquery.Selection) (int, error) {
	if cell.Length() == 0 {
		return 0, ErrMissingStat
	}
	return strconv.Atoi(numberCleaner.Replace(strings.TrimSpace(cell.Text())))
}
