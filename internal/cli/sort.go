package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tscizzle/mlb-stats/internal/report"
)

// SortOrder represents the available orderings for matchup lines
type SortOrder string

const (
	SortByPage SortOrder = "page"
	SortByEdge SortOrder = "edge"
	SortByERA  SortOrder = "era"
	SortByTeam SortOrder = "team"
)

func parseSortOrder(s string) (SortOrder, error) {
	order := SortOrder(strings.ToLower(strings.TrimSpace(s)))
	switch order {
	case SortByPage, SortByEdge, SortByERA, SortByTeam:
		return order, nil
	}
	return "", fmt.Errorf("invalid sort: %s (must be 'page', 'edge', 'era' or 'team')", s)
}

// sortLines orders report lines in place. SortByPage keeps the previews page order.
func sortLines(lines []report.Line, order SortOrder) {
	switch order {
	case SortByEdge:
		sort.SliceStable(lines, func(i, j int) bool {
			return compareByEdge(lines[i], lines[j])
		})
	case SortByERA:
		sort.SliceStable(lines, func(i, j int) bool {
			if lines[i].PitcherERA != lines[j].PitcherERA {
				return lines[i].PitcherERA > lines[j].PitcherERA
			}
			return lines[i].Team < lines[j].Team
		})
	case SortByTeam:
		sort.SliceStable(lines, func(i, j int) bool {
			return lines[i].Team < lines[j].Team
		})
	}
}

// compareByEdge puts the likeliest first-inning scorers first: high team
// rate plus high opposing ERA (scaled to runs per inning). Lines without a
// team rate sort last.
func compareByEdge(i, j report.Line) bool {
	if i.HasTeamRate != j.HasTeamRate {
		return i.HasTeamRate
	}
	ei, ej := edge(i), edge(j)
	if ei != ej {
		return ei > ej
	}
	return i.Team < j.Team
}

func edge(l report.Line) float64 {
	return l.TeamRate + l.PitcherERA/9
}
