package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tscizzle/mlb-stats/internal/bbref"
	"github.com/tscizzle/mlb-stats/internal/report"
)

func line(team string, rate float64, hasRate bool, era float64) report.Line {
	return report.Line{
		Matchup:     bbref.Matchup{Team: team},
		TeamRate:    rate,
		HasTeamRate: hasRate,
		PitcherERA:  era,
	}
}

func teams(lines []report.Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Team
	}
	return out
}

func TestSortLines(t *testing.T) {
	base := []report.Line{
		line("SEA", 0.30, true, 4.50),
		line("ATL", 0.70, true, 1.80),
		line("MIA", 0, false, 9.00),
		line("HOU", 0.50, true, 4.50),
	}

	tests := []struct {
		order SortOrder
		want  []string
	}{
		{SortByPage, []string{"SEA", "ATL", "MIA", "HOU"}},
		// edges: SEA 0.80, ATL 0.90, HOU 1.00; MIA has no rate
		{SortByEdge, []string{"HOU", "ATL", "SEA", "MIA"}},
		{SortByERA, []string{"MIA", "HOU", "SEA", "ATL"}},
		{SortByTeam, []string{"ATL", "HOU", "MIA", "SEA"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			lines := append([]report.Line(nil), base...)
			sortLines(lines, tt.order)
			if diff := cmp.Diff(tt.want, teams(lines)); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		in      string
		want    SortOrder
		wantErr bool
	}{
		{"page", SortByPage, false},
		{" Edge ", SortByEdge, false},
		{"ERA", SortByERA, false},
		{"team", SortByTeam, false},
		{"", "", true},
		{"random", "", true},
	}
	for _, tt := range tests {
		got, err := parseSortOrder(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseSortOrder(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseSortOrder(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
