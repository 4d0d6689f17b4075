package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/tscizzle/mlb-stats/internal/report"
	"github.com/tscizzle/mlb-stats/internal/splits"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// PitcherResult is the output of the pitcher command.
type PitcherResult struct {
	PlayerID string         `json:"player_id"`
	Name     string         `json:"name,omitempty"`
	Year     int            `json:"year"`
	ERA      float64        `json:"era"`
	Stats    *splits.Record `json:"stats"`
}

// LeagueResult is the output of the league command.
type LeagueResult struct {
	Year  int               `json:"year"`
	Teams []report.TeamRate `json:"teams"`
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

func bold(s string) string {
	return text.Bold.Sprint(s)
}

func round2(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// WritePitcher prints one pitcher's first-inning ERA.
func WritePitcher(w io.Writer, res *PitcherResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, res)
	case FormatText:
		name := res.Name
		if name == "" {
			name = res.PlayerID
		}
		_, err := fmt.Fprintf(w, "\n1st inning ERA for %s (%d): %s\n\n",
			bold(name), res.Year, bold(round2(res.ERA)))
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteLeague prints every team's first-inning runs per game.
func WriteLeague(w io.Writer, res *LeagueResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, res)
	case FormatText:
		if len(res.Teams) == 0 {
			_, err := fmt.Fprintln(w, "No team splits found.")
			return err
		}
		t := newTable(w)
		t.SetTitle(fmt.Sprintf("1st inning runs per game, %d", res.Year))
		t.AppendHeader(table.Row{"#", "Team", "R/G"})
		for i, tr := range res.Teams {
			t.AppendRow(table.Row{i + 1, tr.Team, round2(tr.Rate)})
		}
		t.SetColumnConfigs([]table.ColumnConfig{{Number: 3, Align: text.AlignRight}})
		t.Render()
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteReport prints the matchup report.
func WriteReport(w io.Writer, rep *report.Report, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, rep)
	case FormatText:
		return writeReportText(w, rep, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeReportText(w io.Writer, rep *report.Report, verbose bool) error {
	if len(rep.Lines) == 0 && len(rep.Skipped) == 0 {
		_, err := fmt.Fprintln(w, "No matchups found.")
		return err
	}

	if len(rep.Lines) > 0 {
		t := newTable(w)
		t.SetTitle(fmt.Sprintf("1st inning matchups (%d splits)", rep.Year))
		t.AppendHeader(table.Row{"Team", "", "Opp", "Pitcher", "Team 1st R/G", "Pitcher 1st ERA"})
		for _, l := range rep.Lines {
			side := "@"
			if l.Home {
				side = "vs"
			}
			rate := "-"
			if l.HasTeamRate {
				rate = round2(l.TeamRate)
			}
			pitcher := l.PitcherName
			if verbose {
				pitcher = fmt.Sprintf("%s (%s)", l.PitcherName, l.PitcherID)
			}
			t.AppendRow(table.Row{bold(l.Team), side, l.Opponent, pitcher, rate, round2(l.PitcherERA)})
		}
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 5, Align: text.AlignRight},
			{Number: 6, Align: text.AlignRight},
		})
		t.Render()
	}

	if len(rep.Skipped) > 0 {
		fmt.Fprintf(w, "\nSkipped %d matchups:\n", len(rep.Skipped))
		for _, s := range rep.Skipped {
			fmt.Fprintf(w, "  %s vs %s (%s): %s\n", s.Team, s.PitcherName, s.PitcherID, s.Reason)
		}
	}

	fmt.Fprintf(w, "\nTotal: %d matchups\n", len(rep.Lines))
	return nil
}
