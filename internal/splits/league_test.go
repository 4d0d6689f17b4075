package splits

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func leaguePage(rows string) string {
	return `<html><body>
<div class="table_container">
<table id="split1">
  <thead>
    <tr><th data-stat="team_ID">Tm</th><th data-stat="G">G</th><th data-stat="R">R</th></tr>
  </thead>
  <tbody>` + rows + `</tbody>
  <tfoot>
    <tr><th data-stat="team_ID">League Total</th><td data-stat="G">55</td><td data-stat="R">80</td></tr>
  </tfoot>
</table>
</div>
</body></html>`
}

func TestLeagueFirstInningRates(t *testing.T) {
	html := leaguePage(`
    <tr><th data-stat="team_ID"><a href="/teams/NYY/2022.shtml">NYY</a></th><td data-stat="G">25</td><td data-stat="R">50</td></tr>
    <tr class="thead"><th data-stat="team_ID">Tm</th><td data-stat="G">G</td><td data-stat="R">R</td></tr>
    <tr><th data-stat="team_ID">BOS</th><td data-stat="G">30</td><td data-stat="R">30</td></tr>`)

	got, err := LeagueFirstInningRates(html)
	if err != nil {
		t.Fatalf("LeagueFirstInningRates() error = %v", err)
	}

	want := map[string]float64{"NYY": 2.0, "BOS": 1.0}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rates mismatch (-want +got):\n%s", diff)
	}
}

func TestLeagueFirstInningRates_TeamCellAsTD(t *testing.T) {
	html := leaguePage(`<tr><td data-stat="team_ID">LAD</td><td data-stat="R">1,62</td><td data-stat="G">162</td></tr>`)

	got, err := LeagueFirstInningRates(html)
	if err != nil {
		t.Fatalf("LeagueFirstInningRates() error = %v", err)
	}
	if diff := cmp.Diff(map[string]float64{"LAD": 1.0}, got); diff != "" {
		t.Errorf("rates mismatch (-want +got):\n%s", diff)
	}
}

func TestLeagueFirstInningRates_ZeroGames(t *testing.T) {
	html := leaguePage(`
    <tr><th data-stat="team_ID">NYY</th><td data-stat="G">25</td><td data-stat="R">50</td></tr>
    <tr><th data-stat="team_ID">TBR</th><td data-stat="G">0</td><td data-stat="R">0</td></tr>`)

	got, err := LeagueFirstInningRates(html)
	if !errors.Is(err, ErrZeroGames) {
		t.Fatalf("LeagueFirstInningRates() error = %v, want ErrZeroGames", err)
	}
	if got != nil {
		t.Errorf("LeagueFirstInningRates() = %v, want nil on error", got)
	}
}

func TestLeagueFirstInningRates_Errors(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		wantErr error
	}{
		{
			name:    "missing table",
			html:    `<html><body><table id="split2"></table></body></html>`,
			wantErr: ErrTableNotFound,
		},
		{
			name:    "missing games cell",
			html:    leaguePage(`<tr><th data-stat="team_ID">NYY</th><td data-stat="R">50</td></tr>`),
			wantErr: ErrMissingStat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LeagueFirstInningRates(tt.html)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLeagueFirstInningRates_NonNumeric(t *testing.T) {
	html := leaguePage(`<tr><th data-stat="team_ID">NYY</th><td data-stat="G">twenty</td><td data-stat="R">50</td></tr>`)
	if _, err := LeagueFirstInningRates(html); err == nil {
		t.Error("expected parse error for non-numeric games")
	}
}

func TestLeagueFirstInningRates_EmptyBody(t *testing.T) {
	got, err := LeagueFirstInningRates(leaguePage(``))
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("rates = %v, want empty", got)
	}
}
