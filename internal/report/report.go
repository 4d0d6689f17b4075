// Package report compares each team's first-inning scoring rate with the
// first-inning ERA of the pitcher it faces.
//
// A failure for one pitcher (page missing, table missing, unparsable ERA)
// only skips that matchup; the rest of the report is still built.
package report

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/tscizzle/mlb-stats/internal/bbref"
	"github.com/tscizzle/mlb-stats/internal/logger"
	"github.com/tscizzle/mlb-stats/internal/splits"
)

// Skip reasons for pitchers without usable data.
const (
	ReasonNoSplit = "no 1st inning split"
	ReasonBadERA  = "unparsable ERA"
	ReasonInfERA  = "infinite ERA"
)

// Source is the data the report needs. *bbref.Client implements it.
type Source interface {
	Matchups(ctx context.Context) ([]bbref.Matchup, error)
	LeagueFirstInningRates(ctx context.Context, year int) (map[string]float64, error)
	PitcherFirstInning(ctx context.Context, id string, year int) (*splits.Record, bool, error)
}

// Line is one matchup with both sides' numbers.
type Line struct {
	bbref.Matchup
	// TeamRate is first-inning runs per game; valid only when HasTeamRate.
	TeamRate    float64 `json:"team_rate"`
	HasTeamRate bool    `json:"has_team_rate"`
	PitcherERA  float64 `json:"pitcher_era"`
}

// Skip records a matchup that was left out and why.
type Skip struct {
	bbref.Matchup
	Reason string `json:"reason"`
}

// Report is the result of Build.
type Report struct {
	Year    int    `json:"year"`
	Lines   []Line `json:"lines"`
	Skipped []Skip `json:"skipped,omitempty"`
}

type pitcherResult struct {
	era    float64
	reason string
}

// Build fetches today's matchups, the league batting splits for year and
// each opposing pitcher's splits, in that order.
//
// Missing league data degrades to lines without a team rate, except for a
// zero-games row, which aborts the build. A pitcher that appears in more
// than one matchup is fetched once.
func Build(ctx context.Context, src Source, year int) (*Report, error) {
	matchups, err := src.Matchups(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading matchups: %w", err)
	}
	logger.SetGauge("report.matchups", float64(len(matchups)))
	logger.Info("loaded matchups", logger.Fields{"count": len(matchups)})

	rates, err := src.LeagueFirstInningRates(ctx, year)
	if err != nil {
		if errors.Is(err, splits.ErrZeroGames) || ctx.Err() != nil {
			return nil, fmt.Errorf("loading league rates: %w", err)
		}
		logger.Warn("league rates unavailable", logger.Fields{"year": year}, err)
		rates = nil
	}

	rep := &Report{
		Year:  year,
		Lines: make([]Line, 0, len(matchups)),
	}
	seen := make(map[string]pitcherResult, len(matchups))

	for _, m := range matchups {
		res, ok := seen[m.PitcherID]
		if !ok {
			res, err = pitcherERA(ctx, src, m.PitcherID, year)
			if err != nil {
				return nil, err
			}
			seen[m.PitcherID] = res
		}

		if res.reason != "" {
			logger.Warn("matchup skipped", logger.Fields{
				"team":       m.Team,
				"pitcher_id": m.PitcherID,
				"reason":     res.reason,
			}, nil)
			logger.IncrCounter("report.skipped")
			rep.Skipped = append(rep.Skipped, Skip{Matchup: m, Reason: res.reason})
			continue
		}

		rate, hasRate := rates[m.Team]
		rep.Lines = append(rep.Lines, Line{
			Matchup:     m,
			TeamRate:    rate,
			HasTeamRate: hasRate,
			PitcherERA:  res.era,
		})
	}

	return rep, nil
}

// pitcherERA returns the pitcher's first-inning ERA, or a skip reason. Only
// context cancellation is returned as an error.
func pitcherERA(ctx context.Context, src Source, id string, year int) (pitcherResult, error) {
	rec, found, err := src.PitcherFirstInning(ctx, id, year)
	if err != nil {
		if ctx.Err() != nil {
			return pitcherResult{}, ctx.Err()
		}
		return pitcherResult{reason: err.Error()}, nil
	}
	if !found {
		return pitcherResult{reason: ReasonNoSplit}, nil
	}
	era, err := rec.Float(splits.StatERA)
	if err != nil {
		return pitcherResult{reason: ReasonBadERA}, nil
	}
	if math.IsInf(era, 0) || math.IsNaN(era) {
		return pitcherResult{reason: ReasonInfERA}, nil
	}
	return pitcherResult{era: era}, nil
}

// TeamRate is one team's first-inning runs per game.
type TeamRate struct {
	Team string  `json:"team"`
	Rate float64 `json:"rate"`
}

// RankTeams orders teams by rate, highest first, then by abbreviation.
func RankTeams(rates map[string]float64) []TeamRate {
	out := make([]TeamRate, 0, len(rates))
	for team, rate := range rates {
		out = append(out, TeamRate{Team: team, Rate: rate})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rate != out[j].Rate {
			return out[i].Rate > out[j].Rate
		}
		return out[i].Team < out[j].Team
	})
	return out
}
