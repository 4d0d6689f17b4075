package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tscizzle/mlb-stats/internal/bbref"
	"github.com/tscizzle/mlb-stats/internal/fetch"
	"github.com/tscizzle/mlb-stats/internal/report"
	"github.com/tscizzle/mlb-stats/internal/splits"
)

func newPitcherCmd(cfg *Config) *cobra.Command {
	var (
		first, last, id string
		seq, year       int
	)

	cmd := &cobra.Command{
		Use:   "pitcher",
		Short: "Show one pitcher's first-inning ERA",
		Example: `  mlb-stats pitcher --first Shohei --last Ohtani --year 2022
  mlb-stats pitcher --id ohtansh01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cfg.outputFormat()

			name := strings.TrimSpace(first + " " + last)
			playerID := strings.TrimSpace(id)
			if playerID == "" {
				if strings.TrimSpace(first) == "" || strings.TrimSpace(last) == "" {
					return fmt.Errorf("--first and --last are required unless --id is given")
				}
				idFunc := cfg.IDFunc
				if cmd.Flags().Changed("seq") || idFunc == nil {
					idFunc = bbref.SeqIDFunc(seq)
				}
				playerID = idFunc(first, last)
			}
			if name == "" {
				name = playerID
			}

			client := cfg.Client()
			rec, found, err := client.PitcherFirstInning(cmd.Context(), playerID, year)
			if err != nil {
				if fetch.IsFetchFailure(err) {
					return fmt.Errorf("unable to find stats page for %s: %w", name, err)
				}
				return err
			}
			if !found {
				fmt.Fprintf(cmd.OutOrStdout(), "No 1st inning split for %s in %d.\n", name, year)
				return nil
			}

			era, err := rec.Float(splits.StatERA)
			if err != nil {
				return fmt.Errorf("reading ERA for %s: %w", name, err)
			}

			return WritePitcher(cmd.OutOrStdout(), &PitcherResult{
				PlayerID: playerID,
				Name:     name,
				Year:     year,
				ERA:      era,
				Stats:    rec,
			}, format)
		},
	}

	cmd.Flags().StringVar(&first, "first", "", "Given name")
	cmd.Flags().StringVar(&last, "last", "", "Surname")
	cmd.Flags().IntVar(&seq, "seq", 1, "Sequence number for players sharing an id prefix (overrides the id lookup)")
	cmd.Flags().StringVar(&id, "id", "", "baseball-reference player id (skips name lookup)")
	cmd.Flags().IntVar(&year, "year", DefaultSeason(time.Now()), "Season")

	return cmd
}

func newLeagueCmd(cfg *Config) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "league",
		Short: "Rank teams by first-inning runs per game",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cfg.outputFormat()

			rates, err := cfg.Client().LeagueFirstInningRates(cmd.Context(), year)
			if err != nil {
				return fmt.Errorf("fetching league splits: %w", err)
			}

			return WriteLeague(cmd.OutOrStdout(), &LeagueResult{
				Year:  year,
				Teams: report.RankTeams(rates),
			}, format)
		},
	}

	cmd.Flags().IntVar(&year, "year", DefaultSeason(time.Now()), "Season")

	return cmd
}

func newMatchupsCmd(cfg *Config) *cobra.Command {
	var (
		year    int
		sortArg string
	)

	cmd := &cobra.Command{
		Use:   "matchups",
		Short: "Compare today's matchups by first-inning numbers",
		Long: `Read today's probable pitchers from the previews page and pair each team
with the pitcher it faces. Shows the team's first-inning runs per game and the
pitcher's first-inning ERA for the chosen season.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cfg.outputFormat()
			order, err := parseSortOrder(sortArg)
			if err != nil {
				return err
			}

			rep, err := report.Build(cmd.Context(), cfg.Client(), year)
			if err != nil {
				return err
			}
			sortLines(rep.Lines, order)

			return WriteReport(cmd.OutOrStdout(), rep, format, cfg.Verbose)
		},
	}

	cmd.Flags().IntVar(&year, "year", DefaultSeason(time.Now()), "Season the splits are taken from")
	cmd.Flags().StringVar(&sortArg, "sort", string(SortByPage), "Sort: page, edge, era or team")

	return cmd
}
