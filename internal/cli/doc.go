// Package cli implements the command-line interface for mlb-stats.
//
// The cli package provides the Cobra-based CLI with three commands: pitcher
// (one pitcher's first-inning ERA), league (team first-inning runs per game)
// and matchups (today's games, each team against the opposing pitcher). It
// wires the shared throttle, the fetcher and the baseball-reference client,
// and renders results as text tables or JSON.
package cli
