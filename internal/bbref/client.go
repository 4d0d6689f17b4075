package bbref

import (
	"context"
	"fmt"

	"github.com/tscizzle/mlb-stats/internal/splits"
)

// Pages fetches sanitized HTML. *fetch.Fetcher implements it.
type Pages interface {
	FetchPage(ctx context.Context, rawURL string) (string, error)
}

// Client reads first-inning splits and previews from baseball-reference.
type Client struct {
	pages   Pages
	baseURL string
}

// NewClient creates a Client. An empty baseURL selects DefaultBaseURL.
func NewClient(pages Pages, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{pages: pages, baseURL: baseURL}
}

// BaseURL returns the site root requests are built against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// PitcherFirstInning returns the pitcher's "1st inning" row from the
// by-inning split table. found is false when the page has no such table or
// row; err is set only when the page could not be fetched.
func (c *Client) PitcherFirstInning(ctx context.Context, id string, year int) (rec *splits.Record, found bool, err error) {
	html, err := c.pages.FetchPage(ctx, PitcherSplitsURL(c.baseURL, id, year))
	if err != nil {
		return nil, false, err
	}
	rec, found = splits.ExtractRow(html, splits.TableByInning, splits.LabelFirstInning)
	return rec, found, nil
}

// LeagueFirstInningRates returns first-inning runs per game for every team.
func (c *Client) LeagueFirstInningRates(ctx context.Context, year int) (map[string]float64, error) {
	html, err := c.pages.FetchPage(ctx, LeagueBattingSplitsURL(c.baseURL, year))
	if err != nil {
		return nil, err
	}
	rates, err := splits.LeagueFirstInningRates(html)
	if err != nil {
		return nil, fmt.Errorf("league splits %d: %w", year, err)
	}
	return rates, nil
}

// Matchups returns today's matchups from the previews page.
func (c *Client) Matchups(ctx context.Context) ([]Matchup, error) {
	html, err := c.pages.FetchPage(ctx, PreviewsURL(c.baseURL))
	if err != nil {
		return nil, err
	}
	return ParseMatchups(html)
}
