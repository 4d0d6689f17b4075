// Package fetch retrieves HTML pages through the shared throttle and makes
// them parseable.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/tscizzle/mlb-stats/internal/logger"
	"github.com/tscizzle/mlb-stats/internal/throttle"
)

const (
	UserAgent      = "mlb-stats/1.0 (github.com/tscizzle/mlb-stats)"
	DefaultTimeout = 30 * time.Second
)

// Reasons reported in FetchError.
const (
	ReasonStatus  = "non-200 status"
	ReasonRequest = "request failed"
)

// FetchError reports a page that could not be retrieved. The page body is
// never handed to callers when this error is returned.
type FetchError struct {
	URL        string
	StatusCode int // zero when no response was received
	Reason     string
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: %s (%d)", e.URL, e.Reason, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetching %s: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("fetching %s: %s", e.URL, e.Reason)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsFetchFailure reports whether err is or wraps a *FetchError.
func IsFetchFailure(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// Sanitize removes every HTML comment opener. baseball-reference ships many
// tables inside <!-- ... --> blocks; dropping only the opener exposes them to
// the parser. The closer is left in place. This is a single pass: an opener
// formed by joining the text around a removed one survives.
func Sanitize(html string) string {
	return strings.ReplaceAll(html, "<!--", "")
}

// Fetcher issues GET requests through a throttle.Limiter.
type Fetcher struct {
	http    *resty.Client
	limiter *throttle.Limiter
}

// Option configures a Fetcher
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.http.SetTimeout(d)
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.http.SetHeader("User-Agent", ua)
	}
}

// New creates a Fetcher. Every request it makes goes through limiter.
func New(limiter *throttle.Limiter, opts ...Option) *Fetcher {
	client := resty.New()
	client.SetTimeout(DefaultTimeout)
	client.SetHeader("User-Agent", UserAgent)

	f := &Fetcher{
		http:    client,
		limiter: limiter,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchPage downloads rawURL and returns its sanitized body. Any status other
// than 200 yields a *FetchError.
func (f *Fetcher) FetchPage(ctx context.Context, rawURL string) (string, error) {
	var (
		resp *resty.Response
		sent bool
	)

	err := f.limiter.Do(ctx, func(ctx context.Context) error {
		sent = true
		logger.IncrCounter("fetch.requests")
		start := time.Now()
		var reqErr error
		resp, reqErr = f.http.R().SetContext(ctx).Get(rawURL)
		logger.RecordTiming("fetch.duration", time.Since(start))
		return reqErr
	})

	if err != nil {
		if sent {
			logger.IncrCounter("fetch.failures")
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", &FetchError{URL: rawURL, Reason: ReasonRequest, Err: err}
	}

	logger.Debug("fetched page", logger.Fields{
		"url":    rawURL,
		"status": resp.StatusCode(),
		"bytes":  len(resp.Body()),
	})

	if resp.StatusCode() != http.StatusOK {
		logger.IncrCounter("fetch.failures")
		return "", &FetchError{URL: rawURL, StatusCode: resp.StatusCode(), Reason: ReasonStatus}
	}

	return Sanitize(string(resp.Body())), nil
}
