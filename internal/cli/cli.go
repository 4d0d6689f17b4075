package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tscizzle/mlb-stats/internal/bbref"
	"github.com/tscizzle/mlb-stats/internal/fetch"
	"github.com/tscizzle/mlb-stats/internal/logger"
	"github.com/tscizzle/mlb-stats/internal/throttle"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// Environment variables read as flag defaults.
const (
	EnvBaseURL     = "MLBSTATS_BASE_URL"
	EnvMinInterval = "MLBSTATS_MIN_INTERVAL"
	EnvTimeout     = "MLBSTATS_TIMEOUT"
	EnvLogLevel    = "MLBSTATS_LOG_LEVEL"
)

// Config holds the settings shared by every command.
type Config struct {
	BaseURL     string
	MinInterval time.Duration
	Timeout     time.Duration
	Format      string
	LogLevel    string
	Verbose     bool

	// IDFunc turns a name into a player id for the pitcher command.
	IDFunc bbref.IDFunc
}

// Client builds the fetch pipeline: one limiter shared by every request.
func (c *Config) Client() *bbref.Client {
	limiter := throttle.New(c.MinInterval)
	if limiter.Interval() < throttle.DefaultInterval {
		logger.Warn("request spacing below the site crawl policy", logger.Fields{
			"min_interval": limiter.Interval().String(),
			"policy":       throttle.DefaultInterval.String(),
		}, nil)
	}
	fetcher := fetch.New(limiter, fetch.WithTimeout(c.Timeout))
	client := bbref.NewClient(fetcher, c.BaseURL)
	logger.Debug("client ready", logger.Fields{
		"base_url":     client.BaseURL(),
		"min_interval": limiter.Interval().String(),
		"timeout":      c.Timeout.String(),
	})
	return client
}

func (c *Config) logLevel() (logger.Level, error) {
	if c.Verbose {
		return logger.LevelDebug, nil
	}
	return logger.ParseLevel(c.LogLevel)
}

func (c *Config) outputFormat() (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(c.Format))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", c.Format)
	}
	return format, nil
}

// NewRootCmd creates the root command and its subcommands.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&Config{IDFunc: bbref.DefaultIDFunc})
}

func newRootCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mlb-stats",
		Short: "First-inning split stats from baseball-reference",
		Long: `Fetch first-inning split statistics from baseball-reference.com.

Compares each team's first-inning runs per game with the first-inning ERA
of the pitcher it faces today. Requests are spaced at least --min-interval
apart to respect the site's crawl policy.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := cfg.outputFormat(); err != nil {
				return err
			}
			level, err := cfg.logLevel()
			if err != nil {
				return err
			}
			logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Debug("run metrics", logger.Fields{"metrics": logger.GetMetricsSnapshot()})
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.BaseURL, "base-url", envString(EnvBaseURL, bbref.DefaultBaseURL), "Site root (or env: "+EnvBaseURL+")")
	flags.DurationVar(&cfg.MinInterval, "min-interval", envDuration(EnvMinInterval, throttle.DefaultInterval), "Minimum spacing between requests (or env: "+EnvMinInterval+")")
	flags.DurationVar(&cfg.Timeout, "timeout", envDuration(EnvTimeout, fetch.DefaultTimeout), "HTTP timeout per request (or env: "+EnvTimeout+")")
	flags.StringVar(&cfg.Format, "format", "text", "Output format: text or json")
	flags.StringVar(&cfg.LogLevel, "log-level", envString(EnvLogLevel, "info"), "Log level: debug, info, warn or error (or env: "+EnvLogLevel+")")
	flags.BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logging on stderr (same as --log-level debug)")

	cmd.AddCommand(
		newPitcherCmd(cfg),
		newLeagueCmd(cfg),
		newMatchupsCmd(cfg),
	)

	return cmd
}

// DefaultSeason is the most recently completed season: the current year
// from November on, the previous one before that.
func DefaultSeason(now time.Time) int {
	if now.Month() >= time.November {
		return now.Year()
	}
	return now.Year() - 1
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logger.Warn("ignoring invalid duration", logger.Fields{"env": key, "value": v}, err)
		return def
	}
	return d
}

// Execute runs the CLI until it finishes or the process is interrupted.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}
