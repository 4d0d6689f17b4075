// Package logger provides structured JSON logging and run metrics for mlb-stats.
//
// Log lines are written as one JSON object per line to stderr by default, so
// reports printed on stdout stay machine-readable. Every entry carries a
// timestamp, a level and optional structured fields.
//
// Metrics are kept in process for the duration of a run: counters (requests
// issued, failures), gauges and timings (throttle waits, fetch durations).
// The CLI dumps a snapshot at DEBUG level when --verbose is set.
//
// Example usage:
//
//	logger.Debug("fetched page", logger.Fields{
//	    "url":    url,
//	    "status": 200,
//	})
//
//	logger.Warn("pitcher skipped", logger.Fields{"pitcher_id": id}, err)
//
//	logger.IncrCounter("fetch.requests")
//	logger.RecordTiming("throttle.wait", waited)
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

var levelRank = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// ParseLevel converts a case-insensitive level name into a Level.
func ParseLevel(s string) (Level, error) {
	lvl := Level(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := levelRank[lvl]; !ok {
		return "", fmt.Errorf("unknown log level: %q", s)
	}
	return lvl, nil
}

// Logger writes structured log entries at or above a minimum level.
type Logger struct {
	mu       sync.Mutex
	minLevel Level
	output   io.Writer
}

// Fields represents structured log fields
type Fields map[string]interface{}

// LogEntry represents a single log line
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Fields    Fields `json:"fields,omitempty"`
	Error     string `json:"error,omitempty"`
}

var defaultLogger = New(LevelInfo, os.Stderr)

// New creates a logger that discards messages below level.
func New(level Level, output io.Writer) *Logger {
	return &Logger{
		minLevel: level,
		output:   output,
	}
}

// SetDefault replaces the logger used by the package-level functions.
func SetDefault(logger *Logger) {
	defaultLogger = logger
}

// Default returns the logger used by the package-level functions.
func Default() *Logger {
	return defaultLogger
}

func (l *Logger) log(level Level, message string, fields Fields, err error) {
	if !l.Enabled(level) {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     string(level),
		Message:   message,
		Fields:    fields,
	}
	if err != nil {
		entry.Error = err.Error()
	}

	data, marshalErr := json.Marshal(entry)

	l.mu.Lock()
	defer l.mu.Unlock()
	if marshalErr != nil {
		fmt.Fprintf(l.output, "[%s] %s: %s (marshal error: %v)\n",
			entry.Timestamp, entry.Level, entry.Message, marshalErr)
		return
	}
	fmt.Fprintln(l.output, string(data))
}

// Enabled reports whether messages at level would be written.
func (l *Logger) Enabled(level Level) bool {
	return levelRank[level] >= levelRank[l.minLevel]
}

// Debug logs detailed diagnostics such as individual requests.
func (l *Logger) Debug(message string, fields Fields) {
	l.log(LevelDebug, message, fields, nil)
}

// Info logs general progress of a run.
func (l *Logger) Info(message string, fields Fields) {
	l.log(LevelInfo, message, fields, nil)
}

// Warn logs a problem that was handled, e.g. an entity that was skipped.
// err may be nil.
func (l *Logger) Warn(message string, fields Fields, err error) {
	l.log(LevelWarn, message, fields, err)
}

// Error logs a failure that stops the current operation.
func (l *Logger) Error(message string, fields Fields, err error) {
	l.log(LevelError, message, fields, err)
}

// Debug logs with the default logger
func Debug(message string, fields Fields) {
	defaultLogger.Debug(message, fields)
}

// Info logs with the default logger
func Info(message string, fields Fields) {
	defaultLogger.Info(message, fields)
}

// Warn logs with the default logger
func Warn(message string, fields Fields, err error) {
	defaultLogger.Warn(message, fields, err)
}

// Error logs with the default logger
func Error(message string, fields Fields, err error) {
	defaultLogger.Error(message, fields, err)
}

// Metrics tracks counters, gauges and timings. All operations are thread-safe.
type Metrics struct {
	mu       sync.Mutex
	counters map[string]int64
	gauges   map[string]float64
	timings  map[string][]time.Duration
}

var defaultMetrics = NewMetrics()

// NewMetrics creates an empty metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{
		counters: make(map[string]int64),
		gauges:   make(map[string]float64),
		timings:  make(map[string][]time.Duration),
	}
}

// IncrCounter increments a counter by 1.
func (m *Metrics) IncrCounter(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name]++
}

// SetGauge overwrites a gauge value.
func (m *Metrics) SetGauge(name string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gauges[name] = value
}

// RecordTiming appends a duration measurement for name.
func (m *Metrics) RecordTiming(name string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timings[name] = append(m.timings[name], duration)
}

// Counter returns the current value of a counter.
func (m *Metrics) Counter(name string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[name]
}

// GetSnapshot returns a deep copy of all metrics:
//   - "counters": counter name to value
//   - "gauges": gauge name to value
//   - "timings": timing name to count, total, average, min and max
func (m *Metrics) GetSnapshot() map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	counters := make(map[string]int64, len(m.counters))
	for k, v := range m.counters {
		counters[k] = v
	}

	gauges := make(map[string]float64, len(m.gauges))
	for k, v := range m.gauges {
		gauges[k] = v
	}

	timings := make(map[string]map[string]interface{}, len(m.timings))
	for name, durations := range m.timings {
		if len(durations) == 0 {
			continue
		}

		var total time.Duration
		min, max := durations[0], durations[0]
		for _, d := range durations {
			total += d
			if d < min {
				min = d
			}
			if d > max {
				max = d
			}
		}

		timings[name] = map[string]interface{}{
			"count":   len(durations),
			"total":   total.String(),
			"average": (total / time.Duration(len(durations))).String(),
			"min":     min.String(),
			"max":     max.String(),
		}
	}

	return map[string]interface{}{
		"counters": counters,
		"gauges":   gauges,
		"timings":  timings,
	}
}

// IncrCounter increments a counter on the default tracker.
func IncrCounter(name string) {
	defaultMetrics.IncrCounter(name)
}

// SetGauge sets a gauge on the default tracker.
func SetGauge(name string, value float64) {
	defaultMetrics.SetGauge(name, value)
}

// RecordTiming records a timing on the default tracker.
func RecordTiming(name string, duration time.Duration) {
	defaultMetrics.RecordTiming(name, duration)
}

// GetMetricsSnapshot returns a snapshot of the default tracker.
func GetMetricsSnapshot() map[string]interface{} {
	return defaultMetrics.GetSnapshot()
}
