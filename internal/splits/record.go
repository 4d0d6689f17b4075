package splits

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMissingStat is returned by the numeric accessors when a key is absent.
var ErrMissingStat = errors.New("stat not present")

var numberCleaner = strings.NewReplacer(",", "", " ", "")

// Stat is one labeled cell of a table row.
type Stat struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Record is the projection of one table row: stat keys in the order their
// cells appear, each mapped to the cell's raw text. When two cells share a
// key, the first one is the value every accessor reports. A Record is not
// modified after it is built.
type Record struct {
	stats []Stat
}

// NewRecord builds a Record from stats, keeping their order.
func NewRecord(stats ...Stat) *Record {
	cp := make([]Stat, len(stats))
	copy(cp, stats)
	return &Record{stats: cp}
}

// Len returns the number of stats.
func (r *Record) Len() int {
	return len(r.stats)
}

// Keys returns the stat keys in cell order.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.stats))
	for i, s := range r.stats {
		keys[i] = s.Key
	}
	return keys
}

// Stats returns a copy of the stats in cell order.
func (r *Record) Stats() []Stat {
	cp := make([]Stat, len(r.stats))
	copy(cp, r.stats)
	return cp
}

// Get returns the raw value of the first stat named key.
func (r *Record) Get(key string) (string, bool) {
	for _, s := range r.stats {
		if s.Key == key {
			return s.Value, true
		}
	}
	return "", false
}

// Map returns the stats as a map. Order is lost; use Stats when it matters.
func (r *Record) Map() map[string]string {
	m := make(map[string]string, len(r.stats))
	for i := len(r.stats) - 1; i >= 0; i-- {
		m[r.stats[i].Key] = r.stats[i].Value
	}
	return m
}

// Float parses the stat named key as a float64.
func (r *Record) Float(key string) (float64, error) {
	v, ok := r.Get(key)
	if !ok {
		return 0, fmt.Errorf("%s: %w", key, ErrMissingStat)
	}
	f, err := strconv.ParseFloat(numberCleaner.Replace(strings.TrimSpace(v)), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q: %w", key, v, err)
	}
	return f, nil
}

// Int parses the stat named key as an int.
func (r *Record) Int(key string) (int, error) {
	v, ok := r.Get(key)
	if !ok {
		return 0, fmt.Errorf("%s: %w", key, ErrMissingStat)
	}
	n, err := strconv.Atoi(numberCleaner.Replace(strings.TrimSpace(v)))
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q: %w", key, v, err)
	}
	return n, nil
}

// MarshalJSON encodes the record as a JSON object with keys in cell order.
// Repeated keys are written once, with their first value.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	seen := make(map[string]bool, len(r.stats))
	buf.WriteByte('{')
	for _, s := range r.stats {
		if seen[s.Key] {
			continue
		}
		if len(seen) > 0 {
			buf.WriteByte(',')
		}
		seen[s.Key] = true
		k, err := json.Marshal(s.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(s.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
