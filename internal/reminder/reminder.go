// Package reminder holds the user's reminder offsets: how many minutes before
// an exam a notification should fire.
package reminder

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"examfinder/internal/domain"
)

var (
	// ErrInvalidOffset is returned by Parse for tokens that are not a positive offset
	ErrInvalidOffset = errors.New("invalid reminder offset")
	// ErrNoStartTime is returned when an exam's start cannot be parsed
	ErrNoStartTime = errors.New("exam has no usable start time")
)

// DefaultOffsets are used when the configuration names none
var DefaultOffsets = []int{30, 60}

// Config is an ascending list of distinct, positive minute offsets
type Config struct {
	offsets []int
}

// New normalizes offsets: non-positive values and duplicates are dropped
func New(offsets ...int) *Config {
	c := &Config{}
	c.Set(offsets)
	return c
}

// Set replaces all offsets
func (c *Config) Set(offsets []int) {
	seen := make(map[int]bool, len(offsets))
	out := make([]int, 0, len(offsets))
	for _, m := range offsets {
		if m <= 0 || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	sort.Ints(out)
	c.offsets = out
}

// Add inserts an offset; it reports false when the offset was rejected or already present
func (c *Config) Add(minutes int) bool {
	if minutes <= 0 {
		return false
	}
	for _, m := range c.offsets {
		if m == minutes {
			return false
		}
	}
	c.Set(append(c.Offsets(), minutes))
	return true
}

// Remove deletes an offset; it reports whether it was present
func (c *Config) Remove(minutes int) bool {
	for i, m := range c.offsets {
		if m == minutes {
			c.offsets = append(c.offsets[:i:i], c.offsets[i+1:]...)
			return true
		}
	}
	return false
}

// Offsets returns a copy of the offsets
func (c *Config) Offsets() []int {
	out := make([]int, len(c.offsets))
	copy(out, c.offsets)
	return out
}

// String renders offsets in the form accepted by Parse
func (c *Config) String() string {
	parts := make([]string, 0, len(c.offsets))
	for _, m := range c.offsets {
		parts = append(parts, strconv.Itoa(m))
	}
	return strings.Join(parts, ", ")
}

// Label renders an offset for display: "30m", "2h", "1d", "1h30m"
func Label(minutes int) string {
	switch {
	case minutes%(24*60) == 0:
		return fmt.Sprintf("%dd", minutes/(24*60))
	case minutes%60 == 0:
		return fmt.Sprintf("%dh", minutes/60)
	case minutes > 60:
		return fmt.Sprintf("%dh%dm", minutes/60, minutes%60)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// Parse reads a comma or space separated offset list. Plain integers are
// minutes; Go durations ("90m", "2h") and a day suffix ("1d") are accepted.
// The result is normalized like New.
func Parse(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == ';'
	})

	var out []int
	for _, f := range fields {
		m, err := parseToken(f)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return New(out...).Offsets(), nil
}

func parseToken(tok string) (int, error) {
	if n, err := strconv.Atoi(tok); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidOffset, tok)
		}
		return n, nil
	}

	if strings.HasSuffix(tok, "d") {
		n, err := strconv.Atoi(strings.TrimSuffix(tok, "d"))
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidOffset, tok)
		}
		return n * 24 * 60, nil
	}

	d, err := time.ParseDuration(tok)
	if err != nil || d < time.Minute || d%time.Minute != 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOffset, tok)
	}
	return int(d / time.Minute), nil
}

// Alert is one reminder for one exam
type Alert struct {
	Offset int
	At     time.Time
}

var startLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

const wallClockLayout = "2006-01-02 15:04"

// StartOf returns an exam's start. StartTimestamp wins over StartTime;
// zone-less values are read in loc.
func StartOf(exam domain.ExamRecord, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if exam.StartTimestamp != "" {
		for _, layout := range startLayouts {
			if t, err := time.ParseInLocation(layout, exam.StartTimestamp, loc); err == nil {
				return t, nil
			}
		}
	}
	if t, err := time.ParseInLocation(wallClockLayout, strings.TrimSpace(exam.StartTime), loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %s", ErrNoStartTime, exam.ID)
}

// Times returns the alerts for exam, earliest first
func Times(exam domain.ExamRecord, offsets []int, loc *time.Location) ([]Alert, error) {
	start, err := StartOf(exam, loc)
	if err != nil {
		return nil, err
	}

	sorted := make([]int, len(offsets))
	copy(sorted, offsets)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	alerts := make([]Alert, 0, len(sorted))
	for _, m := range sorted {
		alerts = append(alerts, Alert{Offset: m, At: start.Add(-time.Duration(m) * time.Minute)})
	}
	return alerts, nil
}
