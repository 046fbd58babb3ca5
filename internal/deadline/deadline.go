// Package deadline parses task deadlines and derives countdown strings from them.
//
// A deadline is stored as a local date-time with minute precision, the shape
// an HTML datetime-local input produces ("2006-01-02T15:04"). Parsing is
// lenient about seconds and explicit offsets so records written by other
// clients still load.
package deadline

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// Layout is the canonical stored form of a deadline.
	Layout = "2006-01-02T15:04"

	// DisplayLayout is how deadlines are shown to people.
	DisplayLayout = "2006-01-02 15:04"

	// Expired is shown once a deadline has passed.
	Expired = "expired"

	// Invalid is shown for a deadline that does not parse.
	Invalid = "invalid deadline"
)

// naiveLayouts carry no zone and are read in the caller's location.
var naiveLayouts = []string{
	Layout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02", // midnight
}

// ErrEmpty is returned by Parse for an empty or whitespace-only string.
var ErrEmpty = errors.New("deadline required")

// Parse reads a deadline. Forms without an offset are interpreted in loc;
// a nil loc means time.Local.
func Parse(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrEmpty
	}
	if loc == nil {
		loc = time.Local
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid deadline: %s", s)
}

// Normalize parses s and re-formats it in Layout, in loc.
func Normalize(s string, loc *time.Location) (string, error) {
	t, err := Parse(s, loc)
	if err != nil {
		return "", err
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(Layout), nil
}

// Display formats a stored deadline for people.
// Strings that do not parse are returned unchanged.
func Display(s string, loc *time.Location) string {
	t, err := Parse(s, loc)
	if err != nil {
		return s
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DisplayLayout)
}

// Split breaks a positive duration into whole hours, minutes and seconds.
// Hours do not roll over into days; the fractional second is dropped.
func Split(d time.Duration) (hours, minutes, seconds int64) {
	hours = int64(d / time.Hour)
	minutes = int64(d % time.Hour / time.Minute)
	seconds = int64(d % time.Minute / time.Second)
	return hours, minutes, seconds
}

// Remaining returns the countdown from now to deadline, e.g. "0h 1m 30s",
// or Expired when the deadline is not in the future.
func Remaining(deadline, now time.Time) string {
	d := deadline.Sub(now)
	if d <= 0 {
		return Expired
	}
	h, m, s := Split(d)
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}

// RemainingString is Remaining for a stored deadline string.
func RemainingString(s string, now time.Time, loc *time.Location) string {
	t, err := Parse(s, loc)
	if err != nil {
		return Invalid
	}
	return Remaining(t, now)
}
