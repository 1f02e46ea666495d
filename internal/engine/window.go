package engine

import (
	"strconv"
	"strings"
	"time"
)

// Window is a half-open [Start, End) interval scoping which events
// participate in a computation.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// DefaultWindowSpec is applied when a request omits or mangles the
// time_window parameter.
const DefaultWindowSpec = "7d"

var windowAliases = map[string]string{
	"1day":    "1d",
	"1week":   "7d",
	"1month":  "30d",
	"6months": "180d",
	"1year":   "365d",
}

// NormalizeWindowSpec maps the long-form aliases used by older clients onto
// the canonical "<N>d" form. Unknown specs pass through untouched.
func NormalizeWindowSpec(spec string) string {
	spec = strings.ToLower(strings.TrimSpace(spec))
	if canonical, ok := windowAliases[spec]; ok {
		return canonical
	}
	return spec
}

// ResolveWindow converts a window specifier and a reference instant into an
// absolute interval ending at now. Unrecognized specifiers fall back to
// seven days.
func ResolveWindow(spec string, now time.Time) Window {
	days := windowDays(NormalizeWindowSpec(spec))
	return Window{
		Start: now.Add(-time.Duration(days) * 24 * time.Hour),
		End:   now,
	}
}

func windowDays(spec string) int {
	digits := spec
	if idx := strings.IndexFunc(spec, func(r rune) bool { return r < '0' || r > '9' }); idx >= 0 {
		digits = spec[:idx]
	}
	days, err := strconv.Atoi(digits)
	if err != nil || days <= 0 {
		return 7
	}
	return days
}

// ISOWeek returns the ISO-8601 year and week number for the given instant.
func ISOWeek(t time.Time) (year, week int) {
	return t.ISOWeek()
}

// ISOWeekBounds returns the [Monday 00:00, next Monday 00:00) interval of the
// ISO week containing t, evaluated in the provided location (UTC when nil).
func ISOWeekBounds(t time.Time, loc *time.Location) Window {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	monday := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc).
		AddDate(0, 0, -daysSinceMonday)
	return Window{Start: monday, End: monday.AddDate(0, 0, 7)}
}
