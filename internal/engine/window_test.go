package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 15, 12, 30, 0, 0, time.UTC) // Saturday

func TestNormalizeWindowSpec(t *testing.T) {
	cases := map[string]string{
		"1day":    "1d",
		"1week":   "7d",
		"1month":  "30d",
		"6months": "180d",
		"1year":   "365d",
		" 1WEEK ": "7d",
		"30d":     "30d",
		"garbage": "garbage",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeWindowSpec(input), "spec %q", input)
	}
}

func TestResolveWindow(t *testing.T) {
	win := ResolveWindow("1week", testNow)
	assert.Equal(t, testNow.Add(-7*24*time.Hour), win.Start)
	assert.Equal(t, testNow, win.End)

	win = ResolveWindow("30d", testNow)
	assert.Equal(t, testNow.Add(-30*24*time.Hour), win.Start)

	// Unrecognized specifiers fall back to seven days.
	win = ResolveWindow("bogus", testNow)
	assert.Equal(t, testNow.Add(-7*24*time.Hour), win.Start)

	win = ResolveWindow("", testNow)
	assert.Equal(t, testNow.Add(-7*24*time.Hour), win.Start)
}

func TestWindowContains(t *testing.T) {
	win := Window{Start: testNow.Add(-time.Hour), End: testNow}
	assert.True(t, win.Contains(testNow.Add(-time.Hour)))
	assert.True(t, win.Contains(testNow.Add(-time.Minute)))
	assert.False(t, win.Contains(testNow))
	assert.False(t, win.Contains(testNow.Add(-2*time.Hour)))
}

func TestISOWeekBounds(t *testing.T) {
	bounds := ISOWeekBounds(testNow, nil)
	require.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), bounds.Start)
	require.Equal(t, time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC), bounds.End)

	// A Monday is its own week start.
	monday := time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)
	bounds = ISOWeekBounds(monday, nil)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), bounds.Start)

	// Sunday belongs to the week started the previous Monday.
	sunday := time.Date(2025, 3, 16, 1, 0, 0, 0, time.UTC)
	bounds = ISOWeekBounds(sunday, nil)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), bounds.Start)
}

func TestISOWeek(t *testing.T) {
	year, week := ISOWeek(testNow)
	assert.Equal(t, 2025, year)
	assert.Equal(t, 11, week)
}
