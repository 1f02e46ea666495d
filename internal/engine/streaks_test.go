package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/domain"
)

func dayTap(a, b string, daysAgo int) domain.InteractionEvent {
	return tap(a, b, testNow.Add(-time.Duration(daysAgo)*24*time.Hour))
}

func TestCurrentStreak(t *testing.T) {
	win := ResolveWindow("7d", testNow)

	events := []domain.InteractionEvent{
		dayTap("A", "B", 0),
		dayTap("A", "C", 1),
		dayTap("A", "B", 2),
		dayTap("A", "B", 5), // gap at day 3-4 ends the streak
	}
	assert.Equal(t, 3, CurrentStreak(events, "A", win))

	assert.Equal(t, 0, CurrentStreak(nil, "A", win))
	assert.Equal(t, 0, CurrentStreak(events, "Z", win))
}

func TestCurrentStreakEndsBeforeToday(t *testing.T) {
	// The streak anchors at the most recent active day, not at now.
	win := ResolveWindow("7d", testNow)
	events := []domain.InteractionEvent{
		dayTap("A", "B", 2),
		dayTap("A", "B", 3),
	}
	assert.Equal(t, 2, CurrentStreak(events, "A", win))
}

func TestLongestStreak(t *testing.T) {
	events := []domain.InteractionEvent{
		dayTap("A", "B", 0),
		dayTap("A", "B", 1),
		dayTap("A", "B", 10),
		dayTap("A", "B", 11),
		dayTap("A", "B", 12),
		dayTap("A", "B", 13),
	}
	assert.Equal(t, 4, LongestStreak(events, "A"))
	assert.Equal(t, 0, LongestStreak(nil, "A"))
}

func TestComputeMomentum(t *testing.T) {
	win := ResolveWindow("7d", testNow)
	events := []domain.InteractionEvent{
		dayTap("A", "B", 0),
		dayTap("A", "B", 1),
		dayTap("A", "C", 1),
		dayTap("A", "D", 20), // outside window, still feeds longest streak
		dayTap("A", "D", 21),
		dayTap("A", "D", 22),
		dayTap("B", "C", 0), // not A's event
	}
	m := ComputeMomentum(events, "A", win)
	assert.Equal(t, 2, m.Streaks.CurrentDays)
	assert.Equal(t, 3, m.Streaks.LongestDays)
	assert.Equal(t, 3, m.WindowTaps)
	assert.Equal(t, 2, m.NewConnections)
}
