package engine

import (
	"time"

	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/domain"
)

// Quest is one fixed weekly goal with capped progress.
type Quest struct {
	ID       string
	Title    string
	Progress int
	Target   int
	Unit     string
}

// ComputeQuests evaluates the three fixed weekly quests against the focal
// member's events inside the current ISO week.
func ComputeQuests(events []domain.InteractionEvent, focal string, now time.Time) []Quest {
	week := ISOWeekBounds(now, time.UTC)

	weeklyTaps := 0
	counterparts := make(map[string]struct{})
	for _, ev := range events {
		if !ev.Valid() || !ev.Touches(focal) || !week.Contains(ev.OccurredAt) {
			continue
		}
		weeklyTaps++
		counterparts[ev.Counterpart(focal)] = struct{}{}
	}
	streak := CurrentStreak(events, focal, week)

	return []Quest{
		{ID: "connect_5", Title: "Network Builder", Progress: capProgress(len(counterparts), 5), Target: 5, Unit: "people"},
		{ID: "taps_25", Title: "Consistency", Progress: capProgress(weeklyTaps, 25), Target: 25, Unit: "taps"},
		{ID: "streak_3", Title: "Keep it going", Progress: capProgress(streak, 3), Target: 3, Unit: "days"},
	}
}

func capProgress(actual, target int) int {
	if actual > target {
		return target
	}
	return actual
}
