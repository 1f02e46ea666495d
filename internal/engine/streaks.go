package engine

import (
	"sort"
	"time"

	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/domain"
)

// Streaks captures consecutive-day activity for a focal member.
type Streaks struct {
	CurrentDays int
	LongestDays int
}

// Momentum is the weekly recap momentum block.
type Momentum struct {
	Streaks        Streaks
	WindowTaps     int
	NewConnections int
}

// activeDays returns the set of UTC dates on which the member had at least
// one event, optionally restricted to a window.
func activeDays(events []domain.InteractionEvent, memberID string, win *Window) map[string]struct{} {
	days := make(map[string]struct{})
	for _, ev := range events {
		if !ev.Valid() || !ev.Touches(memberID) {
			continue
		}
		if win != nil && !win.Contains(ev.OccurredAt) {
			continue
		}
		days[ev.OccurredAt.UTC().Format(dateLayout)] = struct{}{}
	}
	return days
}

// CurrentStreak counts consecutive active calendar days ending at the most
// recent active day inside the window, walking backward until the first gap.
func CurrentStreak(events []domain.InteractionEvent, memberID string, win Window) int {
	days := activeDays(events, memberID, &win)
	if len(days) == 0 {
		return 0
	}
	sorted := make([]string, 0, len(days))
	for d := range days {
		sorted = append(sorted, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(sorted)))

	cursor, err := time.Parse(dateLayout, sorted[0])
	if err != nil {
		return 0
	}
	streak := 0
	for {
		if _, ok := days[cursor.Format(dateLayout)]; !ok {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

// LongestStreak scans the member's full history in ascending date order,
// tracking the longest run of consecutive active days.
func LongestStreak(events []domain.InteractionEvent, memberID string) int {
	days := activeDays(events, memberID, nil)
	if len(days) == 0 {
		return 0
	}
	sorted := make([]time.Time, 0, len(days))
	for d := range days {
		t, err := time.Parse(dateLayout, d)
		if err != nil {
			continue
		}
		sorted = append(sorted, t)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	longest, run := 0, 0
	var prev time.Time
	for i, day := range sorted {
		if i > 0 && day.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = day
	}
	return longest
}

// ComputeMomentum derives the focal member's momentum block: streaks plus
// rolling totals over the active window. NewConnections is the count of
// distinct counterparts seen in-window.
func ComputeMomentum(events []domain.InteractionEvent, memberID string, win Window) Momentum {
	windowTaps := 0
	counterparts := make(map[string]struct{})
	for _, ev := range events {
		if !ev.Valid() || !ev.Touches(memberID) || !win.Contains(ev.OccurredAt) {
			continue
		}
		windowTaps++
		counterparts[ev.Counterpart(memberID)] = struct{}{}
	}
	return Momentum{
		Streaks: Streaks{
			CurrentDays: CurrentStreak(events, memberID, win),
			LongestDays: LongestStreak(events, memberID),
		},
		WindowTaps:     windowTaps,
		NewConnections: len(counterparts),
	}
}
