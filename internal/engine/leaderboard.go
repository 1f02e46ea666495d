package engine

import (
	"sort"
	"time"

	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/domain"
)

// LeaderboardEntry is one ranked member in a window-scoped leaderboard.
type LeaderboardEntry struct {
	MemberID string
	Name     string
	Count    int
	LastSeen time.Time
}

const (
	leaderboardSize  = 5
	expandedReachCap = 10
)

type tally struct {
	count    int
	lastSeen time.Time
}

func (t *tally) bump(at time.Time) {
	t.count++
	if at.After(t.lastSeen) {
		t.lastSeen = at
	}
}

func rankTallies(tallies map[string]*tally, idx domain.MemberIndex, limit int, recencyTieBreak bool) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(tallies))
	for memberID, t := range tallies {
		entries = append(entries, LeaderboardEntry{
			MemberID: memberID,
			Name:     idx.DisplayName(memberID),
			Count:    t.count,
			LastSeen: t.lastSeen,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		if recencyTieBreak && !entries[i].LastSeen.Equal(entries[j].LastSeen) {
			return entries[i].LastSeen.After(entries[j].LastSeen)
		}
		return entries[i].MemberID < entries[j].MemberID
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// NewConnectionLeaders ranks the focal member's counterparts by shared
// in-window event count, top five, ties broken by most recent event.
func NewConnectionLeaders(events []domain.InteractionEvent, focal string, win Window, idx domain.MemberIndex) []LeaderboardEntry {
	tallies := make(map[string]*tally)
	for _, ev := range events {
		if !ev.Valid() || !ev.Touches(focal) || !win.Contains(ev.OccurredAt) {
			continue
		}
		other := ev.Counterpart(focal)
		t, ok := tallies[other]
		if !ok {
			t = &tally{}
			tallies[other] = t
		}
		t.bump(ev.OccurredAt)
	}
	return rankTallies(tallies, idx, leaderboardSize, true)
}

// CommunityBuilders ranks every member by total in-window event count as
// either endpoint, top five. This board is global: the focal member is not
// excluded, and ties carry no recency tie-break.
func CommunityBuilders(events []domain.InteractionEvent, win Window, idx domain.MemberIndex) []LeaderboardEntry {
	tallies := make(map[string]*tally)
	bump := func(memberID string, at time.Time) {
		t, ok := tallies[memberID]
		if !ok {
			t = &tally{}
			tallies[memberID] = t
		}
		t.bump(at)
	}
	for _, ev := range events {
		if !ev.Valid() || !win.Contains(ev.OccurredAt) {
			continue
		}
		bump(ev.MemberA, ev.OccurredAt)
		bump(ev.MemberB, ev.OccurredAt)
	}
	return rankTallies(tallies, idx, leaderboardSize, false)
}

// StreakMasters ranks members by distinct active days inside the window,
// top five, ties broken by most recent event.
func StreakMasters(events []domain.InteractionEvent, win Window, idx domain.MemberIndex) []LeaderboardEntry {
	days := make(map[string]map[string]struct{})
	latest := make(map[string]time.Time)
	record := func(memberID string, at time.Time) {
		set, ok := days[memberID]
		if !ok {
			set = make(map[string]struct{})
			days[memberID] = set
		}
		set[at.UTC().Format(dateLayout)] = struct{}{}
		if at.After(latest[memberID]) {
			latest[memberID] = at
		}
	}
	for _, ev := range events {
		if !ev.Valid() || !win.Contains(ev.OccurredAt) {
			continue
		}
		record(ev.MemberA, ev.OccurredAt)
		record(ev.MemberB, ev.OccurredAt)
	}
	tallies := make(map[string]*tally, len(days))
	for memberID, set := range days {
		tallies[memberID] = &tally{count: len(set), lastSeen: latest[memberID]}
	}
	return rankTallies(tallies, idx, leaderboardSize, true)
}

// ExpandedReach ranks members by the number of brand-new relationships
// formed inside the window: pairs whose earliest event across all history
// falls in-window, counted for both endpoints, top ten.
func ExpandedReach(events []domain.InteractionEvent, win Window, idx domain.MemberIndex) []LeaderboardEntry {
	firstSeen := make(map[string]time.Time)
	pairEndpoints := make(map[string][2]string)
	for _, ev := range events {
		if !ev.Valid() {
			continue
		}
		key := ev.PairKey()
		if existing, ok := firstSeen[key]; !ok || ev.OccurredAt.Before(existing) {
			firstSeen[key] = ev.OccurredAt
			pairEndpoints[key] = [2]string{ev.MemberA, ev.MemberB}
		}
	}
	tallies := make(map[string]*tally)
	for key, at := range firstSeen {
		if !win.Contains(at) {
			continue
		}
		pair := pairEndpoints[key]
		for _, memberID := range pair {
			t, ok := tallies[memberID]
			if !ok {
				t = &tally{}
				tallies[memberID] = t
			}
			t.bump(at)
		}
	}
	return rankTallies(tallies, idx, expandedReachCap, true)
}
