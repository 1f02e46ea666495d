package engine

import (
	"sort"
	"time"

	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/domain"
)

// BucketMode selects how participant counts are accumulated per hour bucket.
type BucketMode string

const (
	// ModeTaps counts raw interaction occurrences per endpoint.
	ModeTaps BucketMode = "taps"
	// ModeConnections counts distinct counterparts touched per endpoint
	// within each bucket.
	ModeConnections BucketMode = "connections"
)

// ValidBucketMode reports whether the mode is one the API accepts.
func ValidBucketMode(mode string) bool {
	return mode == string(ModeTaps) || mode == string(ModeConnections)
}

// Participant is one member's contribution to a single hour bucket.
type Participant struct {
	MemberID string
	Name     string
	Count    int
}

// Bucket is one hour of activity. Buckets are materialized densely: a series
// over H hours always has exactly H entries, oldest first, even when empty.
type Bucket struct {
	Start         time.Time
	ActivityCount int
	UniquePeople  int
	Participants  []Participant
}

type bucketAccumulator struct {
	start        time.Time
	activity     int
	people       map[string]struct{}
	tapCounts    map[string]int
	counterparts map[string]map[string]struct{}
}

// hourlySeries materializes the dense accumulator grid: one slot per hour,
// keyed by the UTC hour floor, ending at the hour containing now.
func hourlySeries(now time.Time, hours int) ([]*bucketAccumulator, map[time.Time]*bucketAccumulator) {
	if hours <= 0 {
		hours = 1
	}
	newest := now.UTC().Truncate(time.Hour)
	series := make([]*bucketAccumulator, hours)
	byStart := make(map[time.Time]*bucketAccumulator, hours)
	for i := 0; i < hours; i++ {
		start := newest.Add(-time.Duration(hours-1-i) * time.Hour)
		acc := &bucketAccumulator{
			start:        start,
			people:       make(map[string]struct{}),
			tapCounts:    make(map[string]int),
			counterparts: make(map[string]map[string]struct{}),
		}
		series[i] = acc
		byStart[start] = acc
	}
	return series, byStart
}

func (b *bucketAccumulator) addCounterpart(memberID, counterpartID string) {
	set, ok := b.counterparts[memberID]
	if !ok {
		set = make(map[string]struct{})
		b.counterparts[memberID] = set
	}
	set[counterpartID] = struct{}{}
}

func finalizeSeries(series []*bucketAccumulator, mode BucketMode, idx domain.MemberIndex) []Bucket {
	out := make([]Bucket, len(series))
	for i, acc := range series {
		counts := acc.tapCounts
		if mode == ModeConnections {
			counts = make(map[string]int, len(acc.counterparts))
			for memberID, set := range acc.counterparts {
				counts[memberID] = len(set)
			}
		}
		participants := make([]Participant, 0, len(counts))
		for memberID, count := range counts {
			participants = append(participants, Participant{
				MemberID: memberID,
				Name:     idx.DisplayName(memberID),
				Count:    count,
			})
		}
		sort.Slice(participants, func(a, b int) bool {
			if participants[a].Count != participants[b].Count {
				return participants[a].Count > participants[b].Count
			}
			return participants[a].MemberID < participants[b].MemberID
		})
		out[i] = Bucket{
			Start:         acc.start,
			ActivityCount: acc.activity,
			UniquePeople:  len(acc.people),
			Participants:  participants,
		}
	}
	return out
}

// RadarSeries buckets the focal member's own activity hour by hour over the
// lookback span. Participants are the counterparts the focal member tapped
// within each bucket, counted per occurrence.
func RadarSeries(events []domain.InteractionEvent, focal string, now time.Time, hours int, idx domain.MemberIndex) []Bucket {
	series, byStart := hourlySeries(now, hours)
	for _, ev := range events {
		if !ev.Valid() || !ev.Touches(focal) {
			continue
		}
		acc, ok := byStart[ev.OccurredAt.UTC().Truncate(time.Hour)]
		if !ok {
			continue
		}
		acc.activity++
		counterpart := ev.Counterpart(focal)
		acc.people[counterpart] = struct{}{}
		acc.tapCounts[counterpart]++
	}
	return finalizeSeries(series, ModeTaps, idx)
}

// NetworkSeries buckets activity inside a precomputed member set: only
// events where both endpoints belong to the set qualify. Mode taps counts
// occurrences per endpoint; mode connections counts distinct partners per
// endpoint per bucket.
func NetworkSeries(events []domain.InteractionEvent, members map[string]struct{}, now time.Time, hours int, mode BucketMode, idx domain.MemberIndex) []Bucket {
	series, byStart := hourlySeries(now, hours)
	for _, ev := range events {
		if !ev.Valid() {
			continue
		}
		if _, ok := members[ev.MemberA]; !ok {
			continue
		}
		if _, ok := members[ev.MemberB]; !ok {
			continue
		}
		acc, ok := byStart[ev.OccurredAt.UTC().Truncate(time.Hour)]
		if !ok {
			continue
		}
		acc.activity++
		acc.people[ev.MemberA] = struct{}{}
		acc.people[ev.MemberB] = struct{}{}
		acc.tapCounts[ev.MemberA]++
		acc.tapCounts[ev.MemberB]++
		acc.addCounterpart(ev.MemberA, ev.MemberB)
		acc.addCounterpart(ev.MemberB, ev.MemberA)
	}
	return finalizeSeries(series, mode, idx)
}

// DailyActivity counts all qualifying events per UTC calendar day across the
// window, returning a dense day-by-day series for the weekly recap chart.
type DailyActivity struct {
	Day  string
	Taps int
}

// DailySeries buckets window events by UTC date, materializing every day in
// the window even when empty.
func DailySeries(events []domain.InteractionEvent, win Window) []DailyActivity {
	perDay := make(map[string]int)
	for _, ev := range events {
		if !ev.Valid() || !win.Contains(ev.OccurredAt) {
			continue
		}
		perDay[ev.OccurredAt.UTC().Format(dateLayout)]++
	}
	var out []DailyActivity
	for d := win.Start.UTC(); d.Before(win.End.UTC()); d = d.AddDate(0, 0, 1) {
		day := d.Format(dateLayout)
		out = append(out, DailyActivity{Day: day, Taps: perDay[day]})
	}
	return out
}

const dateLayout = "2006-01-02"
