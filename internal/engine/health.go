package engine

import (
	"math"
	"sort"
	"time"

	"golang.org/x/text/collate"

	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/domain"
)

// RelationshipStrength grades one counterpart of the focal member by recent
// interaction volume and recency.
type RelationshipStrength struct {
	MemberID      string
	Name          string
	Taps30d       int
	Taps90d       int
	DaysSinceLast int
	Strength      float64
	Bucket        string
}

const healthListCap = 15

// Strength buckets, highest first.
const (
	BucketExcellent      = "excellent"
	BucketGood           = "good"
	BucketFair           = "fair"
	BucketNeedsAttention = "needs_attention"
)

// RelationshipHealth scores every counterpart the focal member has ever
// tapped: 50% weight on 30-day volume (saturating at 10), 30% on 90-day
// volume (saturating at 30), 20% on recency decay. Returns the top 15 by
// strength, ties broken by display name under the supplied collation.
func RelationshipHealth(events []domain.InteractionEvent, focal string, now time.Time, idx domain.MemberIndex, coll *collate.Collator) []RelationshipStrength {
	win30 := Window{Start: now.Add(-30 * 24 * time.Hour), End: now}
	win90 := Window{Start: now.Add(-90 * 24 * time.Hour), End: now}

	type edgeStats struct {
		taps30   int
		taps90   int
		lastSeen time.Time
	}
	perCounterpart := make(map[string]*edgeStats)
	for _, ev := range events {
		if !ev.Valid() || !ev.Touches(focal) {
			continue
		}
		other := ev.Counterpart(focal)
		stats, ok := perCounterpart[other]
		if !ok {
			stats = &edgeStats{}
			perCounterpart[other] = stats
		}
		if win30.Contains(ev.OccurredAt) {
			stats.taps30++
		}
		if win90.Contains(ev.OccurredAt) {
			stats.taps90++
		}
		if ev.OccurredAt.After(stats.lastSeen) {
			stats.lastSeen = ev.OccurredAt
		}
	}

	out := make([]RelationshipStrength, 0, len(perCounterpart))
	for memberID, stats := range perCounterpart {
		daysSince := int(now.Sub(stats.lastSeen).Hours() / 24)
		if daysSince < 0 {
			daysSince = 0
		}
		strength := strengthScore(stats.taps30, stats.taps90, daysSince)
		out = append(out, RelationshipStrength{
			MemberID:      memberID,
			Name:          idx.DisplayName(memberID),
			Taps30d:       stats.taps30,
			Taps90d:       stats.taps90,
			DaysSinceLast: daysSince,
			Strength:      strength,
			Bucket:        strengthBucket(strength),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Strength != out[j].Strength {
			return out[i].Strength > out[j].Strength
		}
		if cmp := coll.CompareString(out[i].Name, out[j].Name); cmp != 0 {
			return cmp < 0
		}
		return out[i].MemberID < out[j].MemberID
	})
	if len(out) > healthListCap {
		out = out[:healthListCap]
	}
	return out
}

func strengthScore(taps30, taps90, daysSinceLast int) float64 {
	volume30 := math.Min(1, float64(taps30)/10)
	volume90 := math.Min(1, float64(taps90)/30)
	recency := 1 / (1 + float64(daysSinceLast))
	score := 0.5*volume30 + 0.3*volume90 + 0.2*recency
	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}
	return math.Round(score*100) / 100
}

func strengthBucket(strength float64) string {
	switch {
	case strength >= 0.8:
		return BucketExcellent
	case strength >= 0.6:
		return BucketGood
	case strength >= 0.4:
		return BucketFair
	default:
		return BucketNeedsAttention
	}
}
