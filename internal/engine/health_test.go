package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/domain"
)

func TestStrengthScore(t *testing.T) {
	// Saturated volume and same-day contact yields a perfect score.
	assert.Equal(t, 1.0, strengthScore(10, 30, 0))
	// No recent contact leaves only the decayed recency term.
	assert.Equal(t, 0.02, strengthScore(0, 0, 9))
	assert.Equal(t, 0.0, strengthScore(0, 0, 1<<20))
}

func TestStrengthBucket(t *testing.T) {
	assert.Equal(t, BucketExcellent, strengthBucket(0.8))
	assert.Equal(t, BucketGood, strengthBucket(0.6))
	assert.Equal(t, BucketFair, strengthBucket(0.4))
	assert.Equal(t, BucketNeedsAttention, strengthBucket(0.39))
}

func TestRelationshipHealth(t *testing.T) {
	var events []domain.InteractionEvent
	// Thirty recent taps with B saturate both volume terms.
	for i := 1; i <= 30; i++ {
		events = append(events, tap("A", "B", testNow.Add(-time.Duration(i)*time.Hour)))
	}
	// One stale tap with C, 45 days back.
	events = append(events, tap("A", "C", testNow.Add(-45*24*time.Hour)))
	// B-C events never affect A's relationships.
	events = append(events, tap("B", "C", testNow.Add(-time.Hour)))

	out := RelationshipHealth(events, "A", testNow, testIndex("A", "B", "C"), testCollator())
	require.Len(t, out, 2)

	strong := out[0]
	assert.Equal(t, "B", strong.MemberID)
	assert.Equal(t, 30, strong.Taps30d)
	assert.Equal(t, 30, strong.Taps90d)
	assert.Equal(t, 0, strong.DaysSinceLast)
	assert.Equal(t, 1.0, strong.Strength)
	assert.Equal(t, BucketExcellent, strong.Bucket)

	stale := out[1]
	assert.Equal(t, "C", stale.MemberID)
	assert.Equal(t, 0, stale.Taps30d)
	assert.Equal(t, 1, stale.Taps90d)
	assert.Equal(t, 45, stale.DaysSinceLast)
	assert.Equal(t, BucketNeedsAttention, stale.Bucket)
}

func TestRelationshipHealthCap(t *testing.T) {
	var events []domain.InteractionEvent
	ids := []string{"A"}
	for i := 0; i < 20; i++ {
		other := fmt.Sprintf("M%02d", i)
		ids = append(ids, other)
		events = append(events, tap("A", other, testNow.Add(-time.Hour)))
	}
	out := RelationshipHealth(events, "A", testNow, testIndex(ids...), testCollator())
	assert.Len(t, out, healthListCap)
}
