package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/domain"
)

func TestRadarSeriesDense(t *testing.T) {
	buckets := RadarSeries(nil, "A", testNow, 24, testIndex())
	require.Len(t, buckets, 24)

	newest := testNow.Truncate(time.Hour)
	assert.Equal(t, newest.Add(-23*time.Hour), buckets[0].Start)
	assert.Equal(t, newest, buckets[23].Start)
	for _, b := range buckets {
		assert.Zero(t, b.ActivityCount)
		assert.Zero(t, b.UniquePeople)
		assert.Empty(t, b.Participants)
	}
}

func TestRadarSeriesCounts(t *testing.T) {
	currentHour := testNow.Truncate(time.Hour)
	events := []domain.InteractionEvent{
		tap("A", "B", currentHour.Add(5*time.Minute)),
		tap("B", "A", currentHour.Add(10*time.Minute)),
		tap("A", "C", currentHour.Add(15*time.Minute)),
		tap("A", "B", currentHour.Add(-2*time.Hour)),
		tap("B", "C", currentHour), // does not touch A
		tap("A", "D", testNow.Add(-48*time.Hour)), // outside the grid
	}
	buckets := RadarSeries(events, "A", testNow, 24, testIndex("A", "B", "C"))
	require.Len(t, buckets, 24)

	current := buckets[23]
	assert.Equal(t, 3, current.ActivityCount)
	assert.Equal(t, 2, current.UniquePeople)
	require.Len(t, current.Participants, 2)
	assert.Equal(t, Participant{MemberID: "B", Name: "B", Count: 2}, current.Participants[0])
	assert.Equal(t, Participant{MemberID: "C", Name: "C", Count: 1}, current.Participants[1])

	earlier := buckets[21]
	assert.Equal(t, 1, earlier.ActivityCount)
}

func TestNetworkSeriesMembershipRule(t *testing.T) {
	currentHour := testNow.Truncate(time.Hour)
	members := map[string]struct{}{"A": {}, "B": {}}
	events := []domain.InteractionEvent{
		tap("A", "B", currentHour),
		tap("A", "C", currentHour), // C outside the roster, excluded
	}
	buckets := NetworkSeries(events, members, testNow, 24, ModeTaps, testIndex("A", "B", "C"))
	require.Len(t, buckets, 24)

	current := buckets[23]
	assert.Equal(t, 1, current.ActivityCount)
	assert.Equal(t, 2, current.UniquePeople)
	require.Len(t, current.Participants, 2)
	assert.Equal(t, 1, current.Participants[0].Count)
}

func TestNetworkSeriesConnectionsMode(t *testing.T) {
	currentHour := testNow.Truncate(time.Hour)
	members := map[string]struct{}{"A": {}, "B": {}, "C": {}}
	events := []domain.InteractionEvent{
		tap("A", "B", currentHour),
		tap("A", "B", currentHour.Add(time.Minute)),
		tap("A", "C", currentHour.Add(2*time.Minute)),
	}
	buckets := NetworkSeries(events, members, testNow, 24, ModeConnections, testIndex("A", "B", "C"))
	current := buckets[23]

	assert.Equal(t, 3, current.ActivityCount)
	require.Len(t, current.Participants, 3)
	// A touched two distinct counterparts; repeat taps do not inflate it.
	assert.Equal(t, Participant{MemberID: "A", Name: "A", Count: 2}, current.Participants[0])
}

func TestParticipantTieOrder(t *testing.T) {
	currentHour := testNow.Truncate(time.Hour)
	events := []domain.InteractionEvent{
		tap("A", "C", currentHour),
		tap("A", "B", currentHour.Add(time.Minute)),
	}
	buckets := RadarSeries(events, "A", testNow, 1, testIndex("A", "B", "C"))
	current := buckets[0]
	require.Len(t, current.Participants, 2)
	assert.Equal(t, "B", current.Participants[0].MemberID)
	assert.Equal(t, "C", current.Participants[1].MemberID)
}

func TestDailySeriesDense(t *testing.T) {
	win := Window{
		Start: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	events := []domain.InteractionEvent{
		tap("A", "B", time.Date(2025, 3, 13, 10, 0, 0, 0, time.UTC)),
		tap("C", "D", time.Date(2025, 3, 13, 11, 0, 0, 0, time.UTC)),
	}
	series := DailySeries(events, win)
	require.Len(t, series, 3)
	assert.Equal(t, DailyActivity{Day: "2025-03-12", Taps: 0}, series[0])
	assert.Equal(t, DailyActivity{Day: "2025-03-13", Taps: 2}, series[1])
	assert.Equal(t, DailyActivity{Day: "2025-03-14", Taps: 0}, series[2])
}
