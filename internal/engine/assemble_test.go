package engine

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/domain"
)

func testAssembler() *Assembler {
	return NewAssembler("reader", WithClock(func() time.Time { return testNow }))
}

func testExport() domain.Export {
	lat, lng := 30.2672, -97.7431
	return domain.Export{
		Taps: []domain.InteractionEvent{
			tap("A", "B", testNow.Add(-time.Hour)),
			tap("A", "B", testNow.Add(-25*time.Hour)),
			tap("A", "C", testNow.Add(-2*time.Hour)),
			tap("B", "D", testNow.Add(-3*time.Hour)),
			{MemberA: "C", MemberB: "D", OccurredAt: testNow.Add(-4 * time.Hour), Latitude: &lat, Longitude: &lng},
		},
		Members: []domain.Member{
			{ID: "A", FirstName: "Ava", LastName: "Adler"},
			{ID: "B", FirstName: "Ben", LastName: "Brooks"},
			{ID: "C", Username: "cora88"},
			{ID: "D"},
		},
	}
}

func TestWarningString(t *testing.T) {
	assert.Equal(t, "momentum_error:boom", Warning{Section: "momentum", Message: "boom"}.String())
	assert.Equal(t, "free-form note", Warning{Message: "free-form note"}.String())
}

func TestSectionRecovery(t *testing.T) {
	var warnings []Warning
	section("degree_calculation", &warnings, func() {
		panic("boom")
	})
	section("fine", &warnings, func() {})

	require.Len(t, warnings, 1)
	assert.Equal(t, "degree_calculation_error:boom", warnings[0].String())
}

func TestWeeklyPayload(t *testing.T) {
	payload := testAssembler().Weekly(testExport(), WeeklyParams{UserID: "A", TimeWindow: "1week"})

	assert.Equal(t, "reader", payload.Source)
	assert.Equal(t, 2025, payload.Week.Year)
	assert.Equal(t, 11, payload.Week.ISOWeek)
	assert.Equal(t, "7d", payload.Week.TimeWindow)
	require.Len(t, payload.Week.Range, 2)
	assert.Equal(t, "2025-03-08", payload.Week.Range[0])
	assert.Equal(t, "2025-03-15", payload.Week.Range[1])

	require.Len(t, payload.Recap.FirstDegreeNew, 2)
	assert.Equal(t, "Ben Brooks", payload.Recap.FirstDegreeNew[0].Name)
	assert.Equal(t, "direct", payload.Recap.FirstDegreeNew[0].ConnectedVia)
	require.Len(t, payload.Recap.SecondDegreeNew, 1)
	assert.Equal(t, "D", payload.Recap.SecondDegreeNew[0].MemberID)
	assert.Equal(t, "Ben Brooks", payload.Recap.SecondDegreeNew[0].ConnectedVia)

	assert.Len(t, payload.Recap.CommunityActivity, 7)
	assert.Equal(t, 3, payload.Momentum.WeeklyTaps)
	assert.Equal(t, 2, payload.Momentum.NewConnections)
	assert.Equal(t, 25, payload.Momentum.WeeklyGoal.TargetTaps)

	require.NotEmpty(t, payload.Leaderboard.NewConnections)
	assert.Equal(t, "B", payload.Leaderboard.NewConnections[0].MemberID)
	require.NotEmpty(t, payload.Leaderboard.Connectors)

	// D connects through B and C over full history.
	require.Len(t, payload.Recommendations, 1)
	rec := payload.Recommendations[0]
	assert.Equal(t, "D", rec.MemberID)
	assert.Equal(t, 2, rec.Scores.MutualConnections)
	assert.InDelta(t, 0.2, rec.Scores.Total, 1e-9)

	// One tap carries coordinates, so the geo warning stays out.
	assert.NotContains(t, payload.Meta.Warnings, geoWarning)
	assert.Equal(t, "A", payload.Meta.UserID)
	assert.Nil(t, payload.Meta.Debug)
}

func TestWeeklyPayloadEmptyExportCompleteShape(t *testing.T) {
	payload := testAssembler().Weekly(domain.Export{}, WeeklyParams{UserID: "A"})

	assert.NotNil(t, payload.Recap.FirstDegreeNew)
	assert.NotNil(t, payload.Recap.SecondDegreeNew)
	assert.NotNil(t, payload.Recap.ThirdDegreeNew)
	assert.NotNil(t, payload.Recap.GeoExpansion)
	assert.NotNil(t, payload.Leaderboard.NewConnections)
	assert.NotNil(t, payload.Leaderboard.CommunityBuilders)
	assert.NotNil(t, payload.Leaderboard.StreakMasters)
	assert.NotNil(t, payload.Leaderboard.Connectors)
	assert.NotNil(t, payload.Recommendations)
	assert.Len(t, payload.Recap.CommunityActivity, 7)
	assert.Zero(t, payload.Momentum.CurrentStreakDays)
	assert.Contains(t, payload.Meta.Warnings, geoWarning)
}

func TestWeeklyPayloadDeterministic(t *testing.T) {
	a := testAssembler().Weekly(testExport(), WeeklyParams{UserID: "A", Debug: true})
	b := testAssembler().Weekly(testExport(), WeeklyParams{UserID: "A", Debug: true})
	a.Meta.DurationMS = 0
	b.Meta.DurationMS = 0

	aJSON, err := json.Marshal(a)
	require.NoError(t, err)
	bJSON, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, aJSON, bJSON)
}

func TestWeeklyPayloadDebug(t *testing.T) {
	payload := testAssembler().Weekly(testExport(), WeeklyParams{UserID: "A", TimeWindow: "bogus", Debug: true})

	require.NotNil(t, payload.Meta.Debug)
	dbg := payload.Meta.Debug
	assert.Equal(t, 4, dbg.UsersMapped)
	assert.Equal(t, "bogus", dbg.TimeWindowRaw)
	assert.Equal(t, 5, dbg.TapsInWindow)
	assert.Equal(t, 4, dbg.UniquePairsInWindow)
	assert.Equal(t, 2, dbg.DegreeCounts.First)
}

func TestRadarPayload(t *testing.T) {
	payload := testAssembler().Radar(testExport(), RadarParams{UserID: "A", Hours: 24})

	assert.Equal(t, "A", payload.UserID)
	assert.Equal(t, 24, payload.Window.Hours)
	require.Len(t, payload.Buckets, 24)

	// The -1h and -2h taps land in distinct buckets near the end.
	assert.Equal(t, 1, payload.Buckets[22].ActivityCount)
	assert.Equal(t, "Ben Brooks", payload.Buckets[22].Participants[0].Name)
	assert.NotNil(t, payload.TopCurrentWindow)
}

func TestRadarPayloadEmpty(t *testing.T) {
	payload := testAssembler().Radar(domain.Export{}, RadarParams{UserID: "A", Hours: 24})
	require.Len(t, payload.Buckets, 24)
	assert.NotNil(t, payload.TopCurrentWindow)
	assert.Empty(t, payload.TopCurrentWindow)
	assert.NotNil(t, payload.Meta.Warnings)
}

func TestNetworkPayload(t *testing.T) {
	payload := testAssembler().Network(testExport(), NetworkParams{UserID: "A", Hours: 168, Mode: ModeTaps})

	require.Len(t, payload.Buckets, 168)
	// A, B, C are within three degrees of A inside the window; D joins
	// through B. All five taps stay inside the roster.
	assert.Equal(t, 4, payload.Meta.NetworkMembers)
	assert.Equal(t, 5, payload.Meta.TotalNetworkTaps)
	assert.Zero(t, payload.Meta.TotalUniqueConnections)

	// D has no profile fields, so it is absent from the name map.
	assert.Contains(t, payload.Meta.NameMap, "A")
	assert.NotContains(t, payload.Meta.NameMap, "D")
}

func TestNetworkPayloadConnectionsMode(t *testing.T) {
	payload := testAssembler().Network(testExport(), NetworkParams{UserID: "A", Hours: 168, Mode: ModeConnections})
	// A-B (x2), A-C, B-D, C-D: A has 2 partners, B 2, C 2, D 2.
	assert.Equal(t, 8, payload.Meta.TotalUniqueConnections)
}

func TestQuestsPayload(t *testing.T) {
	payload := testAssembler().Quests(testExport(), QuestsParams{UserID: "A", Debug: true})

	assert.Equal(t, 2025, payload.Week.Year)
	assert.Equal(t, 11, payload.Week.ISOWeek)
	assert.Empty(t, payload.Week.Range)
	require.Len(t, payload.Quests, 3)
	require.NotNil(t, payload.Meta.Debug)
	assert.Equal(t, 3, payload.Meta.Debug.WeeklyTaps)
}

func TestHealthPayload(t *testing.T) {
	payload := testAssembler().Health(testExport(), HealthParams{UserID: "A"})

	require.Len(t, payload.Relationships, 2)
	assert.Equal(t, "Ben Brooks", payload.Relationships[0].Name)
	assert.Equal(t, 2, payload.Relationships[0].Taps30d)
	assert.NotNil(t, payload.Meta.Warnings)
}
