package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/domain"
)

func testCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}

func TestRecommend(t *testing.T) {
	// A's directs: B and C. D is reachable through both, E through B only.
	events := []domain.InteractionEvent{
		tap("A", "B", testNow),
		tap("A", "C", testNow),
		tap("B", "D", testNow),
		tap("C", "D", testNow),
		tap("B", "E", testNow),
	}
	idx := testIndex("A", "B", "C", "D", "E")
	out := Recommend(BuildAdjacency(events), "A", idx, testCollator())

	require.Len(t, out, 2)
	assert.Equal(t, "D", out[0].MemberID)
	assert.Equal(t, 2, out[0].MutualCount)
	assert.Equal(t, []string{"B", "C"}, out[0].MutualIDs)
	assert.InDelta(t, 0.2, out[0].Score, 1e-9)

	assert.Equal(t, "E", out[1].MemberID)
	assert.Equal(t, 1, out[1].MutualCount)
	assert.InDelta(t, 0.1, out[1].Score, 1e-9)
}

func TestRecommendExcludesDirectAndFocal(t *testing.T) {
	events := []domain.InteractionEvent{
		tap("A", "B", testNow),
		tap("B", "C", testNow),
		tap("C", "A", testNow), // C is direct, never a candidate
	}
	out := Recommend(BuildAdjacency(events), "A", testIndex("A", "B", "C"), testCollator())
	assert.Empty(t, out)
}

func TestRecommendMutualDisplayCap(t *testing.T) {
	var events []domain.InteractionEvent
	ids := []string{"A", "X"}
	for i := 0; i < 8; i++ {
		direct := fmt.Sprintf("D%d", i)
		ids = append(ids, direct)
		events = append(events, tap("A", direct, testNow), tap(direct, "X", testNow))
	}
	out := Recommend(BuildAdjacency(events), "A", testIndex(ids...), testCollator())

	require.Len(t, out, 1)
	assert.Equal(t, 8, out[0].MutualCount)
	assert.Len(t, out[0].MutualIDs, 6)
	assert.Len(t, out[0].MutualNames, 6)
	assert.InDelta(t, 0.8, out[0].Score, 1e-9)
}

func TestRecommendScoreSaturates(t *testing.T) {
	var events []domain.InteractionEvent
	ids := []string{"A", "X"}
	for i := 0; i < 12; i++ {
		direct := fmt.Sprintf("D%02d", i)
		ids = append(ids, direct)
		events = append(events, tap("A", direct, testNow), tap(direct, "X", testNow))
	}
	out := Recommend(BuildAdjacency(events), "A", testIndex(ids...), testCollator())

	require.Len(t, out, 1)
	assert.Equal(t, 1.0, out[0].Score)
}

func TestRecommendTieBreakByName(t *testing.T) {
	members := []domain.Member{
		{ID: "A"},
		{ID: "B"},
		{ID: "Y", FirstName: "Zoe"},
		{ID: "Z", FirstName: "Amy"},
	}
	events := []domain.InteractionEvent{
		tap("A", "B", testNow),
		tap("B", "Y", testNow),
		tap("B", "Z", testNow),
	}
	out := Recommend(BuildAdjacency(events), "A", domain.NewMemberIndex(members), testCollator())

	require.Len(t, out, 2)
	assert.Equal(t, "Amy", out[0].Name)
	assert.Equal(t, "Zoe", out[1].Name)
}
