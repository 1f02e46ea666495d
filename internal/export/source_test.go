package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromWireLenientEndpoints(t *testing.T) {
	raw := wireExport{
		Taps: []wireTap{
			{User1ID: "A", User2ID: "B", Time: "2025-03-15T10:00:00Z"},
			{ID1: "C", ID2: "D", Time: "2025-03-15 11:00:00"},
		},
	}
	exp := fromWire(raw)

	require.Len(t, exp.Taps, 2)
	assert.Equal(t, "A", exp.Taps[0].MemberA)
	assert.Equal(t, "C", exp.Taps[1].MemberA)
	assert.Equal(t, "D", exp.Taps[1].MemberB)
	assert.Zero(t, exp.DroppedTaps)
}

func TestFromWireDropsMalformedTaps(t *testing.T) {
	raw := wireExport{
		Taps: []wireTap{
			{User1ID: "A", User2ID: "B", Time: "2025-03-15T10:00:00Z"},
			{User1ID: "A", Time: "2025-03-15T10:00:00Z"},         // missing endpoint
			{User1ID: "A", User2ID: "A", Time: "2025-03-15T10:00:00Z"}, // self pair
			{User1ID: "A", User2ID: "B", Time: "not-a-time"},
			{User1ID: "A", User2ID: "B"},
		},
	}
	exp := fromWire(raw)

	assert.Len(t, exp.Taps, 1)
	assert.Equal(t, 4, exp.DroppedTaps)
}

func TestFromWireMemberProfiles(t *testing.T) {
	raw := wireExport{
		Users: []wireUser{
			{ID: "A", FirstName: "Ava", LastName: "Adler"},
			{UserID: "B", Username: "ben"},
			{ID: "C", FirstName: "stale", BasicInfo: &wireBasicInfo{FirstName: "Cora", Username: "cora88"}},
			{Username: "orphan"}, // no ID, skipped
		},
	}
	exp := fromWire(raw)

	require.Len(t, exp.Members, 3)
	assert.Equal(t, "Ava", exp.Members[0].FirstName)
	assert.Equal(t, "B", exp.Members[1].ID)
	// basic_info wins over top-level fields when present.
	assert.Equal(t, "Cora", exp.Members[2].FirstName)
	assert.Equal(t, "cora88", exp.Members[2].Username)
}

func TestParseTapTime(t *testing.T) {
	got, ok := parseTapTime("2025-03-15T10:00:00.500Z")
	require.True(t, ok)
	assert.Equal(t, 500, got.Nanosecond()/1e6)

	_, ok = parseTapTime("")
	assert.False(t, ok)
	_, ok = parseTapTime("yesterday")
	assert.False(t, ok)
}
