package domain

import "time"

// InteractionEvent is a single undirected tap between two members. Events are
// immutable once decoded; the engine derives new structures from them and
// never writes back.
type InteractionEvent struct {
	MemberA       string
	MemberB       string
	OccurredAt    time.Time
	Latitude      *float64
	Longitude     *float64
	ResolvedPlace string
}

// Valid reports whether both endpoints are present and distinct and the
// timestamp is set. Events failing this check are dropped upstream of every
// computation.
func (e InteractionEvent) Valid() bool {
	return e.MemberA != "" && e.MemberB != "" && e.MemberA != e.MemberB && !e.OccurredAt.IsZero()
}

// Touches reports whether the given member is one of the two endpoints.
func (e InteractionEvent) Touches(memberID string) bool {
	return e.MemberA == memberID || e.MemberB == memberID
}

// Counterpart returns the other endpoint for the given member, or "" when the
// member is not part of the event.
func (e InteractionEvent) Counterpart(memberID string) string {
	switch memberID {
	case e.MemberA:
		return e.MemberB
	case e.MemberB:
		return e.MemberA
	default:
		return ""
	}
}

// PairKey returns an order-independent key identifying the member pair.
func (e InteractionEvent) PairKey() string {
	if e.MemberA < e.MemberB {
		return e.MemberA + "|" + e.MemberB
	}
	return e.MemberB + "|" + e.MemberA
}

// HasCoordinates reports whether the event carries a geo position.
func (e InteractionEvent) HasCoordinates() bool {
	return e.Latitude != nil && e.Longitude != nil
}
