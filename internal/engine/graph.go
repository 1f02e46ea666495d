package engine

import (
	"sort"

	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/domain"
)

// Adjacency is an undirected, presence-only view of who has tapped whom
// within one event subset. It is constructed in a single pass and never
// mutated afterwards; every request builds its own copy.
type Adjacency struct {
	neighbors map[string]map[string]struct{}
}

// BuildAdjacency derives the adjacency structure from the supplied events.
// Both directions are recorded for every valid event; duplicate events
// between the same pair never thicken the sets. Invalid events are skipped.
func BuildAdjacency(events []domain.InteractionEvent) Adjacency {
	neighbors := make(map[string]map[string]struct{})
	add := func(a, b string) {
		set, ok := neighbors[a]
		if !ok {
			set = make(map[string]struct{})
			neighbors[a] = set
		}
		set[b] = struct{}{}
	}
	for _, ev := range events {
		if !ev.Valid() {
			continue
		}
		add(ev.MemberA, ev.MemberB)
		add(ev.MemberB, ev.MemberA)
	}
	return Adjacency{neighbors: neighbors}
}

// Neighbors returns the counterpart IDs of the given member in ascending
// order. Sorting here is what makes degree attribution deterministic.
func (a Adjacency) Neighbors(memberID string) []string {
	set, ok := a.neighbors[memberID]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Connected reports whether the two members share at least one event.
func (a Adjacency) Connected(x, y string) bool {
	set, ok := a.neighbors[x]
	if !ok {
		return false
	}
	_, ok = set[y]
	return ok
}

// Members returns the number of members with at least one edge.
func (a Adjacency) Members() int {
	return len(a.neighbors)
}

// DegreeMember is one discovered member at some degree of separation. Via
// names the neighbor through which the member was first reached; it is a
// display label only and never affects membership or ranking.
type DegreeMember struct {
	MemberID string
	Name     string
	Via      string
}

// Degrees groups the 1st/2nd/3rd degree sets around a focal member. The
// three sets are pairwise disjoint and never contain the focal member.
type Degrees struct {
	First  []DegreeMember
	Second []DegreeMember
	Third  []DegreeMember
}

const maxDegree = 3

// ResolveDegrees walks the adjacency outward from the focal member with a
// bounded breadth-first traversal. Frontier members are visited in ascending
// ID order, so the recorded Via attribution is stable across runs.
func ResolveDegrees(adj Adjacency, focal string, idx domain.MemberIndex) Degrees {
	visited := map[string]struct{}{focal: {}}
	levels := make([][]DegreeMember, 0, maxDegree)
	frontier := []string{focal}

	for depth := 1; depth <= maxDegree; depth++ {
		var level []DegreeMember
		var next []string
		for _, via := range frontier {
			for _, candidate := range adj.Neighbors(via) {
				if _, seen := visited[candidate]; seen {
					continue
				}
				visited[candidate] = struct{}{}
				attribution := via
				if depth == 1 {
					attribution = ""
				}
				level = append(level, DegreeMember{
					MemberID: candidate,
					Name:     idx.DisplayName(candidate),
					Via:      attribution,
				})
				next = append(next, candidate)
			}
		}
		levels = append(levels, level)
		sort.Strings(next)
		frontier = next
	}

	return Degrees{First: levels[0], Second: levels[1], Third: levels[2]}
}
