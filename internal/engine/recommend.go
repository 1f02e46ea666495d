package engine

import (
	"sort"

	"golang.org/x/text/collate"

	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/domain"
)

// Candidate is one mutual-connection recommendation for a focal member.
type Candidate struct {
	MemberID    string
	Name        string
	MutualCount int
	MutualIDs   []string
	MutualNames []string
	Score       float64
}

const mutualDisplayCap = 6

// Recommend scores non-connected members by shared-neighbor count over the
// full, unwindowed event history. A candidate qualifies when it is reachable
// through at least one of the focal member's direct connections and is not
// itself direct. The result is sorted by mutual count descending, then by
// display name ascending under the supplied collation.
func Recommend(adj Adjacency, focal string, idx domain.MemberIndex, coll *collate.Collator) []Candidate {
	direct := adj.Neighbors(focal)
	directSet := make(map[string]struct{}, len(direct))
	for _, d := range direct {
		directSet[d] = struct{}{}
	}

	// candidate -> attributing direct connections, in direct iteration order
	mutuals := make(map[string][]string)
	for _, d := range direct {
		for _, candidate := range adj.Neighbors(d) {
			if candidate == focal {
				continue
			}
			if _, isDirect := directSet[candidate]; isDirect {
				continue
			}
			mutuals[candidate] = append(mutuals[candidate], d)
		}
	}

	out := make([]Candidate, 0, len(mutuals))
	for memberID, via := range mutuals {
		mutualIDs := via
		if len(mutualIDs) > mutualDisplayCap {
			mutualIDs = mutualIDs[:mutualDisplayCap]
		}
		names := make([]string, len(mutualIDs))
		for i, id := range mutualIDs {
			names[i] = idx.DisplayName(id)
		}
		out = append(out, Candidate{
			MemberID:    memberID,
			Name:        idx.DisplayName(memberID),
			MutualCount: len(via),
			MutualIDs:   mutualIDs,
			MutualNames: names,
			Score:       mutualScore(len(via)),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].MutualCount != out[j].MutualCount {
			return out[i].MutualCount > out[j].MutualCount
		}
		if cmp := coll.CompareString(out[i].Name, out[j].Name); cmp != 0 {
			return cmp < 0
		}
		return out[i].MemberID < out[j].MemberID
	})
	return out
}

// mutualScore normalizes a mutual-connection count onto [0, 1], saturating
// at ten mutuals.
func mutualScore(mutualCount int) float64 {
	score := float64(mutualCount) / 10
	if score > 1 {
		return 1
	}
	return score
}
