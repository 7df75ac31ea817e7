package retrieval

import (
	"sort"

	"github.com/stackdesk/faqd/internal/index"
)

// rrfK is the standard reciprocal-rank-fusion constant.
const rrfK = 60

// FuseRRF merges semantic and lexical result lists with reciprocal rank
// fusion: each list contributes 1/(k + rank) per chunk, scores are summed,
// and the merged list is sorted by fused score descending with first-seen
// order as the tie-break. Fused scores are rank-derived and not comparable
// to cosine similarities, so hybrid results bypass similarity floors.
func FuseRRF(semantic, lexical []index.Match) []index.Match {
	scores := make(map[string]float64)
	chunks := make(map[string]*index.Match)
	order := make([]string, 0, len(semantic)+len(lexical))

	addList := func(list []index.Match) {
		for rank := range list {
			m := &list[rank]
			id := m.Chunk.ID
			if _, seen := scores[id]; !seen {
				order = append(order, id)
				chunks[id] = m
			}
			scores[id] += 1.0 / float64(rrfK+rank)
		}
	}
	addList(semantic)
	addList(lexical)

	merged := make([]index.Match, 0, len(order))
	for _, id := range order {
		merged = append(merged, index.Match{Chunk: chunks[id].Chunk, Similarity: scores[id]})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Similarity > merged[j].Similarity
	})
	return merged
}
