// Package index provides the in-memory search indexes over the FAQ corpus:
// a flat cosine-similarity vector index and a BM25 lexical index. Both are
// replaced wholesale at sync time via a copy-on-write snapshot swap, so
// readers always observe either the old corpus or the new one, never a mix.
package index

import (
	"math"
	"sort"
	"sync/atomic"

	"github.com/stackdesk/faqd/internal/domain"
)

// Entry pairs a chunk with its embedding. The index owns both after
// ReplaceAll; callers must not mutate them afterwards.
type Entry struct {
	Chunk  domain.KnowledgeChunk
	Vector []float32
}

// Match is a chunk scored against a query.
type Match struct {
	Chunk      *domain.KnowledgeChunk
	Similarity float64
}

type vectorSnapshot struct {
	entries []Entry
}

// VectorIndex is a flat in-memory vector index. Searches scan the current
// snapshot; ReplaceAll publishes a new snapshot atomically.
type VectorIndex struct {
	snapshot atomic.Pointer[vectorSnapshot]
}

// NewVectorIndex creates an empty, unloaded VectorIndex.
func NewVectorIndex() *VectorIndex {
	return &VectorIndex{}
}

// ReplaceAll swaps in a new corpus. The entries slice is copied so later
// caller mutations cannot tear a published snapshot.
func (ix *VectorIndex) ReplaceAll(entries []Entry) {
	snap := &vectorSnapshot{entries: make([]Entry, len(entries))}
	copy(snap.entries, entries)
	ix.snapshot.Store(snap)
}

// Search returns up to k matches sorted by similarity descending, ties
// broken by insertion order. Returns domain.ErrEmptyIndex if no corpus has
// ever been loaded.
func (ix *VectorIndex) Search(query []float32, k int) ([]Match, error) {
	snap := ix.snapshot.Load()
	if snap == nil {
		return nil, domain.ErrEmptyIndex
	}
	if k <= 0 || len(snap.entries) == 0 {
		return []Match{}, nil
	}

	matches := make([]Match, 0, len(snap.entries))
	for i := range snap.entries {
		e := &snap.entries[i]
		matches = append(matches, Match{
			Chunk:      &e.Chunk,
			Similarity: CosineSimilarity(query, e.Vector),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// Size returns the number of indexed chunks (0 before the first load).
func (ix *VectorIndex) Size() int {
	snap := ix.snapshot.Load()
	if snap == nil {
		return 0
	}
	return len(snap.entries)
}

// Loaded reports whether a corpus has ever been published.
func (ix *VectorIndex) Loaded() bool {
	return ix.snapshot.Load() != nil
}

// CosineSimilarity computes the cosine of the angle between two vectors.
// A zero-norm vector yields 0 rather than dividing by zero. Mismatched
// lengths are compared over the shorter prefix.
func CosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
