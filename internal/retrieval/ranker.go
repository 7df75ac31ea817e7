package retrieval

import (
	"github.com/stackdesk/faqd/internal/domain"
	"github.com/stackdesk/faqd/internal/index"
)

const truncationMarker = "..."

// Ranker turns raw index matches into presentable suggestions: it queries a
// candidate pool, applies the policy's similarity floor, truncates to top-K
// and derives preview text.
type Ranker struct {
	vectors *index.VectorIndex
}

// NewRanker creates a Ranker over the given vector index.
func NewRanker(vectors *index.VectorIndex) *Ranker {
	return &Ranker{vectors: vectors}
}

// Rank searches the index with the policy's candidate pool and returns
// filtered, truncated suggestions sorted by similarity descending. An empty
// result is valid, not an error. domain.ErrEmptyIndex passes through when
// the corpus has never been loaded.
func (r *Ranker) Rank(query []float32, pol Policy) ([]domain.RankedSuggestion, error) {
	matches, err := r.vectors.Search(query, pol.CandidatePool())
	if err != nil {
		return nil, err
	}
	return r.ToSuggestions(matches, pol), nil
}

// ToSuggestions applies the policy's filter and truncation to an
// already-ranked match list. Used directly by hybrid search, where the
// matches come from rank fusion rather than a single index query.
func (r *Ranker) ToSuggestions(matches []index.Match, pol Policy) []domain.RankedSuggestion {
	suggestions := make([]domain.RankedSuggestion, 0, pol.TopK)
	for _, m := range matches {
		if m.Similarity < pol.MinSimilarity {
			continue
		}
		suggestions = append(suggestions, domain.RankedSuggestion{
			Chunk:      m.Chunk,
			Similarity: m.Similarity,
			Preview:    MakePreview(m.Chunk.Text, pol.previewLength()),
		})
		if len(suggestions) == pol.TopK {
			break
		}
	}
	return suggestions
}

// MakePreview returns the first n runes of text, appending a truncation
// marker only when something was actually cut.
func MakePreview(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + truncationMarker
}
