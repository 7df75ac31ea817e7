// Package retrieval layers ranking and confidence policy over the raw
// indexes: min-similarity filtering, top-K truncation, preview building,
// the two-threshold confidence gate, and rank fusion for hybrid search.
package retrieval

const (
	defaultCandidateMultiplier = 4
	defaultMinCandidates       = 20
	defaultMaxCandidates       = 200

	// DefaultPreviewLength is the preview budget in runes.
	DefaultPreviewLength = 200
)

// Policy is the value object that distinguishes the two confidence regimes
// sharing one ranking primitive: the strict auto-answer gate and the looser
// user-initiated suggestion search. Gated selects single-winner semantics.
type Policy struct {
	MinSimilarity     float64
	TopK              int
	PreviewLength     int
	Gated             bool
	AbsoluteThreshold float64
	GapThreshold      float64
}

// AutoAnswerPolicy builds the strict two-of-two gate regime. No ranker-side
// similarity filter is applied; the gate's absolute threshold decides.
func AutoAnswerPolicy(absoluteThreshold, gapThreshold float64, topK, previewLength int) Policy {
	return Policy{
		TopK:              topK,
		PreviewLength:     previewLength,
		Gated:             true,
		AbsoluteThreshold: absoluteThreshold,
		GapThreshold:      gapThreshold,
	}
}

// SuggestionPolicy builds the user-initiated search regime: a single lower
// similarity floor, no gap test, up to TopK results.
func SuggestionPolicy(minSimilarity float64, topK, previewLength int) Policy {
	return Policy{
		MinSimilarity: minSimilarity,
		TopK:          topK,
		PreviewLength: previewLength,
	}
}

// CandidatePool sizes the index query so that filtering still leaves topK
// results: 4x the requested K, clamped to a sane range.
func (p Policy) CandidatePool() int {
	pool := p.TopK * defaultCandidateMultiplier
	if pool < defaultMinCandidates {
		pool = defaultMinCandidates
	}
	if pool > defaultMaxCandidates {
		pool = defaultMaxCandidates
	}
	return pool
}

func (p Policy) previewLength() int {
	if p.PreviewLength > 0 {
		return p.PreviewLength
	}
	return DefaultPreviewLength
}
