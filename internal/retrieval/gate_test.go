package retrieval

import (
	"testing"

	"github.com/stackdesk/faqd/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func suggestions(scores ...float64) []domain.RankedSuggestion {
	out := make([]domain.RankedSuggestion, 0, len(scores))
	for i, s := range scores {
		out = append(out, domain.RankedSuggestion{
			Chunk:      &domain.KnowledgeChunk{ID: string(rune('a' + i))},
			Similarity: s,
		})
	}
	return out
}

func TestEvaluate(t *testing.T) {
	pol := AutoAnswerPolicy(0.70, 0.15, 5, 200)

	t.Run("no results means no match", func(t *testing.T) {
		res := Evaluate(nil, pol)

		assert.False(t, res.Eligible)
		assert.Nil(t, res.Chosen)
		assert.Equal(t, domain.ReasonNoMatch, res.Reason)
	})

	t.Run("single result above floor is eligible", func(t *testing.T) {
		res := Evaluate(suggestions(0.95), pol)

		assert.True(t, res.Eligible)
		require.NotNil(t, res.Chosen)
		assert.Equal(t, domain.ReasonConfident, res.Reason)
		assert.InDelta(t, 0.95, res.TopScore, 1e-9)
	})

	t.Run("top below absolute floor is rejected", func(t *testing.T) {
		res := Evaluate(suggestions(0.65), pol)

		assert.False(t, res.Eligible)
		assert.Equal(t, domain.ReasonBelowAbsoluteThreshold, res.Reason)
	})

	t.Run("narrow gap is ambiguous", func(t *testing.T) {
		res := Evaluate(suggestions(0.95, 0.82), pol)

		assert.False(t, res.Eligible)
		assert.Nil(t, res.Chosen)
		assert.Equal(t, domain.ReasonAmbiguousTop2, res.Reason)
		assert.InDelta(t, 0.13, res.Gap, 1e-9)
	})

	t.Run("wide gap is eligible", func(t *testing.T) {
		res := Evaluate(suggestions(0.95, 0.70), pol)

		assert.True(t, res.Eligible)
		require.NotNil(t, res.Chosen)
		assert.Equal(t, "a", res.Chosen.Chunk.ID)
		assert.Equal(t, domain.ReasonConfident, res.Reason)
		assert.InDelta(t, 0.25, res.Gap, 1e-9)
	})

	t.Run("gap exactly at the margin passes", func(t *testing.T) {
		res := Evaluate(suggestions(0.90, 0.75), pol)

		assert.True(t, res.Eligible)
	})

	t.Run("top exactly at the floor passes", func(t *testing.T) {
		res := Evaluate(suggestions(0.70), pol)

		assert.True(t, res.Eligible)
	})

	t.Run("absolute check runs before the gap check", func(t *testing.T) {
		res := Evaluate(suggestions(0.60, 0.58), pol)

		assert.Equal(t, domain.ReasonBelowAbsoluteThreshold, res.Reason)
	})

	t.Run("ungated policy accepts any non-empty result set", func(t *testing.T) {
		loose := SuggestionPolicy(0.50, 5, 200)

		res := Evaluate(suggestions(0.55, 0.54), loose)

		assert.True(t, res.Eligible)
		require.NotNil(t, res.Chosen)
		assert.Equal(t, "a", res.Chosen.Chunk.ID)
	})
}
