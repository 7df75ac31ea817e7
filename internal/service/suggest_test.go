package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stackdesk/faqd/internal/domain"
	"github.com/stackdesk/faqd/internal/index"
	"github.com/stackdesk/faqd/internal/retrieval"
	"github.com/stackdesk/faqd/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func suggestFixture(t *testing.T, provider *MockEmbeddingProvider) (*SuggestService, *index.VectorIndex, *index.LexicalIndex) {
	t.Helper()
	vectors := index.NewVectorIndex()
	lexical := index.NewLexicalIndex()
	policy := retrieval.SuggestionPolicy(0.50, 5, 200)
	svc := NewSuggestService(retrieval.NewRanker(vectors), vectors, lexical, provider, policy, state.NewMetrics(), nil)
	return svc, vectors, lexical
}

func TestSuggestService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("returns ranked suggestions above the floor", func(t *testing.T) {
		provider := new(MockEmbeddingProvider)
		svc, vectors, _ := suggestFixture(t, provider)
		vectors.ReplaceAll([]index.Entry{
			testEntry("hit", 1, 0),
			testEntry("miss", 0, 1),
		})

		provider.On("GenerateEmbedding", mock.Anything, "deploy docs").Return([]float32{1, 0}, nil)

		got, err := svc.Search(ctx, "deploy docs", SearchModeSemantic)

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "hit", got[0].Chunk.ID)
		assert.NotEmpty(t, got[0].Preview)
	})

	t.Run("unloaded corpus yields an empty list, not an error", func(t *testing.T) {
		provider := new(MockEmbeddingProvider)
		svc, _, _ := suggestFixture(t, provider)

		provider.On("GenerateEmbedding", mock.Anything, mock.Anything).Return([]float32{1, 0}, nil)

		got, err := svc.Search(ctx, "anything", SearchModeSemantic)

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("embedding failure is a typed error", func(t *testing.T) {
		provider := new(MockEmbeddingProvider)
		svc, _, _ := suggestFixture(t, provider)

		provider.On("GenerateEmbedding", mock.Anything, mock.Anything).Return(nil, errors.New("api down"))

		_, err := svc.Search(ctx, "anything", SearchModeSemantic)

		require.Error(t, err)
		assert.True(t, domain.IsEmbeddingFailure(err))
	})

	t.Run("unknown mode falls back to semantic", func(t *testing.T) {
		provider := new(MockEmbeddingProvider)
		svc, vectors, _ := suggestFixture(t, provider)
		vectors.ReplaceAll([]index.Entry{testEntry("hit", 1, 0)})

		provider.On("GenerateEmbedding", mock.Anything, mock.Anything).Return([]float32{1, 0}, nil)

		got, err := svc.Search(ctx, "anything", SearchMode("bogus"))

		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("hybrid mode surfaces keyword-only matches", func(t *testing.T) {
		provider := new(MockEmbeddingProvider)
		svc, vectors, lexical := suggestFixture(t, provider)

		chunks := []domain.KnowledgeChunk{
			{ID: "semantic-hit", Heading: "Password reset", Text: "Reset your password in settings."},
			{ID: "keyword-hit", Heading: "XJ-9000 printer", Text: "The XJ-9000 printer lives on floor 3."},
		}
		vectors.ReplaceAll([]index.Entry{
			{Chunk: chunks[0], Vector: []float32{1, 0}},
			{Chunk: chunks[1], Vector: []float32{0, 1}},
		})
		lexical.ReplaceAll(chunks)

		provider.On("GenerateEmbedding", mock.Anything, "XJ-9000").Return([]float32{1, 0}, nil)

		got, err := svc.Search(ctx, "XJ-9000", SearchModeHybrid)

		require.NoError(t, err)
		ids := make([]string, 0, len(got))
		for _, s := range got {
			ids = append(ids, s.Chunk.ID)
		}
		assert.Contains(t, ids, "keyword-hit")
	})

	t.Run("gate and suggestion search agree on relative order", func(t *testing.T) {
		provider := new(MockEmbeddingProvider)
		svc, vectors, _ := suggestFixture(t, provider)
		vectors.ReplaceAll([]index.Entry{
			testEntry("second", 0.8, 0.6),
			testEntry("first", 1, 0),
		})

		provider.On("GenerateEmbedding", mock.Anything, mock.Anything).Return([]float32{1, 0}, nil)

		got, err := svc.Search(ctx, "q", SearchModeSemantic)
		require.NoError(t, err)
		require.Len(t, got, 2)

		gate := retrieval.Evaluate(got, retrieval.AutoAnswerPolicy(0.70, 0.15, 5, 200))
		require.NotNil(t, gate.Chosen)
		assert.Equal(t, got[0].Chunk.ID, gate.Chosen.Chunk.ID)
		assert.Equal(t, "first", got[0].Chunk.ID)
	})
}
