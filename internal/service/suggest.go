package service

import (
	"context"
	"errors"
	"strings"

	"github.com/phuslu/log"
	"github.com/stackdesk/faqd/internal/domain"
	"github.com/stackdesk/faqd/internal/index"
	"github.com/stackdesk/faqd/internal/retrieval"
	"github.com/stackdesk/faqd/internal/state"
	"github.com/stackdesk/faqd/internal/telemetry"
)

// SearchMode selects the suggestion retrieval strategy.
type SearchMode string

const (
	// SearchModeSemantic ranks by cosine similarity only. This is the
	// default and shares its ranking primitive with the auto-answer gate,
	// so the two regimes always agree on relative candidate order.
	SearchModeSemantic SearchMode = "semantic"
	// SearchModeHybrid fuses semantic and BM25 rankings with RRF.
	SearchModeHybrid SearchMode = "hybrid"
)

func normalizeSearchMode(mode SearchMode) SearchMode {
	switch strings.ToLower(strings.TrimSpace(string(mode))) {
	case string(SearchModeHybrid):
		return SearchModeHybrid
	default:
		return SearchModeSemantic
	}
}

// SuggestService serves user-initiated FAQ search: same ranking primitive
// as the auto-answer path, but with the looser suggestion policy and a
// ranked list instead of a single winner.
type SuggestService struct {
	ranker   *retrieval.Ranker
	vectors  *index.VectorIndex
	lexical  *index.LexicalIndex
	provider EmbeddingProvider
	policy   retrieval.Policy
	metrics  *state.Metrics
	logger   *log.Logger
}

// NewSuggestService creates a SuggestService.
func NewSuggestService(
	ranker *retrieval.Ranker,
	vectors *index.VectorIndex,
	lexical *index.LexicalIndex,
	provider EmbeddingProvider,
	policy retrieval.Policy,
	metrics *state.Metrics,
	logger *log.Logger,
) *SuggestService {
	if logger == nil {
		logger = &log.DefaultLogger
	}
	return &SuggestService{
		ranker:   ranker,
		vectors:  vectors,
		lexical:  lexical,
		provider: provider,
		policy:   policy,
		metrics:  metrics,
		logger:   logger,
	}
}

// Search embeds the query and returns ranked suggestions. An unloaded
// corpus yields an empty list, not an error.
func (s *SuggestService) Search(ctx context.Context, query string, mode SearchMode) ([]domain.RankedSuggestion, error) {
	ctx, span := telemetry.StartSpan(ctx, "SuggestService.Search", telemetry.SpanAttributes{
		Operation: "suggest",
	})
	defer span.End()

	embedding, err := s.provider.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, domain.NewEmbeddingError(err)
	}

	var suggestions []domain.RankedSuggestion
	switch normalizeSearchMode(mode) {
	case SearchModeHybrid:
		suggestions, err = s.searchHybrid(query, embedding)
	default:
		suggestions, err = s.ranker.Rank(embedding, s.policy)
	}
	if err != nil {
		if errors.Is(err, domain.ErrEmptyIndex) {
			return []domain.RankedSuggestion{}, nil
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.AddSuggestionsShown(len(suggestions))
	}
	s.logger.Debug().
		Str("mode", string(normalizeSearchMode(mode))).
		Int("results", len(suggestions)).
		Msg("suggestion search")

	return suggestions, nil
}

// searchHybrid fuses cosine and BM25 rankings. Fused scores are
// rank-derived, so the policy's similarity floor does not apply; the
// policy's top-K and preview length do.
func (s *SuggestService) searchHybrid(query string, embedding []float32) ([]domain.RankedSuggestion, error) {
	pool := s.policy.CandidatePool()

	semantic, err := s.vectors.Search(embedding, pool)
	if err != nil {
		return nil, err
	}
	lexical := s.lexical.Search(query, pool)

	fused := retrieval.FuseRRF(semantic, lexical)
	hybridPolicy := retrieval.Policy{TopK: s.policy.TopK, PreviewLength: s.policy.PreviewLength}
	return s.ranker.ToSuggestions(fused, hybridPolicy), nil
}
