package service

import (
	"context"
	"errors"
	"strings"

	"github.com/phuslu/log"
	"github.com/stackdesk/faqd/internal/domain"
	"github.com/stackdesk/faqd/internal/retrieval"
	"github.com/stackdesk/faqd/internal/state"
	"github.com/stackdesk/faqd/internal/statuscache"
	"github.com/stackdesk/faqd/internal/telemetry"
)

// EmbeddingProvider defines the interface for query embedding generation
type EmbeddingProvider interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// AnswerRenderer defines the interface for the generative-answer collaborator
type AnswerRenderer interface {
	RenderAnswer(ctx context.Context, question string, candidates []domain.RankedSuggestion) (string, error)
}

// AnswerConfig holds the policy knobs for the answer flow.
type AnswerConfig struct {
	Policy              retrieval.Policy
	StatusMinSimilarity float64
	StatusTopK          int
	IncidentKeywords    []string
}

// AnswerService orchestrates one question end to end: rank and gate against
// the knowledge index, correlate against the status cache, and compose a
// single AnswerDecision. Status correlation is informational and runs
// regardless of gate eligibility.
type AnswerService struct {
	ranker       *retrieval.Ranker
	statuses     *statuscache.Cache
	provider     EmbeddingProvider
	renderer     AnswerRenderer
	tracker      *state.ThreadTracker
	metrics      *state.Metrics
	interactions *state.InteractionLog
	cfg          AnswerConfig
	logger       *log.Logger
}

// NewAnswerService creates an AnswerService. renderer, tracker, metrics and
// interactions are optional; a nil renderer means eligible decisions are
// returned without generated answer text.
func NewAnswerService(
	ranker *retrieval.Ranker,
	statuses *statuscache.Cache,
	provider EmbeddingProvider,
	renderer AnswerRenderer,
	tracker *state.ThreadTracker,
	metrics *state.Metrics,
	interactions *state.InteractionLog,
	cfg AnswerConfig,
	logger *log.Logger,
) *AnswerService {
	if logger == nil {
		logger = &log.DefaultLogger
	}
	return &AnswerService{
		ranker:       ranker,
		statuses:     statuses,
		provider:     provider,
		renderer:     renderer,
		tracker:      tracker,
		metrics:      metrics,
		interactions: interactions,
		cfg:          cfg,
		logger:       logger,
	}
}

// Decide computes the answer decision for a question whose embedding has
// already been produced. An unloaded knowledge index counts as zero
// results; an embedding failure during status correlation propagates as a
// typed error with no cache-only fallback.
func (s *AnswerService) Decide(ctx context.Context, question string, embedding []float32) (*domain.AnswerDecision, error) {
	candidates, err := s.ranker.Rank(embedding, s.cfg.Policy)
	if err != nil {
		if !errors.Is(err, domain.ErrEmptyIndex) {
			return nil, err
		}
		candidates = nil
	}

	gate := retrieval.Evaluate(candidates, s.cfg.Policy)

	correlated, err := s.correlateStatus(ctx, question, embedding)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("reason", string(gate.Reason)).
		Bool("eligible", gate.Eligible).
		Float64("top_score", gate.TopScore).
		Float64("gap", gate.Gap).
		Int("correlated", len(correlated)).
		Msg("answer decision")

	return &domain.AnswerDecision{
		Eligible:         gate.Eligible,
		Chosen:           gate.Chosen,
		Candidates:       candidates,
		CorrelatedEvents: correlated,
		Reason:           gate.Reason,
	}, nil
}

// correlateStatus runs the hybrid status lookup: a keyword fast path over
// the incident vocabulary, falling back to semantic search only when the
// keyword pass finds nothing.
func (s *AnswerService) correlateStatus(ctx context.Context, question string, embedding []float32) ([]domain.CorrelatedEvent, error) {
	if s.statuses == nil {
		return nil, nil
	}

	terms := MatchVocabulary(question, s.cfg.IncidentKeywords)
	if len(terms) > 0 {
		events := s.statuses.SearchByKeyword(terms)
		if len(events) > 0 {
			correlated := make([]domain.CorrelatedEvent, 0, len(events))
			for _, e := range events {
				correlated = append(correlated, domain.CorrelatedEvent{
					Event:      e,
					Similarity: 1.0,
					Source:     domain.CorrelationKeyword,
				})
			}
			return correlated, nil
		}
	}

	return s.statuses.SearchSemantic(ctx, embedding, s.cfg.StatusMinSimilarity, s.cfg.StatusTopK)
}

// AskInput is one inbound question.
type AskInput struct {
	Question  string
	ThreadKey string
}

// AskOutput is the pipeline result: the decision, generated answer text
// when eligible, and whether the thread was skipped as already answered.
type AskOutput struct {
	Decision     *domain.AnswerDecision
	Answer       string
	Deduplicated bool
}

// Ask runs the full answer pipeline: dedupe check, query embedding,
// decision, answer generation, bookkeeping.
func (s *AnswerService) Ask(ctx context.Context, input AskInput) (*AskOutput, error) {
	ctx, span := telemetry.StartSpan(ctx, "AnswerService.Ask", telemetry.SpanAttributes{
		ThreadKey: input.ThreadKey,
		Operation: "ask",
	})
	defer span.End()

	if s.metrics != nil {
		s.metrics.IncQuestions()
	}

	if input.ThreadKey != "" && s.tracker != nil && s.tracker.IsAnswered(input.ThreadKey) {
		s.logger.Info().Str("thread", input.ThreadKey).Msg("thread already answered")
		return &AskOutput{Deduplicated: true}, nil
	}

	embedding, err := s.provider.GenerateEmbedding(ctx, input.Question)
	if err != nil {
		if s.metrics != nil {
			s.metrics.IncErrors()
		}
		return nil, domain.NewEmbeddingError(err)
	}

	decision, err := s.Decide(ctx, input.Question, embedding)
	if err != nil {
		if s.metrics != nil {
			s.metrics.IncErrors()
		}
		return nil, err
	}

	out := &AskOutput{Decision: decision}
	if decision.Eligible && s.renderer != nil {
		answer, err := s.renderer.RenderAnswer(ctx, input.Question, decision.Candidates)
		if err != nil {
			if s.metrics != nil {
				s.metrics.IncErrors()
			}
			return nil, err
		}
		out.Answer = answer
	}

	s.recordAsk(input, out)
	return out, nil
}

func (s *AnswerService) recordAsk(input AskInput, out *AskOutput) {
	decision := out.Decision

	if s.metrics != nil {
		if decision.Eligible {
			s.metrics.IncAnswersSent()
		} else {
			s.metrics.IncAnswersSkipped(string(decision.Reason))
		}
		s.metrics.AddCorrelationsShown(len(decision.CorrelatedEvents))
	}

	if decision.Eligible && input.ThreadKey != "" && s.tracker != nil {
		s.tracker.MarkAnswered(input.ThreadKey)
	}

	if s.interactions != nil {
		rec := state.InteractionRecord{
			InteractionType: "auto_answer",
			ThreadKey:       input.ThreadKey,
			Question:        input.Question,
			Answered:        decision.Eligible,
			Reason:          string(decision.Reason),
			StatusShown:     len(decision.CorrelatedEvents),
		}
		if decision.Chosen != nil {
			rec.TopScore = decision.Chosen.Similarity
		}
		for _, c := range decision.Candidates {
			rec.ChunkIDs = append(rec.ChunkIDs, c.Chunk.ID)
		}
		if err := s.interactions.Record(rec); err != nil {
			s.logger.Warn().Err(err).Msg("failed to record interaction")
		}
	}
}

// MatchVocabulary returns the vocabulary entries contained in text,
// case-insensitively, preserving vocabulary order.
func MatchVocabulary(text string, vocabulary []string) []string {
	lowered := strings.ToLower(text)
	var matched []string
	for _, kw := range vocabulary {
		if kw == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(kw)) {
			matched = append(matched, kw)
		}
	}
	return matched
}
