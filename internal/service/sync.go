package service

import (
	"context"
	"fmt"

	"github.com/phuslu/log"
	"github.com/stackdesk/faqd/internal/domain"
	"github.com/stackdesk/faqd/internal/index"
	"github.com/stackdesk/faqd/internal/telemetry"
)

// ChunkSource defines the interface for corpus loading
type ChunkSource interface {
	Load(ctx context.Context) ([]domain.KnowledgeChunk, error)
}

// SyncService rebuilds the knowledge indexes from the chunk source. The
// whole corpus is embedded before either index is swapped, so a failed
// sync leaves the previous corpus fully intact.
type SyncService struct {
	source   ChunkSource
	provider EmbeddingProvider
	vectors  *index.VectorIndex
	lexical  *index.LexicalIndex
	logger   *log.Logger
}

// NewSyncService creates a SyncService.
func NewSyncService(
	source ChunkSource,
	provider EmbeddingProvider,
	vectors *index.VectorIndex,
	lexical *index.LexicalIndex,
	logger *log.Logger,
) *SyncService {
	if logger == nil {
		logger = &log.DefaultLogger
	}
	return &SyncService{
		source:   source,
		provider: provider,
		vectors:  vectors,
		lexical:  lexical,
		logger:   logger,
	}
}

// Sync loads, embeds and publishes the corpus, returning the chunk count.
func (s *SyncService) Sync(ctx context.Context) (int, error) {
	ctx, span := telemetry.StartSpan(ctx, "SyncService.Sync", telemetry.SpanAttributes{
		Operation: "sync",
	})
	defer span.End()

	chunks, err := s.source.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load corpus: %w", err)
	}

	entries := make([]index.Entry, 0, len(chunks))
	for i := range chunks {
		chunk := chunks[i]
		if err := domain.ValidateChunk(&chunk); err != nil {
			return 0, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid chunk in corpus", err)
		}

		text := chunk.Text
		if chunk.Heading != "" {
			text = chunk.Heading + "\n\n" + chunk.Text
		}
		vector, err := s.provider.GenerateEmbedding(ctx, text)
		if err != nil {
			return 0, domain.NewEmbeddingError(err)
		}
		entries = append(entries, index.Entry{Chunk: chunk, Vector: vector})
	}

	s.vectors.ReplaceAll(entries)
	s.lexical.ReplaceAll(chunks)

	s.logger.Info().Int("chunks", len(entries)).Msg("corpus synced")
	return len(entries), nil
}
