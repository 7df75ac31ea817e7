package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"
	"github.com/stackdesk/faqd/internal/domain"
	"github.com/stackdesk/faqd/internal/state"
	"github.com/stackdesk/faqd/internal/statuscache"
)

// IngestStatusInput is one inbound message from a monitored status channel.
type IngestStatusInput struct {
	ChannelRef string
	RawText    string
	Link       string
	PostedAt   time.Time
}

// StatusService applies the ingestion policy for status events: messages
// matching the incident vocabulary are cached, the rest are dropped. The
// cache itself admits anything; the filter lives here, at the collaborator
// boundary.
type StatusService struct {
	cache      *statuscache.Cache
	vocabulary []string
	metrics    *state.Metrics
	logger     *log.Logger
}

// NewStatusService creates a StatusService.
func NewStatusService(cache *statuscache.Cache, vocabulary []string, metrics *state.Metrics, logger *log.Logger) *StatusService {
	if logger == nil {
		logger = &log.DefaultLogger
	}
	return &StatusService{
		cache:      cache,
		vocabulary: vocabulary,
		metrics:    metrics,
		logger:     logger,
	}
}

// Ingest caches the message if it matches the incident vocabulary.
// Returns the cached event, or nil when the message was filtered out.
func (s *StatusService) Ingest(input IngestStatusInput) (*domain.StatusEvent, error) {
	if strings.TrimSpace(input.RawText) == "" {
		return nil, domain.NewDomainError(domain.ErrCodeValidation, "status event text is required")
	}

	matched := MatchVocabulary(input.RawText, s.vocabulary)
	if len(matched) == 0 {
		s.logger.Debug().Str("channel", input.ChannelRef).Msg("status message dropped, no incident keywords")
		return nil, nil
	}

	postedAt := input.PostedAt
	if postedAt.IsZero() {
		postedAt = time.Now().UTC()
	}

	event := &domain.StatusEvent{
		ID:              uuid.NewString(),
		ChannelRef:      input.ChannelRef,
		RawText:         input.RawText,
		Link:            input.Link,
		PostedAt:        postedAt,
		MatchedKeywords: matched,
	}
	s.cache.Add(event)

	if s.metrics != nil {
		s.metrics.IncStatusEventsCached()
	}
	s.logger.Info().
		Str("channel", input.ChannelRef).
		Strs("keywords", matched).
		Msg("status event cached")

	return event, nil
}

// Recent lists live cached events in insertion order.
func (s *StatusService) Recent() []*domain.StatusEvent {
	return s.cache.Recent()
}
