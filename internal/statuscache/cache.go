// Package statuscache keeps a bounded-lifetime, hybrid-searchable store of
// recent status announcements. Events expire after a TTL, can be filtered
// by keyword, and support semantic search with lazily computed embeddings.
package statuscache

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/stackdesk/faqd/internal/domain"
	"github.com/stackdesk/faqd/internal/index"
)

// EmbeddingProvider supplies embeddings for lazily-embedded events.
type EmbeddingProvider interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// Cache is the in-memory status event store. A single mutex guards the
// event collection; Add, eviction sweeps and lazy-embedding writes never
// race (an event added mid-sweep with a fresh timestamp survives the
// sweep, since the sweep runs atomically under the lock).
type Cache struct {
	mu       sync.Mutex
	events   []*domain.StatusEvent
	ttl      time.Duration
	now      func() time.Time
	provider EmbeddingProvider
}

// New creates a Cache with the given TTL and embedding provider, using
// wall-clock time.
func New(ttl time.Duration, provider EmbeddingProvider) *Cache {
	return NewWithClock(ttl, provider, time.Now)
}

// NewWithClock creates a Cache with an injected clock. Tests use this to
// make TTL expiry deterministic.
func NewWithClock(ttl time.Duration, provider EmbeddingProvider, now func() time.Time) *Cache {
	return &Cache{ttl: ttl, provider: provider, now: now}
}

// Add inserts an event. The embedding field stays nil until the first
// semantic search touches the event. Keyword matching is a search filter,
// not an admission gate: events with no matched keywords are retained
// until TTL expiry like any other.
func (c *Cache) Add(event *domain.StatusEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

// EvictExpired removes every event older than the TTL. An event exactly at
// TTL age is kept; eviction requires now - postedAt > ttl.
func (c *Cache) EvictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictLocked(c.now())
}

func (c *Cache) evictLocked(now time.Time) {
	live := c.events[:0]
	for _, e := range c.events {
		if now.Sub(e.PostedAt) <= c.ttl {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(c.events); i++ {
		c.events[i] = nil
	}
	c.events = live
}

// SearchByKeyword returns all live events matching any of the terms,
// case-insensitively, checking both the stored matched keywords and a
// fresh scan of the raw text. Matches keep insertion order.
func (c *Cache) SearchByKeyword(terms []string) []*domain.StatusEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictLocked(c.now())

	lowered := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			lowered = append(lowered, t)
		}
	}
	if len(lowered) == 0 {
		return []*domain.StatusEvent{}
	}

	matches := make([]*domain.StatusEvent, 0, len(c.events))
	for _, e := range c.events {
		if eventMatchesAny(e, lowered) {
			matches = append(matches, e)
		}
	}
	return matches
}

func eventMatchesAny(e *domain.StatusEvent, loweredTerms []string) bool {
	rawLower := strings.ToLower(e.RawText)
	for _, term := range loweredTerms {
		if strings.Contains(rawLower, term) {
			return true
		}
		for _, kw := range e.MatchedKeywords {
			if strings.Contains(strings.ToLower(kw), term) {
				return true
			}
		}
	}
	return false
}

// SearchSemantic ranks live events by cosine similarity against the query
// vector, filters by minSimilarity and truncates to topK. Results are
// sorted by similarity descending; ties prefer the newer event. Embeddings
// are computed on first use and cached on the event (write-once; a
// concurrent duplicate computation stores an equal value, so last write
// wins harmlessly). A provider failure surfaces as an EMBEDDING_FAILURE
// domain error and no partial ranking is returned.
func (c *Cache) SearchSemantic(ctx context.Context, query []float32, minSimilarity float64, topK int) ([]domain.CorrelatedEvent, error) {
	c.mu.Lock()
	c.evictLocked(c.now())
	live := make([]*domain.StatusEvent, len(c.events))
	copy(live, c.events)
	c.mu.Unlock()

	if len(live) == 0 || topK <= 0 {
		return []domain.CorrelatedEvent{}, nil
	}

	// Embed outside the lock; the provider call may be slow and eviction
	// or ingestion must not stall behind it.
	for _, e := range live {
		if c.embeddingOf(e) != nil {
			continue
		}
		vec, err := c.provider.GenerateEmbedding(ctx, e.RawText)
		if err != nil {
			return nil, domain.NewEmbeddingError(err)
		}
		c.storeEmbedding(e, vec)
	}

	results := make([]domain.CorrelatedEvent, 0, len(live))
	for _, e := range live {
		vec := c.embeddingOf(e)
		if vec == nil {
			continue
		}
		sim := index.CosineSimilarity(query, vec)
		if sim >= minSimilarity {
			results = append(results, domain.CorrelatedEvent{
				Event:      e,
				Similarity: sim,
				Source:     domain.CorrelationSemantic,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		return results[i].Event.PostedAt.After(results[j].Event.PostedAt)
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

func (c *Cache) embeddingOf(e *domain.StatusEvent) []float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return e.Embedding
}

func (c *Cache) storeEmbedding(e *domain.StatusEvent, vec []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e.Embedding = vec
}

// Recent returns all live events in insertion order.
func (c *Cache) Recent() []*domain.StatusEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictLocked(c.now())
	out := make([]*domain.StatusEvent, len(c.events))
	copy(out, c.events)
	return out
}

// Size returns the number of live events.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictLocked(c.now())
	return len(c.events)
}
