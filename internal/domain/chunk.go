package domain

import (
	"fmt"
	"time"
)

// KnowledgeChunk represents one retrievable unit of FAQ content.
// Chunks are created at corpus sync time and replaced wholesale on resync;
// they are never mutated in place.
type KnowledgeChunk struct {
	ID        string
	Heading   string
	Text      string
	SourceRef string
	CreatedAt time.Time
}

// RankedSuggestion is a chunk paired with its similarity to a query,
// plus a truncated preview suitable for display. Transient, created per
// query, never persisted.
type RankedSuggestion struct {
	Chunk      *KnowledgeChunk
	Similarity float64
	Preview    string
}

// ValidateChunk validates a KnowledgeChunk before indexing.
func ValidateChunk(c *KnowledgeChunk) error {
	if c == nil {
		return fmt.Errorf("chunk cannot be nil")
	}
	if c.ID == "" {
		return fmt.Errorf("chunk ID is required")
	}
	if c.Text == "" {
		return fmt.Errorf("chunk text is required")
	}
	return nil
}
