package state

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// InteractionRecord captures one decision for offline review.
type InteractionRecord struct {
	Timestamp       time.Time `json:"ts"`
	InteractionType string    `json:"type"`
	ThreadKey       string    `json:"thread_key,omitempty"`
	Question        string    `json:"question"`
	Answered        bool      `json:"answered"`
	Reason          string    `json:"reason,omitempty"`
	TopScore        float64   `json:"top_score,omitempty"`
	Gap             float64   `json:"gap,omitempty"`
	ChunkIDs        []string  `json:"chunk_ids,omitempty"`
	StatusShown     int       `json:"status_shown,omitempty"`
}

// InteractionLog appends JSONL records to a writer. Not a durable store;
// the file is an operator-facing audit trail, lost state is acceptable.
type InteractionLog struct {
	mu sync.Mutex
	w  io.Writer
	c  io.Closer
}

// NewInteractionLog creates a log writing to w.
func NewInteractionLog(w io.Writer) *InteractionLog {
	return &InteractionLog{w: w}
}

// OpenInteractionLog opens (or creates) a JSONL file in append mode.
func OpenInteractionLog(path string) (*InteractionLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open interaction log: %w", err)
	}
	return &InteractionLog{w: f, c: f}, nil
}

// Record appends one record as a JSON line.
func (l *InteractionLog) Record(rec InteractionRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal interaction record: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.w.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to write interaction record: %w", err)
	}
	return nil
}

// Close closes the underlying file, if any.
func (l *InteractionLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.c == nil {
		return nil
	}
	return l.c.Close()
}
