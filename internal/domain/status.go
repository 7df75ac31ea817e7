package domain

import "time"

// StatusEvent is one announcement from a monitored status channel.
// Embedding stays nil until the first semantic search touches the event;
// the status cache is the sole mutator of that field.
type StatusEvent struct {
	ID              string
	ChannelRef      string
	RawText         string
	Link            string
	PostedAt        time.Time
	MatchedKeywords []string
	Embedding       []float32
}

// CorrelationSource says which search pass produced a correlated event.
type CorrelationSource string

const (
	CorrelationKeyword  CorrelationSource = "keyword"
	CorrelationSemantic CorrelationSource = "semantic"
)

// CorrelatedEvent is a status event attached to an answer decision,
// with the similarity that surfaced it. Keyword-pass hits carry
// similarity 1.0 since no vector comparison was made.
type CorrelatedEvent struct {
	Event      *StatusEvent
	Similarity float64
	Source     CorrelationSource
}
