package state

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Metrics tracks engine counters. All methods are safe for concurrent use.
type Metrics struct {
	mu sync.Mutex

	QuestionsAsked     int
	AnswersSent        int
	AnswersSkipped     int
	SkippedByReason    map[string]int
	SuggestionsShown   int
	StatusEventsCached int
	CorrelationsShown  int
	Errors             int
}

// NewMetrics creates a zeroed Metrics.
func NewMetrics() *Metrics {
	return &Metrics{SkippedByReason: make(map[string]int)}
}

// IncQuestions increments the questions-asked counter.
func (m *Metrics) IncQuestions() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QuestionsAsked++
}

// IncAnswersSent increments the answers-sent counter.
func (m *Metrics) IncAnswersSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AnswersSent++
}

// IncAnswersSkipped increments the answers-skipped counter for a reason.
func (m *Metrics) IncAnswersSkipped(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AnswersSkipped++
	m.SkippedByReason[reason]++
}

// AddSuggestionsShown adds to the suggestions-shown counter.
func (m *Metrics) AddSuggestionsShown(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SuggestionsShown += count
}

// IncStatusEventsCached increments the status-events-cached counter.
func (m *Metrics) IncStatusEventsCached() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StatusEventsCached++
}

// AddCorrelationsShown adds to the correlations-shown counter.
func (m *Metrics) AddCorrelationsShown(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CorrelationsShown += count
}

// IncErrors increments the error counter.
func (m *Metrics) IncErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors++
}

// Snapshot returns a copy of the current counters.
func (m *Metrics) Snapshot() Metrics {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := Metrics{
		QuestionsAsked:     m.QuestionsAsked,
		AnswersSent:        m.AnswersSent,
		AnswersSkipped:     m.AnswersSkipped,
		SkippedByReason:    make(map[string]int, len(m.SkippedByReason)),
		SuggestionsShown:   m.SuggestionsShown,
		StatusEventsCached: m.StatusEventsCached,
		CorrelationsShown:  m.CorrelationsShown,
		Errors:             m.Errors,
	}
	for reason, count := range m.SkippedByReason {
		snap.SkippedByReason[reason] = count
	}
	return snap
}

// Summary renders a human-readable counter report.
func (m *Metrics) Summary() string {
	snap := m.Snapshot()

	var b strings.Builder
	fmt.Fprintf(&b, "Engine metrics:\n")
	fmt.Fprintf(&b, "  Questions asked: %d\n", snap.QuestionsAsked)
	fmt.Fprintf(&b, "  Answers sent: %d\n", snap.AnswersSent)
	fmt.Fprintf(&b, "  Answers skipped: %d\n", snap.AnswersSkipped)

	reasons := make([]string, 0, len(snap.SkippedByReason))
	for reason := range snap.SkippedByReason {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		fmt.Fprintf(&b, "    %s: %d\n", reason, snap.SkippedByReason[reason])
	}

	fmt.Fprintf(&b, "  Suggestions shown: %d\n", snap.SuggestionsShown)
	fmt.Fprintf(&b, "  Status events cached: %d\n", snap.StatusEventsCached)
	fmt.Fprintf(&b, "  Correlations shown: %d\n", snap.CorrelationsShown)
	fmt.Fprintf(&b, "  Errors: %d", snap.Errors)
	return b.String()
}
