package domain

// DecisionReason explains the outcome of the confidence gate.
// The rejection reasons are normal decision outcomes, not errors.
type DecisionReason string

const (
	// ReasonConfident means both the absolute and the gap threshold passed.
	ReasonConfident DecisionReason = "confident"
	// ReasonNoMatch means retrieval produced no candidates at all.
	ReasonNoMatch DecisionReason = "no_match"
	// ReasonBelowAbsoluteThreshold means the top candidate scored under the
	// absolute similarity floor.
	ReasonBelowAbsoluteThreshold DecisionReason = "below_absolute_threshold"
	// ReasonAmbiguousTop2 means the top two candidates were too close to
	// call (gap under the configured margin).
	ReasonAmbiguousTop2 DecisionReason = "ambiguous_top2"
)

// AnswerDecision is the engine's verdict for one question: whether an
// auto-answer is allowed, which chunk won, and any status events that
// correlate with the question. One decision per question, transient.
type AnswerDecision struct {
	Eligible         bool
	Chosen           *RankedSuggestion
	Candidates       []RankedSuggestion
	CorrelatedEvents []CorrelatedEvent
	Reason           DecisionReason
}
