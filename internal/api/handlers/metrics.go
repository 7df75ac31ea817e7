package handlers

import (
	"net/http"

	"github.com/stackdesk/faqd/internal/api"
	"github.com/stackdesk/faqd/internal/state"
)

type MetricsHandler struct {
	metrics *state.Metrics
}

func NewMetricsHandler(metrics *state.Metrics) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

type MetricsResponse struct {
	QuestionsAsked     int            `json:"questions_asked"`
	AnswersSent        int            `json:"answers_sent"`
	AnswersSkipped     int            `json:"answers_skipped"`
	SkippedByReason    map[string]int `json:"skipped_by_reason"`
	SuggestionsShown   int            `json:"suggestions_shown"`
	StatusEventsCached int            `json:"status_events_cached"`
	CorrelationsShown  int            `json:"correlations_shown"`
	Errors             int            `json:"errors"`
}

func (h *MetricsHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap := h.metrics.Snapshot()

	api.Success(w, http.StatusOK, MetricsResponse{
		QuestionsAsked:     snap.QuestionsAsked,
		AnswersSent:        snap.AnswersSent,
		AnswersSkipped:     snap.AnswersSkipped,
		SkippedByReason:    snap.SkippedByReason,
		SuggestionsShown:   snap.SuggestionsShown,
		StatusEventsCached: snap.StatusEventsCached,
		CorrelationsShown:  snap.CorrelationsShown,
		Errors:             snap.Errors,
	})
}
