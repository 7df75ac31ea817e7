package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/stackdesk/faqd/internal/api"
	"github.com/stackdesk/faqd/internal/domain"
	"github.com/stackdesk/faqd/internal/service"
)

type AskService interface {
	Ask(ctx context.Context, input service.AskInput) (*service.AskOutput, error)
}

type AskHandler struct {
	svc AskService
}

func NewAskHandler(svc AskService) *AskHandler {
	return &AskHandler{svc: svc}
}

type AskRequest struct {
	Question  string `json:"question"`
	ThreadKey string `json:"thread_key"`
}

type SuggestionResponse struct {
	ChunkID    string  `json:"chunk_id"`
	Heading    string  `json:"heading"`
	SourceRef  string  `json:"source_ref"`
	Similarity float64 `json:"similarity"`
	Preview    string  `json:"preview"`
}

type StatusEventResponse struct {
	ID         string   `json:"id"`
	ChannelRef string   `json:"channel_ref"`
	Text       string   `json:"text"`
	Link       string   `json:"link,omitempty"`
	PostedAt   string   `json:"posted_at"`
	Keywords   []string `json:"keywords,omitempty"`
	Similarity float64  `json:"similarity,omitempty"`
	Source     string   `json:"source,omitempty"`
}

type AskResponse struct {
	Eligible     bool                  `json:"eligible"`
	Reason       string                `json:"reason,omitempty"`
	Answer       string                `json:"answer,omitempty"`
	Deduplicated bool                  `json:"deduplicated"`
	Chosen       *SuggestionResponse   `json:"chosen,omitempty"`
	Candidates   []SuggestionResponse  `json:"candidates,omitempty"`
	StatusEvents []StatusEventResponse `json:"status_events,omitempty"`
}

func suggestionToResponse(s *domain.RankedSuggestion) *SuggestionResponse {
	return &SuggestionResponse{
		ChunkID:    s.Chunk.ID,
		Heading:    s.Chunk.Heading,
		SourceRef:  s.Chunk.SourceRef,
		Similarity: s.Similarity,
		Preview:    s.Preview,
	}
}

func correlatedToResponse(c domain.CorrelatedEvent) StatusEventResponse {
	return StatusEventResponse{
		ID:         c.Event.ID,
		ChannelRef: c.Event.ChannelRef,
		Text:       c.Event.RawText,
		Link:       c.Event.Link,
		PostedAt:   c.Event.PostedAt.Format("2006-01-02T15:04:05Z"),
		Keywords:   c.Event.MatchedKeywords,
		Similarity: c.Similarity,
		Source:     string(c.Source),
	}
}

func askToResponse(out *service.AskOutput) *AskResponse {
	resp := &AskResponse{
		Answer:       out.Answer,
		Deduplicated: out.Deduplicated,
	}

	decision := out.Decision
	if decision == nil {
		return resp
	}

	resp.Eligible = decision.Eligible
	resp.Reason = string(decision.Reason)
	if decision.Chosen != nil {
		resp.Chosen = suggestionToResponse(decision.Chosen)
	}
	for i := range decision.Candidates {
		resp.Candidates = append(resp.Candidates, *suggestionToResponse(&decision.Candidates[i]))
	}
	for _, c := range decision.CorrelatedEvents {
		resp.StatusEvents = append(resp.StatusEvents, correlatedToResponse(c))
	}
	return resp
}

func (h *AskHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		api.Error(w, http.StatusBadRequest, "question is required")
		return
	}

	out, err := h.svc.Ask(r.Context(), service.AskInput{
		Question:  req.Question,
		ThreadKey: req.ThreadKey,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, askToResponse(out))
}
