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

type SuggestionService interface {
	Search(ctx context.Context, query string, mode service.SearchMode) ([]domain.RankedSuggestion, error)
}

type SuggestHandler struct {
	svc SuggestionService
}

func NewSuggestHandler(svc SuggestionService) *SuggestHandler {
	return &SuggestHandler{svc: svc}
}

type SuggestRequest struct {
	Query string `json:"query"`
	Mode  string `json:"mode"`
}

type SuggestResponse struct {
	Suggestions []SuggestionResponse `json:"suggestions"`
}

func (h *SuggestHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		api.Error(w, http.StatusBadRequest, "query is required")
		return
	}

	suggestions, err := h.svc.Search(r.Context(), req.Query, service.SearchMode(req.Mode))
	if err != nil {
		api.HandleError(w, err)
		return
	}

	resp := SuggestResponse{Suggestions: make([]SuggestionResponse, 0, len(suggestions))}
	for i := range suggestions {
		resp.Suggestions = append(resp.Suggestions, *suggestionToResponse(&suggestions[i]))
	}

	api.Success(w, http.StatusOK, resp)
}
