package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/stackdesk/faqd/internal/api"
	"github.com/stackdesk/faqd/internal/domain"
	"github.com/stackdesk/faqd/internal/service"
)

type StatusEventService interface {
	Ingest(input service.IngestStatusInput) (*domain.StatusEvent, error)
	Recent() []*domain.StatusEvent
}

type StatusHandler struct {
	svc StatusEventService
}

func NewStatusHandler(svc StatusEventService) *StatusHandler {
	return &StatusHandler{svc: svc}
}

type IngestStatusRequest struct {
	ChannelRef string `json:"channel_ref"`
	Text       string `json:"text"`
	Link       string `json:"link"`
	PostedAt   string `json:"posted_at"`
}

type IngestStatusResponse struct {
	Cached bool                 `json:"cached"`
	Event  *StatusEventResponse `json:"event,omitempty"`
}

func statusEventToResponse(e *domain.StatusEvent) *StatusEventResponse {
	return &StatusEventResponse{
		ID:         e.ID,
		ChannelRef: e.ChannelRef,
		Text:       e.RawText,
		Link:       e.Link,
		PostedAt:   e.PostedAt.Format("2006-01-02T15:04:05Z"),
		Keywords:   e.MatchedKeywords,
	}
}

func (h *StatusHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req IngestStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var postedAt time.Time
	if req.PostedAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.PostedAt)
		if err != nil {
			api.Error(w, http.StatusBadRequest, "posted_at must be RFC 3339")
			return
		}
		postedAt = parsed
	}

	event, err := h.svc.Ingest(service.IngestStatusInput{
		ChannelRef: req.ChannelRef,
		RawText:    req.Text,
		Link:       req.Link,
		PostedAt:   postedAt,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	resp := IngestStatusResponse{Cached: event != nil}
	if event != nil {
		resp.Event = statusEventToResponse(event)
	}

	api.Success(w, http.StatusAccepted, resp)
}

func (h *StatusHandler) List(w http.ResponseWriter, r *http.Request) {
	events := h.svc.Recent()

	resp := make([]StatusEventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, *statusEventToResponse(e))
	}

	api.Success(w, http.StatusOK, resp)
}
