package handlers

import (
	"context"
	"net/http"

	"github.com/stackdesk/faqd/internal/api"
)

type CorpusSyncService interface {
	Sync(ctx context.Context) (int, error)
}

type SyncHandler struct {
	svc CorpusSyncService
}

func NewSyncHandler(svc CorpusSyncService) *SyncHandler {
	return &SyncHandler{svc: svc}
}

type SyncResponse struct {
	Chunks int `json:"chunks"`
}

func (h *SyncHandler) Sync(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.Sync(r.Context())
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, SyncResponse{Chunks: count})
}
