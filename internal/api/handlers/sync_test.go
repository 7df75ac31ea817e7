package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stackdesk/faqd/internal/domain"
	"github.com/stackdesk/faqd/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCorpusSyncService struct {
	mock.Mock
}

func (m *MockCorpusSyncService) Sync(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func TestSyncHandler_Sync(t *testing.T) {
	t.Run("reports the chunk count", func(t *testing.T) {
		svc := new(MockCorpusSyncService)
		handler := NewSyncHandler(svc)

		svc.On("Sync", mock.Anything).Return(42, nil)

		req := httptest.NewRequest("POST", "/v1/sync", nil)
		rec := httptest.NewRecorder()

		handler.Sync(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp SyncResponse
		decodeData(t, rec.Body, &resp)
		assert.Equal(t, 42, resp.Chunks)
		svc.AssertExpectations(t)
	})

	t.Run("embedding failure maps to 502", func(t *testing.T) {
		svc := new(MockCorpusSyncService)
		handler := NewSyncHandler(svc)

		svc.On("Sync", mock.Anything).Return(0, domain.NewEmbeddingError(assert.AnError))

		req := httptest.NewRequest("POST", "/v1/sync", nil)
		rec := httptest.NewRecorder()

		handler.Sync(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestMetricsHandler_Get(t *testing.T) {
	metrics := state.NewMetrics()
	metrics.IncQuestions()
	metrics.IncAnswersSent()
	metrics.IncAnswersSkipped("no_match")

	handler := NewMetricsHandler(metrics)

	req := httptest.NewRequest("GET", "/v1/metrics", nil)
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp MetricsResponse
	decodeData(t, rec.Body, &resp)
	assert.Equal(t, 1, resp.QuestionsAsked)
	assert.Equal(t, 1, resp.AnswersSent)
	assert.Equal(t, 1, resp.AnswersSkipped)
	assert.Equal(t, 1, resp.SkippedByReason["no_match"])
}
