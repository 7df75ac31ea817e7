package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stackdesk/faqd/internal/domain"
	"github.com/stackdesk/faqd/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSuggestionService struct {
	mock.Mock
}

func (m *MockSuggestionService) Search(ctx context.Context, query string, mode service.SearchMode) ([]domain.RankedSuggestion, error) {
	args := m.Called(ctx, query, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RankedSuggestion), args.Error(1)
}

func TestSuggestHandler_Suggest(t *testing.T) {
	t.Run("returns ranked suggestions", func(t *testing.T) {
		svc := new(MockSuggestionService)
		handler := NewSuggestHandler(svc)

		svc.On("Search", mock.Anything, "vpn setup", service.SearchModeSemantic).Return([]domain.RankedSuggestion{
			{
				Chunk:      &domain.KnowledgeChunk{ID: "faq.md#L10", Heading: "VPN", SourceRef: "faq.md#L10"},
				Similarity: 0.82,
				Preview:    "Install the client and sign in.",
			},
		}, nil)

		body, _ := json.Marshal(SuggestRequest{Query: "vpn setup", Mode: "semantic"})
		req := httptest.NewRequest("POST", "/v1/suggest", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Suggest(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp SuggestResponse
		decodeData(t, rec.Body, &resp)
		require.Len(t, resp.Suggestions, 1)
		assert.Equal(t, "faq.md#L10", resp.Suggestions[0].ChunkID)
		assert.InDelta(t, 0.82, resp.Suggestions[0].Similarity, 1e-9)
		svc.AssertExpectations(t)
	})

	t.Run("mode is passed through", func(t *testing.T) {
		svc := new(MockSuggestionService)
		handler := NewSuggestHandler(svc)

		svc.On("Search", mock.Anything, "deploy", service.SearchModeHybrid).Return([]domain.RankedSuggestion{}, nil)

		body, _ := json.Marshal(SuggestRequest{Query: "deploy", Mode: "hybrid"})
		req := httptest.NewRequest("POST", "/v1/suggest", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Suggest(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("no matches yields an empty list", func(t *testing.T) {
		svc := new(MockSuggestionService)
		handler := NewSuggestHandler(svc)

		svc.On("Search", mock.Anything, "zzz", mock.Anything).Return([]domain.RankedSuggestion{}, nil)

		body, _ := json.Marshal(SuggestRequest{Query: "zzz"})
		req := httptest.NewRequest("POST", "/v1/suggest", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Suggest(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"suggestions":[]`)
	})

	t.Run("blank query is a 400", func(t *testing.T) {
		handler := NewSuggestHandler(new(MockSuggestionService))

		body, _ := json.Marshal(SuggestRequest{Query: " "})
		req := httptest.NewRequest("POST", "/v1/suggest", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Suggest(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("embedding failure maps to 502", func(t *testing.T) {
		svc := new(MockSuggestionService)
		handler := NewSuggestHandler(svc)

		svc.On("Search", mock.Anything, "vpn", mock.Anything).Return(nil, domain.NewEmbeddingError(assert.AnError))

		body, _ := json.Marshal(SuggestRequest{Query: "vpn"})
		req := httptest.NewRequest("POST", "/v1/suggest", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Suggest(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}
