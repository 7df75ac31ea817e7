package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stackdesk/faqd/internal/domain"
	"github.com/stackdesk/faqd/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAskService struct {
	mock.Mock
}

func (m *MockAskService) Ask(ctx context.Context, input service.AskInput) (*service.AskOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AskOutput), args.Error(1)
}

func decodeData(t *testing.T, body *bytes.Buffer, out interface{}) {
	t.Helper()
	var envelope struct {
		Data  json.RawMessage `json:"data"`
		Error string          `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestAskHandler_Ask(t *testing.T) {
	postedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("returns the decision with answer and status events", func(t *testing.T) {
		svc := new(MockAskService)
		handler := NewAskHandler(svc)

		chunk := &domain.KnowledgeChunk{ID: "faq.md#L1", Heading: "Deploys", SourceRef: "faq.md#L1"}
		svc.On("Ask", mock.Anything, service.AskInput{Question: "How do I deploy?", ThreadKey: "t1"}).Return(&service.AskOutput{
			Decision: &domain.AnswerDecision{
				Eligible: true,
				Reason:   domain.ReasonConfident,
				Chosen:   &domain.RankedSuggestion{Chunk: chunk, Similarity: 0.91, Preview: "Run the pipeline."},
				Candidates: []domain.RankedSuggestion{
					{Chunk: chunk, Similarity: 0.91, Preview: "Run the pipeline."},
				},
				CorrelatedEvents: []domain.CorrelatedEvent{
					{
						Event: &domain.StatusEvent{
							ID:              "e1",
							ChannelRef:      "status",
							RawText:         "Deploys are down",
							PostedAt:        postedAt,
							MatchedKeywords: []string{"down"},
						},
						Similarity: 1.0,
						Source:     domain.CorrelationKeyword,
					},
				},
			},
			Answer: "Run the deploy pipeline.",
		}, nil)

		body, _ := json.Marshal(AskRequest{Question: "How do I deploy?", ThreadKey: "t1"})
		req := httptest.NewRequest("POST", "/v1/ask", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Ask(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp AskResponse
		decodeData(t, rec.Body, &resp)
		assert.True(t, resp.Eligible)
		assert.Equal(t, "confident", resp.Reason)
		assert.Equal(t, "Run the deploy pipeline.", resp.Answer)
		require.NotNil(t, resp.Chosen)
		assert.Equal(t, "faq.md#L1", resp.Chosen.ChunkID)
		require.Len(t, resp.StatusEvents, 1)
		assert.Equal(t, "keyword", resp.StatusEvents[0].Source)
		assert.Equal(t, 1.0, resp.StatusEvents[0].Similarity)
		svc.AssertExpectations(t)
	})

	t.Run("withheld answer still returns 200", func(t *testing.T) {
		svc := new(MockAskService)
		handler := NewAskHandler(svc)

		svc.On("Ask", mock.Anything, mock.Anything).Return(&service.AskOutput{
			Decision: &domain.AnswerDecision{
				Eligible: false,
				Reason:   domain.ReasonAmbiguousTop2,
			},
		}, nil)

		body, _ := json.Marshal(AskRequest{Question: "Which env?"})
		req := httptest.NewRequest("POST", "/v1/ask", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Ask(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp AskResponse
		decodeData(t, rec.Body, &resp)
		assert.False(t, resp.Eligible)
		assert.Equal(t, "ambiguous_top2", resp.Reason)
		assert.Empty(t, resp.Answer)
	})

	t.Run("missing question is a 400", func(t *testing.T) {
		handler := NewAskHandler(new(MockAskService))

		body, _ := json.Marshal(AskRequest{Question: "  "})
		req := httptest.NewRequest("POST", "/v1/ask", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Ask(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid body is a 400", func(t *testing.T) {
		handler := NewAskHandler(new(MockAskService))

		req := httptest.NewRequest("POST", "/v1/ask", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()

		handler.Ask(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("embedding failure maps to 502", func(t *testing.T) {
		svc := new(MockAskService)
		handler := NewAskHandler(svc)

		svc.On("Ask", mock.Anything, mock.Anything).Return(nil, domain.NewEmbeddingError(assert.AnError))

		body, _ := json.Marshal(AskRequest{Question: "anything"})
		req := httptest.NewRequest("POST", "/v1/ask", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Ask(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}
