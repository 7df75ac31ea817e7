package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/stackdesk/faqd/internal/domain"
)

// systemPrompt constrains the model to the retrieved context only.
const systemPrompt = `You are a helpful FAQ assistant that answers questions based ONLY on the provided context from the team FAQ.

Rules:
1. Answer ONLY using information from the provided context
2. If the context doesn't contain the answer, say "I don't have information about that in the FAQ"
3. Keep answers concise (2-6 bullet points)
4. Always include a "Sources:" section at the end listing the source references
5. Use a helpful, professional tone
6. Do not make up or infer information not in the context`

// ChatClient defines the interface for grounded answer generation
type ChatClient interface {
	GenerateAnswer(ctx context.Context, system, user string) (string, error)
}

// RenderService turns a gated decision's candidates into generated answer
// text. It is a collaborator of the engine, not part of it: the decision is
// made before rendering and a render failure never flips eligibility.
type RenderService struct {
	chat ChatClient
}

// NewRenderService creates a RenderService.
func NewRenderService(chat ChatClient) *RenderService {
	return &RenderService{chat: chat}
}

// RenderAnswer builds the grounded prompt and calls the chat model.
func (s *RenderService) RenderAnswer(ctx context.Context, question string, candidates []domain.RankedSuggestion) (string, error) {
	answer, err := s.chat.GenerateAnswer(ctx, systemPrompt, buildUserPrompt(question, candidates))
	if err != nil {
		return "", domain.NewRenderError(err)
	}
	if strings.TrimSpace(answer) == "" {
		return "", domain.NewDomainError(domain.ErrCodeRender, "model returned an empty answer")
	}
	return answer, nil
}

func buildUserPrompt(question string, candidates []domain.RankedSuggestion) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n\nContext from FAQ:\n", question)

	for i, c := range candidates {
		fmt.Fprintf(&b, "[Context %d]\n", i+1)
		fmt.Fprintf(&b, "Heading: %s\n", c.Chunk.Heading)
		fmt.Fprintf(&b, "Content: %s\n", c.Chunk.Text)
		fmt.Fprintf(&b, "Source: %s\n\n", c.Chunk.SourceRef)
	}

	b.WriteString(`Please answer the question using only the context provided above. Format your answer as 2-6 bullet points, and include a "Sources:" section at the end with the relevant source references.`)
	return b.String()
}
