package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// AskRequest represents the ask API request.
type AskRequest struct {
	Question  string `json:"question"`
	ThreadKey string `json:"thread_key,omitempty"`
}

// Suggestion represents one ranked suggestion in API responses.
type Suggestion struct {
	ChunkID    string  `json:"chunk_id"`
	Heading    string  `json:"heading"`
	SourceRef  string  `json:"source_ref"`
	Similarity float64 `json:"similarity"`
	Preview    string  `json:"preview"`
}

// StatusEvent represents one correlated status event in API responses.
type StatusEvent struct {
	ID         string   `json:"id"`
	ChannelRef string   `json:"channel_ref"`
	Text       string   `json:"text"`
	Link       string   `json:"link,omitempty"`
	PostedAt   string   `json:"posted_at"`
	Keywords   []string `json:"keywords,omitempty"`
	Similarity float64  `json:"similarity,omitempty"`
	Source     string   `json:"source,omitempty"`
}

// AskResponse represents the ask API response.
type AskResponse struct {
	Eligible     bool          `json:"eligible"`
	Reason       string        `json:"reason,omitempty"`
	Answer       string        `json:"answer,omitempty"`
	Deduplicated bool          `json:"deduplicated"`
	Chosen       *Suggestion   `json:"chosen,omitempty"`
	Candidates   []Suggestion  `json:"candidates,omitempty"`
	StatusEvents []StatusEvent `json:"status_events,omitempty"`
}

// AskCmd creates the ask command.
func AskCmd() *cobra.Command {
	var threadKey string

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question",
		Long:  "Asks a question and prints the answer decision: either a generated answer or the reason it was withheld.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runAsk(cmd, args[0], threadKey, outputJSON)
		},
	}

	cmd.Flags().StringVar(&threadKey, "thread", "", "Thread key for answer deduplication")

	return cmd
}

func runAsk(cmd *cobra.Command, question, threadKey string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Post("/v1/ask", AskRequest{Question: question, ThreadKey: threadKey})
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	var askResp AskResponse
	if err := json.Unmarshal(resp.Data, &askResp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(askResp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if askResp.Deduplicated {
		fmt.Println("Thread already answered, skipping.")
		return nil
	}

	if askResp.Eligible {
		fmt.Println(askResp.Answer)
	} else {
		fmt.Printf("No confident answer (%s).\n", askResp.Reason)
		if len(askResp.Candidates) > 0 {
			fmt.Println("\nClosest matches:")
			for _, c := range askResp.Candidates {
				fmt.Printf("  [%.2f] %s (%s)\n", c.Similarity, c.Heading, c.SourceRef)
			}
		}
	}

	if len(askResp.StatusEvents) > 0 {
		fmt.Println("\nPossibly related status updates:")
		for _, e := range askResp.StatusEvents {
			fmt.Printf("  - %s", e.Text)
			if e.Link != "" {
				fmt.Printf(" (%s)", e.Link)
			}
			fmt.Println()
		}
	}

	return nil
}
