package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// SuggestRequest represents the suggest API request.
type SuggestRequest struct {
	Query string `json:"query"`
	Mode  string `json:"mode,omitempty"`
}

// SuggestResponse represents the suggest API response.
type SuggestResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}

// SuggestCmd creates the suggest command.
func SuggestCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "suggest <query>",
		Short: "Search the FAQ",
		Long:  "Searches the FAQ corpus and prints ranked suggestions.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runSuggest(cmd, args[0], mode, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "Search mode: semantic (default) or hybrid")

	return cmd
}

func runSuggest(cmd *cobra.Command, query, mode string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Post("/v1/suggest", SuggestRequest{Query: query, Mode: mode})
	if err != nil {
		return fmt.Errorf("suggest failed: %w", err)
	}

	var suggestResp SuggestResponse
	if err := json.Unmarshal(resp.Data, &suggestResp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(suggestResp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(suggestResp.Suggestions) == 0 {
		fmt.Println("No matches found.")
		return nil
	}

	for i, s := range suggestResp.Suggestions {
		fmt.Printf("%d. [%.2f] %s\n", i+1, s.Similarity, s.Heading)
		fmt.Printf("   %s\n", s.Preview)
		fmt.Printf("   %s\n", s.SourceRef)
	}

	return nil
}
