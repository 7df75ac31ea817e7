package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// MetricsResponse represents the metrics API response.
type MetricsResponse struct {
	QuestionsAsked     int            `json:"questions_asked"`
	AnswersSent        int            `json:"answers_sent"`
	AnswersSkipped     int            `json:"answers_skipped"`
	SkippedByReason    map[string]int `json:"skipped_by_reason"`
	SuggestionsShown   int            `json:"suggestions_shown"`
	StatusEventsCached int            `json:"status_events_cached"`
	CorrelationsShown  int            `json:"correlations_shown"`
	Errors             int            `json:"errors"`
}

// MetricsCmd creates the metrics command.
func MetricsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Show engine counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runMetrics(cmd, outputJSON)
		},
	}

	return cmd
}

func runMetrics(cmd *cobra.Command, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Get("/v1/metrics")
	if err != nil {
		return fmt.Errorf("metrics failed: %w", err)
	}

	var metricsResp MetricsResponse
	if err := json.Unmarshal(resp.Data, &metricsResp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(metricsResp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Questions asked:      %d\n", metricsResp.QuestionsAsked)
	fmt.Printf("Answers sent:         %d\n", metricsResp.AnswersSent)
	fmt.Printf("Answers skipped:      %d\n", metricsResp.AnswersSkipped)
	for reason, count := range metricsResp.SkippedByReason {
		fmt.Printf("  %s: %d\n", reason, count)
	}
	fmt.Printf("Suggestions shown:    %d\n", metricsResp.SuggestionsShown)
	fmt.Printf("Status events cached: %d\n", metricsResp.StatusEventsCached)
	fmt.Printf("Correlations shown:   %d\n", metricsResp.CorrelationsShown)
	fmt.Printf("Errors:               %d\n", metricsResp.Errors)
	return nil
}
