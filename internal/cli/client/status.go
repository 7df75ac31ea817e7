package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// IngestStatusRequest represents the status ingest API request.
type IngestStatusRequest struct {
	ChannelRef string `json:"channel_ref"`
	Text       string `json:"text"`
	Link       string `json:"link,omitempty"`
	PostedAt   string `json:"posted_at,omitempty"`
}

// IngestStatusResponse represents the status ingest API response.
type IngestStatusResponse struct {
	Cached bool         `json:"cached"`
	Event  *StatusEvent `json:"event,omitempty"`
}

// StatusCmd creates the status command group.
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Manage status events",
		Long:  "Posts status-channel messages for correlation and lists the cached ones.",
	}

	cmd.AddCommand(statusPostCmd())
	cmd.AddCommand(statusListCmd())

	return cmd
}

func statusPostCmd() *cobra.Command {
	var (
		channel string
		link    string
	)

	cmd := &cobra.Command{
		Use:   "post <text>",
		Short: "Post a status message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runStatusPost(cmd, args[0], channel, link, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&channel, "channel", "c", "", "Status channel reference")
	cmd.Flags().StringVar(&link, "link", "", "Permalink to the original message")

	return cmd
}

func runStatusPost(cmd *cobra.Command, text, channel, link string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Post("/v1/status/events", IngestStatusRequest{
		ChannelRef: channel,
		Text:       text,
		Link:       link,
	})
	if err != nil {
		return fmt.Errorf("status post failed: %w", err)
	}

	var ingestResp IngestStatusResponse
	if err := json.Unmarshal(resp.Data, &ingestResp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(ingestResp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if ingestResp.Cached {
		fmt.Printf("Cached (keywords: %v)\n", ingestResp.Event.Keywords)
	} else {
		fmt.Println("Dropped: no incident keywords matched.")
	}

	return nil
}

func statusListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cached status events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runStatusList(cmd, outputJSON)
		},
	}

	return cmd
}

func runStatusList(cmd *cobra.Command, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Get("/v1/status/events")
	if err != nil {
		return fmt.Errorf("status list failed: %w", err)
	}

	var events []StatusEvent
	if err := json.Unmarshal(resp.Data, &events); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(events, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(events) == 0 {
		fmt.Println("No live status events.")
		return nil
	}

	for _, e := range events {
		fmt.Printf("[%s] %s\n", e.PostedAt, e.Text)
		if e.Link != "" {
			fmt.Printf("  %s\n", e.Link)
		}
	}

	return nil
}
