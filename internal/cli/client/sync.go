package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// SyncResponse represents the sync API response.
type SyncResponse struct {
	Chunks int `json:"chunks"`
}

// SyncCmd creates the sync command.
func SyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Trigger a corpus resync",
		Long:  "Asks the server to reload, re-chunk and re-embed its corpus directory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runSyncTrigger(cmd, outputJSON)
		},
	}

	return cmd
}

func runSyncTrigger(cmd *cobra.Command, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Post("/v1/sync", nil)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	var syncResp SyncResponse
	if err := json.Unmarshal(resp.Data, &syncResp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(syncResp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Synced %d chunks.\n", syncResp.Chunks)
	return nil
}
