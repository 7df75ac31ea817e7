package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stackdesk/faqd/internal/cli"
	"github.com/stackdesk/faqd/internal/cli/client"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "faqctl",
		Short: "faqctl - client for the FAQ retrieval daemon",
		Long: `faqctl talks to a running faqd server.

Environment variables:
  FAQD_API_URL   API base URL (default: http://localhost:8080)`,
		Version: version,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env)")
	cli.AddHelpJSONFlag(rootCmd)

	rootCmd.AddCommand(client.AskCmd())
	rootCmd.AddCommand(client.SuggestCmd())
	rootCmd.AddCommand(client.StatusCmd())
	rootCmd.AddCommand(client.SyncCmd())
	rootCmd.AddCommand(client.MetricsCmd())

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
