package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stackdesk/faqd/internal/cli"
	"github.com/stackdesk/faqd/internal/cli/admin"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "faqd",
		Short: "FAQ retrieval daemon",
		Long:  "faqd serves confidence-gated FAQ answers, suggestion search and status-event correlation over HTTP",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(admin.ServeCmd())
	rootCmd.AddCommand(admin.SyncCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
