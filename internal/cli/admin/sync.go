package admin

import (
	"context"
	"fmt"
	"os"

	"github.com/phuslu/log"
	openaiapi "github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"
	"github.com/stackdesk/faqd/internal/config"
	"github.com/stackdesk/faqd/internal/index"
	"github.com/stackdesk/faqd/internal/openai"
	"github.com/stackdesk/faqd/internal/service"
	"github.com/stackdesk/faqd/internal/source"
)

// SyncCmd returns the sync command, a one-shot corpus load used to verify
// a document directory before pointing the server at it.
func SyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync [dir]",
		Short: "Load and embed a corpus directory once",
		Long:  "Loads, chunks and embeds a markdown corpus directory without starting the server.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSync,
	}

	return cmd
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dir := cfg.SyncDir
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		return fmt.Errorf("no corpus directory given (set FAQD_SYNC_DIR or pass one)")
	}

	if !cfg.HasOpenAI() {
		return fmt.Errorf("FAQD_OPENAI_API_KEY is required")
	}

	logger := log.Logger{
		Level:      log.InfoLevel,
		TimeFormat: "15:04:05",
		Writer:     &log.ConsoleWriter{Writer: os.Stderr},
	}

	aiClient := openai.NewClientWithConfig(openai.Config{
		APIKey:         cfg.OpenAIAPIKey,
		EmbeddingModel: openaiapi.EmbeddingModel(cfg.OpenAIEmbeddingModel),
		ChatModel:      cfg.OpenAIChatModel,
	})

	vectors := index.NewVectorIndex()
	lexical := index.NewLexicalIndex()
	syncSvc := service.NewSyncService(source.NewMarkdownSource(dir), aiClient, vectors, lexical, &logger)

	count, err := syncSvc.Sync(context.Background())
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	fmt.Printf("Synced %d chunks from %s\n", count, dir)
	return nil
}
