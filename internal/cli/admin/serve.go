package admin

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phuslu/log"
	openaiapi "github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"
	"github.com/stackdesk/faqd/internal/api/handlers"
	"github.com/stackdesk/faqd/internal/config"
	"github.com/stackdesk/faqd/internal/index"
	"github.com/stackdesk/faqd/internal/jobs"
	"github.com/stackdesk/faqd/internal/openai"
	"github.com/stackdesk/faqd/internal/retrieval"
	"github.com/stackdesk/faqd/internal/server"
	"github.com/stackdesk/faqd/internal/service"
	"github.com/stackdesk/faqd/internal/source"
	"github.com/stackdesk/faqd/internal/state"
	"github.com/stackdesk/faqd/internal/statuscache"
	"github.com/stackdesk/faqd/internal/telemetry"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the faqd API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	cmd.Flags().Bool("no-sync", false, "Skip the initial corpus sync on startup")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := log.Logger{
		Level:      log.InfoLevel,
		TimeFormat: "15:04:05",
		Writer:     &log.ConsoleWriter{Writer: os.Stderr},
	}
	if cfg.Debug {
		logger.Level = log.DebugLevel
	}

	// Initialize Sentry with tracing if a DSN is configured
	if cfg.SentryDSN != "" {
		// Default to 10% sampling in production, 100% in development
		sampleRate := 0.1
		if cfg.Environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			TracesSampleRate: sampleRate,
			Debug:            cfg.Debug,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("telemetry init failed, continuing without tracing")
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	if !cfg.HasOpenAI() {
		return fmt.Errorf("FAQD_OPENAI_API_KEY is required")
	}
	if cfg.SyncDir == "" {
		return fmt.Errorf("FAQD_SYNC_DIR is required")
	}

	aiClient := openai.NewClientWithConfig(openai.Config{
		APIKey:         cfg.OpenAIAPIKey,
		EmbeddingModel: openaiapi.EmbeddingModel(cfg.OpenAIEmbeddingModel),
		ChatModel:      cfg.OpenAIChatModel,
	})

	vectors := index.NewVectorIndex()
	lexical := index.NewLexicalIndex()
	ranker := retrieval.NewRanker(vectors)
	statuses := statuscache.New(cfg.StatusTTL(), aiClient)
	tracker := state.NewThreadTracker(cfg.ThreadTTL())
	metrics := state.NewMetrics()

	var interactions *state.InteractionLog
	if cfg.InteractionLogPath != "" {
		interactions, err = state.OpenInteractionLog(cfg.InteractionLogPath)
		if err != nil {
			return fmt.Errorf("failed to open interaction log: %w", err)
		}
		defer interactions.Close()
	}

	chunkSource := source.NewMarkdownSource(cfg.SyncDir)
	syncSvc := service.NewSyncService(chunkSource, aiClient, vectors, lexical, &logger)

	noSync, _ := cmd.Flags().GetBool("no-sync")
	if !noSync {
		count, err := syncSvc.Sync(ctx)
		if err != nil {
			return fmt.Errorf("initial corpus sync failed: %w", err)
		}
		logger.Info().Int("chunks", count).Msg("initial corpus sync complete")
	}

	answerCfg := service.AnswerConfig{
		Policy: retrieval.AutoAnswerPolicy(
			cfg.AbsoluteThreshold,
			cfg.GapThreshold,
			cfg.SuggestionTopK,
			cfg.PreviewLength,
		),
		StatusMinSimilarity: cfg.StatusMinSimilarity,
		StatusTopK:          cfg.StatusTopK,
		IncidentKeywords:    cfg.IncidentKeywords,
	}
	renderer := service.NewRenderService(aiClient)
	answerSvc := service.NewAnswerService(ranker, statuses, aiClient, renderer, tracker, metrics, interactions, answerCfg, &logger)

	suggestPolicy := retrieval.SuggestionPolicy(cfg.SuggestionMinSimilarity, cfg.SuggestionTopK, cfg.PreviewLength)
	suggestSvc := service.NewSuggestService(ranker, vectors, lexical, aiClient, suggestPolicy, metrics, &logger)

	statusSvc := service.NewStatusService(statuses, cfg.IncidentKeywords, metrics, &logger)

	resyncWorker := jobs.NewResyncWorker(syncSvc, cfg.SyncInterval(), &logger)
	if err := resyncWorker.Start(ctx); err != nil {
		return fmt.Errorf("failed to start resync worker: %w", err)
	}

	routerCfg := server.RouterConfig{
		AskHandler:     handlers.NewAskHandler(answerSvc),
		SuggestHandler: handlers.NewSuggestHandler(suggestSvc),
		StatusHandler:  handlers.NewStatusHandler(statusSvc),
		SyncHandler:    handlers.NewSyncHandler(syncSvc),
		MetricsHandler: handlers.NewMetricsHandler(metrics),
		Logger:         &logger,
	}

	router := server.NewRouter(routerCfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	resyncWorker.Stop()

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info().Msg("server exited")
	return nil
}
