package config

import (
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	OpenAIAPIKey         string `envconfig:"OPENAI_API_KEY"`
	OpenAIEmbeddingModel string `envconfig:"OPENAI_EMBEDDING_MODEL"`
	OpenAIChatModel      string `envconfig:"OPENAI_CHAT_MODEL"`

	// Auto-answer gate
	AbsoluteThreshold float64 `envconfig:"ABSOLUTE_THRESHOLD" default:"0.70" validate:"gte=0,lte=1"`
	GapThreshold      float64 `envconfig:"GAP_THRESHOLD" default:"0.15" validate:"gte=0,lte=1"`

	// Suggestion search
	SuggestionMinSimilarity float64 `envconfig:"SUGGESTION_MIN_SIMILARITY" default:"0.50" validate:"gte=0,lte=1"`
	SuggestionTopK          int     `envconfig:"SUGGESTION_TOP_K" default:"5" validate:"gte=1"`
	PreviewLength           int     `envconfig:"PREVIEW_LENGTH" default:"200" validate:"gte=1"`

	// Status cache
	StatusTTLHours      int      `envconfig:"STATUS_TTL_HOURS" default:"24" validate:"gte=1"`
	StatusMinSimilarity float64  `envconfig:"STATUS_MIN_SIMILARITY" default:"0.50" validate:"gte=0,lte=1"`
	StatusTopK          int      `envconfig:"STATUS_TOP_K" default:"2" validate:"gte=1"`
	IncidentKeywords    []string `envconfig:"INCIDENT_KEYWORDS" default:"broken,down,outage,incident,failing,failure,degraded,maintenance,unavailable,error,issue,investigating,identified,monitoring,resolved,deploy,build,ci/cd"`

	// Corpus sync
	SyncDir             string `envconfig:"SYNC_DIR"`
	SyncIntervalMinutes int    `envconfig:"SYNC_INTERVAL_MINUTES" default:"30" validate:"gte=1"`

	// Dedupe
	ThreadTTLHours int `envconfig:"THREAD_TTL_HOURS" default:"24" validate:"gte=1"`

	InteractionLogPath string `envconfig:"INTERACTION_LOG_PATH"`

	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("FAQD", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}

func (c *Config) StatusTTL() time.Duration {
	return time.Duration(c.StatusTTLHours) * time.Hour
}

func (c *Config) ThreadTTL() time.Duration {
	return time.Duration(c.ThreadTTLHours) * time.Hour
}

func (c *Config) SyncInterval() time.Duration {
	return time.Duration(c.SyncIntervalMinutes) * time.Minute
}
