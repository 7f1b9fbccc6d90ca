// Package config loads collector settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Backend names for the tabular destination.
const (
	BackendSheets   = "sheets"
	BackendPostgres = "postgres"
)

// AI provider names.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderNone   = "none"
)

type Config struct {
	// Destination
	StoreBackend    string
	ResultsSheetURL string
	CredentialsJSON []byte // Google service-account key
	DatabaseDSN     string
	WorksheetName   string

	// AI fallback classification
	AIProvider    string
	OpenAIAPIKey  string
	OpenAIModel   string
	GeminiAPIKey  string
	GeminiModel   string
	MaxAIRequests int // daily cap, 0 = unlimited

	// Ingestion
	SourcesPath      string
	MaxPerSource     int // entries per feed, 0 = all
	FetchConcurrency int
	RequestTimeout   time.Duration

	// Scheduling and reporting
	RunInterval    time.Duration // 0 = run once and exit
	TelegramToken  string
	TelegramChatID string

	Debug bool
}

// Load reads configuration from a .env file when present, then the process
// environment, and validates the result.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		StoreBackend:     getEnvOrDefault("STORE_BACKEND", BackendSheets),
		ResultsSheetURL:  os.Getenv("RESULTS_SHEET_URL"),
		DatabaseDSN:      os.Getenv("DATABASE_DSN"),
		WorksheetName:    getEnvOrDefault("WORKSHEET_NAME", "Results"),
		AIProvider:       getEnvOrDefault("AI_PROVIDER", ProviderOpenAI),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:      os.Getenv("OPENAI_MODEL"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      os.Getenv("GEMINI_MODEL"),
		MaxAIRequests:    getEnvIntOrDefault("MAX_AI_REQUESTS", 0),
		SourcesPath:      getEnvOrDefault("FEEDS_CONFIG_PATH", "configs/feeds.yaml"),
		MaxPerSource:     getEnvIntOrDefault("MAX_PER_SOURCE", 0),
		FetchConcurrency: getEnvIntOrDefault("FETCH_CONCURRENCY", 5),
		RequestTimeout:   30 * time.Second,
		TelegramToken:    os.Getenv("TELEGRAM_TOKEN"),
		TelegramChatID:   os.Getenv("TELEGRAM_CHAT_ID"),
		Debug:            os.Getenv("DEBUG") == "true",
	}

	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("RUN_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.RunInterval = d
		}
	}

	if err := cfg.loadCredentials(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// loadCredentials takes the service-account key either inline (GSHEET_JSON)
// or from a file (GSHEET_CREDENTIALS_FILE).
func (c *Config) loadCredentials() error {
	if inline := os.Getenv("GSHEET_JSON"); inline != "" {
		c.CredentialsJSON = []byte(inline)
		return nil
	}
	if path := os.Getenv("GSHEET_CREDENTIALS_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read GSHEET_CREDENTIALS_FILE: %w", err)
		}
		c.CredentialsJSON = data
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendSheets:
		if c.ResultsSheetURL == "" {
			return fmt.Errorf("RESULTS_SHEET_URL is required")
		}
		if len(c.CredentialsJSON) == 0 {
			return fmt.Errorf("GSHEET_JSON or GSHEET_CREDENTIALS_FILE is required")
		}
	case BackendPostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("DATABASE_DSN is required for the postgres backend")
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q", BackendSheets, BackendPostgres)
	}

	switch c.AIProvider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when AI_PROVIDER=openai")
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when AI_PROVIDER=gemini")
		}
	case ProviderNone:
		// keyword-only operation
	default:
		return fmt.Errorf("AI_PROVIDER must be %q, %q or %q", ProviderOpenAI, ProviderGemini, ProviderNone)
	}

	if c.FetchConcurrency < 1 {
		return fmt.Errorf("FETCH_CONCURRENCY must be at least 1")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
