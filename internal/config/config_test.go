package config

import (
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STORE_BACKEND", "sheets")
	t.Setenv("RESULTS_SHEET_URL", "https://docs.google.com/spreadsheets/d/key123/edit")
	t.Setenv("GSHEET_JSON", `{"type":"service_account"}`)
	t.Setenv("AI_PROVIDER", "none")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("MAX_AI_REQUESTS", "")
	t.Setenv("MAX_PER_SOURCE", "")
	t.Setenv("FETCH_CONCURRENCY", "")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("RUN_INTERVAL", "")
	t.Setenv("WORKSHEET_NAME", "")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.WorksheetName != "Results" {
		t.Errorf("WorksheetName = %q", cfg.WorksheetName)
	}
	if cfg.FetchConcurrency != 5 {
		t.Errorf("FetchConcurrency = %d", cfg.FetchConcurrency)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.RunInterval != 0 {
		t.Errorf("RunInterval = %v, want run-once default", cfg.RunInterval)
	}
	if cfg.MaxAIRequests != 0 || cfg.MaxPerSource != 0 {
		t.Errorf("caps = %d / %d, want unlimited defaults", cfg.MaxAIRequests, cfg.MaxPerSource)
	}
}

func TestLoadParsesDurations(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("REQUEST_TIMEOUT", "45s")
	t.Setenv("RUN_INTERVAL", "2h")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RequestTimeout != 45*time.Second || cfg.RunInterval != 2*time.Hour {
		t.Errorf("timeout = %v, interval = %v", cfg.RequestTimeout, cfg.RunInterval)
	}
}

func TestValidateSheetsRequiresCredentials(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("GSHEET_JSON", "")

	if _, err := Load(); err == nil {
		t.Error("sheets backend without credentials should fail")
	}
}

func TestValidatePostgresRequiresDSN(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORE_BACKEND", "postgres")

	if _, err := Load(); err == nil {
		t.Error("postgres backend without DATABASE_DSN should fail")
	}

	t.Setenv("DATABASE_DSN", "postgres://localhost/mediawatch")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.StoreBackend != BackendPostgres {
		t.Errorf("StoreBackend = %q", cfg.StoreBackend)
	}
}

func TestValidateProviderKeys(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("AI_PROVIDER", "openai")
	if _, err := Load(); err == nil {
		t.Error("openai provider without key should fail")
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	if _, err := Load(); err != nil {
		t.Errorf("openai provider with key failed: %v", err)
	}

	t.Setenv("AI_PROVIDER", "something-else")
	if _, err := Load(); err == nil {
		t.Error("unknown provider should fail")
	}
}
