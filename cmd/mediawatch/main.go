package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/mcttz/mediawatch/internal/ai"
	"github.com/mcttz/mediawatch/internal/classify"
	"github.com/mcttz/mediawatch/internal/config"
	"github.com/mcttz/mediawatch/internal/feeds"
	"github.com/mcttz/mediawatch/internal/logger"
	"github.com/mcttz/mediawatch/internal/metrics"
	"github.com/mcttz/mediawatch/internal/notify"
	"github.com/mcttz/mediawatch/internal/pipeline"
	"github.com/mcttz/mediawatch/internal/ratelimit"
	"github.com/mcttz/mediawatch/internal/store"
	"github.com/mcttz/mediawatch/internal/syncer"
)

func main() {
	logger.Init()
	log := logger.With("main")

	cfg, err := config.Load()
	if err != nil {
		log.Error("configuration error", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	sources, err := feeds.LoadSources(cfg.SourcesPath)
	if err != nil {
		log.Error("cannot load feed sources", "error", err)
		os.Exit(1)
	}

	tabular, err := buildStore(ctx, cfg)
	if err != nil {
		log.Error("cannot open tabular store", "error", err)
		os.Exit(1)
	}

	provider, closeProvider, err := buildProvider(ctx, cfg)
	if err != nil {
		log.Error("cannot create AI provider", "error", err)
		os.Exit(1)
	}
	if closeProvider != nil {
		defer closeProvider()
	}

	if os.Getenv("ENABLE_HTTP_MONITORING") == "true" {
		go startMonitoringServer()
	}

	budget := ratelimit.NewAIBudget(cfg.MaxAIRequests)
	notifier := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
	engine := syncer.New(tabular)

	ingestor := feeds.NewIngestor()
	ingestor.Concurrency = cfg.FetchConcurrency
	ingestor.PerSourceTimeout = cfg.RequestTimeout
	ingestor.MaxPerSource = cfg.MaxPerSource

	runOnce := func() error {
		// Classifier per run: keeps the AI result cache run-scoped.
		classifier := classify.New(provider, budget)
		p := pipeline.New(ingestor, classifier, engine, sources, cfg.WorksheetName)

		summary, err := p.Run(ctx)
		if err != nil {
			return err
		}
		log.Info("run finished", "summary", summary)
		if err := notifier.SendSummary(ctx, summary); err != nil {
			log.Warn("telegram notification failed", "error", err)
		}
		return nil
	}

	if cfg.RunInterval <= 0 {
		if err := runOnce(); err != nil {
			log.Error("collector run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	log.Info("starting scheduled operation", "interval", cfg.RunInterval)
	ticker := time.NewTicker(cfg.RunInterval)
	defer ticker.Stop()
	for {
		if err := runOnce(); err != nil {
			log.Error("collector run failed", "error", err)
		}
		<-ticker.C
	}
}

func buildStore(ctx context.Context, cfg *config.Config) (store.Tabular, error) {
	if cfg.StoreBackend == config.BackendPostgres {
		return store.NewPostgresStore(cfg.DatabaseDSN)
	}
	return store.NewSheetsStore(ctx, cfg.ResultsSheetURL, cfg.CredentialsJSON)
}

func buildProvider(ctx context.Context, cfg *config.Config) (ai.Provider, func(), error) {
	switch cfg.AIProvider {
	case config.ProviderOpenAI:
		client, err := ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			return nil, nil, err
		}
		return client, nil, nil
	case config.ProviderGemini:
		client, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, nil, err
		}
		return client, client.Close, nil
	default:
		return nil, nil, nil
	}
}

func startMonitoringServer() {
	port := os.Getenv("MONITORING_PORT")
	if port == "" {
		port = "8080"
	}

	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/metrics", metricsHandler)

	logger.Info("starting monitoring server", "port", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		logger.Error("monitoring server stopped", "error", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	if !stats["is_healthy"].(bool) {
		status = "error"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	})
}

func metricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(metrics.Global.GetStats())
}
