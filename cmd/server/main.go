package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/pagegen/internal/api"
	"github.com/dgallion1/pagegen/internal/condenser"
	"github.com/dgallion1/pagegen/internal/config"
	"github.com/dgallion1/pagegen/internal/enrich"
	"github.com/dgallion1/pagegen/internal/extractor"
	"github.com/dgallion1/pagegen/internal/knowledge"
	"github.com/dgallion1/pagegen/internal/mapper"
	"github.com/dgallion1/pagegen/internal/pipeline"
	"github.com/dgallion1/pagegen/internal/store"
	"github.com/dgallion1/pagegen/internal/template"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Page storage.
	var pages store.Store
	var err error
	switch cfg.StoreDriver {
	case "sqlite":
		pages, err = store.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			log.Error("open sqlite store", "path", cfg.SQLitePath, "error", err)
			os.Exit(1)
		}
	default:
		pages = store.NewMemoryStore()
	}

	// Template registry.
	registry := template.DefaultRegistry()
	if cfg.TemplatesPath != "" {
		registry, err = template.LoadRegistry(cfg.TemplatesPath)
		if err != nil {
			log.Error("load templates", "path", cfg.TemplatesPath, "error", err)
			os.Exit(1)
		}
	}

	// Optional enrichment provider.
	var provider enrich.Provider
	var claude *enrich.ClaudeProvider
	if cfg.AnthropicAPIKey != "" {
		claude = enrich.NewClaudeProvider(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		provider = claude
	} else {
		log.Info("no ANTHROPIC_API_KEY set, enrichment disabled")
	}

	enrichCfg := enrich.DefaultConfig()
	enrichCfg.Timeout = cfg.EnrichTimeout

	pipe := &pipeline.Pipeline{
		Extractor: extractor.DefaultConfig(),
		Condenser: condenser.DefaultConfig(),
		Knowledge: knowledge.DefaultConfig(),
		Mapper:    mapper.DefaultConfig(),
		Enrich:    enrichCfg,
		Provider:  provider,
		Templates: registry,
		Log:       log,

		PDFFallbackPdftotext: cfg.PDFFallbackPdftotext,
	}

	orch := pipeline.NewOrchestrator(cfg, pipe, pages, log)
	orch.Start(ctx)

	srv := api.NewServer(orch, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if claude != nil {
			claude.Close()
		}
		pages.Close()
	}()

	log.Info("starting pagegen", "port", cfg.Port, "store", cfg.StoreDriver)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
