package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/callsight/internal/analyzer"
	"github.com/dgallion1/callsight/internal/api"
	"github.com/dgallion1/callsight/internal/chunker"
	"github.com/dgallion1/callsight/internal/config"
	"github.com/dgallion1/callsight/internal/docstore"
	"github.com/dgallion1/callsight/internal/pipeline"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize the inference client.
	client := analyzer.NewClient(analyzer.Config{
		Token:      cfg.GithubToken,
		Model:      cfg.ModelName,
		BaseURL:    cfg.ModelsEndpoint,
		Timeout:    cfg.AnalyzeTimeout,
		MaxRetries: uint(cfg.MaxRetries),
	})

	// Initialize pipeline and store.
	pipe := pipeline.New(client, chunker.Config{
		MaxTokens:     cfg.ChunkMaxTokens,
		OverlapTokens: cfg.ChunkOverlapTokens,
	}, cfg.AnalyzeTimeout, log)
	store := docstore.NewMemoryStore()

	// Initialize HTTP server.
	srv := api.NewServer(store, pipe, client, client, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting callsight", "port", cfg.Port, "model", cfg.ModelName)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
