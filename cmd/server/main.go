package main

import (
	"context"
	stderrs "errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/mnemoslabs/mnemos/pkg/ai"
	"github.com/mnemoslabs/mnemos/pkg/config"
	"github.com/mnemoslabs/mnemos/pkg/db"
	"github.com/mnemoslabs/mnemos/pkg/helpers"
	"github.com/mnemoslabs/mnemos/pkg/logging"
	"github.com/mnemoslabs/mnemos/pkg/memory"
	"github.com/mnemoslabs/mnemos/pkg/personality"
	"github.com/mnemoslabs/mnemos/pkg/server"
)

func main() {
	// Running without a .env file is fine; everything has defaults except
	// the API credentials, which fail per-operation.
	_ = helpers.LoadEnvFile(3)

	envs := config.LoadConfig(true)
	logger := logging.New(os.Stdout, envs.LogLevel)
	logger.Info("Using database path", "path", envs.DBPath)

	store, err := db.NewStore(envs.DBPath, logging.ForComponent(logger, "db"))
	if err != nil {
		logger.Error("Failed to open database", "error", err)
		panic(errors.Wrap(err, "failed to open database"))
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	gemini := ai.NewGeminiService(
		logging.ForComponent(logger, "gemini"),
		envs.GeminiAPIKey,
		envs.GeminiModel,
		envs.GeminiBaseURL,
		envs.GeminiTimeout,
	)
	if envs.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY is not set, generation calls will fail until configured")
	}

	var embedder ai.Embedder
	if envs.EmbeddingsAPIKey != "" {
		embedder = ai.NewEmbeddingsService(
			logging.ForComponent(logger, "embeddings"),
			envs.EmbeddingsAPIKey,
			envs.EmbeddingsAPIURL,
		)
		logger.Info("Semantic retrieval enabled", "model", envs.EmbeddingsModel)
	} else {
		logger.Info("No embeddings credentials, retrieval will use substring ranking")
	}

	memoryStore := memory.NewStore(memory.StoreConfig{
		DB:              store.DB(),
		Embedder:        embedder,
		EmbeddingsModel: envs.EmbeddingsModel,
		Logger:          logging.ForComponent(logger, "memory"),
	})
	extractor := memory.NewExtractor(gemini, logging.ForComponent(logger, "extractor"))
	engine := personality.NewEngine(gemini, logging.ForComponent(logger, "personality"))

	srv := server.New(server.Config{
		Logger:    logging.ForComponent(logger, "http"),
		Extractor: extractor,
		Store:     memoryStore,
		Engine:    engine,
		Models:    gemini,
	})

	httpServer := &http.Server{
		Addr:              ":" + envs.HTTPPort,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("HTTP server listening", "port", envs.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !stderrs.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}
