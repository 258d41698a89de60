package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/apexai-labs/apex-assistant-svc/internal/assistant"
	"github.com/apexai-labs/apex-assistant-svc/internal/config"
	"github.com/apexai-labs/apex-assistant-svc/internal/integrations"
	"github.com/apexai-labs/apex-assistant-svc/internal/knowledge"
	"github.com/apexai-labs/apex-assistant-svc/internal/llm"
	"github.com/apexai-labs/apex-assistant-svc/internal/upload"
	"github.com/apexai-labs/apex-assistant-svc/internal/web"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found or error loading it", "error", err)
	}

	var cfg config.Config
	if err := envconfig.Process("", &cfg); err != nil {
		slog.Error("Failed to process config", "error", err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err == nil {
		opts := &slog.HandlerOptions{Level: level}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, opts))
		slog.SetDefault(logger)
	}

	slog.Info("Starting apex-assistant-svc",
		"port", cfg.Port,
		"ai_model", cfg.AIModel,
		"state_store", cfg.StateStore,
		"kb_storage_type", cfg.KBStorageType,
	)

	aiClient := llm.NewClient(cfg.AIEndpoint, cfg.AIAPIKey, cfg.AICustomerID, cfg.AIModel, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	documentStore, err := knowledge.NewDocumentStore(ctx, knowledge.StorageConfig{
		Type:       knowledge.StorageType(cfg.KBStorageType),
		GCPBucket:  cfg.GCPBucket,
		GCPProject: cfg.GCPProject,
		GCPKeyFile: cfg.GCPKeyFile,
	}, logger)
	if err != nil {
		slog.Error("Failed to initialize document store", "error", err, "storage_type", cfg.KBStorageType)
		os.Exit(1)
	}
	slog.Info("Document store initialized", "storage_type", cfg.KBStorageType)

	var connections integrations.ConnectionStore
	var states integrations.StateStore
	if cfg.StateStore == "redis" {
		connections, states, err = integrations.NewRedisStores(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			slog.Error("Failed to connect to redis", "error", err, "addr", cfg.RedisAddr)
			os.Exit(1)
		}
		slog.Info("Redis stores initialized", "addr", cfg.RedisAddr)
	} else {
		connections = integrations.NewMemoryConnectionStore()
		states = integrations.NewMemoryStateStore()
	}

	oauthClient := integrations.NewOAuthClient(cfg.AppBaseURL, cfg.OAuth, logger)
	catalog := integrations.Catalog(cfg.AppBaseURL)

	mux := http.NewServeMux()
	assistant.NewHandler(aiClient, logger).RegisterRoutes(mux)
	integrations.NewHandler(catalog, connections, states, oauthClient, cfg.AppBaseURL, logger).RegisterRoutes(mux)
	knowledge.NewHandler(documentStore, knowledge.NewProcessor(aiClient, logger), logger).RegisterRoutes(mux)
	upload.NewHandler(logger).RegisterRoutes(mux)
	web.NewHandler().RegisterRoutes(mux)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: mux,
	}

	go func() {
		slog.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server failed", "error", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	slog.Info("Received signal, shutting down", "signal", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown failed", "error", err)
	}

	slog.Info("Service shutdown complete")
}
