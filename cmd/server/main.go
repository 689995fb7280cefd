// Package main implements the entry point for the studygen API server,
// which turns blocks of study text into LLM-generated summaries, flashcards,
// and quizzes.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/studygen/studygen-api/internal/config"
	"github.com/studygen/studygen-api/internal/platform/logger"
)

func main() {
	cfg, appLogger, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	if err := app.run(context.Background()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up application-wide logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)

	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"llm_provider", cfg.LLM.Provider,
		"llm_model", cfg.LLM.Model,
		"fallback_models", len(cfg.LLM.FallbackModels),
		"backup_credentials", len(cfg.LLM.BackupAPIKeys))

	return cfg, appLogger, nil
}
