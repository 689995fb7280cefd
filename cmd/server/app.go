package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/studygen/studygen-api/internal/config"
	"github.com/studygen/studygen-api/internal/generation"
	"github.com/studygen/studygen-api/internal/platform/llm"
	"github.com/studygen/studygen-api/internal/store"
	"github.com/studygen/studygen-api/internal/task"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Stores (using interfaces for proper abstraction)
	studySetStore store.StudySetStore

	// Generation stack
	llmClient  *llm.FallbackClient
	generation *generation.Service

	// Task handling
	taskRunner *task.TaskRunner
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts configuration and logger that must be established
// before application initialization.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	app.studySetStore = store.NewMemoryStudySetStore()

	// Create the provider client with the full fallback matrix
	var err error
	app.llmClient, err = llm.NewFallbackClient(llm.Config{
		Kind:           llm.ProviderKind(cfg.LLM.Provider),
		Endpoint:       cfg.LLM.Endpoint,
		APIKey:         cfg.LLM.APIKey,
		BackupAPIKeys:  cfg.LLM.BackupAPIKeys,
		Model:          cfg.LLM.Model,
		FallbackModels: cfg.LLM.FallbackModels,
		Timeout:        time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
		Temperature:    cfg.LLM.Temperature,
	}, logger.With("component", "llm_client"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}
	logger.Info("LLM client initialized",
		"provider", cfg.LLM.Provider,
		"model", cfg.LLM.Model)

	// Create the generation facade
	app.generation, err = generation.NewService(app.llmClient, logger.With("component", "generation"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generation service: %w", err)
	}

	// Initialize task runner
	app.taskRunner = task.NewTaskRunner(task.TaskRunnerConfig{
		WorkerCount: cfg.Task.WorkerCount,
		QueueSize:   cfg.Task.QueueSize,
	}, logger.With("component", "task_runner"))

	return app, nil
}

// interCallWait returns the configured pause between pipeline provider calls.
func (app *application) interCallWait() time.Duration {
	return time.Duration(app.config.Task.InterCallDelayMs) * time.Millisecond
}

// run starts background processing and the HTTP server, blocking until
// shutdown completes.
func (app *application) run(ctx context.Context) error {
	if err := app.taskRunner.Start(); err != nil {
		return fmt.Errorf("failed to start task runner: %w", err)
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}

// cleanup releases application resources during shutdown.
func (app *application) cleanup() {
	app.taskRunner.Stop()
}
