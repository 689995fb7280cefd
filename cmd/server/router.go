package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/studygen/studygen-api/internal/api"
	apiMiddleware "github.com/studygen/studygen-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	generationHandler := api.NewGenerationHandler(app.generation)
	studySetHandler := api.NewStudySetHandler(
		app.studySetStore,
		app.generation,
		app.taskRunner,
		app.interCallWait(),
		app.logger,
	)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Synchronous single-artifact generation
		r.Post("/generate/summary", generationHandler.GenerateSummary)
		r.Post("/generate/flashcards", generationHandler.GenerateFlashcards)
		r.Post("/generate/quiz", generationHandler.GenerateQuiz)
		r.Post("/generate/clarification", generationHandler.GetClarification)

		// Asynchronous full-pipeline study sets
		r.Post("/study-sets", studySetHandler.CreateStudySet)
		r.Get("/study-sets/{id}", studySetHandler.GetStudySet)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
