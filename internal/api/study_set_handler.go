package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/studygen/studygen-api/internal/api/shared"
	"github.com/studygen/studygen-api/internal/domain"
	"github.com/studygen/studygen-api/internal/store"
	"github.com/studygen/studygen-api/internal/task"
)

// TaskSubmitter enqueues background tasks. It is satisfied by task.TaskRunner.
type TaskSubmitter interface {
	Submit(ctx context.Context, t task.Task) error
}

// CreateStudySetRequest represents the request body for creating a study set
type CreateStudySetRequest struct {
	SourceText string `json:"source_text" validate:"required,min=1"`
}

// StudySetResponse represents the response data for a study set
type StudySetResponse struct {
	ID         string                 `json:"id"`
	Status     string                 `json:"status"`
	Summary    string                 `json:"summary,omitempty"`
	Flashcards []*domain.Flashcard    `json:"flashcards,omitempty"`
	Quiz       []*domain.QuizQuestion `json:"quiz,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

// StudySetHandler handles study-set HTTP requests: creation kicks off the
// asynchronous generation pipeline, retrieval serves the polled state.
type StudySetHandler struct {
	sets          store.StudySetStore
	generator     task.Generator
	runner        TaskSubmitter
	interCallWait time.Duration
	logger        *slog.Logger
	validator     *validator.Validate
}

// NewStudySetHandler creates a new StudySetHandler
func NewStudySetHandler(
	sets store.StudySetStore,
	generator task.Generator,
	runner TaskSubmitter,
	interCallWait time.Duration,
	logger *slog.Logger,
) *StudySetHandler {
	return &StudySetHandler{
		sets:          sets,
		generator:     generator,
		runner:        runner,
		interCallWait: interCallWait,
		logger:        logger,
		validator:     validator.New(),
	}
}

// CreateStudySet handles POST /api/study-sets requests. The study set is
// stored in the pending state and the pipeline task enqueued; processing
// happens asynchronously, so the response is 202 Accepted.
func (h *StudySetHandler) CreateStudySet(w http.ResponseWriter, r *http.Request) {
	var req CreateStudySetRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest,
			SanitizeValidationError(err), err, shared.WithElevatedLogLevel())
		return
	}

	set, err := domain.NewStudySet(req.SourceText)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.sets.Create(r.Context(), set); err != nil {
		h.logger.Error("failed to store study set", "error", err)
		HandleAPIError(w, r, err, "Failed to create study set")
		return
	}

	genTask, err := task.NewStudySetGenerationTask(set.ID, h.sets, h.generator, h.interCallWait, h.logger)
	if err != nil {
		h.logger.Error("failed to build generation task", "error", err, "study_set_id", set.ID)
		HandleAPIError(w, r, err, "Failed to create study set")
		return
	}

	if err := h.runner.Submit(r.Context(), genTask); err != nil {
		// The set exists but will never be processed; mark it failed so
		// pollers are not left waiting on a pending status.
		_ = set.UpdateStatus(domain.StudySetStatusFailed)
		if updateErr := h.sets.Update(r.Context(), set); updateErr != nil {
			h.logger.Error("failed to mark unqueued study set as failed",
				"error", updateErr, "study_set_id", set.ID)
		}

		h.logger.Warn("failed to enqueue generation task", "error", err, "study_set_id", set.ID)
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, studySetToResponse(set))
}

// GetStudySet handles GET /api/study-sets/{id} requests
func (h *StudySetHandler) GetStudySet(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid study set ID")
		return
	}

	set, err := h.sets.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, studySetToResponse(set))
}

// studySetToResponse converts a domain.StudySet to a StudySetResponse
func studySetToResponse(set *domain.StudySet) StudySetResponse {
	return StudySetResponse{
		ID:         set.ID.String(),
		Status:     string(set.Status),
		Summary:    set.Summary,
		Flashcards: set.Flashcards,
		Quiz:       set.Quiz,
		CreatedAt:  set.CreatedAt,
		UpdatedAt:  set.UpdatedAt,
	}
}
