package api

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/studygen/studygen-api/internal/api/shared"
	"github.com/studygen/studygen-api/internal/generation"
)

// GenerationService defines the synchronous generation operations exposed
// over HTTP. It is satisfied by generation.Service.
type GenerationService interface {
	GenerateSummary(ctx context.Context, sourceText string) (*generation.SummaryResult, error)
	GenerateFlashcards(ctx context.Context, sourceText string, count int) (*generation.FlashcardsResult, error)
	GenerateQuiz(ctx context.Context, sourceText string) (*generation.QuizResult, error)
	GetClarification(ctx context.Context, question, sourceText, studyContext string) (*generation.ClarificationResult, error)
}

// SummaryRequest represents the request body for summary generation
type SummaryRequest struct {
	SourceText string `json:"source_text" validate:"required,min=1"`
}

// FlashcardsRequest represents the request body for flashcard generation.
// Count is optional; zero means the server default.
type FlashcardsRequest struct {
	SourceText string `json:"source_text" validate:"required,min=1"`
	Count      int    `json:"count"       validate:"omitempty,min=1,max=15"`
}

// QuizRequest represents the request body for quiz generation
type QuizRequest struct {
	SourceText string `json:"source_text" validate:"required,min=1"`
}

// ClarificationRequest represents the request body for a clarification question
type ClarificationRequest struct {
	Question     string `json:"question"      validate:"required,min=1"`
	SourceText   string `json:"source_text"   validate:"required,min=1"`
	StudyContext string `json:"study_context" validate:"omitempty"`
}

// GenerationHandler handles synchronous generation HTTP requests
type GenerationHandler struct {
	service   GenerationService
	validator *validator.Validate
}

// NewGenerationHandler creates a new GenerationHandler
func NewGenerationHandler(service GenerationService) *GenerationHandler {
	return &GenerationHandler{
		service:   service,
		validator: validator.New(),
	}
}

// GenerateSummary handles POST /api/generate/summary requests
func (h *GenerationHandler) GenerateSummary(w http.ResponseWriter, r *http.Request) {
	var req SummaryRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.service.GenerateSummary(r.Context(), req.SourceText)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// GenerateFlashcards handles POST /api/generate/flashcards requests
func (h *GenerationHandler) GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	var req FlashcardsRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.service.GenerateFlashcards(r.Context(), req.SourceText, req.Count)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// GenerateQuiz handles POST /api/generate/quiz requests
func (h *GenerationHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	var req QuizRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.service.GenerateQuiz(r.Context(), req.SourceText)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// GetClarification handles POST /api/generate/clarification requests
func (h *GenerationHandler) GetClarification(w http.ResponseWriter, r *http.Request) {
	var req ClarificationRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.service.GetClarification(r.Context(), req.Question, req.SourceText, req.StudyContext)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// decode parses and validates the request body, writing an error response
// and returning false when the request is unusable.
func (h *GenerationHandler) decode(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := shared.DecodeJSON(r, req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return false
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest,
			SanitizeValidationError(err), err, shared.WithElevatedLogLevel())
		return false
	}

	return true
}
