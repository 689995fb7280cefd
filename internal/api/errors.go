package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/studygen/studygen-api/internal/api/shared"
	"github.com/studygen/studygen-api/internal/domain"
	"github.com/studygen/studygen-api/internal/generation"
	"github.com/studygen/studygen-api/internal/task"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, domain.ErrStudySetNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, generation.ErrEmptySourceText),
		errors.Is(err, domain.ErrEmptySourceText),
		errors.Is(err, generation.ErrInvalidConfig):
		return http.StatusBadRequest

	// Provider exhaustion surfaces as service unavailability
	case errors.Is(err, generation.ErrRateLimited):
		return http.StatusServiceUnavailable

	// Upstream produced unusable output
	case errors.Is(err, generation.ErrMalformedResponse),
		errors.Is(err, generation.ErrInsufficientStructure),
		errors.Is(err, generation.ErrNetwork),
		errors.Is(err, generation.ErrAuth),
		errors.Is(err, generation.ErrGenerationFailed):
		return http.StatusBadGateway

	// Background queue saturation
	case errors.Is(err, task.ErrQueueFull),
		errors.Is(err, task.ErrQueueClosed):
		return http.StatusServiceUnavailable

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrStudySetNotFound):
		return "Study set not found"

	case errors.Is(err, generation.ErrEmptySourceText),
		errors.Is(err, domain.ErrEmptySourceText):
		return "Source text is required"

	case errors.Is(err, generation.ErrRateLimited):
		return "The generation service is temporarily overloaded, please try again later"

	case errors.Is(err, generation.ErrMalformedResponse),
		errors.Is(err, generation.ErrInsufficientStructure):
		return "The generation service returned an unusable response"

	case errors.Is(err, generation.ErrNetwork),
		errors.Is(err, generation.ErrAuth),
		errors.Is(err, generation.ErrGenerationFailed):
		return "Content generation failed"

	case errors.Is(err, task.ErrQueueFull),
		errors.Is(err, task.ErrQueueClosed):
		return "The server is busy, please try again later"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps an error to a status code and safe message and writes
// the JSON error response. The raw error is logged (redacted), never sent to
// the client. An explicit userMessage overrides the mapped message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}

	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Check if this is likely a validation error message
	if strings.Contains(errMsg, "Field validation") {
		// Extract the field name and validation tag
		// Example format: "Key: 'SummaryRequest.SourceText' Error:Field validation for 'SourceText' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
