package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/studygen/studygen-api/internal/domain"
	"github.com/studygen/studygen-api/internal/generation"
	"github.com/studygen/studygen-api/internal/task"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"study set not found", domain.ErrStudySetNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", domain.ErrStudySetNotFound), http.StatusNotFound},
		{"empty source text", generation.ErrEmptySourceText, http.StatusBadRequest},
		{"rate limited", generation.ErrRateLimited, http.StatusServiceUnavailable},
		{"malformed response", generation.ErrMalformedResponse, http.StatusBadGateway},
		{"insufficient structure", generation.ErrInsufficientStructure, http.StatusBadGateway},
		{"network failure", generation.ErrNetwork, http.StatusBadGateway},
		{"auth failure", generation.ErrAuth, http.StatusBadGateway},
		{"queue full", task.ErrQueueFull, http.StatusServiceUnavailable},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	// The raw error text must never leak through the safe message.
	raw := fmt.Errorf("call to https://api.example.com?key=sk-secret failed: %w", generation.ErrRateLimited)
	msg := GetSafeErrorMessage(raw)
	assert.NotContains(t, msg, "sk-secret")
	assert.Contains(t, msg, "overloaded")

	assert.Equal(t, "Study set not found", GetSafeErrorMessage(domain.ErrStudySetNotFound))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(errors.New("boom")))
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	type payload struct {
		SourceText string `validate:"required"`
	}

	err := validator.New().Struct(payload{})
	assert.Error(t, err)

	msg := SanitizeValidationError(err)
	assert.Contains(t, msg, "SourceText")
	assert.Contains(t, msg, "required")
}
