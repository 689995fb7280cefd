package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studygen/studygen-api/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:     8080,
			LogLevel: "info",
		},
		LLM: config.LLMConfig{
			Provider:       "openai",
			Endpoint:       "http://127.0.0.1:1",
			APIKey:         "test-key",
			Model:          "test-model",
			TimeoutSeconds: 5,
		},
		Task: config.TaskConfig{
			QueueSize:        10,
			WorkerCount:      1,
			InterCallDelayMs: 0,
		},
	}
}

func newTestApplication(t *testing.T) *application {
	t.Helper()

	app, err := newApplication(testConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return app
}

func TestNewApplicationWiring(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)

	assert.NotNil(t, app.studySetStore)
	assert.NotNil(t, app.llmClient)
	assert.NotNil(t, app.generation)
	assert.NotNil(t, app.taskRunner)
}

func TestNewApplicationRejectsUnknownProvider(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.LLM.Provider = "mystery"

	_, err := newApplication(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}

func TestRouterHealthEndpoint(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	router := app.setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestRouterStudySetRoundTrip(t *testing.T) {
	t.Parallel()

	// The runner is not started, so the enqueued task is never executed and
	// the set stays pending for the duration of the test.
	app := newTestApplication(t)
	router := app.setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/study-sets",
		strings.NewReader(`{"source_text": "Photosynthesis converts light into chemical energy."}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)

	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "pending", created.Status)

	req = httptest.NewRequest(http.MethodGet, "/api/study-sets/"+created.ID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var fetched struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "pending", fetched.Status)
}
