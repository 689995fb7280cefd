package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv sets up environment variables for testing
func setupEnv(t *testing.T, envVars map[string]string) func() {
	// Save current environment values
	originalValues := make(map[string]string)
	for name := range envVars {
		originalValues[name] = os.Getenv(name)
	}

	// Set new environment variables
	for name, value := range envVars {
		err := os.Setenv(name, value)
		require.NoError(t, err, "Failed to set environment variable %s", name)
	}

	// Return cleanup function
	return func() {
		// Restore original environment
		for name, value := range originalValues {
			if value == "" {
				os.Unsetenv(name)
			} else {
				os.Setenv(name, value)
			}
		}
	}
}

// TestLoadDefaults verifies that the Load function sets the expected default
// values when only the required credential is provided.
func TestLoadDefaults(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"STUDYGEN_LLM_API_KEY":      "test-api-key",
		"STUDYGEN_SERVER_PORT":      "",
		"STUDYGEN_SERVER_LOG_LEVEL": "",
	})
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg, "Load() should return a non-nil config")
	assert.Equal(t, 8080, cfg.Server.Port, "Default server port should be 8080")
	assert.Equal(t, "info", cfg.Server.LogLevel, "Default log level should be 'info'")
	assert.Equal(t, "gemini", cfg.LLM.Provider, "Default provider should be gemini")
	assert.Equal(t, 60, cfg.LLM.TimeoutSeconds, "Default timeout should be 60 seconds")
	assert.Equal(t, 2000, cfg.Task.InterCallDelayMs, "Default inter-call delay should be 2000ms")
}

// TestLoadFromEnv verifies that the Load function correctly reads values from
// environment variables.
func TestLoadFromEnv(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"STUDYGEN_SERVER_PORT":         "9090",
		"STUDYGEN_SERVER_LOG_LEVEL":    "debug",
		"STUDYGEN_LLM_PROVIDER":        "openrouter",
		"STUDYGEN_LLM_ENDPOINT":        "https://openrouter.ai/api",
		"STUDYGEN_LLM_API_KEY":         "primary-key",
		"STUDYGEN_LLM_BACKUP_API_KEYS": "backup-one,backup-two",
		"STUDYGEN_LLM_MODEL":           "meta-llama/llama-3-70b",
		"STUDYGEN_LLM_FALLBACK_MODELS": "mistralai/mixtral,google/gemma",
	})
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with valid environment variables")
	require.NotNil(t, cfg, "Load() should return a non-nil config")
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "openrouter", cfg.LLM.Provider)
	assert.Equal(t, "primary-key", cfg.LLM.APIKey)
	assert.Equal(t, []string{"backup-one", "backup-two"}, cfg.LLM.BackupAPIKeys)
	assert.Equal(t, []string{"mistralai/mixtral", "google/gemma"}, cfg.LLM.FallbackModels)
}

// TestLoadValidationErrors verifies that the Load function correctly
// validates the configuration.
func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name           string
		envVars        map[string]string
		errorSubstring string
	}{
		{
			name: "Missing API key",
			envVars: map[string]string{
				"STUDYGEN_SERVER_PORT": "9090",
				"STUDYGEN_LLM_API_KEY": "",
			},
			errorSubstring: "validation failed",
		},
		{
			name: "Invalid port number",
			envVars: map[string]string{
				"STUDYGEN_SERVER_PORT": "999999", // Port out of range
				"STUDYGEN_LLM_API_KEY": "test-api-key",
			},
			errorSubstring: "validation failed",
		},
		{
			name: "Invalid log level",
			envVars: map[string]string{
				"STUDYGEN_SERVER_PORT":      "9090",
				"STUDYGEN_SERVER_LOG_LEVEL": "invalid-level",
				"STUDYGEN_LLM_API_KEY":      "test-api-key",
			},
			errorSubstring: "validation failed",
		},
		{
			name: "Unknown provider",
			envVars: map[string]string{
				"STUDYGEN_LLM_PROVIDER": "carrier-pigeon",
				"STUDYGEN_LLM_API_KEY":  "test-api-key",
			},
			errorSubstring: "validation failed",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cleanup := setupEnv(t, tc.envVars)
			defer cleanup()

			cfg, err := Load()

			assert.Error(t, err, "Load() should return an error with invalid configuration")
			if err != nil {
				assert.Contains(t, err.Error(), tc.errorSubstring, "Error message should contain expected substring")
			}
			assert.Nil(t, cfg, "Config should be nil when an error occurs")
		})
	}
}
