package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load configuration from environment variables and optionally a config file.
// Environment variables (prefix STUDYGEN_, nested keys joined with
// underscores) take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults for everything that has a sensible one; credentials and the
	// provider endpoint must always come from the environment or a file.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.endpoint", "https://generativelanguage.googleapis.com")
	v.SetDefault("llm.model", "gemini-2.0-flash")
	// Registering empty defaults makes the keys visible to AutomaticEnv, so
	// the env-only credential settings unmarshal correctly.
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.backup_api_keys", []string{})
	v.SetDefault("llm.fallback_models", []string{})
	v.SetDefault("llm.timeout_seconds", 60)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("task.queue_size", 100)
	v.SetDefault("task.worker_count", 2)
	v.SetDefault("task.inter_call_delay_ms", 2000)

	// Optional config file in the working directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables: STUDYGEN_SERVER_PORT, STUDYGEN_LLM_API_KEY, ...
	v.SetEnvPrefix("STUDYGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
