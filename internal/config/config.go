package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm"    validate:"required"`
	Task   TaskConfig   `mapstructure:"task"   validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// LLMConfig contains all LLM provider integration settings. The ordered
// credential and model lists feed the fallback client's candidate matrix:
// APIKey and Model come first, the backup lists follow in configured order.
type LLMConfig struct {
	Provider       string   `mapstructure:"provider"        validate:"required,oneof=gemini openai openrouter anthropic"`
	Endpoint       string   `mapstructure:"endpoint"        validate:"required,url"`
	APIKey         string   `mapstructure:"api_key"         validate:"required"`
	BackupAPIKeys  []string `mapstructure:"backup_api_keys"`
	Model          string   `mapstructure:"model"           validate:"required"`
	FallbackModels []string `mapstructure:"fallback_models"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds" validate:"required,gte=1,lte=300"`
	Temperature    float64  `mapstructure:"temperature"     validate:"gte=0,lte=2"`
}

// TaskConfig contains background study-set pipeline settings.
// InterCallDelayMs spaces out the sequential generation calls for one study
// set; the deliberate delay is a crude guard against provider rate limits.
type TaskConfig struct {
	QueueSize        int `mapstructure:"queue_size"          validate:"required,gt=0"`
	WorkerCount      int `mapstructure:"worker_count"        validate:"required,gt=0"`
	InterCallDelayMs int `mapstructure:"inter_call_delay_ms" validate:"gte=0"`
}
