package config

// Config holds all application configuration, grouped by concern.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Generator GeneratorConfig `mapstructure:"generator" validate:"required"`
	Task      TaskConfig      `mapstructure:"task" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// GeneratorConfig selects and configures the commentary backend. Backend
// "gemini" calls the Gemini API; "lmstudio" calls any OpenAI-compatible
// endpoint such as a local LM Studio instance.
type GeneratorConfig struct {
	Backend        string `mapstructure:"backend" validate:"required,oneof=gemini lmstudio"`
	GeminiAPIKey   string `mapstructure:"gemini_api_key" validate:"required_if=Backend gemini"`
	GeminiModel    string `mapstructure:"gemini_model"`
	LMStudioURL    string `mapstructure:"lmstudio_url" validate:"required_if=Backend lmstudio"`
	LMStudioModel  string `mapstructure:"lmstudio_model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gt=0"`
	MaxAttempts    int    `mapstructure:"max_attempts" validate:"gt=0"`
	RetryDelayMS   int    `mapstructure:"retry_delay_ms" validate:"gt=0"`
}

// TaskConfig sizes the background commentary pipeline.
type TaskConfig struct {
	QueueSize   int `mapstructure:"queue_size" validate:"gt=0"`
	WorkerCount int `mapstructure:"worker_count" validate:"gt=0"`
}
