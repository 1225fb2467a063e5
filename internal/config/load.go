package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix is the prefix for environment variables, e.g.
// OHGIRI_DATABASE_URL maps to the database.url key.
const envPrefix = "OHGIRI"

// Load reads configuration from config.yaml (optional) and environment
// variables, applies defaults, and validates the result. Environment
// variables take precedence over file values.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; env vars and defaults carry the load.
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("generator.backend", "lmstudio")
	v.SetDefault("generator.lmstudio_url", "http://localhost:1234/v1")
	v.SetDefault("generator.lmstudio_model", "local-model")
	v.SetDefault("generator.gemini_model", "gemini-2.0-flash")
	v.SetDefault("generator.timeout_seconds", 30)
	v.SetDefault("generator.max_attempts", 3)
	v.SetDefault("generator.retry_delay_ms", 500)

	v.SetDefault("task.queue_size", 100)
	v.SetDefault("task.worker_count", 2)

	// Viper only binds env vars for keys it knows about, so keys without
	// defaults still need to be registered.
	v.SetDefault("database.url", "")
	v.SetDefault("generator.gemini_api_key", "")
}
