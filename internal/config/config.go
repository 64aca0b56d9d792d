package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultAIEndpoint is the Ollama chat endpoint the interviewer talks to when nothing else is configured.
const DefaultAIEndpoint = "https://ollama-gemma3-270m-gpu-746057898178.europe-west1.run.app/api/chat"

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName        string
	AppEnv         string
	AppPort        string `validate:"required"`
	AppVersion     string
	AppDescription string
	LogLevel       string `validate:"omitempty,oneof=trace debug info warn error"`
	UploadMaxMB    int    `validate:"gt=0"`
	UploadTempDir  string

	AIProvider    string        `validate:"required,oneof=ollama openai anthropic"`
	AIEndpoint    string        `validate:"omitempty,url"`
	AIModel       string        `validate:"required"`
	AIAPIKey      string        `validate:"required_if=AIProvider anthropic"`
	AITemperature float32       `validate:"gte=0,lte=2"`
	AITimeout     time.Duration `validate:"gt=0s"`
	AIMaxTokens   int           `validate:"gte=0"`
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// UploadMaxBytes converts the configured upload ceiling into bytes.
func (c Config) UploadMaxBytes() int {
	return c.UploadMaxMB * 1024 * 1024
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("INTERVIEWER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "HR Interviewer API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.version", "1.1")
	v.SetDefault("app.description", "Upload résumé PDF → get brutal HR feedback in pure Markdown")
	v.SetDefault("log.level", "info")
	v.SetDefault("upload.max_mb", 10)
	v.SetDefault("upload.temp_dir", os.TempDir())
	v.SetDefault("ai.provider", "ollama")
	v.SetDefault("ai.model", "gemma3:270m")
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.timeout", "180s")
	v.SetDefault("ai.max_tokens", 2048)

	timeoutString := v.GetString("ai.timeout")
	if timeoutString == "" {
		timeoutString = "180s"
	}

	timeout, err := time.ParseDuration(timeoutString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid ai timeout: %w", err)
	}

	cfg := Config{
		AppName:        v.GetString("app.name"),
		AppEnv:         v.GetString("app.env"),
		AppPort:        v.GetString("app.port"),
		AppVersion:     v.GetString("app.version"),
		AppDescription: v.GetString("app.description"),
		LogLevel:       strings.ToLower(v.GetString("log.level")),
		UploadMaxMB:    v.GetInt("upload.max_mb"),
		UploadTempDir:  v.GetString("upload.temp_dir"),
		AIProvider:     strings.ToLower(v.GetString("ai.provider")),
		AIEndpoint:     strings.TrimSpace(v.GetString("ai.endpoint")),
		AIModel:        v.GetString("ai.model"),
		AIAPIKey:       v.GetString("ai.api_key"),
		AITemperature:  float32(v.GetFloat64("ai.temperature")),
		AITimeout:      timeout,
		AIMaxTokens:    v.GetInt("ai.max_tokens"),
	}

	if cfg.AIEndpoint == "" && cfg.AIProvider == "ollama" {
		cfg.AIEndpoint = DefaultAIEndpoint
	}

	if cfg.UploadMaxMB <= 0 {
		cfg.UploadMaxMB = 10
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
