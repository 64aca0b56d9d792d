package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// ProviderOllama talks to Ollama's native /api/chat endpoint.
	ProviderOllama = "ollama"
	// ProviderOpenAI talks to any OpenAI compatible chat completion endpoint.
	ProviderOpenAI = "openai"
	// ProviderAnthropic talks to the Anthropic messages API.
	ProviderAnthropic = "anthropic"

	DefaultModel       = "gemma3:270m"
	DefaultTemperature = float32(0.7)
	DefaultTimeout     = 180 * time.Second
	DefaultMaxTokens   = 2048
)

// Config describes which model the interviewer talks to and how.
type Config struct {
	Provider    string
	Endpoint    string
	Model       string
	APIKey      string
	// Temperature is optional; nil selects DefaultTemperature and an explicit 0 is kept.
	Temperature *float32
	Timeout     time.Duration
	MaxTokens   int
	HTTPClient  *http.Client
	Logger      zerolog.Logger
}

func (c Config) withDefaults() Config {
	if c.Provider == "" {
		c.Provider = ProviderOllama
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Temperature == nil {
		temperature := DefaultTemperature
		c.Temperature = &temperature
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	return c
}

func (c Config) logger(component string) zerolog.Logger {
	if c.Logger.GetLevel() == zerolog.Disabled {
		return zerolog.Nop()
	}
	return c.Logger.With().Str("component", component).Str("model", c.Model).Logger()
}

// Float32 returns a pointer to v, for optional Config fields.
func Float32(v float32) *float32 {
	return &v
}

// Evaluator turns normalised résumé text into the interviewer's Markdown critique.
type Evaluator interface {
	Evaluate(ctx context.Context, resume string) (string, error)
}

// New builds the evaluator for the configured provider.
func New(cfg Config) (Evaluator, error) {
	cfg = cfg.withDefaults()

	var (
		evaluator Evaluator
		err       error
	)
	switch strings.ToLower(cfg.Provider) {
	case ProviderOllama:
		evaluator, err = NewOllamaEvaluator(cfg)
	case ProviderOpenAI:
		evaluator, err = NewOpenAIEvaluator(cfg)
	case ProviderAnthropic:
		evaluator, err = NewAnthropicEvaluator(cfg)
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return evaluator, nil
}
