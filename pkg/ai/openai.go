package ai

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OpenAIEvaluator implements Evaluator against an OpenAI compatible chat completion API.
// Pointing Endpoint at Ollama's /v1 base URL works as well.
type OpenAIEvaluator struct {
	client *openai.Client
	cfg    Config
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIEvaluator builds a new evaluator using the provided configuration.
func NewOpenAIEvaluator(cfg Config) (*OpenAIEvaluator, error) {
	cfg = cfg.withDefaults()
	if cfg.APIKey == "" && cfg.Endpoint == "" {
		return nil, fmt.Errorf("openai api key is required when no endpoint is configured")
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		config.BaseURL = cfg.Endpoint
	}
	config.HTTPClient = cfg.HTTPClient

	return &OpenAIEvaluator{
		client: openai.NewClientWithConfig(config),
		cfg:    cfg,
		tracer: otel.Tracer("github.com/noah-isme/hr-interviewer-api/pkg/ai/openai"),
		logger: cfg.logger("openai_evaluator"),
	}, nil
}

// Evaluate sends the evaluation request and returns the first choice verbatim.
func (e *OpenAIEvaluator) Evaluate(parent context.Context, resume string) (string, error) {
	ctx, cancel := context.WithTimeout(parent, e.cfg.Timeout)
	defer cancel()

	ctx, span := e.tracer.Start(ctx, "openai.evaluate", trace.WithAttributes(
		attribute.String("model", e.cfg.Model),
	))
	defer span.End()

	start := time.Now()
	defer observe(ProviderOpenAI, e.cfg.Model, start)

	// go-openai drops a zero temperature as omitempty, which the server reads as its own default
	temperature := *e.cfg.Temperature
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	messages := BuildMessages(resume)
	request := openai.ChatCompletionRequest{
		Model:       e.cfg.Model,
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: temperature,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, msg := range messages {
		request.Messages = append(request.Messages, openai.ChatCompletionMessage{Role: msg.Role, Content: msg.Content})
	}

	resp, err := e.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", fail(span, ProviderOpenAI, e.cfg.Model, fmt.Errorf("openai evaluate: %w", err))
	}

	if len(resp.Choices) == 0 {
		return "", fail(span, ProviderOpenAI, e.cfg.Model, fmt.Errorf("no choices returned from openai"))
	}

	e.logger.Debug().
		Dur("duration", time.Since(start)).
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Msg("openai evaluation completed")
	span.SetStatus(codes.Ok, "evaluated")

	return resp.Choices[0].Message.Content, nil
}
