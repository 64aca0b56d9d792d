package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// AnthropicEvaluator implements Evaluator against the Anthropic messages API.
type AnthropicEvaluator struct {
	client anthropic.Client
	cfg    Config
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewAnthropicEvaluator constructs an evaluator backed by the Anthropic SDK.
func NewAnthropicEvaluator(cfg Config) (*AnthropicEvaluator, error) {
	cfg = cfg.withDefaults()
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic api key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(cfg.HTTPClient),
		option.WithMaxRetries(0),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(cfg.Endpoint))
	}

	return &AnthropicEvaluator{
		client: anthropic.NewClient(opts...),
		cfg:    cfg,
		tracer: otel.Tracer("github.com/noah-isme/hr-interviewer-api/pkg/ai/anthropic"),
		logger: cfg.logger("anthropic_evaluator"),
	}, nil
}

// Evaluate sends the résumé as a single user turn under the recruiter system prompt.
func (a *AnthropicEvaluator) Evaluate(parent context.Context, resume string) (string, error) {
	ctx, cancel := context.WithTimeout(parent, a.cfg.Timeout)
	defer cancel()

	ctx, span := a.tracer.Start(ctx, "anthropic.evaluate", trace.WithAttributes(
		attribute.String("model", a.cfg.Model),
	))
	defer span.End()

	start := time.Now()
	defer observe(ProviderAnthropic, a.cfg.Model, start)

	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(a.cfg.Model),
		MaxTokens:   int64(a.cfg.MaxTokens),
		Temperature: anthropic.Float(float64(*a.cfg.Temperature)),
		System:      []anthropic.TextBlockParam{{Text: SystemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(UserPromptPrefix + resume)),
		},
	})
	if err != nil {
		return "", fail(span, ProviderAnthropic, a.cfg.Model, fmt.Errorf("anthropic evaluate: %w", err))
	}

	builder := strings.Builder{}
	for _, block := range message.Content {
		if block.Type == "text" {
			builder.WriteString(block.Text)
		}
	}
	if builder.Len() == 0 {
		return "", fail(span, ProviderAnthropic, a.cfg.Model, fmt.Errorf("no text content returned from anthropic"))
	}

	a.logger.Debug().
		Dur("duration", time.Since(start)).
		Int64("output_tokens", message.Usage.OutputTokens).
		Msg("anthropic evaluation completed")
	span.SetStatus(codes.Ok, "evaluated")

	return builder.String(), nil
}
