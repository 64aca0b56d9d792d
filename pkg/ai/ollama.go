package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const maxResponseBytes = 8 << 20

const chatResponseSchema = `{
	"type": "object",
	"required": ["message"],
	"properties": {
		"message": {
			"type": "object",
			"required": ["content"],
			"properties": {
				"content": {"type": "string"}
			}
		}
	}
}`

var chatResponseValidator = jsonschema.MustCompileString("ollama_chat_response.json", chatResponseSchema)

type ollamaChatRequest struct {
	Model    string        `json:"model"`
	Messages []Message     `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float32 `json:"temperature"`
}

type ollamaChatResponse struct {
	Message Message `json:"message"`
}

// OllamaEvaluator posts a single non-streaming request to an Ollama /api/chat endpoint.
type OllamaEvaluator struct {
	cfg    Config
	http   *http.Client
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOllamaEvaluator builds an evaluator for Ollama's native chat API.
func NewOllamaEvaluator(cfg Config) (*OllamaEvaluator, error) {
	cfg = cfg.withDefaults()
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, fmt.Errorf("ollama endpoint is required")
	}

	return &OllamaEvaluator{
		cfg:    cfg,
		http:   cfg.HTTPClient,
		tracer: otel.Tracer("github.com/noah-isme/hr-interviewer-api/pkg/ai/ollama"),
		logger: cfg.logger("ollama_evaluator"),
	}, nil
}

// Evaluate sends the résumé to the model and returns its reply verbatim.
func (e *OllamaEvaluator) Evaluate(parent context.Context, resume string) (string, error) {
	ctx, cancel := context.WithTimeout(parent, e.cfg.Timeout)
	defer cancel()

	ctx, span := e.tracer.Start(ctx, "ollama.evaluate", trace.WithAttributes(
		attribute.String("model", e.cfg.Model),
		attribute.Int("resume.chars", utf8.RuneCountInString(resume)),
	))
	defer span.End()

	start := time.Now()
	defer observe(ProviderOllama, e.cfg.Model, start)

	payload, err := json.Marshal(ollamaChatRequest{
		Model:    e.cfg.Model,
		Messages: BuildMessages(resume),
		Stream:   false,
		Options:  ollamaOptions{Temperature: *e.cfg.Temperature},
	})
	if err != nil {
		return "", fail(span, ProviderOllama, e.cfg.Model, fmt.Errorf("encode chat request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fail(span, ProviderOllama, e.cfg.Model, fmt.Errorf("build chat request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if e.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.cfg.APIKey)
	}

	resp, err := e.http.Do(req)
	if err != nil {
		return "", fail(span, ProviderOllama, e.cfg.Model, fmt.Errorf("ollama chat: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fail(span, ProviderOllama, e.cfg.Model, fmt.Errorf("read chat response: %w", err))
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fail(span, ProviderOllama, e.cfg.Model, fmt.Errorf("ollama chat: %s for url: %s", resp.Status, e.cfg.Endpoint))
	}

	content, err := parseChatResponse(body)
	if err != nil {
		return "", fail(span, ProviderOllama, e.cfg.Model, err)
	}

	e.logger.Debug().Dur("duration", time.Since(start)).Int("reply_chars", len(content)).Msg("ollama evaluation completed")
	span.SetStatus(codes.Ok, "evaluated")
	return content, nil
}

func parseChatResponse(body []byte) (string, error) {
	var raw interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}

	if err := chatResponseValidator.Validate(raw); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return "", fmt.Errorf("unexpected chat response shape: %s", validationErr.Error())
		}
		return "", fmt.Errorf("validate chat response: %w", err)
	}

	var data ollamaChatResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}

	return data.Message.Content, nil
}
