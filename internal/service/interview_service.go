package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/hr-interviewer-api/internal/middleware"
	"github.com/noah-isme/hr-interviewer-api/internal/observability"
	"github.com/noah-isme/hr-interviewer-api/pkg/ai"
)

var (
	// ErrFileRequired indicates the multipart form carried no file.
	ErrFileRequired = errors.New("file is required")
	// ErrNotPDF indicates the uploaded file name does not end in .pdf.
	ErrNotPDF = errors.New("PDF only")
)

const (
	// MinResumeChars is the least amount of extracted text worth sending to the model.
	MinResumeChars = 100
	// NoTextMessage is returned when the PDF carries no usable text layer.
	NoTextMessage = "# No text found\n\nThis PDF appears to be empty or image-only."
)

// TextExtractor reads the text of a staged document.
type TextExtractor interface {
	ExtractFile(path string) (string, error)
}

// InterviewService runs one résumé through extraction and evaluation.
type InterviewService interface {
	Interview(ctx context.Context, file *multipart.FileHeader) (string, error)
}

// InterviewConfig tunes where uploads are staged.
type InterviewConfig struct {
	TempDir string
}

type interviewService struct {
	extractor TextExtractor
	evaluator ai.Evaluator
	logger    zerolog.Logger
	config    InterviewConfig
	tracer    trace.Tracer
}

// NewInterviewService constructs the interview pipeline.
func NewInterviewService(extractor TextExtractor, evaluator ai.Evaluator, logger zerolog.Logger, cfg InterviewConfig) InterviewService {
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}

	return &interviewService{
		extractor: extractor,
		evaluator: evaluator,
		logger:    logger.With().Str("component", "interview_service").Logger(),
		config:    cfg,
		tracer:    otel.Tracer("github.com/noah-isme/hr-interviewer-api/internal/service/interview"),
	}
}

// Interview returns the Markdown body for the uploaded résumé. Only input
// validation and staging failures surface as errors; extraction and model
// failures are rendered into the returned document.
func (s *interviewService) Interview(ctx context.Context, file *multipart.FileHeader) (string, error) {
	ctx, span := s.tracer.Start(ctx, "interview.run")
	defer span.End()

	logger := s.logger
	if correlation := middleware.CorrelationIDFromContext(ctx); correlation != "" {
		logger = logger.With().Str("correlation_id", correlation).Logger()
	}

	start := time.Now()
	defer func() {
		observability.InterviewLatency().Observe(time.Since(start).Seconds())
	}()

	if file == nil {
		observability.InterviewOutcomes().WithLabelValues("missing_file").Inc()
		span.SetStatus(codes.Error, "validation failed")
		return "", ErrFileRequired
	}

	span.SetAttributes(
		attribute.String("upload.original_name", strings.TrimSpace(file.Filename)),
		attribute.Int64("upload.size_bytes", file.Size),
	)

	if !strings.HasSuffix(strings.ToLower(file.Filename), ".pdf") {
		observability.InterviewOutcomes().WithLabelValues("rejected").Inc()
		span.SetStatus(codes.Error, "not a pdf")
		return "", ErrNotPDF
	}

	path, release, err := s.stage(file)
	if err != nil {
		observability.InterviewOutcomes().WithLabelValues("stage_error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "staging failed")
		return "", fmt.Errorf("stage upload: %w", err)
	}
	defer release()

	raw, err := s.extractor.ExtractFile(path)
	if err != nil {
		logger.Warn().Err(err).Str("file", file.Filename).Msg("pdf extraction failed")
		observability.InterviewOutcomes().WithLabelValues("parse_error").Inc()
		span.RecordError(err)
		return parseErrorDocument(err), nil
	}

	if utf8.RuneCountInString(strings.TrimSpace(raw)) < MinResumeChars {
		observability.InterviewOutcomes().WithLabelValues("no_text").Inc()
		span.SetStatus(codes.Ok, "no text")
		return NoTextMessage, nil
	}

	normalized := Normalize(raw)
	span.SetAttributes(attribute.Int("resume.normalized_chars", utf8.RuneCountInString(normalized)))

	// the model call runs to completion or timeout even if the client goes away
	reply, err := s.evaluator.Evaluate(context.WithoutCancel(ctx), normalized)
	if err != nil {
		logger.Error().Err(err).Str("file", file.Filename).Msg("evaluation failed")
		observability.InterviewOutcomes().WithLabelValues("upstream_error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "evaluation failed")
		return ai.ErrorDocument(err), nil
	}

	observability.InterviewOutcomes().WithLabelValues("evaluated").Inc()
	span.SetStatus(codes.Ok, "evaluated")
	return reply, nil
}

// stage copies the upload into a private temp file. The returned release func
// removes it; on error nothing is left behind.
func (s *interviewService) stage(file *multipart.FileHeader) (string, func(), error) {
	src, err := file.Open()
	if err != nil {
		return "", nil, err
	}
	defer src.Close()

	dst, err := os.CreateTemp(s.config.TempDir, "resume-*.pdf")
	if err != nil {
		return "", nil, err
	}
	path := dst.Name()
	release := func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn().Err(err).Str("path", path).Msg("failed to remove staged upload")
		}
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		release()
		return "", nil, err
	}
	if err := dst.Close(); err != nil {
		release()
		return "", nil, err
	}

	return path, release, nil
}

func parseErrorDocument(err error) string {
	return fmt.Sprintf("# Error\n\nThe uploaded file could not be read as a PDF.\n\n`%v`", err)
}
