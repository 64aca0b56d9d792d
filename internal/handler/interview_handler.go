package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/hr-interviewer-api/internal/service"
	"github.com/noah-isme/hr-interviewer-api/internal/utils"
)

// InterviewHandler turns an uploaded résumé into a Markdown critique.
type InterviewHandler struct {
	service service.InterviewService
	logger  zerolog.Logger
}

// NewInterviewHandler constructs an interview handler.
func NewInterviewHandler(service service.InterviewService, logger zerolog.Logger) *InterviewHandler {
	return &InterviewHandler{
		service: service,
		logger:  logger.With().Str("component", "interview_handler").Logger(),
	}
}

// Register wires interview routes.
func (h *InterviewHandler) Register(router fiber.Router) {
	router.Post("/interview", h.interview)
}

func (h *InterviewHandler) interview(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)

	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, service.ErrFileRequired.Error())
	}

	body, err := h.service.Interview(c.UserContext(), file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotPDF), errors.Is(err, service.ErrFileRequired):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			logger.Error().Err(err).Str("file", file.Filename).Msg("interview failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to process upload")
		}
	}

	logger.Info().Str("file", file.Filename).Int64("size_bytes", file.Size).Int("report_bytes", len(body)).Msg("interview completed")
	return utils.SendMarkdown(c, body)
}
