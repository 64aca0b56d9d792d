package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/hr-interviewer-api/internal/config"
	"github.com/noah-isme/hr-interviewer-api/internal/dto"
	"github.com/noah-isme/hr-interviewer-api/internal/utils"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
	Version     string    `json:"version"`
	AIProvider  string    `json:"ai_provider"`
	AIModel     string    `json:"ai_model"`
}

// HealthCheck returns a handler that reports application health information.
func HealthCheck(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
			Version:     cfg.AppVersion,
			AIProvider:  cfg.AIProvider,
			AIModel:     cfg.AIModel,
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}

// ServiceInfo describes the API and how to call it.
func ServiceInfo(cfg config.Config) fiber.Handler {
	info := dto.ServiceInfoResponse{
		Message:     cfg.AppName + " ready",
		Endpoint:    "POST /interview",
		Input:       "multipart/form-data with 'file' = your_resume.pdf",
		Output:      "text/markdown",
		Name:        cfg.AppName,
		Description: cfg.AppDescription,
		Version:     cfg.AppVersion,
	}

	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(info)
	}
}
