package utils

import "github.com/gofiber/fiber/v2"

// MarkdownContentType is the media type of interview reports.
const MarkdownContentType = "text/markdown; charset=utf-8"

// APIResponse describes the common structure for JSON API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

// SendSuccess sends a successful JSON response with a message.
func SendSuccess(c *fiber.Ctx, message string, data interface{}) error {
	if message == "" {
		message = "success"
	}

	return c.Status(fiber.StatusOK).JSON(APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// SendError sends an error JSON response with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}

	return c.Status(status).JSON(APIResponse{
		Success: false,
		Message: message,
	})
}

// SendMarkdown writes body verbatim as a 200 text/markdown response.
func SendMarkdown(c *fiber.Ctx, body string) error {
	c.Set(fiber.HeaderContentType, MarkdownContentType)
	return c.Status(fiber.StatusOK).SendString(body)
}
