// FILE: internal/server/http/middleware.go
package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/server/core"
)

// requestID attaches a request id to every request, honoring a well-formed
// client-supplied X-Request-ID for end-to-end correlation
func requestID(c *fiber.Ctx) error {
	id := c.Get("X-Request-ID")
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	c.Locals("requestID", id)
	c.Set("X-Request-ID", id)
	return c.Next()
}

// contentTypeValidator ensures POST requests have application/json
func contentTypeValidator(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		contentType := c.Get("Content-Type")
		if contentType != "application/json" && contentType != "" {
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(core.ErrorResponse{
				Error:   "unsupported media type",
				Code:    core.ErrCodeInvalidContent,
				Details: "Content-Type must be application/json",
			})
		}
	}
	return c.Next()
}
