package genjobhttp

import (
	"github.com/Abraxas-365/packwright/pkg/errx"
	"github.com/Abraxas-365/packwright/pkg/logx"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler translates errors into JSON responses. Wire it as the fiber
// app's ErrorHandler so every handler can just return its error.
func ErrorHandler(c *fiber.Ctx, err error) error {
	logx.WithFields(logx.Fields{
		"path":       c.Path(),
		"method":     c.Method(),
		"request_id": c.Get("X-Request-ID"),
	}).Errorf("request error: %v", err)

	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error":  e.Message,
			"code":   "HTTP_ERROR",
			"status": e.Code,
		})
	}

	var e *errx.Error
	if errx.As(err, &e) {
		response := fiber.Map{
			"error":  e.Message,
			"code":   e.Code,
			"type":   string(e.Type),
			"status": e.HTTPStatus,
		}
		if len(e.Details) > 0 {
			response["details"] = e.Details
		}
		return c.Status(e.HTTPStatus).JSON(response)
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":  "Internal server error",
		"code":   "INTERNAL_ERROR",
		"status": fiber.StatusInternalServerError,
	})
}
