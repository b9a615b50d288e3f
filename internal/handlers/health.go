package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// HealthCheck reports service liveness.
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "apexscore-api",
	})
}
