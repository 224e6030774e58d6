package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// respond writes the standard response envelope. Every success body carries a
// stable message_key alongside the human-readable message, same as errors.
func respond(c *fiber.Ctx, status int, key, message string, data any) error {
	body := fiber.Map{
		"message_key": key,
		"message":     message,
	}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}
