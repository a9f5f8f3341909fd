package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/refill-spot/site/db"
)

// HandleHealth returns the health status of the application
func HandleHealth(c *fiber.Ctx) error {
	health := map[string]string{
		"status": "ok",
	}

	if err := db.Get().Ping(); err != nil {
		health["status"] = "unhealthy"
		health["database"] = "down"
		c.Status(fiber.StatusServiceUnavailable)
	} else {
		health["database"] = "up"
	}

	c.Set("Content-Type", "application/json")
	return json.NewEncoder(c).Encode(health)
}
