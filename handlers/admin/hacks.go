package admin

import (
	"errors"

	"selfhack/database"
	"selfhack/services"

	"github.com/gofiber/fiber/v2"
)

// RecomputeHack re-derives a hack's progress and status from its stored
// tasks. Repair tool for records touched outside the normal toggle path.
func RecomputeHack(c *fiber.Ctx) error {
	hackID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid hack id"})
	}

	svc := services.NewHackService(database.GetDB())
	hack, err := svc.RecomputeHackProgress(uint(hackID))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Hack not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to recompute progress"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"hack":    hack,
	})
}
