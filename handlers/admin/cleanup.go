package admin

import (
	"selfhack/database"
	"selfhack/services"

	"github.com/gofiber/fiber/v2"
)

// ManualCleanup deletes stale guest profiles. Cleanup only ever runs on
// an explicit admin request; there is no background scheduler.
func ManualCleanup(c *fiber.Ctx) error {
	svc := services.NewCleanupService(database.GetDB())

	removed, err := svc.CleanupStaleGuests()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Cleanup failed"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"removed": removed,
	})
}

// GetCleanupStats reports what a cleanup would remove.
func GetCleanupStats(c *fiber.Ctx) error {
	svc := services.NewCleanupService(database.GetDB())

	count, err := svc.StaleGuestCount()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to count stale guests"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"stats": fiber.Map{
			"stale_guests": count,
		},
	})
}
