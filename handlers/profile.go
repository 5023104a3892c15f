// handlers/profile.go
package handlers

import (
	"errors"
	"time"

	"selfhack/database"
	"selfhack/middleware"
	"selfhack/models"
	"selfhack/services"

	"github.com/gofiber/fiber/v2"
)

type UpdateStreakRequest struct {
	Increment bool `json:"increment"`
}

// GetProfile returns the full progression snapshot for the dashboard.
func GetProfile(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	var profile models.Profile
	if err := db.First(&profile, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Profile not found"})
	}

	now := time.Now()
	return c.JSON(fiber.Map{
		"success":            true,
		"level":              profile.Level,
		"xp":                 profile.XP,
		"xp_to_next_level":   profile.XPToNextLevel,
		"rank":               profile.Rank,
		"streak":             profile.Streak,
		"hacks_completed":    profile.HacksCompleted,
		"plan":               profile.Plan,
		"effective_plan":     services.EffectivePlan(&profile, now),
		"plan_expires_at":    profile.PlanExpiresAt,
		"messages_remaining": services.RemainingMessages(&profile, now),
	})
}

// UpdateStreak increments or resets the daily streak.
func UpdateStreak(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req UpdateStreakRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	profile, err := progressionSvc.UpdateStreak(userID, req.Increment)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update streak"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"streak":  profile.Streak,
	})
}

// AwardXP applies a direct XP award (used by clients for one-off bonuses).
func AwardXP(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req struct {
		Amount int    `json:"amount"`
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Amount <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "XP amount must be positive"})
	}

	profile, err := progressionSvc.AwardXP(userID, req.Amount)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to award XP"})
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"xp_awarded":       req.Amount,
		"level":            profile.Level,
		"xp":               profile.XP,
		"xp_to_next_level": profile.XPToNextLevel,
		"rank":             profile.Rank,
		"reason":           req.Reason,
	})
}
