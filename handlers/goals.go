// handlers/goals.go
package handlers

import (
	"errors"
	"time"

	"selfhack/middleware"
	"selfhack/models"
	"selfhack/services"

	"github.com/gofiber/fiber/v2"
)

type CreateGoalRequest struct {
	Title    string `json:"title"`
	Deadline string `json:"deadline"` // RFC 3339 or YYYY-MM-DD
}

func GetGoals(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	goals, err := goalSvc.ListGoals(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch goals"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"goals":   goals,
		"total":   len(goals),
	})
}

func CreateGoal(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req CreateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid deadline"})
	}

	goal, err := goalSvc.CreateGoal(userID, req.Title, deadline)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"goal":    goal,
	})
}

// ToggleGoal flips completion. The first completion earns a fixed XP
// bonus; toggling back never revokes it.
func ToggleGoal(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	goalID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid goal id"})
	}

	goal, newlyCompleted, err := goalSvc.ToggleGoal(userID, uint(goalID))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Goal not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to toggle goal"})
	}

	response := fiber.Map{
		"success": true,
		"goal":    goal,
	}

	if newlyCompleted {
		profile, err := progressionSvc.AwardXP(userID, models.GoalCompletionXP)
		if err == nil {
			response["xp_awarded"] = models.GoalCompletionXP
			response["level"] = profile.Level
			response["xp"] = profile.XP
			response["rank"] = profile.Rank
		}
	}

	return c.JSON(response)
}

func DeleteGoal(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	goalID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid goal id"})
	}

	if err := goalSvc.DeleteGoal(userID, uint(goalID)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Goal not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete goal"})
	}

	return c.JSON(fiber.Map{"success": true})
}

func parseDeadline(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
