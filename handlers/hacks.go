// handlers/hacks.go
package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"selfhack/middleware"
	"selfhack/models"
	"selfhack/services"

	"github.com/gofiber/fiber/v2"
)

const decomposeTimeout = 30 * time.Second

type CreateHackRequest struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Tasks       []services.NewTaskInput `json:"tasks"`

	// Goal, when set, asks the AI mentor to decompose it into the plan
	// instead of using Title/Tasks directly.
	Goal string `json:"goal"`
}

type UpdateHackStatusRequest struct {
	Status string `json:"status"`
}

func GetHacks(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	hacks, err := hackSvc.ListHacks(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch hacks"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"hacks":   hacks,
		"total":   len(hacks),
	})
}

// CreateHack builds a hack from explicit tasks, or from an AI-decomposed
// goal when "goal" is set. Decomposition failures degrade to an empty
// plan instead of blocking the user.
func CreateHack(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req CreateHackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	title := req.Title
	description := req.Description
	tasks := req.Tasks
	degraded := false

	if req.Goal != "" {
		plan := decomposeGoal(c, req.Goal)
		if plan != nil {
			title = plan.Title
			description = plan.Description
			tasks = make([]services.NewTaskInput, 0, len(plan.Tasks))
			for _, t := range plan.Tasks {
				tasks = append(tasks, services.NewTaskInput{
					Title:      t.Title,
					Difficulty: t.Difficulty,
					XP:         t.XP,
				})
			}
		} else {
			degraded = true
			if title == "" {
				title = req.Goal
			}
		}
	}

	if title == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Hack title is required"})
	}

	hack, err := hackSvc.CreateHack(userID, title, description, tasks)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create hack"})
	}

	response := fiber.Map{
		"success": true,
		"hack":    hack,
	}
	if degraded {
		response["warning"] = "AI decomposition unavailable, created an empty plan"
	}
	return c.Status(201).JSON(response)
}

// decomposeGoal calls the mentor service, returning nil on any failure.
func decomposeGoal(c *fiber.Ctx, goal string) *services.DecomposedPlan {
	if mentorSvc == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Context(), decomposeTimeout)
	defer cancel()

	plan, err := mentorSvc.DecomposeGoal(ctx, goal)
	if err != nil {
		log.Printf("Goal decomposition failed: %v", err)
		return nil
	}
	return plan
}

// ToggleTask flips a task's completion. A first-time completion earns the
// task's XP and may complete the hack, which bumps the profile's
// hacks_completed counter. The persisted engine results are returned
// verbatim so the client mirrors server state instead of recomputing it.
func ToggleTask(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	taskID, err := c.ParamsInt("taskId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid task id"})
	}

	task, hack, newlyCompleted, err := hackSvc.ToggleTask(userID, uint(taskID))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Task not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to toggle task"})
	}

	response := fiber.Map{
		"success": true,
		"task":    task,
		"hack":    hack,
	}

	if newlyCompleted && task.XP > 0 {
		profile, err := progressionSvc.AwardXP(userID, task.XP)
		if err == nil {
			response["xp_awarded"] = task.XP
			response["level"] = profile.Level
			response["xp"] = profile.XP
			response["xp_to_next_level"] = profile.XPToNextLevel
			response["rank"] = profile.Rank
		}
	}

	if newlyCompleted && hack.Status == models.HackStatusCompleted {
		if err := progressionSvc.IncrementHacksCompleted(userID); err == nil {
			response["hack_completed"] = true
		}
	}

	return c.JSON(response)
}

// UpdateHackStatus is the manual override, the only path to "failed".
func UpdateHackStatus(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	hackID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid hack id"})
	}

	var req UpdateHackStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	hack, err := hackSvc.SetStatus(userID, uint(hackID), req.Status)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Hack not found"})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"hack":    hack,
	})
}

func DeleteHack(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	hackID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid hack id"})
	}

	if err := hackSvc.DeleteHack(userID, uint(hackID)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Hack not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete hack"})
	}

	return c.JSON(fiber.Map{"success": true})
}
