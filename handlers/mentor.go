// handlers/mentor.go - AI coach chat, quota-metered
package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"selfhack/database"
	"selfhack/middleware"
	"selfhack/models"
	"selfhack/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const (
	mentorReplyTimeout = 30 * time.Second
	chatHistoryLimit   = 50
)

type SendMessageRequest struct {
	Message string `json:"message"`
}

func GetChatHistory(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	messages, err := chatSvc.History(userID, chatHistoryLimit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch messages"})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"messages": messages,
	})
}

// SendMessage spends one message from the quota, asks the mentor for a
// reply, and persists both sides of the exchange.
func SendMessage(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil || req.Message == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Message is required"})
	}

	profile, remaining, err := entitlementSvc.UseMessage(userID)
	if err != nil {
		return quotaError(c, profile, err)
	}

	reply, err := mentorReply(c.Context(), userID, req.Message)
	if err != nil {
		return c.Status(503).JSON(fiber.Map{
			"error": "Mentor is unreachable right now. Please try again.",
		})
	}

	if _, err := chatSvc.SaveMessage(userID, models.ChatRoleUser, req.Message); err != nil {
		log.Printf("Failed to save user message: %v", err)
	}
	if _, err := chatSvc.SaveMessage(userID, models.ChatRoleAssistant, reply); err != nil {
		log.Printf("Failed to save assistant message: %v", err)
	}

	return c.JSON(fiber.Map{
		"success":            true,
		"reply":              reply,
		"messages_remaining": remaining,
	})
}

func ClearChatHistory(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	if err := chatSvc.ClearHistory(userID); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to clear history"})
	}

	return c.JSON(fiber.Map{"success": true})
}

func GetRemainingMessages(c *fiber.Ctx) error {
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
		"plan":               services.EffectivePlan(&profile, now),
		"messages_remaining": services.RemainingMessages(&profile, now),
	})
}

// MentorLive is the long-lived chat session. Each inbound text frame is
// one quota-metered message; the reply streams back on the same socket.
// Closing the connection from either side tears the session down.
func MentorLive() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		defer conn.Close()

		userID, ok := wsUserID(conn)
		if !ok {
			_ = conn.WriteJSON(fiber.Map{"error": "Not authenticated"})
			return
		}

		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				// Client closed the session.
				return
			}
			message := string(payload)
			if message == "" {
				continue
			}

			profile, remaining, err := entitlementSvc.UseMessage(userID)
			if err != nil {
				_ = conn.WriteJSON(fiber.Map{"error": quotaMessage(profile, err)})
				continue
			}

			ctx, cancel := context.WithTimeout(context.Background(), mentorReplyTimeout)
			reply, err := mentorReplyCtx(ctx, userID, message)
			cancel()
			if err != nil {
				_ = conn.WriteJSON(fiber.Map{"error": "Mentor is unreachable right now. Please try again."})
				continue
			}

			if _, err := chatSvc.SaveMessage(userID, models.ChatRoleUser, message); err != nil {
				log.Printf("Failed to save user message: %v", err)
			}
			if _, err := chatSvc.SaveMessage(userID, models.ChatRoleAssistant, reply); err != nil {
				log.Printf("Failed to save assistant message: %v", err)
			}

			if err := conn.WriteJSON(fiber.Map{
				"reply":              reply,
				"messages_remaining": remaining,
			}); err != nil {
				return
			}
		}
	})
}

// Helper functions

func mentorReply(ctx context.Context, userID uint, message string) (string, error) {
	replyCtx, cancel := context.WithTimeout(ctx, mentorReplyTimeout)
	defer cancel()
	return mentorReplyCtx(replyCtx, userID, message)
}

func mentorReplyCtx(ctx context.Context, userID uint, message string) (string, error) {
	if mentorSvc == nil {
		return "", services.ErrUpstreamUnavailable
	}

	history, err := chatSvc.History(userID, chatHistoryLimit)
	if err != nil {
		history = nil
	}
	return mentorSvc.CoachReply(ctx, history, message)
}

func quotaError(c *fiber.Ctx, profile *models.Profile, err error) error {
	switch {
	case errors.Is(err, services.ErrQuotaExceeded):
		return c.Status(403).JSON(fiber.Map{
			"error":              quotaMessage(profile, err),
			"messages_remaining": 0,
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Profile not found"})
	default:
		return c.Status(503).JSON(fiber.Map{"error": "Service temporarily unavailable. Please retry."})
	}
}

// quotaMessage distinguishes the free lifetime cap from the paid monthly
// window in the user-visible text.
func quotaMessage(profile *models.Profile, err error) string {
	if !errors.Is(err, services.ErrQuotaExceeded) {
		return "Service temporarily unavailable. Please retry."
	}
	if profile != nil && services.EffectivePlan(profile, time.Now()) != models.PlanFree {
		return "Monthly message limit reached. Your allowance resets next cycle."
	}
	return "Lifetime message limit reached. Upgrade your plan to keep chatting."
}

func wsUserID(conn *websocket.Conn) (uint, bool) {
	switch v := conn.Locals("userId").(type) {
	case float64:
		return uint(v), true
	case uint:
		return v, true
	default:
		return 0, false
	}
}
