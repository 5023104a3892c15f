// handlers/promo.go - Promo redemption and subscription status
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

type RedeemCodeRequest struct {
	Code string `json:"code"`
}

// RedeemCode applies a promo code to the authenticated user.
func RedeemCode(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req RedeemCodeRequest
	if err := c.BodyParser(&req); err != nil || req.Code == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Promo code is required"})
	}

	result, err := promoSvc.RedeemCode(userID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCode):
			// Deliberately generic: don't reveal which precondition failed.
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid or expired promo code",
			})
		case errors.Is(err, services.ErrAlreadyRedeemed):
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"error":   "You have already used this promo code",
			})
		case errors.Is(err, services.ErrNotFound):
			return c.Status(404).JSON(fiber.Map{
				"success": false,
				"error":   "Profile not found",
			})
		default:
			return c.Status(503).JSON(fiber.Map{
				"success": false,
				"error":   "Service temporarily unavailable. Please retry.",
			})
		}
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"message":    result.Message,
		"plan":       result.Plan,
		"expires_at": result.ExpiresAt,
	})
}

// CheckCode is the pre-flight validation the subscription screen runs
// before offering the redeem button. Same generic failure text as
// RedeemCode so the two endpoints can't be played against each other.
func CheckCode(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	code := c.Query("code")
	if code == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Promo code is required"})
	}

	if err := promoSvc.CanUseCode(userID, code); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCode):
			return c.JSON(fiber.Map{
				"success": true,
				"valid":   false,
				"reason":  "Invalid or expired promo code",
			})
		case errors.Is(err, services.ErrAlreadyRedeemed):
			return c.JSON(fiber.Map{
				"success": true,
				"valid":   false,
				"reason":  "You have already used this promo code",
			})
		default:
			return c.Status(503).JSON(fiber.Map{"error": "Service temporarily unavailable. Please retry."})
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"valid":   true,
	})
}

// GetRedemptions returns the user's redemption history.
func GetRedemptions(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	redemptions, err := promoSvc.RedemptionHistory(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch redemptions"})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"redemptions": redemptions,
		"total":       len(redemptions),
	})
}

// GetSubscription reports the effective plan and allowance for the
// subscription screen.
func GetSubscription(c *fiber.Ctx) error {
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
	effective := services.EffectivePlan(&profile, now)
	limit := models.PlanLimits[effective]

	return c.JSON(fiber.Map{
		"success":            true,
		"plan":               profile.Plan,
		"effective_plan":     effective,
		"plan_active":        services.IsPlanActive(&profile, now),
		"plan_expires_at":    profile.PlanExpiresAt,
		"messages_limit":     limit.Messages,
		"messages_remaining": services.RemainingMessages(&profile, now),
		"lifetime_window":    limit.IsLifetime,
	})
}
