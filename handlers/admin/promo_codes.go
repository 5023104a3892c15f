package admin

import (
	"strings"
	"time"

	"selfhack/database"
	"selfhack/models"

	"github.com/gofiber/fiber/v2"
)

type CreatePromoCodeRequest struct {
	Code         string     `json:"code"`
	Plan         string     `json:"plan"`
	DurationDays int        `json:"duration_days"`
	MaxUses      int        `json:"max_uses"`
	ExpiresAt    *time.Time `json:"expires_at"`
}

// GetPromoCodes lists all codes, newest first.
func GetPromoCodes(c *fiber.Ctx) error {
	db := database.GetDB()

	var codes []models.PromoCode
	if err := db.Order("created_at DESC").Find(&codes).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch promo codes"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"codes":   codes,
		"total":   len(codes),
	})
}

// CreatePromoCode creates a new promo code.
func CreatePromoCode(c *fiber.Ctx) error {
	var req CreatePromoCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	if req.Code == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Code is required"})
	}
	if !models.PaidPlan(req.Plan) {
		return c.Status(400).JSON(fiber.Map{"error": "Plan must be premium or pro"})
	}
	if req.DurationDays <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Duration must be positive"})
	}
	if req.MaxUses <= 0 {
		req.MaxUses = 1
	}

	db := database.GetDB()
	code := models.PromoCode{
		Code:         req.Code,
		Plan:         req.Plan,
		DurationDays: req.DurationDays,
		MaxUses:      req.MaxUses,
		IsActive:     true,
		ExpiresAt:    req.ExpiresAt,
	}

	if err := db.Create(&code).Error; err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Failed to create promo code (duplicate?)"})
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"code":    code,
	})
}

// SetPromoCodeActive flips a code's active flag.
func SetPromoCodeActive(c *fiber.Ctx) error {
	id := c.Params("id")

	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	db := database.GetDB()
	var code models.PromoCode
	if err := db.First(&code, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Promo code not found"})
	}

	if err := db.Model(&code).Update("is_active", req.IsActive).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update promo code"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"code":    code,
	})
}

// DeletePromoCode removes a code. Existing redemptions keep their plans.
func DeletePromoCode(c *fiber.Ctx) error {
	id := c.Params("id")

	db := database.GetDB()
	res := db.Delete(&models.PromoCode{}, id)
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete promo code"})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "Promo code not found"})
	}

	return c.JSON(fiber.Map{"success": true})
}
