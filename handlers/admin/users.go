package admin

import (
	"selfhack/database"
	"selfhack/models"

	"github.com/gofiber/fiber/v2"
)

// GetUsers returns all profiles with pagination
func GetUsers(c *fiber.Ctx) error {
	db := database.GetDB()

	// Get pagination parameters
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	search := c.Query("search", "")

	offset := (page - 1) * limit

	var profiles []models.Profile
	var total int64

	query := db.Model(&models.Profile{})

	// Apply search filter if provided
	if search != "" {
		query = query.Where("username LIKE ? OR email LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	// Get total count
	query.Count(&total)

	// Get paginated profiles
	if err := query.Offset(offset).Limit(limit).Find(&profiles).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to fetch users",
		})
	}

	return c.JSON(fiber.Map{
		"users": profiles,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GetUser returns a single profile by ID
func GetUser(c *fiber.Ctx) error {
	db := database.GetDB()
	id := c.Params("id")

	var profile models.Profile
	if err := db.First(&profile, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	return c.JSON(fiber.Map{
		"user": profile,
	})
}
