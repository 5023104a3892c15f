// main.go
package main

import (
	"errors"
	"log"
	"os"
	"time"

	"selfhack/database"
	"selfhack/handlers"
	"selfhack/handlers/admin"
	"selfhack/middleware"
	"selfhack/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Validate critical environment variables
	validateEnvironment()

	// Initialize database
	database.InitDB()
	defer func() {
		if err := database.CloseDB(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Construct the AI mentor client up front. A missing credential is a
	// degraded mode, not a crash: chat endpoints answer with a retryable
	// error until the key is configured.
	mentor, err := services.NewMentorService(os.Getenv("OPENAI_API_KEY"), os.Getenv("OPENAI_MODEL"))
	if err != nil {
		if errors.Is(err, services.ErrMissingCredential) {
			log.Println("Warning: OPENAI_API_KEY not set, mentor chat disabled")
		} else {
			log.Fatalf("Failed to construct mentor client: %v", err)
		}
	}

	// Wire handler services
	handlers.InitHandlers(database.GetDB(), mentor)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    1 * 1024 * 1024, // 1MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// Apply rate limiting to all routes
	app.Use(middleware.FiberRateLimitMiddleware())

	// API Routes
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.FiberAuthRateLimitMiddleware())
	authGroup.Post("/guest", handlers.GuestLogin)
	authGroup.Post("/login", handlers.Login)
	authGroup.Post("/register", handlers.Register)
	authGroup.Post("/upgrade", middleware.AuthMiddleware, handlers.UpgradeGuest)
	authGroup.Get("/me", middleware.AuthMiddleware, handlers.Me)

	// Profile / progression routes
	api.Get("/profile", middleware.AuthMiddleware, handlers.GetProfile)
	api.Post("/profile/streak", middleware.AuthMiddleware, handlers.UpdateStreak)
	api.Post("/profile/xp", middleware.AuthMiddleware, handlers.AwardXP)

	// Goal routes
	api.Get("/goals", middleware.AuthMiddleware, handlers.GetGoals)
	api.Post("/goals", middleware.AuthMiddleware, handlers.CreateGoal)
	api.Post("/goals/:id/toggle", middleware.AuthMiddleware, handlers.ToggleGoal)
	api.Delete("/goals/:id", middleware.AuthMiddleware, handlers.DeleteGoal)

	// Hack routes
	api.Get("/hacks", middleware.AuthMiddleware, handlers.GetHacks)
	api.Post("/hacks", middleware.AuthMiddleware, handlers.CreateHack)
	api.Post("/hacks/tasks/:taskId/toggle", middleware.AuthMiddleware, handlers.ToggleTask)
	api.Put("/hacks/:id/status", middleware.AuthMiddleware, handlers.UpdateHackStatus)
	api.Delete("/hacks/:id", middleware.AuthMiddleware, handlers.DeleteHack)

	// Mentor chat routes
	api.Get("/mentor/messages", middleware.AuthMiddleware, handlers.GetChatHistory)
	api.Post("/mentor/messages", middleware.AuthMiddleware, handlers.SendMessage)
	api.Delete("/mentor/messages", middleware.AuthMiddleware, handlers.ClearChatHistory)
	api.Get("/mentor/quota", middleware.AuthMiddleware, handlers.GetRemainingMessages)
	api.Get("/mentor/live", middleware.WebSocketAuthMiddleware, handlers.MentorLive())

	// Promo / subscription routes
	api.Post("/promo/redeem", middleware.AuthMiddleware, handlers.RedeemCode)
	api.Get("/promo/check", middleware.AuthMiddleware, handlers.CheckCode)
	api.Get("/promo/redemptions", middleware.AuthMiddleware, handlers.GetRedemptions)
	api.Get("/subscription", middleware.AuthMiddleware, handlers.GetSubscription)

	// Admin routes
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AdminAuthMiddleware)
	adminGroup.Get("/users", admin.GetUsers)
	adminGroup.Get("/users/:id", admin.GetUser)
	adminGroup.Get("/promo-codes", admin.GetPromoCodes)
	adminGroup.Post("/promo-codes", admin.CreatePromoCode)
	adminGroup.Put("/promo-codes/:id/active", admin.SetPromoCodeActive)
	adminGroup.Delete("/promo-codes/:id", admin.DeletePromoCode)
	adminGroup.Post("/hacks/:id/recompute", admin.RecomputeHack)
	adminGroup.Post("/cleanup", admin.ManualCleanup)
	adminGroup.Get("/cleanup/stats", admin.GetCleanupStats)

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	// Start HTTP server
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("🚀 HTTP server starting on port %s", port)
	log.Printf("📊 Environment: %s", getEnv("APP_ENV", "development"))
	log.Printf("🤖 Mentor chat enabled: %v", mentor != nil)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
