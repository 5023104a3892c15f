// database/migrate.go - Database Migration Runner
package database

import (
	"log"
	"selfhack/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	// Core application models
	if err := db.AutoMigrate(
		&models.Profile{},
		&models.Goal{},
		&models.Hack{},
		&models.Task{},
		&models.ChatMessage{},
		&models.PromoCode{},
		&models.PromoRedemption{},
	); err != nil {
		log.Fatalf("❌ Failed to run core migrations: %v", err)
	}

	log.Println("✅ Core migrations completed")

	// Create indexes for core tables
	createCoreIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createCoreIndexes creates indexes for core tables
func createCoreIndexes() {
	db := GetDB()
	log.Println("Creating core indexes...")

	// Profile indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_profiles_username ON profiles(username)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_profiles_level ON profiles(level DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_profiles_plan ON profiles(plan)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_profiles_guest ON profiles(is_guest)")

	// Goal and hack indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_goals_user ON goals(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_goals_deadline ON goals(deadline)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_hacks_user ON hacks(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_hacks_status ON hacks(status)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_tasks_hack ON tasks(hack_id)")

	// Chat indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_chat_messages_user ON chat_messages(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_chat_messages_created ON chat_messages(created_at)")

	// Promo indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_promo_codes_code ON promo_codes(code)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_promo_codes_active ON promo_codes(is_active)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_redemptions_user ON promo_redemptions(user_id)")

	log.Println("✅ Core indexes created successfully")
}
