// handlers/services.go - Shared service instances wired at startup
package handlers

import (
	"selfhack/services"

	"gorm.io/gorm"
)

var (
	progressionSvc *services.ProgressionService
	entitlementSvc *services.EntitlementService
	promoSvc       *services.PromoService
	hackSvc        *services.HackService
	goalSvc        *services.GoalService
	chatSvc        *services.ChatService

	// mentorSvc stays nil when no API credential is configured; the chat
	// endpoints then answer with a recoverable error instead of crashing.
	mentorSvc *services.MentorService
)

// InitHandlers wires the handler package to its services. Called once
// from main after the database is up.
func InitHandlers(db *gorm.DB, mentor *services.MentorService) {
	progressionSvc = services.NewProgressionService(db)
	entitlementSvc = services.NewEntitlementService(db)
	promoSvc = services.NewPromoService(db)
	hackSvc = services.NewHackService(db)
	goalSvc = services.NewGoalService(db)
	chatSvc = services.NewChatService(db)
	mentorSvc = mentor
}
