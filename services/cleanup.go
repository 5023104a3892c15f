// services/cleanup.go - Stale guest account cleanup (admin-triggered)
package services

import (
	"log"
	"time"

	"selfhack/models"

	"gorm.io/gorm"
)

// GuestRetention is how long an inactive guest profile is kept around.
const GuestRetention = 30 * 24 * time.Hour

type CleanupService struct {
	db *gorm.DB
}

func NewCleanupService(db *gorm.DB) *CleanupService {
	return &CleanupService{db: db}
}

// CleanupStaleGuests deletes guest profiles with no activity inside the
// retention window, together with everything they own. There is no
// background scheduler; an admin triggers this explicitly.
func (s *CleanupService) CleanupStaleGuests() (int, error) {
	cutoff := time.Now().Add(-GuestRetention)

	var stale []models.Profile
	if err := s.db.Where("is_guest = ? AND last_login < ?", true, cutoff).
		Find(&stale).Error; err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}

	ids := make([]uint, len(stale))
	for i, p := range stale {
		ids[i] = p.ID
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("hack_id IN (SELECT id FROM hacks WHERE user_id IN ?)", ids).
			Delete(&models.Task{}).Error; err != nil {
			return err
		}
		for _, model := range []interface{}{
			&models.Hack{}, &models.Goal{}, &models.ChatMessage{}, &models.PromoRedemption{},
		} {
			if err := tx.Where("user_id IN ?", ids).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Profile{}, ids).Error
	})
	if err != nil {
		return 0, err
	}

	log.Printf("✅ Cleaned up %d stale guest profiles", len(stale))
	return len(stale), nil
}

// StaleGuestCount reports how many guest profiles a cleanup would remove.
func (s *CleanupService) StaleGuestCount() (int64, error) {
	cutoff := time.Now().Add(-GuestRetention)

	var count int64
	err := s.db.Model(&models.Profile{}).
		Where("is_guest = ? AND last_login < ?", true, cutoff).
		Count(&count).Error
	return count, err
}
