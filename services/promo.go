// services/promo.go - Promo code validation and redemption
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"selfhack/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ValidatePromoCode checks the preconditions shared by redemption and the
// pre-flight check: active, uses left, not past its own expiry. All
// failures collapse into ErrInvalidCode so callers cannot probe which one
// tripped.
func ValidatePromoCode(code *models.PromoCode, now time.Time) error {
	if code == nil || !code.IsActive {
		return ErrInvalidCode
	}
	if code.CurrentUses >= code.MaxUses {
		return ErrInvalidCode
	}
	if code.ExpiresAt != nil && !code.ExpiresAt.After(now) {
		return ErrInvalidCode
	}
	return nil
}

// NextExpiration computes where a freshly redeemed plan should expire.
// A still-active paid plan is extended from its current expiration so
// stacked codes add up; anything else counts from now.
func NextExpiration(p *models.Profile, durationDays int, now time.Time) time.Time {
	start := now
	if p.Plan != models.PlanFree && p.PlanExpiresAt != nil && p.PlanExpiresAt.After(now) {
		start = *p.PlanExpiresAt
	}
	return start.AddDate(0, 0, durationDays)
}

// RedeemResult is the success payload of a redemption.
type RedeemResult struct {
	Plan      string    `json:"plan"`
	ExpiresAt time.Time `json:"expires_at"`
	Message   string    `json:"message"`
}

type PromoService struct {
	db *gorm.DB
}

func NewPromoService(db *gorm.DB) *PromoService {
	return &PromoService{db: db}
}

// RedeemCode applies a promo code to a user. Everything runs in one
// transaction: the profile update lands first, then the redemption record
// and the usage increment. The (user, code) unique index catches the race
// where the same user redeems the same code from two devices, and the
// usage increment is conditional on uses remaining so an exhausted code
// rolls the whole redemption back.
func (s *PromoService) RedeemCode(userID uint, code string) (*RedeemResult, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, ErrInvalidCode
	}

	now := time.Now()
	var result RedeemResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var promo models.PromoCode
		if err := tx.Where("code = ?", normalized).First(&promo).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidCode
			}
			return err
		}
		if err := ValidatePromoCode(&promo, now); err != nil {
			return err
		}

		var redeemed int64
		if err := tx.Model(&models.PromoRedemption{}).
			Where("user_id = ? AND promo_code_id = ?", userID, promo.ID).
			Count(&redeemed).Error; err != nil {
			return err
		}
		if redeemed > 0 {
			return ErrAlreadyRedeemed
		}

		var profile models.Profile
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&profile, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		expiresAt := NextExpiration(&profile, promo.DurationDays, now)
		if err := tx.Model(&profile).Updates(map[string]interface{}{
			"plan":              promo.Plan,
			"plan_expires_at":   expiresAt,
			"messages_used":     0,
			"messages_reset_at": now,
		}).Error; err != nil {
			return err
		}

		redemption := models.PromoRedemption{
			UserID:      userID,
			PromoCodeID: promo.ID,
			RedeemedAt:  now,
		}
		if err := tx.Create(&redemption).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyRedeemed
			}
			return err
		}

		res := tx.Model(&models.PromoCode{}).
			Where("id = ? AND current_uses < max_uses", promo.ID).
			UpdateColumn("current_uses", gorm.Expr("current_uses + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidCode
		}

		result = RedeemResult{
			Plan:      promo.Plan,
			ExpiresAt: expiresAt,
			Message: fmt.Sprintf("Successfully activated %s for %d days!",
				strings.ToUpper(promo.Plan), promo.DurationDays),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// CanUseCode is the pre-flight check used by the subscription screen.
func (s *PromoService) CanUseCode(userID uint, code string) error {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	var promo models.PromoCode
	if err := s.db.Where("code = ?", normalized).First(&promo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCode
		}
		return err
	}
	if err := ValidatePromoCode(&promo, time.Now()); err != nil {
		return err
	}

	var redeemed int64
	if err := s.db.Model(&models.PromoRedemption{}).
		Where("user_id = ? AND promo_code_id = ?", userID, promo.ID).
		Count(&redeemed).Error; err != nil {
		return err
	}
	if redeemed > 0 {
		return ErrAlreadyRedeemed
	}
	return nil
}

// RedemptionHistory lists a user's redemptions, newest first.
func (s *PromoService) RedemptionHistory(userID uint) ([]models.PromoRedemption, error) {
	var redemptions []models.PromoRedemption
	err := s.db.Preload("PromoCode").
		Where("user_id = ?", userID).
		Order("redeemed_at DESC").
		Find(&redemptions).Error
	if err != nil {
		return nil, err
	}
	return redemptions, nil
}
