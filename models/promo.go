// models/promo.go
package models

import (
	"time"
)

// PromoCode grants a paid plan for a fixed number of days.
type PromoCode struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Code         string     `gorm:"uniqueIndex;not null;size:50" json:"code"`
	Plan         string     `gorm:"not null;size:20" json:"plan"`
	DurationDays int        `gorm:"not null" json:"duration_days"`
	MaxUses      int        `gorm:"default:1" json:"max_uses"`
	CurrentUses  int        `gorm:"default:0" json:"current_uses"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	ExpiresAt    *time.Time `json:"expires_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// PromoRedemption records a single use of a code by a user.
// The composite unique index enforces at-most-once per user per code.
type PromoRedemption struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;uniqueIndex:idx_redemptions_user_code" json:"user_id"`
	User        *Profile   `gorm:"foreignKey:UserID" json:"-"`
	PromoCodeID uint       `gorm:"not null;uniqueIndex:idx_redemptions_user_code" json:"promo_code_id"`
	PromoCode   *PromoCode `gorm:"foreignKey:PromoCodeID" json:"promo_code,omitempty"`
	RedeemedAt  time.Time  `json:"redeemed_at"`
}
