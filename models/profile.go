// models/profile.go
package models

import (
	"time"
)

type Profile struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Username    string  `gorm:"uniqueIndex;not null" json:"username"`
	Email       *string `gorm:"uniqueIndex" json:"email,omitempty"`
	Password    string  `gorm:"not null" json:"-"`
	DisplayName string  `json:"display_name"`
	AvatarURL   string  `json:"avatar_url"`
	IsGuest     bool    `gorm:"default:false" json:"is_guest"`
	IsAdmin     bool    `gorm:"default:false" json:"is_admin"`

	// Progression
	Level          int    `gorm:"default:1" json:"level"`
	XP             int    `gorm:"default:0" json:"xp"`
	XPToNextLevel  int    `gorm:"default:1000" json:"xp_to_next_level"`
	Streak         int    `gorm:"default:0" json:"streak"`
	HacksCompleted int    `gorm:"default:0" json:"hacks_completed"`
	Rank           string `gorm:"default:'INITIATE';size:50" json:"rank"`

	// Subscription
	Plan            string     `gorm:"default:'free';size:20" json:"plan"`
	PlanExpiresAt   *time.Time `json:"plan_expires_at"`
	MessagesUsed    int        `gorm:"default:0" json:"messages_used"`
	MessagesResetAt time.Time  `json:"messages_reset_at"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	LastLogin time.Time `json:"last_login"`

	// Relationships
	Goals []Goal `gorm:"foreignKey:UserID" json:"goals,omitempty"`
	Hacks []Hack `gorm:"foreignKey:UserID" json:"hacks,omitempty"`
}
