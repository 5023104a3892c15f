// models/chat.go
package models

import (
	"time"
)

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one side of a mentor-chat exchange.
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      *Profile  `gorm:"foreignKey:UserID" json:"-"`
	Role      string    `gorm:"not null;size:20" json:"role"`
	Content   string    `gorm:"not null;type:text" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
