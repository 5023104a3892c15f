// models/goal.go
package models

import (
	"time"
)

// GoalCompletionXP is the fixed bonus awarded the first time a goal is
// marked complete. Toggling back does not revoke it.
const GoalCompletionXP = 150

type Goal struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      *Profile  `gorm:"foreignKey:UserID" json:"-"`
	Title     string    `gorm:"not null;size:200" json:"title"`
	Deadline  time.Time `json:"deadline"`
	Completed bool      `gorm:"default:false" json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
