// models/hack.go
package models

import (
	"time"
)

const (
	HackStatusActive    = "active"
	HackStatusCompleted = "completed"
	HackStatusFailed    = "failed"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Hack is a goal-decomposition plan made of ordered tasks.
// Progress and status are derived from the tasks, never edited directly.
type Hack struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	UserID      uint     `gorm:"not null;index" json:"user_id"`
	User        *Profile `gorm:"foreignKey:UserID" json:"-"`
	Title       string   `gorm:"not null;size:200" json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	Progress    int      `gorm:"default:0" json:"progress"`
	Status      string   `gorm:"default:'active';size:20" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tasks []Task `gorm:"foreignKey:HackID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
}

// Task belongs to exactly one hack. Completing a task for the first time
// awards its XP to the owning profile; un-completing awards nothing back.
type Task struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	HackID     uint      `gorm:"not null;index" json:"hack_id"`
	Hack       *Hack     `gorm:"foreignKey:HackID" json:"-"`
	Title      string    `gorm:"not null;size:200" json:"title"`
	Difficulty string    `gorm:"default:'medium';size:20" json:"difficulty"`
	XP         int       `gorm:"default:0" json:"xp"`
	Completed  bool      `gorm:"default:false" json:"completed"`
	CreatedAt  time.Time `json:"created_at"`
}

// ValidDifficulty reports whether s is a known task difficulty.
func ValidDifficulty(s string) bool {
	return s == DifficultyEasy || s == DifficultyMedium || s == DifficultyHard
}
