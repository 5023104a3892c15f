// services/goals.go - Deadline-bound goal CRUD
package services

import (
	"errors"
	"time"

	"selfhack/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GoalService struct {
	db *gorm.DB
}

func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{db: db}
}

func (s *GoalService) ListGoals(userID uint) ([]models.Goal, error) {
	var goals []models.Goal
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&goals).Error
	if err != nil {
		return nil, err
	}
	return goals, nil
}

func (s *GoalService) CreateGoal(userID uint, title string, deadline time.Time) (*models.Goal, error) {
	if title == "" {
		return nil, errors.New("goal title is required")
	}

	goal := models.Goal{
		UserID:   userID,
		Title:    title,
		Deadline: deadline,
	}
	if err := s.db.Create(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

// ToggleGoal flips completion and reports whether this was a first-time
// completion, which is the only transition that earns the fixed XP bonus.
func (s *GoalService) ToggleGoal(userID, goalID uint) (*models.Goal, bool, error) {
	var goal models.Goal
	newlyCompleted := false

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", goalID, userID).
			First(&goal).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		newlyCompleted = !goal.Completed
		goal.Completed = !goal.Completed
		return tx.Model(&models.Goal{}).Where("id = ?", goal.ID).
			Update("completed", goal.Completed).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &goal, newlyCompleted, nil
}

func (s *GoalService) DeleteGoal(userID, goalID uint) error {
	res := s.db.Where("id = ? AND user_id = ?", goalID, userID).Delete(&models.Goal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
