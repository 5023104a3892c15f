// services/hacks.go - Hack/task CRUD and progress aggregation
package services

import (
	"errors"
	"math"

	"selfhack/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ComputeProgress derives a hack's completion percentage and status from
// its tasks. A hack with no tasks sits at 0% active. The aggregator never
// produces "failed"; that transition is a manual override only.
func ComputeProgress(tasks []models.Task) (int, string) {
	if len(tasks) == 0 {
		return 0, models.HackStatusActive
	}

	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}

	progress := int(math.Round(float64(completed) / float64(len(tasks)) * 100))
	if progress == 100 {
		return progress, models.HackStatusCompleted
	}
	return progress, models.HackStatusActive
}

// NewTaskInput is one task of a hack being created, manual or AI-decomposed.
type NewTaskInput struct {
	Title      string `json:"title"`
	Difficulty string `json:"difficulty"`
	XP         int    `json:"xp"`
}

type HackService struct {
	db *gorm.DB
}

func NewHackService(db *gorm.DB) *HackService {
	return &HackService{db: db}
}

// ListHacks returns the user's hacks with tasks, newest hack first.
func (s *HackService) ListHacks(userID uint) ([]models.Hack, error) {
	var hacks []models.Hack
	err := s.db.Preload("Tasks", func(db *gorm.DB) *gorm.DB {
		return db.Order("tasks.created_at ASC")
	}).Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&hacks).Error
	if err != nil {
		return nil, err
	}
	return hacks, nil
}

// CreateHack creates a hack and its tasks in one transaction.
func (s *HackService) CreateHack(userID uint, title, description string, tasks []NewTaskInput) (*models.Hack, error) {
	hack := models.Hack{
		UserID:      userID,
		Title:       title,
		Description: description,
		Progress:    0,
		Status:      models.HackStatusActive,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&hack).Error; err != nil {
			return err
		}

		for _, t := range tasks {
			difficulty := t.Difficulty
			if !models.ValidDifficulty(difficulty) {
				difficulty = models.DifficultyMedium
			}
			task := models.Task{
				HackID:     hack.ID,
				Title:      t.Title,
				Difficulty: difficulty,
				XP:         t.XP,
				Completed:  false,
			}
			if err := tx.Create(&task).Error; err != nil {
				return err
			}
			hack.Tasks = append(hack.Tasks, task)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &hack, nil
}

// ToggleTask flips a task's completion. Returns the updated task, the
// owning hack after progress recomputation, and whether this toggle was a
// first-time completion (the only transition that earns the task's XP).
func (s *HackService) ToggleTask(userID, taskID uint) (*models.Task, *models.Hack, bool, error) {
	var task models.Task
	var hack models.Hack
	newlyCompleted := false

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&task, taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		// Ownership check through the hack record.
		if err := tx.Where("id = ? AND user_id = ?", task.HackID, userID).
			First(&hack).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		newlyCompleted = !task.Completed
		task.Completed = !task.Completed
		if err := tx.Model(&models.Task{}).Where("id = ?", task.ID).
			Update("completed", task.Completed).Error; err != nil {
			return err
		}

		return recomputeProgress(tx, &hack)
	})
	if err != nil {
		return nil, nil, false, err
	}
	return &task, &hack, newlyCompleted, nil
}

// RecomputeHackProgress re-derives progress/status from the stored tasks
// and persists the result. Idempotent.
func (s *HackService) RecomputeHackProgress(hackID uint) (*models.Hack, error) {
	var hack models.Hack
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&hack, hackID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return recomputeProgress(tx, &hack)
	})
	if err != nil {
		return nil, err
	}
	return &hack, nil
}

func recomputeProgress(tx *gorm.DB, hack *models.Hack) error {
	var tasks []models.Task
	if err := tx.Where("hack_id = ?", hack.ID).Find(&tasks).Error; err != nil {
		return err
	}

	progress, status := ComputeProgress(tasks)

	hack.Progress = progress
	hack.Status = status
	hack.Tasks = tasks
	return tx.Model(&models.Hack{}).Where("id = ?", hack.ID).
		Updates(map[string]interface{}{"progress": progress, "status": status}).Error
}

// SetStatus is the manual status override, including "failed".
func (s *HackService) SetStatus(userID, hackID uint, status string) (*models.Hack, error) {
	if status != models.HackStatusActive && status != models.HackStatusCompleted &&
		status != models.HackStatusFailed {
		return nil, errors.New("invalid hack status")
	}

	var hack models.Hack
	err := s.db.Where("id = ? AND user_id = ?", hackID, userID).First(&hack).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.db.Model(&hack).Update("status", status).Error; err != nil {
		return nil, err
	}
	hack.Status = status
	return &hack, nil
}

// DeleteHack removes a hack and its tasks.
func (s *HackService) DeleteHack(userID, hackID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var hack models.Hack
		if err := tx.Where("id = ? AND user_id = ?", hackID, userID).
			First(&hack).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Where("hack_id = ?", hackID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(&hack).Error
	})
}
