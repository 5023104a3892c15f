// services/progression.go - XP accumulation, level-up cascade, rank assignment
package services

import (
	"errors"

	"selfhack/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RankForLevel maps a level to its rank label. First match wins.
func RankForLevel(level int) string {
	switch {
	case level >= 50:
		return "REALITY_MASTER"
	case level >= 40:
		return "NEURAL_ARCHITECT"
	case level >= 30:
		return "SYSTEM_HACKER"
	case level >= 20:
		return "NEURAL_OPTIMIZER"
	case level >= 10:
		return "MIND_ENGINEER"
	case level >= 5:
		return "PROTOCOL_RUNNER"
	default:
		return "INITIATE"
	}
}

// ApplyXP adds amount to the profile snapshot and cascades level-ups until
// xp < xp_to_next_level again. Each level-up raises the threshold by 20%
// (truncated). The rank is recomputed from the final level. Returns the
// number of levels gained. Negative amounts are ignored.
func ApplyXP(p *models.Profile, amount int) int {
	if amount <= 0 {
		return 0
	}

	p.XP += amount
	gained := 0
	for p.XP >= p.XPToNextLevel {
		p.XP -= p.XPToNextLevel
		p.Level++
		gained++
		p.XPToNextLevel = p.XPToNextLevel * 12 / 10
	}
	p.Rank = RankForLevel(p.Level)
	return gained
}

type ProgressionService struct {
	db *gorm.DB
}

func NewProgressionService(db *gorm.DB) *ProgressionService {
	return &ProgressionService{db: db}
}

// AwardXP applies an XP award to the stored profile and persists the new
// xp/level/threshold/rank as one write. The profile row is locked for the
// duration so two near-simultaneous completions cannot drop XP.
func (s *ProgressionService) AwardXP(userID uint, amount int) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&profile, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		ApplyXP(&profile, amount)
		return tx.Save(&profile).Error
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateStreak increments the streak or resets it to zero.
func (s *ProgressionService) UpdateStreak(userID uint, increment bool) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&profile, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if increment {
			profile.Streak++
		} else {
			profile.Streak = 0
		}
		return tx.Save(&profile).Error
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// IncrementHacksCompleted bumps the completed-hacks counter. Called once,
// when a hack first transitions to completed.
func (s *ProgressionService) IncrementHacksCompleted(userID uint) error {
	res := s.db.Model(&models.Profile{}).Where("id = ?", userID).
		UpdateColumn("hacks_completed", gorm.Expr("hacks_completed + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
