// services/chat.go - Mentor chat message store
package services

import (
	"selfhack/models"

	"gorm.io/gorm"
)

type ChatService struct {
	db *gorm.DB
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{db: db}
}

// History returns the user's messages oldest first, capped at limit.
func (s *ChatService) History(userID uint, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}

	var messages []models.ChatMessage
	err := s.db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *ChatService) SaveMessage(userID uint, role, content string) (*models.ChatMessage, error) {
	msg := models.ChatMessage{
		UserID:  userID,
		Role:    role,
		Content: content,
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *ChatService) ClearHistory(userID uint) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.ChatMessage{}).Error
}
