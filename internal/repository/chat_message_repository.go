package repository

import (
	"github.com/MamiyevR/i-Learner/internal/model"
	"gorm.io/gorm"
)

type ChatMessageRepository interface {
	Create(message *model.ChatMessage) error
	FindAllBySessionID(sessionID uint) ([]model.ChatMessage, error)
}

type chatMessageRepository struct {
	db *gorm.DB
}

func NewChatMessageRepository(db *gorm.DB) ChatMessageRepository {
	return &chatMessageRepository{db: db}
}

func (r *chatMessageRepository) Create(message *model.ChatMessage) error {
	return r.db.Create(message).Error
}

// FindAllBySessionID returns the session's messages in creation order for replay.
func (r *chatMessageRepository) FindAllBySessionID(sessionID uint) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	if err := r.db.Where("session_id = ?", sessionID).Order("created_at ASC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
