package repository

import (
	"github.com/MamiyevR/i-Learner/internal/model"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(session *model.PracticeSession) error
	FindByID(id uint) (*model.PracticeSession, error)
	FindAllByUser(userID int) ([]model.PracticeSession, error)
	UpdateTitle(id uint, title string) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *model.PracticeSession) error {
	return r.db.Create(session).Error
}

func (r *sessionRepository) FindByID(id uint) (*model.PracticeSession, error) {
	var session model.PracticeSession
	if err := r.db.First(&session, id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindAllByUser(userID int) ([]model.PracticeSession, error) {
	var sessions []model.PracticeSession
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) UpdateTitle(id uint, title string) error {
	return r.db.Model(&model.PracticeSession{}).Where("id = ?", id).Update("title", title).Error
}
