package repository

import (
	"github.com/MamiyevR/i-Learner/internal/model"
	"gorm.io/gorm"
)

type DocumentRepository interface {
	Create(document *model.Document) error
	FindBySessionID(sessionID uint) (*model.Document, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(document *model.Document) error {
	return r.db.Create(document).Error
}

func (r *documentRepository) FindBySessionID(sessionID uint) (*model.Document, error) {
	var document model.Document
	if err := r.db.Where("session_id = ?", sessionID).First(&document).Error; err != nil {
		return nil, err
	}
	return &document, nil
}
