package repository

import (
	"github.com/MamiyevR/i-Learner/internal/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AssessmentRepository interface {
	Create(assessment *model.Assessment) error
	FindBySessionID(sessionID uint) (*model.Assessment, error)
	UpdateResults(sessionID uint, answer, feedback datatypes.JSON, score *float64) (*model.Assessment, error)
}

type assessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) Create(assessment *model.Assessment) error {
	return r.db.Create(assessment).Error
}

func (r *assessmentRepository) FindBySessionID(sessionID uint) (*model.Assessment, error) {
	var assessment model.Assessment
	if err := r.db.Where("session_id = ?", sessionID).First(&assessment).Error; err != nil {
		return nil, err
	}
	return &assessment, nil
}

// UpdateResults overwrites the grading outcome of a session's assessment.
// Re-grading replaces prior results rather than appending to them.
func (r *assessmentRepository) UpdateResults(sessionID uint, answer, feedback datatypes.JSON, score *float64) (*model.Assessment, error) {
	assessment, err := r.FindBySessionID(sessionID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"answer":   answer,
		"feedback": feedback,
		"score":    score,
	}
	if err := r.db.Model(assessment).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.FindBySessionID(sessionID)
}
