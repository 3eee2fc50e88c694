package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	AssessmentTypeEssay = "essay"
	AssessmentTypeMCQ   = "mcq"
)

// Assessment is one generated exercise plus its grading outcome. Content is set
// at creation; Answer, Feedback and Score are filled by a later grading pass.
// Type is immutable after creation and constrains the shape of Content/Answer.
type Assessment struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	SessionID uint           `json:"session_id" gorm:"not null;uniqueIndex"`
	UserID    int            `json:"user_id" gorm:"index"`
	Type      string         `json:"type" gorm:"not null;check:type IN ('mcq','essay')"`
	Content   datatypes.JSON `json:"content"`  // essay: {prompt, expected_answer}; mcq: {questions}
	Answer    datatypes.JSON `json:"answer"`   // list of answer strings
	Feedback  datatypes.JSON `json:"feedback"` // list of feedback strings
	Score     *float64       `json:"score"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
