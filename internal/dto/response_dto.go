package dto

import (
	"time"

	"gorm.io/datatypes"
)

type PracticeSessionBase struct {
	ID uint `json:"id"`
}

type PracticeSessionResponse struct {
	ID        uint      `json:"id"`
	UserID    int       `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type PracticeSessionsResponse struct {
	Sessions []PracticeSessionResponse `json:"sessions"`
}

// DocumentBase is the upload result: ids and storage location only.
type DocumentBase struct {
	ID       uint   `json:"id"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

type DocumentResponse struct {
	ID          uint           `json:"id"`
	SessionID   uint           `json:"session_id"`
	Filename    string         `json:"filename"`
	Path        string         `json:"path"`
	Content     string         `json:"content"`
	DocMetadata datatypes.JSON `json:"doc_metadata"`
	CreatedAt   time.Time      `json:"created_at"`
}

type AssessmentResponse struct {
	ID        uint           `json:"id"`
	SessionID uint           `json:"session_id"`
	UserID    int            `json:"user_id"`
	Type      string         `json:"type"`
	Content   datatypes.JSON `json:"content"`
	Answer    datatypes.JSON `json:"answer"`
	Feedback  datatypes.JSON `json:"feedback"`
	Score     *float64       `json:"score"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type ChatMessageResponse struct {
	ID        uint      `json:"id"`
	SessionID uint      `json:"session_id"`
	UserID    int       `json:"user_id"`
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// FullPracticeSessionResponse aggregates everything a session holds. Document
// and Assessment are null until uploaded/generated.
type FullPracticeSessionResponse struct {
	ID           uint                  `json:"id"`
	Document     *DocumentResponse     `json:"document"`
	Assessment   *AssessmentResponse   `json:"assessment"`
	ChatMessages []ChatMessageResponse `json:"chat_messages"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
