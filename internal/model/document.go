package model

import (
	"time"

	"gorm.io/datatypes"
)

// Document holds one uploaded file's extracted text. One document per session.
type Document struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	SessionID   uint           `json:"session_id" gorm:"not null;uniqueIndex"`
	Filename    string         `json:"filename" gorm:"index"`
	Path        string         `json:"path"`
	Content     string         `json:"content" gorm:"type:text"`
	DocMetadata datatypes.JSON `json:"doc_metadata"` // content type, size, optional summary
	CreatedAt   time.Time      `json:"created_at"`
}
