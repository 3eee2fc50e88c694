package dto

import "encoding/json"

// GenerateRequest asks for an assessment to be generated for a session.
type GenerateRequest struct {
	UserID         int    `json:"user_id" binding:"required"`
	AssessmentType string `json:"assessment_type" binding:"required,oneof=essay mcq"`
}

// GradeRequest submits the user's answers for grading. One entry for an essay,
// one entry per question for MCQ.
type GradeRequest struct {
	UserAnswer []string `json:"user_answer" binding:"required,min=1"`
}

// ChatRequest is one user turn in the tutoring conversation. DocumentContent
// and Assessment are optional client-side context; the server re-reads both
// from the store.
type ChatRequest struct {
	UserID          int             `json:"user_id" binding:"required"`
	Message         string          `json:"message" binding:"required"`
	DocumentContent *string         `json:"document_content"`
	Assessment      json.RawMessage `json:"assessment"`
}
