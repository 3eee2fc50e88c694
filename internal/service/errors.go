package service

import "errors"

// Domain conditions raised by the services and mapped to 4xx at the controllers.
var (
	ErrSessionNotFound       = errors.New("session not found")
	ErrDocumentNotFound      = errors.New("document not found for the given session")
	ErrAssessmentNotFound    = errors.New("assessment not found for the given session")
	ErrEmptyDocument         = errors.New("document content is empty")
	ErrDocumentExists        = errors.New("session already has a document")
	ErrAssessmentExists      = errors.New("session already has an assessment")
	ErrUnknownAssessmentType = errors.New("unknown assessment type, use 'essay' or 'mcq'")
	ErrNoQuestionsGenerated  = errors.New("no questions were generated")
	ErrAnswerCountMismatch   = errors.New("user answers length must match correct answers length")
	ErrUnsupportedFileType   = errors.New("invalid file type, only PDF and TXT files are allowed")
	ErrEmptyExtraction       = errors.New("failed to extract text from the document")
)
