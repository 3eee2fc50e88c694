package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/MamiyevR/i-Learner/config"
	"github.com/MamiyevR/i-Learner/internal/model"
	"github.com/MamiyevR/i-Learner/internal/repository"
	pdf "github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DocumentService handles document upload: media-type gating, text extraction,
// on-disk storage and persistence of the extracted content.
type DocumentService interface {
	Upload(ctx context.Context, sessionID uint, header *multipart.FileHeader) (*model.Document, error)
}

type documentService struct {
	documentRepo repository.DocumentRepository
	sessionRepo  repository.SessionRepository
	provider     AIProvider
	uploadDir    string
}

func NewDocumentService(
	documentRepo repository.DocumentRepository,
	sessionRepo repository.SessionRepository,
	provider AIProvider,
	cfg *config.Config,
) DocumentService {
	return &documentService{
		documentRepo: documentRepo,
		sessionRepo:  sessionRepo,
		provider:     provider,
		uploadDir:    cfg.Upload.Dir,
	}
}

// Upload validates the declared media type, extracts and cleans the text,
// stores the raw file under the upload directory (keyed by original filename,
// last write wins) and persists the Document row. The session may hold at most
// one document; a second upload fails with ErrDocumentExists.
func (s *documentService) Upload(ctx context.Context, sessionID uint, header *multipart.FileHeader) (*model.Document, error) {
	contentType := declaredMediaType(header)
	if contentType != "application/pdf" && contentType != "text/plain" {
		return nil, ErrUnsupportedFileType
	}

	if _, err := s.sessionRepo.FindByID(sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session %d: %w", sessionID, err)
	}
	if _, err := s.documentRepo.FindBySessionID(sessionID); err == nil {
		return nil, ErrDocumentExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing document: %w", err)
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	content, err := extractText(contentType, data)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyExtraction
	}

	metadata := map[string]interface{}{
		"content_type": contentType,
		"size":         header.Size,
	}
	// Best effort: attach an AI summary when the provider is functional.
	if summary, sumErr := s.provider.Summarize(ctx, content); sumErr == nil {
		metadata["summary"] = summary.Summary
		metadata["keyword"] = summary.Keyword
	} else if !errors.Is(sumErr, ErrDegraded) {
		log.Warn().Err(sumErr).Uint("sessionID", sessionID).Msg("Failed to summarize document")
	}

	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document metadata: %w", err)
	}

	filename := header.Filename
	if filename == "" {
		filename = "uploaded_file"
	}
	path, err := s.saveFile(filename, data)
	if err != nil {
		return nil, err
	}

	document := &model.Document{
		SessionID:   sessionID,
		Filename:    filename,
		Path:        path,
		Content:     content,
		DocMetadata: datatypes.JSON(metadataJSON),
	}
	if err := s.documentRepo.Create(document); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	log.Info().Uint("sessionID", sessionID).Str("filename", filename).Int("contentLength", len(content)).Msg("Document uploaded")
	return document, nil
}

func (s *documentService) saveFile(filename string, data []byte) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	// Keyed by original filename; a name collision overwrites the previous file.
	path := filepath.Join(s.uploadDir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save file to %s: %w", path, err)
	}
	return path, nil
}

func declaredMediaType(header *multipart.FileHeader) string {
	contentType := header.Header.Get("Content-Type")
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		return mediaType
	}
	return contentType
}

func extractText(contentType string, data []byte) (string, error) {
	switch contentType {
	case "application/pdf":
		return extractPDFText(data)
	case "text/plain":
		return cleanText(string(bytes.ToValidUTF8(data, nil))), nil
	default:
		return "", ErrUnsupportedFileType
	}
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEmptyExtraction, err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEmptyExtraction, err)
	}
	text, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEmptyExtraction, err)
	}
	return cleanText(string(text)), nil
}

// cleanText normalizes all whitespace runs to single spaces.
func cleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
