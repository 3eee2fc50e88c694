package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MamiyevR/i-Learner/internal/model"
	"github.com/MamiyevR/i-Learner/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ChatService runs the per-session tutoring conversation. A session must have
// both a document and an assessment before chat opens; nothing is persisted
// until those checks pass.
type ChatService interface {
	ProcessChatMessage(ctx context.Context, sessionID uint, userID int, message string) (string, error)
}

type chatService struct {
	chatRepo       repository.ChatMessageRepository
	documentRepo   repository.DocumentRepository
	assessmentRepo repository.AssessmentRepository
	provider       AIProvider
}

func NewChatService(
	chatRepo repository.ChatMessageRepository,
	documentRepo repository.DocumentRepository,
	assessmentRepo repository.AssessmentRepository,
	provider AIProvider,
) ChatService {
	return &chatService{
		chatRepo:       chatRepo,
		documentRepo:   documentRepo,
		assessmentRepo: assessmentRepo,
		provider:       provider,
	}
}

func (s *chatService) ProcessChatMessage(ctx context.Context, sessionID uint, userID int, message string) (string, error) {
	if _, err := s.documentRepo.FindBySessionID(sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrDocumentNotFound
		}
		return "", fmt.Errorf("failed to load document for session %d: %w", sessionID, err)
	}
	assessment, err := s.assessmentRepo.FindBySessionID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrAssessmentNotFound
		}
		return "", fmt.Errorf("failed to load assessment for session %d: %w", sessionID, err)
	}

	userMessage := &model.ChatMessage{
		SessionID: sessionID,
		UserID:    userID,
		Message:   message,
		Sender:    model.SenderUser,
	}
	if err := s.chatRepo.Create(userMessage); err != nil {
		return "", fmt.Errorf("failed to save user message: %w", err)
	}

	reply, err := s.provider.Chat(ctx, message, string(assessment.Content))
	if err != nil && !errors.Is(err, ErrDegraded) {
		return "", err
	}

	botMessage := &model.ChatMessage{
		SessionID: sessionID,
		UserID:    userID,
		Message:   reply,
		Sender:    model.SenderBot,
	}
	if err := s.chatRepo.Create(botMessage); err != nil {
		return "", fmt.Errorf("failed to save bot message: %w", err)
	}

	log.Info().Uint("sessionID", sessionID).Int("userID", userID).Msg("Chat message processed")
	return reply, nil
}
