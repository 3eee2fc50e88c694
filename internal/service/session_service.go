package service

import (
	"errors"
	"fmt"

	"github.com/MamiyevR/i-Learner/internal/dto"
	"github.com/MamiyevR/i-Learner/internal/model"
	"github.com/MamiyevR/i-Learner/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type SessionService interface {
	CreateSession(userID int) (*model.PracticeSession, error)
	GetUserSessions(userID int) ([]model.PracticeSession, error)
	GetFullSession(sessionID uint) (*dto.FullPracticeSessionResponse, error)
}

type sessionService struct {
	sessionRepo    repository.SessionRepository
	documentRepo   repository.DocumentRepository
	assessmentRepo repository.AssessmentRepository
	chatRepo       repository.ChatMessageRepository
}

func NewSessionService(
	sessionRepo repository.SessionRepository,
	documentRepo repository.DocumentRepository,
	assessmentRepo repository.AssessmentRepository,
	chatRepo repository.ChatMessageRepository,
) SessionService {
	return &sessionService{
		sessionRepo:    sessionRepo,
		documentRepo:   documentRepo,
		assessmentRepo: assessmentRepo,
		chatRepo:       chatRepo,
	}
}

func (s *sessionService) CreateSession(userID int) (*model.PracticeSession, error) {
	session := &model.PracticeSession{
		UserID: userID,
		Title:  "New Practice Session",
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	log.Info().Uint("sessionID", session.ID).Int("userID", userID).Msg("Practice session created")
	return session, nil
}

func (s *sessionService) GetUserSessions(userID int) ([]model.PracticeSession, error) {
	sessions, err := s.sessionRepo.FindAllByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for user %d: %w", userID, err)
	}
	return sessions, nil
}

// GetFullSession aggregates the session's document, assessment and chat
// history. Document and assessment stay nil while the session is empty.
func (s *sessionService) GetFullSession(sessionID uint) (*dto.FullPracticeSessionResponse, error) {
	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session %d: %w", sessionID, err)
	}

	response := &dto.FullPracticeSessionResponse{
		ID:           session.ID,
		ChatMessages: []dto.ChatMessageResponse{},
	}

	document, err := s.documentRepo.FindBySessionID(sessionID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load document for session %d: %w", sessionID, err)
	}
	if document != nil {
		var documentResponse dto.DocumentResponse
		if err := copier.Copy(&documentResponse, document); err != nil {
			return nil, fmt.Errorf("failed to map document: %w", err)
		}
		response.Document = &documentResponse
	}

	assessment, err := s.assessmentRepo.FindBySessionID(sessionID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load assessment for session %d: %w", sessionID, err)
	}
	if assessment != nil {
		var assessmentResponse dto.AssessmentResponse
		if err := copier.Copy(&assessmentResponse, assessment); err != nil {
			return nil, fmt.Errorf("failed to map assessment: %w", err)
		}
		response.Assessment = &assessmentResponse
	}

	messages, err := s.chatRepo.FindAllBySessionID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat messages for session %d: %w", sessionID, err)
	}
	if err := copier.Copy(&response.ChatMessages, &messages); err != nil {
		return nil, fmt.Errorf("failed to map chat messages: %w", err)
	}

	return response, nil
}
