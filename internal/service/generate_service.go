package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/MamiyevR/i-Learner/internal/model"
	"github.com/MamiyevR/i-Learner/internal/repository"
	"github.com/MamiyevR/i-Learner/internal/schema"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GenerateService builds an assessment from a session's stored document text.
type GenerateService interface {
	GenerateQuestion(ctx context.Context, sessionID uint, userID int, assessmentType string) (*model.Assessment, error)
}

type generateService struct {
	documentRepo   repository.DocumentRepository
	assessmentRepo repository.AssessmentRepository
	sessionRepo    repository.SessionRepository
	provider       AIProvider
}

func NewGenerateService(
	documentRepo repository.DocumentRepository,
	assessmentRepo repository.AssessmentRepository,
	sessionRepo repository.SessionRepository,
	provider AIProvider,
) GenerateService {
	return &generateService{
		documentRepo:   documentRepo,
		assessmentRepo: assessmentRepo,
		sessionRepo:    sessionRepo,
		provider:       provider,
	}
}

// GenerateQuestion generates essay or MCQ content for the session's document
// and persists it as the session's assessment. The document must exist and
// have non-empty content before any gateway call is made.
func (s *generateService) GenerateQuestion(ctx context.Context, sessionID uint, userID int, assessmentType string) (*model.Assessment, error) {
	document, err := s.documentRepo.FindBySessionID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to load document for session %d: %w", sessionID, err)
	}
	if strings.TrimSpace(document.Content) == "" {
		return nil, ErrEmptyDocument
	}

	if _, err := s.assessmentRepo.FindBySessionID(sessionID); err == nil {
		return nil, ErrAssessmentExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing assessment: %w", err)
	}

	// Best effort; the title is cosmetic and not tied to generation.
	title := fmt.Sprintf("%s - %s", document.Filename, assessmentType)
	if err := s.sessionRepo.UpdateTitle(sessionID, title); err != nil {
		log.Warn().Err(err).Uint("sessionID", sessionID).Msg("Failed to update session title")
	}

	var content interface{}
	switch assessmentType {
	case model.AssessmentTypeEssay:
		essay, genErr := s.provider.GenerateEssay(ctx, document.Content)
		if genErr != nil && !errors.Is(genErr, ErrDegraded) {
			return nil, genErr
		}
		content = essay
	case model.AssessmentTypeMCQ:
		mcq, genErr := s.provider.GenerateMCQ(ctx, document.Content)
		if genErr != nil && !errors.Is(genErr, ErrDegraded) {
			return nil, genErr
		}
		if len(mcq.Questions) == 0 {
			return nil, ErrNoQuestionsGenerated
		}
		shuffleDistractors(mcq.Questions)
		content = mcq
	default:
		return nil, ErrUnknownAssessmentType
	}

	contentJSON, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("failed to encode assessment content: %w", err)
	}

	assessment := &model.Assessment{
		SessionID: sessionID,
		UserID:    userID,
		Type:      assessmentType,
		Content:   datatypes.JSON(contentJSON),
	}
	if err := s.assessmentRepo.Create(assessment); err != nil {
		return nil, fmt.Errorf("failed to save assessment: %w", err)
	}

	log.Info().Uint("sessionID", sessionID).Str("type", assessmentType).Msg("Assessment generated")
	return assessment, nil
}

// shuffleDistractors permutes each question's distractors independently. The
// shuffle happens exactly once, before the content is persisted, so the stored
// order is stable across reads.
func shuffleDistractors(questions []schema.MCQQuestion) {
	for i := range questions {
		rand.Shuffle(len(questions[i].Distractors), func(a, b int) {
			questions[i].Distractors[a], questions[i].Distractors[b] = questions[i].Distractors[b], questions[i].Distractors[a]
		})
	}
}
