package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MamiyevR/i-Learner/internal/model"
	"github.com/MamiyevR/i-Learner/internal/repository"
	"github.com/MamiyevR/i-Learner/internal/schema"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FeedbackService grades a session's assessment against the user's answers and
// persists answer, feedback and score onto the assessment row.
type FeedbackService interface {
	ProcessAssessmentFeedback(ctx context.Context, sessionID uint, userAnswer []string) (*model.Assessment, error)
}

type feedbackService struct {
	assessmentRepo repository.AssessmentRepository
	documentRepo   repository.DocumentRepository
	provider       AIProvider
}

func NewFeedbackService(
	assessmentRepo repository.AssessmentRepository,
	documentRepo repository.DocumentRepository,
	provider AIProvider,
) FeedbackService {
	return &feedbackService{
		assessmentRepo: assessmentRepo,
		documentRepo:   documentRepo,
		provider:       provider,
	}
}

func (s *feedbackService) ProcessAssessmentFeedback(ctx context.Context, sessionID uint, userAnswer []string) (*model.Assessment, error) {
	assessment, err := s.assessmentRepo.FindBySessionID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to load assessment for session %d: %w", sessionID, err)
	}
	document, err := s.documentRepo.FindBySessionID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to load document for session %d: %w", sessionID, err)
	}

	var result schema.FeedbackWithScore
	switch assessment.Type {
	case model.AssessmentTypeMCQ:
		result, err = s.mcqFeedback(ctx, assessment, userAnswer)
	case model.AssessmentTypeEssay:
		if len(userAnswer) == 0 {
			return nil, ErrAnswerCountMismatch
		}
		result, err = s.essayFeedback(ctx, assessment, document, userAnswer[0])
	default:
		err = ErrUnknownAssessmentType
	}
	if err != nil {
		return nil, err
	}

	answerJSON, err := json.Marshal(userAnswer)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user answer: %w", err)
	}
	feedbackJSON, err := json.Marshal(result.Feedback)
	if err != nil {
		return nil, fmt.Errorf("failed to encode feedback: %w", err)
	}

	updated, err := s.assessmentRepo.UpdateResults(sessionID, datatypes.JSON(answerJSON), datatypes.JSON(feedbackJSON), &result.Score)
	if err != nil {
		return nil, fmt.Errorf("failed to update assessment: %w", err)
	}

	log.Info().Uint("sessionID", sessionID).Str("type", assessment.Type).Float64("score", result.Score).Msg("Assessment graded")
	return updated, nil
}

// mcqFeedback computes the authoritative score mechanically: one point per
// position where the user's answer equals the stored correct answer, exact
// string match. The gateway contributes explanatory feedback only.
func (s *feedbackService) mcqFeedback(ctx context.Context, assessment *model.Assessment, userAnswers []string) (schema.FeedbackWithScore, error) {
	var content schema.MCQContent
	if err := json.Unmarshal(assessment.Content, &content); err != nil {
		return schema.FeedbackWithScore{}, fmt.Errorf("failed to decode MCQ content: %w", err)
	}

	questions := make([]string, len(content.Questions))
	correctAnswers := make([]string, len(content.Questions))
	for i, q := range content.Questions {
		questions[i] = q.Question
		correctAnswers[i] = q.CorrectAnswer
	}

	if len(userAnswers) != len(correctAnswers) {
		return schema.FeedbackWithScore{}, ErrAnswerCountMismatch
	}

	score := 0.0
	for i := range userAnswers {
		if userAnswers[i] == correctAnswers[i] {
			score++
		}
	}

	grading, err := s.provider.GradeMCQ(ctx, questions, userAnswers, correctAnswers)
	if err != nil && !errors.Is(err, ErrDegraded) {
		return schema.FeedbackWithScore{}, err
	}
	feedback := grading.Feedback
	if feedback == nil {
		feedback = []string{}
	}

	return schema.FeedbackWithScore{Feedback: feedback, Score: score}, nil
}

// essayFeedback delegates both the score and feedback to the gateway; for
// essays the model is the authority.
func (s *feedbackService) essayFeedback(ctx context.Context, assessment *model.Assessment, document *model.Document, essayText string) (schema.FeedbackWithScore, error) {
	var content schema.EssayContent
	if err := json.Unmarshal(assessment.Content, &content); err != nil {
		return schema.FeedbackWithScore{}, fmt.Errorf("failed to decode essay content: %w", err)
	}

	grading, err := s.provider.GradeEssay(ctx, essayText, content.Prompt, content.ExpectedAnswer, document.Content)
	if err != nil && !errors.Is(err, ErrDegraded) {
		return schema.FeedbackWithScore{}, err
	}

	return schema.FeedbackWithScore{
		Feedback: []string{grading.Feedback},
		Score:    grading.Score,
	}, nil
}
