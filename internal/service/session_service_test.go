package service

import (
	"testing"
	"time"

	"github.com/MamiyevR/i-Learner/internal/model"
	"github.com/MamiyevR/i-Learner/internal/repository"
	"github.com/MamiyevR/i-Learner/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSessionFixture(t *testing.T) (SessionService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewSessionService(
		repository.NewSessionRepository(db),
		repository.NewDocumentRepository(db),
		repository.NewAssessmentRepository(db),
		repository.NewChatMessageRepository(db),
	)
	return svc, db
}

func TestCreateSessionDefaults(t *testing.T) {
	svc, _ := newSessionFixture(t)

	session, err := svc.CreateSession(7)
	require.NoError(t, err)
	assert.NotZero(t, session.ID)
	assert.Equal(t, 7, session.UserID)
	assert.Equal(t, "New Practice Session", session.Title)
}

func TestGetUserSessionsNewestFirstAndScoped(t *testing.T) {
	svc, db := newSessionFixture(t)

	older := &model.PracticeSession{UserID: 1, Title: "older", CreatedAt: time.Now().Add(-time.Hour)}
	newer := &model.PracticeSession{UserID: 1, Title: "newer", CreatedAt: time.Now()}
	other := &model.PracticeSession{UserID: 2, Title: "other user"}
	require.NoError(t, db.Create(older).Error)
	require.NoError(t, db.Create(newer).Error)
	require.NoError(t, db.Create(other).Error)

	sessions, err := svc.GetUserSessions(1)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "newer", sessions[0].Title)
	assert.Equal(t, "older", sessions[1].Title)
}

func TestGetUserSessionsEmpty(t *testing.T) {
	svc, _ := newSessionFixture(t)

	sessions, err := svc.GetUserSessions(99)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestGetFullSessionEmptySession(t *testing.T) {
	svc, db := newSessionFixture(t)
	session := &model.PracticeSession{UserID: 1}
	require.NoError(t, db.Create(session).Error)

	full, err := svc.GetFullSession(session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, full.ID)
	assert.Nil(t, full.Document)
	assert.Nil(t, full.Assessment)
	assert.Empty(t, full.ChatMessages)
}

func TestGetFullSessionAggregate(t *testing.T) {
	svc, db := newSessionFixture(t)
	sessionID := seedAssessment(t, db, model.AssessmentTypeEssay,
		schema.EssayContent{Prompt: "p", ExpectedAnswer: "a"})
	require.NoError(t, db.Create(&model.ChatMessage{
		SessionID: sessionID, UserID: 1, Message: "hi", Sender: model.SenderUser,
	}).Error)
	require.NoError(t, db.Create(&model.ChatMessage{
		SessionID: sessionID, UserID: 1, Message: "hello", Sender: model.SenderBot,
	}).Error)

	full, err := svc.GetFullSession(sessionID)
	require.NoError(t, err)
	require.NotNil(t, full.Document)
	assert.Equal(t, "notes.txt", full.Document.Filename)
	require.NotNil(t, full.Assessment)
	assert.Equal(t, model.AssessmentTypeEssay, full.Assessment.Type)
	require.Len(t, full.ChatMessages, 2)
	assert.Equal(t, "hi", full.ChatMessages[0].Message)
	assert.Equal(t, "hello", full.ChatMessages[1].Message)
}

func TestGetFullSessionUnknownID(t *testing.T) {
	svc, _ := newSessionFixture(t)

	_, err := svc.GetFullSession(404)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

// Reading a session is a pure query; calling it twice changes nothing.
func TestGetFullSessionIdempotent(t *testing.T) {
	svc, db := newSessionFixture(t)
	sessionID := seedAssessment(t, db, model.AssessmentTypeEssay,
		schema.EssayContent{Prompt: "p", ExpectedAnswer: "a"})

	first, err := svc.GetFullSession(sessionID)
	require.NoError(t, err)
	second, err := svc.GetFullSession(sessionID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
