package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/MamiyevR/i-Learner/config"
	"github.com/MamiyevR/i-Learner/internal/dto"
	"github.com/MamiyevR/i-Learner/internal/model"
	"github.com/MamiyevR/i-Learner/internal/repository"
	"github.com/MamiyevR/i-Learner/internal/schema"
	"github.com/MamiyevR/i-Learner/internal/service"
)

type stubProvider struct {
	essay      schema.EssayContent
	mcq        schema.MCQContent
	essayGrade schema.EssayGradingResponse
	mcqGrade   schema.MCQGradingResponse
	chatReply  string
	summary    schema.SummaryResponse
}

func (s *stubProvider) GenerateEssay(ctx context.Context, content string) (schema.EssayContent, error) {
	return s.essay, nil
}

func (s *stubProvider) GenerateMCQ(ctx context.Context, content string) (schema.MCQContent, error) {
	return s.mcq, nil
}

func (s *stubProvider) GradeEssay(ctx context.Context, essay, prompt, expectedAnswer, content string) (schema.EssayGradingResponse, error) {
	return s.essayGrade, nil
}

func (s *stubProvider) GradeMCQ(ctx context.Context, questions, userAnswers, correctAnswers []string) (schema.MCQGradingResponse, error) {
	return s.mcqGrade, nil
}

func (s *stubProvider) Chat(ctx context.Context, message, assessmentContent string) (string, error) {
	return s.chatReply, nil
}

func (s *stubProvider) Summarize(ctx context.Context, content string) (schema.SummaryResponse, error) {
	return s.summary, nil
}

func newTestRouter(t *testing.T, provider service.AIProvider) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.PracticeSession{},
		&model.Document{},
		&model.Assessment{},
		&model.ChatMessage{},
	))

	sessionRepo := repository.NewSessionRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	chatRepo := repository.NewChatMessageRepository(db)

	cfg := &config.Config{Upload: config.Upload{Dir: filepath.Join(t.TempDir(), "uploads")}}

	ctrl := NewController(
		service.NewSessionService(sessionRepo, documentRepo, assessmentRepo, chatRepo),
		service.NewDocumentService(documentRepo, sessionRepo, provider, cfg),
		service.NewGenerateService(documentRepo, assessmentRepo, sessionRepo, provider),
		service.NewFeedbackService(assessmentRepo, documentRepo, provider),
		service.NewChatService(chatRepo, documentRepo, assessmentRepo, provider),
	)

	router := gin.New()
	ctrl.RegisterRoutes(router)
	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doUpload(t *testing.T, router *gin.Engine, path, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createSession(t *testing.T, router *gin.Engine) uint {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/new_session/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.PracticeSessionBase
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestFullSessionLifecycle(t *testing.T) {
	provider := &stubProvider{
		mcq: schema.MCQContent{Questions: []schema.MCQQuestion{
			{Question: "Capital of France?", Distractors: []string{"Lyon", "Nice", "Lille"}, CorrectAnswer: "Paris"},
			{Question: "2+2?", Distractors: []string{"3", "5", "22"}, CorrectAnswer: "4"},
		}},
		mcqGrade:  schema.MCQGradingResponse{Feedback: []string{"Correct.", "Check your arithmetic."}},
		chatReply: "Happy to help.",
		summary:   schema.SummaryResponse{Summary: "Trivia.", Keyword: "trivia"},
	}
	router, _ := newTestRouter(t, provider)

	sessionID := createSession(t, router)
	idStr := itoa(sessionID)

	w := doUpload(t, router, "/upload/"+idStr, "trivia.txt", "text/plain", []byte("France and arithmetic trivia."))
	require.Equal(t, http.StatusOK, w.Code)
	var docResp dto.DocumentBase
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &docResp))
	assert.Equal(t, "trivia.txt", docResp.Filename)

	w = doJSON(t, router, http.MethodPost, "/generate/"+idStr, dto.GenerateRequest{UserID: 1, AssessmentType: "mcq"})
	require.Equal(t, http.StatusOK, w.Code)
	var genResp dto.AssessmentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &genResp))
	assert.Equal(t, "mcq", genResp.Type)
	assert.Nil(t, genResp.Score)

	w = doJSON(t, router, http.MethodPost, "/grade/"+idStr, dto.GradeRequest{UserAnswer: []string{"Paris", "5"}})
	require.Equal(t, http.StatusOK, w.Code)
	var gradeResp dto.AssessmentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &gradeResp))
	require.NotNil(t, gradeResp.Score)
	assert.Equal(t, 1.0, *gradeResp.Score)

	w = doJSON(t, router, http.MethodPost, "/chat/"+idStr, dto.ChatRequest{UserID: 1, Message: "Why is Paris the capital?"})
	require.Equal(t, http.StatusOK, w.Code)
	var chatResp dto.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &chatResp))
	assert.Equal(t, "Happy to help.", chatResp.Response)

	w = doJSON(t, router, http.MethodGet, "/session/"+idStr, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var full dto.FullPracticeSessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &full))
	require.NotNil(t, full.Document)
	require.NotNil(t, full.Assessment)
	require.Len(t, full.ChatMessages, 2)
	assert.Equal(t, "user", full.ChatMessages[0].Sender)
	assert.Equal(t, "bot", full.ChatMessages[1].Sender)

	w = doJSON(t, router, http.MethodGet, "/sessions/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sessions dto.PracticeSessionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sessions))
	require.Len(t, sessions.Sessions, 1)
	assert.Equal(t, "trivia.txt - mcq", sessions.Sessions[0].Title)
}

func TestGenerateWithoutDocumentReturns404(t *testing.T) {
	router, _ := newTestRouter(t, &stubProvider{})
	sessionID := createSession(t, router)

	w := doJSON(t, router, http.MethodPost, "/generate/"+itoa(sessionID), dto.GenerateRequest{UserID: 1, AssessmentType: "essay"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateInvalidTypeRejectedByBinding(t *testing.T) {
	router, _ := newTestRouter(t, &stubProvider{})
	sessionID := createSession(t, router)

	w := doJSON(t, router, http.MethodPost, "/generate/"+itoa(sessionID),
		map[string]interface{}{"user_id": 1, "assessment_type": "oral"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatBeforeSetupReturns404AndWritesNothing(t *testing.T) {
	router, db := newTestRouter(t, &stubProvider{chatReply: "hi"})
	sessionID := createSession(t, router)

	w := doJSON(t, router, http.MethodPost, "/chat/"+itoa(sessionID), dto.ChatRequest{UserID: 1, Message: "hello"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	require.NoError(t, db.Model(&model.ChatMessage{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUploadUnsupportedTypeReturns400(t *testing.T) {
	router, _ := newTestRouter(t, &stubProvider{})
	sessionID := createSession(t, router)

	w := doUpload(t, router, "/upload/"+itoa(sessionID), "image.png", "image/png", []byte{0x89})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSecondUploadReturns400(t *testing.T) {
	router, _ := newTestRouter(t, &stubProvider{})
	sessionID := createSession(t, router)
	idStr := itoa(sessionID)

	w := doUpload(t, router, "/upload/"+idStr, "a.txt", "text/plain", []byte("first"))
	require.Equal(t, http.StatusOK, w.Code)
	w = doUpload(t, router, "/upload/"+idStr, "b.txt", "text/plain", []byte("second"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUnknownSessionReturns404(t *testing.T) {
	router, _ := newTestRouter(t, &stubProvider{})

	w := doJSON(t, router, http.MethodGet, "/session/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvalidSessionIDReturns400(t *testing.T) {
	router, _ := newTestRouter(t, &stubProvider{})

	w := doJSON(t, router, http.MethodGet, "/session/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGradeWithEmptyAnswersRejectedByBinding(t *testing.T) {
	router, _ := newTestRouter(t, &stubProvider{})
	sessionID := createSession(t, router)

	w := doJSON(t, router, http.MethodPost, "/grade/"+itoa(sessionID),
		map[string]interface{}{"user_answer": []string{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRootBanner(t *testing.T) {
	router, _ := newTestRouter(t, &stubProvider{})

	w := doJSON(t, router, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Assessment generation API")
}
