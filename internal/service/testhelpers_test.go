package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"testing"

	"github.com/MamiyevR/i-Learner/internal/model"
	"github.com/MamiyevR/i-Learner/internal/schema"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.PracticeSession{},
		&model.Document{},
		&model.Assessment{},
		&model.ChatMessage{},
	))
	return db
}

// fakeProvider is a canned-response AIProvider. Call counters let tests assert
// that failing paths never reach the gateway.
type fakeProvider struct {
	essay       schema.EssayContent
	essayErr    error
	mcq         schema.MCQContent
	mcqErr      error
	essayGrade  schema.EssayGradingResponse
	essayGrdErr error
	mcqGrade    schema.MCQGradingResponse
	mcqGrdErr   error
	chatReply   string
	chatErr     error
	summary     schema.SummaryResponse
	summaryErr  error

	generateCalls int
	gradeCalls    int
	chatCalls     int
}

func (f *fakeProvider) GenerateEssay(ctx context.Context, content string) (schema.EssayContent, error) {
	f.generateCalls++
	return f.essay, f.essayErr
}

func (f *fakeProvider) GenerateMCQ(ctx context.Context, content string) (schema.MCQContent, error) {
	f.generateCalls++
	return f.mcq, f.mcqErr
}

func (f *fakeProvider) GradeEssay(ctx context.Context, essay, prompt, expectedAnswer, content string) (schema.EssayGradingResponse, error) {
	f.gradeCalls++
	return f.essayGrade, f.essayGrdErr
}

func (f *fakeProvider) GradeMCQ(ctx context.Context, questions, userAnswers, correctAnswers []string) (schema.MCQGradingResponse, error) {
	f.gradeCalls++
	return f.mcqGrade, f.mcqGrdErr
}

func (f *fakeProvider) Chat(ctx context.Context, message, assessmentContent string) (string, error) {
	f.chatCalls++
	return f.chatReply, f.chatErr
}

func (f *fakeProvider) Summarize(ctx context.Context, content string) (schema.SummaryResponse, error) {
	return f.summary, f.summaryErr
}

// makeFileHeader builds a *multipart.FileHeader the way gin's FormFile would,
// by writing and re-parsing a real multipart form.
func makeFileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
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

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(int64(len(data)) + 1024)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}
