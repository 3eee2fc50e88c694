package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"github.com/MamiyevR/i-Learner/internal/dto"
	"github.com/MamiyevR/i-Learner/internal/service"
)

type Controller struct {
	sessionSvc  service.SessionService
	documentSvc service.DocumentService
	generateSvc service.GenerateService
	feedbackSvc service.FeedbackService
	chatSvc     service.ChatService
}

func NewController(
	sessionSvc service.SessionService,
	documentSvc service.DocumentService,
	generateSvc service.GenerateService,
	feedbackSvc service.FeedbackService,
	chatSvc service.ChatService,
) *Controller {
	return &Controller{
		sessionSvc:  sessionSvc,
		documentSvc: documentSvc,
		generateSvc: generateSvc,
		feedbackSvc: feedbackSvc,
		chatSvc:     chatSvc,
	}
}

func (ctrl *Controller) RegisterRoutes(router *gin.Engine) {
	router.GET("/", ctrl.RootHandler)

	router.POST("/new_session/:user_id", ctrl.CreateSessionHandler)
	router.GET("/sessions/:user_id", ctrl.GetUserSessionsHandler)
	router.GET("/session/:session_id", ctrl.GetSessionHandler)
	router.POST("/upload/:session_id", ctrl.UploadDocumentHandler)
	router.POST("/generate/:session_id", ctrl.GenerateAssessmentHandler)
	router.POST("/grade/:session_id", ctrl.GradeAssessmentHandler)
	router.POST("/chat/:session_id", ctrl.ChatHandler)
}

// errorStatus maps service errors to HTTP status codes. Anything the client
// can fix is 400, missing prerequisites are 404, the rest is 500.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrDocumentNotFound),
		errors.Is(err, service.ErrAssessmentNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrEmptyDocument),
		errors.Is(err, service.ErrDocumentExists),
		errors.Is(err, service.ErrAssessmentExists),
		errors.Is(err, service.ErrUnknownAssessmentType),
		errors.Is(err, service.ErrNoQuestionsGenerated),
		errors.Is(err, service.ErrAnswerCountMismatch),
		errors.Is(err, service.ErrUnsupportedFileType),
		errors.Is(err, service.ErrEmptyExtraction):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, dto.ErrorResponse{Error: "Internal server error"})
		return
	}
	c.JSON(status, dto.ErrorResponse{Error: err.Error()})
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(id), true
}

// RootHandler godoc
// @Summary Service banner
// @Description Confirms the API is up
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (ctrl *Controller) RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Assessment generation API"})
}

// CreateSessionHandler godoc
// @Summary Create a new practice session
// @Description Start an empty practice session for a user
// @Tags sessions
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} dto.PracticeSessionBase
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /new_session/{user_id} [post]
func (ctrl *Controller) CreateSessionHandler(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid user_id format"})
		return
	}

	session, err := ctrl.sessionSvc.CreateSession(userID)
	if err != nil {
		log.Error().Err(err).Int("userID", userID).Msg("Failed to create session")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PracticeSessionBase{ID: session.ID})
}

// GetUserSessionsHandler godoc
// @Summary List a user's practice sessions
// @Description Retrieve all of a user's sessions, newest first
// @Tags sessions
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} dto.PracticeSessionsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sessions/{user_id} [get]
func (ctrl *Controller) GetUserSessionsHandler(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid user_id format"})
		return
	}

	sessions, err := ctrl.sessionSvc.GetUserSessions(userID)
	if err != nil {
		log.Error().Err(err).Int("userID", userID).Msg("Failed to list sessions")
		respondError(c, err)
		return
	}

	resp := dto.PracticeSessionsResponse{Sessions: []dto.PracticeSessionResponse{}}
	if err := copier.Copy(&resp.Sessions, &sessions); err != nil {
		log.Error().Err(err).Msg("Failed to map sessions")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetSessionHandler godoc
// @Summary Get a full practice session
// @Description Retrieve a session with its document, assessment and chat history
// @Tags sessions
// @Produce json
// @Param session_id path int true "Session ID"
// @Success 200 {object} dto.FullPracticeSessionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid session ID format"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /session/{session_id} [get]
func (ctrl *Controller) GetSessionHandler(c *gin.Context) {
	sessionID, ok := parseID(c, "session_id")
	if !ok {
		return
	}

	full, err := ctrl.sessionSvc.GetFullSession(sessionID)
	if err != nil {
		log.Error().Err(err).Uint("sessionID", sessionID).Msg("Failed to get session")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, full)
}

// UploadDocumentHandler godoc
// @Summary Upload a source document
// @Description Attach a PDF or plain-text document to a session; its text is extracted and stored
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param session_id path int true "Session ID"
// @Param file formData file true "PDF or TXT document"
// @Success 200 {object} dto.DocumentBase
// @Failure 400 {object} dto.ErrorResponse "Unsupported file type, empty document, or document already uploaded"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /upload/{session_id} [post]
func (ctrl *Controller) UploadDocumentHandler(c *gin.Context) {
	sessionID, ok := parseID(c, "session_id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "File is required"})
		return
	}

	document, err := ctrl.documentSvc.Upload(c.Request.Context(), sessionID, fileHeader)
	if err != nil {
		log.Error().Err(err).Uint("sessionID", sessionID).Str("filename", fileHeader.Filename).Msg("Failed to upload document")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DocumentBase{ID: document.ID, Filename: document.Filename, Path: document.Path})
}

// GenerateAssessmentHandler godoc
// @Summary Generate an assessment
// @Description Generate an essay prompt or MCQ set from the session's document
// @Tags assessments
// @Accept json
// @Produce json
// @Param session_id path int true "Session ID"
// @Param request body dto.GenerateRequest true "User ID and assessment type"
// @Success 200 {object} dto.AssessmentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request, empty document, or assessment already generated"
// @Failure 404 {object} dto.ErrorResponse "Document not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /generate/{session_id} [post]
func (ctrl *Controller) GenerateAssessmentHandler(c *gin.Context) {
	sessionID, ok := parseID(c, "session_id")
	if !ok {
		return
	}

	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind GenerateRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	assessment, err := ctrl.generateSvc.GenerateQuestion(c.Request.Context(), sessionID, req.UserID, req.AssessmentType)
	if err != nil {
		log.Error().Err(err).Uint("sessionID", sessionID).Str("type", req.AssessmentType).Msg("Failed to generate assessment")
		respondError(c, err)
		return
	}

	var resp dto.AssessmentResponse
	if err := copier.Copy(&resp, assessment); err != nil {
		log.Error().Err(err).Msg("Failed to map assessment")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GradeAssessmentHandler godoc
// @Summary Grade a submitted answer
// @Description Score the user's answers against the session's assessment and attach feedback
// @Tags assessments
// @Accept json
// @Produce json
// @Param session_id path int true "Session ID"
// @Param request body dto.GradeRequest true "User answers, one per question"
// @Success 200 {object} dto.AssessmentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request or answer count mismatch"
// @Failure 404 {object} dto.ErrorResponse "Assessment or document not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /grade/{session_id} [post]
func (ctrl *Controller) GradeAssessmentHandler(c *gin.Context) {
	sessionID, ok := parseID(c, "session_id")
	if !ok {
		return
	}

	var req dto.GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind GradeRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	assessment, err := ctrl.feedbackSvc.ProcessAssessmentFeedback(c.Request.Context(), sessionID, req.UserAnswer)
	if err != nil {
		log.Error().Err(err).Uint("sessionID", sessionID).Msg("Failed to grade assessment")
		respondError(c, err)
		return
	}

	var resp dto.AssessmentResponse
	if err := copier.Copy(&resp, assessment); err != nil {
		log.Error().Err(err).Msg("Failed to map assessment")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ChatHandler godoc
// @Summary Send a chat message
// @Description One turn with the session's AI tutor; both sides of the exchange are persisted
// @Tags chat
// @Accept json
// @Produce json
// @Param session_id path int true "Session ID"
// @Param request body dto.ChatRequest true "User ID and message"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Session is missing its document or assessment"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /chat/{session_id} [post]
func (ctrl *Controller) ChatHandler(c *gin.Context) {
	sessionID, ok := parseID(c, "session_id")
	if !ok {
		return
	}

	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind ChatRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	reply, err := ctrl.chatSvc.ProcessChatMessage(c.Request.Context(), sessionID, req.UserID, req.Message)
	if err != nil {
		log.Error().Err(err).Uint("sessionID", sessionID).Msg("Failed to process chat message")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ChatResponse{Response: reply})
}
