package server

import (
	"net/http"

	"github.com/example/readapt/pkg/models"
	"github.com/gin-gonic/gin"
)

type startSessionRequest struct {
	ContentID       int64 `json:"contentId" binding:"required,min=1"`
	DifficultyLevel int   `json:"difficultyLevel" binding:"required,min=1,max=7"`
}

// startSession begins a reading session for one piece of content
func (s *Server) startSession(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content, err := s.content.GetByID(req.ContentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if content == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
		return
	}

	session := &models.ReadingSession{
		UserID:          currentUser(c),
		ContentID:       req.ContentID,
		DifficultyLevel: req.DifficultyLevel,
	}
	if err := s.sessions.Create(session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sessionId": session.ID})
}

// getActiveSession returns the user's current active session, or null
func (s *Server) getActiveSession(c *gin.Context) {
	session, err := s.sessions.GetActiveByUserID(currentUser(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if session == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, session)
}

type updateProgressRequest struct {
	SessionID          int64 `json:"sessionId" binding:"required,min=1"`
	ParagraphIndex     int   `json:"paragraphIndex" binding:"min=0"`
	DifficultyLevel    int   `json:"difficultyLevel" binding:"required,min=1,max=7"`
	ComprehensionScore int   `json:"comprehensionScore" binding:"min=0,max=100"`
	TimeSpent          int   `json:"timeSpent" binding:"min=0"`
	ManualAdjustment   bool  `json:"manualAdjustment"`
}

// updateProgress records one paragraph's progress and advances the
// session position
func (s *Server) updateProgress(c *gin.Context) {
	var req updateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := currentUser(c)

	session, err := s.sessions.GetByID(req.SessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if session == nil || session.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	entry := &models.ProgressEntry{
		SessionID:          req.SessionID,
		UserID:             userID,
		ParagraphIndex:     req.ParagraphIndex,
		DifficultyLevel:    req.DifficultyLevel,
		ComprehensionScore: req.ComprehensionScore,
		TimeSpent:          req.TimeSpent,
		ManualAdjustment:   req.ManualAdjustment,
	}
	if err := s.progress.Create(entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := s.sessions.UpdatePosition(req.SessionID, req.ParagraphIndex, req.ParagraphIndex+1); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type updateSessionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active paused completed"`
}

// updateSessionStatus pauses, resumes, or completes a session
func (s *Server) updateSessionStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateSessionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := s.sessions.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if session == nil || session.UserID != currentUser(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	if err := s.sessions.UpdateStatus(id, req.Status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// getSessionProgress returns all progress entries for one session
func (s *Server) getSessionProgress(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	session, err := s.sessions.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if session == nil || session.UserID != currentUser(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	entries, err := s.progress.GetBySession(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

type generateQuestionsRequest struct {
	Paragraph string `json:"paragraph" binding:"required"`
	Count     int    `json:"count" binding:"min=0,max=5"`
}

// generateQuestions produces comprehension questions for a paragraph the
// user just read
func (s *Server) generateQuestions(c *gin.Context) {
	var req generateQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Count == 0 {
		req.Count = 2
	}

	questions, err := s.rewriter.GenerateQuestions(req.Paragraph, req.Count)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, questions)
}
