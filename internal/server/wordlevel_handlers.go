package server

import (
	"net/http"
	"strconv"

	"github.com/example/readapt/internal/adaptation"
	"github.com/example/readapt/pkg/models"
	"github.com/gin-gonic/gin"
)

// getWordSequence returns the word-by-word four-level sequence for one
// paragraph. An empty array means no word-level data is available and the
// client should fall back to whole-paragraph display.
func (s *Server) getWordSequence(c *gin.Context) {
	contentID, err := strconv.ParseInt(c.Query("contentId"), 10, 64)
	if err != nil || contentID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contentId"})
		return
	}
	paragraphIndex, err := strconv.Atoi(c.Query("paragraphIndex"))
	if err != nil || paragraphIndex < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid paragraphIndex"})
		return
	}

	wl, err := s.wordLevels.Get(contentID, paragraphIndex)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if wl == nil {
		c.JSON(http.StatusOK, []models.WordSequenceEntry{})
		return
	}
	c.JSON(http.StatusOK, wl.WordSequence)
}

type pregenerateWordLevelsRequest struct {
	ContentID  int64                       `json:"contentId" binding:"required,min=1"`
	Paragraphs []adaptation.ParagraphInput `json:"paragraphs" binding:"required,min=1,dive"`
}

// pregenerateWordLevels generates word sequences for a batch of paragraphs
func (s *Server) pregenerateWordLevels(c *gin.Context) {
	var req pregenerateWordLevelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for _, p := range req.Paragraphs {
		if p.Index < 0 || p.Text == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "paragraphs need a non-negative index and non-empty text"})
			return
		}
	}

	count, err := s.orchestrator.PregenerateWordLevels(req.ContentID, req.Paragraphs)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"done": true, "count": count})
}
