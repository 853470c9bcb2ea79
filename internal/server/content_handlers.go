package server

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/example/readapt/internal/adaptation"
	"github.com/example/readapt/internal/readability"
	"github.com/example/readapt/pkg/models"
	"github.com/gin-gonic/gin"
)

type levelInfo struct {
	Level       int    `json:"level"`
	CEFR        string `json:"cefr"`
	Description string `json:"description"`
}

// listLevels describes the variant difficulty levels and their CEFR
// equivalents
func (s *Server) listLevels(c *gin.Context) {
	levels := make([]levelInfo, 0, models.BaselineLevel)
	for level := 1; level <= models.BaselineLevel; level++ {
		cefr := readability.MapLevelToCEFR(level)
		levels = append(levels, levelInfo{
			Level:       level,
			CEFR:        string(cefr),
			Description: readability.Description(cefr),
		})
	}
	c.JSON(http.StatusOK, levels)
}

// listContent returns the content library
func (s *Server) listContent(c *gin.Context) {
	content, err := s.content.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, content)
}

type createContentRequest struct {
	Title    string `json:"title" binding:"required"`
	Author   string `json:"author"`
	Category string `json:"category"`
	Text     string `json:"text" binding:"required"`
}

// createContent adds a user-submitted text to the library, computing its
// readability statistics at ingestion
func (s *Server) createContent(c *gin.Context) {
	var req createContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fk := readability.CalculateFleschKincaid(req.Text)
	baseDifficulty := int(math.Round(fk / 2))
	if baseDifficulty < 1 {
		baseDifficulty = 1
	}
	if baseDifficulty > 7 {
		baseDifficulty = 7
	}

	content := &models.Content{
		Title:          req.Title,
		Author:         req.Author,
		Category:       req.Category,
		OriginalText:   req.Text,
		BaseDifficulty: baseDifficulty,
		FleschKincaid:  fk,
		WordCount:      len(strings.Fields(req.Text)),
		SourceType:     models.SourceUpload,
		CEFRLevel:      string(readability.ClassifyTextCached(req.Text)),
	}
	if err := s.content.Create(content); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, content)
}

// getContent returns one library entry
func (s *Server) getContent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	content, err := s.content.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if content == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
		return
	}
	c.JSON(http.StatusOK, content)
}

type adaptContentRequest struct {
	TargetLevel int `json:"targetLevel" binding:"required,min=1,max=7"`
}

type adaptContentResponse struct {
	Text       string   `json:"text"`
	Level      int      `json:"level"`
	Paragraphs []string `json:"paragraphs"`
}

// adaptContent rewrites a full library text to the requested level. This
// is the live (non-cached) path; a rewrite failure is surfaced to the
// caller.
func (s *Server) adaptContent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req adaptContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content, err := s.content.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if content == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
		return
	}

	adapted, err := s.rewriter.AdaptText(content.OriginalText, req.TargetLevel)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, adaptContentResponse{
		Text:       adapted,
		Level:      req.TargetLevel,
		Paragraphs: adaptation.SplitParagraphs(adapted),
	})
}

// pregenerateContent runs the batch variant pipeline over one library
// entry. Individual rewrite failures degrade to the baseline text instead
// of failing the batch.
func (s *Server) pregenerateContent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	content, err := s.content.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if content == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
		return
	}

	result, err := s.orchestrator.PregenerateContent(content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// getChapterVariants returns one chapter's variants, optionally filtered
// to a single level
func (s *Server) getChapterVariants(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	chapter, ok := pathID(c, "chapter")
	if !ok {
		return
	}

	if levelStr := c.Query("level"); levelStr != "" {
		level, err := strconv.Atoi(levelStr)
		if err != nil || level < 1 || level > 4 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid level"})
			return
		}
		variants, err := s.variants.GetChapterAtLevel(id, int(chapter), level)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, variants)
		return
	}

	variants, err := s.variants.GetChapter(id, int(chapter))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, variants)
}

// getParagraphVariant returns one paragraph at one level, generating it on
// a cache miss. The level-4 baseline must already exist.
func (s *Server) getParagraphVariant(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	chapter, ok := pathID(c, "chapter")
	if !ok {
		return
	}
	index, ok := pathID(c, "index")
	if !ok {
		return
	}
	level, err := strconv.Atoi(c.DefaultQuery("level", "4"))
	if err != nil || level < 1 || level > 4 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid level"})
		return
	}

	variant, err := s.orchestrator.AdaptOnDemand(id, int(chapter), int(index), level)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, variant)
}
