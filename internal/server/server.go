// Package server exposes the adaptive-reading backend as a JSON HTTP API.
package server

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/example/readapt/internal/adaptation"
	"github.com/example/readapt/internal/ai"
	"github.com/example/readapt/internal/database"
	"github.com/example/readapt/pkg/models"
	"github.com/gin-gonic/gin"
)

// Server holds the API's collaborators
type Server struct {
	users        *database.UserRepository
	profiles     *database.ProfileRepository
	calibrations *database.CalibrationRepository
	content      *database.ContentRepository
	sessions     *database.SessionRepository
	progress     *database.ProgressRepository
	variants     *database.VariantRepository
	wordLevels   *database.WordLevelRepository
	orchestrator *adaptation.Orchestrator
	rewriter     *ai.Rewriter
}

// New creates a server wired to the shared database connection
func New(orchestrator *adaptation.Orchestrator, rewriter *ai.Rewriter) *Server {
	return &Server{
		users:        database.NewUserRepository(),
		profiles:     database.NewProfileRepository(),
		calibrations: database.NewCalibrationRepository(),
		content:      database.NewContentRepository(),
		sessions:     database.NewSessionRepository(),
		progress:     database.NewProgressRepository(),
		variants:     database.NewVariantRepository(),
		wordLevels:   database.NewWordLevelRepository(),
		orchestrator: orchestrator,
		rewriter:     rewriter,
	}
}

// Router builds the gin engine with all API routes registered. Release
// mode is the default; set GIN_MODE=debug to get gin's request dumps.
func (s *Server) Router() *gin.Engine {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	api := router.Group("/api")
	{
		api.POST("/users", s.createUser)

		api.GET("/levels", s.listLevels)

		api.GET("/calibration/passage", s.getCalibrationPassage)
		api.POST("/calibration/submit", s.requireUser, s.submitCalibration)
		api.GET("/calibration/latest", s.requireUser, s.getLatestCalibration)

		api.GET("/profile", s.requireUser, s.getProfile)
		api.POST("/profile/micro-level", s.requireUser, s.saveMicroLevel)

		api.GET("/content", s.listContent)
		api.POST("/content", s.requireUser, s.createContent)
		api.GET("/content/:id", s.getContent)
		api.POST("/content/:id/adapt", s.requireUser, s.adaptContent)
		api.POST("/content/:id/pregenerate", s.requireUser, s.pregenerateContent)
		api.GET("/content/:id/chapters/:chapter/variants", s.getChapterVariants)
		api.GET("/content/:id/chapters/:chapter/paragraphs/:index/variant", s.getParagraphVariant)

		api.POST("/reading/sessions", s.requireUser, s.startSession)
		api.GET("/reading/sessions/active", s.requireUser, s.getActiveSession)
		api.POST("/reading/progress", s.requireUser, s.updateProgress)
		api.POST("/reading/sessions/:id/status", s.requireUser, s.updateSessionStatus)
		api.GET("/reading/sessions/:id/progress", s.requireUser, s.getSessionProgress)
		api.POST("/reading/questions", s.requireUser, s.generateQuestions)

		api.GET("/word-levels", s.getWordSequence)
		api.POST("/word-levels/pregenerate", s.requireUser, s.pregenerateWordLevels)
	}

	return router
}

const userIDKey = "userID"

// requireUser resolves the calling user from the X-User-ID header. Session
// management lives in the gateway in front of this service; the header is
// trusted here.
func (s *Server) requireUser(c *gin.Context) {
	raw := c.GetHeader("X-User-ID")
	if raw == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing X-User-ID header"})
		return
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid X-User-ID header"})
		return
	}

	user, err := s.users.GetByID(id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if user == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return
	}

	if err := s.users.TouchSignIn(id); err != nil {
		log.Printf("failed to touch sign-in for user %d: %v", id, err)
	}

	c.Set(userIDKey, id)
	c.Next()
}

// currentUser returns the authenticated user ID set by requireUser
func currentUser(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}

// pathID parses a positive integer path parameter
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

type createUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
}

// createUser registers a reader
func (s *Server) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := &models.User{Name: req.Name, Email: req.Email}
	if err := s.users.Create(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, user)
}
