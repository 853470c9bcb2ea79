package server

import (
	"net/http"
	"time"

	"github.com/example/readapt/internal/assessment"
	"github.com/example/readapt/pkg/models"
	"github.com/gin-gonic/gin"
)

// passageQuestion is a calibration question with the correct answer
// stripped out
type passageQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Type     string   `json:"type"`
}

type passageResponse struct {
	Text          string            `json:"text"`
	FleschKincaid int               `json:"fleschKincaid"`
	Questions     []passageQuestion `json:"questions"`
}

// getCalibrationPassage returns a random calibration passage without the
// answer key
func (s *Server) getCalibrationPassage(c *gin.Context) {
	passage := assessment.RandomPassage()

	questions := make([]passageQuestion, 0, len(passage.Questions))
	for _, q := range passage.Questions {
		questions = append(questions, passageQuestion{
			Question: q.Question,
			Options:  q.Options,
			Type:     string(q.Category),
		})
	}

	c.JSON(http.StatusOK, passageResponse{
		Text:          passage.Text,
		FleschKincaid: passage.FleschKincaid,
		Questions:     questions,
	})
}

type submitCalibrationRequest struct {
	PassageText       string `json:"passageText" binding:"required"`
	PassageDifficulty int    `json:"passageDifficulty" binding:"required,min=1"`
	ReadingTime       int    `json:"readingTime" binding:"required,min=1"`
	Answers           []int  `json:"answers" binding:"required"`
}

// submitCalibration scores a calibration attempt, records it, and creates
// or overwrites the user's reading profile
func (s *Server) submitCalibration(c *gin.Context) {
	var req submitCalibrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := currentUser(c)

	result, err := assessment.EvaluateSubmission(assessment.Submission{
		PassageText:       req.PassageText,
		PassageDifficulty: req.PassageDifficulty,
		ReadingTime:       req.ReadingTime,
		Answers:           req.Answers,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	test := &models.CalibrationTest{
		UserID:            userID,
		PassageText:       req.PassageText,
		PassageDifficulty: req.PassageDifficulty,
		ReadingTime:       req.ReadingTime,
		CorrectAnswers:    result.CorrectAnswers,
		TotalQuestions:    result.TotalQuestions,
		AssessedLevel:     result.Level,
	}
	if err := s.calibrations.Create(test); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Recalibration overwrites everything except the slider preference
	microLevel := 2.0
	if existing, err := s.profiles.GetByUserID(userID); err == nil && existing != nil {
		microLevel = existing.MicroLevel
	}

	profile := &models.ReadingProfile{
		UserID:                userID,
		Level:                 result.Level,
		MicroLevel:            microLevel,
		ReadingSpeed:          result.ReadingSpeed,
		ComprehensionAccuracy: result.ComprehensionAccuracy,
		Strengths:             result.Strengths,
		Challenges:            result.Challenges,
		LastCalibrated:        time.Now().UTC(),
	}
	if err := s.profiles.Upsert(profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// getLatestCalibration returns the user's most recent calibration record,
// or null if they have never taken the quiz
func (s *Server) getLatestCalibration(c *gin.Context) {
	test, err := s.calibrations.GetLatestByUser(currentUser(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if test == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, test)
}

// getProfile returns the user's reading profile, or null if the user has
// never calibrated
func (s *Server) getProfile(c *gin.Context) {
	profile, err := s.profiles.GetByUserID(currentUser(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if profile == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, profile)
}

type microLevelRequest struct {
	MicroLevel float64 `json:"microLevel" binding:"required,min=1,max=4"`
}

// saveMicroLevel stores the user's word-morphing slider preference
func (s *Server) saveMicroLevel(c *gin.Context) {
	var req microLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.profiles.UpdateMicroLevel(currentUser(c), req.MicroLevel); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
