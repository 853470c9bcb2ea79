package database

import (
	"database/sql"
	"fmt"

	"github.com/example/readapt/pkg/models"
)

// CalibrationRepository handles database operations for calibration test records
type CalibrationRepository struct{}

// NewCalibrationRepository creates a new repository instance
func NewCalibrationRepository() *CalibrationRepository {
	return &CalibrationRepository{}
}

// Create stores one calibration submission
func (r *CalibrationRepository) Create(test *models.CalibrationTest) error {
	query := DB.Rebind(`
		INSERT INTO calibration_tests (
			user_id, passage_text, passage_difficulty, reading_time,
			correct_answers, total_questions, assessed_level
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := DB.Exec(
		query,
		test.UserID,
		test.PassageText,
		test.PassageDifficulty,
		test.ReadingTime,
		test.CorrectAnswers,
		test.TotalQuestions,
		test.AssessedLevel,
	)
	if err != nil {
		return fmt.Errorf("failed to create calibration test: %v", err)
	}
	return nil
}

// GetLatestByUser returns the user's most recent calibration, or nil
func (r *CalibrationRepository) GetLatestByUser(userID int64) (*models.CalibrationTest, error) {
	query := DB.Rebind(`
		SELECT id, user_id, passage_text, passage_difficulty, reading_time,
			correct_answers, total_questions, assessed_level, created_at
		FROM calibration_tests
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT 1
	`)
	var test models.CalibrationTest
	err := DB.Get(&test, query, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest calibration test: %v", err)
	}
	return &test, nil
}
