package models

import "time"

// CalibrationTest records one calibration quiz submission
type CalibrationTest struct {
	ID     int64 `json:"id" db:"id"`
	UserID int64 `json:"user_id" db:"user_id"`
	// The passage the user read, verbatim
	PassageText string `json:"passage_text" db:"passage_text"`
	// Flesch-Kincaid grade of the passage
	PassageDifficulty int `json:"passage_difficulty" db:"passage_difficulty"`
	// Reading time in seconds
	ReadingTime    int       `json:"reading_time" db:"reading_time"`
	CorrectAnswers int       `json:"correct_answers" db:"correct_answers"`
	TotalQuestions int       `json:"total_questions" db:"total_questions"`
	AssessedLevel  int       `json:"assessed_level" db:"assessed_level"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
