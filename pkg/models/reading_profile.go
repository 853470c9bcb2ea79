package models

import "time"

// ReadingProfile stores a user's assessed reading level and characteristics.
// At most one profile exists per user; recalibration overwrites it.
type ReadingProfile struct {
	ID     int64 `json:"id" db:"id"`
	UserID int64 `json:"user_id" db:"user_id"`
	// Reading level from 1 (beginner) to 7 (advanced)
	Level int `json:"level" db:"level"`
	// Fine-grained dial used by the word-morphing slider (1.0 - 4.0)
	MicroLevel float64 `json:"micro_level" db:"micro_level"`
	// Reading speed in words per minute
	ReadingSpeed int `json:"reading_speed" db:"reading_speed"`
	// Comprehension accuracy percentage (0-100)
	ComprehensionAccuracy int `json:"comprehension_accuracy" db:"comprehension_accuracy"`
	// Question categories the user scored well on, e.g. ["vocabulary"]
	Strengths []string `json:"strengths"`
	// Question categories the user struggled with, e.g. ["inference"]
	Challenges     []string  `json:"challenges"`
	LastCalibrated time.Time `json:"last_calibrated" db:"last_calibrated"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
