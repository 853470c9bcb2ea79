package models

import "time"

// ProgressEntry records paragraph-level reading progress within a session
type ProgressEntry struct {
	ID             int64 `json:"id" db:"id"`
	SessionID      int64 `json:"session_id" db:"session_id"`
	UserID         int64 `json:"user_id" db:"user_id"`
	ParagraphIndex int   `json:"paragraph_index" db:"paragraph_index"`
	// Difficulty level the paragraph was read at (1-7)
	DifficultyLevel int `json:"difficulty_level" db:"difficulty_level"`
	// Comprehension score for this paragraph (0-100)
	ComprehensionScore int `json:"comprehension_score" db:"comprehension_score"`
	// Time spent reading this paragraph in seconds
	TimeSpent int `json:"time_spent" db:"time_spent"`
	// Whether the user adjusted the difficulty themselves
	ManualAdjustment bool      `json:"manual_adjustment" db:"manual_adjustment"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}
