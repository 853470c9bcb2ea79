package models

import (
	"database/sql"
	"time"
)

// Reading session statuses
const (
	SessionActive    = "active"
	SessionPaused    = "paused"
	SessionCompleted = "completed"
)

// ReadingSession tracks one user's pass through a piece of content
type ReadingSession struct {
	ID        int64 `json:"id" db:"id"`
	UserID    int64 `json:"user_id" db:"user_id"`
	ContentID int64 `json:"content_id" db:"content_id"`
	// Difficulty level used for this session (1-7)
	DifficultyLevel int `json:"difficulty_level" db:"difficulty_level"`
	// Current paragraph index
	CurrentPosition     int `json:"current_position" db:"current_position"`
	CompletedParagraphs int `json:"completed_paragraphs" db:"completed_paragraphs"`
	// Average comprehension score for this session (0-100)
	AvgComprehension int          `json:"avg_comprehension" db:"avg_comprehension"`
	Status           string       `json:"status" db:"status"`
	StartedAt        time.Time    `json:"started_at" db:"started_at"`
	LastAccessedAt   time.Time    `json:"last_accessed_at" db:"last_accessed_at"`
	CompletedAt      sql.NullTime `json:"completed_at" db:"completed_at"`
}
