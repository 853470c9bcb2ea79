package models

import "time"

// Content source types
const (
	SourcePreGenerated = "pre_generated"
	SourceUpload       = "upload"
)

// Content represents a text in the library available for adaptive reading
type Content struct {
	ID     int64  `json:"id" db:"id"`
	Title  string `json:"title" db:"title"`
	Author string `json:"author" db:"author"`
	// Original full text, level-4 baseline for all adapted variants
	OriginalText string `json:"original_text" db:"original_text"`
	// Base difficulty level of the original text (1-7)
	BaseDifficulty int `json:"base_difficulty" db:"base_difficulty"`
	// Flesch-Kincaid grade level of the original text
	FleschKincaid float64 `json:"flesch_kincaid" db:"flesch_kincaid"`
	WordCount     int     `json:"word_count" db:"word_count"`
	// Category like "fiction", "non-fiction", "science"
	Category string `json:"category" db:"category"`
	// "pre_generated" for library texts, "upload" for user uploads
	SourceType string `json:"source_type" db:"source_type"`
	// CEFR classification (A1-C2) of the original text
	CEFRLevel string    `json:"cefr_level" db:"cefr_level"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
