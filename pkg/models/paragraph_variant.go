package models

import "time"

// BaselineLevel is the variant level holding the unmodified original text.
// Levels below it are rewritten down from the baseline.
const BaselineLevel = 4

// ParagraphVariant is one paragraph rewritten at one difficulty level.
// At most one variant exists per (content, chapter, paragraph, level);
// writes are last-write-wins upserts on that key.
type ParagraphVariant struct {
	ID             int64 `json:"id" db:"id"`
	ContentID      int64 `json:"content_id" db:"content_id"`
	ChapterNumber  int   `json:"chapter_number" db:"chapter_number"`
	ParagraphIndex int   `json:"paragraph_index" db:"paragraph_index"`
	// Difficulty level of this variant (1-4)
	Level int `json:"level" db:"level"`
	// Paragraph text at this level
	Text string `json:"text" db:"text"`
	// The level-4 baseline this variant was derived from
	OriginalText string    `json:"original_text" db:"original_text"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
