package models

import "time"

// WordSequenceEntry is one token position within a paragraph, carrying a
// variant of the word at each of the four difficulty levels.
type WordSequenceEntry struct {
	Word   string `json:"word"`
	Level1 string `json:"level1"`
	Level2 string `json:"level2"`
	Level3 string `json:"level3"`
	Level4 string `json:"level4"`
}

// WordLevel stores the word-by-word four-level sequence for one paragraph,
// used by the continuous micro-level slider. One row per
// (content, paragraph) pair.
type WordLevel struct {
	ID             int64               `json:"id" db:"id"`
	ContentID      int64               `json:"content_id" db:"content_id"`
	ParagraphIndex int                 `json:"paragraph_index" db:"paragraph_index"`
	WordSequence   []WordSequenceEntry `json:"word_sequence"`
	CreatedAt      time.Time           `json:"created_at" db:"created_at"`
}
