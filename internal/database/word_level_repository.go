package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/example/readapt/pkg/models"
)

// WordLevelRepository handles database operations for word-level sequences
type WordLevelRepository struct{}

// NewWordLevelRepository creates a new repository instance
func NewWordLevelRepository() *WordLevelRepository {
	return &WordLevelRepository{}
}

// Get returns the word sequence for one paragraph, or nil if none exists
func (r *WordLevelRepository) Get(contentID int64, paragraphIndex int) (*models.WordLevel, error) {
	query := DB.Rebind(`
		SELECT id, content_id, paragraph_index, word_sequence, created_at
		FROM word_levels
		WHERE content_id = ? AND paragraph_index = ?
	`)

	var wl models.WordLevel
	var sequenceJSON string
	err := DB.QueryRow(query, contentID, paragraphIndex).Scan(
		&wl.ID,
		&wl.ContentID,
		&wl.ParagraphIndex,
		&sequenceJSON,
		&wl.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word sequence: %v", err)
	}

	if err := json.Unmarshal([]byte(sequenceJSON), &wl.WordSequence); err != nil {
		return nil, fmt.Errorf("failed to parse word sequence: %v", err)
	}
	return &wl, nil
}

// Put stores a word sequence, overwriting any existing row for the same
// (content, paragraph) pair
func (r *WordLevelRepository) Put(wl *models.WordLevel) error {
	sequenceJSON, err := json.Marshal(wl.WordSequence)
	if err != nil {
		return fmt.Errorf("failed to marshal word sequence: %v", err)
	}

	var query string
	if DB.DriverName() == "postgres" {
		query = `
			INSERT INTO word_levels (content_id, paragraph_index, word_sequence)
			VALUES ($1, $2, $3)
			ON CONFLICT (content_id, paragraph_index) DO UPDATE SET
				word_sequence = EXCLUDED.word_sequence
		`
	} else {
		query = `
			INSERT INTO word_levels (content_id, paragraph_index, word_sequence)
			VALUES (?, ?, ?)
			ON CONFLICT(content_id, paragraph_index) DO UPDATE SET
				word_sequence = excluded.word_sequence
		`
	}

	_, err = DB.Exec(query, wl.ContentID, wl.ParagraphIndex, string(sequenceJSON))
	if err != nil {
		return fmt.Errorf("failed to put word sequence: %v", err)
	}
	return nil
}
