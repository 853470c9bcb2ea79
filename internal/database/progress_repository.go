package database

import (
	"fmt"

	"github.com/example/readapt/pkg/models"
)

// ProgressRepository handles database operations for paragraph-level progress
type ProgressRepository struct{}

// NewProgressRepository creates a new repository instance
func NewProgressRepository() *ProgressRepository {
	return &ProgressRepository{}
}

// Create records progress for one paragraph
func (r *ProgressRepository) Create(entry *models.ProgressEntry) error {
	query := DB.Rebind(`
		INSERT INTO progress_tracking (
			session_id, user_id, paragraph_index, difficulty_level,
			comprehension_score, time_spent, manual_adjustment
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := DB.Exec(
		query,
		entry.SessionID,
		entry.UserID,
		entry.ParagraphIndex,
		entry.DifficultyLevel,
		entry.ComprehensionScore,
		entry.TimeSpent,
		entry.ManualAdjustment,
	)
	if err != nil {
		return fmt.Errorf("failed to create progress entry: %v", err)
	}
	return nil
}

// GetBySession returns all progress entries for a session ordered by
// paragraph index
func (r *ProgressRepository) GetBySession(sessionID int64) ([]models.ProgressEntry, error) {
	query := DB.Rebind(`
		SELECT id, session_id, user_id, paragraph_index, difficulty_level,
			comprehension_score, time_spent, manual_adjustment, created_at
		FROM progress_tracking
		WHERE session_id = ?
		ORDER BY paragraph_index
	`)
	var entries []models.ProgressEntry
	err := DB.Select(&entries, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session progress: %v", err)
	}
	return entries, nil
}
