package database

import (
	"database/sql"
	"fmt"

	"github.com/example/readapt/pkg/models"
)

// SessionRepository handles database operations for reading sessions
type SessionRepository struct{}

// NewSessionRepository creates a new repository instance
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{}
}

const sessionColumns = "id, user_id, content_id, difficulty_level, current_position, completed_paragraphs, avg_comprehension, status, started_at, last_accessed_at, completed_at"

// Create starts a new reading session and fills in its generated ID
func (r *SessionRepository) Create(session *models.ReadingSession) error {
	if session.Status == "" {
		session.Status = models.SessionActive
	}

	if DB.DriverName() == "postgres" {
		query := `
			INSERT INTO reading_sessions (user_id, content_id, difficulty_level, current_position, completed_paragraphs, status)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, started_at, last_accessed_at
		`
		return DB.QueryRow(
			query,
			session.UserID,
			session.ContentID,
			session.DifficultyLevel,
			session.CurrentPosition,
			session.CompletedParagraphs,
			session.Status,
		).Scan(&session.ID, &session.StartedAt, &session.LastAccessedAt)
	}

	result, err := DB.Exec(`
		INSERT INTO reading_sessions (user_id, content_id, difficulty_level, current_position, completed_paragraphs, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		session.UserID,
		session.ContentID,
		session.DifficultyLevel,
		session.CurrentPosition,
		session.CompletedParagraphs,
		session.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create reading session: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get session ID: %v", err)
	}
	session.ID = id
	return nil
}

// GetByID returns one session, or nil if it doesn't exist
func (r *SessionRepository) GetByID(id int64) (*models.ReadingSession, error) {
	var session models.ReadingSession
	query := DB.Rebind("SELECT " + sessionColumns + " FROM reading_sessions WHERE id = ?")
	err := DB.Get(&session, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reading session: %v", err)
	}
	return &session, nil
}

// GetActiveByUserID returns the user's most recently touched active
// session, or nil if none is active
func (r *SessionRepository) GetActiveByUserID(userID int64) (*models.ReadingSession, error) {
	query := DB.Rebind(`
		SELECT ` + sessionColumns + `
		FROM reading_sessions
		WHERE user_id = ? AND status = 'active'
		ORDER BY last_accessed_at DESC
		LIMIT 1
	`)
	var session models.ReadingSession
	err := DB.Get(&session, query, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active session: %v", err)
	}
	return &session, nil
}

// UpdatePosition advances the session's reading position
func (r *SessionRepository) UpdatePosition(sessionID int64, currentPosition, completedParagraphs int) error {
	query := DB.Rebind(`
		UPDATE reading_sessions
		SET current_position = ?, completed_paragraphs = ?, last_accessed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`)
	_, err := DB.Exec(query, currentPosition, completedParagraphs, sessionID)
	if err != nil {
		return fmt.Errorf("failed to update session position: %v", err)
	}
	return nil
}

// UpdateStatus changes the session status; completing a session stamps
// completed_at
func (r *SessionRepository) UpdateStatus(sessionID int64, status string) error {
	var query string
	if status == models.SessionCompleted {
		query = DB.Rebind("UPDATE reading_sessions SET status = ?, completed_at = CURRENT_TIMESTAMP, last_accessed_at = CURRENT_TIMESTAMP WHERE id = ?")
	} else {
		query = DB.Rebind("UPDATE reading_sessions SET status = ?, last_accessed_at = CURRENT_TIMESTAMP WHERE id = ?")
	}
	_, err := DB.Exec(query, status, sessionID)
	if err != nil {
		return fmt.Errorf("failed to update session status: %v", err)
	}
	return nil
}
