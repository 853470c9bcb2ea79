package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/example/readapt/pkg/models"
)

// ProfileRepository handles database operations for reading profiles
type ProfileRepository struct{}

// NewProfileRepository creates a new repository instance
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{}
}

const profileColumns = "id, user_id, level, micro_level, reading_speed, comprehension_accuracy, strengths, challenges, last_calibrated, created_at, updated_at"

// GetByUserID returns the user's reading profile, or nil if the user has
// never calibrated
func (r *ProfileRepository) GetByUserID(userID int64) (*models.ReadingProfile, error) {
	query := DB.Rebind("SELECT " + profileColumns + " FROM reading_profiles WHERE user_id = ?")

	var profile models.ReadingProfile
	var strengthsJSON, challengesJSON string

	err := DB.QueryRow(query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Level,
		&profile.MicroLevel,
		&profile.ReadingSpeed,
		&profile.ComprehensionAccuracy,
		&strengthsJSON,
		&challengesJSON,
		&profile.LastCalibrated,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reading profile: %v", err)
	}

	if err := json.Unmarshal([]byte(strengthsJSON), &profile.Strengths); err != nil {
		return nil, fmt.Errorf("failed to parse strengths: %v", err)
	}
	if err := json.Unmarshal([]byte(challengesJSON), &profile.Challenges); err != nil {
		return nil, fmt.Errorf("failed to parse challenges: %v", err)
	}

	return &profile, nil
}

// Upsert creates the user's profile or overwrites it on recalibration
func (r *ProfileRepository) Upsert(profile *models.ReadingProfile) error {
	strengthsJSON, err := json.Marshal(profile.Strengths)
	if err != nil {
		return fmt.Errorf("failed to marshal strengths: %v", err)
	}
	challengesJSON, err := json.Marshal(profile.Challenges)
	if err != nil {
		return fmt.Errorf("failed to marshal challenges: %v", err)
	}

	if DB.DriverName() == "postgres" {
		query := `
			INSERT INTO reading_profiles (
				user_id, level, micro_level, reading_speed, comprehension_accuracy,
				strengths, challenges, last_calibrated
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (user_id) DO UPDATE SET
				level = EXCLUDED.level,
				micro_level = EXCLUDED.micro_level,
				reading_speed = EXCLUDED.reading_speed,
				comprehension_accuracy = EXCLUDED.comprehension_accuracy,
				strengths = EXCLUDED.strengths,
				challenges = EXCLUDED.challenges,
				last_calibrated = EXCLUDED.last_calibrated,
				updated_at = NOW()
		`
		_, err = DB.Exec(
			query,
			profile.UserID,
			profile.Level,
			profile.MicroLevel,
			profile.ReadingSpeed,
			profile.ComprehensionAccuracy,
			string(strengthsJSON),
			string(challengesJSON),
			profile.LastCalibrated,
		)
	} else {
		query := `
			INSERT INTO reading_profiles (
				user_id, level, micro_level, reading_speed, comprehension_accuracy,
				strengths, challenges, last_calibrated
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(user_id) DO UPDATE SET
				level = excluded.level,
				micro_level = excluded.micro_level,
				reading_speed = excluded.reading_speed,
				comprehension_accuracy = excluded.comprehension_accuracy,
				strengths = excluded.strengths,
				challenges = excluded.challenges,
				last_calibrated = excluded.last_calibrated,
				updated_at = CURRENT_TIMESTAMP
		`
		_, err = DB.Exec(
			query,
			profile.UserID,
			profile.Level,
			profile.MicroLevel,
			profile.ReadingSpeed,
			profile.ComprehensionAccuracy,
			string(strengthsJSON),
			string(challengesJSON),
			profile.LastCalibrated,
		)
	}

	if err != nil {
		return fmt.Errorf("failed to upsert reading profile: %v", err)
	}
	return nil
}

// UpdateMicroLevel saves the user's slider preference (1.0 - 4.0)
func (r *ProfileRepository) UpdateMicroLevel(userID int64, microLevel float64) error {
	query := DB.Rebind("UPDATE reading_profiles SET micro_level = ?, updated_at = CURRENT_TIMESTAMP WHERE user_id = ?")
	result, err := DB.Exec(query, microLevel, userID)
	if err != nil {
		return fmt.Errorf("failed to update micro level: %v", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("no reading profile exists for user %d", userID)
	}
	return nil
}
