package database

import (
	"database/sql"
	"fmt"

	"github.com/example/readapt/pkg/models"
)

// UserRepository handles database operations for users
type UserRepository struct{}

// NewUserRepository creates a new repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// GetByID returns a user by ID, or nil if no such user exists
func (r *UserRepository) GetByID(id int64) (*models.User, error) {
	var user models.User
	query := DB.Rebind("SELECT id, name, email, role, last_signed_in, created_at, updated_at FROM users WHERE id = ?")
	err := DB.Get(&user, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %v", err)
	}
	return &user, nil
}

// Create inserts a new user and fills in its generated ID
func (r *UserRepository) Create(user *models.User) error {
	if user.Role == "" {
		user.Role = "user"
	}

	if DB.DriverName() == "postgres" {
		query := `
			INSERT INTO users (name, email, role)
			VALUES ($1, $2, $3)
			RETURNING id, last_signed_in, created_at, updated_at
		`
		return DB.QueryRow(query, user.Name, user.Email, user.Role).Scan(
			&user.ID,
			&user.LastSignedIn,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
	}

	// SQLite doesn't support RETURNING, so fetch the row ID separately
	result, err := DB.Exec(
		"INSERT INTO users (name, email, role) VALUES (?, ?, ?)",
		user.Name, user.Email, user.Role,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get user ID: %v", err)
	}
	user.ID = id
	return nil
}

// TouchSignIn updates the user's last sign-in timestamp
func (r *UserRepository) TouchSignIn(id int64) error {
	query := DB.Rebind("UPDATE users SET last_signed_in = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP WHERE id = ?")
	_, err := DB.Exec(query, id)
	return err
}
