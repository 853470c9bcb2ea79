package database

import (
	"database/sql"
	"fmt"

	"github.com/example/readapt/pkg/models"
)

// ContentRepository handles database operations for the content library
type ContentRepository struct{}

// NewContentRepository creates a new repository instance
func NewContentRepository() *ContentRepository {
	return &ContentRepository{}
}

const contentColumns = "id, title, author, original_text, base_difficulty, flesch_kincaid, word_count, category, source_type, cefr_level, created_at"

// GetAll returns all library content, newest first
func (r *ContentRepository) GetAll() ([]models.Content, error) {
	var content []models.Content
	err := DB.Select(&content, "SELECT "+contentColumns+" FROM content_library ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to get content: %v", err)
	}
	return content, nil
}

// GetByID returns one content entry, or nil if it doesn't exist
func (r *ContentRepository) GetByID(id int64) (*models.Content, error) {
	var content models.Content
	query := DB.Rebind("SELECT " + contentColumns + " FROM content_library WHERE id = ?")
	err := DB.Get(&content, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get content by ID: %v", err)
	}
	return &content, nil
}

// Create inserts a new content entry and fills in its generated ID
func (r *ContentRepository) Create(content *models.Content) error {
	if content.SourceType == "" {
		content.SourceType = models.SourcePreGenerated
	}

	if DB.DriverName() == "postgres" {
		query := `
			INSERT INTO content_library (
				title, author, original_text, base_difficulty, flesch_kincaid,
				word_count, category, source_type, cefr_level
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id, created_at
		`
		return DB.QueryRow(
			query,
			content.Title,
			content.Author,
			content.OriginalText,
			content.BaseDifficulty,
			content.FleschKincaid,
			content.WordCount,
			content.Category,
			content.SourceType,
			content.CEFRLevel,
		).Scan(&content.ID, &content.CreatedAt)
	}

	result, err := DB.Exec(`
		INSERT INTO content_library (
			title, author, original_text, base_difficulty, flesch_kincaid,
			word_count, category, source_type, cefr_level
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		content.Title,
		content.Author,
		content.OriginalText,
		content.BaseDifficulty,
		content.FleschKincaid,
		content.WordCount,
		content.Category,
		content.SourceType,
		content.CEFRLevel,
	)
	if err != nil {
		return fmt.Errorf("failed to create content: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get content ID: %v", err)
	}
	content.ID = id
	return nil
}

// IDsMissingVariants returns IDs of content with no generated level-1
// variant, i.e. content the pre-generation batch has not covered yet
func (r *ContentRepository) IDsMissingVariants() ([]int64, error) {
	var ids []int64
	err := DB.Select(&ids, `
		SELECT id FROM content_library
		WHERE id NOT IN (SELECT DISTINCT content_id FROM paragraph_variants WHERE level = 1)
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get content missing variants: %v", err)
	}
	return ids, nil
}
