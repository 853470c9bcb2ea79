package database

import (
	"database/sql"
	"fmt"

	"github.com/example/readapt/pkg/models"
)

// VariantRepository handles database operations for paragraph variants
type VariantRepository struct{}

// NewVariantRepository creates a new repository instance
func NewVariantRepository() *VariantRepository {
	return &VariantRepository{}
}

const variantColumns = "id, content_id, chapter_number, paragraph_index, level, text, original_text, created_at"

// Get returns the variant for one (content, chapter, paragraph, level) key,
// or nil if it hasn't been generated
func (r *VariantRepository) Get(contentID int64, chapterNumber, paragraphIndex, level int) (*models.ParagraphVariant, error) {
	query := DB.Rebind(`
		SELECT ` + variantColumns + `
		FROM paragraph_variants
		WHERE content_id = ? AND chapter_number = ? AND paragraph_index = ? AND level = ?
	`)
	var variant models.ParagraphVariant
	err := DB.Get(&variant, query, contentID, chapterNumber, paragraphIndex, level)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get paragraph variant: %v", err)
	}
	return &variant, nil
}

// Put stores a variant, overwriting any existing row for the same key
// (last write wins)
func (r *VariantRepository) Put(variant *models.ParagraphVariant) error {
	var query string
	if DB.DriverName() == "postgres" {
		query = `
			INSERT INTO paragraph_variants (
				content_id, chapter_number, paragraph_index, level, text, original_text
			) VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (content_id, chapter_number, paragraph_index, level) DO UPDATE SET
				text = EXCLUDED.text,
				original_text = EXCLUDED.original_text
		`
	} else {
		query = `
			INSERT INTO paragraph_variants (
				content_id, chapter_number, paragraph_index, level, text, original_text
			) VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(content_id, chapter_number, paragraph_index, level) DO UPDATE SET
				text = excluded.text,
				original_text = excluded.original_text
		`
	}

	_, err := DB.Exec(
		query,
		variant.ContentID,
		variant.ChapterNumber,
		variant.ParagraphIndex,
		variant.Level,
		variant.Text,
		variant.OriginalText,
	)
	if err != nil {
		return fmt.Errorf("failed to put paragraph variant: %v", err)
	}
	return nil
}

// GetChapter returns all variants for one chapter ordered by paragraph index
func (r *VariantRepository) GetChapter(contentID int64, chapterNumber int) ([]models.ParagraphVariant, error) {
	query := DB.Rebind(`
		SELECT ` + variantColumns + `
		FROM paragraph_variants
		WHERE content_id = ? AND chapter_number = ?
		ORDER BY paragraph_index, level
	`)
	var variants []models.ParagraphVariant
	err := DB.Select(&variants, query, contentID, chapterNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get chapter variants: %v", err)
	}
	return variants, nil
}

// GetChapterAtLevel returns one chapter's variants at a single level,
// ordered by paragraph index
func (r *VariantRepository) GetChapterAtLevel(contentID int64, chapterNumber, level int) ([]models.ParagraphVariant, error) {
	query := DB.Rebind(`
		SELECT ` + variantColumns + `
		FROM paragraph_variants
		WHERE content_id = ? AND chapter_number = ? AND level = ?
		ORDER BY paragraph_index
	`)
	var variants []models.ParagraphVariant
	err := DB.Select(&variants, query, contentID, chapterNumber, level)
	if err != nil {
		return nil, fmt.Errorf("failed to get chapter variants at level: %v", err)
	}
	return variants, nil
}
