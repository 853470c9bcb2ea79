// Package importer bulk-loads content library entries from Excel or CSV
// files, computing readability statistics at ingestion.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/readapt/internal/database"
	"github.com/example/readapt/internal/readability"
	"github.com/example/readapt/pkg/models"
	"github.com/xuri/excelize/v2"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath         string // Path to the Excel or CSV file
	TitleColumn      string // Column with the title
	AuthorColumn     string // Column with the author
	CategoryColumn   string // Column with the category
	TextColumn       string // Column with the full original text
	DifficultyColumn string // Column with the base difficulty (optional)
	SheetName        string // Name of the sheet to import
	StartRow         int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		TitleColumn:      "A",
		AuthorColumn:     "B",
		CategoryColumn:   "C",
		TextColumn:       "D",
		DifficultyColumn: "E",
		SheetName:        "Sheet1",
		StartRow:         2, // skip header
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// ImportContent imports library content from an Excel or CSV file
func ImportContent(config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(config)
	}
	return importFromExcel(config)
}

// importFromExcel imports content from an Excel file
func importFromExcel(config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %v", config.SheetName, err)
	}

	columns := map[string]int{}
	for _, col := range []string{config.TitleColumn, config.AuthorColumn, config.CategoryColumn, config.TextColumn, config.DifficultyColumn} {
		idx, err := excelize.ColumnNameToNumber(col)
		if err != nil {
			return nil, fmt.Errorf("invalid column %q: %v", col, err)
		}
		columns[col] = idx - 1
	}

	result := &ImportResult{}
	for i, row := range rows {
		if i+1 < config.StartRow {
			continue
		}
		cell := func(col string) string {
			idx := columns[col]
			if idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}
		importRow(result, i+1,
			cell(config.TitleColumn),
			cell(config.AuthorColumn),
			cell(config.CategoryColumn),
			cell(config.TextColumn),
			cell(config.DifficultyColumn),
		)
	}
	return result, nil
}

// importFromCSV imports content from a CSV file with columns
// title,author,category,text,difficulty
func importFromCSV(config ImportConfig) (*ImportResult, error) {
	f, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	result := &ImportResult{}
	rowNum := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %v", err)
		}
		rowNum++
		if rowNum < config.StartRow {
			continue
		}
		field := func(idx int) string {
			if idx < len(record) {
				return strings.TrimSpace(record[idx])
			}
			return ""
		}
		importRow(result, rowNum, field(0), field(1), field(2), field(3), field(4))
	}
	return result, nil
}

// importRow validates one row and stores it as library content with its
// readability statistics
func importRow(result *ImportResult, rowNum int, title, author, category, text, difficulty string) {
	result.TotalProcessed++

	if title == "" || text == "" {
		result.Skipped++
		return
	}

	fk := readability.CalculateFleschKincaid(text)

	baseDifficulty := 0
	if difficulty != "" {
		d, err := strconv.Atoi(difficulty)
		if err != nil || d < 1 || d > 7 {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: invalid difficulty %q", rowNum, difficulty))
			result.Skipped++
			return
		}
		baseDifficulty = d
	} else {
		// Derive the 1-7 difficulty from the Flesch-Kincaid grade
		baseDifficulty = int(math.Round(fk / 2))
		if baseDifficulty < 1 {
			baseDifficulty = 1
		}
		if baseDifficulty > 7 {
			baseDifficulty = 7
		}
	}

	content := &models.Content{
		Title:          title,
		Author:         author,
		Category:       category,
		OriginalText:   text,
		BaseDifficulty: baseDifficulty,
		FleschKincaid:  fk,
		WordCount:      len(strings.Fields(text)),
		SourceType:     models.SourcePreGenerated,
		CEFRLevel:      string(readability.ClassifyTextCached(text)),
	}

	repo := database.NewContentRepository()
	if err := repo.Create(content); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
		result.Skipped++
		return
	}
	result.Created++
}
