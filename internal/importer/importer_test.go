package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/example/readapt/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, database.ConnectWithDSN("sqlite3", ":memory:"))
	t.Cleanup(func() {
		database.Close()
		database.DB = nil
	})
}

func writeTempCSV(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "library.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

// TestImportContent_CSV imports a small CSV and verifies stored rows,
// skips, and per-row errors.
func TestImportContent_CSV(t *testing.T) {
	setupTestDB(t)

	csvData := `title,author,category,text,difficulty
The Sun,Jane Doe,science,"The sun rises in the east. The sun gives light.",2
,Nobody,science,"Text without a title.",3
Bad Difficulty,John Doe,history,"A text with a difficulty out of range.",9
Derived,Ann Smith,science,"Water evaporates from the oceans. Clouds form in the sky and rain falls.",
`

	config := DefaultImportConfig()
	config.FilePath = writeTempCSV(t, csvData)

	result, err := ImportContent(config)
	require.NoError(t, err)

	assert.Equal(t, 4, result.TotalProcessed)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 2, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "invalid difficulty")

	all, err := database.NewContentRepository().GetAll()
	require.NoError(t, err)
	require.Len(t, all, 2)

	byTitle := map[string]int{}
	for i, c := range all {
		byTitle[c.Title] = i
	}

	sun := all[byTitle["The Sun"]]
	assert.Equal(t, "Jane Doe", sun.Author)
	assert.Equal(t, 2, sun.BaseDifficulty)
	assert.Equal(t, 10, sun.WordCount)
	assert.NotEmpty(t, sun.CEFRLevel)

	derived := all[byTitle["Derived"]]
	assert.GreaterOrEqual(t, derived.BaseDifficulty, 1)
	assert.LessOrEqual(t, derived.BaseDifficulty, 7)
	assert.Greater(t, derived.FleschKincaid, 0.0)
}

// TestImportContent_MissingFile verifies a missing path surfaces as an
// error for both formats.
func TestImportContent_MissingFile(t *testing.T) {
	config := DefaultImportConfig()
	config.FilePath = filepath.Join(t.TempDir(), "missing.csv")
	_, err := ImportContent(config)
	require.Error(t, err)

	config.FilePath = filepath.Join(t.TempDir(), "missing.xlsx")
	_, err = ImportContent(config)
	require.Error(t, err)
}
