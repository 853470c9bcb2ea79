package database

import (
	"testing"

	"github.com/example/readapt/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB points the package at a fresh in-memory SQLite database with
// the full schema applied
func setupTestDB(t *testing.T) {
	t.Helper()

	require.NoError(t, ConnectWithDSN("sqlite3", ":memory:"))

	t.Cleanup(func() {
		Close()
		DB = nil
	})
}

func createTestUser(t *testing.T) *models.User {
	t.Helper()
	user := &models.User{Name: "Test Reader", Email: "reader@example.com"}
	require.NoError(t, NewUserRepository().Create(user))
	return user
}

func createTestContent(t *testing.T) *models.Content {
	t.Helper()
	content := &models.Content{
		Title:          "The Water Cycle",
		Author:         "Test Author",
		OriginalText:   "Water evaporates.\n\nClouds form.",
		BaseDifficulty: 4,
		FleschKincaid:  6.5,
		WordCount:      5,
		Category:       "science",
		CEFRLevel:      "B1",
	}
	require.NoError(t, NewContentRepository().Create(content))
	return content
}

// TestUserRepository_CreateAndGet verifies insert fills the generated ID
// and lookups roundtrip.
func TestUserRepository_CreateAndGet(t *testing.T) {
	setupTestDB(t)
	repo := NewUserRepository()

	user := createTestUser(t)
	assert.Greater(t, user.ID, int64(0))
	assert.Equal(t, "user", user.Role)

	got, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Test Reader", got.Name)
	assert.Equal(t, "reader@example.com", got.Email)

	missing, err := repo.GetByID(9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// TestProfileRepository_UpsertAndGet verifies profile storage, the JSON
// strengths/challenges roundtrip, and that recalibration overwrites the
// single row per user.
func TestProfileRepository_UpsertAndGet(t *testing.T) {
	setupTestDB(t)
	repo := NewProfileRepository()
	user := createTestUser(t)

	none, err := repo.GetByUserID(user.ID)
	require.NoError(t, err)
	assert.Nil(t, none)

	profile := &models.ReadingProfile{
		UserID:                user.ID,
		Level:                 4,
		MicroLevel:            2.5,
		ReadingSpeed:          180,
		ComprehensionAccuracy: 85,
		Strengths:             []string{"comprehension"},
		Challenges:            []string{"inference"},
	}
	require.NoError(t, repo.Upsert(profile))

	got, err := repo.GetByUserID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 4, got.Level)
	assert.Equal(t, 2.5, got.MicroLevel)
	assert.Equal(t, []string{"comprehension"}, got.Strengths)
	assert.Equal(t, []string{"inference"}, got.Challenges)

	// recalibration replaces the row
	profile.Level = 5
	profile.Strengths = []string{}
	require.NoError(t, repo.Upsert(profile))

	got, err = repo.GetByUserID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 5, got.Level)
	assert.Empty(t, got.Strengths)
}

// TestProfileRepository_UpdateMicroLevel verifies the slider update and
// the error for users with no profile.
func TestProfileRepository_UpdateMicroLevel(t *testing.T) {
	setupTestDB(t)
	repo := NewProfileRepository()
	user := createTestUser(t)

	require.Error(t, repo.UpdateMicroLevel(user.ID, 3.0))

	require.NoError(t, repo.Upsert(&models.ReadingProfile{
		UserID:     user.ID,
		Level:      3,
		MicroLevel: 2.0,
		Strengths:  []string{},
		Challenges: []string{},
	}))
	require.NoError(t, repo.UpdateMicroLevel(user.ID, 3.5))

	got, err := repo.GetByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.5, got.MicroLevel)
}

// TestCalibrationRepository verifies submissions are stored and the latest
// lookup behaves for present and absent users.
func TestCalibrationRepository(t *testing.T) {
	setupTestDB(t)
	repo := NewCalibrationRepository()
	user := createTestUser(t)

	require.NoError(t, repo.Create(&models.CalibrationTest{
		UserID:            user.ID,
		PassageText:       "A short passage.",
		PassageDifficulty: 3,
		ReadingTime:       45,
		CorrectAnswers:    2,
		TotalQuestions:    3,
		AssessedLevel:     3,
	}))

	got, err := repo.GetLatestByUser(user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "A short passage.", got.PassageText)
	assert.Equal(t, 3, got.AssessedLevel)

	none, err := repo.GetLatestByUser(9999)
	require.NoError(t, err)
	assert.Nil(t, none)
}

// TestContentRepository verifies content creation, lookups, and the
// missing-variants query used by the nightly sweep.
func TestContentRepository(t *testing.T) {
	setupTestDB(t)
	repo := NewContentRepository()

	content := createTestContent(t)
	assert.Greater(t, content.ID, int64(0))
	assert.Equal(t, models.SourcePreGenerated, content.SourceType)

	got, err := repo.GetByID(content.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "The Water Cycle", got.Title)
	assert.Equal(t, 6.5, got.FleschKincaid)

	missing, err := repo.GetByID(9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	// no level-1 variant yet, so the sweep should pick this content up
	ids, err := repo.IDsMissingVariants()
	require.NoError(t, err)
	assert.Equal(t, []int64{content.ID}, ids)

	require.NoError(t, NewVariantRepository().Put(&models.ParagraphVariant{
		ContentID: content.ID, ChapterNumber: 1, ParagraphIndex: 0, Level: 1,
		Text: "Simple text.", OriginalText: "Water evaporates.",
	}))

	ids, err = repo.IDsMissingVariants()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

// TestVariantRepository verifies keyed storage, the nil miss, last-write-
// wins overwrites, and chapter listings.
func TestVariantRepository(t *testing.T) {
	setupTestDB(t)
	repo := NewVariantRepository()
	content := createTestContent(t)

	miss, err := repo.Get(content.ID, 1, 0, 2)
	require.NoError(t, err)
	assert.Nil(t, miss)

	put := func(paragraph, level int, text string) {
		require.NoError(t, repo.Put(&models.ParagraphVariant{
			ContentID: content.ID, ChapterNumber: 1, ParagraphIndex: paragraph,
			Level: level, Text: text, OriginalText: "original",
		}))
	}
	put(0, 4, "baseline zero")
	put(0, 2, "simple zero")
	put(1, 4, "baseline one")

	got, err := repo.Get(content.ID, 1, 0, 2)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "simple zero", got.Text)

	// same key overwrites
	put(0, 2, "simpler zero")
	got, err = repo.Get(content.ID, 1, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, "simpler zero", got.Text)

	chapter, err := repo.GetChapter(content.ID, 1)
	require.NoError(t, err)
	require.Len(t, chapter, 3)
	assert.Equal(t, 0, chapter[0].ParagraphIndex)
	assert.Equal(t, 2, chapter[0].Level)
	assert.Equal(t, 1, chapter[2].ParagraphIndex)

	atLevel, err := repo.GetChapterAtLevel(content.ID, 1, 4)
	require.NoError(t, err)
	require.Len(t, atLevel, 2)
	assert.Equal(t, "baseline zero", atLevel[0].Text)
	assert.Equal(t, "baseline one", atLevel[1].Text)
}

// TestWordLevelRepository verifies the JSON sequence roundtrip and
// overwriting on the same paragraph key.
func TestWordLevelRepository(t *testing.T) {
	setupTestDB(t)
	repo := NewWordLevelRepository()
	content := createTestContent(t)

	miss, err := repo.Get(content.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, miss)

	sequence := []models.WordSequenceEntry{
		{Word: "evaporates", Level1: "dries", Level2: "dries up", Level3: "turns to vapor", Level4: "evaporates"},
	}
	require.NoError(t, repo.Put(&models.WordLevel{
		ContentID: content.ID, ParagraphIndex: 0, WordSequence: sequence,
	}))

	got, err := repo.Get(content.ID, 0)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sequence, got.WordSequence)

	// empty sequences are stored too
	require.NoError(t, repo.Put(&models.WordLevel{
		ContentID: content.ID, ParagraphIndex: 0,
		WordSequence: []models.WordSequenceEntry{},
	}))
	got, err = repo.Get(content.ID, 0)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.WordSequence)
}

// TestSessionRepository verifies the session lifecycle from creation
// through completion.
func TestSessionRepository(t *testing.T) {
	setupTestDB(t)
	repo := NewSessionRepository()
	user := createTestUser(t)
	content := createTestContent(t)

	session := &models.ReadingSession{
		UserID:          user.ID,
		ContentID:       content.ID,
		DifficultyLevel: 3,
	}
	require.NoError(t, repo.Create(session))
	assert.Greater(t, session.ID, int64(0))
	assert.Equal(t, models.SessionActive, session.Status)

	active, err := repo.GetActiveByUserID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, session.ID, active.ID)

	require.NoError(t, repo.UpdatePosition(session.ID, 2, 2))
	got, err := repo.GetByID(session.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CurrentPosition)
	assert.Equal(t, 2, got.CompletedParagraphs)
	assert.False(t, got.CompletedAt.Valid)

	require.NoError(t, repo.UpdateStatus(session.ID, models.SessionCompleted))
	got, err = repo.GetByID(session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionCompleted, got.Status)
	assert.True(t, got.CompletedAt.Valid)

	none, err := repo.GetActiveByUserID(user.ID)
	require.NoError(t, err)
	assert.Nil(t, none)
}

// TestProgressRepository verifies entries are stored and listed in
// paragraph order.
func TestProgressRepository(t *testing.T) {
	setupTestDB(t)
	repo := NewProgressRepository()
	user := createTestUser(t)
	content := createTestContent(t)

	session := &models.ReadingSession{UserID: user.ID, ContentID: content.ID, DifficultyLevel: 2}
	require.NoError(t, NewSessionRepository().Create(session))

	for _, index := range []int{1, 0} {
		require.NoError(t, repo.Create(&models.ProgressEntry{
			SessionID:          session.ID,
			UserID:             user.ID,
			ParagraphIndex:     index,
			DifficultyLevel:    2,
			ComprehensionScore: 80,
			TimeSpent:          30,
		}))
	}

	entries, err := repo.GetBySession(session.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 0, entries[0].ParagraphIndex)
	assert.Equal(t, 1, entries[1].ParagraphIndex)
}
