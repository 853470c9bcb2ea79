package assessment

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAssessReadingLevel_BaseCase checks a mid-difficulty passage read at
// an ordinary pace with full comprehension: base 3, +1 comprehension,
// no speed adjustment.
func TestAssessReadingLevel_BaseCase(t *testing.T) {
	level := AssessReadingLevel(60, 3, 3, 6)
	assert.Equal(t, 4, level)
}

// TestAssessReadingLevel_Adjustments covers the comprehension and speed
// bumps individually and stacked.
func TestAssessReadingLevel_Adjustments(t *testing.T) {
	tests := []struct {
		name       string
		seconds    int
		correct    int
		total      int
		difficulty int
		want       int
	}{
		// estimated words = 100 + difficulty*20
		{"low comprehension drops a level", 60, 1, 3, 6, 2},
		{"middling comprehension leaves base", 60, 2, 3, 6, 3},
		{"fast reading adds a level", 30, 2, 3, 6, 4},
		{"slow reading drops a level", 300, 2, 3, 6, 2},
		{"bumps stack", 30, 3, 3, 6, 5},
		{"penalties stack", 300, 1, 3, 6, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssessReadingLevel(tt.seconds, tt.correct, tt.total, tt.difficulty)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestAssessReadingLevel_Clamped verifies the result stays within 1-7
// even when adjustments push past the bounds.
func TestAssessReadingLevel_Clamped(t *testing.T) {
	assert.Equal(t, 1, AssessReadingLevel(600, 0, 3, 1))
	assert.Equal(t, 7, AssessReadingLevel(30, 3, 3, 12))
}

// TestAnalyzePerformance_AllCorrect verifies every answered category shows
// up as a strength and absent categories appear in neither list.
func TestAnalyzePerformance_AllCorrect(t *testing.T) {
	passage, ok := FindPassage(Passages[0].Text)
	require.True(t, ok)

	// first catalog passage has comprehension and inference questions only
	strengths, challenges := AnalyzePerformance(passage.Questions, []int{1, 1, 1})
	assert.ElementsMatch(t, []string{"comprehension", "inference"}, strengths)
	assert.Empty(t, challenges)
	assert.NotContains(t, strengths, "vocabulary")
}

// TestAnalyzePerformance_AllWrong verifies a fully incorrect attempt puts
// every answered category in challenges.
func TestAnalyzePerformance_AllWrong(t *testing.T) {
	strengths, challenges := AnalyzePerformance(Passages[0].Questions, []int{0, 0, 0})
	assert.Empty(t, strengths)
	assert.ElementsMatch(t, []string{"comprehension", "inference"}, challenges)
	assert.NotNil(t, strengths)
}

// TestAnalyzePerformance_MiddleBand verifies a half-right category lands
// in challenges while a fully-right one is a strength.
func TestAnalyzePerformance_MiddleBand(t *testing.T) {
	// comprehension 1/2, inference 1/1
	strengths, challenges := AnalyzePerformance(Passages[0].Questions, []int{1, 0, 1})
	assert.Equal(t, []string{"inference"}, strengths)
	assert.Equal(t, []string{"comprehension"}, challenges)
}

// TestAnalyzePerformance_MissingAnswers verifies unanswered questions
// count as incorrect rather than panicking.
func TestAnalyzePerformance_MissingAnswers(t *testing.T) {
	strengths, challenges := AnalyzePerformance(Passages[0].Questions, []int{1})
	assert.NotContains(t, strengths, "inference")
	assert.Contains(t, challenges, "inference")
}

// TestEvaluateSubmission_HappyPath scores a perfect run over the easiest
// catalog passage.
func TestEvaluateSubmission_HappyPath(t *testing.T) {
	result, err := EvaluateSubmission(Submission{
		PassageText:       Passages[0].Text,
		PassageDifficulty: Passages[0].FleschKincaid,
		ReadingTime:       60,
		Answers:           []int{1, 1, 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Level)
	assert.Equal(t, 3, result.CorrectAnswers)
	assert.Equal(t, 3, result.TotalQuestions)
	assert.Equal(t, 100, result.ComprehensionAccuracy)
	assert.Greater(t, result.ReadingSpeed, 0)
	assert.ElementsMatch(t, []string{"comprehension", "inference"}, result.Strengths)
	assert.Empty(t, result.Challenges)
}

// TestEvaluateSubmission_UnknownPassage verifies an unrecognized passage
// is rejected instead of guessed around.
func TestEvaluateSubmission_UnknownPassage(t *testing.T) {
	_, err := EvaluateSubmission(Submission{
		PassageText:       "Some text the catalog has never seen.",
		PassageDifficulty: 5,
		ReadingTime:       60,
		Answers:           []int{0},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown calibration passage")
}

// TestEvaluateSubmission_InvalidReadingTime verifies non-positive reading
// times are rejected.
func TestEvaluateSubmission_InvalidReadingTime(t *testing.T) {
	for _, seconds := range []int{0, -10} {
		_, err := EvaluateSubmission(Submission{
			PassageText: Passages[0].Text,
			ReadingTime: seconds,
			Answers:     []int{1, 1, 1},
		})
		require.Error(t, err)
	}
}

// TestFindPassage verifies verbatim lookup and miss behavior.
func TestFindPassage(t *testing.T) {
	for i := range Passages {
		p, ok := FindPassage(Passages[i].Text)
		require.True(t, ok)
		assert.Equal(t, Passages[i].FleschKincaid, p.FleschKincaid)
	}

	_, ok := FindPassage(Passages[0].Text + " ")
	assert.False(t, ok)
}

// TestRandomPassage verifies the random pick always comes from the
// catalog.
func TestRandomPassage(t *testing.T) {
	for i := 0; i < 20; i++ {
		p := RandomPassage()
		_, ok := FindPassage(p.Text)
		assert.True(t, ok)
	}
}

// TestRandomPassage_ConcurrentCallers exercises RandomPassage from many
// goroutines at once, as concurrent calibration requests do. Run with
// -race this fails if the random source is not safe to share.
func TestRandomPassage_ConcurrentCallers(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				p := RandomPassage()
				if p.Text == "" {
					t.Error("empty passage returned")
					return
				}
			}
		}()
	}
	wg.Wait()
}
