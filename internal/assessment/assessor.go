package assessment

import (
	"fmt"
	"math"
	"strings"
)

// Submission is one calibration attempt as received from the client,
// validated at the transport boundary before reaching this package.
type Submission struct {
	PassageText       string
	PassageDifficulty int
	ReadingTime       int // seconds
	Answers           []int
}

// Result is the outcome of evaluating a calibration submission
type Result struct {
	Level                 int      `json:"level"`
	ReadingSpeed          int      `json:"reading_speed"` // words per minute
	ComprehensionAccuracy int      `json:"comprehension_accuracy"`
	Strengths             []string `json:"strengths"`
	Challenges            []string `json:"challenges"`
	CorrectAnswers        int      `json:"correct_answers"`
	TotalQuestions        int      `json:"total_questions"`
}

// AssessReadingLevel converts one calibration attempt into a reading level
// between 1 and 7. The base level comes from the passage difficulty,
// adjusted up or down by comprehension rate and reading speed; both
// adjustments can stack before clamping.
//
// Reading speed here is estimated from the passage difficulty
// (100 + difficulty*20 words), not the actual passage length. Assessed
// levels for existing users depend on this estimate, so it stays as is.
func AssessReadingLevel(readingTimeSeconds, correctAnswers, totalQuestions, passageDifficulty int) int {
	comprehensionRate := float64(correctAnswers) / float64(totalQuestions)
	wordsPerMinute := estimateWPM(readingTimeSeconds, passageDifficulty)

	level := int(math.Round(float64(passageDifficulty) / 2))

	if comprehensionRate >= 0.9 {
		level++
	} else if comprehensionRate < 0.6 {
		level--
	}

	if wordsPerMinute > 250 {
		level++
	} else if wordsPerMinute < 150 {
		level--
	}

	if level < 1 {
		return 1
	}
	if level > 7 {
		return 7
	}
	return level
}

// estimateWPM approximates reading speed from the passage difficulty
// rating (harder passages are longer)
func estimateWPM(readingTimeSeconds, passageDifficulty int) int {
	estimatedWords := 100 + passageDifficulty*20
	minutes := float64(readingTimeSeconds) / 60
	return int(math.Round(float64(estimatedWords) / minutes))
}

// AnalyzePerformance partitions questions by category and reports which
// categories the user is strong in (>= 80% correct) or challenged by
// (< 60% correct). Categories with no questions appear in neither list.
func AnalyzePerformance(questions []Question, userAnswers []int) (strengths, challenges []string) {
	type stats struct{ correct, total int }
	performance := map[QuestionCategory]*stats{
		CategoryComprehension: {},
		CategoryVocabulary:    {},
		CategoryInference:     {},
	}

	for i, q := range questions {
		s, ok := performance[q.Category]
		if !ok {
			continue
		}
		s.total++
		if i < len(userAnswers) && userAnswers[i] == q.CorrectAnswer {
			s.correct++
		}
	}

	strengths = []string{}
	challenges = []string{}
	for _, category := range []QuestionCategory{CategoryComprehension, CategoryVocabulary, CategoryInference} {
		s := performance[category]
		if s.total == 0 {
			continue
		}
		rate := float64(s.correct) / float64(s.total)
		if rate >= 0.8 {
			strengths = append(strengths, string(category))
		} else if rate < 0.6 {
			challenges = append(challenges, string(category))
		}
	}
	return strengths, challenges
}

// EvaluateSubmission scores a calibration submission against the passage
// catalog. The submitted text must match a known passage verbatim; an
// unknown passage is a caller error, never guessed around.
//
// Unlike the level assessment, the reported reading speed uses the real
// word count of the passage.
func EvaluateSubmission(sub Submission) (*Result, error) {
	passage, ok := FindPassage(sub.PassageText)
	if !ok {
		return nil, fmt.Errorf("unknown calibration passage")
	}
	if sub.ReadingTime <= 0 {
		return nil, fmt.Errorf("reading time must be positive")
	}

	correctAnswers := 0
	for i, q := range passage.Questions {
		if i < len(sub.Answers) && sub.Answers[i] == q.CorrectAnswer {
			correctAnswers++
		}
	}
	totalQuestions := len(passage.Questions)

	level := AssessReadingLevel(sub.ReadingTime, correctAnswers, totalQuestions, sub.PassageDifficulty)
	strengths, challenges := AnalyzePerformance(passage.Questions, sub.Answers)

	words := len(strings.Fields(sub.PassageText))
	readingSpeed := int(math.Round(float64(words) / float64(sub.ReadingTime) * 60))
	accuracy := int(math.Round(float64(correctAnswers) / float64(totalQuestions) * 100))

	return &Result{
		Level:                 level,
		ReadingSpeed:          readingSpeed,
		ComprehensionAccuracy: accuracy,
		Strengths:             strengths,
		Challenges:            challenges,
		CorrectAnswers:        correctAnswers,
		TotalQuestions:        totalQuestions,
	}, nil
}
