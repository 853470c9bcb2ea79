// Package readability provides text-difficulty heuristics: a
// Flesch-Kincaid grade-level scorer and a CEFR classifier. Both are pure
// functions over raw text.
package readability

import (
	"math"
	"strings"
)

// CalculateFleschKincaid returns an approximate U.S. grade level for the
// given text, floored at 0 and rounded to one decimal place. Degenerate
// input (no sentences or no words) yields 0.
func CalculateFleschKincaid(text string) float64 {
	sentences := splitSentences(text)
	words := strings.Fields(text)
	if len(sentences) == 0 || len(words) == 0 {
		return 0
	}

	totalSyllables := 0
	for _, word := range words {
		totalSyllables += countSyllables(word)
	}

	grade := 0.39*(float64(len(words))/float64(len(sentences))) +
		11.8*(float64(totalSyllables)/float64(len(words))) -
		15.59
	if grade < 0 {
		return 0
	}
	return math.Round(grade*10) / 10
}

// splitSentences splits on sentence-terminal punctuation and discards
// whitespace-only fragments
func splitSentences(text string) []string {
	fragments := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	sentences := fragments[:0]
	for _, f := range fragments {
		if strings.TrimSpace(f) != "" {
			sentences = append(sentences, f)
		}
	}
	return sentences
}

// countSyllables estimates the syllable count of a word by counting
// transitions into vowels, with an adjustment for a silent trailing "e".
// Never returns less than 1.
func countSyllables(word string) int {
	var letters strings.Builder
	for _, r := range strings.ToLower(word) {
		if r >= 'a' && r <= 'z' {
			letters.WriteRune(r)
		}
	}
	w := letters.String()

	if len(w) <= 3 {
		return 1
	}

	count := 0
	previousWasVowel := false
	for _, r := range w {
		isVowel := strings.ContainsRune("aeiouy", r)
		if isVowel && !previousWasVowel {
			count++
		}
		previousWasVowel = isVowel
	}

	if strings.HasSuffix(w, "e") {
		count--
	}
	if count < 1 {
		return 1
	}
	return count
}
