package readability

import (
	"strings"
	"sync"
)

// CEFRLevel is a Common European Framework of Reference proficiency label
type CEFRLevel string

// The six CEFR levels, easiest to hardest. The heuristic classifier tops
// out at C1; C2 exists in the taxonomy and is used when mapping
// descriptions, but ClassifyText never produces it.
const (
	CEFRA1 CEFRLevel = "A1"
	CEFRA2 CEFRLevel = "A2"
	CEFRB1 CEFRLevel = "B1"
	CEFRB2 CEFRLevel = "B2"
	CEFRC1 CEFRLevel = "C1"
	CEFRC2 CEFRLevel = "C2"
)

// MapLevelToCEFR maps an internal variant level (1-4) to a CEFR label
func MapLevelToCEFR(level int) CEFRLevel {
	switch {
	case level <= 1:
		return CEFRA1
	case level <= 2:
		return CEFRA2
	case level <= 3:
		return CEFRB1
	default:
		return CEFRB2
	}
}

// Description returns a short human-readable description of a CEFR level
func Description(level CEFRLevel) string {
	switch level {
	case CEFRA1:
		return "Beginner - Can understand and use familiar everyday expressions"
	case CEFRA2:
		return "Elementary - Can understand sentences and frequently used expressions"
	case CEFRB1:
		return "Intermediate - Can understand the main points of clear standard input"
	case CEFRB2:
		return "Upper Intermediate - Can understand the main ideas of complex text"
	case CEFRC1:
		return "Advanced - Can understand a wide range of demanding texts"
	case CEFRC2:
		return "Proficient - Can understand with ease virtually everything"
	}
	return ""
}

// ClassifyText assigns a CEFR label from average sentence length and the
// share of multisyllable words (approximated as words with 3+ vowels).
// Thresholds are checked in order; the first match wins.
func ClassifyText(text string) CEFRLevel {
	words := strings.Fields(text)
	sentences := splitSentences(text)

	avgWordsPerSentence := 0.0
	if len(sentences) > 0 {
		avgWordsPerSentence = float64(len(words)) / float64(len(sentences))
	}

	complexWords := 0
	for _, word := range words {
		vowels := 0
		for _, r := range strings.ToLower(word) {
			if strings.ContainsRune("aeiou", r) {
				vowels++
			}
		}
		if vowels >= 3 {
			complexWords++
		}
	}
	complexWordRatio := 0.0
	if len(words) > 0 {
		complexWordRatio = float64(complexWords) / float64(len(words))
	}

	switch {
	case avgWordsPerSentence < 10 && complexWordRatio < 0.1:
		return CEFRA1
	case avgWordsPerSentence < 15 && complexWordRatio < 0.15:
		return CEFRA2
	case avgWordsPerSentence < 20 && complexWordRatio < 0.25:
		return CEFRB1
	case avgWordsPerSentence < 25 && complexWordRatio < 0.35:
		return CEFRB2
	default:
		return CEFRC1
	}
}

// cacheLimit caps the classification cache; once exceeded the oldest
// inserted entry is evicted
const cacheLimit = 1000

var cefrCache = struct {
	sync.Mutex
	entries map[string]CEFRLevel
	order   []string
}{
	entries: make(map[string]CEFRLevel),
}

// ClassifyTextCached memoizes ClassifyText keyed by the first 500
// characters of the trimmed input. The cache never changes the returned
// label for a given text.
func ClassifyTextCached(text string) CEFRLevel {
	key := text
	if runes := []rune(key); len(runes) > 500 {
		key = string(runes[:500])
	}
	key = strings.TrimSpace(key)

	cefrCache.Lock()
	defer cefrCache.Unlock()

	if level, ok := cefrCache.entries[key]; ok {
		return level
	}

	level := ClassifyText(text)
	cefrCache.entries[key] = level
	cefrCache.order = append(cefrCache.order, key)

	if len(cefrCache.entries) > cacheLimit {
		oldest := cefrCache.order[0]
		cefrCache.order = cefrCache.order[1:]
		delete(cefrCache.entries, oldest)
	}

	return level
}
