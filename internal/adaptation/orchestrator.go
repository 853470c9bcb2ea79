// Package adaptation orchestrates pre-generation and on-demand retrieval
// of paragraph variants at different reading levels.
package adaptation

import (
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/example/readapt/pkg/models"
)

// Rewriter is the external text-rewrite capability. Implementations may
// fail on any call; the orchestrator decides whether a failure degrades
// or propagates.
type Rewriter interface {
	AdaptParagraph(paragraph string, currentLevel, targetLevel int) (string, error)
	WordLevelSplit(paragraph string) ([]models.WordSequenceEntry, error)
}

// VariantStore persists paragraph variants keyed by
// (content, chapter, paragraph, level). Get returns nil for a missing
// variant; Put is a last-write-wins upsert.
type VariantStore interface {
	Get(contentID int64, chapterNumber, paragraphIndex, level int) (*models.ParagraphVariant, error)
	Put(variant *models.ParagraphVariant) error
}

// WordLevelStore persists per-paragraph word sequences
type WordLevelStore interface {
	Get(contentID int64, paragraphIndex int) (*models.WordLevel, error)
	Put(wl *models.WordLevel) error
}

// TargetLevels are the adapted levels generated below the baseline
var TargetLevels = []int{1, 2, 3}

// Orchestrator drives variant generation against injected collaborators
type Orchestrator struct {
	rewriter   Rewriter
	variants   VariantStore
	wordLevels WordLevelStore
}

// New creates an orchestrator
func New(rewriter Rewriter, variants VariantStore, wordLevels WordLevelStore) *Orchestrator {
	return &Orchestrator{
		rewriter:   rewriter,
		variants:   variants,
		wordLevels: wordLevels,
	}
}

// BatchResult summarizes one pre-generation run
type BatchResult struct {
	Paragraphs int `json:"paragraphs"`
	Generated  int `json:"generated"`
	Degraded   int `json:"degraded"`
}

var paragraphBreak = regexp.MustCompile(`\n\n+`)

// SplitParagraphs splits text into paragraphs on blank lines, trimming
// and discarding empty fragments
func SplitParagraphs(text string) []string {
	parts := paragraphBreak.Split(text, -1)
	paragraphs := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// PregenerateParagraph persists the baseline text as the level-4 variant
// and generates variants for every target level. A failed rewrite degrades
// to the baseline text so the paragraph stays readable at every level;
// failures are logged and never abort the batch.
func (o *Orchestrator) PregenerateParagraph(contentID int64, chapterNumber, paragraphIndex int, originalText string) (*BatchResult, error) {
	baseline := &models.ParagraphVariant{
		ContentID:      contentID,
		ChapterNumber:  chapterNumber,
		ParagraphIndex: paragraphIndex,
		Level:          models.BaselineLevel,
		Text:           originalText,
		OriginalText:   originalText,
	}
	if err := o.variants.Put(baseline); err != nil {
		return nil, fmt.Errorf("failed to store baseline variant: %v", err)
	}

	result := &BatchResult{Paragraphs: 1}
	for _, level := range TargetLevels {
		text, err := o.rewriter.AdaptParagraph(originalText, models.BaselineLevel, level)
		if err != nil {
			log.Printf("rewrite failed for content %d chapter %d paragraph %d level %d, using baseline: %v",
				contentID, chapterNumber, paragraphIndex, level, err)
			text = originalText
			result.Degraded++
		} else {
			result.Generated++
		}

		variant := &models.ParagraphVariant{
			ContentID:      contentID,
			ChapterNumber:  chapterNumber,
			ParagraphIndex: paragraphIndex,
			Level:          level,
			Text:           text,
			OriginalText:   originalText,
		}
		if err := o.variants.Put(variant); err != nil {
			return nil, fmt.Errorf("failed to store level %d variant: %v", level, err)
		}
	}
	return result, nil
}

// PregenerateContent splits the content's original text into paragraphs
// and pre-generates variants for all of them as chapter 1
func (o *Orchestrator) PregenerateContent(content *models.Content) (*BatchResult, error) {
	return o.PregenerateChapter(content.ID, 1, SplitParagraphs(content.OriginalText))
}

// PregenerateChapter pre-generates variants for every paragraph of one
// chapter. Paragraphs are processed sequentially; per-level failures
// degrade rather than abort.
func (o *Orchestrator) PregenerateChapter(contentID int64, chapterNumber int, paragraphs []string) (*BatchResult, error) {
	total := &BatchResult{}
	for i, paragraph := range paragraphs {
		result, err := o.PregenerateParagraph(contentID, chapterNumber, i, paragraph)
		if err != nil {
			return nil, err
		}
		total.Paragraphs += result.Paragraphs
		total.Generated += result.Generated
		total.Degraded += result.Degraded
	}
	return total, nil
}

// AdaptOnDemand returns the variant for one paragraph at one level,
// generating and persisting it on a cache miss. An existing variant never
// triggers a rewrite call. The level-4 baseline must already exist; a
// failed rewrite propagates to the caller instead of degrading.
func (o *Orchestrator) AdaptOnDemand(contentID int64, chapterNumber, paragraphIndex, level int) (*models.ParagraphVariant, error) {
	if level < 1 || level > models.BaselineLevel {
		return nil, fmt.Errorf("invalid variant level %d", level)
	}

	existing, err := o.variants.Get(contentID, chapterNumber, paragraphIndex, level)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	baseline, err := o.variants.Get(contentID, chapterNumber, paragraphIndex, models.BaselineLevel)
	if err != nil {
		return nil, err
	}
	if baseline == nil {
		return nil, fmt.Errorf("no baseline text for content %d chapter %d paragraph %d", contentID, chapterNumber, paragraphIndex)
	}

	text, err := o.rewriter.AdaptParagraph(baseline.Text, models.BaselineLevel, level)
	if err != nil {
		return nil, fmt.Errorf("failed to adapt paragraph to level %d: %v", level, err)
	}

	variant := &models.ParagraphVariant{
		ContentID:      contentID,
		ChapterNumber:  chapterNumber,
		ParagraphIndex: paragraphIndex,
		Level:          level,
		Text:           text,
		OriginalText:   baseline.Text,
	}
	if err := o.variants.Put(variant); err != nil {
		return nil, fmt.Errorf("failed to store variant: %v", err)
	}
	return variant, nil
}

// GenerateWordSequence produces and persists the word-by-word four-level
// sequence for one paragraph. A transport failure propagates; a malformed
// reply is stored as an empty sequence, which readers treat as "no
// word-level data available".
func (o *Orchestrator) GenerateWordSequence(contentID int64, paragraphIndex int, paragraph string) ([]models.WordSequenceEntry, error) {
	sequence, err := o.rewriter.WordLevelSplit(paragraph)
	if err != nil {
		return nil, fmt.Errorf("failed to split paragraph into word levels: %v", err)
	}

	wl := &models.WordLevel{
		ContentID:      contentID,
		ParagraphIndex: paragraphIndex,
		WordSequence:   sequence,
	}
	if err := o.wordLevels.Put(wl); err != nil {
		return nil, fmt.Errorf("failed to store word sequence: %v", err)
	}
	return sequence, nil
}

// ParagraphInput names one paragraph for word-level pre-generation
type ParagraphInput struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// PregenerateWordLevels generates word sequences for a batch of
// paragraphs, returning how many were processed
func (o *Orchestrator) PregenerateWordLevels(contentID int64, paragraphs []ParagraphInput) (int, error) {
	for _, p := range paragraphs {
		if _, err := o.GenerateWordSequence(contentID, p.Index, p.Text); err != nil {
			return 0, err
		}
	}
	return len(paragraphs), nil
}
