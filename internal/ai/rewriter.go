// Package ai implements the text-rewrite capability on top of an
// OpenAI-compatible chat completions API.
package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/example/readapt/pkg/models"
)

// Rewriter is a client for the chat completions API used to rewrite text
// at different reading levels
type Rewriter struct {
	apiKey      string
	apiURL      string
	model       string
	maxTokens   int
	temperature float64
	client      *http.Client
}

// New creates a new Rewriter client from the environment
func New() (*Rewriter, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	apiURL := os.Getenv("OPENAI_API_URL")
	if apiURL == "" {
		apiURL = "https://api.openai.com/v1/chat/completions"
	}
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &Rewriter{
		apiKey:      apiKey,
		apiURL:      apiURL,
		model:       model,
		maxTokens:   1500,
		temperature: 0.7,
		client:      &http.Client{},
	}, nil
}

// Message represents a message in the chat conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a request to the chat completions API
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

// ChatResponse represents a response from the chat completions API
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// chat sends one conversation to the API and returns the trimmed reply
func (c *Rewriter) chat(messages []Message, temperature float64) (string, error) {
	request := ChatRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   c.maxTokens,
		Temperature: temperature,
	}

	requestData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %v", err)
	}

	req, err := http.NewRequest("POST", c.apiURL, bytes.NewBuffer(requestData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	var response ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response (status %d): %v", resp.StatusCode, err)
	}

	if response.Error != nil {
		return "", fmt.Errorf("API error: %s", response.Error.Message)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

// levelDescriptions describe the seven reading levels for rewrite prompts
var levelDescriptions = map[int]string{
	1: "1st-2nd grade level with very simple sentences (5-8 words), basic vocabulary, and concrete concepts",
	2: "3rd-4th grade level with simple sentences (8-12 words), common vocabulary, and straightforward ideas",
	3: "5th-6th grade level with moderate sentences (12-15 words), age-appropriate vocabulary, and some abstract concepts",
	4: "7th-8th grade level with varied sentences (15-18 words), expanded vocabulary, and more complex ideas",
	5: "9th-10th grade level with sophisticated sentences (18-22 words), academic vocabulary, and nuanced concepts",
	6: "11th-12th grade level with complex sentences (22-25 words), advanced vocabulary, and abstract reasoning",
	7: "college/adult level with intricate sentences (25+ words), specialized vocabulary, and sophisticated analysis",
}

// AdaptText rewrites a full text to the target reading level (1-7)
func (c *Rewriter) AdaptText(text string, targetLevel int) (string, error) {
	description, ok := levelDescriptions[targetLevel]
	if !ok {
		return "", fmt.Errorf("invalid target level %d", targetLevel)
	}

	prompt := fmt.Sprintf(`You are an expert reading specialist. Rewrite the following text to match a %s reading level.

IMPORTANT RULES:
1. Preserve all key information and main ideas
2. Maintain the same meaning and factual accuracy
3. Adjust vocabulary complexity to match the target level
4. Adjust sentence structure and length appropriately
5. Break complex ideas into simpler steps for lower levels
6. Use more sophisticated language and structure for higher levels
7. Keep the same general length (number of paragraphs)
8. Do NOT add explanations or commentary - just rewrite the text

Original text:
%s

Rewritten text at target level:`, description, text)

	messages := []Message{
		{Role: "system", Content: "You are an expert reading specialist who adapts text to different reading levels while preserving meaning."},
		{Role: "user", Content: prompt},
	}

	return c.chat(messages, c.temperature)
}

// AdaptParagraph rewrites one paragraph from its current level to the
// target level. Same-level requests return the paragraph unchanged.
func (c *Rewriter) AdaptParagraph(paragraph string, currentLevel, targetLevel int) (string, error) {
	if currentLevel == targetLevel {
		return paragraph, nil
	}

	direction := "Decrease"
	change := currentLevel - targetLevel
	rule := "Use simpler words and shorter sentences"
	if targetLevel > currentLevel {
		direction = "Increase"
		change = targetLevel - currentLevel
		rule = "Use more sophisticated vocabulary and complex sentence structures"
	}

	prompt := fmt.Sprintf(`%s the reading difficulty of this paragraph by %d grade level(s).

Rules:
- Preserve the exact meaning and information
- %s
- Keep approximately the same length
- Do NOT add new information or explanations

Original paragraph:
%s

Rewritten paragraph:`, direction, change, rule, paragraph)

	messages := []Message{
		{Role: "system", Content: "You are an expert at adjusting text difficulty while preserving meaning."},
		{Role: "user", Content: prompt},
	}

	return c.chat(messages, c.temperature)
}

// WordLevelSplit asks the API for a word-by-word four-level rewrite of a
// paragraph. Transport and API failures are returned as errors; a reply
// that doesn't parse as the expected JSON array yields an empty sequence.
func (c *Rewriter) WordLevelSplit(paragraph string) ([]models.WordSequenceEntry, error) {
	prompt := fmt.Sprintf(`Split this paragraph into individual words.
For each word give four versions:
- level1 (grade 1-2)
- level2 (grade 5-6)
- level3 (grade 8-9)
- level4 (original wording)

Return strictly valid JSON array in this format (no commentary):
[
  {"word":"quick","level1":"fast","level2":"rapid","level3":"swift","level4":"expeditious"}
]

Paragraph:
%s`, paragraph)

	messages := []Message{
		{Role: "system", Content: "You are a linguistic expert who rewrites words for different reading levels and always responds with valid JSON arrays."},
		{Role: "user", Content: prompt},
	}

	raw, err := c.chat(messages, 0.3)
	if err != nil {
		return nil, err
	}

	return ParseWordSequence(raw), nil
}

// ParseWordSequence extracts a word sequence from a raw model reply.
// Entries missing any of the five required string fields are dropped; a
// reply that isn't a JSON array yields an empty sequence rather than an
// error.
func ParseWordSequence(raw string) []models.WordSequenceEntry {
	payload := extractJSONArray(raw)
	if payload == "" {
		return []models.WordSequenceEntry{}
	}

	var parsed []map[string]interface{}
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return []models.WordSequenceEntry{}
	}

	sequence := make([]models.WordSequenceEntry, 0, len(parsed))
	for _, entry := range parsed {
		word, ok1 := entry["word"].(string)
		l1, ok2 := entry["level1"].(string)
		l2, ok3 := entry["level2"].(string)
		l3, ok4 := entry["level3"].(string)
		l4, ok5 := entry["level4"].(string)
		if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
			continue
		}
		sequence = append(sequence, models.WordSequenceEntry{
			Word:   word,
			Level1: l1,
			Level2: l2,
			Level3: l3,
			Level4: l4,
		})
	}
	return sequence
}

// GeneratedQuestion is one multiple-choice comprehension question produced
// for a paragraph
type GeneratedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// GenerateQuestions produces multiple-choice comprehension questions for a
// paragraph. An unparseable reply yields an empty list.
func (c *Rewriter) GenerateQuestions(paragraph string, count int) ([]GeneratedQuestion, error) {
	prompt := fmt.Sprintf(`Generate %d multiple-choice comprehension questions for this paragraph.

Paragraph:
%s

Return ONLY a JSON array with this exact structure:
[
  {
    "question": "Question text here?",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correctAnswer": 0
  }
]

Rules:
- correctAnswer is the index (0-3) of the correct option
- Questions should test understanding, not just recall
- Make distractors plausible but clearly wrong
- Return ONLY the JSON array, no other text`, count, paragraph)

	messages := []Message{
		{Role: "system", Content: "You are an expert at creating comprehension questions. Always respond with valid JSON only."},
		{Role: "user", Content: prompt},
	}

	raw, err := c.chat(messages, 0.3)
	if err != nil {
		return nil, err
	}

	payload := extractJSONArray(raw)
	if payload == "" {
		return []GeneratedQuestion{}, nil
	}
	var questions []GeneratedQuestion
	if err := json.Unmarshal([]byte(payload), &questions); err != nil {
		return []GeneratedQuestion{}, nil
	}
	return questions, nil
}

// extractJSONArray pulls the outermost [...] span out of a reply that may
// carry commentary around the JSON
func extractJSONArray(raw string) string {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return raw[start : end+1]
}
