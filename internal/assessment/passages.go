// Package assessment turns calibration quiz submissions into a 1-7
// reading level with a strengths/challenges breakdown.
package assessment

import "math/rand"

// QuestionCategory classifies what a calibration question tests
type QuestionCategory string

const (
	// CategoryComprehension tests literal understanding of the passage
	CategoryComprehension QuestionCategory = "comprehension"
	// CategoryVocabulary tests word meaning in context
	CategoryVocabulary QuestionCategory = "vocabulary"
	// CategoryInference tests conclusions not stated directly
	CategoryInference QuestionCategory = "inference"
)

// Question is one multiple-choice calibration question
type Question struct {
	Question      string           `json:"question"`
	Options       []string         `json:"options"`
	CorrectAnswer int              `json:"correctAnswer"` // index into Options
	Category      QuestionCategory `json:"type"`
}

// Passage is a fixed calibration text with its difficulty rating and
// questions. The catalog is immutable and defined at startup; passages are
// matched verbatim on submission.
type Passage struct {
	Text          string     `json:"text"`
	FleschKincaid int        `json:"fleschKincaid"`
	Questions     []Question `json:"questions"`
}

// Passages is the fixed calibration catalog, spanning easy to difficult
var Passages = []Passage{
	{
		Text: `The sun rises in the east and sets in the west. Every morning, people wake up to see the bright yellow sun climbing into the sky. The sun gives us light and warmth. Without the sun, plants could not grow and animals would have no food. The sun is very important for life on Earth. During the day, the sun moves across the sky. At night, we cannot see it because Earth has turned away from the sun.`,
		FleschKincaid: 3,
		Questions: []Question{
			{
				Question:      "Where does the sun rise?",
				Options:       []string{"In the west", "In the east", "In the north", "In the south"},
				CorrectAnswer: 1,
				Category:      CategoryComprehension,
			},
			{
				Question:      "What does the sun give us?",
				Options:       []string{"Rain and snow", "Light and warmth", "Wind and clouds", "Stars and moon"},
				CorrectAnswer: 1,
				Category:      CategoryComprehension,
			},
			{
				Question:      "Why can't we see the sun at night?",
				Options:       []string{"The sun goes away", "Earth has turned away from the sun", "Clouds cover it", "It becomes too small"},
				CorrectAnswer: 1,
				Category:      CategoryInference,
			},
		},
	},
	{
		Text: `Honeybees live together in large groups called colonies. Each colony has one queen, thousands of workers, and a smaller number of drones. The workers gather nectar from flowers and carry it back to the hive, where it is gradually transformed into honey. Bees communicate the location of good flowers by performing a distinctive dance that indicates both direction and distance. This remarkable system allows the whole colony to harvest efficiently from the best sources nearby.`,
		FleschKincaid: 7,
		Questions: []Question{
			{
				Question:      "Who gathers nectar for the colony?",
				Options:       []string{"The queen", "The drones", "The workers", "Visiting bees"},
				CorrectAnswer: 2,
				Category:      CategoryComprehension,
			},
			{
				Question:      "What does 'distinctive' most likely mean in this passage?",
				Options:       []string{"Easily recognized", "Very loud", "Dangerous", "Accidental"},
				CorrectAnswer: 0,
				Category:      CategoryVocabulary,
			},
			{
				Question:      "What can be inferred about the bees' dance?",
				Options:       []string{"It is done for entertainment", "It helps the colony find food", "It warns of predators", "It cools the hive"},
				CorrectAnswer: 1,
				Category:      CategoryInference,
			},
		},
	},
	{
		Text: `Climate change represents one of the most significant challenges facing humanity in the twenty-first century. The accumulation of greenhouse gases in the atmosphere, primarily carbon dioxide from fossil fuel combustion, has led to a measurable increase in global average temperatures. This warming trend has cascading effects on weather patterns, ocean currents, and ecosystems worldwide. Scientists have documented melting ice caps, rising sea levels, and increasingly frequent extreme weather events. The scientific consensus is clear: human activities are the dominant cause of observed warming since the mid-twentieth century.`,
		FleschKincaid: 12,
		Questions: []Question{
			{
				Question:      "What is the primary cause of greenhouse gas accumulation mentioned in the passage?",
				Options:       []string{"Natural volcanic activity", "Fossil fuel combustion", "Ocean evaporation", "Plant respiration"},
				CorrectAnswer: 1,
				Category:      CategoryComprehension,
			},
			{
				Question:      "What does 'cascading effects' most likely mean in this context?",
				Options:       []string{"Waterfall-like movements", "A series of connected consequences", "Rapid improvements", "Circular patterns"},
				CorrectAnswer: 1,
				Category:      CategoryVocabulary,
			},
			{
				Question:      "Based on the passage, what can be inferred about the scientific community's view?",
				Options:       []string{"They are uncertain about climate change", "They disagree on the causes", "They largely agree humans are responsible", "They think it's a natural cycle"},
				CorrectAnswer: 2,
				Category:      CategoryInference,
			},
		},
	},
}

// RandomPassage returns a random passage from the catalog. The global
// rand source is locked internally, so this is safe from concurrent
// request handlers.
func RandomPassage() Passage {
	return Passages[rand.Intn(len(Passages))]
}

// FindPassage looks up a catalog passage by its verbatim text
func FindPassage(text string) (*Passage, bool) {
	for i := range Passages {
		if Passages[i].Text == text {
			return &Passages[i], true
		}
	}
	return nil, false
}
