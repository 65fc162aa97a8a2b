package models

// LearningWord is a single vocabulary entry presented during a level.
// A session fetches one set of words up front and treats it as immutable
// for the rest of its lifetime.
type LearningWord struct {
	Original      string   `json:"original"`
	Translation   string   `json:"translation"`
	Pronunciation string   `json:"pronunciation,omitempty"`
	Examples      []string `json:"examples,omitempty"`
}

// QuestionKind identifies the type of a practice question.
type QuestionKind string

const (
	MultipleChoice QuestionKind = "multiple-choice"
	FillBlank      QuestionKind = "fill-blank"
)

// PracticeQuestion is one question in a practice round. Options is populated
// for multiple-choice questions only and always contains the correct answer
// exactly once.
type PracticeQuestion struct {
	Kind          QuestionKind `json:"kind"`
	Prompt        string       `json:"prompt"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correctAnswer"`
}

// LevelProgress is the persisted state of one learning level.
// IsCompleted implies Progress == 100; completing level N unlocks level N+1.
type LevelProgress struct {
	LevelID     int    `json:"levelId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	WordCount   int    `json:"wordCount"`
	IsUnlocked  bool   `json:"isUnlocked"`
	IsCompleted bool   `json:"isCompleted"`
	Progress    int    `json:"progress"` // 0-100
}
