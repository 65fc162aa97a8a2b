package session

import "wordpecker/internal/models"

// View is the wire representation of a session. Only the fields relevant to
// the current step are populated, and the correct answer of the current
// question is withheld until it has been checked.
type View struct {
	ID             string `json:"id"`
	LevelID        int    `json:"levelId"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
	Step           Step   `json:"step"`

	WordCount     int                  `json:"wordCount"`
	QuestionCount int                  `json:"questionCount"`
	WordIndex     *int                 `json:"wordIndex,omitempty"`
	Word          *models.LearningWord `json:"word,omitempty"`
	Revealed      *bool                `json:"revealed,omitempty"`

	QuestionIndex  *int                      `json:"questionIndex,omitempty"`
	Question       *models.PracticeQuestion  `json:"question,omitempty"`
	SelectedAnswer string                    `json:"selectedAnswer,omitempty"`
	Checked        *bool                     `json:"checked,omitempty"`
	WasCorrect     *bool                     `json:"wasCorrect,omitempty"`

	Score   *int  `json:"score,omitempty"`
	Passed  *bool `json:"passed,omitempty"`
	Correct *int  `json:"correctAnswers,omitempty"`
	Total   *int  `json:"totalQuestions,omitempty"`
}

// Snapshot projects the session into a View.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	v := View{
		ID:             s.id,
		LevelID:        s.levelID,
		SourceLanguage: s.sourceLanguage,
		TargetLanguage: s.targetLanguage,
		Step:           s.step,
		WordCount:      len(s.words),
		QuestionCount:  len(s.questions),
	}

	switch s.step {
	case StepLearning:
		word := s.words[s.learning.wordIndex]
		if !s.learning.revealed {
			word.Translation = ""
			word.Pronunciation = ""
		}
		v.WordIndex = intPtr(s.learning.wordIndex)
		v.Word = &word
		v.Revealed = boolPtr(s.learning.revealed)
	case StepPractice:
		q := s.questions[s.practice.questionIndex]
		if !s.practice.checked {
			q.CorrectAnswer = ""
		}
		v.QuestionIndex = intPtr(s.practice.questionIndex)
		v.Question = &q
		v.SelectedAnswer = s.practice.selected
		v.Checked = boolPtr(s.practice.checked)
		if s.practice.checked {
			v.WasCorrect = boolPtr(s.practice.wasCorrect)
		}
	case StepComplete:
		v.Score = intPtr(s.result.score)
		v.Passed = boolPtr(s.result.passed)
		v.Correct = intPtr(s.result.correct)
		v.Total = intPtr(s.result.total)
	}
	return v
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }
