package session

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"wordpecker/internal/models"
)

// Step is the phase a learning session is in. Progression is strictly
// Intro -> Learning -> Practice -> Complete, with Retry as the only way back.
type Step string

const (
	StepIntro    Step = "intro"
	StepLearning Step = "learning"
	StepPractice Step = "practice"
	StepComplete Step = "complete"
)

// PassThreshold is the minimum final score (percent) required to complete a
// level.
const PassThreshold = 70

// checkpointProgress is persisted when the learner finishes the learning
// phase, before any question has been answered.
const checkpointProgress = 50

var (
	// ErrInvalidTransition reports a transition method called in a step it is
	// not valid for. This is a caller bug, not a user-facing failure; the
	// session state is left untouched.
	ErrInvalidTransition = errors.New("invalid session transition")

	// ErrNoAnswerSelected reports CheckAnswer called before any answer was
	// selected for the current question.
	ErrNoAnswerSelected = errors.New("no answer selected")
)

// ProgressStore persists per-level progress. Implementations are expected to
// be last-write-wins and idempotent; the session writes to it only at fixed
// transition points and treats failures as best-effort.
type ProgressStore interface {
	GetLevel(levelID int) (models.LevelProgress, error)
	SetProgress(levelID, progress int) error
	// CompleteLevel marks the level completed with full progress and unlocks
	// the next level.
	CompleteLevel(levelID int) error
}

// learningState holds the fields that only exist while in StepLearning.
type learningState struct {
	wordIndex int
	revealed  bool
}

// practiceState holds the fields that only exist while in StepPractice.
// answered is tracked separately from selected so an empty fill-in-the-blank
// submission is graded wrong rather than treated as no answer.
type practiceState struct {
	questionIndex int
	selected      string
	answered      bool
	checked       bool
	wasCorrect    bool
	correctCount  int
}

// outcome holds the fields that only exist once StepComplete is reached.
type outcome struct {
	score   int
	passed  bool
	correct int
	total   int
}

// Session drives one attempt at a level. It owns an immutable word set and
// question list fetched at construction time and mutates only through its
// own transition methods. All methods are safe for concurrent use.
type Session struct {
	id             string
	levelID        int
	sourceLanguage string
	targetLanguage string

	words     []models.LearningWord
	questions []models.PracticeQuestion

	mu       sync.Mutex
	step     Step
	learning learningState
	practice practiceState
	result   outcome

	store      ProgressStore
	lastActive time.Time
}

// New creates a session in the Intro step. Words and questions must be
// non-empty; the caller guarantees this by falling back to offline content
// when the remote fetch fails.
func New(id string, levelID int, sourceLang, targetLang string, words []models.LearningWord, questions []models.PracticeQuestion, store ProgressStore) (*Session, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("session %s: empty word set", id)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("session %s: empty question set", id)
	}
	return &Session{
		id:             id,
		levelID:        levelID,
		sourceLanguage: sourceLang,
		targetLanguage: targetLang,
		words:          words,
		questions:      questions,
		step:           StepIntro,
		store:          store,
		lastActive:     time.Now(),
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// LevelID returns the level this session is an attempt at.
func (s *Session) LevelID() int { return s.levelID }

// Start moves the session from Intro to Learning.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.step != StepIntro {
		return s.invalid("Start")
	}
	s.step = StepLearning
	s.learning = learningState{}
	return nil
}

// RevealTranslation shows the current word's translation. Idempotent.
func (s *Session) RevealTranslation() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.step != StepLearning {
		return s.invalid("RevealTranslation")
	}
	s.learning.revealed = true
	return nil
}

// AdvanceWord moves to the next word, or to the Practice step after the last
// one. It is only valid once the current translation has been revealed.
// Entering Practice writes a 50% checkpoint to the progress store; the write
// is best-effort and never blocks the session.
func (s *Session) AdvanceWord() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.step != StepLearning {
		return s.invalid("AdvanceWord")
	}
	if !s.learning.revealed {
		return fmt.Errorf("%w: AdvanceWord before translation revealed", ErrInvalidTransition)
	}

	if s.learning.wordIndex < len(s.words)-1 {
		s.learning.wordIndex++
		s.learning.revealed = false
		return nil
	}

	s.step = StepPractice
	s.learning = learningState{}
	s.practice = practiceState{}
	s.persist(func() error { return s.store.SetProgress(s.levelID, checkpointProgress) })
	return nil
}

// SelectAnswer records the learner's answer for the current question.
// Selecting again replaces the previous choice; once the answer has been
// checked further selections are ignored.
func (s *Session) SelectAnswer(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.step != StepPractice {
		return s.invalid("SelectAnswer")
	}
	if s.practice.checked {
		return nil
	}
	s.practice.selected = value
	s.practice.answered = true
	return nil
}

// CheckAnswer grades the selected answer. Fill-in-the-blank answers are
// compared case-insensitively with surrounding whitespace trimmed;
// multiple-choice answers must match exactly. There is no retry of a single
// question: the answer is locked in even when wrong.
func (s *Session) CheckAnswer() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.step != StepPractice {
		return s.invalid("CheckAnswer")
	}
	if s.practice.checked {
		return fmt.Errorf("%w: CheckAnswer called twice for one question", ErrInvalidTransition)
	}
	if !s.practice.answered {
		return ErrNoAnswerSelected
	}

	q := s.questions[s.practice.questionIndex]
	var correct bool
	if q.Kind == models.FillBlank {
		correct = strings.EqualFold(strings.TrimSpace(s.practice.selected), strings.TrimSpace(q.CorrectAnswer))
	} else {
		correct = s.practice.selected == q.CorrectAnswer
	}

	if correct {
		s.practice.correctCount++
	}
	s.practice.wasCorrect = correct
	s.practice.checked = true
	return nil
}

// AdvanceQuestion moves to the next question, or finishes the session after
// the last one. It is only valid once the current answer has been checked.
// Finishing computes the final score and persists the result: a passing
// score completes the level and unlocks the next one, a failing score is
// stored as partial progress.
func (s *Session) AdvanceQuestion() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.step != StepPractice {
		return s.invalid("AdvanceQuestion")
	}
	if !s.practice.checked {
		return fmt.Errorf("%w: AdvanceQuestion before answer checked", ErrInvalidTransition)
	}

	if s.practice.questionIndex < len(s.questions)-1 {
		s.practice.questionIndex++
		s.practice.selected = ""
		s.practice.answered = false
		s.practice.checked = false
		s.practice.wasCorrect = false
		return nil
	}

	total := len(s.questions)
	score := int(math.Round(float64(s.practice.correctCount) / float64(total) * 100))
	s.result = outcome{
		score:   score,
		passed:  score >= PassThreshold,
		correct: s.practice.correctCount,
		total:   total,
	}
	s.step = StepComplete
	s.practice = practiceState{}

	if s.result.passed {
		s.persist(func() error { return s.store.CompleteLevel(s.levelID) })
	} else {
		s.persist(func() error { return s.store.SetProgress(s.levelID, score) })
	}
	return nil
}

// Retry restarts a failed session at the Learning step, reusing the fetched
// words and questions. It is only valid from Complete when the session did
// not pass.
func (s *Session) Retry() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.step != StepComplete {
		return s.invalid("Retry")
	}
	if s.result.passed {
		return fmt.Errorf("%w: Retry after passing", ErrInvalidTransition)
	}

	s.step = StepLearning
	s.learning = learningState{}
	s.practice = practiceState{}
	s.result = outcome{}
	return nil
}

// Step returns the current step.
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// CurrentWord returns the word being learned. Only valid during Learning.
func (s *Session) CurrentWord() (models.LearningWord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepLearning {
		return models.LearningWord{}, s.invalid("CurrentWord")
	}
	return s.words[s.learning.wordIndex], nil
}

// CurrentQuestion returns the question being answered. Only valid during
// Practice.
func (s *Session) CurrentQuestion() (models.PracticeQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepPractice {
		return models.PracticeQuestion{}, s.invalid("CurrentQuestion")
	}
	return s.questions[s.practice.questionIndex], nil
}

// FinalScore returns the score percentage. Only valid once Complete.
func (s *Session) FinalScore() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepComplete {
		return 0, s.invalid("FinalScore")
	}
	return s.result.score, nil
}

// Passed reports whether the final score met the pass threshold. Only valid
// once Complete.
func (s *Session) Passed() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepComplete {
		return false, s.invalid("Passed")
	}
	return s.result.passed, nil
}

// LastActive returns when a transition or projection last touched the
// session. The registry uses it to expire abandoned sessions.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// invalid builds an ErrInvalidTransition annotated with the offending call
// and the current step. Callers hold s.mu.
func (s *Session) invalid(op string) error {
	return fmt.Errorf("%w: %s in step %s", ErrInvalidTransition, op, s.step)
}

// persist runs a progress-store write, logging failures instead of
// returning them. A broken store never blocks the learner.
func (s *Session) persist(write func() error) {
	if s.store == nil {
		return
	}
	if err := write(); err != nil {
		log.Warn().Err(err).Str("sessionId", s.id).Int("levelId", s.levelID).Msg("progress write failed")
	}
}

func (s *Session) touch() {
	s.lastActive = time.Now()
}
