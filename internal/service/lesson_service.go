package service

import (
	"context"
	"errors"
	"math/rand"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"wordpecker/internal/content"
	"wordpecker/internal/models"
	"wordpecker/internal/quiz"
	"wordpecker/internal/session"
)

// ErrLevelLocked is returned when a session is requested for a level the
// learner has not unlocked yet.
var ErrLevelLocked = errors.New("level is locked")

// LevelStore is the level persistence needed by services. It extends the
// session's progress store with catalogue listing.
type LevelStore interface {
	session.ProgressStore
	ListLevels() ([]models.LevelProgress, error)
}

// LessonService handles learning session business logic: fetching a word
// set, synthesizing the practice round and registering the session.
type LessonService struct {
	levels   LevelStore
	provider content.Provider
	fallback *content.Fallback
	synth    *quiz.Synthesizer
	sessions *session.Registry
}

// NewLessonService creates a new lesson service. A nil provider means all
// content comes from the offline generator. A nil rng gets a time-seeded
// source.
func NewLessonService(levels LevelStore, provider content.Provider, sessions *session.Registry, rng *rand.Rand) *LessonService {
	return &LessonService{
		levels:   levels,
		provider: provider,
		fallback: content.NewFallback(),
		synth:    quiz.NewSynthesizer(rng),
		sessions: sessions,
	}
}

// ListLevels returns the level catalogue with per-level progress.
func (s *LessonService) ListLevels() ([]models.LevelProgress, error) {
	return s.levels.ListLevels()
}

// GetLevel returns one level with its progress.
func (s *LessonService) GetLevel(levelID int) (models.LevelProgress, error) {
	return s.levels.GetLevel(levelID)
}

// StartSession creates a session for an unlocked level and registers it.
// The word set comes from the content provider when one is configured; any
// fetch failure falls back to the offline generator, so starting a session
// only fails on locked or unknown levels.
func (s *LessonService) StartSession(ctx context.Context, levelID int, sourceLang, targetLang string) (*session.Session, error) {
	lvl, err := s.levels.GetLevel(levelID)
	if err != nil {
		return nil, err
	}
	if !lvl.IsUnlocked {
		return nil, ErrLevelLocked
	}

	words := s.fetchWords(ctx, levelID, sourceLang, targetLang)
	questions := s.synth.Synthesize(words, sourceLang, targetLang)

	sess, err := session.New(uuid.NewString(), levelID, sourceLang, targetLang, words, questions, s.levels)
	if err != nil {
		return nil, err
	}
	s.sessions.Put(sess)

	log.Info().
		Str("sessionId", sess.ID()).
		Int("levelId", levelID).
		Str("target", targetLang).
		Int("words", len(words)).
		Int("questions", len(questions)).
		Msg("session started")
	return sess, nil
}

// GetSession looks up a live session by ID.
func (s *LessonService) GetSession(id string) (*session.Session, error) {
	return s.sessions.Get(id)
}

// EndSession drops a session from the registry. Unknown IDs are a no-op.
func (s *LessonService) EndSession(id string) {
	s.sessions.Delete(id)
}

// fetchWords asks the remote provider for the level's vocabulary and falls
// back to offline content when the provider is missing, fails, or returns
// an unusable set.
func (s *LessonService) fetchWords(ctx context.Context, levelID int, sourceLang, targetLang string) []models.LearningWord {
	if s.provider == nil {
		return s.fallback.Generate(levelID, sourceLang, targetLang)
	}

	words, err := s.provider.FetchLevelWords(ctx, levelID, sourceLang, targetLang)
	if err != nil {
		log.Warn().Err(err).Int("levelId", levelID).Msg("content fetch failed, using offline words")
		return s.fallback.Generate(levelID, sourceLang, targetLang)
	}

	usable := words[:0]
	for _, w := range words {
		if w.Original != "" && w.Translation != "" {
			usable = append(usable, w)
		}
	}
	if len(usable) == 0 {
		log.Warn().Int("levelId", levelID).Msg("content fetch returned no usable words, using offline words")
		return s.fallback.Generate(levelID, sourceLang, targetLang)
	}
	return usable
}
