package content

import (
	"context"
	"fmt"

	"wordpecker/internal/models"
)

// Provider supplies learning material from a remote generative service.
// Implementations may fail with *FetchError; callers are expected to fall
// back to the offline generator rather than surface the failure.
type Provider interface {
	// FetchLevelWords returns the vocabulary set for a level and language pair.
	FetchLevelWords(ctx context.Context, levelID int, sourceLang, targetLang string) ([]models.LearningWord, error)

	// FetchTranslation returns learning material for a single word.
	FetchTranslation(ctx context.Context, word, sourceLang, targetLang string) (models.LearningWord, error)
}

// FetchError reports a failed content fetch: the remote service was
// unreachable or returned data that could not be parsed.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("content fetch %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
