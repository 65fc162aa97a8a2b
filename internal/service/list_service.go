package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"wordpecker/internal/content"
	"wordpecker/internal/excel"
	"wordpecker/internal/models"
	"wordpecker/internal/repository"
)

var (
	// ErrTitleRequired is returned when a list is created without a title.
	ErrTitleRequired = errors.New("list title is required")

	// ErrTermRequired is returned when a word is added without a term.
	ErrTermRequired = errors.New("word term is required")
)

// ListService handles custom word list business logic
type ListService struct {
	lists    *repository.ListRepository
	provider content.Provider
	fallback *content.Fallback
}

// NewListService creates a new list service. A nil provider means added
// words are translated by the offline generator.
func NewListService(lists *repository.ListRepository, provider content.Provider) *ListService {
	return &ListService{
		lists:    lists,
		provider: provider,
		fallback: content.NewFallback(),
	}
}

// CreateList creates a new word list
func (s *ListService) CreateList(title, description, sourceLang, targetLang string) (*models.WordList, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if sourceLang == "" {
		sourceLang = "en"
	}
	if targetLang == "" {
		targetLang = "es"
	}
	return s.lists.CreateList(title, strings.TrimSpace(description), sourceLang, targetLang)
}

// GetLists returns all word lists
func (s *ListService) GetLists() ([]models.WordList, error) {
	return s.lists.GetLists()
}

// GetListWithWords returns a list with its words and learned percentage
func (s *ListService) GetListWithWords(listID int64) (*models.ListWithWords, error) {
	list, err := s.lists.GetList(listID)
	if err != nil {
		return nil, err
	}
	words, err := s.lists.GetListWords(listID)
	if err != nil {
		return nil, err
	}

	learned := 0
	for _, w := range words {
		if w.Learned {
			learned++
		}
	}
	progress := 0.0
	if len(words) > 0 {
		progress = float64(learned) / float64(len(words)) * 100
	}

	return &models.ListWithWords{
		List:     *list,
		Words:    words,
		Progress: progress,
	}, nil
}

// UpdateList updates a list's title and description
func (s *ListService) UpdateList(listID int64, title, description string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrTitleRequired
	}
	return s.lists.UpdateList(listID, title, strings.TrimSpace(description))
}

// DeleteList removes a list and its words
func (s *ListService) DeleteList(listID int64) error {
	return s.lists.DeleteList(listID)
}

// AddWord adds a word to a list. When no translation is supplied, one is
// fetched from the content provider, falling back to offline translation on
// failure.
func (s *ListService) AddWord(ctx context.Context, listID int64, term, translation string) (*models.ListWord, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrTermRequired
	}

	list, err := s.lists.GetList(listID)
	if err != nil {
		return nil, err
	}

	translation = strings.TrimSpace(translation)
	pronunciation := ""
	example := ""
	if translation == "" {
		word := s.translate(ctx, term, list.SourceLanguage, list.TargetLanguage)
		translation = word.Translation
		pronunciation = word.Pronunciation
		if len(word.Examples) > 0 {
			example = word.Examples[0]
		}
	}

	return s.lists.AddWord(listID, term, translation, pronunciation, example)
}

// ImportWords adds every word of an uploaded workbook to a list and returns
// the number imported. Rows without a translation are translated like
// AddWord.
func (s *ListService) ImportWords(ctx context.Context, listID int64, words []excel.ImportedWord) (int, error) {
	list, err := s.lists.GetList(listID)
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, w := range words {
		translation := w.Translation
		pronunciation := w.Pronunciation
		example := w.Example
		if translation == "" {
			word := s.translate(ctx, w.Term, list.SourceLanguage, list.TargetLanguage)
			translation = word.Translation
			if pronunciation == "" {
				pronunciation = word.Pronunciation
			}
			if example == "" && len(word.Examples) > 0 {
				example = word.Examples[0]
			}
		}
		if _, err := s.lists.AddWord(listID, w.Term, translation, pronunciation, example); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

// MarkWordLearned flips the learned flag on a word
func (s *ListService) MarkWordLearned(wordID int64, learned bool) error {
	return s.lists.MarkWordLearned(wordID, learned)
}

// DeleteWord removes a word from its list
func (s *ListService) DeleteWord(wordID int64) error {
	return s.lists.DeleteWord(wordID)
}

// translate fetches learning material for one word, falling back to the
// offline generator when the provider is missing or fails.
func (s *ListService) translate(ctx context.Context, term, sourceLang, targetLang string) models.LearningWord {
	if s.provider == nil {
		return s.fallback.Translate(term, sourceLang, targetLang)
	}
	word, err := s.provider.FetchTranslation(ctx, term, sourceLang, targetLang)
	if err != nil {
		log.Warn().Err(err).Str("term", term).Msg("translation fetch failed, using offline translation")
		return s.fallback.Translate(term, sourceLang, targetLang)
	}
	return word
}
