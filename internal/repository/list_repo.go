package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wordpecker/internal/database"
	"wordpecker/internal/models"
)

var (
	// ErrListNotFound is returned when a word list ID has no row behind it.
	ErrListNotFound = errors.New("word list not found")

	// ErrWordNotFound is returned when a list word ID has no row behind it.
	ErrWordNotFound = errors.New("list word not found")
)

// ListRepository handles database operations for custom word lists
type ListRepository struct {
	db *database.DB
}

// NewListRepository creates a new list repository
func NewListRepository(db *database.DB) *ListRepository {
	return &ListRepository{db: db}
}

// CreateList creates a new word list
func (r *ListRepository) CreateList(title, description, sourceLang, targetLang string) (*models.WordList, error) {
	query := "INSERT INTO word_lists (title, description, source_language, target_language) VALUES (?, ?, ?, ?)"
	listID, err := r.db.ExecReturningID(query, title, description, sourceLang, targetLang)
	if err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}

	return &models.WordList{
		ID:             listID,
		Title:          title,
		Description:    description,
		SourceLanguage: sourceLang,
		TargetLanguage: targetLang,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}, nil
}

// GetList retrieves a word list by ID
func (r *ListRepository) GetList(listID int64) (*models.WordList, error) {
	query := `
		SELECT id, title, description, source_language, target_language, created_at, updated_at
		FROM word_lists
		WHERE id = ?
	`
	list := &models.WordList{}
	err := r.db.QueryRow(query, listID).Scan(
		&list.ID,
		&list.Title,
		&list.Description,
		&list.SourceLanguage,
		&list.TargetLanguage,
		&list.CreatedAt,
		&list.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrListNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get list: %w", err)
	}
	return list, nil
}

// GetLists retrieves all word lists, newest first
func (r *ListRepository) GetLists() ([]models.WordList, error) {
	query := `
		SELECT id, title, description, source_language, target_language, created_at, updated_at
		FROM word_lists
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query lists: %w", err)
	}
	defer rows.Close()

	var lists []models.WordList
	for rows.Next() {
		var list models.WordList
		if err := rows.Scan(
			&list.ID,
			&list.Title,
			&list.Description,
			&list.SourceLanguage,
			&list.TargetLanguage,
			&list.CreatedAt,
			&list.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		lists = append(lists, list)
	}
	return lists, rows.Err()
}

// UpdateList updates a list's title and description
func (r *ListRepository) UpdateList(listID int64, title, description string) error {
	query := "UPDATE word_lists SET title = ?, description = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	result, err := r.db.Exec(query, title, description, listID)
	if err != nil {
		return fmt.Errorf("failed to update list: %w", err)
	}
	return checkAffected(result, ErrListNotFound)
}

// DeleteList removes a list and, through the foreign key cascade, its words
func (r *ListRepository) DeleteList(listID int64) error {
	result, err := r.db.Exec("DELETE FROM word_lists WHERE id = ?", listID)
	if err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}
	return checkAffected(result, ErrListNotFound)
}

// AddWord appends a word to a list
func (r *ListRepository) AddWord(listID int64, term, translation, pronunciation, example string) (*models.ListWord, error) {
	if _, err := r.GetList(listID); err != nil {
		return nil, err
	}

	query := "INSERT INTO list_words (list_id, term, translation, pronunciation, example) VALUES (?, ?, ?, ?, ?)"
	wordID, err := r.db.ExecReturningID(query, listID, term, translation, pronunciation, example)
	if err != nil {
		return nil, fmt.Errorf("failed to add word: %w", err)
	}

	return &models.ListWord{
		ID:            wordID,
		ListID:        listID,
		Term:          term,
		Translation:   translation,
		Pronunciation: pronunciation,
		Example:       example,
		CreatedAt:     time.Now(),
	}, nil
}

// GetListWords retrieves all words of a list in insertion order
func (r *ListRepository) GetListWords(listID int64) ([]models.ListWord, error) {
	query := `
		SELECT id, list_id, term, translation, pronunciation, example, learned, created_at
		FROM list_words
		WHERE list_id = ?
		ORDER BY id ASC
	`
	rows, err := r.db.Query(query, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close()

	var words []models.ListWord
	for rows.Next() {
		var word models.ListWord
		if err := rows.Scan(
			&word.ID,
			&word.ListID,
			&word.Term,
			&word.Translation,
			&word.Pronunciation,
			&word.Example,
			&word.Learned,
			&word.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, word)
	}
	return words, rows.Err()
}

// MarkWordLearned flips the learned flag on a word
func (r *ListRepository) MarkWordLearned(wordID int64, learned bool) error {
	result, err := r.db.Exec("UPDATE list_words SET learned = ? WHERE id = ?", learned, wordID)
	if err != nil {
		return fmt.Errorf("failed to mark word: %w", err)
	}
	return checkAffected(result, ErrWordNotFound)
}

// DeleteWord removes a word from its list
func (r *ListRepository) DeleteWord(wordID int64) error {
	result, err := r.db.Exec("DELETE FROM list_words WHERE id = ?", wordID)
	if err != nil {
		return fmt.Errorf("failed to delete word: %w", err)
	}
	return checkAffected(result, ErrWordNotFound)
}

// checkAffected converts a zero-row update into notFound.
func checkAffected(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
