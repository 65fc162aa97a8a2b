package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"wordpecker/internal/database"
	"wordpecker/internal/models"
)

// ErrLevelNotFound is returned when a level ID has no row behind it.
var ErrLevelNotFound = errors.New("level not found")

// defaultLevel describes one entry of the seeded curriculum.
type defaultLevel struct {
	id          int
	title       string
	description string
}

// defaultLevels is the curriculum seeded on first start. Level 1 starts
// unlocked; every later level is unlocked by completing its predecessor.
var defaultLevels = []defaultLevel{
	{1, "Basics", "Essential words for beginners"},
	{2, "Greetings", "Common greetings and phrases"},
	{3, "Food & Drinks", "Vocabulary for dining"},
	{4, "Travel", "Words for your journeys"},
	{5, "Daily Life", "Everyday vocabulary"},
}

// LevelRepository handles database operations for the level catalogue and
// per-level progress
type LevelRepository struct {
	db *database.DB
}

// NewLevelRepository creates a new level repository
func NewLevelRepository(db *database.DB) *LevelRepository {
	return &LevelRepository{db: db}
}

// SeedDefaultLevels inserts the default curriculum if the levels table is
// empty. Running it against a populated table is a no-op, so existing
// progress is never reset.
func (r *LevelRepository) SeedDefaultLevels() error {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM levels").Scan(&count); err != nil {
		return fmt.Errorf("failed to count levels: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	query := "INSERT INTO levels (id, title, description, word_count, is_unlocked) VALUES (?, ?, ?, ?, ?)"
	for _, lvl := range defaultLevels {
		unlocked := lvl.id == 1
		if _, err := tx.Exec(query, lvl.id, lvl.title, lvl.description, 10, unlocked); err != nil {
			return fmt.Errorf("failed to seed level %d: %w", lvl.id, err)
		}
	}

	return tx.Commit()
}

// GetLevel retrieves a level by ID
func (r *LevelRepository) GetLevel(levelID int) (models.LevelProgress, error) {
	query := `
		SELECT id, title, description, word_count, is_unlocked, is_completed, progress
		FROM levels
		WHERE id = ?
	`
	var lvl models.LevelProgress
	err := r.db.QueryRow(query, levelID).Scan(
		&lvl.LevelID,
		&lvl.Title,
		&lvl.Description,
		&lvl.WordCount,
		&lvl.IsUnlocked,
		&lvl.IsCompleted,
		&lvl.Progress,
	)
	if err == sql.ErrNoRows {
		return models.LevelProgress{}, ErrLevelNotFound
	}
	if err != nil {
		return models.LevelProgress{}, fmt.Errorf("failed to get level: %w", err)
	}
	return lvl, nil
}

// ListLevels retrieves the whole catalogue in curriculum order
func (r *LevelRepository) ListLevels() ([]models.LevelProgress, error) {
	query := `
		SELECT id, title, description, word_count, is_unlocked, is_completed, progress
		FROM levels
		ORDER BY id ASC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query levels: %w", err)
	}
	defer rows.Close()

	var levels []models.LevelProgress
	for rows.Next() {
		var lvl models.LevelProgress
		if err := rows.Scan(
			&lvl.LevelID,
			&lvl.Title,
			&lvl.Description,
			&lvl.WordCount,
			&lvl.IsUnlocked,
			&lvl.IsCompleted,
			&lvl.Progress,
		); err != nil {
			return nil, fmt.Errorf("failed to scan level: %w", err)
		}
		levels = append(levels, lvl)
	}
	return levels, rows.Err()
}

// SetProgress stores a progress percentage for a level. Values are clamped
// to 0-100. Completed levels are left untouched, so replaying a finished
// level never winds its progress back from 100.
func (r *LevelRepository) SetProgress(levelID, progress int) error {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	query := "UPDATE levels SET progress = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND is_completed = ?"
	result, err := r.db.Exec(query, progress, levelID, false)
	if err != nil {
		return fmt.Errorf("failed to set progress: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check progress update: %w", err)
	}
	if affected == 0 {
		// Either the level does not exist or it is already completed.
		if _, err := r.GetLevel(levelID); err != nil {
			return err
		}
	}
	return nil
}

// CompleteLevel marks a level completed with full progress and unlocks the
// next level in the same transaction. Completing the last level is fine;
// the unlock just matches no row.
func (r *LevelRepository) CompleteLevel(levelID int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin completion transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		"UPDATE levels SET is_completed = ?, progress = 100, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		true, levelID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete level: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check level completion: %w", err)
	}
	if affected == 0 {
		return ErrLevelNotFound
	}

	_, err = tx.Exec(
		"UPDATE levels SET is_unlocked = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		true, levelID+1,
	)
	if err != nil {
		return fmt.Errorf("failed to unlock next level: %w", err)
	}

	return tx.Commit()
}
