package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"wordpecker/internal/repository"
	"wordpecker/internal/service"
)

// LevelHandler handles level catalogue HTTP requests
type LevelHandler struct {
	lessons *service.LessonService
}

// NewLevelHandler creates a new level handler
func NewLevelHandler(lessons *service.LessonService) *LevelHandler {
	return &LevelHandler{lessons: lessons}
}

// ListLevels returns the level catalogue with per-level progress
func (h *LevelHandler) ListLevels(w http.ResponseWriter, r *http.Request) {
	levels, err := h.lessons.ListLevels()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load levels", err)
		return
	}
	respondWithJSON(w, http.StatusOK, levels)
}

// GetLevel returns one level with its progress
func (h *LevelHandler) GetLevel(w http.ResponseWriter, r *http.Request) {
	levelID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid level ID", nil)
		return
	}

	lvl, err := h.lessons.GetLevel(levelID)
	if errors.Is(err, repository.ErrLevelNotFound) {
		respondWithError(w, http.StatusNotFound, "Level not found", nil)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load level", err)
		return
	}
	respondWithJSON(w, http.StatusOK, lvl)
}
