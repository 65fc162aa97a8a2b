package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"wordpecker/internal/excel"
	"wordpecker/internal/repository"
	"wordpecker/internal/service"
)

// maxImportSize caps uploaded workbook size at 5MB.
const maxImportSize = 5 << 20

// ListHandler handles word list HTTP requests
type ListHandler struct {
	lists *service.ListService
}

// NewListHandler creates a new list handler
func NewListHandler(lists *service.ListService) *ListHandler {
	return &ListHandler{lists: lists}
}

// ShowLists returns all word lists
func (h *ListHandler) ShowLists(w http.ResponseWriter, r *http.Request) {
	lists, err := h.lists.GetLists()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load lists", err)
		return
	}
	respondWithJSON(w, http.StatusOK, lists)
}

// CreateList creates a new word list
func (h *ListHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title          string `json:"title"`
		Description    string `json:"description"`
		SourceLanguage string `json:"sourceLanguage"`
		TargetLanguage string `json:"targetLanguage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	list, err := h.lists.CreateList(req.Title, req.Description, req.SourceLanguage, req.TargetLanguage)
	if errors.Is(err, service.ErrTitleRequired) {
		respondWithError(w, http.StatusBadRequest, "List title is required", nil)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create list", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, list)
}

// ViewList returns a list with its words and progress
func (h *ListHandler) ViewList(w http.ResponseWriter, r *http.Request) {
	listID, ok := h.listID(w, r)
	if !ok {
		return
	}

	list, err := h.lists.GetListWithWords(listID)
	if errors.Is(err, repository.ErrListNotFound) {
		respondWithError(w, http.StatusNotFound, "List not found", nil)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load list", err)
		return
	}
	respondWithJSON(w, http.StatusOK, list)
}

// UpdateList updates a list's title and description
func (h *ListHandler) UpdateList(w http.ResponseWriter, r *http.Request) {
	listID, ok := h.listID(w, r)
	if !ok {
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	err := h.lists.UpdateList(listID, req.Title, req.Description)
	switch {
	case errors.Is(err, service.ErrTitleRequired):
		respondWithError(w, http.StatusBadRequest, "List title is required", nil)
	case errors.Is(err, repository.ErrListNotFound):
		respondWithError(w, http.StatusNotFound, "List not found", nil)
	case err != nil:
		respondWithError(w, http.StatusInternalServerError, "Failed to update list", err)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// DeleteList removes a list and its words
func (h *ListHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	listID, ok := h.listID(w, r)
	if !ok {
		return
	}

	err := h.lists.DeleteList(listID)
	if errors.Is(err, repository.ErrListNotFound) {
		respondWithError(w, http.StatusNotFound, "List not found", nil)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to delete list", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddWord adds a word to a list, translating it when needed
func (h *ListHandler) AddWord(w http.ResponseWriter, r *http.Request) {
	listID, ok := h.listID(w, r)
	if !ok {
		return
	}

	var req struct {
		Term        string `json:"term"`
		Translation string `json:"translation"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	word, err := h.lists.AddWord(r.Context(), listID, req.Term, req.Translation)
	switch {
	case errors.Is(err, service.ErrTermRequired):
		respondWithError(w, http.StatusBadRequest, "Word term is required", nil)
	case errors.Is(err, repository.ErrListNotFound):
		respondWithError(w, http.StatusNotFound, "List not found", nil)
	case err != nil:
		respondWithError(w, http.StatusInternalServerError, "Failed to add word", err)
	default:
		respondWithJSON(w, http.StatusCreated, word)
	}
}

// ImportWords bulk-adds words from an uploaded xlsx workbook
func (h *ListHandler) ImportWords(w http.ResponseWriter, r *http.Request) {
	listID, ok := h.listID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid upload", nil)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing file field", nil)
		return
	}
	defer file.Close()

	words, err := excel.ParseWords(file)
	if errors.Is(err, excel.ErrNoWords) {
		respondWithError(w, http.StatusBadRequest, "Workbook contains no words", nil)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Failed to parse workbook", err)
		return
	}

	imported, err := h.lists.ImportWords(r.Context(), listID, words)
	if errors.Is(err, repository.ErrListNotFound) {
		respondWithError(w, http.StatusNotFound, "List not found", nil)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to import words", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]int{"imported": imported})
}

// MarkWordLearned flips the learned flag on a word
func (h *ListHandler) MarkWordLearned(w http.ResponseWriter, r *http.Request) {
	wordID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid word ID", nil)
		return
	}

	var req struct {
		Learned bool `json:"learned"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	err = h.lists.MarkWordLearned(wordID, req.Learned)
	if errors.Is(err, repository.ErrWordNotFound) {
		respondWithError(w, http.StatusNotFound, "Word not found", nil)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to update word", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteWord removes a word from its list
func (h *ListHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	wordID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid word ID", nil)
		return
	}

	err = h.lists.DeleteWord(wordID)
	if errors.Is(err, repository.ErrWordNotFound) {
		respondWithError(w, http.StatusNotFound, "Word not found", nil)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to delete word", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ListHandler) listID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	listID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid list ID", nil)
		return 0, false
	}
	return listID, true
}
