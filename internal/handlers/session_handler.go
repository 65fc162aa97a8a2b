package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"wordpecker/internal/repository"
	"wordpecker/internal/service"
	"wordpecker/internal/session"
)

// SessionHandler handles learning session HTTP requests
type SessionHandler struct {
	lessons    *service.LessonService
	sourceLang string
	targetLang string
}

// NewSessionHandler creates a new session handler. The language pair is the
// default for sessions that do not specify one.
func NewSessionHandler(lessons *service.LessonService, sourceLang, targetLang string) *SessionHandler {
	return &SessionHandler{
		lessons:    lessons,
		sourceLang: sourceLang,
		targetLang: targetLang,
	}
}

// CreateSession starts a new learning session for a level
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	levelID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid level ID", nil)
		return
	}

	var req struct {
		SourceLanguage string `json:"sourceLanguage"`
		TargetLanguage string `json:"targetLanguage"`
	}
	if r.Body != nil {
		// An empty body means default languages.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if req.SourceLanguage == "" {
		req.SourceLanguage = h.sourceLang
	}
	if req.TargetLanguage == "" {
		req.TargetLanguage = h.targetLang
	}

	sess, err := h.lessons.StartSession(r.Context(), levelID, req.SourceLanguage, req.TargetLanguage)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrLevelNotFound):
			respondWithError(w, http.StatusNotFound, "Level not found", nil)
		case errors.Is(err, service.ErrLevelLocked):
			respondWithError(w, http.StatusForbidden, "Level is locked", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to start session", err)
		}
		return
	}
	respondWithJSON(w, http.StatusCreated, sess.Snapshot())
}

// GetSession returns the current state of a session
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, sess.Snapshot())
}

// DeleteSession abandons a session
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	h.lessons.EndSession(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// Start moves a session from intro to learning
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(s *session.Session) error { return s.Start() })
}

// Reveal shows the current word's translation
func (h *SessionHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(s *session.Session) error { return s.RevealTranslation() })
}

// AdvanceWord moves to the next word or into practice
func (h *SessionHandler) AdvanceWord(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(s *session.Session) error { return s.AdvanceWord() })
}

// SelectAnswer records an answer for the current question
func (h *SessionHandler) SelectAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	h.transition(w, r, func(s *session.Session) error { return s.SelectAnswer(req.Answer) })
}

// CheckAnswer grades the selected answer
func (h *SessionHandler) CheckAnswer(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(s *session.Session) error { return s.CheckAnswer() })
}

// AdvanceQuestion moves to the next question or completes the session
func (h *SessionHandler) AdvanceQuestion(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(s *session.Session) error { return s.AdvanceQuestion() })
}

// Retry restarts a failed session
func (h *SessionHandler) Retry(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(s *session.Session) error { return s.Retry() })
}

// transition applies one state machine call and responds with the updated
// session view.
func (h *SessionHandler) transition(w http.ResponseWriter, r *http.Request, fn func(*session.Session) error) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := fn(sess); err != nil {
		switch {
		case errors.Is(err, session.ErrInvalidTransition):
			respondWithError(w, http.StatusConflict, err.Error(), nil)
		case errors.Is(err, session.ErrNoAnswerSelected):
			respondWithError(w, http.StatusBadRequest, "No answer selected", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, "Session update failed", err)
		}
		return
	}
	respondWithJSON(w, http.StatusOK, sess.Snapshot())
}

func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := h.lessons.GetSession(r.PathValue("id"))
	if errors.Is(err, session.ErrNotFound) {
		respondWithError(w, http.StatusNotFound, "Session not found", nil)
		return nil, false
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load session", err)
		return nil, false
	}
	return sess, true
}
