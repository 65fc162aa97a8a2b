package handlers

import "net/http"

// RegisterRoutes attaches all API routes to the mux.
func RegisterRoutes(mux *http.ServeMux, levels *LevelHandler, sessions *SessionHandler, lists *ListHandler) {
	// Level catalogue
	mux.HandleFunc("GET /api/levels", levels.ListLevels)
	mux.HandleFunc("GET /api/levels/{id}", levels.GetLevel)

	// Learning sessions
	mux.HandleFunc("POST /api/levels/{id}/session", sessions.CreateSession)
	mux.HandleFunc("GET /api/sessions/{id}", sessions.GetSession)
	mux.HandleFunc("DELETE /api/sessions/{id}", sessions.DeleteSession)
	mux.HandleFunc("POST /api/sessions/{id}/start", sessions.Start)
	mux.HandleFunc("POST /api/sessions/{id}/reveal", sessions.Reveal)
	mux.HandleFunc("POST /api/sessions/{id}/advance", sessions.AdvanceWord)
	mux.HandleFunc("POST /api/sessions/{id}/answer", sessions.SelectAnswer)
	mux.HandleFunc("POST /api/sessions/{id}/check", sessions.CheckAnswer)
	mux.HandleFunc("POST /api/sessions/{id}/next", sessions.AdvanceQuestion)
	mux.HandleFunc("POST /api/sessions/{id}/retry", sessions.Retry)

	// Word lists
	mux.HandleFunc("GET /api/lists", lists.ShowLists)
	mux.HandleFunc("POST /api/lists", lists.CreateList)
	mux.HandleFunc("GET /api/lists/{id}", lists.ViewList)
	mux.HandleFunc("PUT /api/lists/{id}", lists.UpdateList)
	mux.HandleFunc("DELETE /api/lists/{id}", lists.DeleteList)
	mux.HandleFunc("POST /api/lists/{id}/words", lists.AddWord)
	mux.HandleFunc("POST /api/lists/{id}/import", lists.ImportWords)
	mux.HandleFunc("POST /api/words/{id}/learned", lists.MarkWordLearned)
	mux.HandleFunc("DELETE /api/words/{id}", lists.DeleteWord)
}
