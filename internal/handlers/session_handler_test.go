package handlers

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wordpecker/internal/models"
	"wordpecker/internal/repository"
	"wordpecker/internal/service"
	"wordpecker/internal/session"
)

type fakeLevelStore struct {
	levels map[int]models.LevelProgress
}

func newFakeLevelStore() *fakeLevelStore {
	return &fakeLevelStore{levels: map[int]models.LevelProgress{
		1: {LevelID: 1, Title: "Basics", IsUnlocked: true},
		2: {LevelID: 2, Title: "Greetings"},
	}}
}

func (f *fakeLevelStore) GetLevel(levelID int) (models.LevelProgress, error) {
	lvl, ok := f.levels[levelID]
	if !ok {
		return models.LevelProgress{}, repository.ErrLevelNotFound
	}
	return lvl, nil
}

func (f *fakeLevelStore) ListLevels() ([]models.LevelProgress, error) {
	return []models.LevelProgress{f.levels[1], f.levels[2]}, nil
}

func (f *fakeLevelStore) SetProgress(levelID, progress int) error {
	lvl := f.levels[levelID]
	lvl.Progress = progress
	f.levels[levelID] = lvl
	return nil
}

func (f *fakeLevelStore) CompleteLevel(levelID int) error {
	lvl := f.levels[levelID]
	lvl.IsCompleted = true
	lvl.Progress = 100
	f.levels[levelID] = lvl
	return nil
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeLevelStore) {
	t.Helper()

	store := newFakeLevelStore()
	lessons := service.NewLessonService(store, nil, session.NewRegistry(time.Hour), rand.New(rand.NewSource(1)))

	mux := http.NewServeMux()
	RegisterRoutes(mux,
		NewLevelHandler(lessons),
		NewSessionHandler(lessons, "en", "es"),
		NewListHandler(service.NewListService(nil, nil)),
	)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, store
}

func do(t *testing.T, method, url string, body interface{}) (*http.Response, session.View) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var view session.View
	if resp.StatusCode < 300 && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
			t.Fatalf("decode %s %s response: %v", method, url, err)
		}
	}
	return resp, view
}

func TestLevelEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/levels")
	if err != nil {
		t.Fatalf("GET /api/levels: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var levels []models.LevelProgress
	if err := json.NewDecoder(resp.Body).Decode(&levels); err != nil {
		t.Fatalf("decode levels: %v", err)
	}
	if len(levels) != 2 {
		t.Errorf("got %d levels, want 2", len(levels))
	}

	resp2, _ := do(t, http.MethodGet, srv.URL+"/api/levels/42", nil)
	if resp2.StatusCode != http.StatusNotFound {
		t.Errorf("unknown level status = %d, want 404", resp2.StatusCode)
	}
}

func TestCreateSessionErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, _ := do(t, http.MethodPost, srv.URL+"/api/levels/2/session", nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("locked level status = %d, want 403", resp.StatusCode)
	}

	resp, _ = do(t, http.MethodPost, srv.URL+"/api/levels/42/session", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown level status = %d, want 404", resp.StatusCode)
	}

	resp, _ = do(t, http.MethodGet, srv.URL+"/api/sessions/no-such-id", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown session status = %d, want 404", resp.StatusCode)
	}
}

func TestSessionFlowOverHTTP(t *testing.T) {
	srv, store := newTestServer(t)

	resp, view := do(t, http.MethodPost, srv.URL+"/api/levels/1/session", nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create session status = %d, want 201", resp.StatusCode)
	}
	if view.Step != session.StepIntro || view.WordCount != 10 {
		t.Fatalf("new session view = %+v", view)
	}
	base := srv.URL + "/api/sessions/" + view.ID

	// Advancing before starting is rejected.
	resp, _ = do(t, http.MethodPost, base+"/advance", nil)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("advance in intro status = %d, want 409", resp.StatusCode)
	}

	resp, view = do(t, http.MethodPost, base+"/start", nil)
	if resp.StatusCode != http.StatusOK || view.Step != session.StepLearning {
		t.Fatalf("start: status %d, step %q", resp.StatusCode, view.Step)
	}
	if view.Word == nil || view.Word.Translation != "" {
		t.Errorf("unstarted word view should hide the translation: %+v", view.Word)
	}

	// Learn all ten words.
	for view.Step == session.StepLearning {
		resp, view = do(t, http.MethodPost, base+"/reveal", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("reveal status = %d", resp.StatusCode)
		}
		if view.Word.Translation == "" {
			t.Error("revealed word view should include the translation")
		}
		resp, view = do(t, http.MethodPost, base+"/advance", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("advance status = %d", resp.StatusCode)
		}
	}
	if view.Step != session.StepPractice {
		t.Fatalf("step after learning = %q, want practice", view.Step)
	}
	if store.levels[1].Progress != 50 {
		t.Errorf("checkpoint progress = %d, want 50", store.levels[1].Progress)
	}
	if view.Question == nil || view.Question.CorrectAnswer != "" {
		t.Errorf("unchecked question view should hide the correct answer: %+v", view.Question)
	}

	// Checking with no selection is rejected.
	resp, _ = do(t, http.MethodPost, base+"/check", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("check without answer status = %d, want 400", resp.StatusCode)
	}

	// Answer every question wrong.
	for view.Step == session.StepPractice {
		resp, _ = do(t, http.MethodPost, base+"/answer", map[string]string{"answer": "definitely wrong"})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("answer status = %d", resp.StatusCode)
		}
		resp, view = do(t, http.MethodPost, base+"/check", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("check status = %d", resp.StatusCode)
		}
		if view.WasCorrect == nil || *view.WasCorrect {
			t.Error("wrong answer should be reported incorrect")
		}
		if view.Question.CorrectAnswer == "" {
			t.Error("checked question view should expose the correct answer")
		}
		resp, view = do(t, http.MethodPost, base+"/next", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("next status = %d", resp.StatusCode)
		}
	}

	if view.Step != session.StepComplete {
		t.Fatalf("step after practice = %q, want complete", view.Step)
	}
	if view.Score == nil || *view.Score != 0 {
		t.Errorf("score = %v, want 0", view.Score)
	}
	if view.Passed == nil || *view.Passed {
		t.Error("all-wrong round should not pass")
	}
	if store.levels[1].IsCompleted {
		t.Error("failing should not complete the level")
	}

	// Failed sessions can be retried from the top.
	resp, view = do(t, http.MethodPost, base+"/retry", nil)
	if resp.StatusCode != http.StatusOK || view.Step != session.StepLearning {
		t.Fatalf("retry: status %d, step %q", resp.StatusCode, view.Step)
	}

	// Abandon the session.
	resp, _ = do(t, http.MethodDelete, base, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", resp.StatusCode)
	}
	resp, _ = do(t, http.MethodGet, base, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", resp.StatusCode)
	}
}

func TestSelectAnswerBadBody(t *testing.T) {
	srv, _ := newTestServer(t)

	_, view := do(t, http.MethodPost, srv.URL+"/api/levels/1/session", nil)
	base := srv.URL + "/api/sessions/" + view.ID

	req, err := http.NewRequest(http.MethodPost, base+"/answer", bytes.NewBufferString("not json"))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST answer: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestErrorResponsesAreJSON(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/sessions/missing")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["error"] == "" {
		t.Errorf("error body = %v, want an error field", body)
	}
	if got := resp.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
}
