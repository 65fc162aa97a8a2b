package content

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// geminiReply wraps text in the generateContent response envelope.
func geminiReply(t *testing.T, text string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]string{{"text": text}},
			}},
		},
	})
	if err != nil {
		t.Fatalf("marshal reply: %v", err)
	}
	return body
}

func newTestGemini(srv *httptest.Server) *Gemini {
	return NewGemini(GeminiConfig{
		APIKey:     "test-key",
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
	})
}

func TestFetchLevelWords(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		text := "Here you go:\n```json\n" + `{"words":[{"original":"hello","translation":"hola","pronunciation":"OH-lah","examples":["¡Hola!","Hello!"]}]}` + "\n```"
		w.Write(geminiReply(t, text))
	}))
	defer srv.Close()

	g := newTestGemini(srv)
	words, err := g.FetchLevelWords(context.Background(), 1, "en", "es")
	if err != nil {
		t.Fatalf("FetchLevelWords: %v", err)
	}
	if gotPath != "/gemini-2.0-flash:generateContent" {
		t.Errorf("request path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("request key = %q", gotKey)
	}
	if len(words) != 1 {
		t.Fatalf("got %d words, want 1", len(words))
	}
	if words[0].Original != "hello" || words[0].Translation != "hola" {
		t.Errorf("word = %+v", words[0])
	}
}

func TestFetchLevelWordsEmptySet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(geminiReply(t, `{"words":[]}`))
	}))
	defer srv.Close()

	g := newTestGemini(srv)
	_, err := g.FetchLevelWords(context.Background(), 1, "en", "es")
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("got %v, want *FetchError", err)
	}
}

func TestFetchLevelWordsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "API key not valid"},
		})
	}))
	defer srv.Close()

	g := newTestGemini(srv)
	_, err := g.FetchLevelWords(context.Background(), 1, "en", "es")
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("got %v, want *FetchError", err)
	}
}

func TestFetchLevelWordsMalformedAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(geminiReply(t, "I'm sorry, I can't produce JSON today."))
	}))
	defer srv.Close()

	g := newTestGemini(srv)
	if _, err := g.FetchLevelWords(context.Background(), 1, "en", "es"); err == nil {
		t.Fatal("expected error for answer with no JSON object")
	}
}

func TestFetchLevelWordsContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.Write(geminiReply(t, `{"words":[]}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	g := newTestGemini(srv)
	if _, err := g.FetchLevelWords(ctx, 1, "en", "es"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestFetchTranslation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(geminiReply(t, `{"translation":"gato","pronunciation":"GAH-toh","examples":["El gato duerme.","The cat sleeps."]}`))
	}))
	defer srv.Close()

	g := newTestGemini(srv)
	word, err := g.FetchTranslation(context.Background(), "cat", "en", "es")
	if err != nil {
		t.Fatalf("FetchTranslation: %v", err)
	}
	if word.Original != "cat" || word.Translation != "gato" {
		t.Errorf("word = %+v", word)
	}
	if len(word.Examples) != 2 {
		t.Errorf("got %d examples, want 2", len(word.Examples))
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, true},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`, true},
		{"prose around", `Sure! {"a":1} Hope that helps.`, `{"a":1}`, true},
		{"no object", "no json here", "", false},
		{"only open brace", "oops {", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSONObject(tt.text)
			if ok != tt.ok || got != tt.want {
				t.Errorf("extractJSONObject(%q) = %q, %v; want %q, %v", tt.text, got, ok, tt.want, tt.ok)
			}
		})
	}
}
