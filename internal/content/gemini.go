package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"wordpecker/internal/models"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultGeminiModel   = "gemini-2.0-flash"
)

// GeminiConfig configures the Gemini content client. Zero values for Model,
// BaseURL and HTTPClient are replaced with defaults.
type GeminiConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// Gemini fetches learning material from the Google Gemini generateContent
// API. The model is asked to answer with a JSON object, which is extracted
// from the response text and unmarshalled.
type Gemini struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGemini creates a Gemini content provider.
func NewGemini(cfg GeminiConfig) *Gemini {
	if cfg.Model == "" {
		cfg.Model = defaultGeminiModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultGeminiBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Gemini{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
		client:  cfg.HTTPClient,
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// FetchLevelWords asks the model for the vocabulary set of one level.
func (g *Gemini) FetchLevelWords(ctx context.Context, levelID int, sourceLang, targetLang string) ([]models.LearningWord, error) {
	prompt := fmt.Sprintf(`Generate %d %s vocabulary words for level %d language learners.
Topic: %s
Source language: %s

Return a JSON object with this structure:
{
  "words": [
    {
      "original": "word in %s",
      "translation": "word in %s",
      "pronunciation": "pronunciation guide if applicable",
      "examples": ["example sentence in %s", "translation in %s"]
    }
  ]
}`,
		wordsPerLevel, targetLang, levelID, TopicForLevel(levelID),
		sourceLang, sourceLang, targetLang, targetLang, sourceLang)

	var payload struct {
		Words []models.LearningWord `json:"words"`
	}
	if err := g.generate(ctx, "level words", prompt, &payload); err != nil {
		return nil, err
	}
	if len(payload.Words) == 0 {
		return nil, &FetchError{Op: "level words", Err: fmt.Errorf("model returned no words")}
	}
	return payload.Words, nil
}

// FetchTranslation asks the model to translate a single word with
// pronunciation and examples.
func (g *Gemini) FetchTranslation(ctx context.Context, word, sourceLang, targetLang string) (models.LearningWord, error) {
	prompt := fmt.Sprintf(`Translate the word %q from %s to %s.
Return a JSON object with the following structure:
{
  "translation": "translated word",
  "pronunciation": "pronunciation guide if applicable",
  "examples": ["3 example sentences using the word in %s", "with translations in %s"]
}`,
		word, sourceLang, targetLang, targetLang, sourceLang)

	var payload struct {
		Translation   string   `json:"translation"`
		Pronunciation string   `json:"pronunciation"`
		Examples      []string `json:"examples"`
	}
	if err := g.generate(ctx, "translation", prompt, &payload); err != nil {
		return models.LearningWord{}, err
	}
	if payload.Translation == "" {
		return models.LearningWord{}, &FetchError{Op: "translation", Err: fmt.Errorf("model returned no translation")}
	}
	return models.LearningWord{
		Original:      word,
		Translation:   payload.Translation,
		Pronunciation: payload.Pronunciation,
		Examples:      payload.Examples,
	}, nil
}

// generate sends one prompt and unmarshals the JSON object embedded in the
// model's text answer into out.
func (g *Gemini) generate(ctx context.Context, op, prompt string, out interface{}) error {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return &FetchError{Op: op, Err: fmt.Errorf("marshal request: %w", err)}
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return &FetchError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return &FetchError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	if parsed.Error != nil {
		return &FetchError{Op: op, Err: fmt.Errorf("api error: %s", parsed.Error.Message)}
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return &FetchError{Op: op, Err: fmt.Errorf("no candidates returned")}
	}

	text := parsed.Candidates[0].Content.Parts[0].Text
	raw, ok := extractJSONObject(text)
	if !ok {
		return &FetchError{Op: op, Err: fmt.Errorf("no JSON object in model output")}
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return &FetchError{Op: op, Err: fmt.Errorf("unmarshal model output: %w", err)}
	}
	return nil
}

// extractJSONObject returns the substring from the first '{' to the last '}'.
// Model answers routinely wrap the object in prose or markdown fences.
func extractJSONObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}
