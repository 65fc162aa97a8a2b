package models

import "time"

// WordList is a user-curated list of vocabulary for one language pair.
type WordList struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	SourceLanguage string    `json:"sourceLanguage"`
	TargetLanguage string    `json:"targetLanguage"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ListWord is a word stored in a word list.
type ListWord struct {
	ID            int64     `json:"id"`
	ListID        int64     `json:"listId"`
	Term          string    `json:"term"`
	Translation   string    `json:"translation"`
	Pronunciation string    `json:"pronunciation,omitempty"`
	Example       string    `json:"example,omitempty"`
	Learned       bool      `json:"learned"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ListWithWords combines a word list with its words and derived progress.
type ListWithWords struct {
	List     WordList   `json:"list"`
	Words    []ListWord `json:"words"`
	Progress float64    `json:"progress"` // percentage of learned words
}
