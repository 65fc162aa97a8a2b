package excel

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNoWords is returned when a workbook contains no usable rows.
var ErrNoWords = errors.New("workbook contains no words")

// ImportedWord is one row of an uploaded vocabulary workbook.
type ImportedWord struct {
	Term          string
	Translation   string
	Pronunciation string
	Example       string
}

// ParseWords reads vocabulary rows from the first sheet of an xlsx workbook.
// Expected columns: term, translation, pronunciation, example. Only the term
// is required. A header row is detected by its first cell and skipped.
func ParseWords(r io.Reader) ([]ImportedWord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoWords
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	var words []ImportedWord
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		term := strings.TrimSpace(cell(row, 0))
		if term == "" {
			continue
		}
		if i == 0 && isHeader(term) {
			continue
		}
		words = append(words, ImportedWord{
			Term:          term,
			Translation:   strings.TrimSpace(cell(row, 1)),
			Pronunciation: strings.TrimSpace(cell(row, 2)),
			Example:       strings.TrimSpace(cell(row, 3)),
		})
	}

	if len(words) == 0 {
		return nil, ErrNoWords
	}
	return words, nil
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func isHeader(first string) bool {
	switch strings.ToLower(first) {
	case "term", "word", "original":
		return true
	}
	return false
}
