package excel

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return &buf
}

func TestParseWords(t *testing.T) {
	buf := buildWorkbook(t, [][]string{
		{"term", "translation", "pronunciation", "example"},
		{"cat", "gato", "GAH-toh", "El gato duerme."},
		{"dog", "perro"},
		{"", "ignored"},
		{"  bread  ", " pan "},
	})

	words, err := ParseWords(buf)
	if err != nil {
		t.Fatalf("ParseWords: %v", err)
	}
	if len(words) != 3 {
		t.Fatalf("got %d words, want 3", len(words))
	}
	if words[0].Term != "cat" || words[0].Translation != "gato" || words[0].Example != "El gato duerme." {
		t.Errorf("first word = %+v", words[0])
	}
	if words[1].Term != "dog" || words[1].Pronunciation != "" {
		t.Errorf("second word = %+v", words[1])
	}
	if words[2].Term != "bread" || words[2].Translation != "pan" {
		t.Errorf("third word not trimmed: %+v", words[2])
	}
}

func TestParseWordsNoHeader(t *testing.T) {
	buf := buildWorkbook(t, [][]string{
		{"cat", "gato"},
		{"dog", "perro"},
	})

	words, err := ParseWords(buf)
	if err != nil {
		t.Fatalf("ParseWords: %v", err)
	}
	if len(words) != 2 {
		t.Errorf("got %d words, want 2", len(words))
	}
}

func TestParseWordsEmptyWorkbook(t *testing.T) {
	buf := buildWorkbook(t, [][]string{{"term", "translation"}})

	_, err := ParseWords(buf)
	if !errors.Is(err, ErrNoWords) {
		t.Errorf("got %v, want ErrNoWords", err)
	}
}

func TestParseWordsNotAWorkbook(t *testing.T) {
	if _, err := ParseWords(strings.NewReader("not an xlsx file")); err == nil {
		t.Error("expected error for invalid workbook")
	}
}
