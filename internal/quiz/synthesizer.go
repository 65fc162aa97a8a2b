package quiz

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"wordpecker/internal/models"
)

// BlankMarker replaces the target word in fill-in-the-blank prompts.
const BlankMarker = "_____"

// distractorCount is how many wrong options a multiple-choice question aims for.
const distractorCount = 3

// languageNames maps common language codes to display names for question
// prompts. Unknown codes fall back to the code itself.
var languageNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"ru": "Russian",
	"ja": "Japanese",
	"zh": "Chinese",
	"ko": "Korean",
	"ar": "Arabic",
	"tr": "Turkish",
}

func languageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

// Synthesizer turns a learned word set into a shuffled practice round.
// The random source is injected so question order and distractor choice are
// reproducible in tests.
type Synthesizer struct {
	rng *rand.Rand
}

// NewSynthesizer creates a synthesizer. A nil rng gets a time-seeded source.
func NewSynthesizer(rng *rand.Rand) *Synthesizer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Synthesizer{rng: rng}
}

// Synthesize generates one question per word plus at most one
// fill-in-the-blank question when example sentences are available.
//
// Two out of every three questions ask for the translation of the source
// word (production); every third asks what the target word means
// (recognition). The split is by word index so the ratio is stable.
func (s *Synthesizer) Synthesize(words []models.LearningWord, sourceLang, targetLang string) []models.PracticeQuestion {
	questions := make([]models.PracticeQuestion, 0, len(words)+1)

	for i, word := range words {
		if i%3 != 2 {
			questions = append(questions, s.forwardQuestion(word, words, targetLang))
		} else {
			questions = append(questions, s.reverseQuestion(word, words, sourceLang))
		}
	}

	if q, ok := s.fillBlankQuestion(words, targetLang); ok {
		questions = append(questions, q)
	}

	s.rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	return questions
}

// forwardQuestion asks for the target-language translation of the original
// word. Distractors are translations of other words in the set.
func (s *Synthesizer) forwardQuestion(word models.LearningWord, words []models.LearningWord, targetLang string) models.PracticeQuestion {
	pool := make([]string, 0, len(words)-1)
	for _, w := range words {
		if w.Translation != word.Translation {
			pool = append(pool, w.Translation)
		}
	}

	return models.PracticeQuestion{
		Kind:          models.MultipleChoice,
		Prompt:        fmt.Sprintf("What is the %s translation of %q?", languageName(targetLang), word.Original),
		Options:       s.buildOptions(word.Translation, pool),
		CorrectAnswer: word.Translation,
	}
}

// reverseQuestion asks what the target-language word means. Distractors are
// originals of other words in the set.
func (s *Synthesizer) reverseQuestion(word models.LearningWord, words []models.LearningWord, sourceLang string) models.PracticeQuestion {
	pool := make([]string, 0, len(words)-1)
	for _, w := range words {
		if w.Original != word.Original {
			pool = append(pool, w.Original)
		}
	}

	return models.PracticeQuestion{
		Kind:          models.MultipleChoice,
		Prompt:        fmt.Sprintf("What does %q mean in %s?", word.Translation, languageName(sourceLang)),
		Options:       s.buildOptions(word.Original, pool),
		CorrectAnswer: word.Original,
	}
}

// buildOptions picks up to three distinct distractors at random and shuffles
// them together with the correct answer. A pool smaller than three yields a
// shorter option list; distractors are never duplicated to pad it out.
func (s *Synthesizer) buildOptions(correct string, pool []string) []string {
	distinct := make([]string, 0, len(pool))
	seen := map[string]bool{correct: true}
	for _, d := range pool {
		if !seen[d] {
			seen[d] = true
			distinct = append(distinct, d)
		}
	}

	s.rng.Shuffle(len(distinct), func(i, j int) {
		distinct[i], distinct[j] = distinct[j], distinct[i]
	})
	if len(distinct) > distractorCount {
		distinct = distinct[:distractorCount]
	}

	options := append(distinct, correct)
	s.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

// fillBlankQuestion builds one fill-in-the-blank question from the first
// example sentence of a randomly chosen word that has examples. Reports
// false when no word has examples.
func (s *Synthesizer) fillBlankQuestion(words []models.LearningWord, targetLang string) (models.PracticeQuestion, bool) {
	withExamples := make([]models.LearningWord, 0, len(words))
	for _, w := range words {
		if len(w.Examples) > 0 && w.Translation != "" {
			withExamples = append(withExamples, w)
		}
	}
	if len(withExamples) == 0 {
		return models.PracticeQuestion{}, false
	}

	word := withExamples[s.rng.Intn(len(withExamples))]
	example := word.Examples[0]

	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(word.Translation))
	blanked := re.ReplaceAllString(example, BlankMarker)
	if !strings.Contains(blanked, BlankMarker) {
		// Translation never occurs in its own example sentence; a blank-less
		// prompt would be unanswerable.
		return models.PracticeQuestion{}, false
	}

	return models.PracticeQuestion{
		Kind:          models.FillBlank,
		Prompt:        fmt.Sprintf("Complete the sentence in %s: %q", languageName(targetLang), blanked),
		CorrectAnswer: word.Translation,
	}, true
}
