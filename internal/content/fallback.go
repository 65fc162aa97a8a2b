package content

import (
	"fmt"

	"wordpecker/internal/models"
)

// wordsPerLevel is the fixed size of every generated vocabulary set.
const wordsPerLevel = 10

// topics is the ordered level curriculum. Levels beyond the table clamp to
// the last topic.
var topics = []string{
	"basic greetings and introductions",
	"common phrases and questions",
	"food and dining",
	"travel and directions",
	"daily activities and routines",
}

// TopicForLevel returns the curriculum topic for a level (levels are 1-based).
func TopicForLevel(levelID int) string {
	return topics[topicIndex(levelID)]
}

func topicIndex(levelID int) int {
	idx := levelID - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(topics) {
		idx = len(topics) - 1
	}
	return idx
}

// baseVocabulary holds the English word table per topic index. It is the
// source for templated output when a language pair has no curated entries,
// and the `original` column for curated languages.
var baseVocabulary = [][]string{
	{"hello", "goodbye", "please", "thank you", "yes", "no", "excuse me", "sorry", "good morning", "good night"},
	{"how are you", "what is your name", "my name is", "where is", "how much", "I don't understand", "can you help me", "see you later", "welcome", "of course"},
	{"water", "bread", "coffee", "tea", "breakfast", "lunch", "dinner", "menu", "delicious", "the bill"},
	{"airport", "train", "ticket", "hotel", "left", "right", "straight ahead", "map", "station", "luggage"},
	{"morning", "work", "school", "family", "house", "friend", "to sleep", "to eat", "to read", "to walk"},
}

// curatedEntry pairs a translation with optional pronunciation and examples.
type curatedEntry struct {
	translation   string
	pronunciation string
	examples      []string
}

// curated maps target language -> topic index -> entries aligned with
// baseVocabulary. Partial coverage is fine; missing topics fall back to the
// templated form.
var curated = map[string]map[int][]curatedEntry{
	"es": {
		0: {
			{"hola", "OH-lah", []string{"¡Hola! ¿Cómo estás?", "Hello! How are you?"}},
			{"adiós", "ah-DYOHS", []string{"Adiós, hasta mañana.", "Goodbye, see you tomorrow."}},
			{"por favor", "pohr fah-VOHR", []string{"Por favor, ayúdame.", "Please help me."}},
			{"gracias", "GRAH-syahs", []string{"Muchas gracias por tu ayuda.", "Thank you very much for your help."}},
			{"sí", "SEE", []string{"Sí, estoy de acuerdo.", "Yes, I agree."}},
			{"no", "noh", []string{"No, no quiero ir.", "No, I don't want to go."}},
			{"disculpe", "dees-KOOL-peh", []string{"Disculpe, ¿dónde está el baño?", "Excuse me, where is the bathroom?"}},
			{"lo siento", "loh SYEHN-toh", []string{"Lo siento, fue mi culpa.", "I'm sorry, it was my fault."}},
			{"buenos días", "BWEH-nohs DEE-ahs", []string{"¡Buenos días! ¿Cómo amaneciste?", "Good morning! How did you wake up?"}},
			{"buenas noches", "BWEH-nahs NOH-chehs", []string{"Buenas noches, que duermas bien.", "Good night, sleep well."}},
		},
		1: {
			{translation: "¿cómo estás?"},
			{translation: "¿cómo te llamas?"},
			{translation: "me llamo"},
			{translation: "¿dónde está?"},
			{translation: "¿cuánto cuesta?"},
			{translation: "no entiendo"},
			{translation: "¿puedes ayudarme?"},
			{translation: "hasta luego"},
			{translation: "bienvenido"},
			{translation: "por supuesto"},
		},
		2: {
			{translation: "agua"},
			{translation: "pan"},
			{translation: "café"},
			{translation: "té"},
			{translation: "desayuno"},
			{translation: "almuerzo"},
			{translation: "cena"},
			{translation: "menú"},
			{translation: "delicioso"},
			{translation: "la cuenta"},
		},
		3: {
			{translation: "aeropuerto"},
			{translation: "tren"},
			{translation: "billete"},
			{translation: "hotel"},
			{translation: "izquierda"},
			{translation: "derecha"},
			{translation: "todo recto"},
			{translation: "mapa"},
			{translation: "estación"},
			{translation: "equipaje"},
		},
		4: {
			{translation: "mañana"},
			{translation: "trabajo"},
			{translation: "escuela"},
			{translation: "familia"},
			{translation: "casa"},
			{translation: "amigo"},
			{translation: "dormir"},
			{translation: "comer"},
			{translation: "leer"},
			{translation: "caminar"},
		},
	},
	"fr": {
		0: {
			{"bonjour", "bohn-ZHOOR", []string{"Bonjour, comment ça va?", "Hello, how are you?"}},
			{"au revoir", "oh ruh-VWAHR", []string{"Au revoir, à demain.", "Goodbye, see you tomorrow."}},
			{"s'il vous plaît", "seel voo PLEH", []string{"S'il vous plaît, aidez-moi.", "Please help me."}},
			{"merci", "mehr-SEE", []string{"Merci beaucoup pour votre aide.", "Thank you very much for your help."}},
			{"oui", "WEE", []string{"Oui, je suis d'accord.", "Yes, I agree."}},
			{"non", "nohn", []string{"Non, je ne veux pas y aller.", "No, I don't want to go there."}},
			{"excusez-moi", "ehk-skew-ZAY mwah", []string{"Excusez-moi, où sont les toilettes?", "Excuse me, where is the bathroom?"}},
			{"désolé", "day-zoh-LAY", []string{"Je suis désolé, c'était ma faute.", "I'm sorry, it was my fault."}},
			{"bonjour", "bohn-ZHOOR", []string{"Bonjour! Avez-vous bien dormi?", "Good morning! Did you sleep well?"}},
			{"bonne nuit", "bun NWEE", []string{"Bonne nuit, dormez bien.", "Good night, sleep well."}},
		},
		2: {
			{translation: "eau"},
			{translation: "pain"},
			{translation: "café"},
			{translation: "thé"},
			{translation: "petit déjeuner"},
			{translation: "déjeuner"},
			{translation: "dîner"},
			{translation: "menu"},
			{translation: "délicieux"},
			{translation: "l'addition"},
		},
	},
}

// Fallback is the deterministic offline content source. It never fails and
// always produces exactly ten words, so a lesson can be shown even when the
// remote generator is down.
type Fallback struct{}

// NewFallback creates the offline content generator.
func NewFallback() *Fallback {
	return &Fallback{}
}

// Generate returns the vocabulary set for a level and language pair. The same
// inputs always produce the same words in the same order.
func (f *Fallback) Generate(levelID int, sourceLang, targetLang string) []models.LearningWord {
	idx := topicIndex(levelID)
	base := baseVocabulary[idx]

	if entries, ok := curated[targetLang][idx]; ok {
		words := make([]models.LearningWord, wordsPerLevel)
		for i := range words {
			words[i] = models.LearningWord{
				Original:      base[i],
				Translation:   entries[i].translation,
				Pronunciation: entries[i].pronunciation,
				Examples:      entries[i].examples,
			}
		}
		return words
	}

	// No curated entries for this pair: template something learnable rather
	// than returning an empty set.
	words := make([]models.LearningWord, wordsPerLevel)
	for i, w := range base {
		words[i] = models.LearningWord{
			Original:    w,
			Translation: fmt.Sprintf("%s (%s)", w, targetLang),
		}
	}
	return words
}

// Translate returns offline learning material for a single word. Curated
// entries are matched by the original term; anything else gets the templated
// form.
func (f *Fallback) Translate(word, sourceLang, targetLang string) models.LearningWord {
	for idx, base := range baseVocabulary {
		entries, ok := curated[targetLang][idx]
		if !ok {
			continue
		}
		for i, original := range base {
			if original == word {
				return models.LearningWord{
					Original:      original,
					Translation:   entries[i].translation,
					Pronunciation: entries[i].pronunciation,
					Examples:      entries[i].examples,
				}
			}
		}
	}

	return models.LearningWord{
		Original:    word,
		Translation: fmt.Sprintf("%s (%s)", word, targetLang),
	}
}
