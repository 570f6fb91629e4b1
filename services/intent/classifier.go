// File: services/intent/classifier.go
package intent

import "strings"

// Result is the structured outcome of classifying one message. The
// negotiation engine depends only on these booleans, never on the matching
// strategy behind them.
type Result struct {
	BookingRequest bool
	Rejection      bool
	Affirmative    bool
	Negative       bool
}

// Classifier turns free text into a Result. The keyword implementation below
// is the production one; a learned model can slot in behind the same
// interface.
type Classifier interface {
	Classify(text string) Result
}

var bookingPhrases = []string{
	"agendar", "agenda", "cita", "asesoría", "asesoria",
	"reservar", "programar", "apartar un espacio",
}

var rejectionPhrases = []string{
	"no quiero", "no me interesa", "no gracias", "no por ahora",
	"quizás después", "quizas despues", "en otro momento", "no deseo",
}

var affirmativeWords = []string{
	"si", "sí", "claro", "dale", "ok", "listo", "correcto", "de acuerdo", "perfecto",
}

// KeywordClassifier matches against fixed Spanish phrase lists.
type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

func (k *KeywordClassifier) Classify(text string) Result {
	lowered := strings.ToLower(strings.TrimSpace(text))

	var res Result
	for _, phrase := range rejectionPhrases {
		if strings.Contains(lowered, phrase) {
			res.Rejection = true
			break
		}
	}
	// Rejections often embed booking words ("no quiero agendar"), so the
	// rejection verdict suppresses the booking one.
	if !res.Rejection {
		for _, phrase := range bookingPhrases {
			if strings.Contains(lowered, phrase) {
				res.BookingRequest = true
				break
			}
		}
	}
	for _, word := range affirmativeWords {
		if containsWord(lowered, word) {
			res.Affirmative = true
			break
		}
	}
	if containsWord(lowered, "no") {
		res.Negative = true
	}
	return res
}

// containsWord matches on word boundaries so "si" does not fire inside
// "siempre" or "no" inside "noviembre".
func containsWord(text, word string) bool {
	for _, field := range strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == ',' || r == '.' || r == '!' || r == '¡' || r == '?' || r == '¿'
	}) {
		if field == word {
			return true
		}
	}
	return false
}
