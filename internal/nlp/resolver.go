package nlp

import (
	"time"

	"github.com/vansh-agarwal/Agent/internal/models"
)

// Resolver is the rule-based intent resolution path. It performs no I/O and
// never fails, which makes it the unconditional fallback for every layer above.
type Resolver struct {
	extractor  *Extractor
	classifier *Classifier
	now        func() time.Time
}

func NewResolver() *Resolver {
	return &Resolver{
		extractor:  NewExtractor(),
		classifier: NewClassifier(),
		now:        time.Now,
	}
}

// Resolve classifies the utterance, extracts entities and computes a heuristic
// confidence score in [0, 1].
func (r *Resolver) Resolve(text string) models.UserIntent {
	now := r.now()
	intent, score := r.classifier.Classify(text)
	entities := r.extractor.Extract(text, intent, now)

	confidence := 0.5
	if score > 0 {
		confidence += 0.1
	}
	if title, ok := entities["title"].(string); ok && len(title) > 3 {
		confidence += 0.1
	}
	if _, ok := entities["datetime"]; ok {
		confidence += 0.15
	} else if _, ok := entities["date"]; ok {
		confidence += 0.15
	}
	if _, ok := entities["priority"]; ok {
		confidence += 0.1
	}
	if confidence > 1.0 {
		confidence = 1.0
	}

	return models.UserIntent{
		IntentType:   intent,
		Entities:     entities,
		Confidence:   confidence,
		OriginalText: text,
	}
}
