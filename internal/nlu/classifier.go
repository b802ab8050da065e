package nlu

import (
	"strings"

	"github.com/seu-repo/sahayata-voice/internal/domain"
)

// Classifier maps a normalized utterance to an intent by testing the
// table's trigger sets in priority order and returning the first intent
// with any matching substring.
type Classifier struct {
	table *Table
}

func NewClassifier(table *Table) *Classifier {
	return &Classifier{table: table}
}

// Classify returns the intent of an utterance, or IntentUnknown when no
// trigger matches. The caller is expected to only classify idle-state
// utterances; mid-dialogue input goes through the slot extractor instead.
func (c *Classifier) Classify(utterance string) domain.Intent {
	utterance = Normalize(utterance)

	for _, entry := range c.table.Intents {
		for _, trigger := range entry.Triggers {
			if strings.Contains(utterance, trigger) {
				return domain.Intent(entry.Name)
			}
		}
	}
	return domain.IntentUnknown
}

// IsAffirmative reports whether the utterance contains any affirmative
// word from the table, in any supported language.
func (c *Classifier) IsAffirmative(utterance string) bool {
	utterance = Normalize(utterance)

	for _, word := range c.table.Affirmations {
		if strings.Contains(utterance, strings.ToLower(word)) {
			return true
		}
	}
	return false
}
