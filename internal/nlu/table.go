// Package nlu holds the keyword-driven natural language understanding
// used by the assistant: intent classification and slot extraction.
//
// Matching is substring containment on the normalized utterance, not
// token matching. That favors recall over precision: a trigger embedded
// in an unrelated word still matches, which is acceptable for the
// voice-demo use case where utterances are short.
package nlu

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed triggers.yaml
var defaultTriggers []byte

// IntentTriggers pairs an intent name with its trigger substrings across
// all supported languages. Order in the table is the classification
// priority order.
type IntentTriggers struct {
	Name     string   `yaml:"name"`
	Triggers []string `yaml:"triggers"`
}

// Table is the full keyword configuration: intent triggers, affirmative
// words for the confirmation step, and common given names preferred by
// the recipient extractor. Adding a language or intent only touches this
// data, never control flow.
type Table struct {
	Intents      []IntentTriggers `yaml:"intents"`
	Affirmations []string         `yaml:"affirmations"`
	GivenNames   []string         `yaml:"given_names"`
}

// LoadTable parses the embedded default trigger table.
func LoadTable() (*Table, error) {
	return parseTable(defaultTriggers)
}

// LoadTableFromFile parses a trigger table from disk, for deployments
// that override the built-in keyword sets.
func LoadTableFromFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trigger table: %w", err)
	}
	return parseTable(data)
}

func parseTable(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse trigger table: %w", err)
	}
	if len(t.Intents) == 0 {
		return nil, fmt.Errorf("trigger table has no intents")
	}
	return &t, nil
}

// Normalize lower-cases and trims an utterance. All matching in this
// package operates on normalized text.
func Normalize(utterance string) string {
	return strings.ToLower(strings.TrimSpace(utterance))
}
