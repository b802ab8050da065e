package nlu

import (
	"regexp"
	"strings"
)

var digitRun = regexp.MustCompile(`[0-9]+`)

// Extractor pulls recipient names and amounts out of mid-dialogue
// utterances.
type Extractor struct {
	table *Table
}

func NewExtractor(table *Table) *Extractor {
	return &Extractor{table: table}
}

// ExtractRecipient returns a recipient name from the utterance. The
// first whitespace-delimited token is the default candidate; a known
// given name appearing anywhere in the utterance is preferred over it.
// Extraction never fails: with no recognizable name the first word wins,
// and an empty utterance yields an empty recipient.
func (e *Extractor) ExtractRecipient(utterance string) string {
	utterance = Normalize(utterance)

	name := ""
	if fields := strings.Fields(utterance); len(fields) > 0 {
		name = fields[0]
	}

	for _, candidate := range e.table.GivenNames {
		if strings.Contains(utterance, candidate) {
			name = candidate
			break
		}
	}
	return name
}

// ExtractAmount returns the first maximal run of decimal digits in the
// utterance. ok is false when the utterance contains no digits, in which
// case the dialogue re-asks for the amount instead of advancing.
func ExtractAmount(utterance string) (amount string, ok bool) {
	amount = digitRun.FindString(Normalize(utterance))
	return amount, amount != ""
}
