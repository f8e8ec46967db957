package speller

import (
	"strings"

	"github.com/furlang/coretor/pkg/dictionary"
)

// FrequencyTable maps lowercase word forms to usage scores. Unknown words
// score 0. Read-only after build.
type FrequencyTable struct {
	scores map[string]int
}

// BuildFrequencyTable folds the word feed into the table. Duplicate forms
// keep the last score, matching the word store's last-write-wins rule.
func BuildFrequencyTable(pairs []dictionary.WordPair) *FrequencyTable {
	scores := make(map[string]int, len(pairs))
	for _, p := range pairs {
		if p.Word == "" {
			continue
		}
		scores[strings.ToLower(p.Word)] = p.Frequency
	}
	return &FrequencyTable{scores: scores}
}

// Score returns the usage frequency for word, or 0 when unknown.
func (t *FrequencyTable) Score(word string) int {
	return t.scores[strings.ToLower(word)]
}

// Len returns the number of scored words.
func (t *FrequencyTable) Len() int {
	return len(t.scores)
}
