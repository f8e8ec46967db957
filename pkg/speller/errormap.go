package speller

import (
	"fmt"
	"strings"

	"github.com/furlang/coretor/pkg/dictionary"
)

// ErrorMap maps known misspellings to their curated corrections. The source
// order of corrections is authoritative: it outranks every computed score, so
// the slice order here is exactly the presentation order. Keys are stored
// lowercase; case restoration happens downstream in the pipeline.
type ErrorMap struct {
	entries map[string][]string
}

// BuildErrorMap folds the feed into a lookup table. Placeholder slots (empty
// strings in the legacy table) are dropped here; they mark "no correction at
// this rank" and never block later slots. Two feed entries for the same
// misspelling merge slot by slot; a conflict between two non-empty
// corrections at the same rank aborts the build with DataIntegrityError.
func BuildErrorMap(feed []dictionary.ErrorEntry) (*ErrorMap, error) {
	raw := make(map[string][]string, len(feed))
	for _, entry := range feed {
		if entry.Wrong == "" {
			return nil, &DataIntegrityError{Feed: "errors", Detail: "entry with empty misspelling key"}
		}
		key := strings.ToLower(entry.Wrong)
		existing, ok := raw[key]
		if !ok {
			raw[key] = append([]string(nil), entry.Corrections...)
			continue
		}
		merged, err := mergeSlots(key, existing, entry.Corrections)
		if err != nil {
			return nil, err
		}
		raw[key] = merged
	}

	entries := make(map[string][]string, len(raw))
	for key, slots := range raw {
		var corrections []string
		for _, slot := range slots {
			if slot != "" {
				corrections = append(corrections, slot)
			}
		}
		if len(corrections) > 0 {
			entries[key] = corrections
		}
	}
	return &ErrorMap{entries: entries}, nil
}

func mergeSlots(key string, a, b []string) ([]string, error) {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	merged := make([]string, n)
	for i := 0; i < n; i++ {
		var sa, sb string
		if i < len(a) {
			sa = a[i]
		}
		if i < len(b) {
			sb = b[i]
		}
		switch {
		case sa == "":
			merged[i] = sb
		case sb == "" || sa == sb:
			merged[i] = sa
		default:
			return nil, &DataIntegrityError{
				Feed:   "errors",
				Detail: fmt.Sprintf("misspelling %q has conflicting corrections %q and %q at rank %d", key, sa, sb, i+1),
			}
		}
	}
	return merged, nil
}

// Lookup returns the ordered corrections for a misspelling, or nil. The
// lookup key is lowercased; returned corrections are the canonical forms from
// the table.
func (m *ErrorMap) Lookup(misspelling string) []string {
	return m.entries[strings.ToLower(misspelling)]
}

// Len returns the number of misspellings with at least one real correction.
func (m *ErrorMap) Len() int {
	return len(m.entries)
}
