package speller

import (
	"strings"

	"github.com/furlang/coretor/pkg/dictionary"
	"github.com/furlang/coretor/pkg/phonetic"
)

// PhoneticIndex groups dictionary entries by phonetic key. Each entry is
// indexed under both of its keys, so a query matches whenever any key pair
// overlaps. The index carries no ordering guarantee; presentation order is
// the ranker's job.
type PhoneticIndex struct {
	buckets map[string][]*dictionary.WordEntry
}

// BuildPhoneticIndex walks the whole store once and buckets every entry.
func BuildPhoneticIndex(store *dictionary.WordStore) *PhoneticIndex {
	idx := &PhoneticIndex{buckets: make(map[string][]*dictionary.WordEntry, store.Len())}
	store.Walk(func(entry *dictionary.WordEntry) bool {
		primo, secondo := phonetic.EncodePair(strings.ToLower(entry.Word))
		if primo != "" {
			idx.buckets[primo] = append(idx.buckets[primo], entry)
		}
		if secondo != "" && secondo != primo {
			idx.buckets[secondo] = append(idx.buckets[secondo], entry)
		}
		return true
	})
	return idx
}

// CandidatesFor returns every entry sharing a phonetic key with lower (an
// already lowercased token), excluding an entry spelled exactly the same,
// since exact matches bypass the candidate pipeline. Membership is a set;
// entries indexed under both keys appear once.
func (idx *PhoneticIndex) CandidatesFor(lower string) []*dictionary.WordEntry {
	primo, secondo := phonetic.EncodePair(lower)
	if primo == "" && secondo == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var out []*dictionary.WordEntry
	collect := func(key string) {
		for _, entry := range idx.buckets[key] {
			entryLower := strings.ToLower(entry.Word)
			if entryLower == lower {
				continue
			}
			if _, dup := seen[entryLower]; dup {
				continue
			}
			seen[entryLower] = struct{}{}
			out = append(out, entry)
		}
	}
	collect(primo)
	if secondo != primo {
		collect(secondo)
	}
	return out
}

// Buckets returns the number of distinct phonetic keys in the index.
func (idx *PhoneticIndex) Buckets() int {
	return len(idx.buckets)
}
