package speller

import (
	"github.com/charmbracelet/log"

	"github.com/furlang/coretor/pkg/dictionary"
)

// Snapshot is one immutable dictionary generation: the word store, the
// phonetic index derived from it, the error table, the elidable-word set and
// the frequency table. A snapshot is built once and never mutated; rebuilding
// means constructing a fresh snapshot and swapping it into the engine
// atomically, so in-flight queries always see a consistent generation.
type Snapshot struct {
	Store    *dictionary.WordStore
	Index    *PhoneticIndex
	Errors   *ErrorMap
	Elisions *ElisionSet
	Freqs    *FrequencyTable
}

// BuildSnapshot constructs a snapshot from the three build feeds. Any feed
// violation aborts the build; a partial snapshot is never returned.
func BuildSnapshot(words []dictionary.WordPair, errs []dictionary.ErrorEntry, elidable []string) (*Snapshot, error) {
	store := dictionary.NewWordStore()
	for _, p := range words {
		if p.Frequency < 0 {
			return nil, &DataIntegrityError{Feed: "words", Detail: "negative frequency for " + p.Word}
		}
		store.Insert(p.Word, p.Frequency)
	}

	errorMap, err := BuildErrorMap(errs)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Store:    store,
		Index:    BuildPhoneticIndex(store),
		Errors:   errorMap,
		Elisions: NewElisionSet(elidable),
		Freqs:    BuildFrequencyTable(words),
	}
	log.Debugf("snapshot built: %d words, %d phonetic buckets, %d error entries, %d elidable",
		store.Len(), snap.Index.Buckets(), errorMap.Len(), snap.Elisions.Len())
	return snap, nil
}
