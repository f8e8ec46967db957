// Package dictionary holds the immutable word store and the feed loaders that
// populate it. The store is a patricia trie keyed by the lowercase canonical
// form; entries keep the canonical spelling and its usage frequency. Inserts
// happen during the build phase only; after that the store is read-only and
// safe for concurrent lookups without locking.
package dictionary

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tchap/go-patricia/v2/patricia"
)

// WordEntry is one dictionary word. Immutable after the build phase.
type WordEntry struct {
	// Word is the canonical (correctly spelled, correctly cased) form.
	Word string
	// Frequency is the usage score used as a ranking tie-break. Higher is
	// more common.
	Frequency int
	// ProperNoun marks entries whose canonical form is capitalized by rule.
	ProperNoun bool
}

// WordStore is the prefix-tree dictionary.
type WordStore struct {
	trie  *patricia.Trie
	count int
}

// NewWordStore returns an empty store ready for build-phase inserts.
func NewWordStore() *WordStore {
	return &WordStore{trie: patricia.NewTrie()}
}

// Insert adds a word during the build phase. The trie key is the lowercase
// form; the entry keeps the canonical spelling as given. Inserting the same
// canonical form twice overwrites the previous frequency (last write wins).
func (s *WordStore) Insert(word string, frequency int) {
	if word == "" {
		return
	}
	key := strings.ToLower(word)
	first, _ := utf8.DecodeRuneInString(word)
	entry := &WordEntry{
		Word:       word,
		Frequency:  frequency,
		ProperNoun: unicode.IsUpper(first),
	}
	if !s.trie.Insert(patricia.Prefix(key), entry) {
		s.trie.Set(patricia.Prefix(key), entry)
		return
	}
	s.count++
}

// Contains reports whether the exact lowercase form is a known word.
func (s *WordStore) Contains(word string) bool {
	return s.trie.Get(patricia.Prefix(word)) != nil
}

// ContainsFold is the case-insensitive variant used by the pipeline: the
// query is lowercased before lookup so that FURLAN and Furlan both match the
// entry stored under furlan.
func (s *WordStore) ContainsFold(word string) bool {
	return s.Contains(strings.ToLower(word))
}

// Lookup returns the entry stored under the lowercase form of word.
func (s *WordStore) Lookup(word string) (*WordEntry, bool) {
	item := s.trie.Get(patricia.Prefix(strings.ToLower(word)))
	if item == nil {
		return nil, false
	}
	return item.(*WordEntry), true
}

// Frequency returns the stored frequency for word, or 0 when unknown.
func (s *WordStore) Frequency(word string) int {
	if entry, ok := s.Lookup(word); ok {
		return entry.Frequency
	}
	return 0
}

// WalkPrefix visits every entry whose key starts with prefix, in lexicographic
// key order. The walk stops early when fn returns false. Restartable: each
// call begins a fresh traversal.
func (s *WordStore) WalkPrefix(prefix string, fn func(*WordEntry) bool) {
	stop := errStopWalk
	err := s.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		if !fn(item.(*WordEntry)) {
			return stop
		}
		return nil
	})
	if err != nil && err != stop {
		// VisitSubtree only returns what the visitor returns.
		panic(err)
	}
}

// LookupPrefix collects up to limit entries sharing prefix, in lexicographic
// key order. limit <= 0 collects everything.
func (s *WordStore) LookupPrefix(prefix string, limit int) []*WordEntry {
	var out []*WordEntry
	s.WalkPrefix(prefix, func(e *WordEntry) bool {
		out = append(out, e)
		return limit <= 0 || len(out) < limit
	})
	return out
}

// Walk visits every entry in the store in lexicographic key order.
func (s *WordStore) Walk(fn func(*WordEntry) bool) {
	s.WalkPrefix("", fn)
}

// Len returns the number of distinct canonical forms in the store.
func (s *WordStore) Len() int {
	return s.count
}

type walkSentinel struct{}

func (walkSentinel) Error() string { return "walk stopped" }

var errStopWalk error = walkSentinel{}
