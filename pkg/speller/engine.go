// Package speller implements the suggestion engine: exact lookup, curated
// error corrections, phonetic candidate gathering, elision and compound
// handling, and the deterministic ranking that merges them.
//
// The engine is synchronous and stateless per call. All dictionary structures
// are immutable after the build phase, so any number of queries may run in
// parallel with no coordination; the only shared mutable state is the atomic
// snapshot pointer, swapped wholesale on rebuild.
package speller

import (
	"sort"
	"strings"
	"sync/atomic"
	"unicode"
	"unicode/utf8"

	"github.com/furlang/coretor/internal/utils"
	"github.com/furlang/coretor/pkg/phonetic"
)

// Source tags where a suggestion came from. The ranker switches on the tag:
// error-map corrections outrank every computed score.
type Source uint8

const (
	SourceExact Source = iota
	SourceErrorMap
	SourcePhonetic
	SourceElision
	SourceHyphen
)

func (s Source) String() string {
	switch s {
	case SourceExact:
		return "exact"
	case SourceErrorMap:
		return "error-map"
	case SourcePhonetic:
		return "phonetic"
	case SourceElision:
		return "elision"
	case SourceHyphen:
		return "hyphen"
	}
	return "unknown"
}

// Suggestion is one ranked correction candidate. Transient, produced per
// query.
type Suggestion struct {
	Word      string
	Source    Source
	Rank      int // 1-based error-map slot, 0 otherwise
	Distance  int
	Frequency int
}

// Options bound a single query.
type Options struct {
	// MaxSuggestions caps the returned list when the caller passes no
	// explicit limit.
	MaxSuggestions int
	// MaxTokenLen is the longest token (in runes) the engine accepts.
	MaxTokenLen int
}

// DefaultOptions mirrors the reference system's limits.
func DefaultOptions() Options {
	return Options{MaxSuggestions: 10, MaxTokenLen: 64}
}

// Engine answers spelling queries against the currently installed snapshot.
type Engine struct {
	opts Options
	snap atomic.Pointer[Snapshot]
}

// New returns an engine with no snapshot installed. Queries fail with
// EngineNotReadyError until Swap is called.
func New(opts Options) *Engine {
	if opts.MaxSuggestions <= 0 {
		opts.MaxSuggestions = DefaultOptions().MaxSuggestions
	}
	if opts.MaxTokenLen <= 0 {
		opts.MaxTokenLen = DefaultOptions().MaxTokenLen
	}
	return &Engine{opts: opts}
}

// Swap atomically installs a new dictionary snapshot. In-flight queries keep
// the generation they started with.
func (e *Engine) Swap(snap *Snapshot) {
	e.snap.Store(snap)
}

// Ready reports whether a snapshot is installed.
func (e *Engine) Ready() bool {
	return e.snap.Load() != nil
}

// CheckWord reports whether token is a known word. The check is
// case-insensitive against the canonical forms: FURLAN matches furlan.
func (e *Engine) CheckWord(token string) (bool, error) {
	if err := e.validateToken(token); err != nil {
		return false, err
	}
	snap := e.snap.Load()
	if snap == nil {
		return false, &EngineNotReadyError{}
	}
	return snap.Store.Contains(strings.ToLower(token)), nil
}

// Suggest returns up to max correction candidates for token, best first.
// A correct word and a word with no candidates both yield an empty list;
// neither is an error.
func (e *Engine) Suggest(token string, max int) ([]string, error) {
	detailed, err := e.SuggestDetailed(token, max)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(detailed))
	for i, s := range detailed {
		out[i] = s.Word
	}
	return out, nil
}

// SuggestDetailed is Suggest with source and score information retained.
func (e *Engine) SuggestDetailed(token string, max int) ([]Suggestion, error) {
	if err := e.validateToken(token); err != nil {
		return nil, err
	}
	if max <= 0 {
		return nil, &InvalidInputError{Token: token, Reason: "maxSuggestions must be positive"}
	}
	snap := e.snap.Load()
	if snap == nil {
		return nil, &EngineNotReadyError{}
	}

	class := classifyCase(token)
	lower := strings.ToLower(token)

	// Correct words short-circuit: no candidate pipeline, empty result.
	if snap.Store.Contains(lower) {
		return nil, nil
	}

	cands := gather(snap, lower)

	for _, seg := range Segmentations(lower) {
		lists := make([][]candidate, len(seg.Parts))
		complete := true
		for i, part := range seg.Parts {
			lists[i] = partCandidates(snap, part, max)
			if len(lists[i]) == 0 {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}
		cands = append(cands, rejoin(snap, seg, lists, max)...)
	}

	sortCandidates(cands)

	filter := utils.NewSuggestionFilter(token)
	var out []Suggestion
	for _, c := range cands {
		cased := applyCase(class, c.word)
		if !filter.ShouldInclude(cased) {
			continue
		}
		out = append(out, Suggestion{
			Word:      cased,
			Source:    c.source,
			Rank:      c.rank,
			Distance:  c.distance,
			Frequency: c.freq,
		})
		if len(out) == max {
			break
		}
	}
	return out, nil
}

func (e *Engine) validateToken(token string) error {
	if token == "" {
		return &InvalidInputError{Token: token, Reason: "empty token"}
	}
	if !utf8.ValidString(token) {
		return &InvalidInputError{Token: token, Reason: "not valid UTF-8"}
	}
	if utf8.RuneCountInString(token) > e.opts.MaxTokenLen {
		return &InvalidInputError{Token: token, Reason: "token exceeds maximum length"}
	}
	return nil
}

// candidate is the internal scoring record; word stays lowercase or canonical
// until case restoration at the very end.
type candidate struct {
	word     string
	source   Source
	rank     int
	distance int
	freq     int
}

// gather collects error-map corrections and phonetic candidates for one
// lowercased sub-token.
func gather(snap *Snapshot, lower string) []candidate {
	var cands []candidate

	for i, corr := range snap.Errors.Lookup(lower) {
		cands = append(cands, candidate{
			word:     corr,
			source:   SourceErrorMap,
			rank:     i + 1,
			distance: phonetic.Distance(lower, strings.ToLower(corr)),
			freq:     snap.Freqs.Score(corr),
		})
	}

	for _, entry := range snap.Index.CandidatesFor(lower) {
		cands = append(cands, candidate{
			word:     entry.Word,
			source:   SourcePhonetic,
			distance: phonetic.Distance(lower, strings.ToLower(entry.Word)),
			freq:     entry.Frequency,
		})
	}

	return cands
}

// partCandidates runs the single-token pipeline for one part of a
// segmentation: a known part is its own sole candidate, otherwise the ranked
// error-map and phonetic candidates, truncated to limit.
func partCandidates(snap *Snapshot, part string, limit int) []candidate {
	if entry, ok := snap.Store.Lookup(part); ok {
		return []candidate{{
			word:   entry.Word,
			source: SourceExact,
			freq:   entry.Frequency,
		}}
	}
	cands := gather(snap, part)
	sortCandidates(cands)
	if len(cands) > limit {
		cands = cands[:limit]
	}
	return cands
}

// rejoin builds the combined suggestions for a multi-part segmentation by
// walking the per-part candidate lists in rank order. Generation stops at limit
// combinations; the full cross product is never materialized. Distances and
// frequencies sum across parts; an elision expansion counts as one extra
// edit.
func rejoin(snap *Snapshot, seg Segmentation, lists [][]candidate, limit int) []candidate {
	var out []candidate

	source := SourceHyphen
	extraDist := 0
	if seg.Kind == SegmentElision {
		source = SourceElision
		extraDist = 1
	}

	parts := make([]string, len(lists))
	var walk func(depth, dist, freq int)
	walk = func(depth, dist, freq int) {
		if len(out) >= limit {
			return
		}
		if depth == len(lists) {
			out = append(out, candidate{
				word:     strings.Join(parts, " "),
				source:   source,
				distance: dist + extraDist,
				freq:     freq,
			})
			return
		}
		for _, c := range lists[depth] {
			parts[depth] = strings.ToLower(c.word)
			walk(depth+1, dist+c.distance, freq+c.freq)
			if len(out) >= limit {
				return
			}
		}
	}
	walk(0, 0, 0)

	// An l' contraction stays valid when the base word admits elision, so
	// offer the contracted spelling of each base candidate too. The variant
	// equal to the input token is dropped by the dedup filter downstream.
	if seg.Contraction == "l'" && len(lists) == 2 {
		for _, base := range lists[1] {
			baseLower := strings.ToLower(base.word)
			if !snap.Elisions.Elidable(baseLower) {
				continue
			}
			out = append(out, candidate{
				word:     seg.Contraction + baseLower,
				source:   SourceElision,
				distance: base.distance,
				freq:     base.freq,
			})
		}
	}

	return out
}

// sortCandidates orders by the composite key the reference system uses:
// error-map corrections first (by source slot), then edit distance
// ascending, frequency descending, Friulian collation. The order is total, so
// repeated queries always produce identical lists.
func sortCandidates(cands []candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		aErr := a.source == SourceErrorMap
		bErr := b.source == SourceErrorMap
		if aErr != bErr {
			return aErr
		}
		if aErr && bErr && a.rank != b.rank {
			return a.rank < b.rank
		}
		if a.distance != b.distance {
			return a.distance < b.distance
		}
		if a.freq != b.freq {
			return a.freq > b.freq
		}
		return phonetic.Less(a.word, b.word)
	})
}

// caseClass is the capitalization pattern of the input token.
type caseClass uint8

const (
	caseLower caseClass = iota
	caseUcFirst
	caseUpper
)

func classifyCase(token string) caseClass {
	runes := []rune(token)
	hasLetter := false
	allUpper := true
	for _, r := range runes {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				allUpper = false
			}
		}
	}
	if hasLetter && allUpper {
		return caseUpper
	}
	if len(runes) > 1 && unicode.IsUpper(runes[0]) {
		rest := string(runes[1:])
		if rest == strings.ToLower(rest) {
			return caseUcFirst
		}
	}
	return caseLower
}

func applyCase(class caseClass, word string) string {
	switch class {
	case caseUpper:
		return strings.ToUpper(word)
	case caseUcFirst:
		runes := []rune(strings.ToLower(word))
		if len(runes) > 0 {
			runes[0] = unicode.ToUpper(runes[0])
		}
		return string(runes)
	}
	return strings.ToLower(word)
}
