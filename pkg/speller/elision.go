package speller

import "strings"

// Friulian contracts an article or preposition before a vowel-initial word:
// "la aghe" becomes "l'aghe". The normalizer reverses these contractions so
// each expanded part can be checked as an ordinary word, and splits
// hyphenated compounds into their parts.

// elisionRule maps an apostrophe-led prefix to the full word it contracts.
type elisionRule struct {
	prefix    string // contracted form, including the apostrophe
	expansion string // the uncontracted word
}

// Rule order matters: longer prefixes first so "un'" wins over a hypothetical
// overlap, and the expansion list order is the order segmentations are tried.
var elisionRules = []elisionRule{
	{prefix: "un'", expansion: "une"},
	{prefix: "l'", expansion: "la"},
	{prefix: "d'", expansion: "di"},
}

// SegmentKind tags how a segmentation was derived from the token.
type SegmentKind uint8

const (
	SegmentIdentity SegmentKind = iota
	SegmentElision
	SegmentHyphen
)

// Segmentation is one candidate re-reading of the input token as a sequence
// of sub-tokens, each to be checked independently. For elision segmentations
// Contraction holds the apostrophe prefix that was expanded ("l'", "d'",
// "un'"), so the pipeline can offer the contracted form back when the base
// word admits it.
type Segmentation struct {
	Kind        SegmentKind
	Parts       []string
	Contraction string
}

// ElisionSet is the set of words that admit the contracted l' form. Built
// once from the elision feed, read-only afterwards.
type ElisionSet struct {
	words map[string]struct{}
}

// NewElisionSet builds the set from the feed; words are stored lowercase.
func NewElisionSet(words []string) *ElisionSet {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w != "" {
			set[strings.ToLower(w)] = struct{}{}
		}
	}
	return &ElisionSet{words: set}
}

// Elidable reports whether word admits an apostrophe contraction.
func (s *ElisionSet) Elidable(word string) bool {
	_, ok := s.words[strings.ToLower(word)]
	return ok
}

// Len returns the number of elidable words.
func (s *ElisionSet) Len() int {
	return len(s.words)
}

// Segmentations returns the alternate readings of lower (an already
// lowercased token): the expanded form for each matching elision rule, the
// hyphen split when the token contains internal hyphens, or nothing when no
// rule applies. The identity reading is implicit and handled by the caller.
func Segmentations(lower string) []Segmentation {
	var segs []Segmentation

	for _, rule := range elisionRules {
		if len(lower) > len(rule.prefix) && strings.HasPrefix(lower, rule.prefix) {
			base := lower[len(rule.prefix):]
			segs = append(segs, Segmentation{
				Kind:        SegmentElision,
				Parts:       []string{rule.expansion, base},
				Contraction: rule.prefix,
			})
			break
		}
	}

	if strings.Contains(lower, "-") {
		var parts []string
		for _, p := range strings.Split(lower, "-") {
			if p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) >= 2 {
			segs = append(segs, Segmentation{Kind: SegmentHyphen, Parts: parts})
		}
	}

	return segs
}
