package phonetic

import (
	"strings"
	"unicode"
)

var vowelNorm = map[rune]rune{
	'à': 'a', 'á': 'a', 'â': 'a',
	'è': 'e', 'é': 'e', 'ê': 'e',
	'ì': 'i', 'í': 'i', 'î': 'i',
	'ò': 'o', 'ó': 'o', 'ô': 'o',
	'ù': 'u', 'ú': 'u', 'û': 'u',
}

func isVowel(r rune) bool {
	r = unicode.ToLower(r)
	if base, ok := vowelNorm[r]; ok {
		r = base
	}
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// Distance computes the Levenshtein distance between a and b with the
// reference cost model: case-insensitive, and any vowel-to-vowel substitution
// (accented or not) costs zero. A misspelled accent therefore never pushes a
// candidate down the ranking.
func Distance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i, ca := range ra {
		curr[0] = i + 1
		for j, cb := range rb {
			cost := 1
			if unicode.ToLower(ca) == unicode.ToLower(cb) {
				cost = 0
			} else if isVowel(ca) && isVowel(cb) {
				cost = 0
			}

			ins := prev[j+1] + 1
			del := curr[j] + 1
			sub := prev[j] + cost

			m := sub
			if ins < m {
				m = ins
			}
			if del < m {
				m = del
			}
			curr[j+1] = m
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

var collateNorm = map[rune]rune{
	'à': 'a', 'á': 'a', 'â': 'a',
	'è': 'e', 'é': 'e', 'ê': 'e',
	'ì': 'i', 'í': 'i', 'î': 'i',
	'ò': 'o', 'ó': 'o', 'ô': 'o',
	'ù': 'u', 'ú': 'u', 'û': 'u',
	'ç': 'c',
}

// CollateKey returns the key used for Friulian alphabetical tie-breaks:
// lowercase, accents folded onto their base letters, ç sorted with c, and a
// leading elided 's ("'save") sorted under s.
func CollateKey(word string) string {
	var b strings.Builder
	b.Grow(len(word))
	for _, r := range strings.ToLower(word) {
		if base, ok := collateNorm[r]; ok {
			r = base
		}
		b.WriteRune(r)
	}
	key := b.String()
	if strings.HasPrefix(key, "'s") {
		key = key[1:]
	}
	return key
}

// Less compares two words in Friulian collation order.
func Less(a, b string) bool {
	ka, kb := CollateKey(a), CollateKey(b)
	if ka != kb {
		return ka < kb
	}
	return a < b
}
