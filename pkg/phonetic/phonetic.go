// Package phonetic implements the Friulian phonetic hashing algorithm used to
// group confusable spellings, plus the edit distance and collation helpers the
// suggestion ranker depends on.
//
// Every word maps to two compact keys: a primary key where the sibilant and
// affricate families (s, z, ç, c, ti, ...) collapse into one class, and a
// secondary key where the voiced family (g, gj, di, s, ...) collapses instead.
// Two spellings are considered confusable when any of their keys match. The
// functions here are pure and total: they accept arbitrary input, including
// misspellings, and always return the same keys for the same string.
package phonetic

import (
	"regexp"
	"strings"
)

// Rule cascade notes: substitutions run strictly in order, each pass consuming
// the longest match first. Reordering them changes the produced keys and
// breaks compatibility with the reference hashes.

var (
	apostropheRE = regexp.MustCompile(`['` + "`" + `´′ʼʹ\x{0091}\x{0092}\x{2018}\x{2019}]+`)
	// The second alternative matches the literal text "$slash_W", a quirk
	// inherited from the legacy encoder. Kept as is for hash compatibility.
	whitespaceRE = regexp.MustCompile(`\s+|\$slash_W+`)
)

// EncodePair returns the primary and secondary phonetic keys for word.
func EncodePair(word string) (string, string) {
	if word == "" {
		return "", ""
	}

	s := apostropheRE.ReplaceAllString(word, "'")
	s = strings.Replace(s, "e ", "'", 1)
	s = whitespaceRE.ReplaceAllString(s, "")
	s = squeeze(s)
	s = strings.ToLower(s)

	s = strings.ReplaceAll(s, "h'", "K")

	// Accented vowels and apostrophe-vowel pairs collapse to the bare vowel.
	for _, p := range [...][2]string{
		{"à", "a"}, {"â", "a"}, {"á", "a"}, {"'a", "a"},
		{"è", "e"}, {"ê", "e"}, {"é", "e"}, {"'e", "e"},
		{"ì", "i"}, {"î", "i"}, {"í", "i"}, {"'i", "i"},
		{"ò", "o"}, {"ô", "o"}, {"ó", "o"}, {"'o", "o"},
		{"ù", "u"}, {"û", "u"}, {"ú", "u"}, {"'u", "u"},
	} {
		s = strings.ReplaceAll(s, p[0], p[1])
	}

	s = strings.ReplaceAll(s, "çi", "ci")
	s = strings.ReplaceAll(s, "çe", "ce")

	s = subSuffix(s, "ds", "ts")
	s = strings.ReplaceAll(s, "sci", "ssi")
	s = strings.ReplaceAll(s, "sce", "se")

	s = squeeze(s)

	s = strings.ReplaceAll(s, "w", "")
	s = strings.ReplaceAll(s, "y", "")
	s = strings.ReplaceAll(s, "x", "")

	s = subPrefix(s, "che", "chi")
	s = strings.ReplaceAll(s, "h", "")

	s = strings.ReplaceAll(s, "leng", "X")
	s = strings.ReplaceAll(s, "lingu", "X")
	s = strings.ReplaceAll(s, "amentri", "O")
	s = strings.ReplaceAll(s, "ementri", "O")
	s = strings.ReplaceAll(s, "amenti", "O")
	s = strings.ReplaceAll(s, "ementi", "O")
	s = strings.ReplaceAll(s, "uintri", "W")
	s = strings.ReplaceAll(s, "ontra", "W")

	s = strings.ReplaceAll(s, "ur", "Y")
	s = strings.ReplaceAll(s, "uar", "Y")
	s = strings.ReplaceAll(s, "or", "Y")

	s = subPrefix(s, "'s", "s")
	s = subPrefix(s, "'n", "n")

	for _, end := range [...]string{"ins", "in", "ims", "im", "gns", "gn"} {
		s = subSuffix(s, end, "1")
	}

	s = strings.ReplaceAll(s, "mn", "5")
	s = strings.ReplaceAll(s, "nm", "5")
	s = strings.ReplaceAll(s, "m", "5")
	s = strings.ReplaceAll(s, "n", "5")

	s = strings.ReplaceAll(s, "er", "2")
	s = strings.ReplaceAll(s, "ar", "2")

	s = subSuffix(s, "b", "3")
	s = subSuffix(s, "p", "3")
	s = subSuffix(s, "v", "4")
	s = subSuffix(s, "f", "4")

	primo := s
	secondo := s

	// Primary key: the whole sibilant/affricate family becomes class A.
	primo = strings.ReplaceAll(primo, "'c", "A")
	primo = subSuffix(primo, "cjus", "A")
	primo = subSuffix(primo, "cius", "A")
	primo = subSuffix(primo, "cju", "A")
	primo = subSuffix(primo, "ciu", "A")
	primo = strings.ReplaceAll(primo, "c'", "A")
	for _, pat := range [...]string{"ti", "ci", "si", "zs", "zi", "cj", "çs", "tz", "z", "ç", "c", "q", "k", "ts", "s"} {
		primo = strings.ReplaceAll(primo, pat, "A")
	}

	// Secondary key: final velars become 0, the voiced family becomes E.
	secondo = subSuffix(secondo, "c", "0")
	secondo = subSuffix(secondo, "g", "0")
	for _, end := range [...]string{"bs", "cs", "fs", "gs", "ps", "vs"} {
		secondo = subSuffix(secondo, end, "s")
	}
	secondo = replaceDiNonFinal(secondo)
	for _, pat := range [...]string{"gji", "gi", "gj", "g", "ts", "s", "zi", "z"} {
		secondo = strings.ReplaceAll(secondo, pat, "E")
	}

	primo = strings.ReplaceAll(primo, "j", "i")
	secondo = strings.ReplaceAll(secondo, "j", "i")

	primo = squeezeRune(primo, 'i')
	secondo = squeezeRune(secondo, 'i')

	primo = vowelClasses(primo)
	secondo = vowelClasses(secondo)

	primo = dentalClasses(primo)
	secondo = dentalClasses(secondo)

	return primo, secondo
}

// Encode returns the primary phonetic key for word.
func Encode(word string) string {
	primo, _ := EncodePair(word)
	return primo
}

// Similar reports whether two words share at least one phonetic key.
func Similar(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	a1, a2 := EncodePair(a)
	b1, b2 := EncodePair(b)
	return a1 == b1 || a1 == b2 || a2 == b1 || a2 == b2
}

func vowelClasses(s string) string {
	s = strings.ReplaceAll(s, "ai", "6")
	s = strings.ReplaceAll(s, "a", "6")
	s = strings.ReplaceAll(s, "ei", "7")
	s = strings.ReplaceAll(s, "e", "7")
	s = strings.ReplaceAll(s, "ou", "8")
	s = strings.ReplaceAll(s, "oi", "8")
	s = strings.ReplaceAll(s, "o", "8")
	s = strings.ReplaceAll(s, "vu", "8")
	s = strings.ReplaceAll(s, "u", "8")
	s = strings.ReplaceAll(s, "i", "7")
	return s
}

func dentalClasses(s string) string {
	s = subPrefix(s, "t", "H")
	s = subPrefix(s, "d", "I")
	s = strings.ReplaceAll(s, "t", "9")
	s = strings.ReplaceAll(s, "d", "9")
	return s
}

// squeeze collapses runs of identical runes to a single occurrence.
func squeeze(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var prev rune = -1
	for _, r := range s {
		if r != prev {
			b.WriteRune(r)
		}
		prev = r
	}
	return b.String()
}

// squeezeRune collapses runs of one specific rune only.
func squeezeRune(s string, target rune) string {
	var b strings.Builder
	b.Grow(len(s))
	var prev rune = -1
	for _, r := range s {
		if r == target && prev == target {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

func subPrefix(s, old, repl string) string {
	if strings.HasPrefix(s, old) {
		return repl + s[len(old):]
	}
	return s
}

func subSuffix(s, old, repl string) string {
	if strings.HasSuffix(s, old) {
		return s[:len(s)-len(old)] + repl
	}
	return s
}

// replaceDiNonFinal rewrites every "di" that is not at the end of the string
// to "E", scanning left to right without overlap.
func replaceDiNonFinal(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if i+2 < len(s) && s[i] == 'd' && s[i+1] == 'i' {
			b.WriteByte('E')
			i += 2
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}
