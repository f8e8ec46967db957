package utils

import (
	"unicode"
)

// IsOnlyNumbers checks if a string consists entirely of numeric digits
func IsOnlyNumbers(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// IsWordToken reports whether a rune can appear inside a Friulian word token.
// Letters cover the accented vowels and ç; apostrophes mark elisions and
// hyphens join compounds.
func IsWordToken(r rune) bool {
	return unicode.IsLetter(r) || r == '\'' || r == '-'
}

// IsValidInput checks if input should be processed for spell checking.
// Returns false for empty strings, digit runs, and anything carrying
// characters that never occur in a word token.
func IsValidInput(s string) bool {
	if len(s) == 0 {
		return false
	}
	if IsOnlyNumbers(s) {
		return false
	}
	for _, r := range s {
		if !IsWordToken(r) {
			return false
		}
	}
	return true
}
