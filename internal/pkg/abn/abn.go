package abn

import (
	"strings"
	"unicode"
)

const Length = 11

// Clean strips every non-digit character.
func Clean(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func IsValid(s string) bool {
	return len(Clean(s)) == Length
}

// Format renders an ABN as "11 222 333 444". Input that does not hold exactly
// eleven digits is returned unchanged.
func Format(s string) string {
	digits := Clean(s)
	if len(digits) != Length {
		return s
	}
	return digits[:2] + " " + digits[2:5] + " " + digits[5:8] + " " + digits[8:]
}

// LooksLike reports whether a search token is plausibly an ABN fragment.
func LooksLike(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
