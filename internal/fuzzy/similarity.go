package fuzzy

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

const DefaultThreshold = 0.7

// Similarity returns 1 - levenshtein(a, b) / max(len(a), len(b)) computed
// case-insensitively over runes.
func Similarity(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la == 0 && lb == 0 {
		return 1
	}
	if la == 0 || lb == 0 {
		return 0
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(max(la, lb))
}

// Match reports whether text is at least threshold similar to pattern.
// A blank pattern matches everything.
func Match(text, pattern string, threshold float64) bool {
	if strings.TrimSpace(pattern) == "" {
		return true
	}
	if text == "" {
		return false
	}
	return Similarity(text, pattern) >= threshold
}

// Search ranks items by similarity to query, best first.
func Search(query string, items []string, threshold float64) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return []string{}
	}
	type scored struct {
		item  string
		score float64
	}
	matches := make([]scored, 0, len(items))
	for _, item := range items {
		score := Similarity(query, item)
		if score >= threshold {
			matches = append(matches, scored{item: item, score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.item)
	}
	return out
}
