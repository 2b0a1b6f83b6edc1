package fuzzy

import (
	"html"
	"strings"
	"unicode"
)

const (
	NameClass        = "bg-yellow-200 font-semibold"
	DescriptionClass = "bg-yellow-100"
)

type Segment struct {
	Text  string `json:"text"`
	Match bool   `json:"match"`
}

type Highlighted struct {
	Segments []Segment `json:"segments"`
	Class    string    `json:"class"`
}

// Highlight splits text into matched and plain segments. An exact
// case-insensitive substring hit wins; otherwise every whitespace-separated
// word at least DefaultThreshold similar to the query is marked.
func Highlight(text, query string) []Segment {
	if text == "" {
		return nil
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return []Segment{{Text: text}}
	}
	if segs, ok := highlightSubstring(text, query); ok {
		return segs
	}
	return highlightWords(text, query)
}

func HighlightName(name, query string) Highlighted {
	return Highlighted{Segments: Highlight(name, query), Class: NameClass}
}

func HighlightDescription(description, query string) Highlighted {
	return Highlighted{Segments: Highlight(description, query), Class: DescriptionClass}
}

func highlightSubstring(text, query string) ([]Segment, bool) {
	tr := []rune(text)
	lt := lowerRunes(text)
	lq := lowerRunes(query)
	idx := indexRunes(lt, lq)
	if idx < 0 {
		return nil, false
	}
	end := idx + len(lq)
	segs := make([]Segment, 0, 3)
	segs = appendSegment(segs, string(tr[:idx]), false)
	segs = appendSegment(segs, string(tr[idx:end]), true)
	segs = appendSegment(segs, string(tr[end:]), false)
	return segs, true
}

func highlightWords(text, query string) []Segment {
	segs := make([]Segment, 0)
	rs := []rune(text)
	start := 0
	for start < len(rs) {
		end := start
		space := unicode.IsSpace(rs[start])
		for end < len(rs) && unicode.IsSpace(rs[end]) == space {
			end++
		}
		piece := string(rs[start:end])
		match := !space && Similarity(piece, query) >= DefaultThreshold
		segs = appendSegment(segs, piece, match)
		start = end
	}
	return segs
}

// appendSegment drops empty text and merges consecutive plain pieces.
func appendSegment(segs []Segment, text string, match bool) []Segment {
	if text == "" {
		return segs
	}
	if n := len(segs); n > 0 && !match && !segs[n-1].Match {
		segs[n-1].Text += text
		return segs
	}
	return append(segs, Segment{Text: text, Match: match})
}

func indexRunes(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j := range needle {
			if haystack[i+j] != needle[j] {
				continue outer
			}
		}
		return i
	}
	return -1
}

// RenderHTML escapes every segment and wraps matches in a <mark> element.
func RenderHTML(segs []Segment, class string) string {
	var sb strings.Builder
	for _, seg := range segs {
		if !seg.Match {
			sb.WriteString(html.EscapeString(seg.Text))
			continue
		}
		sb.WriteString("<mark")
		if class != "" {
			sb.WriteString(` class="`)
			sb.WriteString(html.EscapeString(class))
			sb.WriteString(`"`)
		}
		sb.WriteString(">")
		sb.WriteString(html.EscapeString(seg.Text))
		sb.WriteString("</mark>")
	}
	return sb.String()
}

func lowerRunes(s string) []rune {
	rs := []rune(s)
	for i, r := range rs {
		rs[i] = unicode.ToLower(r)
	}
	return rs
}
