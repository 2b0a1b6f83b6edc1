package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimilarityIdentityIgnoresCase(t *testing.T) {
	require.Equal(t, 1.0, Similarity("Sydney", "sydney"))
	require.Equal(t, 1.0, Similarity("", ""))
	require.Equal(t, 0.0, Similarity("abc", ""))
}

func TestSimilarityLowForUnrelated(t *testing.T) {
	require.Less(t, Similarity("abc", "xyz"), 0.3)
}

func TestSimilarityDecreasesWithDistance(t *testing.T) {
	one := Similarity("quality", "qualty")
	two := Similarity("quality", "qualy")
	three := Similarity("quality", "qaly")
	require.Greater(t, one, two)
	require.Greater(t, two, three)
	require.GreaterOrEqual(t, one, DefaultThreshold)
}

func TestSimilarityCountsRunes(t *testing.T) {
	require.Equal(t, 1.0, Similarity("Café", "CAFÉ"))
	require.InDelta(t, 0.75, Similarity("café", "cafe"), 1e-9)
}

func TestSimilarityEditDistance(t *testing.T) {
	require.InDelta(t, 1-3.0/7, Similarity("kitten", "sitting"), 1e-9)
	require.Equal(t, Similarity("kitten", "sitting"), Similarity("SITTING", "Kitten"))
}

func TestMatch(t *testing.T) {
	require.True(t, Match("anything", "  ", 0.9))
	require.False(t, Match("", "web", 0.1))
	require.True(t, Match("Construction", "constrution", 0.7))
	require.False(t, Match("Construction", "mining", 0.7))
}

func TestSearchRanksByScore(t *testing.T) {
	items := []string{"plumbing", "plumber", "planning", "electrician"}
	got := Search("plumber", items, 0.6)
	require.Equal(t, []string{"plumber", "plumbing"}, got)
	require.Empty(t, Search(" ", items, 0.1))
}

func TestHighlightSubstringPreservesCase(t *testing.T) {
	got := Highlight("Sydney Web Co", "web")
	require.Equal(t, []Segment{
		{Text: "Sydney "},
		{Text: "Web", Match: true},
		{Text: " Co"},
	}, got)
}

func TestHighlightOnlyFirstOccurrence(t *testing.T) {
	got := Highlight("web and web", "WEB")
	require.Equal(t, []Segment{
		{Text: "web", Match: true},
		{Text: " and web"},
	}, got)
}

func TestHighlightFuzzyWord(t *testing.T) {
	got := Highlight("Quality Experts", "qualty")
	require.Equal(t, []Segment{
		{Text: "Quality", Match: true},
		{Text: " Experts"},
	}, got)
}

func TestHighlightFuzzyKeepsWhitespace(t *testing.T) {
	got := Highlight("Best  Quality\tBuilders", "qualty")
	require.Equal(t, []Segment{
		{Text: "Best  "},
		{Text: "Quality", Match: true},
		{Text: "\tBuilders"},
	}, got)
}

func TestHighlightNoMatchReturnsWholeText(t *testing.T) {
	got := Highlight("Perth Mining", "zzz")
	require.Equal(t, []Segment{{Text: "Perth Mining"}}, got)
}

func TestHighlightEmptyQuery(t *testing.T) {
	require.Equal(t, []Segment{{Text: "Any text"}}, Highlight("Any text", ""))
	require.Equal(t, []Segment{{Text: "Any text"}}, Highlight("Any text", "   "))
}

func TestHighlightEmptyText(t *testing.T) {
	require.Nil(t, Highlight("", "web"))
}

func TestHighlightQueryLongerThanText(t *testing.T) {
	got := Highlight("Co", "company limited")
	require.Equal(t, []Segment{{Text: "Co"}}, got)
}

func TestHighlightBindings(t *testing.T) {
	name := HighlightName("Sydney Web Co", "web")
	require.Equal(t, NameClass, name.Class)
	require.Len(t, name.Segments, 3)

	desc := HighlightDescription("", "web")
	require.Equal(t, DescriptionClass, desc.Class)
	require.Nil(t, desc.Segments)
}

func TestRenderHTMLEscapes(t *testing.T) {
	segs := Highlight("<b>Web</b> & Co", "web")
	got := RenderHTML(segs, "hl")
	require.Equal(t, `&lt;b&gt;<mark class="hl">Web</mark>&lt;/b&gt; &amp; Co`, got)
}
