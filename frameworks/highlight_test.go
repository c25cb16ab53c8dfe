package frameworks

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func suiteNamed(t *testing.T, name string) *Suite {
	t.Helper()
	s, err := NewSuite(SuiteOptions{Root: "/"}, SuiteResult{File: "/" + name})
	require.NoError(t, err)
	require.Equal(t, name, s.DisplayName())
	return s
}

func TestHighlight(t *testing.T) {
	tests := []struct {
		name    string
		display string
		keyword string
		exact   bool
		want    string
	}{
		{"fuzzy skips unmatched", "cab", "ab", false, "c[==]a[!==][==]b[!==]"},
		{"fuzzy ignores case", "Cab", "cB", false, "[==]C[!==]a[==]b[!==]"},
		{"fuzzy stops when keyword is used up", "aaa", "a", false, "[==]a[!==]aa"},
		{"fuzzy unmatched tail", "abc", "axyz", false, "[==]a[!==]bc"},
		{"exact marks each character", "xaby", "ab", true, "x[==]a[!==][==]b[!==]y"},
		{"exact ignores case", "xAby", "aB", true, "x[==]A[!==][==]b[!==]y"},
		{"exact marks first match only", "abab", "ab", true, "[==]a[!==][==]b[!==]ab"},
		{"exact keyword is literal", "a.spec", "a.s", true, "[==]a[!==][==].[!==][==]s[!==]pec"},
		{"exact without match", "xyz", "ab", true, "xyz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := suiteNamed(t, tt.display)
			s.Highlight(tt.keyword, tt.exact)
			assert.Equal(t, tt.want, s.Highlighted())
			assert.True(t, s.IsHighlighted())
		})
	}
}

func TestHighlightEmptyKeywordClears(t *testing.T) {
	s := suiteNamed(t, "cab")
	s.Highlight("ab", false)
	require.True(t, s.IsHighlighted())

	s.Highlight("", true)
	assert.False(t, s.IsHighlighted())
	assert.Equal(t, "", s.Highlighted())
}

func TestRenderHighlight(t *testing.T) {
	style := lipgloss.NewStyle().Bold(true)

	got := RenderHighlight("x[==]a[!==][==]b[!==]y", style)
	assert.Equal(t, "x"+style.Render("a")+style.Render("b")+"y", got)

	assert.Equal(t, "plain", RenderHighlight("plain", style))
	assert.Equal(t, "x[==]a", RenderHighlight("x[==]a", style))
}
