package frameworks

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

const (
	markStart = "[==]"
	markEnd   = "[!==]"
)

// Highlight marks the portion of the display name matching keyword. Exact
// matching marks the first case-insensitive occurrence; fuzzy matching marks
// the keyword's characters in order wherever they appear. Every marked
// character is wrapped on its own. An empty keyword clears the highlight.
func (s *Suite) Highlight(keyword string, exact bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keyword == "" {
		s.highlighted = ""
		return
	}

	name := s.relativePathLocked()
	if exact {
		s.highlighted = highlightExact(name, keyword)
		return
	}
	s.highlighted = highlightFuzzy(name, keyword)
}

// Highlighted returns the marked display name.
func (s *Suite) Highlighted() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.highlighted
}

func (s *Suite) IsHighlighted() bool {
	return s.Highlighted() != ""
}

func highlightExact(name, keyword string) string {
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(keyword))
	loc := re.FindStringIndex(name)
	if loc == nil {
		return name
	}
	return name[:loc[0]] + mark(name[loc[0]:loc[1]]) + name[loc[1]:]
}

func highlightFuzzy(name, keyword string) string {
	pending := []rune(keyword)

	var b strings.Builder
	for _, char := range name {
		if len(pending) > 0 && unicode.ToUpper(char) == unicode.ToUpper(pending[0]) {
			pending = pending[1:]
			b.WriteString(markStart)
			b.WriteRune(char)
			b.WriteString(markEnd)
			continue
		}
		b.WriteRune(char)
	}
	return b.String()
}

func mark(match string) string {
	var b strings.Builder
	for _, char := range match {
		b.WriteString(markStart)
		b.WriteRune(char)
		b.WriteString(markEnd)
	}
	return b.String()
}

// RenderHighlight replaces highlight markers with style applied to each
// marked character.
func RenderHighlight(marked string, style lipgloss.Style) string {
	var b strings.Builder
	for {
		start := strings.Index(marked, markStart)
		if start < 0 {
			b.WriteString(marked)
			return b.String()
		}
		end := strings.Index(marked[start:], markEnd)
		if end < 0 {
			b.WriteString(marked)
			return b.String()
		}
		b.WriteString(marked[:start])
		b.WriteString(style.Render(marked[start+len(markStart) : start+end]))
		marked = marked[start+end+len(markEnd):]
	}
}
