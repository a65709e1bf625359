package picker

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// highlightPattern returns the part of query that is matched against skill
// names: the text after the first colon of a "namespace:name" query.
func highlightPattern(query string) string {
	q := strings.TrimSpace(query)
	if _, name, ok := strings.Cut(q, ":"); ok {
		q = strings.TrimSpace(name)
	}
	return strings.ToLower(q)
}

// matchedPositions returns the byte offsets in name of the characters
// matched by pattern, or nil when pattern does not match.
func matchedPositions(pattern, name string) map[int]bool {
	if pattern == "" {
		return nil
	}
	matches := fuzzy.Find(pattern, []string{name})
	if len(matches) == 0 {
		return nil
	}
	pos := make(map[int]bool, len(matches[0].MatchedIndexes))
	for _, i := range matches[0].MatchedIndexes {
		pos[i] = true
	}
	return pos
}

// highlight renders name with base, switching to match for the characters
// pattern matches.
func highlight(name, pattern string, base, match lipgloss.Style) string {
	pos := matchedPositions(pattern, name)
	if len(pos) == 0 {
		return base.Render(name)
	}

	var b strings.Builder
	var run strings.Builder
	inMatch := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if inMatch {
			b.WriteString(match.Render(run.String()))
		} else {
			b.WriteString(base.Render(run.String()))
		}
		run.Reset()
	}

	for i, r := range name {
		if pos[i] != inMatch {
			flush()
			inMatch = pos[i]
		}
		run.WriteRune(r)
	}
	flush()
	return b.String()
}
