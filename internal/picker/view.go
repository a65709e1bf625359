package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/runger/skillpick/internal/match"
	"github.com/runger/skillpick/internal/sanitize"
	"github.com/runger/skillpick/internal/usage"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
	selectedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	normalStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	matchStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	queryStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	badgeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	selectedMarker = "> "
	normalMarker   = "  "
)

const (
	queuedBadge = "[queued]"
	// chrome is the rows used by title, query line and help footer.
	chrome = 3
	// fallbackWidth is used before the first WindowSizeMsg.
	fallbackWidth = 80
)

// View implements tea.Model.
func (m Model) View() string {
	if m.finished {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.viewTitle())
	b.WriteRune('\n')
	b.WriteString(m.viewQuery())
	b.WriteRune('\n')
	b.WriteString(m.viewList())
	b.WriteRune('\n')
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) viewTitle() string {
	title := titleStyle.Render("Skills")
	info := fmt.Sprintf(" %d/%d", m.state.Entries(), len(m.state.Catalog()))
	if q := m.state.Queued(); q != "" {
		info += " · queued: " + q
	}
	return title + dimStyle.Render(sanitize.Truncate(info, m.lineWidth()-runewidth.StringWidth("Skills")))
}

func (m Model) viewQuery() string {
	return queryStyle.Render("> ") + m.state.Query()
}

// viewList renders the window of the display list around the cursor.
func (m Model) viewList() string {
	display := m.state.Display()
	if len(display) == 0 {
		return dimStyle.Render("No matches")
	}

	start, end := window(len(display), m.state.Cursor(), m.listHeight())
	counts := recentCounts(m.state.Recents())
	pattern := ""
	if m.opts.HighlightMatches {
		pattern = highlightPattern(m.state.Query())
	}
	flat := strings.TrimSpace(m.state.Query()) != ""

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		d := display[i]
		if !d.IsEntry() {
			rows = append(rows, headerStyle.Render(sanitize.Truncate(d.Group, m.lineWidth())))
			continue
		}
		rows = append(rows, m.viewEntry(d, i == m.state.Cursor(), flat, pattern, counts))
	}
	return strings.Join(rows, "\n")
}

// viewEntry renders one selectable row:
//
//	> name  namespace  [queued] (3)  description
//
// The namespace is shown only for ranked results, which have no headers.
// The description takes whatever width is left.
func (m Model) viewEntry(d match.DisplayItem, selected, flat bool, pattern string, counts map[string]int) string {
	it := d.Item
	width := m.lineWidth()

	marker, base := normalMarker, normalStyle
	if selected {
		marker, base = selectedMarker, selectedStyle
	}

	name := sanitize.Truncate(it.Name, width-len(marker))
	used := len(marker) + runewidth.StringWidth(name)

	var b strings.Builder
	b.WriteString(base.Render(marker))
	if name == it.Name {
		b.WriteString(highlight(name, pattern, base, matchStyle))
	} else {
		b.WriteString(base.Render(name))
	}

	addDim := func(s string, style lipgloss.Style) {
		if s == "" || used+2+runewidth.StringWidth(s) > width {
			return
		}
		b.WriteString("  ")
		b.WriteString(style.Render(s))
		used += 2 + runewidth.StringWidth(s)
	}

	if flat {
		addDim(it.Namespace, dimStyle)
	}
	if it.Name == m.state.Queued() {
		addDim(queuedBadge, badgeStyle)
	}
	if d.Group == match.RecentGroup && counts[it.Name] > 1 {
		addDim(fmt.Sprintf("(%d)", counts[it.Name]), dimStyle)
	}
	if m.opts.ShowDescriptions && it.Description != "" && width-used-2 > 0 {
		addDim(sanitize.Truncate(it.Description, width-used-2), dimStyle)
	}
	return b.String()
}

// lineWidth returns the usable terminal width.
func (m Model) lineWidth() int {
	if m.width <= 0 {
		return fallbackWidth
	}
	return m.width
}

// listHeight returns the number of list rows to show: MaxVisible, further
// limited by the terminal height once known.
func (m Model) listHeight() int {
	h := m.opts.MaxVisible
	if m.height > 0 && m.height-chrome < h {
		h = m.height - chrome
	}
	if h < 1 {
		h = 1
	}
	return h
}

// window returns the half-open range of rows to show so that cursor is
// visible, keeping it near the middle where possible.
func window(n, cursor, size int) (int, int) {
	if n <= size {
		return 0, n
	}
	start := cursor - size/2
	if start < 0 {
		start = 0
	}
	if start > n-size {
		start = n - size
	}
	return start, start + size
}

func recentCounts(records []usage.Record) map[string]int {
	counts := make(map[string]int, len(records))
	for _, r := range records {
		counts[r.Name] = r.Count
	}
	return counts
}
