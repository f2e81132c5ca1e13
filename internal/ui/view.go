package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/fjsf/internal/fuzzy"
	"github.com/atomicstack/fjsf/internal/logging/events"
	"github.com/atomicstack/fjsf/internal/theme"
	uistate "github.com/atomicstack/fjsf/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	selectedMarker = "❯"
	footerHint     = "↑/↓ move  enter select  backspace delete  esc quit"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model[T]) View() string {
	if m.outcome != uistate.Active {
		return ""
	}
	styles := m.styles
	lines := make([]styledLine, 0, 32)
	if m.title != "" {
		lines = append(lines, styledLine{text: m.title, style: styles.Title}, styledLine{})
	}
	lines = append(lines, styledLine{text: m.filterPrompt(), raw: true}, styledLine{})

	matches := m.state.Matches()
	visible := m.maxVisibleItems()
	if len(matches) == 0 {
		msg := "No matches"
		if q := m.state.Query(); q != "" {
			msg = fmt.Sprintf("No matches for %q", q)
		}
		lines = append(lines, styledLine{text: msg, style: styles.Info})
	} else {
		selected := m.state.SelectedIndex()
		win := uistate.VisibleWindow(len(matches), selected, visible)
		for idx := win.Start; idx < win.End; idx++ {
			lines = append(lines, m.buildItemLines(matches[idx], idx == selected)...)
		}
	}
	if n := uistate.Remaining(len(matches), visible); n > 0 {
		lines = append(lines, styledLine{}, styledLine{text: fmt.Sprintf("... %d more", n), style: styles.More})
	}
	if m.showFooter {
		lines = append(lines, styledLine{}, styledLine{text: footerHint, style: styles.Footer})
	}
	lines = limitHeight(lines, m.height, m.width)
	lines = applyWidth(lines, m.width)
	return renderLines(lines)
}

// buildItemLines renders a match as its title row and an indented detail row.
func (m *Model[T]) buildItemLines(match fuzzy.Match[T], selected bool) []styledLine {
	styles := m.styles
	row := m.row(match.Item)
	indicator := theme.Render(styles.ItemIndicator, " ")
	titleStyle := styles.Item
	detailStyle := styles.Detail
	if selected {
		indicator = theme.Render(styles.SelectedIndicator, selectedMarker)
		titleStyle = styles.SelectedItem
		detailStyle = styles.SelectedDetail
	}
	head := indicator + " " + formatRow(row, match.Positions, titleStyle, styles)
	out := []styledLine{{text: head, raw: true}}
	if row.Detail != "" {
		out = append(out, styledLine{text: "  " + row.Detail, style: detailStyle, highlightFrom: 2})
	}
	return out
}

// formatRow renders "title [tag]" with matched positions highlighted in both
// fields.
func formatRow(row Row, positions []int, titleStyle *lipgloss.Style, styles *theme.Styles) string {
	titleLen := len([]rune(row.Title))
	var titleHits, tagHits []int
	for _, p := range positions {
		switch {
		case p < titleLen:
			titleHits = append(titleHits, p)
		case p > titleLen:
			tagHits = append(tagHits, p-titleLen-1)
		}
	}
	text := highlight(row.Title, titleHits, titleStyle, styles.Highlight)
	if row.Tag != "" {
		tag := theme.Render(styles.Tag, "[") +
			highlight(row.Tag, tagHits, styles.Tag, styles.Highlight) +
			theme.Render(styles.Tag, "]")
		text += " " + tag
	}
	return text
}

// highlight styles the runes at positions with hit and everything else with
// base, grouping runs so each span is rendered once.
func highlight(text string, positions []int, base, hit *lipgloss.Style) string {
	if len(positions) == 0 {
		return theme.Render(base, text)
	}
	marked := make(map[int]bool, len(positions))
	for _, p := range positions {
		marked[p] = true
	}
	runes := []rune(text)
	var b strings.Builder
	start := 0
	for i := 1; i <= len(runes); i++ {
		if i < len(runes) && marked[i] == marked[start] {
			continue
		}
		style := base
		if marked[start] {
			style = hit
		}
		b.WriteString(theme.Render(style, string(runes[start:i])))
		start = i
	}
	return b.String()
}

func (m *Model[T]) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	events.UI.Resize(m.width, m.height, m.maxVisibleItems())
	return nil
}

// maxVisibleItems returns how many two-line rows fit, capped by the
// configured maximum.
func (m *Model[T]) maxVisibleItems() int {
	if m.height <= 0 {
		return m.maxVisible
	}
	used := 2 // prompt + blank
	if m.title != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	avail := m.height - used
	rows := min(avail/2, m.maxVisible)
	if total := len(m.state.Matches()); total > rows {
		// reserve the blank + "... N more" pair
		rows = min((avail-2)/2, m.maxVisible)
	}
	if rows < 1 {
		return 1
	}
	return rows
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if ansi.StringWidth(text) > width {
				text = ansi.Truncate(text, width, "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{
			text:          text,
			style:         line.style,
			highlightFrom: line.highlightFrom,
			raw:           line.raw,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	if ansi.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return string([]rune(text)[:1])
	}
	return ansi.Truncate(text, width, "…")
}
