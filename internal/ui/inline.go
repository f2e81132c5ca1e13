package ui

import (
	"fmt"
	"io"

	"github.com/atomicstack/fjsf/internal/terminal"
	"github.com/atomicstack/fjsf/internal/theme"
	uistate "github.com/atomicstack/fjsf/internal/ui/state"
)

// DefaultInlineMaxVisible is the row cap of the inline widget.
const DefaultInlineMaxVisible = 8

// Inline draws a compact picker below the cursor line, one line per match.
// Each frame replaces the previous one in place; the cursor is left on the
// frame's last line between renders.
type Inline[T any] struct {
	w          io.Writer
	row        func(T) Row
	maxVisible int
	width      int
	styles     *theme.Styles
	lines      int
}

// NewInline returns an inline renderer writing to w. A maxVisible of zero
// uses DefaultInlineMaxVisible; width zero disables truncation.
func NewInline[T any](w io.Writer, row func(T) Row, maxVisible, width int, styles *theme.Styles) *Inline[T] {
	if maxVisible <= 0 {
		maxVisible = DefaultInlineMaxVisible
	}
	if styles == nil {
		styles = theme.Default()
	}
	return &Inline[T]{w: w, row: row, maxVisible: maxVisible, width: width, styles: styles}
}

// Render replaces the previous frame with one for s.
func (r *Inline[T]) Render(s uistate.State[T]) {
	frame := r.Frame(s)
	terminal.ClearFrame(r.w, r.lines)
	for _, line := range frame {
		io.WriteString(r.w, "\r\n"+line)
	}
	r.lines = len(frame)
}

// Clear erases the last frame and returns the cursor to the anchor line.
func (r *Inline[T]) Clear() {
	terminal.ClearFrame(r.w, r.lines)
	r.lines = 0
}

// Frame returns the lines Render would draw for s.
func (r *Inline[T]) Frame(s uistate.State[T]) []string {
	styles := r.styles
	matches := s.Matches()
	if len(matches) == 0 {
		return []string{theme.Render(styles.More, "No matches")}
	}
	selected := s.SelectedIndex()
	win := uistate.VisibleWindow(len(matches), selected, r.maxVisible)
	lines := make([]styledLine, 0, win.Len()+1)
	for idx := win.Start; idx < win.End; idx++ {
		match := matches[idx]
		indicator := " "
		titleStyle := styles.Item
		if idx == selected {
			indicator = theme.Render(styles.SelectedIndicator, selectedMarker)
			titleStyle = styles.SelectedItem
		}
		text := indicator + " " + formatRow(r.row(match.Item), match.Positions, titleStyle, styles)
		lines = append(lines, styledLine{text: text, raw: true})
	}
	if n := uistate.Remaining(len(matches), r.maxVisible); n > 0 {
		lines = append(lines, styledLine{text: fmt.Sprintf("... %d more", n), style: styles.More})
	}
	lines = applyWidth(lines, r.width)
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = renderLines([]styledLine{line})
	}
	return out
}
