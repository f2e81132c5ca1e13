package ui

import (
	"github.com/atomicstack/fjsf/internal/input"
	"github.com/atomicstack/fjsf/internal/logging/events"
	"github.com/atomicstack/fjsf/internal/theme"
	uistate "github.com/atomicstack/fjsf/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model[T]) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

// keyChunk re-encodes a Bubble Tea key as the raw bytes a terminal would
// have sent, so both front ends share one decoder.
func keyChunk(msg tea.KeyMsg) []byte {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []byte{0x03}
	case tea.KeyEsc:
		return []byte{0x1b}
	case tea.KeyEnter:
		return []byte{'\r'}
	case tea.KeyUp:
		return []byte("\x1b[A")
	case tea.KeyDown:
		return []byte("\x1b[B")
	case tea.KeyBackspace, tea.KeyCtrlH:
		return []byte{0x7f}
	case tea.KeySpace:
		return []byte{' '}
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return nil
		}
		return []byte(string(msg.Runes))
	}
	return nil
}

func (m *Model[T]) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.outcome != uistate.Active {
		return nil
	}
	key := input.Decode(keyChunk(keyMsg))
	events.UI.Key(keyMsg.String(), key.Action.String())
	before := m.state
	next, outcome := uistate.Apply(m.state, key)
	m.state = next
	switch outcome {
	case uistate.Exited:
		m.outcome = outcome
		events.Session.Exit(events.SessionReasonKey, nil)
		return tea.Quit
	case uistate.Confirmed:
		m.outcome = outcome
		_, found := next.Selected()
		events.Session.Confirm(next.SelectedIndex(), found)
		return tea.Quit
	}
	if before.Query() != next.Query() {
		m.filterCursorDirty = true
		events.Session.Query(next.Query(), len(next.Matches()))
	} else if before.SelectedIndex() != next.SelectedIndex() {
		events.Session.Move(next.SelectedIndex())
	}
	return nil
}

func (m *Model[T]) filterPrompt() string {
	styles := m.styles
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	prompt := theme.Render(styles.FilterPrompt, "Search: ")
	query := m.state.Query()
	if query == "" {
		placeholder := []rune("(type to search)")
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		caret := m.renderFilterCursor(string(placeholder[0]))
		return prompt + caret + theme.Render(styles.FilterPlaceholder, string(placeholder[1:]))
	}
	// the query is append-only so the caret always trails it
	return prompt + theme.Render(styles.Filter, query) + m.renderFilterCursor(" ")
}

func (m *Model[T]) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Copy()
	base = base.Inline(true)

	if m.filterCursor.Blink {
		return base.Render(char)
	}

	if m.styles.Cursor != nil {
		cursorStyle := m.styles.Cursor.Copy().Inline(true)
		base = base.Inherit(cursorStyle).Blink(false)
		return base.Render(char)
	}

	return base.Reverse(true).Render(char)
}
