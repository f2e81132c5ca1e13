package ui

import (
	"reflect"

	"github.com/atomicstack/fjsf/internal/logging/events"
	"github.com/atomicstack/fjsf/internal/session"
	"github.com/atomicstack/fjsf/internal/theme"
	uistate "github.com/atomicstack/fjsf/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultMaxVisible is the row cap of the full-screen picker.
const DefaultMaxVisible = 10

// Row is the display form of one item. The search text of an item is
// expected to be Title, a space, then Tag, so match positions can be mapped
// back onto the two fields.
type Row struct {
	Title  string
	Tag    string
	Detail string
}

// Options configures a picker.
type Options[T any] struct {
	Title        string
	Items        []T
	Text         func(T) string
	Row          func(T) Row
	MaxVisible   int
	Width        int
	Height       int
	ShowFooter   bool
	InitialQuery string
	Styles       *theme.Styles
}

type msgHandler func(tea.Msg) tea.Cmd

// Model implements the Bubble Tea model for the full-screen picker.
type Model[T any] struct {
	title             string
	row               func(T) Row
	state             uistate.State[T]
	outcome           uistate.Outcome
	maxVisible        int
	width             int
	height            int
	fixedWidth        bool
	fixedHeight       bool
	showFooter        bool
	styles            *theme.Styles
	filterCursor      cursor.Model
	filterCursorDirty bool
	focused           bool

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the picker for opts.Items.
func NewModel[T any](opts Options[T]) *Model[T] {
	s := uistate.New(opts.Items, opts.Text)
	if opts.InitialQuery != "" {
		s = s.WithQuery(opts.InitialQuery)
	}
	m := &Model[T]{
		title:      opts.Title,
		row:        opts.Row,
		state:      s,
		maxVisible: opts.MaxVisible,
		showFooter: opts.ShowFooter,
		styles:     opts.Styles,
	}
	if m.maxVisible <= 0 {
		m.maxVisible = DefaultMaxVisible
	}
	if m.styles == nil {
		m.styles = theme.Default()
	}
	if m.row == nil {
		m.row = func(item T) Row { return Row{Title: opts.Text(item)} }
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if m.styles.Cursor != nil {
		c.Style = m.styles.Cursor.Copy()
	}
	if m.styles.Filter != nil {
		c.TextStyle = m.styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	events.Session.Start(len(opts.Items), s.Query())
	return m
}

// Init is part of the tea.Model interface.
func (m *Model[T]) Init() tea.Cmd {
	m.focused = true
	return m.filterCursor.Focus()
}

// Update responds to Bubble Tea messages.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model[T]) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
	}
}

func (m *Model[T]) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model[T]) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		// blinking only runs once the program has focused the caret
		if m.focused {
			m.filterCursor.Blink = false
			if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// State returns the current session snapshot.
func (m *Model[T]) State() uistate.State[T] { return m.state }

// Result returns the final selection once the program has quit.
func (m *Model[T]) Result() session.Result[T] {
	res := session.Result[T]{Outcome: m.outcome}
	if m.outcome == uistate.Confirmed {
		res.Item, res.Found = m.state.Selected()
	}
	if m.outcome == uistate.Active {
		res.Outcome = uistate.Exited
	}
	return res
}
