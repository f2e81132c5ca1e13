package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Title             *lipgloss.Style
	Item              *lipgloss.Style
	ItemIndicator     *lipgloss.Style
	SelectedIndicator *lipgloss.Style
	SelectedItem      *lipgloss.Style
	Highlight         *lipgloss.Style
	Tag               *lipgloss.Style
	Detail            *lipgloss.Style
	SelectedDetail    *lipgloss.Style
	More              *lipgloss.Style
	Error             *lipgloss.Style
	Info              *lipgloss.Style
	Footer            *lipgloss.Style
	Filter            *lipgloss.Style
	FilterPrompt      *lipgloss.Style
	FilterPlaceholder *lipgloss.Style
	Cursor            *lipgloss.Style
	Running           *lipgloss.Style
}

var defaultStyles = New(lipgloss.DefaultRenderer())

// New builds the style set against r, which decides the color profile. The
// inline picker renders to the controlling terminal rather than stdout and
// passes a renderer bound to it.
func New(r *lipgloss.Renderer) Styles {
	return Styles{
		Title: ptr(
			r.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		),
		Item: ptr(
			r.NewStyle().Foreground(lipgloss.Color("249")),
		),
		ItemIndicator: ptr(
			r.NewStyle().Foreground(lipgloss.Color("238")),
		),
		SelectedIndicator: ptr(
			r.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		),
		SelectedItem: ptr(
			r.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		),
		Highlight: ptr(
			r.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		),
		Tag: ptr(
			r.NewStyle().Foreground(lipgloss.Color("241")),
		),
		Detail: ptr(
			r.NewStyle().Foreground(lipgloss.Color("243")),
		),
		SelectedDetail: ptr(
			r.NewStyle().Foreground(lipgloss.Color("36")),
		),
		More: ptr(
			r.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		),
		Error: ptr(
			r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		),
		Info: ptr(
			r.NewStyle().Foreground(lipgloss.Color("249")),
		),
		Footer: ptr(
			r.NewStyle().Foreground(lipgloss.Color("241")),
		),
		Filter: ptr(
			r.NewStyle().Foreground(lipgloss.Color("255")),
		),
		FilterPrompt: ptr(
			r.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
		),
		FilterPlaceholder: ptr(
			r.NewStyle().Foreground(lipgloss.Color("241")),
		),
		Cursor: ptr(
			r.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Blink(true),
		),
		Running: ptr(
			r.NewStyle().Foreground(lipgloss.Color("36")).Bold(true),
		),
	}
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// Render applies style to text, tolerating a nil style.
func Render(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
