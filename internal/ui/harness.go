package ui

import tea "github.com/charmbracelet/bubbletea"

// Harness drives the picker model programmatically for tests.
type Harness[T any] struct {
	model *Model[T]
}

// NewHarness creates a harness for the provided model.
func NewHarness[T any](model *Model[T]) *Harness[T] {
	return &Harness[T]{model: model}
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness[T]) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model[T]); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

// Type sends each rune of text as a key press.
func (h *Harness[T]) Type(text string) {
	for _, r := range text {
		h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (h *Harness[T]) processCmd(cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		if _, quit := msg.(tea.QuitMsg); quit {
			return
		}
		mdl, next := h.model.Update(msg)
		if updated, ok := mdl.(*Model[T]); ok {
			h.model = updated
		}
		cmd = next
	}
}

// View returns the current view string.
func (h *Harness[T]) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness[T]) Model() *Model[T] {
	return h.model
}
