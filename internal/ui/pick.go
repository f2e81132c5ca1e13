package ui

import (
	"fmt"
	"os"

	"github.com/atomicstack/fjsf/internal/session"
	uistate "github.com/atomicstack/fjsf/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

// Pick runs the full-screen picker until the user confirms or exits. The
// interface is drawn on stderr so stdout stays free for the selected value.
func Pick[T any](opts Options[T], programOpts ...tea.ProgramOption) (session.Result[T], error) {
	model := NewModel(opts)
	base := []tea.ProgramOption{tea.WithAltScreen(), tea.WithOutput(os.Stderr)}
	p := tea.NewProgram(model, append(base, programOpts...)...)
	if _, err := p.Run(); err != nil {
		return session.Result[T]{Outcome: uistate.Exited}, fmt.Errorf("run picker: %w", err)
	}
	return model.Result(), nil
}
