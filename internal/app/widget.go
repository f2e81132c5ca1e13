package app

import (
	"context"
	"io"
	"os"

	"github.com/atomicstack/fjsf/internal/discovery"
	"github.com/atomicstack/fjsf/internal/executor"
	"github.com/atomicstack/fjsf/internal/logging"
	"github.com/atomicstack/fjsf/internal/logging/events"
	"github.com/atomicstack/fjsf/internal/session"
	"github.com/atomicstack/fjsf/internal/terminal"
	"github.com/atomicstack/fjsf/internal/theme"
	"github.com/atomicstack/fjsf/internal/ui"
	uistate "github.com/atomicstack/fjsf/internal/ui/state"
	"github.com/charmbracelet/lipgloss"
)

// Widget runs the inline picker below the shell prompt. Keys are read from
// stdin while the frame is drawn on the controlling terminal. The chosen
// script name is printed for the shell to insert, or the script is run when
// stdout is itself a terminal. Leaving without a selection exits 0.
func (a *App) Widget(ctx context.Context, query string) error {
	scripts := a.Discoverer.Scripts(a.Dir)
	events.App.Mode("widget", len(scripts))
	if len(scripts) == 0 {
		return nil
	}
	tty, err := terminal.OpenTTY()
	if err != nil {
		return err
	}
	defer tty.Close()

	restore, err := terminal.MakeRaw(tty)
	if err != nil {
		logging.Error(err)
	}
	width, _ := terminal.Size(tty)
	styles := theme.New(lipgloss.NewRenderer(tty))
	terminal.HideCursor(tty)
	res := a.runWidget(tty, scripts, query, width, &styles)
	terminal.ShowCursor(tty)
	restore()

	if res.Outcome != uistate.Confirmed || !res.Found {
		return nil
	}
	if f, ok := a.Stdout.(*os.File); ok && terminal.IsTerminal(f) {
		return a.run(ctx, a.Dir, executor.ScriptCommand(res.Item, executor.Detect(a.Dir)), "")
	}
	_, err = io.WriteString(a.Stdout, res.Item.Name)
	return err
}

// runWidget drives one inline session reading a.Stdin and drawing on out.
// The frame is cleared before returning.
func (a *App) runWidget(out io.Writer, scripts []discovery.ScriptEntry, query string, width int, styles *theme.Styles) session.Result[discovery.ScriptEntry] {
	inline := ui.NewInline(out, scriptRow, a.Config.WidgetMaxVisible, width, styles)
	res := session.Run(a.Stdin, scripts, discovery.ScriptEntry.SearchText, inline.Render, session.Options{InitialQuery: query})
	inline.Clear()
	return res
}
