package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atomicstack/fjsf/internal/cache"
	"github.com/atomicstack/fjsf/internal/discovery"
	"github.com/atomicstack/fjsf/internal/executor"
	"github.com/atomicstack/fjsf/internal/format/table"
	"github.com/atomicstack/fjsf/internal/fuzzy"
	"github.com/atomicstack/fjsf/internal/jsondoc"
	"github.com/atomicstack/fjsf/internal/logging/events"
	"github.com/atomicstack/fjsf/internal/session"
	"github.com/atomicstack/fjsf/internal/theme"
	"github.com/atomicstack/fjsf/internal/ui"
	uistate "github.com/atomicstack/fjsf/internal/ui/state"
)

const (
	DefaultMaxVisible       = ui.DefaultMaxVisible
	DefaultWidgetMaxVisible = ui.DefaultInlineMaxVisible

	titleBase = "Fuzzy JSON Search & Filter"
)

// Config describes user-provided application options.
type Config struct {
	Width            int
	Height           int
	MaxVisible       int
	WidgetMaxVisible int
	ShowFooter       bool
}

// ExitError ends the process with Code. Message, when set, is printed to
// stderr as is.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func exitStatus(code int) error {
	if code == 0 {
		return nil
	}
	return &ExitError{Code: code}
}

// Picker runs an interactive session over items.
type Picker[T any] func(ui.Options[T]) (session.Result[T], error)

// App wires discovery, the pickers and the executor for one invocation.
type App struct {
	Config     Config
	Dir        string
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
	Discoverer *discovery.Discoverer
	Runner     executor.Runner
	PickScript Picker[discovery.ScriptEntry]
	PickEntry  Picker[discovery.JSONEntry]
}

// New returns an App rooted at the working directory using the process's
// stdio and the full-screen picker.
func New(cfg Config) (*App, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	return &App{
		Config:     cfg,
		Dir:        dir,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Discoverer: discovery.New(cache.New()),
		Runner:     executor.Runner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr},
		PickScript: pick[discovery.ScriptEntry],
		PickEntry:  pick[discovery.JSONEntry],
	}, nil
}

func pick[T any](opts ui.Options[T]) (session.Result[T], error) {
	return ui.Pick(opts)
}

func scriptRow(s discovery.ScriptEntry) ui.Row {
	return ui.Row{Title: s.Name, Tag: s.Workspace, Detail: s.Command}
}

func entryRow(e discovery.JSONEntry) ui.Row {
	return ui.Row{Title: e.Path, Tag: e.Workspace, Detail: e.Value}
}

func pickerOptions[T any](cfg Config, title string, items []T, text func(T) string, row func(T) ui.Row) ui.Options[T] {
	return ui.Options[T]{
		Title:      title,
		Items:      items,
		Text:       text,
		Row:        row,
		MaxVisible: cfg.MaxVisible,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
	}
}

// Scripts lets the user pick a script and runs it. With manifest set only
// that file is searched and the script runs from its directory; otherwise
// the working directory's manifest and its workspaces are searched.
func (a *App) Scripts(ctx context.Context, manifest string) error {
	var scripts []discovery.ScriptEntry
	if manifest != "" {
		scripts = a.Discoverer.ScriptsFromFile(manifest, a.Dir)
	} else {
		scripts = a.Discoverer.Scripts(a.Dir)
	}
	events.App.Mode("scripts", len(scripts))
	if len(scripts) == 0 {
		return &ExitError{Code: 1, Message: "No scripts found in this repository"}
	}
	res, err := a.PickScript(pickerOptions(a.Config, titleBase+" - Scripts", scripts, discovery.ScriptEntry.SearchText, scriptRow))
	if err != nil {
		return err
	}
	script, err := confirmed(res, "script")
	if err != nil || res.Outcome == uistate.Exited {
		return err
	}
	if manifest != "" {
		dir := filepath.Join(a.Dir, script.Dir())
		return a.run(ctx, dir, executor.KeyCommand(executor.Detect(dir), script.Name), "")
	}
	return a.run(ctx, a.Dir, executor.ScriptCommand(script, executor.Detect(a.Dir)), "")
}

// Find searches every file called name below the working directory and
// prints the chosen entry's value.
func (a *App) Find(name string) error {
	if name == "" {
		name = discovery.ManifestName
	}
	entries := a.Discoverer.FindEntries(a.Dir, name)
	events.App.Mode("find", len(entries))
	return a.pickEntry(titleBase+" - Find: "+name, entries)
}

// Path searches a single JSON file and prints the chosen entry's value.
func (a *App) Path(file string) error {
	if file == "" {
		return &ExitError{Code: 1, Message: "Error: path mode requires a file"}
	}
	if _, err := os.Stat(a.abs(file)); err != nil {
		return &ExitError{Code: 1, Message: "File not found: " + file}
	}
	entries := a.Discoverer.JSONEntries([]string{file}, a.Dir)
	events.App.Mode("path", len(entries))
	return a.pickEntry(titleBase+" - Path: "+file, entries)
}

func (a *App) pickEntry(title string, entries []discovery.JSONEntry) error {
	if len(entries) == 0 {
		return &ExitError{Code: 1, Message: "No JSON entries found"}
	}
	res, err := a.PickEntry(pickerOptions(a.Config, title, entries, discovery.JSONEntry.SearchText, entryRow))
	if err != nil {
		return err
	}
	entry, err := confirmed(res, "entry")
	if err != nil || res.Outcome == uistate.Exited {
		return err
	}
	fmt.Fprintln(a.Stdout, entry.Value)
	return nil
}

// confirmed rejects a confirm that had nothing selected, reporting what.
func confirmed[T any](res session.Result[T], what string) (T, error) {
	if res.Outcome == uistate.Confirmed && !res.Found {
		return res.Item, &ExitError{Code: 1, Message: "No " + what + " selected"}
	}
	return res.Item, nil
}

// Exec runs the script at key ("scripts.<name>") of file from the file's
// directory without an interactive session.
func (a *App) Exec(ctx context.Context, file, key string) error {
	if file == "" || key == "" {
		return &ExitError{Code: 1, Message: "Error: exec mode requires a file and a key"}
	}
	path := a.abs(file)
	doc, err := jsondoc.ReadFile(path)
	if err != nil {
		return &ExitError{Code: 1, Message: fmt.Sprintf("Error: cannot read %s: %v", file, err)}
	}
	name, err := executor.ResolveKey(doc, key)
	if err != nil {
		return &ExitError{Code: 1, Message: "Error: " + err.Error()}
	}
	events.App.Mode("exec", 1)
	dir := filepath.Dir(path)
	return a.run(ctx, dir, executor.KeyCommand(executor.Detect(dir), name), file)
}

// run announces argv and hands the terminal to it, returning the child's
// exit status.
func (a *App) run(ctx context.Context, dir string, argv []string, from string) error {
	styles := theme.Default()
	fmt.Fprintln(a.Stdout, theme.Render(styles.Running, "Running: "+strings.Join(argv, " ")))
	if from != "" {
		fmt.Fprintln(a.Stdout, theme.Render(styles.Detail, "From: "+from))
	}
	fmt.Fprintln(a.Stdout)
	code, err := a.Runner.Run(ctx, dir, argv)
	if err != nil {
		return err
	}
	return exitStatus(code)
}

// Completions prints "name:[workspace] command" for every script whose name
// or workspace fuzzy-contains query. Lines are newline-separated with no
// trailing newline.
func (a *App) Completions(query string) error {
	scripts := a.Discoverer.Scripts(a.Dir)
	events.App.Mode("completions", len(scripts))
	matched := filterScripts(scripts, query)
	lines := make([]string, len(matched))
	for i, s := range matched {
		lines[i] = fmt.Sprintf("%s:[%s] %s", s.Name, s.Workspace, s.Command)
	}
	_, err := io.WriteString(a.Stdout, strings.Join(lines, "\n"))
	return err
}

func filterScripts(scripts []discovery.ScriptEntry, query string) []discovery.ScriptEntry {
	if query == "" {
		return scripts
	}
	var out []discovery.ScriptEntry
	for _, s := range scripts {
		if fuzzy.Contains(query, s.Name) || fuzzy.Contains(query, s.Workspace) {
			out = append(out, s)
		}
	}
	return out
}

// List prints the discovered scripts as an aligned table.
func (a *App) List() error {
	scripts := a.Discoverer.Scripts(a.Dir)
	events.App.Mode("list", len(scripts))
	if len(scripts) == 0 {
		return &ExitError{Code: 1, Message: "No scripts found in this repository"}
	}
	rows := make([][]string, 0, len(scripts)+1)
	rows = append(rows, []string{"NAME", "WORKSPACE", "COMMAND"})
	for _, s := range scripts {
		rows = append(rows, []string{s.Name, s.Workspace, s.Command})
	}
	for _, line := range table.Format(rows, nil) {
		fmt.Fprintln(a.Stdout, line)
	}
	return nil
}

func (a *App) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(a.Dir, path)
}
