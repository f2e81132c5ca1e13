// Package executor maps selected scripts to package-manager invocations and
// runs them with the terminal handed over to the child process.
package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/atomicstack/fjsf/internal/discovery"
	"github.com/atomicstack/fjsf/internal/jsondoc"
	"github.com/atomicstack/fjsf/internal/logging/events"
)

// PackageManager names the tool used to run scripts.
type PackageManager string

const (
	NPM  PackageManager = "npm"
	PNPM PackageManager = "pnpm"
	Yarn PackageManager = "yarn"
	Bun  PackageManager = "bun"
)

var lockfiles = []struct {
	name string
	pm   PackageManager
}{
	{"bun.lockb", Bun},
	{"bun.lock", Bun},
	{"pnpm-lock.yaml", PNPM},
	{"yarn.lock", Yarn},
}

// Detect picks the package manager from the lockfile present in dir,
// defaulting to npm.
func Detect(dir string) PackageManager {
	for _, lf := range lockfiles {
		if info, err := os.Stat(filepath.Join(dir, lf.name)); err == nil && !info.IsDir() {
			return lf.pm
		}
	}
	return NPM
}

// ScriptCommand builds the argv that runs script. Root scripts run directly;
// workspace scripts are routed through the package manager's workspace flag.
func ScriptCommand(script discovery.ScriptEntry, pm PackageManager) []string {
	if script.IsRoot() {
		return KeyCommand(pm, script.Name)
	}
	ws := script.Workspace
	switch pm {
	case PNPM:
		return []string{"pnpm", "--filter", ws, "run", script.Name}
	case Yarn:
		return []string{"yarn", "workspace", ws, "run", script.Name}
	case Bun:
		return []string{"bun", "--filter", ws, "run", script.Name}
	default:
		return []string{"npm", "run", script.Name, "--workspace=" + ws}
	}
}

// KeyCommand builds "<pm> run <name>".
func KeyCommand(pm PackageManager, name string) []string {
	switch pm {
	case PNPM, Yarn, Bun:
		return []string{string(pm), "run", name}
	default:
		return []string{"npm", "run", name}
	}
}

const scriptsPrefix = "scripts."

// ErrKeyNotFound is returned by ResolveKey when key is absent.
var ErrKeyNotFound = errors.New("key not found")

// ResolveKey validates that key addresses a string under "scripts" and
// returns the script name.
func ResolveKey(doc jsondoc.Value, key string) (string, error) {
	v, ok := doc.Lookup(key)
	if !ok {
		return "", fmt.Errorf("key %q: %w", key, ErrKeyNotFound)
	}
	if v.Kind != jsondoc.String {
		return "", fmt.Errorf("cannot run %q - value is not a string", key)
	}
	if !strings.HasPrefix(key, scriptsPrefix) {
		return "", fmt.Errorf("cannot run %q - not a script (must start with %q)", key, scriptsPrefix)
	}
	return strings.TrimPrefix(key, scriptsPrefix), nil
}

// Runner launches commands. The zero value inherits the process's stdio.
type Runner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes argv in dir and returns the child's exit code. A non-nil error
// means the process could not be started or waited on.
func (r Runner) Run(ctx context.Context, dir string, argv []string) (int, error) {
	if len(argv) == 0 {
		return 0, errors.New("empty command")
	}
	events.Exec.Run(dir, argv)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdin = orReader(r.Stdin, os.Stdin)
	cmd.Stdout = orWriter(r.Stdout, os.Stdout)
	cmd.Stderr = orWriter(r.Stderr, os.Stderr)
	err := cmd.Run()
	code := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			events.Exec.Done(argv, -1, err)
			return 1, fmt.Errorf("run %s: %w", argv[0], err)
		}
		// killed by a signal
		if code = exitErr.ExitCode(); code < 0 {
			code = 1
		}
	}
	events.Exec.Done(argv, code, nil)
	return code, nil
}

func orReader(r, fallback io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return fallback
}

func orWriter(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
