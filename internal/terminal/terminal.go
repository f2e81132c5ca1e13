// Package terminal wraps the raw-mode and escape-sequence plumbing used by the
// inline picker.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

// TTYPath is the controlling terminal, usable even when stdio is redirected.
const TTYPath = "/dev/tty"

// ErrNotTerminal is returned when raw mode is requested on a non-terminal.
var ErrNotTerminal = errors.New("not a terminal")

var getSize = term.GetSize

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// MakeRaw switches f to raw mode. The returned function restores the
// previous mode and is safe to call more than once.
func MakeRaw(f *os.File) (func(), error) {
	if !IsTerminal(f) {
		return func() {}, ErrNotTerminal
	}
	fd := int(f.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return func() {}, fmt.Errorf("enter raw mode: %w", err)
	}
	restored := false
	return func() {
		if restored {
			return
		}
		restored = true
		_ = term.Restore(fd, old)
	}, nil
}

// Size returns the terminal dimensions of f, falling back to 80x24.
func Size(f *os.File) (int, int) {
	if f != nil {
		if w, h, err := getSize(int(f.Fd())); err == nil && w > 0 && h > 0 {
			return w, h
		}
	}
	return 80, 24
}

// OpenTTY opens the controlling terminal for reading and writing.
func OpenTTY() (*os.File, error) {
	f, err := os.OpenFile(TTYPath, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", TTYPath, err)
	}
	return f, nil
}

func HideCursor(w io.Writer) { io.WriteString(w, ansi.HideCursor) }

func ShowCursor(w io.Writer) { io.WriteString(w, ansi.ShowCursor) }

// ClearFrame erases a frame of n lines drawn below an anchor line. The cursor
// must sit on the frame's last line; it is left at the start of the anchor.
func ClearFrame(w io.Writer, n int) {
	if n <= 0 {
		return
	}
	io.WriteString(w, "\r"+ansi.EraseEntireLine)
	for i := 1; i < n; i++ {
		io.WriteString(w, ansi.CursorUp(1)+ansi.EraseEntireLine)
	}
	io.WriteString(w, ansi.CursorUp(1))
}
