package terminal

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestClearFrame(t *testing.T) {
	var b strings.Builder
	ClearFrame(&b, 3)
	want := "\r\x1b[2K\x1b[A\x1b[2K\x1b[A\x1b[2K\x1b[A"
	if b.String() != want {
		t.Fatalf("expected %q, got %q", want, b.String())
	}
	b.Reset()
	ClearFrame(&b, 0)
	if b.Len() != 0 {
		t.Fatalf("expected no output for empty frame, got %q", b.String())
	}
}

func TestCursorVisibility(t *testing.T) {
	var b strings.Builder
	HideCursor(&b)
	ShowCursor(&b)
	if b.String() != "\x1b[?25l\x1b[?25h" {
		t.Fatalf("unexpected cursor sequences %q", b.String())
	}
}

func TestNonTerminalFallbacks(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "plain"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if IsTerminal(f) {
		t.Fatalf("expected regular file not to be a terminal")
	}
	restore, err := MakeRaw(f)
	if !errors.Is(err, ErrNotTerminal) {
		t.Fatalf("expected ErrNotTerminal, got %v", err)
	}
	restore()
	if w, h := Size(f); w != 80 || h != 24 {
		t.Fatalf("expected 80x24 fallback, got %dx%d", w, h)
	}
	if IsTerminal(nil) {
		t.Fatalf("expected nil file not to be a terminal")
	}
}
