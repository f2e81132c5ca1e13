package table

import (
	"strings"
	"testing"
)

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"NAME", "WORKSPACE", "COMMAND"},
		{"build", "root", "tsc"},
		{"dev", "@acme/web", "vite --port 3000"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignLeft, AlignLeft})
	want := []string{
		"NAME   WORKSPACE  COMMAND",
		"build  root       tsc",
		"dev    @acme/web  vite --port 3000",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("expected\n%s\ngot\n%s", strings.Join(want, "\n"), strings.Join(got, "\n"))
	}
}

func TestFormatRightAlignAndWideRunes(t *testing.T) {
	rows := [][]string{
		{"日本", "1"},
		{"abc", "100"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignRight})
	want := []string{
		"日本    1",
		"abc   100",
	}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormatIgnoresEscapesAndRaggedRows(t *testing.T) {
	rows := [][]string{
		{"\x1b[1mab\x1b[0m", "x"},
		{"abcd"},
	}
	got := Format(rows, nil)
	if got[0] != "\x1b[1mab\x1b[0m    x" {
		t.Fatalf("expected styled cell padded by visible width, got %q", got[0])
	}
	if got[1] != "abcd" {
		t.Fatalf("expected short row untouched, got %q", got[1])
	}
	if Format(nil, nil) != nil {
		t.Fatalf("expected nil for no rows")
	}
}
