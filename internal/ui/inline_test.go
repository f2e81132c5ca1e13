package ui

import (
	"strings"
	"testing"

	uistate "github.com/atomicstack/fjsf/internal/ui/state"
)

func TestInlineFrame(t *testing.T) {
	r := NewInline(&strings.Builder{}, scriptRow, 0, 0, plainStyles())
	frame := r.Frame(uistate.New(sample, scriptText))
	want := []string{
		"❯ build [root]",
		"  test [root]",
		"  dev [@acme/web]",
	}
	if strings.Join(frame, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %q, got %q", want, frame)
	}
}

func TestInlineFrameNoMatches(t *testing.T) {
	r := NewInline(&strings.Builder{}, scriptRow, 0, 0, plainStyles())
	frame := r.Frame(uistate.New(sample, scriptText).WithQuery("zzz"))
	if len(frame) != 1 || frame[0] != "No matches" {
		t.Fatalf("expected single no-matches line, got %q", frame)
	}
}

func TestInlineFrameWindowAndMore(t *testing.T) {
	r := NewInline(&strings.Builder{}, scriptRow, 0, 0, plainStyles())
	s := uistate.New(manyScripts(12), scriptText).Move(11)
	frame := r.Frame(s)
	if len(frame) != DefaultInlineMaxVisible+1 {
		t.Fatalf("expected %d lines, got %d: %q", DefaultInlineMaxVisible+1, len(frame), frame)
	}
	if !strings.HasPrefix(frame[0], "  task04") {
		t.Fatalf("expected window to start at task04, got %q", frame[0])
	}
	if frame[7] != "❯ task11 [root]" {
		t.Fatalf("expected last row selected, got %q", frame[7])
	}
	if frame[8] != "... 4 more" {
		t.Fatalf("expected more indicator, got %q", frame[8])
	}
}

func TestInlineRenderReplacesPreviousFrame(t *testing.T) {
	var out strings.Builder
	r := NewInline(&out, scriptRow, 0, 0, plainStyles())
	s := uistate.New(sample, scriptText)
	r.Render(s)
	first := out.String()
	if !strings.HasPrefix(first, "\r\n❯ build [root]") {
		t.Fatalf("expected frame below the anchor, got %q", first)
	}
	if strings.Count(first, "\r\n") != 3 {
		t.Fatalf("expected three lines, got %q", first)
	}
	out.Reset()
	r.Render(s.WithQuery("dev"))
	second := out.String()
	clear := "\r\x1b[2K\x1b[A\x1b[2K\x1b[A\x1b[2K\x1b[A"
	if !strings.HasPrefix(second, clear) {
		t.Fatalf("expected previous three lines cleared, got %q", second)
	}
	if strings.TrimPrefix(second, clear) != "\r\n❯ dev [@acme/web]" {
		t.Fatalf("unexpected frame %q", second)
	}
	out.Reset()
	r.Clear()
	if out.String() != "\r\x1b[2K\x1b[A" {
		t.Fatalf("expected single-line clear, got %q", out.String())
	}
	out.Reset()
	r.Clear()
	if out.Len() != 0 {
		t.Fatalf("expected nothing to clear, got %q", out.String())
	}
}
