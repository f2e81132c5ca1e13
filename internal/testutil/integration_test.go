package testutil

import (
	"path/filepath"
	"strings"
	"testing"
)

var monorepo = map[string]string{
	"package.json":               `{"name":"app","workspaces":["packages/*"],"scripts":{"build":"tsc -b","test":"vitest run"}}`,
	"packages/web/package.json":  `{"name":"@acme/web","scripts":{"dev":"vite","lint":"eslint src"}}`,
	"packages/core/package.json": `{"name":"@acme/core","scripts":{"build":"tsup"}}`,
	"packages/docs/README.md":    "no manifest here\n",
}

func TestListGolden(t *testing.T) {
	bin := buildBinary(t)
	dir := Tree(t, monorepo)
	stdout, stderr, code := runBinary(t, bin, dir, "list")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr)
	}
	AssertGolden(t, filepath.Join("cli", "list.txt"), stdout)
}

func TestCompletionsGolden(t *testing.T) {
	bin := buildBinary(t)
	dir := Tree(t, monorepo)
	stdout, stderr, code := runBinary(t, bin, dir, "completions")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr)
	}
	AssertGolden(t, filepath.Join("cli", "completions.txt"), stdout)

	stdout, _, code = runBinary(t, bin, dir, "completions", "web")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	AssertGolden(t, filepath.Join("cli", "completions_web.txt"), stdout)
}

func TestErrorsExitWithStatus(t *testing.T) {
	bin := buildBinary(t)
	empty := t.TempDir()
	_, stderr, code := runBinary(t, bin, empty, "list")
	if code != 1 || strings.TrimSpace(stderr) != "No scripts found in this repository" {
		t.Fatalf("expected no-scripts exit 1, got %d %q", code, stderr)
	}

	dir := Tree(t, monorepo)
	_, stderr, code = runBinary(t, bin, dir, "exec", "package.json", "scripts.missing")
	if code != 1 || !strings.HasPrefix(stderr, "Error: ") {
		t.Fatalf("expected exec error exit 1, got %d %q", code, stderr)
	}
	_, stderr, code = runBinary(t, bin, dir, "path", "missing.json")
	if code != 1 || strings.TrimSpace(stderr) != "File not found: missing.json" {
		t.Fatalf("expected file-not-found exit 1, got %d %q", code, stderr)
	}
	_, stderr, code = runBinary(t, bin, dir, "--height=-1", "list")
	if code != 2 || !strings.HasPrefix(stderr, "Configuration error:") {
		t.Fatalf("expected configuration exit 2, got %d %q", code, stderr)
	}
}
