package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/fjsf/internal/cache"
	"github.com/atomicstack/fjsf/internal/testutil"
)

func describe(scripts []ScriptEntry) []string {
	out := make([]string, len(scripts))
	for i, s := range scripts {
		out[i] = fmt.Sprintf("%s|%s|%s|%s", s.Name, s.Workspace, s.PackagePath, s.Command)
	}
	return out
}

func assertScripts(t *testing.T, got []ScriptEntry, want ...string) {
	t.Helper()
	desc := describe(got)
	if strings.Join(desc, "\n") != strings.Join(want, "\n") {
		t.Fatalf("expected scripts\n%s\ngot\n%s", strings.Join(want, "\n"), strings.Join(desc, "\n"))
	}
}

func TestScriptsMissingManifest(t *testing.T) {
	root := t.TempDir()
	if got := New(nil).Scripts(root); len(got) != 0 {
		t.Fatalf("expected no scripts, got %v", describe(got))
	}
}

func TestScriptsInvalidManifest(t *testing.T) {
	root := testutil.Tree(t, map[string]string{
		"package.json":       `{"scripts": {`,
		"pkg/a/package.json": `{"scripts":{"x":"y"}}`,
	})
	if got := New(nil).Scripts(root); len(got) != 0 {
		t.Fatalf("expected no scripts for invalid root manifest, got %v", describe(got))
	}
}

func TestScriptsRootOrderAndName(t *testing.T) {
	root := testutil.Tree(t, map[string]string{
		"package.json": `{"name":"app","scripts":{"test":"vitest","build":"tsc","dev":"vite"}}`,
	})
	assertScripts(t, New(nil).Scripts(root),
		"test|app|package.json|vitest",
		"build|app|package.json|tsc",
		"dev|app|package.json|vite",
	)
}

func TestScriptsWorkspaceGlob(t *testing.T) {
	root := testutil.Tree(t, map[string]string{
		"package.json":                `{"workspaces":["packages/*"],"scripts":{"lint":"eslint ."}}`,
		"packages/app-a/package.json": `{"name":"@acme/a","scripts":{"build":"tsc -b"}}`,
		"packages/app-b/package.json": `{"name":"@acme/b","scripts":{"test":"jest"}}`,
		"packages/notes/README.md":    "no manifest here",
		"other/package.json":          `{"name":"other","scripts":{"x":"y"}}`,
	})
	assertScripts(t, New(nil).Scripts(root),
		"lint|root|package.json|eslint .",
		"build|@acme/a|packages/app-a/package.json|tsc -b",
		"test|@acme/b|packages/app-b/package.json|jest",
	)
}

func TestScriptsWorkspacesObjectForm(t *testing.T) {
	root := testutil.Tree(t, map[string]string{
		"package.json":           `{"name":"mono","workspaces":{"packages":["tools/cli"]},"scripts":{}}`,
		"tools/cli/package.json": `{"scripts":{"start":"node ."}}`,
	})
	assertScripts(t, New(nil).Scripts(root),
		"start|tools/cli|tools/cli/package.json|node .",
	)
}

func TestScriptsPnpmWorkspaceFile(t *testing.T) {
	root := testutil.Tree(t, map[string]string{
		"package.json":          `{"name":"mono","scripts":{"ci":"turbo run ci"}}`,
		"pnpm-workspace.yaml":   "packages:\n  - 'apps/*'\n  - '!apps/legacy'\n",
		"apps/web/package.json": `{"name":"web","scripts":{"dev":"next dev"}}`,
		"libs/x/package.json":   `{"name":"x","scripts":{"build":"tsc"}}`,
	})
	assertScripts(t, New(nil).Scripts(root),
		"ci|mono|package.json|turbo run ci",
		"dev|web|apps/web/package.json|next dev",
	)
}

func TestScriptsNestedScanWithoutWorkspaces(t *testing.T) {
	root := testutil.Tree(t, map[string]string{
		"package.json":                  `{"scripts":{"build":"make"}}`,
		"a/package.json":                `{"name":"a","scripts":{"one":"1"}}`,
		"a/b/c/d/e/package.json":        `{"name":"deep","scripts":{"five":"5"}}`,
		"a/b/c/d/e/f/package.json":      `{"name":"too-deep","scripts":{"six":"6"}}`,
		"node_modules/dep/package.json": `{"name":"dep","scripts":{"no":"no"}}`,
		".hidden/package.json":          `{"name":"hidden","scripts":{"no":"no"}}`,
		"noscripts/package.json":        `{"name":"empty"}`,
		"unnamed/package.json":          `{"scripts":{"u":"u"}}`,
		"broken/package.json":           `not json`,
	})
	assertScripts(t, New(nil).Scripts(root),
		"build|root|package.json|make",
		"five|deep|a/b/c/d/e/package.json|5",
		"one|a|a/package.json|1",
		"u|unnamed|unnamed/package.json|u",
	)
}

func TestScriptsNestedScanFollowsSymlinkedDirs(t *testing.T) {
	root := testutil.Tree(t, map[string]string{
		"package.json":   `{"scripts":{"build":"make"}}`,
		"a/package.json": `{"name":"a","scripts":{"one":"1"}}`,
	})
	shared := testutil.Tree(t, map[string]string{
		"package.json": `{"name":"shared","scripts":{"s":"sh"}}`,
	})
	if err := os.Symlink(shared, filepath.Join(root, "linked")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	if err := os.Symlink(filepath.Join(root, "a"), filepath.Join(root, "a", "loop")); err != nil {
		t.Fatalf("symlink: %v", err)
	}
	assertScripts(t, New(nil).Scripts(root),
		"build|root|package.json|make",
		"one|a|a/package.json|1",
		"s|shared|linked/package.json|sh",
	)
}

func TestScriptsFromFile(t *testing.T) {
	root := testutil.Tree(t, map[string]string{
		"package.json":              `{"scripts":{"root":"r"}}`,
		"services/api/package.json": `{"name":"api","scripts":{"serve":"node server.js"}}`,
	})
	d := New(nil)
	assertScripts(t, d.ScriptsFromFile("services/api/package.json", root),
		"serve|api|services/api/package.json|node server.js",
	)
	assertScripts(t, d.ScriptsFromFile(filepath.Join(root, "package.json"), root),
		"root|root|package.json|r",
	)
	if got := d.ScriptsFromFile("missing/package.json", root); len(got) != 0 {
		t.Fatalf("expected no scripts for missing file, got %v", describe(got))
	}
}

func TestScriptsUsesInjectedLoader(t *testing.T) {
	root := testutil.Tree(t, map[string]string{
		"package.json":   `{"scripts":{"build":"tsc"}}`,
		"a/package.json": `{"scripts":{"test":"jest"}}`,
	})
	c := cache.New()
	d := New(c)
	d.Scripts(root)
	if c.Len() != 2 {
		t.Fatalf("expected 2 cached manifests, got %d", c.Len())
	}
	assertScripts(t, d.Scripts(root),
		"build|root|package.json|tsc",
		"test|a|a/package.json|jest",
	)
}

func TestScriptEntryHelpers(t *testing.T) {
	s := ScriptEntry{Name: "build", Workspace: "web", PackagePath: "apps/web/package.json"}
	if s.SearchText() != "build web" {
		t.Fatalf("expected search text %q, got %q", "build web", s.SearchText())
	}
	if s.IsRoot() {
		t.Fatalf("expected workspace script not to be root")
	}
	if s.Dir() != "apps/web" {
		t.Fatalf("expected dir apps/web, got %q", s.Dir())
	}
}
