package discovery

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/atomicstack/fjsf/internal/jsondoc"
	"github.com/atomicstack/fjsf/internal/logging/events"
	"gopkg.in/yaml.v3"
)

// PnpmWorkspaceFile declares workspace patterns for pnpm monorepos.
const PnpmWorkspaceFile = "pnpm-workspace.yaml"

// workspaceSpec is the manifest's "workspaces" field, which is either a bare
// pattern list or an object carrying a "packages" list.
type workspaceSpec interface {
	patterns() []string
}

type workspaceList []string

func (w workspaceList) patterns() []string { return w }

type workspaceObject struct {
	Packages []string `yaml:"packages"`
}

func (w workspaceObject) patterns() []string { return w.Packages }

func parseWorkspaces(v jsondoc.Value) workspaceSpec {
	switch v.Kind {
	case jsondoc.Array:
		return workspaceList(stringItems(v))
	case jsondoc.Object:
		packages, ok := v.Get("packages")
		if !ok {
			return workspaceObject{}
		}
		return workspaceObject{Packages: stringItems(packages)}
	}
	return nil
}

func stringItems(v jsondoc.Value) []string {
	if v.Kind != jsondoc.Array {
		return nil
	}
	out := make([]string, 0, len(v.Items))
	for _, item := range v.Items {
		if s, ok := item.Str(); ok {
			out = append(out, s)
		}
	}
	return out
}

// workspacePatterns normalises the manifest's workspace declaration. pnpm
// keeps its patterns in a sibling YAML file, which is consulted only when the
// manifest declares none.
func workspacePatterns(manifest jsondoc.Value, dir string) []string {
	if raw, ok := manifest.Get("workspaces"); ok {
		if spec := parseWorkspaces(raw); spec != nil && len(spec.patterns()) > 0 {
			return spec.patterns()
		}
	}
	return pnpmPatterns(filepath.Join(dir, PnpmWorkspaceFile))
}

func pnpmPatterns(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var spec workspaceObject
	if err := yaml.Unmarshal(data, &spec); err != nil {
		events.Discovery.Skip(path, err)
		return nil
	}
	return spec.patterns()
}

// expandWorkspaces resolves patterns to directories holding a manifest. A
// pattern containing "*" lists the subdirectories of the path before the
// first "*"; any other pattern names a single directory. Exclusions ("!dir")
// are ignored.
func expandWorkspaces(root string, patterns []string) []string {
	var dirs []string
	for _, pattern := range patterns {
		if pattern == "" || strings.HasPrefix(pattern, "!") {
			continue
		}
		if i := strings.IndexByte(pattern, '*'); i >= 0 {
			dirs = append(dirs, expandGlob(filepath.Join(root, pattern[:i]))...)
			continue
		}
		dir := filepath.Join(root, pattern)
		if fileExists(filepath.Join(dir, ManifestName)) {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func expandGlob(base string) []string {
	if !dirExists(base) {
		return nil
	}
	entries, err := os.ReadDir(base)
	if err != nil {
		events.Discovery.Skip(base, err)
		return nil
	}
	var dirs []string
	for _, entry := range entries {
		dir := filepath.Join(base, entry.Name())
		if !dirExists(dir) {
			continue
		}
		if fileExists(filepath.Join(dir, ManifestName)) {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
