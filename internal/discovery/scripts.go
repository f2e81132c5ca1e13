package discovery

import (
	"os"
	"path/filepath"

	"github.com/atomicstack/fjsf/internal/jsondoc"
	"github.com/atomicstack/fjsf/internal/logging/events"
)

// Scripts returns the scripts of the manifest in startDir followed by those
// of its workspaces. When the root manifest declares no workspace patterns,
// every nested manifest within MaxDepth levels is used instead. A missing or
// invalid root manifest yields no scripts.
func (d *Discoverer) Scripts(startDir string) []ScriptEntry {
	rootPath := filepath.Join(startDir, ManifestName)
	if !fileExists(rootPath) {
		events.Discovery.Skip(rootPath, os.ErrNotExist)
		return nil
	}
	root, ok := d.loader.Load(rootPath)
	if !ok || root.Kind != jsondoc.Object {
		events.Discovery.Skip(rootPath, nil)
		return nil
	}

	scripts := manifestScripts(root, manifestName(root, rootWorkspace), ManifestName)
	events.Discovery.Manifest(rootPath, len(scripts))

	var manifests []string
	if patterns := workspacePatterns(root, startDir); len(patterns) > 0 {
		dirs := expandWorkspaces(startDir, patterns)
		events.Discovery.Workspaces(startDir, patterns, len(dirs))
		for _, dir := range dirs {
			manifests = append(manifests, filepath.Join(dir, ManifestName))
		}
	} else {
		for _, path := range walkFiles(startDir, ManifestName) {
			if path != rootPath {
				manifests = append(manifests, path)
			}
		}
	}
	for _, path := range manifests {
		scripts = append(scripts, d.nestedScripts(startDir, path)...)
	}
	return scripts
}

// ScriptsFromFile returns the scripts of a single manifest. Paths are
// reported relative to cwd.
func (d *Discoverer) ScriptsFromFile(manifestPath, cwd string) []ScriptEntry {
	if !filepath.IsAbs(manifestPath) {
		manifestPath = filepath.Join(cwd, manifestPath)
	}
	if !fileExists(manifestPath) {
		events.Discovery.Skip(manifestPath, os.ErrNotExist)
		return nil
	}
	return d.nestedScripts(cwd, manifestPath)
}

func (d *Discoverer) nestedScripts(base, path string) []ScriptEntry {
	doc, ok := d.loader.Load(path)
	if !ok || doc.Kind != jsondoc.Object {
		events.Discovery.Skip(path, nil)
		return nil
	}
	fallback := relativeTo(base, filepath.Dir(path))
	if fallback == "." {
		fallback = rootWorkspace
	}
	scripts := manifestScripts(doc, manifestName(doc, fallback), relativeTo(base, path))
	events.Discovery.Manifest(path, len(scripts))
	return scripts
}

// manifestScripts lists the "scripts" map in source order.
func manifestScripts(doc jsondoc.Value, workspace, packagePath string) []ScriptEntry {
	scripts, ok := doc.Get("scripts")
	if !ok || scripts.Kind != jsondoc.Object {
		return nil
	}
	out := make([]ScriptEntry, 0, len(scripts.Fields))
	for _, f := range scripts.Fields {
		out = append(out, ScriptEntry{
			Name:        f.Key,
			Command:     f.Value.String(),
			Workspace:   workspace,
			PackagePath: packagePath,
		})
	}
	return out
}

func manifestName(doc jsondoc.Value, fallback string) string {
	if name, ok := doc.Get("name"); ok {
		if s, ok := name.Str(); ok && s != "" {
			return s
		}
	}
	return fallback
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
