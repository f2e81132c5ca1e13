// Package discovery produces the candidate items of a search session: the
// scripts declared by package manifests under a directory, or the flattened
// key paths of JSON files.
package discovery

import (
	"path/filepath"

	"github.com/atomicstack/fjsf/internal/jsondoc"
)

const (
	// ManifestName is the package manifest file name.
	ManifestName = "package.json"
	// MaxDepth bounds how many directory levels below the root are scanned.
	MaxDepth = 5

	rootWorkspace = "root"
)

// ScriptEntry is one named script of a package manifest.
type ScriptEntry struct {
	Name        string
	Command     string
	Workspace   string
	PackagePath string // relative to the discovery root
}

// SearchText is the text the fuzzy matcher scores.
func (s ScriptEntry) SearchText() string {
	return s.Name + " " + s.Workspace
}

// IsRoot reports whether the script belongs to the root manifest.
func (s ScriptEntry) IsRoot() bool {
	return s.PackagePath == ManifestName
}

// Dir is the manifest's directory relative to the discovery root.
func (s ScriptEntry) Dir() string {
	return filepath.Dir(s.PackagePath)
}

// JSONEntry is one node of a flattened JSON document.
type JSONEntry struct {
	Path      string
	Value     string
	Key       string
	FilePath  string
	Workspace string
}

func (e JSONEntry) SearchText() string {
	return e.Path + " " + e.Workspace
}

// Loader reads a JSON document, reporting false when it is missing or invalid.
type Loader interface {
	Load(path string) (jsondoc.Value, bool)
}

// LoaderFunc adapts a plain read function to a Loader.
type LoaderFunc func(path string) (jsondoc.Value, error)

func (f LoaderFunc) Load(path string) (jsondoc.Value, bool) {
	v, err := f(path)
	if err != nil {
		return jsondoc.Value{}, false
	}
	return v, true
}

// Discoverer finds candidate items using an injected document loader.
type Discoverer struct {
	loader Loader
}

// New returns a Discoverer reading documents through loader. A nil loader
// reads files directly without caching.
func New(loader Loader) *Discoverer {
	if loader == nil {
		loader = LoaderFunc(jsondoc.ReadFile)
	}
	return &Discoverer{loader: loader}
}

func relativeTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
