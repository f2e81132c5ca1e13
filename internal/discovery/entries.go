package discovery

import (
	"path/filepath"
	"strconv"

	"github.com/atomicstack/fjsf/internal/jsondoc"
	"github.com/atomicstack/fjsf/internal/logging/events"
)

// JSONEntries flattens each readable file in paths. Missing or invalid files
// contribute nothing. FilePath is reported relative to cwd.
func (d *Discoverer) JSONEntries(paths []string, cwd string) []JSONEntry {
	var out []JSONEntry
	for _, path := range paths {
		abs := path
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(cwd, abs)
		}
		if !fileExists(abs) {
			events.Discovery.Skip(abs, nil)
			continue
		}
		doc, ok := d.loader.Load(abs)
		if !ok {
			events.Discovery.Skip(abs, nil)
			continue
		}
		rel := relativeTo(cwd, abs)
		out = append(out, Flatten(doc, rel, documentWorkspace(doc, rel))...)
	}
	return out
}

// FindEntries flattens every file named name under root.
func (d *Discoverer) FindEntries(root, name string) []JSONEntry {
	return d.JSONEntries(d.FindFiles(root, name), root)
}

func documentWorkspace(doc jsondoc.Value, rel string) string {
	if name, ok := doc.Get("name"); ok {
		if s, ok := name.Str(); ok {
			return s
		}
	}
	if rel == ManifestName {
		return rootWorkspace
	}
	return rel
}

// Flatten emits one entry per node of doc in document order. Containers get
// an entry of their own followed by their children; the top-level container
// itself is not listed. A primitive document has no entries.
func Flatten(doc jsondoc.Value, filePath, workspace string) []JSONEntry {
	f := flattener{filePath: filePath, workspace: workspace}
	switch doc.Kind {
	case jsondoc.Object:
		f.fields(doc, "")
	case jsondoc.Array:
		f.items(doc, "")
	}
	return f.out
}

type flattener struct {
	filePath  string
	workspace string
	out       []JSONEntry
}

func (f *flattener) add(path, key string, v jsondoc.Value) {
	f.out = append(f.out, JSONEntry{
		Path:      path,
		Value:     v.String(),
		Key:       key,
		FilePath:  f.filePath,
		Workspace: f.workspace,
	})
}

func (f *flattener) value(v jsondoc.Value, path, key string) {
	f.add(path, key, v)
	switch v.Kind {
	case jsondoc.Object:
		f.fields(v, path)
	case jsondoc.Array:
		f.items(v, path)
	}
}

func (f *flattener) fields(obj jsondoc.Value, prefix string) {
	for _, field := range obj.Fields {
		path := field.Key
		if prefix != "" {
			path = prefix + "." + field.Key
		}
		f.value(field.Value, path, field.Key)
	}
}

func (f *flattener) items(arr jsondoc.Value, prefix string) {
	for i, item := range arr.Items {
		key := "[" + strconv.Itoa(i) + "]"
		f.value(item, prefix+key, key)
	}
}
