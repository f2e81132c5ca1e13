package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/atomicstack/fjsf/internal/logging/events"
)

// FindFiles returns every file named name under root, at most MaxDepth
// directories deep. node_modules and dot-entries are not entered.
func (d *Discoverer) FindFiles(root, name string) []string {
	files := walkFiles(root, name)
	events.Discovery.Files(root, name, len(files))
	return files
}

// walkFiles is a depth-capped lexical walk. Symlinked directories are
// followed, each real directory at most once. Unreadable entries are skipped
// without aborting the walk.
func walkFiles(root, name string) []string {
	var found []string
	seen := make(map[string]bool)
	var walk func(dir string, depth int)
	walk = func(dir string, depth int) {
		if real, err := filepath.EvalSymlinks(dir); err == nil {
			if seen[real] {
				return
			}
			seen[real] = true
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			events.Discovery.Skip(dir, err)
			return
		}
		for _, entry := range entries {
			if skipEntry(entry.Name()) {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			isDir := entry.IsDir()
			if entry.Type()&fs.ModeSymlink != 0 {
				info, err := os.Stat(path)
				if err != nil {
					events.Discovery.Skip(path, err)
					continue
				}
				isDir = info.IsDir()
			}
			if isDir {
				if depth < MaxDepth {
					walk(path, depth+1)
				}
				continue
			}
			if entry.Name() == name {
				found = append(found, path)
			}
		}
	}
	walk(root, 0)
	return found
}

func skipEntry(name string) bool {
	return name == "node_modules" || strings.HasPrefix(name, ".")
}
