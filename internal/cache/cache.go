// Package cache memoizes parsed JSON documents keyed by path and validated
// against the file's modification time.
package cache

import (
	"os"
	"time"

	"github.com/atomicstack/fjsf/internal/jsondoc"
	"github.com/atomicstack/fjsf/internal/logging/events"
	gocache "github.com/patrickmn/go-cache"
)

type entry struct {
	doc   jsondoc.Value
	mtime time.Time
}

// JSON caches parsed documents. Entries never expire on their own; a lookup
// re-reads the file whenever its mtime differs from the cached one.
type JSON struct {
	store *gocache.Cache
	stat  func(string) (os.FileInfo, error)
	read  func(string) (jsondoc.Value, error)
}

// New returns an empty cache reading from the local file system.
func New() *JSON {
	return &JSON{
		store: gocache.New(gocache.NoExpiration, 0),
		stat:  os.Stat,
		read:  jsondoc.ReadFile,
	}
}

// Load returns the parsed document at path, serving it from the cache while
// the file is unchanged. Unreadable or invalid files are evicted and reported
// as absent.
func (c *JSON) Load(path string) (jsondoc.Value, bool) {
	if cached, ok := c.Get(path); ok {
		events.Cache.Hit(path)
		return cached, true
	}
	// stat first so a write racing the read is seen as a newer mtime later
	mtime := c.mtime(path)
	doc, err := c.read(path)
	if err != nil || doc.Kind == jsondoc.Null {
		c.store.Delete(path)
		events.Cache.Invalid(path, err)
		return jsondoc.Value{}, false
	}
	if !mtime.IsZero() {
		c.Set(path, doc, mtime)
	}
	events.Cache.Miss(path)
	return doc, true
}

// Get returns the cached document when its recorded mtime still matches the
// file on disk.
func (c *JSON) Get(path string) (jsondoc.Value, bool) {
	raw, ok := c.store.Get(path)
	if !ok {
		return jsondoc.Value{}, false
	}
	e := raw.(entry)
	current := c.mtime(path)
	if current.IsZero() || !current.Equal(e.mtime) {
		return jsondoc.Value{}, false
	}
	return e.doc, true
}

// Set records doc for path at the given modification time.
func (c *JSON) Set(path string, doc jsondoc.Value, mtime time.Time) {
	c.store.Set(path, entry{doc: doc, mtime: mtime}, gocache.NoExpiration)
}

// Clear drops every cached document.
func (c *JSON) Clear() {
	c.store.Flush()
}

// Len reports the number of cached documents.
func (c *JSON) Len() int {
	return c.store.ItemCount()
}

func (c *JSON) mtime(path string) time.Time {
	info, err := c.stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
