package events

import "github.com/atomicstack/fjsf/internal/logging"

type DiscoveryTracer struct{}

type CacheTracer struct{}

var (
	Discovery = DiscoveryTracer{}
	Cache     = CacheTracer{}
)

func (DiscoveryTracer) Manifest(path string, scripts int) {
	logging.Trace("discovery.manifest", map[string]interface{}{"path": path, "scripts": scripts})
}

func (DiscoveryTracer) Workspaces(root string, patterns []string, dirs int) {
	logging.Trace("discovery.workspaces", map[string]interface{}{"root": root, "patterns": patterns, "dirs": dirs})
}

func (DiscoveryTracer) Skip(path string, err error) {
	payload := map[string]interface{}{"path": path}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("discovery.skip", payload)
}

func (DiscoveryTracer) Files(root, name string, found int) {
	logging.Trace("discovery.files", map[string]interface{}{"root": root, "name": name, "found": found})
}

func (CacheTracer) Hit(path string) {
	logging.Trace("cache.hit", map[string]interface{}{"path": path})
}

func (CacheTracer) Miss(path string) {
	logging.Trace("cache.miss", map[string]interface{}{"path": path})
}

func (CacheTracer) Invalid(path string, err error) {
	payload := map[string]interface{}{"path": path}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("cache.invalid", payload)
}
