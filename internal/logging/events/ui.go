package events

import "github.com/atomicstack/fjsf/internal/logging"

type UITracer struct{}

var UI = UITracer{}

func (UITracer) Resize(width, height, visible int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height, "visible": visible})
}

func (UITracer) Key(key, action string) {
	logging.Trace("ui.key", map[string]interface{}{"key": key, "action": action})
}
