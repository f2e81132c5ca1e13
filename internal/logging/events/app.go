package events

import "github.com/atomicstack/fjsf/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Mode(mode string, items int) {
	logging.Trace("app.mode", map[string]interface{}{"mode": mode, "items": items})
}

func (AppTracer) Exit(code int) {
	logging.Trace("app.exit", map[string]interface{}{"code": code})
}
