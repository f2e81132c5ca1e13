package events

import "github.com/atomicstack/fjsf/internal/logging"

type SessionTracer struct{}

type sessionReason string

const (
	SessionReasonKey   sessionReason = "key"
	SessionReasonEOF   sessionReason = "eof"
	SessionReasonError sessionReason = "read-error"
)

var Session = SessionTracer{}

func (SessionTracer) Start(items int, query string) {
	logging.Trace("session.start", map[string]interface{}{"items": items, "query": query})
}

func (SessionTracer) Query(query string, matches int) {
	logging.Trace("session.query", map[string]interface{}{"query": query, "matches": matches})
}

func (SessionTracer) Move(selected int) {
	logging.Trace("session.move", map[string]interface{}{"selected": selected})
}

func (SessionTracer) Confirm(selected int, found bool) {
	logging.Trace("session.confirm", map[string]interface{}{"selected": selected, "found": found})
}

func (SessionTracer) Exit(reason sessionReason, err error) {
	payload := map[string]interface{}{"reason": string(reason)}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("session.exit", payload)
}
