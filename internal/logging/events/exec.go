package events

import "github.com/atomicstack/fjsf/internal/logging"

type ExecTracer struct{}

var Exec = ExecTracer{}

func (ExecTracer) Run(dir string, argv []string) {
	logging.Trace("exec.run", map[string]interface{}{"dir": dir, "argv": argv})
}

func (ExecTracer) Done(argv []string, code int, err error) {
	payload := map[string]interface{}{"argv": argv, "code": code}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("exec.done", payload)
}
