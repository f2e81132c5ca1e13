// Package session drives an interactive search over a raw byte stream: read a
// chunk, decode it, apply the transition, redraw. The caller owns the
// terminal and must put it in raw mode before calling Run.
package session

import (
	"errors"
	"io"

	"github.com/atomicstack/fjsf/internal/input"
	"github.com/atomicstack/fjsf/internal/logging/events"
	"github.com/atomicstack/fjsf/internal/ui/state"
)

// ChunkSize bounds a single read. Escape sequences for the keys we handle
// fit comfortably.
const ChunkSize = 16

// Result is the terminal outcome of a session.
type Result[T any] struct {
	Outcome state.Outcome
	Item    T
	Found   bool
}

// Options tunes a session.
type Options struct {
	InitialQuery string
}

// Run blocks until the user exits or confirms. render is called once for the
// initial state and again after every transition that changed the state. A
// read error or end of input ends the session as Exited.
func Run[T any](in io.Reader, items []T, text func(T) string, render func(state.State[T]), opts ...Options) Result[T] {
	s := state.New(items, text)
	for _, o := range opts {
		if o.InitialQuery != "" {
			s = s.WithQuery(o.InitialQuery)
		}
	}
	events.Session.Start(len(items), s.Query())
	render(s)

	buf := make([]byte, ChunkSize)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			key := input.Decode(buf[:n])
			next, outcome := state.Apply(s, key)
			switch outcome {
			case state.Exited:
				events.Session.Exit(events.SessionReasonKey, nil)
				return Result[T]{Outcome: state.Exited}
			case state.Confirmed:
				item, ok := next.Selected()
				events.Session.Confirm(next.SelectedIndex(), ok)
				return Result[T]{Outcome: state.Confirmed, Item: item, Found: ok}
			}
			if changed(s, next) {
				traceChange(s, next)
				s = next
				render(s)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				events.Session.Exit(events.SessionReasonEOF, nil)
			} else {
				events.Session.Exit(events.SessionReasonError, err)
			}
			return Result[T]{Outcome: state.Exited}
		}
	}
}

func changed[T any](before, after state.State[T]) bool {
	return before.Query() != after.Query() || before.SelectedIndex() != after.SelectedIndex()
}

func traceChange[T any](before, after state.State[T]) {
	if before.Query() != after.Query() {
		events.Session.Query(after.Query(), len(after.Matches()))
		return
	}
	events.Session.Move(after.SelectedIndex())
}
