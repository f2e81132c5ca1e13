// Package state holds the immutable snapshot of an interactive search
// session and the pure transitions between snapshots.
package state

import (
	"github.com/atomicstack/fjsf/internal/fuzzy"
	"github.com/atomicstack/fjsf/internal/input"
)

// Outcome reports whether a session is still running after a transition.
type Outcome int

const (
	Active Outcome = iota
	Exited
	Confirmed
)

func (o Outcome) String() string {
	switch o {
	case Exited:
		return "exited"
	case Confirmed:
		return "confirmed"
	default:
		return "active"
	}
}

// State is a value type. Transitions return a new State and leave the
// receiver untouched; the item list is shared and never modified.
type State[T any] struct {
	query    string
	selected int
	matches  []fuzzy.Match[T]
	items    []T
	text     func(T) string
}

// New returns the initial state for items: empty query, every item listed
// unscored, first entry selected.
func New[T any](items []T, text func(T) string) State[T] {
	return State[T]{
		items:   items,
		text:    text,
		matches: fuzzy.Search(items, "", text),
	}
}

func (s State[T]) Query() string { return s.query }

func (s State[T]) SelectedIndex() int { return s.selected }

// Matches returns the ranked matches for the current query. Callers must not
// modify the returned slice.
func (s State[T]) Matches() []fuzzy.Match[T] { return s.matches }

func (s State[T]) Items() []T { return s.items }

// Text returns the searchable text of item.
func (s State[T]) Text(item T) string { return s.text(item) }

// Selected returns the highlighted item, if any match exists.
func (s State[T]) Selected() (T, bool) {
	if s.selected < 0 || s.selected >= len(s.matches) {
		var zero T
		return zero, false
	}
	return s.matches[s.selected].Item, true
}

// Apply performs the transition for one decoded key.
func Apply[T any](s State[T], key input.Key) (State[T], Outcome) {
	switch key.Action {
	case input.Exit:
		return s, Exited
	case input.Confirm:
		return s, Confirmed
	case input.MoveUp:
		return s.Move(-1), Active
	case input.MoveDown:
		return s.Move(1), Active
	case input.Delete:
		return s.DeleteBackward(), Active
	case input.Insert:
		return s.InsertText(key.Char), Active
	}
	return s, Active
}
