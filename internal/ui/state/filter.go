package state

import "github.com/atomicstack/fjsf/internal/fuzzy"

// WithQuery replaces the query, recomputes matches over the full item list
// and resets the selection to the top.
func (s State[T]) WithQuery(query string) State[T] {
	next := s
	next.query = query
	next.matches = fuzzy.Search(s.items, query, s.text)
	next.selected = 0
	return next
}

// InsertText appends text to the query.
func (s State[T]) InsertText(text string) State[T] {
	if text == "" {
		return s
	}
	return s.WithQuery(s.query + text)
}

// DeleteBackward removes the last rune of the query. An empty query is left
// as is.
func (s State[T]) DeleteBackward() State[T] {
	runes := []rune(s.query)
	if len(runes) == 0 {
		return s
	}
	return s.WithQuery(string(runes[:len(runes)-1]))
}
