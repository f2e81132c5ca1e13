package state

// Move shifts the selection by delta, clamped to the match list.
func (s State[T]) Move(delta int) State[T] {
	next := s
	next.selected = clamp(s.selected+delta, len(s.matches))
	return next
}

func clamp(idx, n int) int {
	if n == 0 || idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}
