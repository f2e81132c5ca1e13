package state

// Window is the half-open range [Start, End) of matches shown on screen.
type Window struct {
	Start int
	End   int
}

// Len returns the number of visible rows.
func (w Window) Len() int { return w.End - w.Start }

// Offset returns the row of idx within the window, or -1 when hidden.
func (w Window) Offset(idx int) int {
	if idx < w.Start || idx >= w.End {
		return -1
	}
	return idx - w.Start
}

// VisibleWindow centres the selection within at most maxVisible rows and
// slides the window back when it would run past the end of the list. A
// maxVisible of zero or less shows the whole list.
func VisibleWindow(total, selected, maxVisible int) Window {
	if total <= 0 {
		return Window{}
	}
	if maxVisible <= 0 {
		return Window{Start: 0, End: total}
	}
	half := maxVisible / 2
	start := max(0, selected-half)
	end := min(total, start+maxVisible)
	if end-start < maxVisible && total >= maxVisible {
		start = max(0, end-maxVisible)
	}
	return Window{Start: start, End: end}
}

// Remaining is the count shown in the "... N more" indicator.
func Remaining(total, maxVisible int) int {
	if maxVisible <= 0 || total <= maxVisible {
		return 0
	}
	return total - maxVisible
}
