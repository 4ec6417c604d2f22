package vt

// Tabs tracks which columns are tab stops (spec.md §4.4). Stops default to
// every 8th column; a terminal can clear or set individual stops with TBC
// and HTS.
type Tabs struct {
	stops []bool
}

// NewTabs builds a Tabs for the given width with default stops every 8
// columns.
func NewTabs(cols int) *Tabs {
	t := &Tabs{stops: make([]bool, cols)}
	t.reset()
	return t
}

func (t *Tabs) reset() {
	for x := range t.stops {
		t.stops[x] = x%8 == 0
	}
}

// Set marks x as a tab stop.
func (t *Tabs) Set(x int) {
	if x >= 0 && x < len(t.stops) {
		t.stops[x] = true
	}
}

// Clear removes the stop at x.
func (t *Tabs) Clear(x int) {
	if x >= 0 && x < len(t.stops) {
		t.stops[x] = false
	}
}

// ClearAll removes every stop.
func (t *Tabs) ClearAll() {
	for x := range t.stops {
		t.stops[x] = false
	}
}

// Next returns the x of the n-th stop from x (spec.md §4.4): for n >= 0,
// the n-th stop strictly right of x, clamped to the last column; for
// n < 0, the |n|-th stop strictly left of x, clamped to 0.
func (t *Tabs) Next(n, x int) int {
	last := len(t.stops) - 1
	if n >= 0 {
		for ; n > 0; n-- {
			found := false
			for xi := x + 1; xi <= last; xi++ {
				if t.stops[xi] {
					x = xi
					found = true
					break
				}
			}
			if !found {
				return last
			}
		}
		return x
	}

	for ; n < 0; n++ {
		found := false
		for xi := x - 1; xi >= 0; xi-- {
			if t.stops[xi] {
				x = xi
				found = true
				break
			}
		}
		if !found {
			return 0
		}
	}
	return x
}

// Resize adjusts the stop set to a new width, preserving existing stops
// within the overlap and extending default stops into any new columns
// (spec.md §4.4).
func (t *Tabs) Resize(cols int) {
	if cols == len(t.stops) {
		return
	}
	grown := make([]bool, cols)
	copy(grown, t.stops)
	for x := len(t.stops); x < cols; x++ {
		grown[x] = x%8 == 0
	}
	t.stops = grown
}
