package vt

// Touched tracks which rows have changed since the last time a renderer
// consumed the damage set (spec.md §4 "Touched"). A full-screen operation
// (resize, erase-all, scroll) marks everything dirty instead of recording
// every row individually.
type Touched struct {
	rows []bool
	all  bool
}

// NewTouched builds a damage tracker for the given row count, initially
// fully dirty so the first render paints everything.
func NewTouched(rows int) *Touched {
	return &Touched{rows: make([]bool, rows), all: true}
}

// Line marks row y dirty.
func (t *Touched) Line(y int) {
	if y >= 0 && y < len(t.rows) {
		t.rows[y] = true
	}
}

// Range marks rows [y0, y1] dirty, inclusive.
func (t *Touched) Range(y0, y1 int) {
	for y := y0; y <= y1; y++ {
		t.Line(y)
	}
}

// All marks the whole screen dirty, used by resize, full erase and
// full-screen scrolls.
func (t *Touched) All() { t.all = true }

// Resize adjusts the tracked row count and marks everything dirty, since a
// resize reflows content across every row.
func (t *Touched) Resize(rows int) {
	t.rows = make([]bool, rows)
	t.all = true
}

// Lines returns the sorted, deduplicated set of dirty row indices and
// clears the tracker. If the whole screen was marked dirty it returns
// every row index in [0, rows).
func (t *Touched) Lines() []int {
	defer t.clear()

	if t.all {
		out := make([]int, len(t.rows))
		for i := range out {
			out[i] = i
		}
		return out
	}

	var out []int
	for y, dirty := range t.rows {
		if dirty {
			out = append(out, y)
		}
	}
	return out
}

// Dirty reports whether anything has been marked touched at all.
func (t *Touched) Dirty() bool {
	if t.all {
		return true
	}
	for _, dirty := range t.rows {
		if dirty {
			return true
		}
	}
	return false
}

func (t *Touched) clear() {
	t.all = false
	for y := range t.rows {
		t.rows[y] = false
	}
}
