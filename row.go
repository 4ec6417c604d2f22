package vt

// Row is a fixed-width sequence of Cells plus a wrapped flag meaning "the
// following row is a continuation of this one" (spec.md §3, I4).
type Row struct {
	cells   []Cell
	wrapped bool
}

// newRow builds a row of n empty cells sharing the given style.
func newRow(n int, style *Style) Row {
	cells := make([]Cell, n)
	for i := range cells {
		cells[i] = emptyCell(style)
	}
	return Row{cells: cells}
}

// Len returns the row's current column count.
func (r *Row) Len() int { return len(r.cells) }

// Wrapped reports whether this row's line logically continues onto the
// next one.
func (r *Row) Wrapped() bool { return r.wrapped }

// SetWrapped sets the wrapped flag.
func (r *Row) SetWrapped(v bool) { r.wrapped = v }

// At returns a pointer to the cell at column x, for in-place mutation.
func (r *Row) At(x int) *Cell { return &r.cells[x] }

// Cells returns the row's backing slice directly; callers must not retain
// it across a Resize.
func (r *Row) Cells() []Cell { return r.cells }

// Resize truncates or extends the row to newLen, padding any new columns
// with copies of fill (spec.md §4.2).
func (r *Row) Resize(newLen int, fill Cell) {
	if newLen <= len(r.cells) {
		r.cells = r.cells[:newLen]
		return
	}
	grown := make([]Cell, newLen)
	copy(grown, r.cells)
	for i := len(r.cells); i < newLen; i++ {
		grown[i] = fill
	}
	r.cells = grown
}

// PushBack appends a cell.
func (r *Row) PushBack(c Cell) { r.cells = append(r.cells, c) }

// PushFront prepends a cell.
func (r *Row) PushFront(c Cell) {
	r.cells = append(r.cells, Cell{})
	copy(r.cells[1:], r.cells)
	r.cells[0] = c
}

// PopBack removes and returns the last cell.
func (r *Row) PopBack() Cell {
	c := r.cells[len(r.cells)-1]
	r.cells = r.cells[:len(r.cells)-1]
	return c
}

// PopFront removes and returns the first cell.
func (r *Row) PopFront() Cell {
	c := r.cells[0]
	r.cells = r.cells[1:]
	return c
}

// Insert places c at index i, shifting the tail right by one.
func (r *Row) Insert(i int, c Cell) {
	r.cells = append(r.cells, Cell{})
	copy(r.cells[i+1:], r.cells[i:])
	r.cells[i] = c
}

// Drain removes cells [i, j) and returns them.
func (r *Row) Drain(i, j int) []Cell {
	out := make([]Cell, j-i)
	copy(out, r.cells[i:j])
	r.cells = append(r.cells[:i], r.cells[j:]...)
	return out
}

// TrimTrailingEmpty strips trailing Empty cells, used by the reflow
// policy in Grid.Resize (spec.md §4.3, step 1).
func (r *Row) TrimTrailingEmpty() {
	for len(r.cells) > 0 && r.cells[len(r.cells)-1].IsEmpty() {
		r.cells = r.cells[:len(r.cells)-1]
	}
}

// AllEmpty reports whether every cell in the row is Empty.
func (r *Row) AllEmpty() bool {
	for i := range r.cells {
		if !r.cells[i].IsEmpty() {
			return false
		}
	}
	return true
}
