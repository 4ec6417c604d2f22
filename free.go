package vt

// maxFreeRows bounds how many discarded rows the pool holds onto; beyond
// that a resize storm just garbage-collects them instead of growing the
// pool without limit.
const maxFreeRows = 512

// freeList is the pool of discarded Rows and reusable empty Cells
// (spec.md §3, "Free list"; §9, "Free pool"). Rows recycled out of the
// Grid (on history eviction, or when a region scroll drains them) are reset to
// empty cells and kept here so the next scroll or resize doesn't need to
// allocate a fresh slice.
type freeList struct {
	style *Style
	rows  []Row
}

func newFreeList(style *Style) *freeList {
	return &freeList{style: style}
}

// cell returns a reusable empty cell sharing the pool's default style.
func (f *freeList) cell() Cell {
	return emptyCell(f.style)
}

// pop returns a row of exactly cols empty cells, reusing a pooled row if
// one is available.
func (f *freeList) pop(cols int) Row {
	if n := len(f.rows); n > 0 {
		row := f.rows[n-1]
		f.rows = f.rows[:n-1]
		row.Resize(cols, f.cell())
		for i := range row.cells {
			row.cells[i] = f.cell()
		}
		row.wrapped = false
		return row
	}
	return newRow(cols, f.style)
}

// push returns a row to the pool for later reuse.
func (f *freeList) push(row Row) {
	if len(f.rows) >= maxFreeRows {
		return
	}
	f.rows = append(f.rows, row)
}
