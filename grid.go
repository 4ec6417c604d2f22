package vt

// Grid holds the visible region and the scrollback history, and implements
// the scrolling, editing and resize-with-reflow operations of spec.md §4.3.
// Rows flow: the free list creates them, the Grid mutates them exclusively,
// scroll-up migrates them from the front of view to the back of back, and
// eviction recycles them into free.
type Grid struct {
	cols, rows int
	history    int

	free *freeList
	back []Row
	view []Row
}

// NewGrid builds a grid of cols x rows with the given scrollback limit,
// every cell sharing the default style.
func NewGrid(cols, rows, history int) *Grid {
	g := &Grid{
		history: history,
		free:    newFreeList(defaultStyle),
	}
	g.Resize(cols, rows)
	return g
}

// Cols and Rows return the grid's current dimensions.
func (g *Grid) Cols() int { return g.cols }
func (g *Grid) Rows() int { return g.rows }

// Back returns the scrollback rows, oldest first.
func (g *Grid) Back() []Row { return g.back }

// View returns the visible rows.
func (g *Grid) View() []Row { return g.view }

// Row returns a pointer to visible row y.
func (g *Grid) Row(y int) *Row { return &g.view[y] }

// At returns a pointer to the cell at (x, y) in the visible region.
func (g *Grid) At(x, y int) *Cell { return g.view[y].At(x) }

// CleanHistory drops scrollback rows beyond the history limit
// (spec.md §4.3, "clean_history").
func (g *Grid) CleanHistory() {
	if len(g.back) <= g.history {
		return
	}
	overflow := len(g.back) - g.history
	for i := 0; i < overflow; i++ {
		g.free.push(g.back[i])
	}
	g.back = append([]Row(nil), g.back[overflow:]...)
}

// CleanReferences walks right from (x, y) wiping Reference cells to Empty
// until a non-Reference cell is seen (spec.md §4.3).
func (g *Grid) CleanReferences(x, y int) {
	if !g.view[y].At(x).IsReference() {
		return
	}
	for xi := x; xi < g.cols; xi++ {
		cell := g.view[y].At(xi)
		if !cell.IsReference() {
			break
		}
		cell.MakeEmpty(g.free.style)
	}
}

// removeRow deletes and returns the row at index i.
func removeRow(rows []Row, i int) ([]Row, Row) {
	row := rows[i]
	rows = append(rows[:i:i], rows[i+1:]...)
	return rows, row
}

// insertRow inserts row at index i.
func insertRow(rows []Row, i int, row Row) []Row {
	rows = append(rows, Row{})
	copy(rows[i+1:], rows[i:])
	rows[i] = row
	return rows
}

// chunkCells splits cells into cols-sized rows, padding the final chunk
// with empty cells from free and marking every chunk but the last as
// wrapped: Wrapped() == true on a row means its successor continues it.
func chunkCells(cells []Cell, cols int, free *freeList) []Row {
	if len(cells) == 0 {
		row := newRow(0, defaultStyle)
		for row.Len() < cols {
			row.PushBack(free.cell())
		}
		return []Row{row}
	}

	var out []Row
	for start := 0; start < len(cells); start += cols {
		end := start + cols
		if end > len(cells) {
			end = len(cells)
		}
		chunk := append([]Cell(nil), cells[start:end]...)
		out = append(out, Row{cells: chunk})
	}
	for k := 0; k < len(out)-1; k++ {
		out[k].wrapped = true
	}

	last := &out[len(out)-1]
	for last.Len() < cols {
		last.PushBack(free.cell())
	}
	return out
}

// resizeRows reflows one deque (view or back) to a new column count,
// implementing spec.md §4.3 steps 1-3, and returns the cumulative row
// count delta the caller must apply to the cursor's Y.
func resizeRows(rows []Row, free *freeList, cols int) ([]Row, int) {
	offset := 0

	for i := len(rows) - 1; i >= 0; {
		// A row is a continuation of its predecessor when the
		// predecessor carries Wrapped() == true (the flag marks "the
		// following row continues this one", not "I am a
		// continuation"). Walk backward from i to find the head of
		// the logical line i belongs to.
		head := i
		for head > 0 && rows[head-1].Wrapped() {
			head--
		}

		if head == i {
			// No incoming continuation; handle row i on its own.
			if rows[i].Len() > cols {
				rows[i].TrimTrailingEmpty()
				if rows[i].Len() != cols {
					var removed Row
					rows, removed = removeRow(rows, i)
					chunks := chunkCells(removed.cells, cols, free)
					offset += len(chunks) - 1
					for k := len(chunks) - 1; k >= 0; k-- {
						rows = insertRow(rows, i, chunks[k])
					}
				}
			} else {
				rows[i].Resize(cols, free.cell())
			}
			i--
			continue
		}

		// Logical line spans rows[head..i]; strip trailing empty
		// cells from the last physical row, concatenate in order,
		// then re-chunk.
		rows[i].TrimTrailingEmpty()

		var flat []Cell
		for y := head; y <= i; y++ {
			flat = append(flat, rows[y].cells...)
		}
		before := i - head + 1

		for y := i; y >= head; y-- {
			rows, _ = removeRow(rows, y)
		}

		chunks := chunkCells(flat, cols, free)
		offset += len(chunks) - before
		for k := len(chunks) - 1; k >= 0; k-- {
			rows = insertRow(rows, head, chunks[k])
		}

		i = head - 1
	}

	return rows, offset
}

// Resize reflows the grid to a new column/row count and returns the net
// row offset the Cursor must add to its Y to stay on the same logical
// line (spec.md §4.3, "resize"). This is the hard operation in the whole
// core: it must unwrap previously-wrapped lines, re-chunk them to the new
// width, migrate rows between view and back to keep view exactly `rows`
// tall, and trim history to the limit.
func (g *Grid) Resize(cols, rows int) int {
	g.cols = cols
	g.rows = rows

	var offset int
	g.view, offset = resizeRows(g.view, g.free, cols)
	g.back, _ = resizeRows(g.back, g.free, cols)

	if len(g.view) > rows {
		for len(g.view) > rows && g.view[len(g.view)-1].AllEmpty() {
			g.view = g.view[:len(g.view)-1]
		}
		if overflow := len(g.view) - rows; overflow > 0 {
			g.back = append(g.back, g.view[:overflow]...)
			g.view = append([]Row(nil), g.view[overflow:]...)
		}
	}

	if len(g.view) < rows {
		overflow := rows - len(g.view)
		for i := 0; i < overflow; i++ {
			if n := len(g.back); n > 0 {
				row := g.back[n-1]
				g.back = g.back[:n-1]
				offset++
				g.view = append([]Row{row}, g.view...)
			} else {
				g.view = append(g.view, g.free.pop(cols))
			}
		}
	}

	g.CleanHistory()
	return offset
}

// Left shifts every view row n cells to the left, consuming contiguous
// Reference cells at the front so a wide character is never split
// (spec.md §4.3, "Scrolling").
func (g *Grid) Left(n int) {
	for k := 0; k < n; k++ {
		for y := range g.view {
			row := &g.view[y]
			row.PopFront()
			row.PushBack(g.free.cell())
			for row.Len() > 0 && row.cells[0].IsReference() {
				row.PopFront()
				row.PushBack(g.free.cell())
			}
		}
	}
}

// Right shifts every view row n cells to the right, consuming contiguous
// Reference cells at the back (spec.md §4.3).
func (g *Grid) Right(n int) {
	for k := 0; k < n; k++ {
		for y := range g.view {
			row := &g.view[y]
			for row.Len() > 0 && row.PopBack().IsReference() {
				row.PushFront(g.free.cell())
			}
			row.PushFront(g.free.cell())
		}
	}
}

// Up scrolls the view up by n rows. Without a region it is a full-screen
// scroll that migrates rows into scrollback; with a region it drains rows
// from the region's top and never touches history (spec.md §4.3).
func (g *Grid) Up(n int, region *[2]int) {
	if region != nil {
		y0, y1 := region[0], region[1]
		if n > y1-y0+1 {
			n = y1 - y0 + 1
		}
		if n < 0 {
			n = 0
		}
		for k := 0; k < n; k++ {
			g.free.push(g.view[y0])
			g.view = append(g.view[:y0:y0], g.view[y0+1:]...)
		}
		insertAt := y1 + 1 - n
		for k := 0; k < n; k++ {
			g.view = insertRow(g.view, insertAt+k, g.free.pop(g.cols))
		}
		return
	}

	for k := 0; k < n; k++ {
		g.view = append(g.view, g.free.pop(g.cols))
		g.back = append(g.back, g.view[0])
		g.view = g.view[1:]
	}
	g.CleanHistory()
}

// Down scrolls the view down by n rows, symmetric to Up (spec.md §4.3).
func (g *Grid) Down(n int, region *[2]int) {
	// Full-screen down-scroll never touches history: it is the region form
	// applied to the whole view.
	if region == nil {
		region = &[2]int{0, g.rows - 1}
	}
	y0, y1 := region[0], region[1]
	if n > y1-y0+1 {
		n = y1 - y0 + 1
	}
	if n < 0 {
		n = 0
	}
	for k := 0; k < n; k++ {
		g.view = insertRow(g.view, y0, g.free.pop(g.cols))
	}
	drainAt := y1 + 1
	for k := 0; k < n; k++ {
		g.free.push(g.view[drainAt])
		g.view = append(g.view[:drainAt:drainAt], g.view[drainAt+1:]...)
	}
}

// Delete drains n cells starting at (x, y), honoring wide-character
// widths when counting, and pads the tail with Empty (spec.md §4.3).
func (g *Grid) Delete(x, y, n int) {
	if n > g.cols-x {
		n = g.cols - x
	}
	if n < 0 {
		n = 0
	}
	row := &g.view[y]

	end := x
	for i := 0; i < n; i++ {
		end += row.At(end).Width()
		if end >= g.cols {
			end = g.cols
			break
		}
	}

	row.Drain(x, end)
	for row.Len() < g.cols {
		row.PushBack(g.free.cell())
	}
}

// Insert inserts n Empty cells at (x, y), draining overflow from the
// tail, and wipes any dangling wide-character halves left at the end
// (spec.md §4.3).
func (g *Grid) Insert(x, y, n int) {
	if n > g.cols {
		n = g.cols
	}
	if n < 0 {
		n = 0
	}
	row := &g.view[y]

	for i := 0; i < n; i++ {
		row.Insert(x, g.free.cell())
	}
	if row.Len() > g.cols {
		row.cells = row.cells[:g.cols]
	}

	width := 0
	for xi := g.cols - 1; xi >= 0; xi-- {
		width++
		if !row.At(xi).IsReference() {
			break
		}
	}
	start := g.cols - width
	if width != row.At(start).Width() {
		for xi := start; xi < g.cols; xi++ {
			row.At(xi).MakeEmpty(g.free.style)
		}
	}
}

// Wrapped sets row y's wrapped flag.
func (g *Grid) Wrapped(y int, value bool) {
	g.view[y].SetWrapped(value)
}
