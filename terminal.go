package vt

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// isBlank reports whether cluster is entirely whitespace, the case
// spec.md §4.7 step 5 writes as Empty cells instead of an Occupied
// grapheme (so trailing blanks stay eligible for TrimTrailingEmpty on
// reflow rather than pinning the row's length forever).
func isBlank(cluster string) bool {
	return strings.TrimSpace(cluster) == ""
}

// Terminal ties the Grid, Cursor, Tabs, Mode and Parser together into the
// single state machine a host program drives with raw pty bytes, key
// events and mouse events (spec.md §4.9 "Terminal"). It is Send but not
// Sync: a Terminal belongs to exactly one goroutine at a time, the same
// single-threaded-core model the teacher's Buffer abandons in favor of a
// sync.RWMutex (spec.md §5, "Concurrency & resource model").
type Terminal struct {
	grid    *Grid
	altGrid *Grid
	usingAlt bool

	cursor    *Cursor
	altCursor *Cursor

	tabs    *Tabs
	touched *Touched
	mode    Mode
	region  *scrollRegion

	config   Config
	interner styleInterner
	style    *Style // current SGR pen, shared via the interner

	parser *Parser

	cellW, cellH int // pixel cell size, for sixel tile sizing

	focused      bool
	blinkOn      bool
	scrollOffset int // rows scrolled back into history; 0 = viewing live output
}

// New builds a Terminal of cols x rows cells under cfg. cellW/cellH give
// the pixel size of one cell for sixel tiling; pass 0, 0 if the embedder
// never sends sixel data.
func New(cols, rows int, cellW, cellH int, cfg Config) *Terminal {
	t := &Terminal{
		tabs:    NewTabs(cols),
		touched: NewTouched(rows),
		mode:    defaultMode,
		config:  cfg,
		cellW:   cellW,
		cellH:   cellH,
		focused: true,
	}
	t.style = defaultStyle
	t.grid = NewGrid(cols, rows, cfg.HistoryLimit)
	t.cursor = NewCursor(defaultStyle)
	t.cursor.SetBlinking(cfg.CursorBlink)
	t.cursor.SetShape(cfg.CursorShape)
	t.parser = newParser(t)
	return t
}

// Cols, Rows and Grid expose read access for a renderer.
func (t *Terminal) Cols() int   { return t.grid.Cols() }
func (t *Terminal) Rows() int   { return t.grid.Rows() }
func (t *Terminal) Grid() *Grid { return t.grid }
func (t *Terminal) Cursor() *Cursor { return t.cursor }
func (t *Terminal) Mode() Mode { return t.mode }

// Touched returns the damage tracker so a renderer can ask which rows
// changed since the last call.
func (t *Terminal) Touched() *Touched { return t.touched }

// ScrollOffset reports how many rows back into history the viewport is
// currently scrolled; 0 means the live view (spec.md §3, Terminal's
// "optional scroll offset"). Scrolling back through history is an
// overlay/command-mode UI concern (an explicit Non-goal of the core,
// spec.md §1) — this just tracks the number so that UI can drive it.
func (t *Terminal) ScrollOffset() int { return t.scrollOffset }

// SetScrollOffset moves the viewport to n rows back into history, clamped
// to the available scrollback, and marks the screen dirty if it changed.
func (t *Terminal) SetScrollOffset(n int) {
	if n < 0 {
		n = 0
	}
	if max := len(t.grid.Back()); n > max {
		n = max
	}
	if n == t.scrollOffset {
		return
	}
	t.scrollOffset = n
	t.touched.All()
}

// ViewRow returns the row to display at screen position y, resolving the
// live grid against ScrollOffset: with no offset it's simply the current
// view; scrolled back, it blends the tail of history with the top of the
// view exactly where the offset says the boundary falls (spec.md §3,
// grounded on the teacher's scrollOffset-relative row lookup in
// buffer_scroll.go/buffer_splits.go).
func (t *Terminal) ViewRow(y int) *Row {
	back := t.grid.Back()
	if t.scrollOffset == 0 {
		return t.grid.Row(y)
	}
	idx := len(back) - t.scrollOffset + y
	if idx < 0 {
		idx = 0
	}
	if idx < len(back) {
		return &back[idx]
	}
	return t.grid.Row(idx - len(back))
}

func (t *Terminal) cellPixelSize() (int, int) { return t.cellW, t.cellH }

// sixelBackground resolves the "default background RGBA" a sixel decoder
// paints for 0 bits when the DCS header's background-fill flag is set
// (spec.md §4.6): the current pen's background color if SGR set one,
// otherwise palette index 0, the classic terminal-background swatch.
func (t *Terminal) sixelBackground() Color {
	if t.style.Background != nil {
		return *t.style.Background
	}
	return t.config.Palette[0]
}

// Input feeds raw bytes read from the pty through the control parser and
// returns any Actions they produced (spec.md §4.9 "input").
func (t *Terminal) Input(data []byte) []Action {
	return t.parser.Feed(data)
}

// insertText segments s into grapheme clusters and writes each into the
// grid at the cursor, honoring auto-wrap, insert mode and wide-character
// placement (spec.md §4.1 I1-I3, §4.9 "input").
func (t *Terminal) insertText(s string) {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		t.insertCluster(cluster)
	}
}

// translateCluster applies the active G-set's charset translation
// (spec.md §4.7 "Text insertion", step 1). Only a cluster that is itself a
// single ASCII-range rune is eligible: DEC Special Graphics remaps
// individual bytes, never multi-rune grapheme clusters.
func (t *Terminal) translateCluster(cluster string) string {
	cs := t.cursor.Charset()
	if cs != CharsetDECGraphics {
		return cluster
	}
	r, size := utf8.DecodeRuneInString(cluster)
	if size != len(cluster) || r > 0x7f {
		return cluster
	}
	if g := translate(cs, byte(r), r); g != r {
		return string(g)
	}
	return cluster
}

func (t *Terminal) insertCluster(cluster string) {
	cluster = t.translateCluster(cluster)
	cols := t.grid.Cols()
	width := runewidth.StringWidth(cluster)
	if width == 0 {
		// Zero-width cluster (a lone combining mark uniseg couldn't
		// attach to anything): dropped silently (spec.md §4.7 step 2).
		return
	}

	if t.cursor.WrapPending() {
		t.wrapLine()
	}
	if t.cursor.X+width > cols {
		t.wrapLine()
	}

	x, y := t.cursor.X, t.cursor.Y
	if x+width > cols {
		// Still doesn't fit even after a wrap attempt (e.g. a wide
		// cluster on a one-column terminal): blank the remainder and
		// bail rather than write past the row (spec.md §4.7 step 4).
		for xi := x; xi < cols; xi++ {
			t.grid.At(xi, y).MakeEmpty(t.style)
		}
		t.touched.Line(y)
		return
	}
	if t.mode.Has(ModeInsert) {
		t.grid.Insert(x, y, width)
	}

	if isBlank(cluster) {
		for i := 0; i < width; i++ {
			t.grid.At(x+i, y).MakeEmpty(t.style)
		}
	} else {
		t.grid.At(x, y).MakeOccupied(cluster, t.style)
		for i := 1; i < width; i++ {
			t.grid.At(x+i, y).MakeReference(uint8(i))
		}
	}
	if x+width < cols {
		t.grid.CleanReferences(x+width, y)
	}
	t.touched.Line(y)

	t.cursor.X += width
	if t.cursor.X >= cols {
		t.cursor.X = cols - 1
		t.cursor.SetWrapPending(true)
	}
}

// wrapLine advances to the next line, scrolling if needed, and marks the
// row left behind as wrapped so reflow can unwrap it later
// (spec.md §4.1 I4, §4.3 reflow).
func (t *Terminal) wrapLine() {
	if !t.mode.Has(ModeWrap) {
		t.cursor.SetWrapPending(false)
		return
	}
	y := t.cursor.Y
	t.grid.Wrapped(y, true)
	t.cursor.X = 0
	t.cursor.SetWrapPending(false)
	if scrolled := t.cursor.Travel(TravelDown, 1, t.grid.Cols(), t.grid.Rows(), t.region, t.tabs); scrolled {
		t.scrollUp(1)
	}
	t.touched.Line(t.cursor.Y)
}

func (t *Terminal) backspace() {
	if t.cursor.X > 0 {
		t.cursor.X--
		t.cursor.SetWrapPending(false)
	}
}

func (t *Terminal) tab(n int) {
	t.cursor.Travel(TravelForwardTab, n, t.grid.Cols(), t.grid.Rows(), t.region, t.tabs)
}

func (t *Terminal) lineFeed() {
	if scrolled := t.cursor.Travel(TravelDown, 1, t.grid.Cols(), t.grid.Rows(), t.region, t.tabs); scrolled {
		t.scrollUp(1)
	}
	if t.mode.Has(ModeCRLF) {
		t.cursor.X = 0
	}
	t.touched.Line(t.cursor.Y)
}

func (t *Terminal) carriageReturn() {
	t.cursor.X = 0
	t.cursor.SetWrapPending(false)
}

// reverseIndex moves the cursor up one row, scrolling the region down if
// it was already at the top (ESC M).
func (t *Terminal) reverseIndex() {
	top := 0
	if t.region != nil {
		top = t.region.top
	}
	if t.cursor.Y == top {
		t.scrollDown(1)
	} else {
		t.cursor.Travel(TravelUp, 1, t.grid.Cols(), t.grid.Rows(), t.region, t.tabs)
	}
	t.touched.Line(t.cursor.Y)
}

func (t *Terminal) cursorTravel(travel Travel, n int) {
	if scrolled := t.cursor.Travel(travel, n, t.grid.Cols(), t.grid.Rows(), t.region, t.tabs); scrolled {
		t.scrollUp(1)
	}
	t.touched.Line(t.cursor.Y)
}

func (t *Terminal) setCursorPosition(x, y int) {
	t.cursor.Travel(TravelRow, y, t.grid.Cols(), t.grid.Rows(), t.region, t.tabs)
	t.cursor.Travel(TravelColumn, x, t.grid.Cols(), t.grid.Rows(), t.region, t.tabs)
	t.touched.Line(t.cursor.Y)
}

// eraseInDisplay implements ED (spec.md §4.7): 0 = cursor-to-end,
// 1 = start-to-cursor, 2/3 = everything.
func (t *Terminal) eraseInDisplay(n int) {
	cols, rows := t.grid.Cols(), t.grid.Rows()
	switch n {
	case 0:
		t.eraseInLine(0)
		for y := t.cursor.Y + 1; y < rows; y++ {
			t.eraseRow(y)
		}
	case 1:
		t.eraseInLine(1)
		for y := 0; y < t.cursor.Y; y++ {
			t.eraseRow(y)
		}
	case 2, 3:
		for y := 0; y < rows; y++ {
			t.eraseRow(y)
		}
	}
	_ = cols
	t.touched.All()
}

func (t *Terminal) eraseRow(y int) {
	row := t.grid.Row(y)
	for x := 0; x < row.Len(); x++ {
		row.At(x).MakeEmpty(t.style)
	}
	row.SetWrapped(false)
}

// eraseInLine implements EL: 0 = cursor-to-end, 1 = start-to-cursor,
// 2 = whole line. Both partial forms walk references at their boundary so
// a wide character straddling the cut is removed atomically rather than
// left with a dangling half (spec.md §4.7 "Character erase/delete").
func (t *Terminal) eraseInLine(n int) {
	row := t.grid.Row(t.cursor.Y)
	cols := row.Len()
	switch n {
	case 0:
		start := t.cursor.X
		for start > 0 && row.At(start).IsReference() {
			start--
		}
		for x := start; x < cols; x++ {
			row.At(x).MakeEmpty(t.style)
		}
	case 1:
		for x := 0; x <= t.cursor.X && x < cols; x++ {
			row.At(x).MakeEmpty(t.style)
		}
		if t.cursor.X+1 < cols {
			t.grid.CleanReferences(t.cursor.X+1, t.cursor.Y)
		}
	case 2:
		for x := 0; x < cols; x++ {
			row.At(x).MakeEmpty(t.style)
		}
	}
	t.touched.Line(t.cursor.Y)
}

func (t *Terminal) insertLines(n int) {
	region := t.effectiveRegion()
	if t.cursor.Y < region.top || t.cursor.Y > region.bottom {
		return
	}
	t.grid.Down(n, &[2]int{t.cursor.Y, region.bottom})
	t.touched.Range(t.cursor.Y, region.bottom)
}

func (t *Terminal) deleteLines(n int) {
	region := t.effectiveRegion()
	if t.cursor.Y < region.top || t.cursor.Y > region.bottom {
		return
	}
	t.grid.Up(n, &[2]int{t.cursor.Y, region.bottom})
	t.touched.Range(t.cursor.Y, region.bottom)
}

func (t *Terminal) deleteChars(n int) {
	t.grid.Delete(t.cursor.X, t.cursor.Y, n)
	t.touched.Line(t.cursor.Y)
}

func (t *Terminal) insertChars(n int) {
	t.grid.Insert(t.cursor.X, t.cursor.Y, n)
	t.touched.Line(t.cursor.Y)
}

// eraseChars implements ECH(n): blank n cells from the cursor, then clean
// any Reference cells left dangling past the erased block so a wide
// character whose primary was just erased doesn't leave orphaned
// continuations behind (spec.md §4.7, "After EraseCharacter(n), call
// clean_references(x+n, y)").
func (t *Terminal) eraseChars(n int) {
	row := t.grid.Row(t.cursor.Y)
	for x := t.cursor.X; x < t.cursor.X+n && x < row.Len(); x++ {
		row.At(x).MakeEmpty(t.style)
	}
	if t.cursor.X+n < row.Len() {
		t.grid.CleanReferences(t.cursor.X+n, t.cursor.Y)
	}
	t.touched.Line(t.cursor.Y)
}

func (t *Terminal) scrollUp(n int) {
	t.grid.Up(n, t.regionBounds())
	if t.region == nil && t.scrollOffset > 0 {
		// New rows pushed into history while the viewport is scrolled
		// back: keep the same logical lines on screen rather than
		// silently snapping forward (spec.md §3, Terminal's "optional
		// scroll offset"; grounded on the teacher's scrollOffset
		// bookkeeping in buffer_scroll.go).
		t.SetScrollOffset(t.scrollOffset + n)
	}
	t.touched.All()
}

func (t *Terminal) scrollDown(n int) {
	t.grid.Down(n, t.regionBounds())
	t.touched.All()
}

func (t *Terminal) regionBounds() *[2]int {
	if t.region == nil {
		return nil
	}
	return &[2]int{t.region.top, t.region.bottom}
}

func (t *Terminal) effectiveRegion() scrollRegion {
	if t.region != nil {
		return *t.region
	}
	return scrollRegion{top: 0, bottom: t.grid.Rows() - 1}
}

// setScrollRegion implements DECSTBM; an invalid or full-screen region is
// normalized to nil so the fast full-screen scroll path is used
// (spec.md §4.7 "ScrollRegion").
func (t *Terminal) setScrollRegion(top, bottom int) {
	rows := t.grid.Rows()
	if top < 0 {
		top = 0
	}
	if bottom > rows-1 || bottom <= 0 {
		bottom = rows - 1
	}
	if top >= bottom || (top == 0 && bottom == rows-1) {
		t.region = nil
	} else {
		t.region = &scrollRegion{top: top, bottom: bottom}
	}
	t.cursor.Travel(TravelHome, 0, t.grid.Cols(), rows, t.region, t.tabs)
}

// deviceAttributes answers CSI c (DA1) the way a VT220-class terminal
// with SIXEL support does (spec.md §4.7 "DA1 reply").
func (t *Terminal) deviceAttributes() []Action {
	return []Action{ActionReply{Bytes: []byte("\x1b[?62;1;4;6c")}}
}

// deviceStatusReport answers CSI n: 5 = general status OK, 6 = CPR
// (spec.md §4.7 "CPR").
func (t *Terminal) deviceStatusReport(n int) []Action {
	switch n {
	case 5:
		return []Action{ActionReply{Bytes: []byte("\x1b[0n")}}
	case 6:
		reply := "\x1b[" + itoaDigits(t.cursor.Y+1) + ";" + itoaDigits(t.cursor.X+1) + "R"
		return []Action{ActionReply{Bytes: []byte(reply)}}
	}
	return nil
}

func itoaDigits(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// clearTabs implements TBC: 0 clears the stop under the cursor, 3 clears
// every stop.
func (t *Terminal) clearTabs(n int) {
	switch n {
	case 0:
		t.tabs.Clear(t.cursor.X)
	case 3:
		t.tabs.ClearAll()
	}
}

func (t *Terminal) setCursorShape(n int) {
	switch n {
	case 0, 1, 2:
		t.cursor.SetShape(CursorBlock)
		t.cursor.SetBlinking(n != 2)
	case 3, 4:
		t.cursor.SetShape(CursorUnderline)
		t.cursor.SetBlinking(n == 3)
	case 5, 6:
		t.cursor.SetShape(CursorBar)
		t.cursor.SetBlinking(n == 5)
	}
}

// setAltScreen switches between the primary and alternate screen buffers
// (DECSET 47/1047/1049), each with its own cursor and history-free grid.
func (t *Terminal) setAltScreen(enable bool) {
	if enable == t.usingAlt {
		return
	}
	cols, rows := t.grid.Cols(), t.grid.Rows()
	if enable {
		t.altGrid = NewGrid(cols, rows, 0)
		t.altCursor = NewCursor(defaultStyle)
		t.grid, t.altGrid = t.altGrid, t.grid
		t.cursor, t.altCursor = t.altCursor, t.cursor
	} else {
		t.grid, t.altGrid = t.altGrid, t.grid
		t.cursor, t.altCursor = t.altCursor, t.cursor
		t.altGrid = nil
		t.altCursor = nil
	}
	t.usingAlt = enable
	t.scrollOffset = 0 // the alt screen carries no scrollback to view
	t.touched.All()
}

// reset restores default modes, erases both screens and resets the
// cursor and tab stops (ESC c, RIS).
func (t *Terminal) reset() {
	cols, rows := t.grid.Cols(), t.grid.Rows()
	t.mode = defaultMode
	t.region = nil
	t.style = defaultStyle
	t.interner = styleInterner{}
	t.grid = NewGrid(cols, rows, t.config.HistoryLimit)
	t.cursor = NewCursor(defaultStyle)
	t.cursor.SetBlinking(t.config.CursorBlink)
	t.cursor.SetShape(t.config.CursorShape)
	t.tabs = NewTabs(cols)
	t.usingAlt = false
	t.altGrid = nil
	t.altCursor = nil
	t.scrollOffset = 0
	t.touched.All()
}

// placeSixel paints a decoded sixel image into the grid starting at the
// cursor, one Image cell per tile (spec.md §4.6 "handle").
func (t *Terminal) placeSixel(tiles []Bitmap, cols, rows int) {
	if cols == 0 || rows == 0 {
		return
	}
	x0, y0 := t.cursor.X, t.cursor.Y
	gridCols, gridRows := t.grid.Cols(), t.grid.Rows()
	for ty := 0; ty < rows; ty++ {
		y := y0 + ty
		if y >= gridRows {
			break
		}
		for tx := 0; tx < cols; tx++ {
			x := x0 + tx
			if x >= gridCols {
				break
			}
			t.grid.At(x, y).MakeImage(tiles[ty*cols+tx], t.style)
		}
	}
	t.touched.Range(y0, min(y0+rows-1, gridRows-1))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Resize reflows the grid to the new size and clamps the cursor, tabs and
// damage tracker to match (spec.md §4.9 "resize").
func (t *Terminal) Resize(cols, rows int) {
	offset := t.grid.Resize(cols, rows)
	t.cursor.Resize(cols, rows, offset)
	t.tabs.Resize(cols)
	t.touched.Resize(rows)
	if t.altGrid != nil {
		t.altGrid.Resize(cols, rows)
	}
	// Reflow changes how much history exists; re-clamp rather than leave a
	// stale offset pointing past the end (teacher's buffer.go does the same
	// re-clamp against maxOffset after geometry changes).
	t.SetScrollOffset(t.scrollOffset)
}

// Focus records whether the host window holds focus and returns the
// focus-in/focus-out escape sequence to write back, if focus reporting
// is enabled (spec.md §4.9 "focus").
func (t *Terminal) Focus(focused bool) []byte {
	t.focused = focused
	if !t.mode.Has(ModeFocusEvents) {
		return nil
	}
	if focused {
		return []byte("\x1b[I")
	}
	return []byte("\x1b[O")
}

// Paste wraps text in bracketed-paste markers if that mode is enabled,
// otherwise returns it unchanged (spec.md §4.9 "paste").
func (t *Terminal) Paste(text string) []byte {
	if !t.mode.Has(ModeBracketedPaste) {
		return []byte(text)
	}
	out := make([]byte, 0, len(text)+12)
	out = append(out, "\x1b[200~"...)
	out = append(out, text...)
	out = append(out, "\x1b[201~"...)
	return out
}

// Blink toggles the shared blink phase used by blinking text and a
// blinking cursor, returning whether anything actually changed so a
// renderer knows whether to repaint (spec.md §4.9 "blinking").
func (t *Terminal) Blink() bool {
	t.blinkOn = !t.blinkOn
	if t.mode.Has(ModeBlink) || t.cursor.Blinking() {
		t.touched.All()
		return true
	}
	return false
}

// BlinkPhase reports the current blink phase for a renderer to decide
// whether to paint blinking text/cursor this frame.
func (t *Terminal) BlinkPhase() bool { return t.blinkOn }
