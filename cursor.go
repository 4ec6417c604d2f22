package vt

// CursorState is the small bitset of sticky cursor flags distinct from
// Mode, since they travel with DECSC/DECRC save-restore rather than with
// the terminal as a whole (spec.md §4.2 "Cursor").
type CursorState uint8

const (
	CursorBlink CursorState = 1 << iota
	CursorVisible
	CursorWrapPending
	CursorOrigin
)

// CursorShape is the DECSCUSR presentation hint (spec.md §4.2).
type CursorShape uint8

const (
	CursorBlock CursorShape = iota
	CursorUnderline
	CursorBar
)

// Charset selects which glyph table a G-set maps to (spec.md §4.2,
// "charsets"). CharsetDECGraphics is the DEC Special Graphics line-drawing
// set switched in by ESC ( 0 and shifted in with SO/SI.
type Charset uint8

const (
	CharsetASCII Charset = iota
	CharsetDECGraphics
	CharsetUK
)

// Travel enumerates the cursor-motion requests Terminal issues; Cursor.Travel
// turns each into an (x, y) delta and applies wrap/scroll-region clamping
// consistently in one place instead of scattering it across every CSI
// handler (spec.md §4.2 "travel").
type Travel int

const (
	TravelUp Travel = iota
	TravelDown
	TravelLeft
	TravelRight
	TravelNextLine
	TravelPrevLine
	TravelColumn
	TravelRow
	TravelHome
	TravelForwardTab
	TravelBackTab
)

// Cursor is the terminal's single insertion point, plus the charset and
// style state that DECSC/DECRC must save and restore alongside it
// (spec.md §4.2).
type Cursor struct {
	X, Y  int
	state CursorState
	shape CursorShape
	style *Style

	g          [2]Charset // G0, G1
	active     int        // 0 or 1, selected by SI/SO
	bright     int        // last plain (non-bright) indexed fg 0-7 for bright-on-bold; -1 if none
	saved      *savedCursor
}

type savedCursor struct {
	x, y   int
	state  CursorState
	style  *Style
	g      [2]Charset
	active int
	bright int
}

// NewCursor returns a cursor at the origin, visible, blinking, in the
// default style and ASCII charset.
func NewCursor(style *Style) *Cursor {
	return &Cursor{
		state:  CursorVisible | CursorBlink,
		style:  style,
		bright: -1,
	}
}

func (c *Cursor) Visible() bool      { return c.state&CursorVisible != 0 }
func (c *Cursor) Blinking() bool     { return c.state&CursorBlink != 0 }
func (c *Cursor) WrapPending() bool  { return c.state&CursorWrapPending != 0 }
func (c *Cursor) OriginMode() bool   { return c.state&CursorOrigin != 0 }
func (c *Cursor) Shape() CursorShape { return c.shape }
func (c *Cursor) Style() *Style      { return c.style }

func (c *Cursor) SetVisible(v bool)     { c.toggle(CursorVisible, v) }
func (c *Cursor) SetBlinking(v bool)    { c.toggle(CursorBlink, v) }
func (c *Cursor) SetWrapPending(v bool) { c.toggle(CursorWrapPending, v) }
func (c *Cursor) SetOriginMode(v bool)  { c.toggle(CursorOrigin, v) }
func (c *Cursor) SetShape(s CursorShape) { c.shape = s }
func (c *Cursor) SetStyle(s *Style)      { c.style = s }

// Bright returns the last plain (non-bright) indexed foreground 0-7 set by
// SGR 30-37/38;5;n<8, or -1 if none is tracked — the "bright-on-bold" state
// spec.md §3 names on the Cursor so a later, separate Bold SGR can still
// boost a color chosen in an earlier sequence.
func (c *Cursor) Bright() int     { return c.bright }
func (c *Cursor) SetBright(n int) { c.bright = n }

func (c *Cursor) toggle(mask CursorState, v bool) {
	if v {
		c.state |= mask
	} else {
		c.state &^= mask
	}
}

// Charset returns the glyph table currently shifted in (G0 unless SO has
// selected G1).
func (c *Cursor) Charset() Charset { return c.g[c.active] }

// Designate assigns a charset to G-set slot (0 or 1) via ESC ( / ESC ).
func (c *Cursor) Designate(slot int, cs Charset) { c.g[slot] = cs }

// ShiftOut selects G1 (Ctrl-N); ShiftIn selects G0 (Ctrl-O).
func (c *Cursor) ShiftOut() { c.active = 1 }
func (c *Cursor) ShiftIn()  { c.active = 0 }

// Save snapshots position, attributes and charset state for DECSC.
func (c *Cursor) Save() {
	c.saved = &savedCursor{
		x: c.X, y: c.Y,
		state:  c.state,
		style:  c.style,
		g:      c.g,
		active: c.active,
		bright: c.bright,
	}
}

// Restore applies a prior Save for DECRC; a no-op if nothing was saved,
// per spec.md's DECRC edge case.
func (c *Cursor) Restore() {
	if c.saved == nil {
		return
	}
	c.X, c.Y = c.saved.x, c.saved.y
	c.state = c.saved.state
	c.style = c.saved.style
	c.g = c.saved.g
	c.active = c.saved.active
	c.bright = c.saved.bright
}

// scrollRegion names the rows a relative travel must respect; nil means
// the full screen.
type scrollRegion struct{ top, bottom int }

// Travel applies one motion request and returns whether the cursor fell
// off the bottom of its region, the signal Terminal uses to trigger a
// scroll instead of clamping in place (spec.md §4.2 "travel").
func (c *Cursor) Travel(t Travel, n, cols, rows int, region *scrollRegion, tabs *Tabs) (scrolled bool) {
	c.SetWrapPending(false)

	top, bottom := 0, rows-1
	if region != nil {
		top, bottom = region.top, region.bottom
	}

	switch t {
	case TravelUp:
		c.Y -= n
		if c.Y < top {
			c.Y = top
		}
	case TravelDown:
		c.Y += n
		if c.Y > bottom {
			c.Y = bottom
			scrolled = true
		}
	case TravelLeft:
		c.X -= n
		if c.X < 0 {
			c.X = 0
		}
	case TravelRight:
		c.X += n
		if c.X > cols-1 {
			c.X = cols - 1
		}
	case TravelNextLine:
		c.X = 0
		c.Y += n
		if c.Y > bottom {
			c.Y = bottom
			scrolled = true
		}
	case TravelPrevLine:
		c.X = 0
		c.Y -= n
		if c.Y < top {
			c.Y = top
		}
	case TravelColumn:
		c.X = n
		if c.X < 0 {
			c.X = 0
		}
		if c.X > cols-1 {
			c.X = cols - 1
		}
	case TravelRow:
		c.Y = n
		if c.OriginMode() {
			c.Y += top
		}
		if c.Y < 0 {
			c.Y = 0
		}
		if c.Y > rows-1 {
			c.Y = rows - 1
		}
	case TravelHome:
		c.X = 0
		c.Y = top
		if !c.OriginMode() {
			c.Y = 0
		}
	case TravelForwardTab:
		c.X = tabs.Next(n, c.X)
	case TravelBackTab:
		c.X = tabs.Next(-n, c.X)
	}
	return scrolled
}

// Resize clamps the cursor into the new bounds after Grid.Resize and
// applies the row offset the reflow produced (spec.md §4.2 "resize").
func (c *Cursor) Resize(cols, rows, offset int) {
	c.Y += offset
	if c.X > cols-1 {
		c.X = cols - 1
	}
	if c.Y < 0 {
		c.Y = 0
	}
	if c.Y > rows-1 {
		c.Y = rows - 1
	}
	c.SetWrapPending(false)
}
