package vt

// sixelPalette is the 16-color VT340 default register set, overridable by
// color-introducer commands and restored on every Reset (spec.md §4.6
// "SIXEL decoder").
var sixelPalette = [16]Color{
	RGB(0, 0, 0), RGB(51, 51, 204), RGB(204, 33, 33), RGB(51, 204, 51),
	RGB(204, 51, 204), RGB(51, 204, 204), RGB(204, 204, 51), RGB(135, 135, 135),
	RGB(66, 66, 66), RGB(84, 84, 238), RGB(238, 66, 66), RGB(84, 238, 84),
	RGB(238, 84, 238), RGB(84, 238, 238), RGB(238, 238, 84), RGB(255, 255, 255),
}

// Sixel decodes a DCS sixel graphics stream into a Bitmap, then slices it
// into cell-sized tiles for the caller to paint into the Grid as Image
// cells (spec.md §4.6). It is driven one raw byte at a time by the control
// parser's Sixel state.
type Sixel struct {
	cellW, cellH int

	palette [256]Color
	color   int

	x, y int // pixel cursor, (0,0) at the top-left of the whole image
	maxX, maxY int

	panNum, padNum int // aspect ratio numerator/denominator (pixel aspect)
	aspect         int // resolved vertical scale: each sixel bit covers `aspect` pixel rows

	background     Color // painted for 0 bits when backgroundFill is set
	backgroundFill bool   // the DCS header's P2 background-select flag

	pix map[[2]int]Color // sparse pixel store; sixel images are usually small
}

// NewSixel builds a decoder tiling output into cellW x cellH pixel cells,
// with the default VT340 palette loaded into registers 0-15.
func NewSixel(cellW, cellH int) *Sixel {
	s := &Sixel{cellW: cellW, cellH: cellH}
	s.Reset()
	return s
}

// Reset restores the default palette and pixel cursor, called at the start
// of every new sixel stream (spec.md §4.6 "start").
func (s *Sixel) Reset() {
	for i := 0; i < 16; i++ {
		s.palette[i] = sixelPalette[i]
	}
	for i := 16; i < 256; i++ {
		s.palette[i] = RGB(0, 0, 0)
	}
	s.color = 0
	s.x, s.y = 0, 0
	s.maxX, s.maxY = 0, 0
	s.panNum, s.padNum = 1, 1
	s.aspect = 1
	s.pix = make(map[[2]int]Color)
}

// Aspect records the pixel aspect ratio from the DCS header parameters
// (Pan, Pad) and resolves the integer vertical scale factor Value and
// LineFeed advance by: only the Pan/Pad ratio matters for the output
// geometry (spec.md §4.6 "Raster{aspect}").
func (s *Sixel) Aspect(pan, pad int) {
	if pan <= 0 {
		pan = 1
	}
	if pad <= 0 {
		pad = 1
	}
	s.panNum, s.padNum = pan, pad
	s.aspect = pan / pad
	if s.aspect < 1 {
		s.aspect = 1
	}
}

// SetBackground records the header's P2 background-select flag and the
// color to paint for 0 bits when it is set (spec.md §4.6 "Value": "set to
// background if bit is 0 and the header's background-fill flag is set").
func (s *Sixel) SetBackground(bg Color, fill bool) {
	s.background = bg
	s.backgroundFill = fill
}

// Define assigns an RGB (Pu=2) or HLS (Pu=1) color to register Pc
// (spec.md §4.6 "Define"). RGB percentages are scaled to 0-255; HLS values
// are converted via the standard HLS-to-RGB transform.
func (s *Sixel) Define(pc, pu, px, py, pz int) {
	if pc < 0 || pc > 255 {
		return
	}
	switch pu {
	case 2:
		s.palette[pc] = RGB(scalePercent(px), scalePercent(py), scalePercent(pz))
	case 1:
		s.palette[pc] = hlsToRGB(px, py, pz)
	}
}

func scalePercent(v int) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return uint8(255 * v / 100)
}

// hlsToRGB converts DEC's H (0-360) L/S (0-100) sixel color space to RGB.
func hlsToRGB(h, l, s int) Color {
	hf := float64(h) / 360.0
	lf := float64(l) / 100.0
	sf := float64(s) / 100.0

	if sf == 0 {
		v := uint8(lf * 255)
		return RGB(v, v, v)
	}

	var q float64
	if lf < 0.5 {
		q = lf * (1 + sf)
	} else {
		q = lf + sf - lf*sf
	}
	p := 2*lf - q

	hue := func(t float64) float64 {
		if t < 0 {
			t++
		}
		if t > 1 {
			t--
		}
		switch {
		case t < 1.0/6:
			return p + (q-p)*6*t
		case t < 1.0/2:
			return q
		case t < 2.0/3:
			return p + (q-p)*(2.0/3-t)*6
		default:
			return p
		}
	}

	r := hue(hf + 1.0/3)
	g := hue(hf)
	b := hue(hf - 1.0/3)
	return RGB(uint8(r*255), uint8(g*255), uint8(b*255))
}

// SelectColor sets the active color register for subsequent data bytes.
func (s *Sixel) SelectColor(pc int) {
	if pc >= 0 && pc <= 255 {
		s.color = pc
	}
}

// Value handles one sixel data byte (0x3f-0x7e), painting up to six
// vertically-stacked pixels at the current cursor and advancing it one
// column right (spec.md §4.6 "next"/"draw"). Each of the six bits covers
// `aspect` pixel rows, per the Raster{aspect} header parameter; a 0 bit
// paints the background color when the header's background-fill flag is
// set, otherwise it leaves the pixel untouched.
func (s *Sixel) Value(b byte) {
	if b < 0x3f || b > 0x7e {
		return
	}
	bits := b - 0x3f
	for row := 0; row < 6; row++ {
		set := bits&(1<<uint(row)) != 0
		for a := 0; a < s.aspect; a++ {
			y := s.y + row*s.aspect + a
			if set {
				s.paint(s.x, y, s.palette[s.color])
			} else if s.backgroundFill {
				s.paint(s.x, y, s.background)
			}
		}
	}
	s.x++
	if s.x > s.maxX {
		s.maxX = s.x
	}
	if top := s.y + 6*s.aspect - 1; top > s.maxY {
		s.maxY = top
	}
}

func (s *Sixel) paint(x, y int, c Color) {
	s.pix[[2]int{x, y}] = c
}

// Repeat applies Value n times at the current column before advancing
// (the "!" repeat-introducer command).
func (s *Sixel) Repeat(n int, b byte) {
	for i := 0; i < n; i++ {
		s.Value(b)
	}
}

// CarriageReturn returns the pixel cursor to column 0 of the current band
// ("$").
func (s *Sixel) CarriageReturn() { s.x = 0 }

// LineFeed advances to the next 6-pixel band (scaled by the vertical
// aspect) and returns to column 0 ("-").
func (s *Sixel) LineFeed() {
	s.x = 0
	s.y += 6 * s.aspect
}

// Draw renders the accumulated pixels into a Bitmap and slices it into
// cellW x cellH tiles in row-major cell order, ready for Grid cells to
// adopt via Cell.MakeImage (spec.md §4.6 "draw"/"handle").
func (s *Sixel) Draw() (tiles []Bitmap, cols, rows int) {
	w, h := s.maxX+1, s.maxY+1
	if w <= 0 || h <= 0 {
		return nil, 0, 0
	}

	full := NewBitmap(w, h)
	for pos, c := range s.pix {
		r, g, b, a := c.RGBA()
		full.Set(pos[0], pos[1], r, g, b, a)
	}

	cols = (w + s.cellW - 1) / s.cellW
	rows = (h + s.cellH - 1) / s.cellH
	tiles = make([]Bitmap, cols*rows)

	for ty := 0; ty < rows; ty++ {
		for tx := 0; tx < cols; tx++ {
			tile := NewBitmap(s.cellW, s.cellH)
			for py := 0; py < s.cellH; py++ {
				for px := 0; px < s.cellW; px++ {
					sx, sy := tx*s.cellW+px, ty*s.cellH+py
					if sx < w && sy < h {
						i := (sy*w + sx) * 4
						tile.Set(px, py, full.Pix[i], full.Pix[i+1], full.Pix[i+2], full.Pix[i+3])
					}
				}
			}
			tiles[ty*cols+tx] = tile
		}
	}
	return tiles, cols, rows
}
