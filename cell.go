package vt

import "github.com/mattn/go-runewidth"

// CellKind tags which variant a Cell currently holds (spec.md §3, Cell).
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellOccupied
	CellImage
	CellReference
)

// Bitmap is a fixed-size RGBA tile, one per font cell, produced by the
// SIXEL decoder (spec.md §4.6) and stored directly in a Cell.
type Bitmap struct {
	W, H int
	Pix  []byte // 4 bytes per pixel, row-major, same layout as image.RGBA.Pix
}

// NewBitmap allocates a transparent w x h tile.
func NewBitmap(w, h int) Bitmap {
	return Bitmap{W: w, H: h, Pix: make([]byte, w*h*4)}
}

// Set paints a single pixel. Out-of-range coordinates are ignored.
func (b *Bitmap) Set(x, y int, r, g, bl, a uint8) {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return
	}
	i := (y*b.W + x) * 4
	b.Pix[i+0] = r
	b.Pix[i+1] = g
	b.Pix[i+2] = bl
	b.Pix[i+3] = a
}

// equal reports whether two bitmaps hold identical pixels. Used by
// Cell.MakeImage to decide whether replacing the stored image is
// necessary (spec.md §9, "Open question": the original compared the new
// buffer to itself, a bug; here it is compared to what's already stored).
func (b Bitmap) equal(o Bitmap) bool {
	if b.W != o.W || b.H != o.H {
		return false
	}
	if len(b.Pix) != len(o.Pix) {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// Cell is a single grid position (spec.md §3). Rather than a tagged union
// it's a flat struct with a Kind discriminant, since Go has no enum payload
// types; accessors enforce the same invariants the variant would.
type Cell struct {
	Kind  CellKind
	style *Style

	value string // CellOccupied: the grapheme cluster
	image Bitmap // CellImage: the bitmap tile
	offset uint8 // CellReference: distance to the primary cell
}

// emptyCell returns an Empty cell carrying the given style.
func emptyCell(style *Style) Cell {
	return Cell{Kind: CellEmpty, style: style}
}

// occupiedCell returns an Occupied cell holding one grapheme cluster.
func occupiedCell(value string, style *Style) Cell {
	return Cell{Kind: CellOccupied, style: style, value: value}
}

// referenceCell returns a continuation cell for a wide cluster offset
// columns to its left (spec.md I1/I2).
func referenceCell(offset uint8) Cell {
	return Cell{Kind: CellReference, offset: offset}
}

// imageCell returns an Image cell holding one bitmap tile.
func imageCell(bitmap Bitmap, style *Style) Cell {
	return Cell{Kind: CellImage, style: style, image: bitmap}
}

// IsEmpty, IsOccupied, IsReference and IsImage are the variant predicates
// from spec.md §4.1.
func (c *Cell) IsEmpty() bool     { return c.Kind == CellEmpty }
func (c *Cell) IsOccupied() bool  { return c.Kind == CellOccupied }
func (c *Cell) IsReference() bool { return c.Kind == CellReference }
func (c *Cell) IsImage() bool     { return c.Kind == CellImage }

// IsWide reports whether the cell's own display width is greater than one
// column. Undefined (always false) for Reference, which has no width of
// its own.
func (c *Cell) IsWide() bool {
	return c.Kind == CellOccupied && runewidth.StringWidth(c.value) > 1
}

// IsDefault holds iff the cell is Empty with no style overrides at all
// (spec.md §4.1).
func (c *Cell) IsDefault() bool {
	return c.Kind == CellEmpty && c.style.isDefault()
}

// MakeEmpty turns the cell into Empty with the given style.
func (c *Cell) MakeEmpty(style *Style) {
	*c = emptyCell(style)
}

// MakeOccupied turns the cell into Occupied with the given grapheme and
// style.
func (c *Cell) MakeOccupied(value string, style *Style) {
	*c = occupiedCell(value, style)
}

// MakeReference turns the cell into a Reference with the given offset.
func (c *Cell) MakeReference(offset uint8) {
	*c = referenceCell(offset)
}

// MakeImage turns the cell into an Image holding bitmap, unless the cell
// already holds an identical bitmap (see the Bitmap.equal doc comment).
func (c *Cell) MakeImage(bitmap Bitmap, style *Style) {
	if c.Kind == CellImage && c.image.equal(bitmap) {
		return
	}
	*c = imageCell(bitmap, style)
}

// Style returns the cell's shared style handle. Undefined for Reference
// cells, which carry no style of their own.
func (c *Cell) Style() *Style {
	return c.style
}

// SetStyle changes the style in place without altering the variant.
// A no-op on Reference cells.
func (c *Cell) SetStyle(style *Style) {
	if c.Kind != CellReference {
		c.style = style
	}
}

// Value returns " " for Empty, the stored grapheme for Occupied, and ""
// otherwise (spec.md §4.1).
func (c *Cell) Value() string {
	switch c.Kind {
	case CellEmpty:
		return " "
	case CellOccupied:
		return c.value
	default:
		return ""
	}
}

// Width returns the cluster's display width for Occupied, 1 for Empty and
// Image, and is undefined for Reference (spec.md §4.1).
func (c *Cell) Width() int {
	switch c.Kind {
	case CellOccupied:
		w := runewidth.StringWidth(c.value)
		if w < 1 {
			w = 1
		}
		return w
	default:
		return 1
	}
}

// Offset returns the reference distance; undefined for non-Reference
// cells.
func (c *Cell) Offset() uint8 {
	return c.offset
}

// Image returns the bitmap tile; undefined for non-Image cells.
func (c *Cell) Image() Bitmap {
	return c.image
}
