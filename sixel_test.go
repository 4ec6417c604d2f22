package vt

import "testing"

// tilePixel reads the pixel at (px, py) from a tile grid's given cell as raw RGBA.
func tilePixel(tiles []Bitmap, cols int, cellX, cellY, px, py int) (r, g, b, a uint8) {
	tile := &tiles[cellY*cols+cellX]
	i := (py*tile.W + px) * 4
	return tile.Pix[i], tile.Pix[i+1], tile.Pix[i+2], tile.Pix[i+3]
}

func TestSixelAspectScalesVerticalPixels(t *testing.T) {
	s := NewSixel(6, 6)
	s.Aspect(2, 1) // aspect 2: each sixel bit covers 2 pixel rows
	s.SelectColor(1)
	// Bit 0 only (value 0x3f | 0x01 = 0x40).
	s.Value(0x3f + 0x01)

	tiles, cols, _ := s.Draw()
	r, g, b, a := tilePixel(tiles, cols, 0, 0, 0, 0)
	want := sixelPalette[1]
	wr, wg, wb, wa := want.RGBA()
	if r != wr || g != wg || b != wb || a != wa {
		t.Fatalf("pixel (0,0) = %d,%d,%d,%d, want %d,%d,%d,%d", r, g, b, a, wr, wg, wb, wa)
	}
	// With aspect 2, bit 0 must also paint the row immediately below it.
	r, g, b, a = tilePixel(tiles, cols, 0, 0, 0, 1)
	if r != wr || g != wg || b != wb || a != wa {
		t.Fatalf("aspect-scaled pixel (0,1) = %d,%d,%d,%d, want %d,%d,%d,%d", r, g, b, a, wr, wg, wb, wa)
	}
	// Row 2 (untouched by bit 0) should remain whatever Draw initializes
	// (transparent black) since only bit 0 was set.
	r, g, b, a = tilePixel(tiles, cols, 0, 0, 0, 2)
	if a != 0 {
		t.Fatalf("pixel (0,2) alpha = %d, want 0 (untouched)", a)
	}
}

func TestSixelLineFeedAdvancesByAspect(t *testing.T) {
	s := NewSixel(6, 12)
	s.Aspect(3, 1)
	s.SelectColor(1)
	s.Value(0x3f + 0x01) // paint band 0
	s.LineFeed()
	s.Value(0x3f + 0x01) // paint band 1, offset by 6*aspect = 18 pixel rows

	tiles, cols, rows := s.Draw()
	if rows < 1 {
		t.Fatalf("expected at least one row of tiles, got %d", rows)
	}
	want := sixelPalette[1]
	wr, wg, wb, wa := want.RGBA()
	// The second band's first pixel row lands at absolute y = 18, which
	// is inside the second 12px-tall cell row (tile row 1, local y = 6).
	r, g, b, a := tilePixel(tiles, cols, 0, 1, 0, 6)
	if r != wr || g != wg || b != wb || a != wa {
		t.Fatalf("second band pixel = %d,%d,%d,%d, want %d,%d,%d,%d", r, g, b, a, wr, wg, wb, wa)
	}
}

func TestSixelBackgroundFillPaintsZeroBits(t *testing.T) {
	s := NewSixel(6, 6)
	bg := RGB(10, 20, 30)
	s.SetBackground(bg, true)
	s.SelectColor(1)
	s.Value(0x3f) // all bits zero

	tiles, cols, _ := s.Draw()
	r, g, b, a := tilePixel(tiles, cols, 0, 0, 0, 0)
	wr, wg, wb, wa := bg.RGBA()
	if r != wr || g != wg || b != wb || a != wa {
		t.Fatalf("background-filled pixel = %d,%d,%d,%d, want %d,%d,%d,%d", r, g, b, a, wr, wg, wb, wa)
	}
}

func TestSixelBackgroundFillDisabledLeavesZeroBitsUntouched(t *testing.T) {
	s := NewSixel(6, 6)
	s.SetBackground(RGB(10, 20, 30), false)
	s.SelectColor(1)
	s.Value(0x3f) // all bits zero, no fill flag

	tiles, cols, _ := s.Draw()
	_, _, _, a := tilePixel(tiles, cols, 0, 0, 0, 0)
	if a != 0 {
		t.Fatalf("pixel alpha = %d, want 0 (left untouched without the background-fill flag)", a)
	}
}
