package vt

import "testing"

func TestCellWideCharacter(t *testing.T) {
	c := occupiedCell("あ", defaultStyle)
	if !c.IsWide() {
		t.Fatal("expected あ to be wide")
	}
	if c.Width() != 2 {
		t.Fatalf("Width() = %d, want 2", c.Width())
	}
}

func TestCellDefault(t *testing.T) {
	c := emptyCell(defaultStyle)
	if !c.IsDefault() {
		t.Fatal("empty cell with default style should be default")
	}
	styled := emptyCell(&Style{Attrs: AttrBold})
	if styled.IsDefault() {
		t.Fatal("empty cell with a bold style should not be default")
	}
}

func TestCellReferenceOffset(t *testing.T) {
	var c Cell
	c.MakeReference(1)
	if !c.IsReference() {
		t.Fatal("expected reference cell")
	}
	if c.Offset() != 1 {
		t.Fatalf("Offset() = %d, want 1", c.Offset())
	}
}

func TestCellMakeImageSkipsIdenticalBitmap(t *testing.T) {
	var c Cell
	bmp := NewBitmap(2, 2)
	bmp.Set(0, 0, 255, 0, 0, 255)
	c.MakeImage(bmp, defaultStyle)
	before := c.Image()

	same := NewBitmap(2, 2)
	same.Set(0, 0, 255, 0, 0, 255)
	c.MakeImage(same, defaultStyle)
	after := c.Image()
	if &after.Pix[0] != &before.Pix[0] {
		t.Fatal("an identical bitmap should not replace the stored image")
	}
	if !before.equal(after) {
		t.Fatal("identical bitmap should leave the stored image equivalent")
	}
}

func TestCellValueAndWidthByKind(t *testing.T) {
	empty := emptyCell(defaultStyle)
	if empty.Value() != " " {
		t.Fatalf("empty Value() = %q, want %q", empty.Value(), " ")
	}
	if empty.Width() != 1 {
		t.Fatalf("empty Width() = %d, want 1", empty.Width())
	}

	occ := occupiedCell("x", defaultStyle)
	if occ.Value() != "x" {
		t.Fatalf("occupied Value() = %q, want %q", occ.Value(), "x")
	}
}
