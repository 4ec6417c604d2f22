package vt

import "testing"

func TestCursorTravelDownScrollsAtRegionBottom(t *testing.T) {
	c := NewCursor(defaultStyle)
	c.Y = 9
	region := &scrollRegion{top: 2, bottom: 9}
	scrolled := c.Travel(TravelDown, 1, 80, 24, region, nil)
	if !scrolled {
		t.Fatal("expected Travel to report a scroll at the region bottom")
	}
	if c.Y != 9 {
		t.Fatalf("Y = %d, want 9 (clamped to region bottom)", c.Y)
	}
}

func TestCursorTravelUpClampsAtRegionTop(t *testing.T) {
	c := NewCursor(defaultStyle)
	c.Y = 3
	region := &scrollRegion{top: 2, bottom: 9}
	c.Travel(TravelUp, 5, 80, 24, region, nil)
	if c.Y != 2 {
		t.Fatalf("Y = %d, want 2 (clamped to region top)", c.Y)
	}
}

func TestCursorTravelLeftClearsWrapPending(t *testing.T) {
	c := NewCursor(defaultStyle)
	c.X = 5
	c.SetWrapPending(true)
	c.Travel(TravelLeft, 1, 80, 24, nil, nil)
	if c.WrapPending() {
		t.Fatal("moving left should clear a pending wrap")
	}
	c.Travel(TravelLeft, 100, 80, 24, nil, nil)
	if c.X != 0 {
		t.Fatalf("X = %d, want 0 (clamped at the left edge)", c.X)
	}
}

func TestCursorTravelClearsWrapPendingOnEveryVariant(t *testing.T) {
	region := &scrollRegion{top: 2, bottom: 9}
	tabs := NewTabs(80)

	cases := []struct {
		name   string
		travel Travel
	}{
		{"Up", TravelUp},
		{"Down", TravelDown},
		{"Right", TravelRight},
		{"Row", TravelRow},
		{"NextLine", TravelNextLine},
		{"PrevLine", TravelPrevLine},
		{"ForwardTab", TravelForwardTab},
		{"BackTab", TravelBackTab},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCursor(defaultStyle)
			c.X, c.Y = 5, 5
			c.SetWrapPending(true)
			c.Travel(tc.travel, 1, 80, 24, region, tabs)
			if c.WrapPending() {
				t.Fatalf("Travel(%s) should clear a pending wrap", tc.name)
			}
		})
	}
}

func TestCursorTravelHomeRespectsOriginMode(t *testing.T) {
	c := NewCursor(defaultStyle)
	region := &scrollRegion{top: 3, bottom: 9}
	c.SetOriginMode(true)
	c.Travel(TravelHome, 0, 80, 24, region, nil)
	if c.Y != 3 {
		t.Fatalf("Y = %d, want 3 (origin mode homes to the region top)", c.Y)
	}

	c.SetOriginMode(false)
	c.Travel(TravelHome, 0, 80, 24, region, nil)
	if c.Y != 0 {
		t.Fatalf("Y = %d, want 0 (origin mode off homes to row 0)", c.Y)
	}
}

func TestCursorTravelTabs(t *testing.T) {
	c := NewCursor(defaultStyle)
	tabs := NewTabs(80)
	c.Travel(TravelForwardTab, 1, 80, 24, nil, tabs)
	if c.X != 8 {
		t.Fatalf("X = %d, want 8 after one forward tab", c.X)
	}
	c.Travel(TravelBackTab, 1, 80, 24, nil, tabs)
	if c.X != 0 {
		t.Fatalf("X = %d, want 0 after one back tab", c.X)
	}
}

func TestCursorSaveRestore(t *testing.T) {
	c := NewCursor(defaultStyle)
	c.X, c.Y = 10, 5
	c.Designate(0, CharsetDECGraphics)
	c.Save()

	c.X, c.Y = 0, 0
	c.Designate(0, CharsetASCII)
	c.Restore()

	if c.X != 10 || c.Y != 5 {
		t.Fatalf("position after Restore = (%d, %d), want (10, 5)", c.X, c.Y)
	}
	if c.Charset() != CharsetDECGraphics {
		t.Fatal("Restore should bring back the saved charset")
	}
}

func TestCursorRestoreWithoutSaveIsNoop(t *testing.T) {
	c := NewCursor(defaultStyle)
	c.X, c.Y = 4, 4
	c.Restore()
	if c.X != 4 || c.Y != 4 {
		t.Fatalf("position after no-op Restore = (%d, %d), want (4, 4)", c.X, c.Y)
	}
}

func TestCursorShiftOutShiftIn(t *testing.T) {
	c := NewCursor(defaultStyle)
	c.Designate(1, CharsetDECGraphics)
	if c.Charset() != CharsetASCII {
		t.Fatal("G0 should still be active before ShiftOut")
	}
	c.ShiftOut()
	if c.Charset() != CharsetDECGraphics {
		t.Fatal("ShiftOut should select G1")
	}
	c.ShiftIn()
	if c.Charset() != CharsetASCII {
		t.Fatal("ShiftIn should select G0")
	}
}

func TestCursorResizeAppliesOffsetAndClamps(t *testing.T) {
	c := NewCursor(defaultStyle)
	c.X, c.Y = 50, 10
	c.SetWrapPending(true)

	c.Resize(20, 24, 2)
	if c.Y != 12 {
		t.Fatalf("Y = %d, want 12 (10 + offset 2)", c.Y)
	}
	if c.X != 19 {
		t.Fatalf("X = %d, want 19 (clamped to new column count)", c.X)
	}
	if c.WrapPending() {
		t.Fatal("Resize should clear a pending wrap")
	}
}
