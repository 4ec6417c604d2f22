package vt

import "testing"

func TestRowResizeGrowsAndTruncates(t *testing.T) {
	r := newRow(4, defaultStyle)
	r.Resize(6, emptyCell(defaultStyle))
	if r.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", r.Len())
	}
	r.Resize(2, emptyCell(defaultStyle))
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
}

func TestRowPushPopFront(t *testing.T) {
	r := newRow(0, defaultStyle)
	r.PushBack(occupiedCell("a", defaultStyle))
	r.PushFront(occupiedCell("b", defaultStyle))
	if r.At(0).Value() != "b" || r.At(1).Value() != "a" {
		t.Fatalf("unexpected row contents after push front/back")
	}
	if v := r.PopFront(); v.Value() != "b" {
		t.Fatalf("PopFront() = %q, want %q", v.Value(), "b")
	}
	if v := r.PopBack(); v.Value() != "a" {
		t.Fatalf("PopBack() = %q, want %q", v.Value(), "a")
	}
	if r.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", r.Len())
	}
}

func TestRowTrimTrailingEmpty(t *testing.T) {
	r := newRow(5, defaultStyle)
	r.At(0).MakeOccupied("x", defaultStyle)
	r.TrimTrailingEmpty()
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
}

func TestRowAllEmpty(t *testing.T) {
	r := newRow(3, defaultStyle)
	if !r.AllEmpty() {
		t.Fatal("freshly built row should be all empty")
	}
	r.At(1).MakeOccupied("y", defaultStyle)
	if r.AllEmpty() {
		t.Fatal("row with an occupied cell should not be all empty")
	}
}
