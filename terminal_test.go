package vt

import "testing"

func cellText(term *Terminal, x, y int) string {
	return term.Grid().At(x, y).Value()
}

func TestTerminalWideCharacterWrapsAtMargin(t *testing.T) {
	term := New(3, 2, 10, 20, DefaultConfig())
	term.Input([]byte("ab"))
	term.Input([]byte("あ")) // doesn't fit in the last column, must wrap first

	if cellText(term, 0, 0) != "a" || cellText(term, 1, 0) != "b" {
		t.Fatalf("row 0 = %q %q, want a b", cellText(term, 0, 0), cellText(term, 1, 0))
	}
	if cellText(term, 0, 1) != "あ" {
		t.Fatalf("wide cluster should have wrapped onto row 1, got %q", cellText(term, 0, 1))
	}
	if !term.Grid().Row(1).At(1).IsReference() {
		t.Fatal("wide cluster's trailing cell should be a Reference")
	}
	if !term.Grid().Row(0).Wrapped() {
		t.Fatal("row 0 should be marked wrapped since the wide char couldn't fit")
	}
}

func TestTerminalDeleteCharHonorsWideCluster(t *testing.T) {
	term := New(5, 1, 10, 20, DefaultConfig())
	term.Input([]byte("aあb"))
	term.Input([]byte("\x1b[1;1H")) // home the cursor
	term.Input([]byte("\x1b[1P"))   // DCH 1: delete the 'a'

	if cellText(term, 0, 0) != "あ" {
		t.Fatalf("column 0 after delete = %q, want the wide cluster", cellText(term, 0, 0))
	}
	if !term.Grid().Row(0).At(1).IsReference() {
		t.Fatal("wide cluster's reference cell should follow it after the shift")
	}
	if cellText(term, 2, 0) != "b" {
		t.Fatalf("column 2 after delete = %q, want b", cellText(term, 2, 0))
	}
}

func TestTerminalEraseCharsCleansReferencesPastBlock(t *testing.T) {
	term := New(5, 1, 10, 20, DefaultConfig())
	term.Input([]byte("aあb")) // a, wide あ at col 1-2, b at col 3
	term.Input([]byte("\x1b[1;2H"))
	term.Input([]byte("\x1b[1X")) // ECH 1: erase just the wide char's primary cell

	if cellText(term, 1, 0) != " " {
		t.Fatalf("erased primary at column 1 = %q, want empty", cellText(term, 1, 0))
	}
	if term.Grid().Row(0).At(2).IsReference() {
		t.Fatal("ECH should clean the dangling Reference left past the erased primary")
	}
	if cellText(term, 3, 0) != "b" {
		t.Fatalf("column 3 should be untouched, got %q", cellText(term, 3, 0))
	}
}

func TestTerminalEraseInLineCursorToEndWalksLeftPastWideChar(t *testing.T) {
	term := New(5, 1, 10, 20, DefaultConfig())
	term.Input([]byte("aあb")) // a, wide あ at col 1-2, b at col 3
	term.Input([]byte("\x1b[1;3H"))
	term.Input([]byte("\x1b[0K")) // EL 0 from the wide char's Reference cell to end of line

	if cellText(term, 0, 0) != "a" {
		t.Fatalf("column 0 should be untouched, got %q", cellText(term, 0, 0))
	}
	if cellText(term, 1, 0) != " " {
		t.Fatalf("wide char primary at column 1 should be erased atomically, got %q", cellText(term, 1, 0))
	}
	if term.Grid().Row(0).At(2).IsReference() {
		t.Fatal("no cell should remain a dangling Reference after erasing cursor-to-end")
	}
}

func TestTerminalEraseInLineStartToCursorCleansTrailingReference(t *testing.T) {
	term := New(5, 1, 10, 20, DefaultConfig())
	term.Input([]byte("aあb")) // a, wide あ at col 1-2, b at col 3
	term.Input([]byte("\x1b[1;2H"))
	term.Input([]byte("\x1b[1K")) // EL 1: start to cursor, cursor on the wide char's primary

	if cellText(term, 1, 0) != " " {
		t.Fatalf("wide char primary at column 1 should be erased, got %q", cellText(term, 1, 0))
	}
	if term.Grid().Row(0).At(2).IsReference() {
		t.Fatal("EL 1 should clean the dangling Reference past the erased primary")
	}
	if cellText(term, 3, 0) != "b" {
		t.Fatalf("column 3 should be untouched, got %q", cellText(term, 3, 0))
	}
}

func TestTerminalScrollRegionConfinesScrolling(t *testing.T) {
	term := New(10, 5, 10, 20, DefaultConfig())
	// Place one digit per row directly via cursor addressing, so filling
	// the screen never triggers a scroll of its own.
	for i := 0; i < 5; i++ {
		term.Input([]byte("\x1b[" + string(rune('1'+i)) + ";1H" + string(rune('0'+i))))
	}

	term.Input([]byte("\x1b[2;4r")) // confine scrolling to rows 2-4 (1-based)
	term.Input([]byte("\x1b[2;1H"))
	term.Input([]byte("\n\n\n\n")) // scroll the region repeatedly

	if cellText(term, 0, 0) != "0" {
		t.Fatalf("row 0 outside the scroll region should be untouched, got %q", cellText(term, 0, 0))
	}
	if cellText(term, 0, 4) != "4" {
		t.Fatalf("row 4 outside the scroll region should be untouched, got %q", cellText(term, 0, 4))
	}
	if len(term.Grid().Back()) != 0 {
		t.Fatalf("a region-bounded scroll must not push rows into history, got %d", len(term.Grid().Back()))
	}
}

func TestTerminalSGRBrightOnBold(t *testing.T) {
	term := New(10, 2, 10, 20, DefaultConfig())
	term.Input([]byte("\x1b[1;31mX"))

	cell := term.Grid().At(0, 0)
	style := cell.Style()
	if style.Foreground == nil {
		t.Fatal("expected a foreground color to be set")
	}
	want := term.config.Palette[1+8] // red + bright offset
	got := *style.Foreground
	if got != want {
		t.Fatalf("bold red foreground = %+v, want bright red %+v", got, want)
	}
}

func TestTerminalSGRResetDropsBrightOnBold(t *testing.T) {
	term := New(10, 2, 10, 20, DefaultConfig())
	// Bold and not-bold in the same sequence: the trailing 22 must win
	// within this one selectGraphicRendition call.
	term.Input([]byte("\x1b[1;31;22mX"))

	style := term.Grid().At(0, 0).Style()
	want := term.config.Palette[1]
	got := *style.Foreground
	if got != want {
		t.Fatalf("foreground with bold immediately cleared = %+v, want plain red %+v", got, want)
	}
	if style.Attrs.Has(AttrBold) {
		t.Fatal("AttrBold should be cleared by the trailing 22")
	}
}

func TestTerminalSGRBrightOnBoldAcrossSeparateInputCalls(t *testing.T) {
	// spec.md §8 scenario 4 is two separate escape sequences, not one
	// combined CSI parameter list: the blue foreground and the bold must
	// still compose even though they arrive in distinct Input calls.
	term := New(10, 2, 10, 20, DefaultConfig())
	term.Input([]byte("\x1b[34m"))
	term.Input([]byte("\x1b[1m"))
	term.Input([]byte("X"))

	style := term.Grid().At(0, 0).Style()
	want := term.config.Palette[4+8] // blue + bright offset
	got := *style.Foreground
	if got != want {
		t.Fatalf("foreground after separate blue/bold sequences = %+v, want bright blue %+v", got, want)
	}

	term.Input([]byte("\x1b[22mY"))
	style = term.Grid().At(1, 0).Style()
	want = term.config.Palette[4]
	got = *style.Foreground
	if got != want {
		t.Fatalf("foreground after a later separate 22m = %+v, want plain blue %+v", got, want)
	}
}

func TestTerminalMouseSGRPressAndRelease(t *testing.T) {
	term := New(80, 24, 10, 20, DefaultConfig())
	term.Input([]byte("\x1b[?1000h\x1b[?1006h")) // normal tracking + SGR extension

	press := term.Mouse(MouseEvent{Type: MousePress, Button: MouseLeft, X: 4, Y: 2})
	if string(press) != "\x1b[<0;5;3M" {
		t.Fatalf("press encoding = %q, want %q", press, "\x1b[<0;5;3M")
	}

	release := term.Mouse(MouseEvent{Type: MouseRelease, Button: MouseLeft, X: 4, Y: 2})
	if string(release) != "\x1b[<0;5;3m" {
		t.Fatalf("release encoding = %q, want %q", release, "\x1b[<0;5;3m")
	}
}

func TestTerminalMouseDisabledByDefault(t *testing.T) {
	term := New(80, 24, 10, 20, DefaultConfig())
	if got := term.Mouse(MouseEvent{Type: MousePress, Button: MouseLeft, X: 0, Y: 0}); got != nil {
		t.Fatalf("Mouse() with no tracking mode enabled = %q, want nil", got)
	}
}

func TestTerminalResizeReflowsAndRepositionsCursor(t *testing.T) {
	term := New(10, 3, 10, 20, DefaultConfig())
	term.Input([]byte("0123456789"))
	if !term.Cursor().WrapPending() {
		t.Fatal("filling the last column should leave a pending wrap")
	}

	term.Resize(5, 3)
	if cellText(term, 0, 0)+cellText(term, 1, 0)+cellText(term, 2, 0)+cellText(term, 3, 0)+cellText(term, 4, 0) != "01234" {
		t.Fatal("narrowing should reflow the filled row into two physical rows")
	}
	if c := term.Cursor(); c.X != 4 || c.Y != 1 {
		t.Fatalf("cursor after reflow = (%d, %d), want (4, 1) on the reflowed '9'", c.X, c.Y)
	}
}

func TestTerminalDeviceAttributesReply(t *testing.T) {
	term := New(80, 24, 10, 20, DefaultConfig())
	actions := term.Input([]byte("\x1b[c"))
	if len(actions) != 1 {
		t.Fatalf("len(actions) = %d, want 1", len(actions))
	}
	reply, ok := actions[0].(ActionReply)
	if !ok {
		t.Fatalf("action type = %T, want ActionReply", actions[0])
	}
	if string(reply.Bytes) != "\x1b[?62;1;4;6c" {
		t.Fatalf("DA1 reply = %q, want %q", reply.Bytes, "\x1b[?62;1;4;6c")
	}
}

func TestTerminalCursorPositionReport(t *testing.T) {
	term := New(80, 24, 10, 20, DefaultConfig())
	term.Input([]byte("\x1b[5;10H"))
	actions := term.Input([]byte("\x1b[6n"))
	if len(actions) != 1 {
		t.Fatalf("len(actions) = %d, want 1", len(actions))
	}
	reply := actions[0].(ActionReply)
	if string(reply.Bytes) != "\x1b[5;10R" {
		t.Fatalf("CPR reply = %q, want %q", reply.Bytes, "\x1b[5;10R")
	}
}

func TestTerminalBracketedPaste(t *testing.T) {
	term := New(80, 24, 10, 20, DefaultConfig())
	term.Input([]byte("\x1b[?2004h"))
	got := term.Paste("hi")
	want := "\x1b[200~hi\x1b[201~"
	if string(got) != want {
		t.Fatalf("Paste() = %q, want %q", got, want)
	}

	term.Input([]byte("\x1b[?2004l"))
	if got := string(term.Paste("hi")); got != "hi" {
		t.Fatalf("Paste() with bracketed paste disabled = %q, want %q", got, "hi")
	}
}

func TestTerminalApplicationCursorKeys(t *testing.T) {
	term := New(80, 24, 10, 20, DefaultConfig())
	if got := string(term.Key(Key{Name: KeyUp})); got != "\x1b[A" {
		t.Fatalf("normal-mode Up = %q, want %q", got, "\x1b[A")
	}
	term.Input([]byte("\x1b[?1h"))
	if got := string(term.Key(Key{Name: KeyUp})); got != "\x1bOA" {
		t.Fatalf("application-cursor Up = %q, want %q", got, "\x1bOA")
	}
}

func TestTerminalDECSpecialGraphicsTranslatesLineDrawing(t *testing.T) {
	term := New(10, 2, 10, 20, DefaultConfig())
	term.Input([]byte("\x1b(0"))     // designate G0 as DEC Special Graphics
	term.Input([]byte("q"))          // 'q' maps to a horizontal line
	if got := cellText(term, 0, 0); got != "─" {
		t.Fatalf("cellText = %q, want the line-drawing glyph", got)
	}

	term.Input([]byte("\x1b(B")) // back to ASCII
	term.Input([]byte("q"))
	if got := cellText(term, 1, 0); got != "q" {
		t.Fatalf("cellText after switching back to ASCII = %q, want %q", got, "q")
	}
}

func TestTerminalWhitespaceClusterWritesEmptyCell(t *testing.T) {
	term := New(5, 1, 10, 20, DefaultConfig())
	term.Input([]byte("a b"))
	if !term.Grid().At(1, 0).IsEmpty() {
		t.Fatal("a space character should be stored as an Empty cell, not Occupied")
	}
}

func TestTerminalScrollOffsetKeepsHistoryInPlace(t *testing.T) {
	term := New(5, 2, 10, 20, DefaultConfig())
	term.Input([]byte("one\r\n\r\ntwo")) // push "one" into history via two linefeeds
	if term.ScrollOffset() != 0 {
		t.Fatalf("ScrollOffset() = %d, want 0 before scrolling back", term.ScrollOffset())
	}

	term.SetScrollOffset(1)
	if got := term.ScrollOffset(); got != 1 {
		t.Fatalf("ScrollOffset() = %d, want 1", got)
	}
	if got := term.ViewRow(0).At(0).Value(); got != "o" {
		t.Fatalf("ViewRow(0) at offset 1 = %q, want the history row holding \"one\"", got)
	}

	// Clamp above the available history.
	term.SetScrollOffset(1000)
	if got := term.ScrollOffset(); got != len(term.Grid().Back()) {
		t.Fatalf("ScrollOffset() after an out-of-range request = %d, want clamp to %d", got, len(term.Grid().Back()))
	}

	term.SetScrollOffset(0)
	if got := term.ViewRow(1).At(0).Value(); got != "t" {
		t.Fatalf("ViewRow(1) back at offset 0 = %q, want the live row holding \"two\"", got)
	}
}

func TestTerminalOSCPaletteRedefinition(t *testing.T) {
	term := New(10, 2, 10, 20, DefaultConfig())
	term.Input([]byte("\x1b]4;1;rgb:ff/00/00\x07"))

	got := term.config.Palette[1]
	want := RGB(0xff, 0x00, 0x00)
	if got != want {
		t.Fatalf("palette[1] after OSC 4 redefinition = %+v, want %+v", got, want)
	}

	term.Input([]byte("\x1b[31mX"))
	style := term.Grid().At(0, 0).Style()
	if style.Foreground == nil || *style.Foreground != want {
		t.Fatalf("SGR 31 after redefining palette[1] = %+v, want the new red %+v", style.Foreground, want)
	}
}

func TestTerminalAltScreenRestoresOnReturn(t *testing.T) {
	term := New(10, 2, 10, 20, DefaultConfig())
	term.Input([]byte("primary"))
	term.Input([]byte("\x1b[?1049h"))
	if cellText(term, 0, 0) == "p" {
		t.Fatal("alt screen should start blank")
	}
	term.Input([]byte("\x1b[?1049l"))
	if cellText(term, 0, 0) != "p" {
		t.Fatalf("returning from the alt screen should restore primary content, got %q", cellText(term, 0, 0))
	}
}
