package vt

// MouseButton identifies which button a mouse event reports, including
// the wheel pseudo-buttons (spec.md §4.9 "mouse").
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// MouseEventType distinguishes press, release and drag-motion reports.
type MouseEventType int

const (
	MousePress MouseEventType = iota
	MouseRelease
	MouseMotion
)

// MouseEvent is one mouse report the host forwards to Terminal.Mouse for
// encoding (spec.md §4.9 "mouse").
type MouseEvent struct {
	Type   MouseEventType
	Button MouseButton
	X, Y   int // 0-based cell coordinates
	Mod    KeyMod
}

// Mouse encodes ev into the legacy X10/normal tracking protocol or the
// SGR extension, depending on which mouse modes are enabled, and returns
// nil if no mouse mode is active or the event doesn't qualify for the
// active one (spec.md §4.9 "mouse"; motion reports require
// ModeMouseMotion or ModeMouseMany, and button-less motion requires
// ModeMouseMany specifically).
func (t *Terminal) Mouse(ev MouseEvent) []byte {
	if t.mode&ModeMouse == 0 {
		return nil
	}
	if ev.Type == MouseMotion {
		if ev.Button == MouseNone && !t.mode.Has(ModeMouseMany) {
			return nil
		}
		if t.mode&(ModeMouseMotion|ModeMouseMany) == 0 {
			return nil
		}
	}

	code := buttonCode(ev, t.mode.Has(ModeMouseX10) && t.mode&(ModeMouseButton|ModeMouseMotion|ModeMouseMany) == 0)
	if t.mode.Has(ModeMouseSGR) {
		return encodeSGRMouse(code, ev)
	}
	return encodeLegacyMouse(code, ev)
}

// buttonCode computes the base button+modifier bits shared by both the
// legacy and SGR encodings (spec.md §4.9, "button-code computation").
// Modifier bits are omitted entirely under plain X10 reporting, which has
// no room in its single-byte button code for them.
func buttonCode(ev MouseEvent, x10 bool) int {
	var code int
	switch ev.Button {
	case MouseLeft:
		code = 0
	case MouseMiddle:
		code = 1
	case MouseRight:
		code = 2
	case MouseWheelUp:
		code = 64
	case MouseWheelDown:
		code = 65
	case MouseNone:
		code = 3 // "no button" release/motion code
	}
	if ev.Type == MouseMotion {
		code |= 32
	}
	if x10 {
		return code
	}
	if ev.Mod&ModShift != 0 {
		code |= 4
	}
	if ev.Mod&ModAlt != 0 {
		code |= 8
	}
	if ev.Mod&ModCtrl != 0 {
		code |= 16
	}
	return code
}

// encodeLegacyMouse emits the X10/normal tracking form: CSI M, then three
// bytes each offset by 32, capped at coordinate 223 the way the original
// one-byte encoding requires (spec.md §4.9 "mouse").
func encodeLegacyMouse(code int, ev MouseEvent) []byte {
	cb := code
	if ev.Type == MouseRelease {
		cb = 3 | (cb &^ 3)
	}
	x, y := ev.X, ev.Y
	if x > 222 {
		x = 222
	}
	if y > 222 {
		y = 222
	}
	return []byte{0x1b, '[', 'M', byte(cb + 32), byte(x + 1 + 32), byte(y + 1 + 32)}
}

// encodeSGRMouse emits the SGR extension form, CSI < Cb ; Cx ; Cy M/m,
// which has no coordinate ceiling and reports release with a final 'm'
// instead of re-coding the button (spec.md §4.9 "mouse", SGR extension).
func encodeSGRMouse(code int, ev MouseEvent) []byte {
	final := byte('M')
	if ev.Type == MouseRelease {
		final = 'm'
	}
	s := "\x1b[<" + itoaDigits(code) + ";" + itoaDigits(ev.X+1) + ";" + itoaDigits(ev.Y+1) + string(final)
	return []byte(s)
}
