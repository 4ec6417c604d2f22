package vt

// KeyMod is the bitset of modifier keys held during a key event
// (spec.md §4.9 "key", §6 "external interfaces").
type KeyMod uint8

const (
	ModShift KeyMod = 1 << iota
	ModAlt
	ModCtrl
	ModMeta
)

// Key identifies a key press the host forwards to the Terminal for
// encoding into the byte sequence the connected program expects
// (spec.md §4.9 "key"). Named keys cover the VT220 function-key block and
// the cursor/editing keypad; Rune carries ordinary printable input that
// isn't better expressed as a named key (e.g. shifted punctuation).
type Key struct {
	Name KeyName
	Rune rune // valid when Name == KeyRune
	Mod  KeyMod
}

// KeyName enumerates the non-printable keys this core knows how to
// encode. KeyRune means the event carries a plain rune instead.
type KeyName int

const (
	KeyRune KeyName = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyPageUp
	KeyPageDown
	KeyBackspace
	KeyTab
	KeyEnter
	KeyEscape
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyKeypad0
	KeyKeypad1
	KeyKeypad2
	KeyKeypad3
	KeyKeypad4
	KeyKeypad5
	KeyKeypad6
	KeyKeypad7
	KeyKeypad8
	KeyKeypad9
	KeyKeypadEnter
	KeyKeypadPlus
	KeyKeypadMinus
	KeyKeypadDecimal
)

// arrowFinal maps the cursor keys to their CSI final byte, shared by both
// normal and application cursor-key mode encodings.
var arrowFinal = map[KeyName]byte{
	KeyUp: 'A', KeyDown: 'B', KeyRight: 'C', KeyLeft: 'D',
	KeyHome: 'H', KeyEnd: 'F',
}

// tildeCode maps editing/navigation and function keys to their
// CSI Pn ~ code (spec.md §4.9, the VT220 "~" key block).
var tildeCode = map[KeyName]int{
	KeyInsert: 2, KeyDelete: 3, KeyPageUp: 5, KeyPageDown: 6,
	KeyF5: 15, KeyF6: 17, KeyF7: 18, KeyF8: 19, KeyF9: 20, KeyF10: 21,
	KeyF11: 23, KeyF12: 24,
}

// ssFinal maps F1-F4 to their SS3 final byte (xterm encodes these with
// SS3 rather than the tilde block).
var ssFinal = map[KeyName]byte{
	KeyF1: 'P', KeyF2: 'Q', KeyF3: 'R', KeyF4: 'S',
}

// modifierParam encodes KeyMod into the CSI modifier parameter xterm uses
// (1 = none, then +1 shift, +2 alt, +4 ctrl, +8 meta), returning 0 when no
// modifier is held so the caller can omit the parameter entirely.
func modifierParam(mod KeyMod) int {
	if mod == 0 {
		return 0
	}
	n := 1
	if mod&ModShift != 0 {
		n += 1
	}
	if mod&ModAlt != 0 {
		n += 2
	}
	if mod&ModCtrl != 0 {
		n += 4
	}
	if mod&ModMeta != 0 {
		n += 8
	}
	return n
}

// Key encodes a key event into the bytes to write to the pty, honoring
// application cursor-key/keypad mode and the alt-as-escape-prefix
// convention (spec.md §4.9 "key").
func (t *Terminal) Key(k Key) []byte {
	if k.Name == KeyRune {
		return t.encodeRune(k)
	}

	if final, ok := arrowFinal[k.Name]; ok {
		return t.encodeCursorKey(final, k.Mod)
	}
	if code, ok := tildeCode[k.Name]; ok {
		return encodeTilde(code, k.Mod)
	}
	if final, ok := ssFinal[k.Name]; ok {
		return []byte("\x1bO" + string(final))
	}

	switch k.Name {
	case KeyBackspace:
		if k.Mod&ModAlt != 0 {
			return []byte{0x1b, 0x7f}
		}
		return []byte{0x7f}
	case KeyTab:
		if k.Mod&ModShift != 0 {
			return []byte("\x1b[Z")
		}
		return []byte{'\t'}
	case KeyEnter:
		out := []byte{'\r'}
		if t.mode.Has(ModeCRLF) {
			out = []byte("\r\n")
		}
		if k.Mod&ModAlt != 0 {
			out = append([]byte{0x1b}, out...)
		}
		return out
	case KeyEscape:
		return []byte{0x1b}
	default:
		if code, ok := keypadCode(k.Name); ok {
			return t.encodeKeypad(code)
		}
	}
	return nil
}

func (t *Terminal) encodeRune(k Key) []byte {
	r := k.Rune
	if k.Mod&ModCtrl != 0 {
		if b := ctrlByte(r); b >= 0 {
			return []byte{byte(b)}
		}
	}
	out := []byte(string(r))
	if k.Mod&ModAlt != 0 {
		out = append([]byte{0x1b}, out...)
	}
	return out
}

// ctrlByte maps an ASCII letter/punctuation rune to its control-code
// value (Ctrl-A through Ctrl-Z, plus the handful of punctuation ones),
// or -1 if the rune has no control form.
func ctrlByte(r rune) int {
	switch {
	case r >= 'a' && r <= 'z':
		return int(r-'a') + 1
	case r >= 'A' && r <= 'Z':
		return int(r-'A') + 1
	case r == '@':
		return 0
	case r == '[':
		return 0x1b
	case r == '\\':
		return 0x1c
	case r == ']':
		return 0x1d
	case r == '^':
		return 0x1e
	case r == '_':
		return 0x1f
	default:
		return -1
	}
}

func (t *Terminal) encodeCursorKey(final byte, mod KeyMod) []byte {
	if m := modifierParam(mod); m > 0 {
		return []byte("\x1b[1;" + itoaDigits(m) + string(final))
	}
	if t.mode.Has(ModeApplicationCursor) {
		return []byte("\x1bO" + string(final))
	}
	return []byte("\x1b[" + string(final))
}

func encodeTilde(code int, mod KeyMod) []byte {
	s := "\x1b[" + itoaDigits(code)
	if m := modifierParam(mod); m > 0 {
		s += ";" + itoaDigits(m)
	}
	return []byte(s + "~")
}

func keypadCode(name KeyName) (byte, bool) {
	switch name {
	case KeyKeypad0:
		return 'p', true
	case KeyKeypad1:
		return 'q', true
	case KeyKeypad2:
		return 'r', true
	case KeyKeypad3:
		return 's', true
	case KeyKeypad4:
		return 't', true
	case KeyKeypad5:
		return 'u', true
	case KeyKeypad6:
		return 'v', true
	case KeyKeypad7:
		return 'w', true
	case KeyKeypad8:
		return 'x', true
	case KeyKeypad9:
		return 'y', true
	case KeyKeypadEnter:
		return 'M', true
	case KeyKeypadPlus:
		return 'l', true
	case KeyKeypadMinus:
		return 'm', true
	case KeyKeypadDecimal:
		return 'n', true
	default:
		return 0, false
	}
}

// encodeKeypad emits either the SS3 application-keypad form or the plain
// ASCII digit/operator, depending on ModeApplicationKeypad
// (spec.md §4.9, DECKPAM/DECKPNM).
func (t *Terminal) encodeKeypad(code byte) []byte {
	if !t.mode.Has(ModeApplicationKeypad) {
		return []byte{asciiForKeypad(code)}
	}
	return []byte("\x1bO" + string(code))
}

func asciiForKeypad(code byte) byte {
	switch code {
	case 'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y':
		return '0' + (code - 'p')
	case 'M':
		return '\r'
	case 'l':
		return '+'
	case 'm':
		return '-'
	case 'n':
		return '.'
	default:
		return 0
	}
}
