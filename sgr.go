package vt

// selectGraphicRendition applies one CSI...m sequence's parameters to the
// current pen, honoring the 38/48 extended-color sub-parameter forms
// (;2;r;g;b, ;5;n) and the 38;6/48;6 transparent and CMY/CMYK extensions
// noted in spec.md §4.7 "SGR rendering". An empty parameter list means a
// bare "CSI m", which resets exactly like explicit 0.
func (t *Terminal) selectGraphicRendition(params []int) {
	if len(params) == 0 {
		params = []int{0}
	}

	fg, bg := t.style.Foreground, t.style.Background
	attrs := t.style.Attrs
	// baseFgIndex tracks a plain (non-bright) 30-37/38;5;n<8 pick, for
	// bright-on-bold; it persists on the Cursor (spec.md §3 "bright") so a
	// later, separate Bold/Faint/Normal SGR call still sees it even when it
	// arrives in its own CSI sequence.
	baseFgIndex := t.cursor.Bright()

	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			fg, bg, attrs = nil, nil, 0
			baseFgIndex = -1
		case p == 1:
			attrs = attrs&^AttrFaint | AttrBold
		case p == 2:
			attrs = attrs&^AttrBold | AttrFaint
		case p == 3:
			attrs |= AttrItalic
		case p == 4:
			attrs |= AttrUnderline
		case p == 5 || p == 6:
			attrs |= AttrBlink
		case p == 7:
			attrs |= AttrReverse
		case p == 8:
			attrs |= AttrInvisible
		case p == 9:
			attrs |= AttrStruck
		case p == 22:
			attrs &^= AttrBold | AttrFaint
		case p == 23:
			attrs &^= AttrItalic
		case p == 24:
			attrs &^= AttrUnderline
		case p == 25:
			attrs &^= AttrBlink
		case p == 27:
			attrs &^= AttrReverse
		case p == 28:
			attrs &^= AttrInvisible
		case p == 29:
			attrs &^= AttrStruck
		case p >= 30 && p <= 37:
			c := t.config.Palette[p-30]
			fg = &c
			baseFgIndex = p - 30
		case p == 38:
			c, consumed := parseExtendedColor(params[i+1:], t.config.Palette)
			if c != nil {
				fg = c
			}
			baseFgIndex = -1
			if consumed >= 2 && params[i+1] == 5 && params[i+2] < 8 {
				baseFgIndex = params[i+2]
			}
			i += consumed
		case p == 39:
			fg = nil
			baseFgIndex = -1
		case p >= 40 && p <= 47:
			c := t.config.Palette[p-40]
			bg = &c
		case p == 48:
			c, consumed := parseExtendedColor(params[i+1:], t.config.Palette)
			if c != nil {
				bg = c
			}
			i += consumed
		case p == 49:
			bg = nil
		case p >= 90 && p <= 97:
			c := t.config.Palette[8+p-90]
			fg = &c
			baseFgIndex = -1
		case p >= 100 && p <= 107:
			c := t.config.Palette[8+p-100]
			bg = &c
		default:
			logUnhandled("sgr", p)
		}
	}

	if t.config.BrightOnBold && baseFgIndex >= 0 {
		idx := baseFgIndex
		if attrs.Has(AttrBold) {
			idx += 8
		}
		c := t.config.Palette[idx]
		fg = &c
	}
	t.cursor.SetBright(baseFgIndex)

	t.style = t.interner.intern(Style{Foreground: fg, Background: bg, Attrs: attrs})
}

// parseExtendedColor reads the sub-parameters following a 38 or 48 SGR
// code and returns the resulting Color plus how many extra parameters it
// consumed, so the caller can skip over them. Indexed colors are resolved
// against palette immediately, the same way a plain 30-37/40-47 code is.
func parseExtendedColor(rest []int, palette Palette) (*Color, int) {
	if len(rest) == 0 {
		return nil, 0
	}
	switch rest[0] {
	case 5:
		if len(rest) < 2 {
			return nil, len(rest)
		}
		idx := rest[1]
		if idx < 0 || idx > 255 {
			return nil, 2
		}
		c := palette[idx]
		return &c, 2
	case 2:
		if len(rest) < 4 {
			return nil, len(rest)
		}
		c := RGB(uint8(rest[1]), uint8(rest[2]), uint8(rest[3]))
		return &c, 4
	case 3:
		if len(rest) < 4 {
			return nil, len(rest)
		}
		c := cmyToRGB(uint8(rest[1]), uint8(rest[2]), uint8(rest[3]))
		return &c, 4
	case 4:
		if len(rest) < 5 {
			return nil, len(rest)
		}
		c := cmykToRGB(uint8(rest[1]), uint8(rest[2]), uint8(rest[3]), uint8(rest[4]))
		return &c, 5
	case 6:
		c := Transparent
		return &c, 1
	default:
		return nil, len(rest)
	}
}
