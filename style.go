package vt

// Attr is the text attribute bitset carried by a Style (spec.md §3, Style).
type Attr uint16

const (
	AttrBold Attr = 1 << iota
	AttrFaint
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrReverse
	AttrInvisible
	AttrStruck
)

// Has reports whether all bits in mask are set.
func (a Attr) Has(mask Attr) bool { return a&mask == mask }

// Style is a value type: optional foreground/background colors plus an
// attribute bitset. Cells and the Cursor hold a shared *Style handle rather
// than a copy, so adjacent runs of identically-styled cells share one
// allocation (spec.md §9, "Shared Style").
type Style struct {
	Foreground *Color
	Background *Color
	Attrs      Attr
}

// defaultStyle is the zero-value style: no color overrides, no attributes.
var defaultStyle = &Style{}

// equal reports structural equality the way the cursor's update method
// needs it: same attribute bits, and colors either both nil or both equal.
func (s *Style) equal(o *Style) bool {
	if s == o {
		return true
	}
	if s.Attrs != o.Attrs {
		return false
	}
	if !colorPtrEqual(s.Foreground, o.Foreground) {
		return false
	}
	return colorPtrEqual(s.Background, o.Background)
}

func colorPtrEqual(a, b *Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// isDefault reports whether the style carries no overrides at all, the
// condition Cell.IsDefault needs for an Empty cell (spec.md §4.1).
func (s *Style) isDefault() bool {
	return s.Foreground == nil && s.Background == nil && s.Attrs == 0
}

// styleInterner amortizes allocation of repeated styles the way the
// teacher's free list amortizes Row allocation (spec.md §9, "Free pool").
// It is scoped to a single Terminal; callers never share one across
// goroutines (the core is single-threaded, see spec.md §5).
type styleInterner struct {
	seen []*Style
}

// maxInternedStyles bounds the interner so a session that streams many
// distinct true-color styles (a gradient, a SIXEL-heavy program) can't grow
// it without limit; once full, new styles simply stop being deduplicated.
const maxInternedStyles = 4096

func (p *styleInterner) intern(s Style) *Style {
	if s.isDefault() {
		return defaultStyle
	}
	for _, existing := range p.seen {
		if existing.equal(&s) {
			return existing
		}
	}
	handle := &s
	if len(p.seen) < maxInternedStyles {
		p.seen = append(p.seen, handle)
	}
	return handle
}
