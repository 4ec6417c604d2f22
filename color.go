package vt

// ColorType indicates how a color was specified, mirroring the SGR
// parameter families in spec.md §4.7.
type ColorType uint8

const (
	ColorDefault   ColorType = iota // terminal default fg/bg (SGR 39/49)
	ColorIndexed                    // palette index 0-255 (SGR 30-37/90-97/38;5;n)
	ColorRGB                        // 24-bit true color (SGR 38;2;r;g;b)
	ColorTransparent                // fully transparent (SGR 38;6 extension)
)

// Color is an optional RGBA value: Type == ColorDefault carries no RGB
// payload of its own and is resolved against a Config at render/SGR time.
type Color struct {
	Type    ColorType
	Index   uint8
	R, G, B, A uint8
}

// RGBA returns the resolved 8-bit components of the color. Defaults and
// transparency must be resolved by the caller (via Config) before calling
// this on a ColorDefault value; ColorTransparent always yields zero alpha.
func (c Color) RGBA() (r, g, b, a uint8) {
	if c.Type == ColorTransparent {
		return 0, 0, 0, 0
	}
	return c.R, c.G, c.B, c.A
}

// Indexed builds a palette-indexed color (0-255).
func Indexed(index uint8) Color {
	return Color{Type: ColorIndexed, Index: index}
}

// RGB builds a 24-bit true color, fully opaque.
func RGB(r, g, b uint8) Color {
	return Color{Type: ColorRGB, R: r, G: g, B: b, A: 255}
}

// RGBA8 builds an explicit RGBA color.
func RGBA8(r, g, b, a uint8) Color {
	return Color{Type: ColorRGB, R: r, G: g, B: b, A: a}
}

// Transparent is the fully transparent black color used by the SGR 38;6 /
// 48;6 transparent-color extension (spec.md §4.7, SGR rendering).
var Transparent = Color{Type: ColorTransparent}

// Palette is the 256-entry color table a Config resolves indexed colors
// against: 0-15 are the classic ANSI colors, 16-231 the 6x6x6 color cube,
// 232-255 the grayscale ramp.
type Palette [256]Color

// DefaultPalette builds a 256-color palette: VGA-style values for the 16
// ANSI colors, then xterm's 6x6x6 color cube and grayscale ramp.
func DefaultPalette() Palette {
	var p Palette

	ansi := [16][3]uint8{
		{0, 0, 0}, {170, 0, 0}, {0, 170, 0}, {170, 85, 0},
		{0, 0, 170}, {170, 0, 170}, {0, 170, 170}, {170, 170, 170},
		{85, 85, 85}, {255, 85, 85}, {85, 255, 85}, {255, 255, 85},
		{85, 85, 255}, {255, 85, 255}, {85, 255, 255}, {255, 255, 255},
	}
	for i, rgb := range ansi {
		p[i] = RGB(rgb[0], rgb[1], rgb[2])
	}

	steps := [6]uint8{0, 95, 135, 175, 215, 255}
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				p[i] = RGB(steps[r], steps[g], steps[b])
				i++
			}
		}
	}

	for g := 0; g < 24; g++ {
		v := uint8(8 + g*10)
		p[232+g] = RGB(v, v, v)
	}

	return p
}

// cmyToRGB converts subtractive CMY (each 0-100) to RGB via the standard
// C,M,Y -> R,G,B = 255*(1-c) formula used by SGR's CMY color extension
// (spec.md §4.7, "RGB/CMY/CMYK/Transparent").
func cmyToRGB(c, m, y uint8) Color {
	scale := func(v uint8) uint8 {
		if v > 100 {
			v = 100
		}
		return uint8(255 * (100 - int(v)) / 100)
	}
	return RGB(scale(c), scale(m), scale(y))
}

// cmykToRGB converts subtractive CMYK (each 0-100) to RGB.
func cmykToRGB(c, m, y, k uint8) Color {
	scale := func(v uint8) uint8 {
		if v > 100 {
			v = 100
		}
		white := 255 * (100 - int(k)) / 100
		return uint8(white * (100 - int(v)) / 100)
	}
	return RGB(scale(c), scale(m), scale(y))
}
