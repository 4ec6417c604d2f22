package vt

// Config snapshots the knobs a host sets once at construction time and
// rarely touches again: color scheme, default cursor presentation,
// scrollback depth and the bright-on-bold legacy behavior (spec.md §9
// "Design notes", and SPEC_FULL.md's ambient config section).
type Config struct {
	Palette       Palette
	CursorShape   CursorShape
	CursorBlink   bool
	HistoryLimit  int
	BrightOnBold  bool
}

// DefaultConfig matches what a freshly-started terminal emulator
// typically offers: the 256-color DefaultPalette, blinking block cursor,
// 10000 lines of scrollback, and the classic bright-on-bold behavior
// switched on.
func DefaultConfig() Config {
	return Config{
		Palette:      DefaultPalette(),
		CursorShape:  CursorBlock,
		CursorBlink:  true,
		HistoryLimit: 10000,
		BrightOnBold: true,
	}
}
