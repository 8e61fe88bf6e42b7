package core

// Color is a foreground color for a screen cell, mapped to an ANSI code by
// the terminal renderer.
type Color uint8

// Screen colors. Block colors come first so a block color index maps onto
// them with BlockColor.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorOrange
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorWhite
	ColorBrightWhite
	ColorGray
)

// blockColors is the palette used for board blocks, in color index order.
var blockColors = []Color{
	ColorRed,
	ColorGreen,
	ColorYellow,
	ColorBlue,
	ColorMagenta,
	ColorCyan,
	ColorOrange,
	ColorBrightRed,
	ColorBrightGreen,
	ColorBrightYellow,
	ColorBrightBlue,
	ColorBrightMagenta,
	ColorBrightCyan,
}

// BlockColor returns the screen color for block color index i (1-based).
// Indexes past the palette wrap around; 0 maps to ColorDefault.
func BlockColor(i int) Color {
	if i <= 0 {
		return ColorDefault
	}
	return blockColors[(i-1)%len(blockColors)]
}
