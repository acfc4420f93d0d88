package core

// Color is the foreground of a screen cell, mapped to an ANSI 256-color code
// by the renderer.
type Color uint8

// Cell colors. The order is part of the renderer's palette table.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// nightPalette swaps daytime colors for ones readable on a dark field.
var nightPalette = map[Color]Color{
	ColorYellow: ColorBlue,
	ColorGreen:  ColorBrightGreen,
	ColorGray:   ColorWhite,
}

// Night returns the night-mode variant of c. Colors without one are kept.
func (c Color) Night() Color {
	if n, ok := nightPalette[c]; ok {
		return n
	}
	return c
}
