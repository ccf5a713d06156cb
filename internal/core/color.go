package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
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
	ColorBrightCyan
	ColorOrange
	ColorGray
	ColorDarkGray
)

// Semantic aliases used by the crusher renderer.
const (
	ColorLetter  = ColorBrightCyan
	ColorPenalty = ColorBrightRed
	ColorTyped   = ColorGreen
	ColorPending = ColorGray
	ColorPlate   = ColorWhite
	ColorDanger  = ColorOrange
)
