package core

// Color is a foreground color hint attached to a line of output.
// Front ends that cannot color simply ignore it.
type Color uint8

// Palette used by the pet display.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorGray
)
