package core

// Color is the foreground color of a screen cell. The zero value leaves
// the terminal default in place.
type Color uint8

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

	colorCount
)

var colorInfo = [colorCount]struct {
	name string
	ansi string // ANSI 256 color code
}{
	ColorDefault:       {"default", ""},
	ColorRed:           {"red", "1"},
	ColorGreen:         {"green", "2"},
	ColorYellow:        {"yellow", "3"},
	ColorBlue:          {"blue", "4"},
	ColorMagenta:       {"magenta", "5"},
	ColorCyan:          {"cyan", "6"},
	ColorWhite:         {"white", "7"},
	ColorBrightRed:     {"bright-red", "9"},
	ColorBrightGreen:   {"bright-green", "10"},
	ColorBrightYellow:  {"bright-yellow", "11"},
	ColorBrightBlue:    {"bright-blue", "12"},
	ColorBrightMagenta: {"bright-magenta", "13"},
	ColorBrightCyan:    {"bright-cyan", "14"},
	ColorBrightWhite:   {"bright-white", "15"},
	ColorOrange:        {"orange", "208"},
	ColorGray:          {"gray", "245"},
}

// Colors returns every color except ColorDefault.
func Colors() []Color {
	out := make([]Color, 0, colorCount-1)
	for c := ColorDefault + 1; c < colorCount; c++ {
		out = append(out, c)
	}
	return out
}

// ANSI returns the ANSI 256 color code, or "" for ColorDefault and
// unknown values.
func (c Color) ANSI() string {
	if c >= colorCount {
		return ""
	}
	return colorInfo[c].ansi
}

func (c Color) String() string {
	if c >= colorCount {
		return "unknown"
	}
	return colorInfo[c].name
}
