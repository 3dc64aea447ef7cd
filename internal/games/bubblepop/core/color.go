package core

import "strings"

// Color is a bubble color. ColorBlank occupies a cell but never matches and
// is never popped by matching.
type Color uint8

const (
	ColorBlank Color = iota
	ColorRed
	ColorGreen
	ColorBlue
	ColorYellow
	ColorPurple
	ColorOrange
	ColorCount
)

// colorNames holds the long name and layout letter of each color.
var colorNames = [ColorCount]struct {
	name   string
	letter rune
}{
	ColorBlank:  {"blank", '#'},
	ColorRed:    {"red", 'R'},
	ColorGreen:  {"green", 'G'},
	ColorBlue:   {"blue", 'B'},
	ColorYellow: {"yellow", 'Y'},
	ColorPurple: {"purple", 'P'},
	ColorOrange: {"orange", 'O'},
}

func (c Color) String() string {
	if c >= ColorCount {
		return "unknown"
	}
	return colorNames[c].name
}

// Char is the letter used for c in level layouts and ASCII dumps.
func (c Color) Char() rune {
	if c >= ColorCount {
		return '?'
	}
	return colorNames[c].letter
}

// Matchable reports whether bubbles of this color can form a match group.
func (c Color) Matchable() bool {
	return c != ColorBlank && c < ColorCount
}

// ParseColor accepts a long name or a layout letter, in any case.
func ParseColor(s string) (Color, bool) {
	for c := ColorBlank; c < ColorCount; c++ {
		n := colorNames[c]
		if strings.EqualFold(s, n.name) || (len(s) == 1 && strings.EqualFold(s, string(n.letter))) {
			return c, true
		}
	}
	return ColorBlank, false
}

// Palette returns all matchable colors.
func Palette() []Color {
	out := make([]Color, 0, ColorCount-1)
	for c := ColorBlank + 1; c < ColorCount; c++ {
		out = append(out, c)
	}
	return out
}
