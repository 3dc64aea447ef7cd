package core

import "math/rand"

// Feed supplies the color of the next player bubble.
type Feed interface {
	Next(g *Graph) Color
}

// SequenceFeed cycles through a fixed list of colors.
type SequenceFeed struct {
	colors []Color
	pos    int
}

// NewSequenceFeed creates a feed over the given colors. An empty list falls
// back to the palette.
func NewSequenceFeed(colors ...Color) *SequenceFeed {
	if len(colors) == 0 {
		colors = Palette()
	}
	return &SequenceFeed{colors: colors}
}

// Next returns the next color in the sequence, wrapping around.
func (f *SequenceFeed) Next(_ *Graph) Color {
	c := f.colors[f.pos%len(f.colors)]
	f.pos++
	return c
}

// RandomFeed draws colors still present in the field, so every shot has a
// potential match. An empty field draws from the first Colors palette entries.
type RandomFeed struct {
	rng    *rand.Rand
	colors int
}

// NewRandomFeed creates a seeded random feed limited to the first n palette colors.
func NewRandomFeed(seed int64, n int) *RandomFeed {
	if n <= 0 || n > len(Palette()) {
		n = len(Palette())
	}
	return &RandomFeed{rng: rand.New(rand.NewSource(seed)), colors: n}
}

// Next returns a random color present in g.
func (f *RandomFeed) Next(g *Graph) Color {
	var present []Color
	if g != nil {
		present = g.Colors()
	}
	if len(present) == 0 {
		present = Palette()[:f.colors]
	}
	return present[f.rng.Intn(len(present))]
}
