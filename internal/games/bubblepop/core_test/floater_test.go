package core_test

import (
	"testing"

	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
)

func TestFindFloatersNone(t *testing.T) {
	g := mustField(t, core.HexGrid{}, 5, 5,
		"RGBYP",
		"R.B.",
		"R",
	)
	if floaters := core.FindFloaters(g); floaters != nil {
		t.Errorf("FindFloaters() = %v, expected none", floaters)
	}
}

func TestFindFloatersAfterRemoval(t *testing.T) {
	g := mustField(t, core.SquareGrid{}, 5, 5,
		"R....",
		"R....",
		"RG...",
		".G...",
	)
	g.Remove(mustAt(t, g, 1, 0))

	got := core.FindFloaters(g)
	expected := []core.BubbleID{mustAt(t, g, 2, 0), mustAt(t, g, 2, 1), mustAt(t, g, 3, 1)}
	if len(got) != len(expected) {
		t.Fatalf("FindFloaters() = %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("FindFloaters()[%d] = %d, expected %d", i, got[i], expected[i])
		}
	}
}

func TestFindFloatersThroughBlank(t *testing.T) {
	g := mustField(t, core.SquareGrid{}, 3, 4,
		".#.",
		".#.",
		".RG",
	)
	if floaters := core.FindFloaters(g); floaters != nil {
		t.Errorf("FindFloaters() = %v, expected none", floaters)
	}

	g.Remove(mustAt(t, g, 0, 1))
	if n := len(core.FindFloaters(g)); n != 3 {
		t.Errorf("FindFloaters() found %d, expected 3", n)
	}
}

// After floaters are removed every remaining bubble reaches the anchor row and
// no anchor is ever a floater.
func TestFindFloatersConnectivity(t *testing.T) {
	g := mustField(t, core.HexGrid{}, 6, 6,
		"RGBRGB",
		"GBRGBR",
		"BRGBRG",
		"RGBRGB",
	)
	for _, c := range []core.Cell{core.At(1, 0), core.At(1, 1), core.At(1, 2), core.At(1, 4), core.At(1, 5), core.At(0, 4)} {
		g.Remove(mustAt(t, g, c.Row, c.Col))
	}

	floaters := core.FindFloaters(g)
	for _, id := range floaters {
		if g.IsAnchor(id) {
			t.Errorf("anchor %d reported as floater", id)
		}
		g.Remove(id)
	}
	if again := core.FindFloaters(g); again != nil {
		t.Errorf("FindFloaters() after removal = %v, expected none", again)
	}
	if len(g.AllAnchored()) != 5 {
		t.Errorf("AllAnchored() has %d bubbles, expected 5", len(g.AllAnchored()))
	}
}

func TestFindFloatersEmpty(t *testing.T) {
	g := core.NewGraph(core.HexGrid{}, 4, 4)
	if floaters := core.FindFloaters(g); floaters != nil {
		t.Errorf("FindFloaters() = %v, expected none", floaters)
	}
}
