package core_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
)

func TestGraphInsertLinksNeighbors(t *testing.T) {
	g := core.NewGraph(core.HexGrid{}, 5, 5)

	a, _ := g.Insert(core.At(0, 0), core.ColorRed)
	b, _ := g.Insert(core.At(0, 1), core.ColorGreen)
	c, err := g.Insert(core.At(1, 0), core.ColorBlue)
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	// Row 1 is shifted right, so (1,0) touches both (0,0) and (0,1)
	testCases := []struct {
		a, b     core.BubbleID
		expected bool
	}{
		{a, b, true},
		{a, c, true},
		{b, c, true},
		{b, a, true},
		{c, a, true},
		{c, b, true},
	}
	for _, tc := range testCases {
		if got := g.HasEdge(tc.a, tc.b); got != tc.expected {
			t.Errorf("HasEdge(%d, %d) = %v, expected %v", tc.a, tc.b, got, tc.expected)
		}
	}

	if n := len(g.NeighborsOf(c)); n != 2 {
		t.Errorf("NeighborsOf(c) has %d bubbles, expected 2", n)
	}
	if g.Len() != 3 {
		t.Errorf("Len() = %d, expected 3", g.Len())
	}
}

func TestGraphInsertOccupied(t *testing.T) {
	g := core.NewGraph(core.HexGrid{}, 5, 5)
	first, _ := g.Insert(core.At(0, 2), core.ColorRed)

	id, err := g.Insert(core.At(0, 2), core.ColorBlue)
	if !errors.Is(err, core.ErrCellOccupied) {
		t.Fatalf("Insert() error = %v, expected ErrCellOccupied", err)
	}
	if id != core.NoBubble {
		t.Errorf("Insert() id = %d, expected NoBubble", id)
	}
	if g.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", g.Len())
	}
	if b, _ := g.Bubble(first); b.Color != core.ColorRed {
		t.Errorf("occupant color = %v, expected red", b.Color)
	}
}

func TestGraphInsertOutOfBounds(t *testing.T) {
	g := core.NewGraph(core.SquareGrid{}, 3, 3)

	for _, c := range []core.Cell{core.At(-1, 0), core.At(0, 3), core.At(3, 0), core.At(0, -1)} {
		if _, err := g.Insert(c, core.ColorRed); !errors.Is(err, core.ErrOutOfBounds) {
			t.Errorf("Insert(%v) error = %v, expected ErrOutOfBounds", c, err)
		}
	}
	if !g.IsEmpty() {
		t.Error("expected empty graph")
	}
}

// Edges must mirror each other and exist exactly between adjacent cells.
func TestGraphSymmetry(t *testing.T) {
	for _, topo := range []core.Topology{core.HexGrid{}, core.SquareGrid{}} {
		t.Run(topo.Name(), func(t *testing.T) {
			const cols, rows = 8, 8
			g := core.NewGraph(topo, cols, rows)
			rng := rand.New(rand.NewSource(7))

			cells := make([]core.Cell, 0, cols*rows)
			for r := 0; r < rows; r++ {
				for c := 0; c < cols; c++ {
					cells = append(cells, core.At(r, c))
				}
			}
			rng.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })
			for i, c := range cells {
				if _, err := g.Insert(c, core.Palette()[i%3]); err != nil {
					t.Fatalf("Insert(%v) error = %v", c, err)
				}
			}
			for _, id := range g.Live() {
				if rng.Intn(3) == 0 {
					g.Remove(id)
				}
			}

			live := g.Live()
			for _, a := range live {
				ba, _ := g.Bubble(a)
				for _, b := range live {
					if a == b {
						continue
					}
					bb, _ := g.Bubble(b)
					adjacent := false
					for _, n := range core.Neighbors(topo, ba.Cell) {
						if n == bb.Cell {
							adjacent = true
						}
					}
					if g.HasEdge(a, b) != g.HasEdge(b, a) {
						t.Fatalf("edge %d-%d is not symmetric", a, b)
					}
					if g.HasEdge(a, b) != adjacent {
						t.Fatalf("HasEdge(%v, %v) = %v, expected %v", ba.Cell, bb.Cell, g.HasEdge(a, b), adjacent)
					}
				}
			}
		})
	}
}

func TestGraphRemoveIdempotent(t *testing.T) {
	g := mustField(t, core.SquareGrid{}, 3, 3,
		"RGB",
		"RGB",
	)
	mid := mustAt(t, g, 1, 1)
	top := mustAt(t, g, 0, 1)

	if !g.Remove(mid) {
		t.Fatal("first Remove() = false, expected true")
	}
	before := core.RenderASCII(g)
	topNeighbors := g.NeighborsOf(top)

	if g.Remove(mid) {
		t.Error("second Remove() = true, expected false")
	}
	if g.Remove(core.BubbleID(99)) {
		t.Error("Remove(unknown) = true, expected false")
	}
	if got := core.RenderASCII(g); got != before {
		t.Errorf("graph changed after double removal:\n%s\nexpected\n%s", got, before)
	}
	if !sameSet(g.NeighborsOf(top), topNeighbors) {
		t.Errorf("NeighborsOf(top) = %v, expected %v", g.NeighborsOf(top), topNeighbors)
	}
	if g.Len() != 5 {
		t.Errorf("Len() = %d, expected 5", g.Len())
	}

	b, ok := g.Bubble(mid)
	if !ok || b.State != core.StateRemoved {
		t.Errorf("removed bubble state = %v, expected removed", b.State)
	}
	if b.Degree() != 0 {
		t.Errorf("removed bubble degree = %d, expected 0", b.Degree())
	}
	for _, n := range []core.BubbleID{top, mustAt(t, g, 1, 0), mustAt(t, g, 1, 2)} {
		if g.HasEdge(n, mid) {
			t.Errorf("bubble %d still linked to removed bubble", n)
		}
	}
}

func TestGraphRemoveIsolated(t *testing.T) {
	g := core.NewGraph(core.HexGrid{}, 4, 4)
	id, _ := g.Insert(core.At(0, 0), core.ColorRed)

	if !g.Remove(id) {
		t.Error("Remove() = false, expected true")
	}
	if !g.IsEmpty() {
		t.Error("expected empty graph")
	}
}

func TestGraphIDsNotReused(t *testing.T) {
	g := core.NewGraph(core.SquareGrid{}, 3, 3)
	first, _ := g.Insert(core.At(0, 0), core.ColorRed)
	g.Remove(first)

	second, _ := g.Insert(core.At(0, 0), core.ColorRed)
	if second == first {
		t.Errorf("Insert() reused id %d", first)
	}
}

func TestGraphAllAnchored(t *testing.T) {
	g := mustField(t, core.SquareGrid{}, 5, 3,
		"R.G.B",
		"R.G.B",
	)

	got := g.AllAnchored()
	expected := []core.BubbleID{mustAt(t, g, 0, 0), mustAt(t, g, 0, 2), mustAt(t, g, 0, 4)}
	if len(got) != len(expected) {
		t.Fatalf("AllAnchored() = %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("AllAnchored()[%d] = %d, expected %d", i, got[i], expected[i])
		}
		if !g.IsAnchor(got[i]) {
			t.Errorf("IsAnchor(%d) = false", got[i])
		}
	}
	if g.IsAnchor(mustAt(t, g, 1, 0)) {
		t.Error("IsAnchor() = true for a row 1 bubble")
	}
}

func TestGraphColors(t *testing.T) {
	g := mustField(t, core.SquareGrid{}, 4, 2,
		"B#RB",
	)

	got := g.Colors()
	expected := []core.Color{core.ColorRed, core.ColorBlue}
	if len(got) != len(expected) {
		t.Fatalf("Colors() = %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Colors()[%d] = %v, expected %v", i, got[i], expected[i])
		}
	}
}

func TestGraphClone(t *testing.T) {
	g := mustField(t, core.HexGrid{}, 4, 4,
		"RRGG",
		"BBY",
	)
	clone := g.Clone()

	clone.Remove(mustAt(t, clone, 0, 0))
	if _, err := clone.Insert(core.At(2, 0), core.ColorPurple); err != nil {
		t.Fatalf("Insert() on clone error = %v", err)
	}

	if g.Len() != 7 {
		t.Errorf("original Len() = %d, expected 7", g.Len())
	}
	if _, ok := g.At(core.At(2, 0)); ok {
		t.Error("clone insert leaked into original")
	}
	if !g.HasEdge(mustAt(t, g, 0, 0), mustAt(t, g, 0, 1)) {
		t.Error("clone removal unlinked original edge")
	}
}

func TestGraphLowestRow(t *testing.T) {
	g := core.NewGraph(core.SquareGrid{}, 3, 6)
	if g.LowestRow() != -1 {
		t.Errorf("LowestRow() = %d, expected -1", g.LowestRow())
	}

	g = mustField(t, core.SquareGrid{}, 3, 6,
		"RRR",
		".R.",
		".R.",
	)
	if g.LowestRow() != 2 {
		t.Errorf("LowestRow() = %d, expected 2", g.LowestRow())
	}
}

// wideGrid links each cell to twelve others: the eight surrounding cells
// plus the cells two steps away along each axis.
type wideGrid struct {
	core.SquareGrid
}

var wideSteps = [12][2]int{
	{-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {-2, 0}, {0, 2},
	{1, 0}, {1, -1}, {0, -1}, {-1, -1}, {2, 0}, {0, -2},
}

func (wideGrid) Name() string       { return "wide" }
func (wideGrid) Directions() int    { return len(wideSteps) }
func (wideGrid) Opposite(d int) int { return (d + 6) % 12 }

func (wideGrid) Step(c core.Cell, dir int) core.Cell {
	return core.At(c.Row+wideSteps[dir][0], c.Col+wideSteps[dir][1])
}

// tooWide claims more directions than a bubble can hold edges for.
type tooWide struct {
	core.SquareGrid
}

func (tooWide) Directions() int { return core.MaxDirections + 1 }

func TestGraphManyDirections(t *testing.T) {
	g := core.NewGraph(wideGrid{}, 5, 5)
	center, err := g.Insert(core.At(2, 2), core.ColorRed)
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	for _, d := range wideSteps {
		if _, err := g.Insert(core.At(2+d[0], 2+d[1]), core.ColorBlue); err != nil {
			t.Fatalf("Insert(%d,%d) error = %v", 2+d[0], 2+d[1], err)
		}
	}

	b, _ := g.Bubble(center)
	if b.Degree() != 12 || len(g.NeighborsOf(center)) != 12 {
		t.Errorf("Degree() = %d, NeighborsOf() = %d, expected 12", b.Degree(), len(g.NeighborsOf(center)))
	}
	for dir := range wideSteps {
		if !b.HasEdge(dir) {
			t.Errorf("HasEdge(%d) = false, expected true", dir)
		}
	}
	for _, n := range g.NeighborsOf(center) {
		if !g.HasEdge(n, center) {
			t.Errorf("HasEdge(%d, center) = false, edges must be symmetric", n)
		}
	}
}

func TestGraphRejectsTooManyDirections(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewGraph() accepted a topology with too many directions")
		}
	}()
	core.NewGraph(tooWide{}, 3, 3)
}
