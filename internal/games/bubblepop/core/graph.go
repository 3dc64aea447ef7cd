package core

import (
	"errors"
	"fmt"
)

var (
	// ErrCellOccupied is returned when inserting into a populated cell.
	ErrCellOccupied = errors.New("cell occupied")
	// ErrOutOfBounds is returned when a cell lies outside the field.
	ErrOutOfBounds = errors.New("cell out of bounds")
	// ErrUnknownBubble is returned for ids that never named a bubble in the graph.
	ErrUnknownBubble = errors.New("unknown bubble")
)

// AnchorRow is the fixed top row; its bubbles are the roots of connectivity.
const AnchorRow = 0

// Graph owns every bubble of one field. Bubbles live in an arena indexed by
// BubbleID; removed bubbles stay in the arena as tombstones so ids are never
// reused within a field.
//
// Edges are symmetric: if A has an edge to B, B has an edge to A.
type Graph struct {
	topo    Topology
	cols    int
	rows    int
	bubbles []Bubble
	byCell  map[Cell]BubbleID
	live    int
}

// MaxDirections is the largest neighbor count a topology may have.
const MaxDirections = 32

// NewGraph creates an empty field with the given topology and dimensions.
// rows is the number of rows a bubble may occupy, including the anchor row.
// It panics if the topology has more than MaxDirections directions.
func NewGraph(topo Topology, cols, rows int) *Graph {
	if topo == nil {
		topo = HexGrid{}
	}
	if n := topo.Directions(); n < 1 || n > MaxDirections {
		panic(fmt.Sprintf("core: topology %q has %d directions, supported 1..%d", topo.Name(), n, MaxDirections))
	}
	return &Graph{
		topo:   topo,
		cols:   cols,
		rows:   rows,
		byCell: make(map[Cell]BubbleID),
	}
}

// Topology returns the adjacency rule of the field.
func (g *Graph) Topology() Topology {
	return g.topo
}

// Cols returns the number of columns.
func (g *Graph) Cols() int {
	return g.cols
}

// Rows returns the number of rows.
func (g *Graph) Rows() int {
	return g.rows
}

// InBounds returns true if the cell lies within the field.
func (g *Graph) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// Len returns the number of live bubbles.
func (g *Graph) Len() int {
	return g.live
}

// IsEmpty returns true if no live bubbles remain.
func (g *Graph) IsEmpty() bool {
	return g.live == 0
}

// Insert creates a bubble at an empty cell and links it to every bubble in the
// neighboring cells.
func (g *Graph) Insert(c Cell, color Color) (BubbleID, error) {
	if !g.InBounds(c) {
		return NoBubble, fmt.Errorf("insert at %v: %w", c, ErrOutOfBounds)
	}
	if _, ok := g.byCell[c]; ok {
		return NoBubble, fmt.Errorf("insert at %v: %w", c, ErrCellOccupied)
	}

	id := BubbleID(len(g.bubbles))
	b := Bubble{ID: id, Cell: c, Color: color, State: StateAttached}
	for dir := 0; dir < g.topo.Directions(); dir++ {
		other, ok := g.byCell[g.topo.Step(c, dir)]
		if !ok {
			continue
		}
		b.edges |= 1 << uint(dir)
		g.bubbles[other].edges |= 1 << uint(g.topo.Opposite(dir))
	}

	g.bubbles = append(g.bubbles, b)
	g.byCell[c] = id
	g.live++
	return id, nil
}

// Remove detaches a bubble from all of its neighbors and marks it removed.
// Removing an already removed or unknown bubble is a no-op; the return value
// reports whether anything changed.
func (g *Graph) Remove(id BubbleID) bool {
	b := g.ref(id)
	if b == nil || !b.Live() {
		return false
	}
	for dir := 0; dir < g.topo.Directions(); dir++ {
		if !b.HasEdge(dir) {
			continue
		}
		if other, ok := g.byCell[g.topo.Step(b.Cell, dir)]; ok {
			g.bubbles[other].edges &^= 1 << uint(g.topo.Opposite(dir))
		}
	}
	b.edges = 0
	b.State = StateRemoved
	delete(g.byCell, b.Cell)
	g.live--
	return true
}

// Bubble returns a copy of the bubble with the given id.
func (g *Graph) Bubble(id BubbleID) (Bubble, bool) {
	b := g.ref(id)
	if b == nil {
		return Bubble{}, false
	}
	return *b, true
}

// At returns the live bubble occupying a cell.
func (g *Graph) At(c Cell) (BubbleID, bool) {
	id, ok := g.byCell[c]
	return id, ok
}

// NeighborsOf returns the bubbles adjacent to id in direction order.
func (g *Graph) NeighborsOf(id BubbleID) []BubbleID {
	b := g.ref(id)
	if b == nil || b.edges == 0 {
		return nil
	}
	out := make([]BubbleID, 0, b.Degree())
	for dir := 0; dir < g.topo.Directions(); dir++ {
		if !b.HasEdge(dir) {
			continue
		}
		if other, ok := g.byCell[g.topo.Step(b.Cell, dir)]; ok {
			out = append(out, other)
		}
	}
	return out
}

// HasEdge returns true if a and b are adjacent in the graph.
func (g *Graph) HasEdge(a, b BubbleID) bool {
	for _, n := range g.NeighborsOf(a) {
		if n == b {
			return true
		}
	}
	return false
}

// AllAnchored returns the live bubbles of the anchor row, ordered by column.
func (g *Graph) AllAnchored() []BubbleID {
	out := make([]BubbleID, 0, g.cols)
	for col := 0; col < g.cols; col++ {
		if id, ok := g.byCell[At(AnchorRow, col)]; ok {
			out = append(out, id)
		}
	}
	return out
}

// IsAnchor returns true if the bubble sits in the anchor row.
func (g *Graph) IsAnchor(id BubbleID) bool {
	b := g.ref(id)
	return b != nil && b.Live() && b.Cell.Row == AnchorRow
}

// Live returns every live bubble id in ascending order.
func (g *Graph) Live() []BubbleID {
	out := make([]BubbleID, 0, g.live)
	for i := range g.bubbles {
		if g.bubbles[i].Live() {
			out = append(out, g.bubbles[i].ID)
		}
	}
	return out
}

// Colors returns the matchable colors still present in the field, in palette order.
func (g *Graph) Colors() []Color {
	var seen [ColorCount]bool
	for i := range g.bubbles {
		if b := &g.bubbles[i]; b.Live() && b.Color.Matchable() {
			seen[b.Color] = true
		}
	}
	out := make([]Color, 0, len(seen))
	for _, c := range Palette() {
		if seen[c] {
			out = append(out, c)
		}
	}
	return out
}

// LowestRow returns the largest occupied row index, or -1 for an empty field.
func (g *Graph) LowestRow() int {
	lowest := -1
	for c := range g.byCell {
		if c.Row > lowest {
			lowest = c.Row
		}
	}
	return lowest
}

// ResetTraversalMarks returns a fresh scratch map in which every live bubble
// is unvisited. Each traversal calls it on entry and owns the result.
func (g *Graph) ResetTraversalMarks() *Marks {
	return newMarks(g.live)
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	bubbles := make([]Bubble, len(g.bubbles))
	copy(bubbles, g.bubbles)
	byCell := make(map[Cell]BubbleID, len(g.byCell))
	for c, id := range g.byCell {
		byCell[c] = id
	}
	return &Graph{
		topo:    g.topo,
		cols:    g.cols,
		rows:    g.rows,
		bubbles: bubbles,
		byCell:  byCell,
		live:    g.live,
	}
}

// setState moves a live bubble to a transitional lifecycle state.
func (g *Graph) setState(id BubbleID, s State) {
	if b := g.ref(id); b != nil && b.Live() {
		b.State = s
	}
}

func (g *Graph) ref(id BubbleID) *Bubble {
	if id < 0 || int(id) >= len(g.bubbles) {
		return nil
	}
	return &g.bubbles[id]
}
