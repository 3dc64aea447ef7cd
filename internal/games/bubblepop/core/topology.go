package core

import "math"

// Topology is the adjacency rule of the field grid. It is injected once when a
// Graph is created and never changes afterwards.
//
// Directions are numbered in a stable clockwise order; that order is the
// tie-break used when two candidate cells are equally near.
type Topology interface {
	// Name identifies the topology in configs and level files.
	Name() string
	// Directions returns the number of neighbor directions.
	Directions() int
	// Step returns the neighboring cell of c in direction dir.
	Step(c Cell, dir int) Cell
	// Opposite returns the direction pointing back from a neighbor.
	Opposite(dir int) int
	// Center returns the field-space center of a cell.
	Center(c Cell) Point
	// Width returns the field-space width of a grid with the given column count.
	Width(cols int) float64
	// RowHeight returns the vertical distance between row centers.
	RowHeight() float64
}

// Neighbors returns the neighboring cells of c in direction order.
func Neighbors(t Topology, c Cell) []Cell {
	out := make([]Cell, t.Directions())
	for d := range out {
		out[d] = t.Step(c, d)
	}
	return out
}

// ParseTopology returns a topology by name. Unknown names select the hex grid.
func ParseTopology(name string) (Topology, bool) {
	switch name {
	case "", "hex":
		return HexGrid{}, true
	case "square":
		return SquareGrid{}, true
	default:
		return HexGrid{}, false
	}
}

// HexGrid is the classic bubble-shooter layout: rows of touching circles where
// odd rows are shifted right by half a diameter.
//
// Direction order, clockwise from above: up-right, right, down-right,
// down-left, left, up-left.
type HexGrid struct{}

// hexDeltas holds (dRow, dCol) per direction for even and odd rows.
var hexDeltas = [2][6][2]int{
	{{-1, 0}, {0, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}},
	{{-1, 1}, {0, 1}, {1, 1}, {1, 0}, {0, -1}, {-1, 0}},
}

var hexRowHeight = math.Sqrt(3) / 2

func (HexGrid) Name() string       { return "hex" }
func (HexGrid) Directions() int    { return 6 }
func (HexGrid) Opposite(d int) int { return (d + 3) % 6 }
func (HexGrid) RowHeight() float64 { return hexRowHeight }

func (HexGrid) Step(c Cell, dir int) Cell {
	d := hexDeltas[c.Row&1][dir]
	return Cell{Row: c.Row + d[0], Col: c.Col + d[1]}
}

func (HexGrid) Center(c Cell) Point {
	x := float64(c.Col) + 0.5
	if c.Row&1 == 1 {
		x += 0.5
	}
	return Point{X: x, Y: float64(c.Row)*hexRowHeight + 0.5}
}

func (HexGrid) Width(cols int) float64 {
	return float64(cols) + 0.5
}

// SquareGrid is a four-neighbor rectangular grid.
//
// Direction order, clockwise from above: up, right, down, left.
type SquareGrid struct{}

var squareDeltas = [4][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}

func (SquareGrid) Name() string       { return "square" }
func (SquareGrid) Directions() int    { return 4 }
func (SquareGrid) Opposite(d int) int { return (d + 2) % 4 }
func (SquareGrid) RowHeight() float64 { return 1 }

func (SquareGrid) Step(c Cell, dir int) Cell {
	d := squareDeltas[dir]
	return Cell{Row: c.Row + d[0], Col: c.Col + d[1]}
}

func (SquareGrid) Center(c Cell) Point {
	return Point{X: float64(c.Col) + 0.5, Y: float64(c.Row) + 0.5}
}

func (SquareGrid) Width(cols int) float64 {
	return float64(cols)
}
