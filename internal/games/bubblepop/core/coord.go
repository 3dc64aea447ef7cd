package core

import (
	"fmt"
	"math"
)

// Cell is a discrete grid position. Row 0 is the anchor row at the top;
// rows grow downward.
type Cell struct {
	Row int
	Col int
}

// At is a convenience constructor for Cell.
func At(row, col int) Cell {
	return Cell{Row: row, Col: col}
}

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Point is a continuous position in field space. Y grows downward
// (screen coordinates), one unit equals one bubble diameter.
type Point struct {
	X float64
	Y float64
}

// Pt is a convenience constructor for Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p offset by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Dist returns the Euclidean distance to another point.
func (p Point) Dist(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// Dist2 returns the squared distance to another point.
func (p Point) Dist2(o Point) float64 {
	dx, dy := p.X-o.X, p.Y-o.Y
	return dx*dx + dy*dy
}
