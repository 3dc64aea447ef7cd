package core

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNoValidCell is returned when every cell around the struck bubble is
// occupied or outside the field.
var ErrNoValidCell = errors.New("no valid cell")

// AttachResolver turns a continuous collision point and the bubble it struck
// into a single empty grid cell next to the struck bubble, and inserts the
// incoming bubble there.
type AttachResolver struct {
	g *Graph
}

// NewAttachResolver creates a resolver for the given field.
func NewAttachResolver(g *Graph) *AttachResolver {
	return &AttachResolver{g: g}
}

// Candidates returns the in-bounds neighbor cells of the struck bubble ordered
// by distance from the collision point, nearest first. Equal distances keep the
// topology's clockwise direction order. Occupied cells are included.
func (r *AttachResolver) Candidates(at Point, struck BubbleID) ([]Cell, error) {
	b, ok := r.g.Bubble(struck)
	if !ok || !b.Live() {
		return nil, fmt.Errorf("attach to %d: %w", struck, ErrUnknownBubble)
	}

	topo := r.g.Topology()
	cells := make([]Cell, 0, topo.Directions())
	for _, c := range Neighbors(topo, b.Cell) {
		if r.g.InBounds(c) {
			cells = append(cells, c)
		}
	}

	sort.SliceStable(cells, func(i, j int) bool {
		return topo.Center(cells[i]).Dist2(at) < topo.Center(cells[j]).Dist2(at)
	})
	return cells, nil
}

// Resolve inserts a bubble of the given color into the nearest empty cell
// adjacent to the struck bubble. Occupied candidates are skipped; if none is
// left, ErrNoValidCell is returned and the graph is unchanged.
func (r *AttachResolver) Resolve(at Point, struck BubbleID, color Color) (BubbleID, error) {
	cells, err := r.Candidates(at, struck)
	if err != nil {
		return NoBubble, err
	}

	for _, c := range cells {
		id, err := r.g.Insert(c, color)
		if errors.Is(err, ErrCellOccupied) {
			continue
		}
		if err != nil {
			return NoBubble, err
		}
		return id, nil
	}
	return NoBubble, fmt.Errorf("attach to %d: %w", struck, ErrNoValidCell)
}

// ResolveCeiling inserts a bubble into the empty anchor row cell nearest to at.
func (r *AttachResolver) ResolveCeiling(at Point, color Color) (BubbleID, error) {
	topo := r.g.Topology()
	cells := make([]Cell, 0, r.g.Cols())
	for col := 0; col < r.g.Cols(); col++ {
		c := At(AnchorRow, col)
		if _, occupied := r.g.At(c); !occupied {
			cells = append(cells, c)
		}
	}
	if len(cells) == 0 {
		return NoBubble, fmt.Errorf("attach to ceiling: %w", ErrNoValidCell)
	}

	sort.SliceStable(cells, func(i, j int) bool {
		return topo.Center(cells[i]).Dist2(at) < topo.Center(cells[j]).Dist2(at)
	})
	return r.g.Insert(cells[0], color)
}
