package core

// Shot is a planned collision: aim at At and strike Struck so the bubble
// attaches at Cell.
type Shot struct {
	Cell    Cell
	Struck  BubbleID
	At      Point
	Popped  int
	Dropped int
}

// Cleared returns the number of bubbles the shot removes.
func (s Shot) Cleared() int {
	return s.Popped + s.Dropped
}

// BestShot tries every empty cell next to a live bubble and returns the one
// that clears the most bubbles for a standard shot of the given color. Ties go
// to the cell nearest the bottom of the field, then the leftmost one. Flight
// paths are not checked.
// ok is false when no cell can be reached.
func BestShot(g *Graph, color Color, minMatch int) (best Shot, ok bool) {
	topo := g.Topology()
	policy := Policy{MinMatch: minMatch}

	for row := g.Rows() - 1; row >= 0; row-- {
		for col := 0; col < g.Cols(); col++ {
			cell := At(row, col)
			if _, taken := g.At(cell); taken {
				continue
			}
			struck := NoBubble
			for _, n := range Neighbors(topo, cell) {
				if id, live := g.At(n); live {
					struck = id
					break
				}
			}
			if struck == NoBubble {
				continue
			}

			popped, dropped := simulate(g.Clone(), cell, color, policy.MinGroup())
			shot := Shot{Cell: cell, Struck: struck, At: topo.Center(cell), Popped: popped, Dropped: dropped}
			if !ok || shot.Cleared() > best.Cleared() {
				best, ok = shot, true
			}
		}
	}
	return best, ok
}

// simulate attaches a bubble at cell on a scratch graph and counts what falls.
func simulate(g *Graph, cell Cell, color Color, minGroup int) (popped, dropped int) {
	id, err := g.Insert(cell, color)
	if err != nil {
		return 0, 0
	}
	group := Match(g, []BubbleID{id}, color)
	if !group.Pops(minGroup) {
		return 0, 0
	}
	for _, m := range group.Members {
		g.Remove(m)
	}
	floaters := FindFloaters(g)
	for _, f := range floaters {
		g.Remove(f)
	}
	return group.Len(), len(floaters)
}
