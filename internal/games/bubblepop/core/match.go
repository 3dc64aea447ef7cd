package core

// MinGroupSize is the smallest group ordinary play can pop: a seed plus at
// least one same-colored neighbor.
const MinGroupSize = 2

// MatchGroup is the result of a flood fill.
type MatchGroup struct {
	Color   Color
	Members []BubbleID // In dequeue order
	Depths  []int      // BFS depth per member, parallel to Members
}

// Len returns the number of bubbles in the group.
func (m MatchGroup) Len() int {
	return len(m.Members)
}

// Pops reports whether the group reaches minSize. An empty group never pops.
func (m MatchGroup) Pops(minSize int) bool {
	if minSize < 1 {
		minSize = 1
	}
	return len(m.Members) >= minSize
}

// Match finds the maximal set of bubbles of the target color reachable from
// the seeds through same-colored edges.
//
// Seeds are marked with depth 0 and enqueued in order; seeds that are not
// live or not of the target color are skipped. Every dequeued bubble marks its
// unvisited same-colored neighbors with its own depth plus one. The blank color
// never matches, so a blank target yields an empty group.
func Match(g *Graph, seeds []BubbleID, target Color) MatchGroup {
	group := MatchGroup{Color: target}
	if !target.Matchable() {
		return group
	}

	marks := g.ResetTraversalMarks()
	queue := make([]BubbleID, 0, len(seeds))
	for _, id := range seeds {
		b, ok := g.Bubble(id)
		if !ok || !b.Live() || b.Color != target || marks.Visited(id) {
			continue
		}
		marks.Set(id, 0)
		queue = append(queue, id)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		depth := marks.Get(current)
		group.Members = append(group.Members, current)
		group.Depths = append(group.Depths, depth)

		for _, n := range g.NeighborsOf(current) {
			if marks.Visited(n) {
				continue
			}
			if b, _ := g.Bubble(n); b.Color != target {
				continue
			}
			marks.Set(n, depth+1)
			queue = append(queue, n)
		}
	}

	return group
}
