package core

// FindFloaters returns every live bubble that has no path of edges to the
// anchor row, in ascending id order.
//
// The traversal starts from AllAnchored and follows edges of any color,
// blank included. It must run after all match removals of a round are
// finalized: bubbles still pending removal would otherwise count as anchors.
func FindFloaters(g *Graph) []BubbleID {
	marks := g.ResetTraversalMarks()
	queue := g.AllAnchored()
	for _, id := range queue {
		marks.Set(id, 0)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		depth := marks.Get(current)
		for _, n := range g.NeighborsOf(current) {
			if !marks.Visited(n) {
				marks.Set(n, depth+1)
				queue = append(queue, n)
			}
		}
	}

	if marks.Len() == g.Len() {
		return nil
	}
	var floaters []BubbleID
	for _, id := range g.Live() {
		if !marks.Visited(id) {
			floaters = append(floaters, id)
		}
	}
	return floaters
}
