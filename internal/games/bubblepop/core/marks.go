package core

// Unvisited is the traversal mark of a bubble not yet reached.
const Unvisited = -1

// Marks is the per-traversal scratch state: the BFS depth of every bubble a
// traversal has reached. It lives outside the bubbles so two traversals can
// never observe each other's marks.
type Marks struct {
	depth map[BubbleID]int
	order []BubbleID
}

func newMarks(capacity int) *Marks {
	return &Marks{
		depth: make(map[BubbleID]int, capacity),
		order: make([]BubbleID, 0, capacity),
	}
}

// Get returns the mark of a bubble, or Unvisited.
func (m *Marks) Get(id BubbleID) int {
	if d, ok := m.depth[id]; ok {
		return d
	}
	return Unvisited
}

// Visited returns true if the bubble has been marked.
func (m *Marks) Visited(id BubbleID) bool {
	_, ok := m.depth[id]
	return ok
}

// Set marks a bubble with a depth. The first mark of a bubble fixes its
// position in Order.
func (m *Marks) Set(id BubbleID, depth int) {
	if _, ok := m.depth[id]; !ok {
		m.order = append(m.order, id)
	}
	m.depth[id] = depth
}

// Len returns the number of marked bubbles.
func (m *Marks) Len() int {
	return len(m.depth)
}

// Order returns the marked bubbles in the order they were first marked.
func (m *Marks) Order() []BubbleID {
	out := make([]BubbleID, len(m.order))
	copy(out, m.order)
	return out
}
