// Package core provides the bubble field engine for the BubblePop game:
// the connectivity graph, match and floater traversals, attachment and the
// per-shot round state machine. This package is UI-agnostic and deterministic.
package core

import "math/bits"

// BubbleID identifies a bubble inside a Graph arena.
type BubbleID int32

// NoBubble is the zero reference; it never names a live bubble.
const NoBubble BubbleID = -1

// State is the lifecycle state of a field bubble.
type State uint8

const (
	StateAttached State = iota
	StateMatched        // Part of a popped group, pending removal
	StateFalling        // Lost its path to the anchor row, pending removal
	StateRemoved
)

// String returns the string representation of a state.
func (s State) String() string {
	switch s {
	case StateAttached:
		return "attached"
	case StateMatched:
		return "matched"
	case StateFalling:
		return "falling"
	case StateRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Bubble is a node of the field graph.
//
// Edges are stored as a bitmask of topology directions; the neighbor in a
// direction is found through the owning Graph's cell index, so bubbles never
// reference each other directly.
type Bubble struct {
	ID    BubbleID
	Cell  Cell
	Color Color
	State State
	edges uint32
}

// Live returns true until the bubble has been removed from its graph.
func (b Bubble) Live() bool {
	return b.State != StateRemoved
}

// Degree returns the number of edges.
func (b Bubble) Degree() int {
	return bits.OnesCount32(b.edges)
}

// HasEdge returns true if the bubble has an edge in direction dir.
func (b Bubble) HasEdge(dir int) bool {
	return b.edges&(1<<uint(dir)) != 0
}
