package core_test

import (
	"testing"

	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
)

func mustField(t *testing.T, topo core.Topology, cols, rows int, layout ...string) *core.Graph {
	t.Helper()
	g, err := core.BuildField(topo, cols, rows, layout)
	if err != nil {
		t.Fatalf("BuildField() error = %v", err)
	}
	return g
}

func mustAt(t *testing.T, g *core.Graph, row, col int) core.BubbleID {
	t.Helper()
	id, ok := g.At(core.At(row, col))
	if !ok {
		t.Fatalf("no bubble at (%d,%d)", row, col)
	}
	return id
}

func sameSet(a, b []core.BubbleID) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[core.BubbleID]int, len(a))
	for _, id := range a {
		seen[id]++
	}
	for _, id := range b {
		seen[id]--
		if seen[id] < 0 {
			return false
		}
	}
	return true
}

func kinds(events []core.Event) []core.EventKind {
	out := make([]core.EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func countKind(events []core.Event, kind core.EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
