// Package export renders a bubble field as a Graphviz graph: one node per
// bubble, one edge per adjacency.
package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
)

// Options configures DOT output.
type Options struct {
	// Pinned places every node at its field position and selects the neato
	// layout. When false, Graphviz arranges the nodes freely.
	Pinned bool
	// Detailed adds the cell and id to node labels.
	Detailed bool
}

// fill maps bubble colors to Graphviz color names.
var fill = map[core.Color]string{
	core.ColorBlank:  "gray40",
	core.ColorRed:    "tomato",
	core.ColorGreen:  "palegreen",
	core.ColorBlue:   "lightskyblue",
	core.ColorYellow: "gold",
	core.ColorPurple: "plum",
	core.ColorOrange: "orange",
}

// ToDOT converts a field to an undirected Graphviz graph. Anchor bubbles are
// drawn with a double outline.
func ToDOT(g *core.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph Field {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if opts.Pinned {
		buf.WriteString("  layout=neato;\n")
	}
	buf.WriteString("  node [shape=circle, style=filled, fontname=\"Menlo, monospace\", fontsize=10, width=0.4, fixedsize=true];\n")
	buf.WriteString("\n")

	topo := g.Topology()
	for _, id := range g.Live() {
		b, _ := g.Bubble(id)
		attrs := fmt.Sprintf("label=%q, fillcolor=%q", label(b, opts.Detailed), fill[b.Color])
		if g.IsAnchor(id) {
			attrs += ", peripheries=2"
		}
		if opts.Pinned {
			// Graphviz y grows upward.
			p := topo.Center(b.Cell)
			attrs += fmt.Sprintf(", pos=\"%.2f,%.2f!\"", p.X, -p.Y)
		}
		fmt.Fprintf(&buf, "  b%d [%s];\n", id, attrs)
	}

	buf.WriteString("\n")
	for _, id := range g.Live() {
		for _, n := range g.NeighborsOf(id) {
			if id < n {
				fmt.Fprintf(&buf, "  b%d -- b%d;\n", id, n)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func label(b core.Bubble, detailed bool) string {
	if !detailed {
		return string(b.Color.Char())
	}
	return fmt.Sprintf("%c\n%d %d,%d", b.Color.Char(), b.ID, b.Cell.Row, b.Cell.Col)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer graph.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
