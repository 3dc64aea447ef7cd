package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnanchored is returned for a field with bubbles that cannot reach the anchor row.
	ErrUnanchored = errors.New("unanchored bubbles")
	// ErrBadCell is returned for an unknown character in a field layout.
	ErrBadCell = errors.New("bad cell")
)

// Layout characters.
const (
	CharEmpty = '.'
	CharBlank = '#'
)

// BuildField parses a field layout into a graph. Each string is one row,
// starting at the anchor row; spaces are ignored, '.' is an empty cell, '#' a
// blank bubble and R G B Y P O the colors. Short rows are padded with empty
// cells. rows is the total field height and must cover the layout.
//
// Every bubble must reach the anchor row, otherwise ErrUnanchored is returned.
func BuildField(topo Topology, cols, rows int, layout []string) (*Graph, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("field %dx%d: %w", cols, rows, ErrOutOfBounds)
	}
	if len(layout) > rows {
		return nil, fmt.Errorf("layout has %d rows, field has %d: %w", len(layout), rows, ErrOutOfBounds)
	}

	g := NewGraph(topo, cols, rows)
	for row, line := range layout {
		line = strings.ReplaceAll(line, " ", "")
		if len(line) > cols {
			return nil, fmt.Errorf("row %d has %d cells, field has %d: %w", row, len(line), cols, ErrOutOfBounds)
		}
		for col, ch := range line {
			if ch == CharEmpty {
				continue
			}
			color, ok := ParseColor(string(ch))
			if !ok {
				return nil, fmt.Errorf("row %d col %d %q: %w", row, col, ch, ErrBadCell)
			}
			if _, err := g.Insert(At(row, col), color); err != nil {
				return nil, err
			}
		}
	}

	if floaters := FindFloaters(g); len(floaters) > 0 {
		b, _ := g.Bubble(floaters[0])
		return nil, fmt.Errorf("%d bubbles, first at %v: %w", len(floaters), b.Cell, ErrUnanchored)
	}
	return g, nil
}

// Layout returns the field as compact rows in the format BuildField reads.
// Trailing empty rows are dropped.
func Layout(g *Graph) []string {
	last := g.LowestRow()
	out := make([]string, 0, last+1)
	for row := 0; row <= last; row++ {
		var sb strings.Builder
		for col := 0; col < g.Cols(); col++ {
			sb.WriteRune(cellChar(g, At(row, col)))
		}
		out = append(out, sb.String())
	}
	return out
}

func cellChar(g *Graph, c Cell) rune {
	id, ok := g.At(c)
	if !ok {
		return CharEmpty
	}
	b, _ := g.Bubble(id)
	return b.Color.Char()
}
