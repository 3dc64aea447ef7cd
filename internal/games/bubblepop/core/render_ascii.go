package core

import "strings"

// RenderASCII draws every field row, bubbles separated by spaces. On a hex
// grid odd rows are shifted right by one column so neighbors line up.
func RenderASCII(g *Graph) string {
	_, hex := g.Topology().(HexGrid)

	var sb strings.Builder
	for row := 0; row < g.Rows(); row++ {
		var line strings.Builder
		if hex && row%2 == 1 {
			line.WriteByte(' ')
		}
		for col := 0; col < g.Cols(); col++ {
			if col > 0 {
				line.WriteByte(' ')
			}
			line.WriteRune(cellChar(g, At(row, col)))
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
