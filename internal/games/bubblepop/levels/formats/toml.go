package formats

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// TOMLLevel represents the TOML structure for a level file. The layout is a
// multi-line string, one field row per line.
type TOMLLevel struct {
	ID        string            `toml:"id"`
	Name      string            `toml:"name"`
	Topology  string            `toml:"topology"`
	Cols      int               `toml:"cols"`
	Rows      int               `toml:"rows"`
	Layout    string            `toml:"layout"`
	Shots     int               `toml:"shots"`
	Colors    int               `toml:"colors"`
	DangerRow int               `toml:"danger_row"`
	Boosters  int               `toml:"boosters"`
	Feed      []string          `toml:"feed"`
	Metadata  map[string]string `toml:"metadata"`
}

// ParseTOML parses a TOML level file.
func ParseTOML(data []byte) (Level, error) {
	var tl TOMLLevel
	if err := toml.Unmarshal(data, &tl); err != nil {
		return Level{}, fmt.Errorf("toml unmarshal: %w", err)
	}

	return rawLevel{
		ID:        tl.ID,
		Name:      tl.Name,
		Topology:  tl.Topology,
		Cols:      tl.Cols,
		Rows:      tl.Rows,
		Layout:    splitLayout(tl.Layout),
		Shots:     tl.Shots,
		Colors:    tl.Colors,
		DangerRow: tl.DangerRow,
		Boosters:  tl.Boosters,
		Feed:      tl.Feed,
		Metadata:  tl.Metadata,
	}.build()
}

// splitLayout turns a multi-line string into rows, dropping blank lines at
// either end.
func splitLayout(s string) []string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.TrimSpace(line)
	}
	return out
}
