// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
)

// Defaults applied when a level file leaves a field out.
const (
	DefaultShots  = 30
	DefaultColors = 4
)

// Level represents a parsed level ready for use.
type Level struct {
	ID        string
	Name      string
	Topology  core.Topology
	Cols      int
	Rows      int
	Layout    []string
	Shots     int
	Colors    int
	DangerRow int
	Boosters  int
	Feed      []core.Color
	Metadata  map[string]string
}

// rawLevel is the shape every format decodes into.
type rawLevel struct {
	ID        string
	Name      string
	Topology  string
	Cols      int
	Rows      int
	Layout    []string
	Shots     int
	Colors    int
	DangerRow int
	Boosters  int
	Feed      []string
	Metadata  map[string]string
}

func (r rawLevel) build() (Level, error) {
	topo, ok := core.ParseTopology(strings.ToLower(r.Topology))
	if !ok {
		return Level{}, fmt.Errorf("unknown topology %q", r.Topology)
	}
	if r.ID == "" {
		return Level{}, fmt.Errorf("missing id")
	}

	cols := r.Cols
	if cols <= 0 {
		for _, line := range r.Layout {
			if n := len(strings.ReplaceAll(line, " ", "")); n > cols {
				cols = n
			}
		}
	}
	rows := r.Rows
	if rows <= 0 {
		rows = len(r.Layout) + 8
	}

	level := Level{
		ID:        r.ID,
		Name:      r.Name,
		Topology:  topo,
		Cols:      cols,
		Rows:      rows,
		Layout:    r.Layout,
		Shots:     r.Shots,
		Colors:    r.Colors,
		DangerRow: r.DangerRow,
		Boosters:  r.Boosters,
		Metadata:  r.Metadata,
	}
	if level.Name == "" {
		level.Name = level.ID
	}
	if level.Shots <= 0 {
		level.Shots = DefaultShots
	}
	if level.Colors <= 0 || level.Colors > len(core.Palette()) {
		level.Colors = DefaultColors
	}
	if level.DangerRow <= 0 || level.DangerRow >= rows {
		level.DangerRow = rows - 1
	}

	for _, name := range r.Feed {
		color, ok := core.ParseColor(name)
		if !ok || !color.Matchable() {
			return Level{}, fmt.Errorf("bad feed color %q", name)
		}
		level.Feed = append(level.Feed, color)
	}

	// Validate the layout up front so a broken file fails at load time.
	if _, err := level.Field(); err != nil {
		return Level{}, err
	}
	return level, nil
}

// Field builds the level's starting field.
func (l *Level) Field() (*core.Graph, error) {
	return core.BuildField(l.Topology, l.Cols, l.Rows, l.Layout)
}

// NewFeed returns the level's bubble supply: its fixed sequence when it has
// one, otherwise a seeded random feed over the level's colors.
func (l *Level) NewFeed(seed int64) core.Feed {
	if len(l.Feed) > 0 {
		return core.NewSequenceFeed(l.Feed...)
	}
	return core.NewRandomFeed(seed, l.Colors)
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".toml"}
}
