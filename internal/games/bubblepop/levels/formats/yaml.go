package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID        string            `yaml:"id"`
	Name      string            `yaml:"name"`
	Topology  string            `yaml:"topology,omitempty"`
	Size      YAMLSize          `yaml:"size"`
	Layout    []string          `yaml:"layout"`
	Shots     int               `yaml:"shots,omitempty"`
	Colors    int               `yaml:"colors,omitempty"`
	DangerRow int               `yaml:"danger_row,omitempty"`
	Boosters  int               `yaml:"boosters,omitempty"`
	Feed      []string          `yaml:"feed,omitempty"`
	Metadata  map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents field dimensions.
type YAMLSize struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	return rawLevel{
		ID:        yl.ID,
		Name:      yl.Name,
		Topology:  yl.Topology,
		Cols:      yl.Size.Cols,
		Rows:      yl.Size.Rows,
		Layout:    yl.Layout,
		Shots:     yl.Shots,
		Colors:    yl.Colors,
		DangerRow: yl.DangerRow,
		Boosters:  yl.Boosters,
		Feed:      yl.Feed,
		Metadata:  yl.Metadata,
	}.build()
}
