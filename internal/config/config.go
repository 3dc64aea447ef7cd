// Package config provides YAML-based game configuration loading and
// difficulty management for bubblepop.
package config

// BubblePopConfig contains all configuration for the game.
type BubblePopConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Booster    BoosterConfig    `yaml:"booster"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FieldConfig defines the field generated in endless mode.
type FieldConfig struct {
	Topology   string `yaml:"topology"` // "hex" or "square"
	Cols       int    `yaml:"cols"`
	Rows       int    `yaml:"rows"`        // Total height, including empty rows
	FilledRows int    `yaml:"filled_rows"` // Rows populated at start
	DangerRow  int    `yaml:"danger_row"`  // Attaching at or below this row ends the game
}

// GameplayConfig defines round rules.
type GameplayConfig struct {
	MinMatch     int `yaml:"min_match"`
	Shots        int `yaml:"shots"`         // Shots per endless field; levels carry their own
	BoosterEvery int `yaml:"booster_every"` // Grant a booster every N rounds, 0 disables
	Colors       int `yaml:"colors"`        // Colors in endless mode
}

// BoosterConfig defines booster behavior.
type BoosterConfig struct {
	Enabled       bool `yaml:"enabled"`
	GateInclusive bool `yaml:"gate_inclusive"` // Struck bubble level with the incoming one passes the gate
}

// ScoringConfig defines point values.
type ScoringConfig struct {
	PopPoints    int `yaml:"pop_points"`    // Per matched bubble
	DropPoints   int `yaml:"drop_points"`   // Per floater
	BoosterBonus int `yaml:"booster_bonus"` // Per bubble cleared by a booster
	ShotBonus    int `yaml:"shot_bonus"`    // Per unused shot when a field is cleared
}

// PhysicsConfig defines bubble flight.
type PhysicsConfig struct {
	Speed           float64 `yaml:"speed"`            // Field cells per tick
	AimStep         float64 `yaml:"aim_step"`         // Degrees per key press
	MaxAngle        float64 `yaml:"max_angle"`        // Degrees from vertical
	CollisionFactor float64 `yaml:"collision_factor"` // Collision distance in diameters
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
	ExtraColors     int     `yaml:"extra_colors"`     // Colors added at max difficulty
	ExtraRows       int     `yaml:"extra_rows"`       // Filled rows added at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
