package config

import (
	_ "embed"
)

//go:embed defaults/bubblepop.yaml
var defaultBubblePopYAML []byte

// DefaultBubblePopConfig returns the default configuration.
func DefaultBubblePopConfig() BubblePopConfig {
	return BubblePopConfig{
		Field: FieldConfig{
			Topology:   "hex",
			Cols:       10,
			Rows:       16,
			FilledRows: 5,
			DangerRow:  14,
		},
		Gameplay: GameplayConfig{
			MinMatch:     3,
			Shots:        40,
			BoosterEvery: 10,
			Colors:       4,
		},
		Booster: BoosterConfig{
			Enabled:       true,
			GateInclusive: true,
		},
		Scoring: ScoringConfig{
			PopPoints:    10,
			DropPoints:   20,
			BoosterBonus: 5,
			ShotBonus:    50,
		},
		Physics: PhysicsConfig{
			Speed:           0.5,
			AimStep:         3,
			MaxAngle:        78,
			CollisionFactor: 0.9,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
				ExtraColors:     2,
				ExtraRows:       3,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "bubblepop", "bubblepop_endless":
		return defaultBubblePopYAML
	default:
		return nil
	}
}
