package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBubblePop loads the game configuration.
// Search order: customPath -> ~/.bubblepop/configs/bubblepop.yaml -> ./configs/bubblepop.yaml -> embedded default
func LoadBubblePop(customPath string) (BubblePopConfig, error) {
	cfg := DefaultBubblePopConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("bubblepop.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "bubblepop.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultBubblePopYAML, &cfg); err != nil {
		return DefaultBubblePopConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bubblepop", "configs", filename)
}

// ParsePreset converts a name to a DifficultyPreset.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyNormal, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (easy, normal, hard, fixed)", name)
	}
}

// ApplyBubblePopPreset modifies the config based on a difficulty preset.
func ApplyBubblePopPreset(cfg *BubblePopConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Shots += 10
		cfg.Gameplay.BoosterEvery = 6
		cfg.Physics.Speed *= 0.8
	case DifficultyHard:
		cfg.Gameplay.Shots -= 10
		cfg.Gameplay.BoosterEvery = 15
		cfg.Physics.Speed *= 1.25
	}
	if cfg.Gameplay.Shots < 5 {
		cfg.Gameplay.Shots = 5
	}
}
