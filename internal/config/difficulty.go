package config

import "math"

// DifficultyManager ramps endless mode from the configured initial level
// toward 1.0 as score or time accumulates.
type DifficultyManager struct {
	cfg DifficultyConfig
}

func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// progress is how far along the ramp the session is, in [0, 1]. It is -1
// when progression is off.
func (d *DifficultyManager) progress(score, ticks int) float64 {
	if !d.cfg.Enabled {
		return -1
	}
	var at int
	switch d.cfg.Progression.Type {
	case "score":
		at = score
	case "time":
		at = ticks
	default:
		return -1
	}
	return math.Min(float64(at)/math.Max(float64(d.cfg.Progression.MaxAt), 1), 1)
}

// Level returns the difficulty level in [InitialLevel, 1].
func (d *DifficultyManager) Level(score, ticks int) float64 {
	start := math.Max(0, math.Min(d.cfg.InitialLevel, 1))
	p := d.progress(score, ticks)
	if p < 0 {
		return start
	}
	return start + p*(1-start)
}

// Speed scales the base flight speed by up to 1+SpeedMultiplier.
func (d *DifficultyManager) Speed(base float64, score, ticks int) float64 {
	return base * (1 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier)
}

// Colors is the color count of a fresh endless field. It stays in
// [2, limit]; one color would clear itself.
func (d *DifficultyManager) Colors(base, limit, score, ticks int) int {
	return d.extra(base, d.cfg.Scaling.ExtraColors, 2, limit, score, ticks)
}

// FilledRows is the populated row count of a fresh endless field. At least
// three empty rows stay above the danger row.
func (d *DifficultyManager) FilledRows(base, dangerRow, score, ticks int) int {
	return d.extra(base, d.cfg.Scaling.ExtraRows, 1, dangerRow-3, score, ticks)
}

func (d *DifficultyManager) extra(base, extra, lo, hi, score, ticks int) int {
	n := base + int(d.Level(score, ticks)*float64(extra))
	return max(min(n, hi), lo)
}
