package config

import "math"

// DifficultyManager calculates dynamic game parameters based on score, time or level.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Progress is what the progression type measures: a score, elapsed
// seconds, or a 1-based level number.
type Progress struct {
	Score   int
	Seconds float64
	Level   int
}

// Level returns the current difficulty level (0.0 to 1.0).
func (d *DifficultyManager) Level(p Progress) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(p.Score) / maxAt
	case "time":
		progress = p.Seconds / maxAt
	case "level":
		// Level 1 is the baseline.
		progress = float64(p.Level-1) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns base scaled from base to base * (1 + speed_multiplier).
func (d *DifficultyManager) Speed(base float64, p Progress) float64 {
	return base * (1.0 + d.Level(p)*d.cfg.Scaling.SpeedMultiplier)
}

// Shrink reduces a timer by time_reduction at max difficulty, never below floor.
func (d *DifficultyManager) Shrink(base, floor float64, p Progress) float64 {
	result := base * (1.0 - d.Level(p)*d.cfg.Scaling.TimeReduction)
	if result < floor {
		result = floor
	}
	return result
}

// LevelSpeed returns a speed scale per 1-based game level, relative to level 1.
func (d *DifficultyManager) LevelSpeed() func(level int) float64 {
	return func(level int) float64 {
		first := d.Speed(1, Progress{Level: 1})
		if first <= 0 {
			return 1
		}
		return d.Speed(1, Progress{Level: level}) / first
	}
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	if math.IsNaN(val) {
		return min
	}
	return math.Max(min, math.Min(max, val))
}
