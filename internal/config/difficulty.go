package config

import "math"

// DifficultyManager calculates enemy parameters based on the run's progress.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: cfg.InitialLevel,
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty scaling.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty scaling is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Level returns the current difficulty level (0.0 to 1.0) for a run at the
// given score and game level. Disabled managers report 0 so base values pass
// through unchanged.
func (d *DifficultyManager) Level(score int, gameLevel int) float64 {
	if !d.cfg.Enabled {
		return 0
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "level":
		progress = float64(gameLevel-1) / maxAt
	case "score":
		progress = float64(score) / maxAt
	default:
		return d.initialLevel
	}

	// Clamp progress to [0, 1]
	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// LockOn returns the enemy lock-on duration in milliseconds.
func (d *DifficultyManager) LockOn(baseMs float64, score, gameLevel int) float64 {
	level := d.Level(score, gameLevel)
	// Lock-on shrinks towards base * (1 - lockOnReduction)
	return baseMs * (1.0 - level*clampF(d.cfg.Scaling.LockOnReduction, 0, 1))
}

// TurnRate returns the enemy turn rate in radians per step.
func (d *DifficultyManager) TurnRate(base float64, score, gameLevel int) float64 {
	level := d.Level(score, gameLevel)
	return base * (1.0 + level*d.cfg.Scaling.TurnRateMultiplier)
}

// Vision returns the enemy vision range.
func (d *DifficultyManager) Vision(base float64, score, gameLevel int) float64 {
	level := d.Level(score, gameLevel)
	return base * (1.0 + level*d.cfg.Scaling.VisionMultiplier)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
