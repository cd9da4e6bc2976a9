// Package config provides YAML-based game configuration loading and
// difficulty management for the tank game.
package config

import (
	"errors"
	"fmt"
)

// TankConfig contains all tuning parameters of the tank simulation.
type TankConfig struct {
	World      TankWorld        `yaml:"world"`
	Tank       TankBody         `yaml:"tank"`
	Player     TankPlayer       `yaml:"player"`
	Enemy      TankEnemy        `yaml:"enemy"`
	Bullet     TankBullet       `yaml:"bullet"`
	Level      TankLevel        `yaml:"level"`
	PowerUps   TankPowerUps     `yaml:"powerups"`
	Particles  TankParticles    `yaml:"particles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TankWorld defines the fixed world dimensions in world units.
type TankWorld struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// TankBody defines the hull and gun shared by every tank.
type TankBody struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	MaxAmmo      int     `yaml:"max_ammo"`
	CooldownMs   float64 `yaml:"cooldown_ms"`
	MuzzleOffset float64 `yaml:"muzzle_offset"` // Bullet spawn distance from the hull center
}

// TankPlayer defines the input-driven tank.
type TankPlayer struct {
	MaxHealth    int     `yaml:"max_health"`
	ForwardSpeed float64 `yaml:"forward_speed"`
	ReverseSpeed float64 `yaml:"reverse_speed"` // Magnitude, applied backwards
	TurnRate     float64 `yaml:"turn_rate"`     // Radians per step
	BottomMargin float64 `yaml:"bottom_margin"` // Spawn distance from the bottom edge
}

// TankEnemy defines AI-driven tanks.
type TankEnemy struct {
	MaxHealth       int     `yaml:"max_health"`
	VisionRange     float64 `yaml:"vision_range"`
	LoseSightFactor float64 `yaml:"lose_sight_factor"` // Vision hysteresis multiplier
	AimThreshold    float64 `yaml:"aim_threshold"`     // Radians
	LockOnMs        float64 `yaml:"lock_on_ms"`
	TurnRate        float64 `yaml:"turn_rate"` // Radians per step
	RepositionSpeed float64 `yaml:"reposition_speed"`
	RepositionMs    float64 `yaml:"reposition_ms"`
	KillScore       int     `yaml:"kill_score"`
}

// TankBullet defines projectiles.
type TankBullet struct {
	Size   float64 `yaml:"size"`
	Speed  float64 `yaml:"speed"`
	Damage int     `yaml:"damage"`
}

// TankLevel defines level generation.
type TankLevel struct {
	BaseObstacles    int     `yaml:"base_obstacles"` // Obstacles per level are base + level
	ObstacleMinSize  float64 `yaml:"obstacle_min_size"`
	ObstacleMaxSize  float64 `yaml:"obstacle_max_size"`
	BandMargin       float64 `yaml:"band_margin"` // Obstacle-free rows at top and bottom
	ObstacleAttempts int     `yaml:"obstacle_attempts"`
	ObstacleSpacing  float64 `yaml:"obstacle_spacing"`
	SafeZonePadding  float64 `yaml:"safe_zone_padding"`
	EnemyAttempts    int     `yaml:"enemy_attempts"`
	EnemyMargin      float64 `yaml:"enemy_margin"` // Enemies spawn with x in [0, width-margin]
	CompletionBonus  int     `yaml:"completion_bonus"`
}

// TankPowerUps defines pickups.
type TankPowerUps struct {
	Size         float64 `yaml:"size"`
	SpawnChance  float64 `yaml:"spawn_chance"` // Probability per step
	Attempts     int     `yaml:"attempts"`
	HealthAmount int     `yaml:"health_amount"`
	AmmoAmount   int     `yaml:"ammo_amount"`
	SpinRate     float64 `yaml:"spin_rate"`
}

// TankParticles defines cosmetic explosions.
type TankParticles struct {
	MinSize    float64 `yaml:"min_size"`
	SizeRange  float64 `yaml:"size_range"`
	Spread     float64 `yaml:"spread"` // Max initial speed per axis
	MinLife    float64 `yaml:"min_life"`
	LifeRange  float64 `yaml:"life_range"`
	Gravity    float64 `yaml:"gravity"`
	Shrink     float64 `yaml:"shrink"`
	HitCount   int     `yaml:"hit_count"`
	KillCount  int     `yaml:"kill_count"`
	DeathCount int     `yaml:"death_count"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level", "score", or "none"
	MaxAt int    `yaml:"max_at"` // Level/score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	LockOnReduction    float64 `yaml:"lock_on_reduction"`    // Fraction of lock-on time removed at max difficulty
	TurnRateMultiplier float64 `yaml:"turn_rate_multiplier"` // Multiplier added to enemy turn rate at max difficulty
	VisionMultiplier   float64 `yaml:"vision_multiplier"`    // Multiplier added to vision range at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string maps to fixed.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyFixed, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

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

// Validate reports the first parameter that would make the simulation
// degenerate.
func (c TankConfig) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return errors.New("world dimensions must be positive")
	case c.Tank.Width <= 0 || c.Tank.Height <= 0:
		return errors.New("tank dimensions must be positive")
	case c.Tank.Width > c.World.Width || c.Tank.Height > c.World.Height:
		return errors.New("tank does not fit in the world")
	case c.Tank.MaxAmmo < 0 || c.Tank.CooldownMs < 0:
		return errors.New("tank ammo and cooldown must not be negative")
	case c.Player.MaxHealth <= 0 || c.Enemy.MaxHealth <= 0:
		return errors.New("max health must be positive")
	case c.Bullet.Size <= 0 || c.Bullet.Speed <= 0:
		return errors.New("bullet size and speed must be positive")
	case c.Level.ObstacleMinSize <= 0 || c.Level.ObstacleMaxSize < c.Level.ObstacleMinSize:
		return fmt.Errorf("invalid obstacle size range [%g, %g]", c.Level.ObstacleMinSize, c.Level.ObstacleMaxSize)
	case c.World.Height-c.Level.ObstacleMaxSize-2*c.Level.BandMargin < 0:
		return errors.New("obstacle band does not fit in the world")
	case c.PowerUps.SpawnChance < 0 || c.PowerUps.SpawnChance > 1:
		return fmt.Errorf("power-up spawn chance %g outside [0, 1]", c.PowerUps.SpawnChance)
	case c.Enemy.LoseSightFactor < 1:
		return errors.New("enemy lose_sight_factor must be at least 1")
	}
	return nil
}
