package config

import (
	_ "embed"
)

//go:embed defaults/tanks.yaml
var defaultTanksYAML []byte

// DefaultTankConfig returns the default tank game configuration.
func DefaultTankConfig() TankConfig {
	return TankConfig{
		World: TankWorld{
			Width:  800,
			Height: 600,
		},
		Tank: TankBody{
			Width:        40,
			Height:       30,
			MaxAmmo:      10,
			CooldownMs:   500,
			MuzzleOffset: 25,
		},
		Player: TankPlayer{
			MaxHealth:    100,
			ForwardSpeed: 2.5,
			ReverseSpeed: 2.0,
			TurnRate:     0.05,
			BottomMargin: 50,
		},
		Enemy: TankEnemy{
			MaxHealth:       30,
			VisionRange:     350,
			LoseSightFactor: 1.2,
			AimThreshold:    0.1,
			LockOnMs:        750,
			TurnRate:        0.04,
			RepositionSpeed: 1.5,
			RepositionMs:    1500,
			KillScore:       100,
		},
		Bullet: TankBullet{
			Size:   5,
			Speed:  8,
			Damage: 10,
		},
		Level: TankLevel{
			BaseObstacles:    5,
			ObstacleMinSize:  30,
			ObstacleMaxSize:  80,
			BandMargin:       75,
			ObstacleAttempts: 20,
			ObstacleSpacing:  15,
			SafeZonePadding:  50,
			EnemyAttempts:    30,
			EnemyMargin:      50,
			CompletionBonus:  500,
		},
		PowerUps: TankPowerUps{
			Size:         20,
			SpawnChance:  0.002,
			Attempts:     50,
			HealthAmount: 25,
			AmmoAmount:   10,
			SpinRate:     0.02,
		},
		Particles: TankParticles{
			MinSize:    2,
			SizeRange:  5,
			Spread:     2,
			MinLife:    20,
			LifeRange:  20,
			Gravity:    0.05,
			Shrink:     0.98,
			HitCount:   20,
			KillCount:  30,
			DeathCount: 50,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				LockOnReduction:    0.5,
				TurnRateMultiplier: 0.5,
				VisionMultiplier:   0.3,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "tanks":
		return defaultTanksYAML
	default:
		return nil
	}
}
