package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTanks loads the tank game configuration.
// Search order: customPath -> ~/.tanks/configs/tanks.yaml -> ./configs/tanks.yaml -> embedded default
//
// Files are decoded over the defaults, so a file only needs the keys it
// changes.
func LoadTanks(customPath string) (TankConfig, error) {
	cfg := DefaultTankConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("tanks.yaml"); userCfgPath != "" {
		if c, ok := tryLoad(userCfgPath); ok {
			return c, nil
		}
	}

	// Try local configs directory
	if c, ok := tryLoad(filepath.Join("configs", "tanks.yaml")); ok {
		return c, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultTanksYAML, &cfg); err != nil {
		return DefaultTankConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file. Missing, malformed or invalid
// files are skipped so the next source in the search order is used.
func tryLoad(path string) (TankConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TankConfig{}, false
	}
	cfg := DefaultTankConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TankConfig{}, false
	}
	if cfg.Validate() != nil {
		return TankConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tanks", "configs", filename)
}

// ApplyTanksPreset modifies the config based on a difficulty preset.
func ApplyTanksPreset(cfg *TankConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Enemy.MaxHealth = 20
		cfg.PowerUps.SpawnChance = 0.004
	case DifficultyHard:
		cfg.Enemy.MaxHealth = 40
		cfg.PowerUps.SpawnChance = 0.001
	}
}
