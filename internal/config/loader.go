package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFileName = "heist.yaml"

// LoadHeist loads the simulation configuration.
// Search order: customPath -> ~/.heist/configs/heist.yaml -> ./configs/heist.yaml -> embedded default.
// Every file overlays DefaultHeistConfig, so partial files are fine.
func LoadHeist(customPath string) (HeistConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return HeistConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return HeistConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultHeistYAML)
	if err != nil {
		return DefaultHeistConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (HeistConfig, error) {
	cfg := DefaultHeistConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return HeistConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return HeistConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".heist", "configs", filename)
}

// ApplyPreset scales enemy pressure and the respawn delay for a difficulty preset.
func ApplyPreset(cfg *HeistConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		for _, e := range []*EnemyConfig{&cfg.Drone, &cfg.Dog} {
			e.Speed = max(1, e.Speed-1)
			e.ChaseRangeTiles = max(1, e.ChaseRangeTiles-1)
		}
		cfg.Player.RespawnDelayTicks = cfg.Player.RespawnDelayTicks * 2 / 3
	case DifficultyHard:
		for _, e := range []*EnemyConfig{&cfg.Drone, &cfg.Dog} {
			e.Speed++
			e.ChaseRangeTiles++
		}
		cfg.Player.RespawnDelayTicks = cfg.Player.RespawnDelayTicks * 4 / 3
	}
}
