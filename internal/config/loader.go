package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadMarcoPolo loads Marco Polo configuration.
// Search order: customPath -> ~/.arcade/configs/marcopolo.yaml -> ./configs/marcopolo.yaml -> embedded default
func LoadMarcoPolo(customPath string) (MarcoPoloConfig, error) {
	cfg, err := load("marcopolo", customPath, DefaultMarcoPoloConfig)
	if err != nil {
		return cfg, err
	}
	cfg.Normalize()
	return cfg, nil
}

// LoadPacman loads Pac-Man 3D configuration.
// Search order: customPath -> ~/.arcade/configs/pacman.yaml -> ./configs/pacman.yaml -> embedded default
func LoadPacman(customPath string) (PacmanConfig, error) {
	cfg, err := load("pacman", customPath, DefaultPacmanConfig)
	if err != nil {
		return cfg, err
	}
	cfg.Normalize()
	return cfg, nil
}

// load decodes YAML over the hardcoded defaults so partial files keep
// every key they leave out.
func load[T any](gameID, customPath string, defaults func() T) (T, error) {
	filename := gameID + ".yaml"

	// Try custom path first
	if customPath != "" {
		cfg := defaults()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(filename), filepath.Join("configs", filename)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := defaults()
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := defaults()
	if err := yaml.Unmarshal(GetDefaultYAML(gameID), &cfg); err != nil {
		return defaults(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

func applyPreset(d *DifficultyConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		d.Enabled = false
	} else {
		d.Enabled = true
		d.InitialLevel = InitialLevelForPreset(preset)
	}
}

// ApplyMarcoPoloPreset modifies the config based on a difficulty preset.
func ApplyMarcoPoloPreset(cfg *MarcoPoloConfig, preset DifficultyPreset) {
	applyPreset(&cfg.Difficulty, preset)

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Round.TimeLimitSec = 120
		cfg.Call.Charges = 8
	case DifficultyHard:
		cfg.Round.TimeLimitSec = 60
		cfg.Call.Charges = 3
	}
}

// ApplyPacmanPreset modifies the config based on a difficulty preset.
func ApplyPacmanPreset(cfg *PacmanConfig, preset DifficultyPreset) {
	applyPreset(&cfg.Difficulty, preset)

	switch preset {
	case DifficultyEasy:
		cfg.Round.Lives = 5
		cfg.Power.DurationMs = 8000
	case DifficultyHard:
		cfg.Round.Lives = 2
		cfg.Power.DurationMs = 4000
	}
}
