package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named speed curve.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets returns all presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParsePreset parses a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Presets() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q", s)
}

// IsFixedPreset returns true if the preset disables the speed-up per level.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the speed curve for a difficulty preset.
// Normal leaves the configuration as loaded.
func ApplyPreset(cfg *BlocksConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Speed.BaseDropMs = cfg.Speed.BaseDropMs * 3 / 2
		cfg.Speed.LevelStepMs = cfg.Speed.LevelStepMs / 2
	case DifficultyHard:
		cfg.Speed.BaseDropMs = max(cfg.Speed.MinDropMs, cfg.Speed.BaseDropMs/2)
		cfg.Speed.LevelStepMs = cfg.Speed.LevelStepMs * 3 / 2
	case DifficultyFixed:
		cfg.Speed.LevelStepMs = 0
	}
}
