package config

import (
	_ "embed"
)

//go:embed defaults/blocks.yaml
var defaultBlocksYAML []byte

// DefaultBlocksConfig returns the built-in configuration.
func DefaultBlocksConfig() BlocksConfig {
	return BlocksConfig{
		Scoring: ScoringConfig{
			LineScores:     []int{0, 40, 100, 300, 1200},
			HardDropPoints: 2,
			LinesPerLevel:  10,
		},
		Speed: SpeedConfig{
			BaseDropMs:  1000,
			LevelStepMs: 100,
			MinDropMs:   50,
		},
		AI: AIConfig{
			HeightWeight:    -0.510066,
			LinesWeight:     0.760666,
			HolesWeight:     -0.35663,
			BumpinessWeight: -0.184483,
		},
	}
}
