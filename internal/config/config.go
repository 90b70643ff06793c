// Package config provides YAML-based configuration for the block engine,
// its speed curve, the hint evaluator and per-mode overrides.
package config

import (
	"fmt"
	"sort"
)

// BlocksConfig is the root of blocks.yaml.
type BlocksConfig struct {
	Scoring ScoringConfig           `yaml:"scoring"`
	Speed   SpeedConfig             `yaml:"speed"`
	AI      AIConfig                `yaml:"ai"`
	Modes   map[string]ModeOverride `yaml:"modes,omitempty"`
}

// ScoringConfig defines the points awarded on lock.
type ScoringConfig struct {
	LineScores     []int `yaml:"line_scores"` // Index = lines cleared at once (0..4)
	HardDropPoints int   `yaml:"hard_drop_points"`
	LinesPerLevel  int   `yaml:"lines_per_level"`
}

// SpeedConfig defines the level-based gravity curve.
type SpeedConfig struct {
	BaseDropMs  int `yaml:"base_drop_ms"`
	LevelStepMs int `yaml:"level_step_ms"`
	MinDropMs   int `yaml:"min_drop_ms"`
}

// AIConfig holds the evaluator weights.
type AIConfig struct {
	HeightWeight    float64 `yaml:"height_weight"`
	LinesWeight     float64 `yaml:"lines_weight"`
	HolesWeight     float64 `yaml:"holes_weight"`
	BumpinessWeight float64 `yaml:"bumpiness_weight"`
}

// ModeOverride replaces selected fields of a built-in mode.
// Nil fields keep the built-in value.
type ModeOverride struct {
	Width         *int     `yaml:"width,omitempty"`
	Height        *int     `yaml:"height,omitempty"`
	StartLevel    *int     `yaml:"start_level,omitempty"`
	TimeLimitSecs *int     `yaml:"time_limit_secs,omitempty"`
	FixedDropMs   *int     `yaml:"fixed_drop_ms,omitempty"`
	GarbageRows   *int     `yaml:"garbage_rows,omitempty"`
	GarbageFill   *float64 `yaml:"garbage_fill,omitempty"`
	TideSecs      *int     `yaml:"tide_interval_secs,omitempty"`
	LineBonusSecs *int     `yaml:"line_bonus_secs,omitempty"`
	WinLines      *int     `yaml:"win_lines,omitempty"`
}

// InvalidConfigError reports a value that failed validation.
type InvalidConfigError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("config: invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) error {
	return &InvalidConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks value ranges. Mode IDs are not checked here since the
// mode table belongs to the engine.
func (c *BlocksConfig) Validate() error {
	if len(c.Scoring.LineScores) != 5 {
		return invalid("scoring.line_scores", "need 5 entries, got %d", len(c.Scoring.LineScores))
	}
	for i, v := range c.Scoring.LineScores {
		if v < 0 {
			return invalid(fmt.Sprintf("scoring.line_scores[%d]", i), "must not be negative")
		}
	}
	if c.Scoring.HardDropPoints < 0 {
		return invalid("scoring.hard_drop_points", "must not be negative")
	}
	if c.Scoring.LinesPerLevel <= 0 {
		return invalid("scoring.lines_per_level", "must be positive")
	}

	if c.Speed.MinDropMs <= 0 {
		return invalid("speed.min_drop_ms", "must be positive")
	}
	if c.Speed.BaseDropMs < c.Speed.MinDropMs {
		return invalid("speed.base_drop_ms", "must be at least min_drop_ms (%d)", c.Speed.MinDropMs)
	}
	if c.Speed.LevelStepMs < 0 {
		return invalid("speed.level_step_ms", "must not be negative")
	}

	for _, id := range c.ModeIDs() {
		if err := c.Modes[id].validate("modes." + id); err != nil {
			return err
		}
	}
	return nil
}

func (o ModeOverride) validate(prefix string) error {
	checkInt := func(name string, v *int, lo, hi int) error {
		if v != nil && (*v < lo || *v > hi) {
			return invalid(prefix+"."+name, "%d out of range [%d, %d]", *v, lo, hi)
		}
		return nil
	}

	checks := []error{
		checkInt("width", o.Width, 4, 40),
		checkInt("height", o.Height, 4, 60),
		checkInt("start_level", o.StartLevel, 1, 99),
		checkInt("time_limit_secs", o.TimeLimitSecs, 0, 24*3600),
		checkInt("fixed_drop_ms", o.FixedDropMs, 0, 10000),
		checkInt("tide_interval_secs", o.TideSecs, 0, 3600),
		checkInt("line_bonus_secs", o.LineBonusSecs, 0, 3600),
		checkInt("win_lines", o.WinLines, 0, 10000),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}

	if o.GarbageFill != nil && (*o.GarbageFill < 0 || *o.GarbageFill > 1) {
		return invalid(prefix+".garbage_fill", "%v out of range [0, 1]", *o.GarbageFill)
	}
	if o.GarbageRows != nil {
		height := 60
		if o.Height != nil {
			height = *o.Height
		}
		if *o.GarbageRows < 0 || *o.GarbageRows >= height {
			return invalid(prefix+".garbage_rows", "%d must be in [0, height)", *o.GarbageRows)
		}
	}
	return nil
}

// ModeIDs returns the override keys in sorted order.
func (c *BlocksConfig) ModeIDs() []string {
	ids := make([]string, 0, len(c.Modes))
	for id := range c.Modes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
