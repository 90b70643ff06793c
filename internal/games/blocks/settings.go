package blocks

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockdrop/internal/ai"
	"github.com/vovakirdan/blockdrop/internal/config"
	"github.com/vovakirdan/blockdrop/internal/engine"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// logger receives lock, line clear and game over events.
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names reset it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// SetLogger routes game events to l. A nil logger silences them.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// loadConfig reads the YAML configuration and applies the preset.
// A broken file falls back to the defaults with a warning.
func loadConfig() config.BlocksConfig {
	cfg, err := config.LoadBlocks(configPath)
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg = config.DefaultBlocksConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPreset(&cfg, difficultyPreset)
	}
	return cfg
}

// EffectiveConfig returns the configuration new games will use: the
// loaded YAML with the current difficulty preset applied.
func EffectiveConfig() config.BlocksConfig {
	return loadConfig()
}

// EngineConfig converts the YAML configuration into engine rules and the
// mode table, applying per-mode overrides on top of the built-in modes.
func EngineConfig(cfg config.BlocksConfig) (engine.Config, error) {
	var rules engine.Rules
	copy(rules.LineScores[:], cfg.Scoring.LineScores)
	rules.HardDropPoints = cfg.Scoring.HardDropPoints
	rules.LinesPerLevel = cfg.Scoring.LinesPerLevel
	rules.BaseDropMs = cfg.Speed.BaseDropMs
	rules.LevelStepMs = cfg.Speed.LevelStepMs
	rules.MinDropMs = cfg.Speed.MinDropMs

	modes := engine.DefaultModes()
	for _, id := range cfg.ModeIDs() {
		m, err := engine.ParseMode(id)
		if err != nil {
			return engine.Config{}, &config.InvalidConfigError{Field: "modes." + id, Reason: "unknown mode"}
		}
		modes[m] = applyOverride(modes[m], cfg.Modes[id])
	}

	return engine.Config{Rules: rules, Modes: modes}, nil
}

func applyOverride(mc engine.ModeConfig, o config.ModeOverride) engine.ModeConfig {
	set := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	set(&mc.Width, o.Width)
	set(&mc.Height, o.Height)
	set(&mc.StartLevel, o.StartLevel)
	set(&mc.TimeLimit, o.TimeLimitSecs)
	set(&mc.FixedDropMs, o.FixedDropMs)
	set(&mc.GarbageRows, o.GarbageRows)
	set(&mc.TideInterval, o.TideSecs)
	set(&mc.LineBonusSecs, o.LineBonusSecs)
	if o.GarbageFill != nil {
		mc.GarbageFill = *o.GarbageFill
	}
	if o.WinLines != nil {
		if *o.WinLines > 0 {
			mc.Win = engine.WinCondition{Kind: engine.WinLines, Lines: *o.WinLines}
		} else {
			mc.Win = engine.WinCondition{Kind: engine.WinNone}
		}
	}
	// Garbage must leave room to spawn
	mc.GarbageRows = min(mc.GarbageRows, mc.Height-4)
	return mc
}

// Weights converts the YAML evaluator section.
func Weights(cfg config.BlocksConfig) ai.Weights {
	return ai.Weights{
		Height:    cfg.AI.HeightWeight,
		Lines:     cfg.AI.LinesWeight,
		Holes:     cfg.AI.HolesWeight,
		Bumpiness: cfg.AI.BumpinessWeight,
	}
}
