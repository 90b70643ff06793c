package engine

import (
	"fmt"
	"strings"
)

// Mode identifies a game variant.
type Mode string

const (
	ModeClassic    Mode = "classic"
	ModeSprint40   Mode = "sprint40"
	ModeUltra2Min  Mode = "ultra2min"
	ModeZen        Mode = "zen"
	ModeCheese     Mode = "cheese"
	ModeChallenge  Mode = "challenge"
	ModeCountdown  Mode = "countdown"
	ModeRisingTide Mode = "rising_tide"
)

// Modes returns every mode in menu order.
func Modes() []Mode {
	return []Mode{
		ModeClassic,
		ModeSprint40,
		ModeUltra2Min,
		ModeZen,
		ModeCheese,
		ModeChallenge,
		ModeCountdown,
		ModeRisingTide,
	}
}

// ParseMode accepts a mode ID, case-insensitively, with '-' allowed for '_'.
func ParseMode(s string) (Mode, error) {
	id := Mode(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	for _, m := range Modes() {
		if m == id {
			return m, nil
		}
	}
	return "", fmt.Errorf("engine: unknown mode %q", s)
}

// WinKind enumerates the objective checks a mode can use.
type WinKind string

const (
	WinNone  WinKind = "none"
	WinLines WinKind = "lines"
)

// WinCondition is a mode objective. Only WinLines carries a target.
type WinCondition struct {
	Kind  WinKind
	Lines int
}

// Met reports whether s satisfies the objective.
func (w WinCondition) Met(s State) bool {
	switch w.Kind {
	case WinLines:
		return s.Lines >= w.Lines
	default:
		return false
	}
}

// ModeConfig is one row of the mode table. Every mode-specific rule the
// engine applies is read from here.
type ModeConfig struct {
	Mode        Mode
	Title       string
	Description string

	Width  int
	Height int

	// StartLevel is the initial level and also its floor once lines are counted.
	StartLevel int
	// TimeLimit in seconds; 0 means the mode is untimed.
	TimeLimit int
	// FixedDropMs overrides the level speed curve when non-zero.
	FixedDropMs int

	GarbageRows int
	GarbageFill float64

	// TideInterval is the number of seconds between injected garbage rows.
	TideInterval int
	// LineBonusSecs is added to the remaining time per cleared line.
	LineBonusSecs int

	Win WinCondition
	// NeverTopOut makes a blocked spawn push the stack down instead of ending the game.
	NeverTopOut bool
}

// Timed reports whether the mode counts down to zero.
func (c ModeConfig) Timed() bool {
	return c.TimeLimit > 0
}

// DefaultModes returns the built-in mode table.
func DefaultModes() map[Mode]ModeConfig {
	base := func(m Mode, title, desc string) ModeConfig {
		return ModeConfig{
			Mode:        m,
			Title:       title,
			Description: desc,
			Width:       10,
			Height:      20,
			StartLevel:  1,
			Win:         WinCondition{Kind: WinNone},
		}
	}

	modes := make(map[Mode]ModeConfig, 8)

	modes[ModeClassic] = base(ModeClassic, "Classic", "Endless play, speed rises every 10 lines")

	sprint := base(ModeSprint40, "Sprint 40", "Clear 40 lines as fast as you can")
	sprint.FixedDropMs = 500
	sprint.Win = WinCondition{Kind: WinLines, Lines: 40}
	modes[ModeSprint40] = sprint

	ultra := base(ModeUltra2Min, "Ultra 2:00", "Score as much as possible in two minutes")
	ultra.FixedDropMs = 500
	ultra.TimeLimit = 120
	modes[ModeUltra2Min] = ultra

	zen := base(ModeZen, "Zen", "No speed-up and no game over")
	zen.FixedDropMs = 500
	zen.NeverTopOut = true
	modes[ModeZen] = zen

	cheese := base(ModeCheese, "Cheese", "Dig through a board full of holes")
	cheese.FixedDropMs = 500
	cheese.GarbageRows = 9
	cheese.GarbageFill = 0.9
	modes[ModeCheese] = cheese

	challenge := base(ModeChallenge, "Challenge", "Start fast on a messy board")
	challenge.StartLevel = 5
	challenge.GarbageRows = 6
	challenge.GarbageFill = 0.7
	modes[ModeChallenge] = challenge

	countdown := base(ModeCountdown, "Countdown", "Three minutes, every line buys time")
	countdown.TimeLimit = 180
	countdown.LineBonusSecs = 5
	modes[ModeCountdown] = countdown

	tide := base(ModeRisingTide, "Rising Tide", "A garbage row rises every 10 seconds")
	tide.TideInterval = 10
	modes[ModeRisingTide] = tide

	return modes
}
