package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the summary the platform reads after every Step.
// Score, Lines and Level are what gets persisted when a run ends.
type GameState struct {
	Score    int
	Lines    int
	Level    int
	GameOver bool
	Won      bool
	Paused   bool
	// Elapsed is unpaused play time in seconds.
	Elapsed int
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	// Cleared holds the board rows removed during this tick, for flash effects.
	Cleared []int
}
