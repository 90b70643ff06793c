package blocks

import (
	"github.com/vovakirdan/blockdrop/internal/engine"
	"github.com/vovakirdan/blockdrop/internal/piece"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StateWin         GameStateType = "win"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick         uint64
	Mode         engine.Mode
	Version      uint64
	Score        int
	Lines        int
	Level        int
	PiecesPlaced int
	Elapsed      int
	Remaining    int
	Piece        piece.Type
	PieceX       int
	PieceY       int
	Rotation     int
	HasPiece     bool
	Next         piece.Type
	StackHeight  int
	Board        string
	Autoplay     bool
	State        GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.state.Won:
		state = StateWin
	case g.state.GameOver:
		state = StateGameOver
	case g.state.Paused:
		state = StatePaused
	}

	snap := Snapshot{
		Tick:         g.tick,
		Mode:         g.mode,
		Version:      g.state.Version,
		Score:        g.state.Score,
		Lines:        g.state.Lines,
		Level:        g.state.Level,
		PiecesPlaced: g.state.PiecesPlaced,
		Elapsed:      g.state.Elapsed,
		Remaining:    g.state.Remaining,
		Next:         g.state.Next,
		Board:        g.state.Board.String(),
		Autoplay:     g.autoplay,
		State:        state,
	}
	for _, h := range g.state.Board.ColumnHeights() {
		snap.StackHeight = max(snap.StackHeight, h)
	}
	if cur, ok := g.state.Active(); ok {
		snap.HasPiece = true
		snap.Piece = cur.Type
		snap.PieceX = cur.X
		snap.PieceY = cur.Y
		snap.Rotation = cur.Rotation
	}
	return snap
}
