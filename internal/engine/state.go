package engine

import (
	"github.com/vovakirdan/blockdrop/internal/board"
	"github.com/vovakirdan/blockdrop/internal/piece"
)

// Phase is the coarse lifecycle position of a State.
type Phase string

const (
	PhaseNoPiece  Phase = "no_piece"
	PhaseFalling  Phase = "falling"
	PhasePaused   Phase = "paused"
	PhaseGameOver Phase = "game_over"
	PhaseWon      Phase = "won"
)

// State is an immutable game snapshot. Engine operations return a new
// State; the board and piece inside are never modified in place.
type State struct {
	Mode  Mode
	Board board.Board
	// Current is nil when no piece is active.
	Current *piece.Piece
	Next    piece.Type

	Score int
	Level int
	Lines int

	Paused   bool
	GameOver bool
	Won      bool

	// LastCleared lists the rows removed by the most recent lock. It is
	// reset by the next accepted operation.
	LastCleared []int

	// Elapsed and Remaining are in seconds; Remaining is only used by timed modes.
	Elapsed   int
	Remaining int
	// NextGarbage counts seconds until the next rising-tide row.
	NextGarbage int

	PiecesPlaced int
	// Version is unique per engine-produced state and serves as a memo key.
	Version uint64
}

// Active returns the falling piece, if any.
func (s State) Active() (piece.Piece, bool) {
	if s.Current == nil {
		return piece.Piece{}, false
	}
	return *s.Current, true
}

// Phase classifies the state for hosts and logs.
func (s State) Phase() Phase {
	switch {
	case s.Won:
		return PhaseWon
	case s.GameOver:
		return PhaseGameOver
	case s.Paused:
		return PhasePaused
	case s.Current == nil:
		return PhaseNoPiece
	default:
		return PhaseFalling
	}
}

// frozen reports whether gameplay operations must be ignored.
func (s State) frozen() bool {
	return s.Paused || s.GameOver
}

func withPiece(s State, p piece.Piece) State {
	s.Current = &p
	return s
}
