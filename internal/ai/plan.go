package ai

import (
	"github.com/vovakirdan/blockdrop/internal/core"
	"github.com/vovakirdan/blockdrop/internal/engine"
)

// Plan returns the actions that steer the active piece to m: rotations
// first, then horizontal moves, then a hard drop. It simulates each step
// with e so wall kicks are accounted for, and stops early when a step is
// rejected.
func Plan(e *engine.Engine, s engine.State, m Move) []core.Action {
	if _, ok := s.Active(); !ok {
		return nil
	}

	var steps []core.Action
	step := func(a core.Action) bool {
		next := e.Apply(s, a)
		if next.Version == s.Version {
			return false
		}
		s = next
		steps = append(steps, a)
		return true
	}

	for i := 0; i < 4; i++ {
		cur, _ := s.Active()
		if cur.Rotation == m.Rotation || !step(core.ActionRotate) {
			break
		}
	}

	for i := 0; i < s.Board.Width(); i++ {
		cur, _ := s.Active()
		if cur.X == m.X {
			break
		}
		dir := core.ActionRight
		if cur.X > m.X {
			dir = core.ActionLeft
		}
		if !step(dir) {
			break
		}
	}

	return append(steps, core.ActionHardDrop)
}

// Summary describes a finished self-play run.
type Summary struct {
	Pieces   int
	Lines    int
	Score    int
	Level    int
	Won      bool
	GameOver bool
}

// Autoplay lets the evaluator play from s until the game ends or maxPieces
// pieces have been placed (0 means no limit). Only piece placement is
// simulated; the game clock does not advance.
func (ev *Evaluator) Autoplay(e *engine.Engine, s engine.State, maxPieces int) (engine.State, Summary) {
	start := s.PiecesPlaced
	for !s.GameOver && !s.Paused {
		if maxPieces > 0 && s.PiecesPlaced-start >= maxPieces {
			break
		}
		m, ok := ev.FindBestMove(s)
		if !ok {
			break
		}
		placed := s.PiecesPlaced
		for _, a := range Plan(e, s, m) {
			s = e.Apply(s, a)
		}
		if s.PiecesPlaced == placed && !s.GameOver {
			break
		}
	}

	return s, Summary{
		Pieces:   s.PiecesPlaced - start,
		Lines:    s.Lines,
		Score:    s.Score,
		Level:    s.Level,
		Won:      s.Won,
		GameOver: s.GameOver,
	}
}
