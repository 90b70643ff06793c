package engine

import "github.com/vovakirdan/blockdrop/internal/core"

// lock merges the active piece, clears lines, scores them and either ends
// the game on a met objective or spawns the next piece.
func (e *Engine) lock(s State) State {
	cur, ok := s.Active()
	if !ok {
		return s
	}
	cfg := e.ModeConfig(s.Mode)
	r := e.cfg.Rules

	b, n, rows := s.Board.Place(cur).ClearLines()
	s.Board = b
	s.Current = nil
	s.PiecesPlaced++

	s.Score += r.LineScores[core.Clamp(n, 0, len(r.LineScores)-1)] * s.Level
	s.Lines += n
	s.Level = max(cfg.StartLevel, s.Lines/max(1, r.LinesPerLevel)+1)

	if n > 0 && cfg.Timed() && cfg.LineBonusSecs > 0 {
		s.Remaining += cfg.LineBonusSecs * n
	}

	if cfg.Win.Met(s) {
		s.Won = true
		s.GameOver = true
		s.LastCleared = rows
		return e.commit(s)
	}

	s = e.spawn(s)
	s.LastCleared = rows
	return s
}
