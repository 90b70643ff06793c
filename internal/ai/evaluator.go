// Package ai suggests placements for the active piece. It tries every
// rotation and column, drops the piece, and scores the resulting board
// with a weighted sum of height, line, hole and bumpiness features.
package ai

import (
	"context"
	"fmt"

	"github.com/vovakirdan/blockdrop/internal/board"
	"github.com/vovakirdan/blockdrop/internal/core"
	"github.com/vovakirdan/blockdrop/internal/engine"
)

// Weights are the heuristic coefficients.
type Weights struct {
	Height    float64 `yaml:"height"`
	Lines     float64 `yaml:"lines"`
	Holes     float64 `yaml:"holes"`
	Bumpiness float64 `yaml:"bumpiness"`
}

// DefaultWeights returns the tuned coefficients.
func DefaultWeights() Weights {
	return Weights{
		Height:    -0.510066,
		Lines:     0.760666,
		Holes:     -0.35663,
		Bumpiness: -0.184483,
	}
}

// Evaluation is the feature breakdown of a board.
type Evaluation struct {
	AggregateHeight int
	CompleteLines   int
	Holes           int
	Bumpiness       int
	Score           float64
}

// Move is a suggested placement. Y is the landing row.
type Move struct {
	X            int
	Y            int
	Rotation     int
	Score        float64
	Reasoning    string
	LinesCleared int
}

func (m Move) String() string {
	return fmt.Sprintf("x=%d rot=%d score=%.3f (%s)", m.X, m.Rotation, m.Score, m.Reasoning)
}

// Evaluator scores placements. It holds no mutable state, so one value can
// serve concurrent callers as long as each passes its own State.
type Evaluator struct {
	Weights Weights
}

// New returns an evaluator with the given weights.
func New(w Weights) *Evaluator {
	return &Evaluator{Weights: w}
}

// Evaluate computes the features of b and their weighted score.
func (ev *Evaluator) Evaluate(b board.Board) Evaluation {
	heights := b.ColumnHeights()

	var e Evaluation
	for x, h := range heights {
		e.AggregateHeight += h
		if x > 0 {
			e.Bumpiness += core.Abs(heights[x-1] - h)
		}
		for y := b.Height() - h + 1; y < b.Height(); y++ {
			if !b.Occupied(x, y) {
				e.Holes++
			}
		}
	}
	for y := 0; y < b.Height(); y++ {
		if b.RowFull(y) {
			e.CompleteLines++
		}
	}

	w := ev.Weights
	e.Score = float64(e.AggregateHeight)*w.Height +
		float64(e.CompleteLines)*w.Lines +
		float64(e.Holes)*w.Holes +
		float64(e.Bumpiness)*w.Bumpiness
	return e
}

// Candidates returns every legal placement of the active piece in search
// order: rotation ascending, then column ascending. Boards are scored after
// lines are cleared, so CompleteLines is always zero there.
func (ev *Evaluator) Candidates(s engine.State) []Move {
	cur, ok := s.Active()
	if !ok {
		return nil
	}

	var moves []Move
	for rot := 0; rot < 4; rot++ {
		for x := 0; x < s.Board.Width(); x++ {
			p := cur.WithRotation(rot)
			p.X, p.Y = x, 0

			y := s.Board.DropRow(p)
			if y < 0 {
				continue
			}
			p.Y = y

			cleared, n, _ := s.Board.Place(p).ClearLines()
			eval := ev.Evaluate(cleared)
			moves = append(moves, Move{
				X:            x,
				Y:            y,
				Rotation:     rot,
				Score:        eval.Score,
				Reasoning:    reasoning(n, eval),
				LinesCleared: n,
			})
		}
	}
	return moves
}

// FindBestMove returns the highest scoring placement. Ties go to the
// earliest candidate in search order. It reports false when the active
// piece is missing or has nowhere to go.
func (ev *Evaluator) FindBestMove(s engine.State) (Move, bool) {
	var best Move
	found := false
	for _, m := range ev.Candidates(s) {
		if !found || m.Score > best.Score {
			best = m
			found = true
		}
	}
	return best, found
}

// FindBestMoveContext runs FindBestMove on its own goroutine and gives up
// when ctx is done.
func (ev *Evaluator) FindBestMoveContext(ctx context.Context, s engine.State) (Move, bool, error) {
	type result struct {
		m  Move
		ok bool
	}
	done := make(chan result, 1)
	go func() {
		m, ok := ev.FindBestMove(s)
		done <- result{m, ok}
	}()

	select {
	case <-ctx.Done():
		return Move{}, false, ctx.Err()
	case r := <-done:
		return r.m, r.ok, nil
	}
}

func reasoning(lines int, e Evaluation) string {
	switch {
	case lines == 1:
		return "Clears 1 line"
	case lines > 1:
		return fmt.Sprintf("Clears %d lines", lines)
	case e.Holes == 0 && e.Bumpiness < 3:
		return "Keeps the stack clean and flat"
	case e.Holes > 3:
		return "Leaves several holes"
	case e.AggregateHeight > 50:
		return "Stack is getting tall"
	default:
		return "Decent move"
	}
}
