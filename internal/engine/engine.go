// Package engine holds the falling-block rules: spawning, movement,
// rotation with wall kicks, locking, scoring and the per-mode policies.
//
// Every operation takes a State and returns a new State. Illegal moves
// return the input unchanged; there are no error returns.
package engine

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/blockdrop/internal/board"
	"github.com/vovakirdan/blockdrop/internal/piece"
)

// Rules are the mode-independent tunables.
type Rules struct {
	// LineScores[n] is the base award for clearing n lines at once, multiplied by level.
	LineScores     [5]int
	HardDropPoints int
	LinesPerLevel  int
	BaseDropMs     int
	LevelStepMs    int
	MinDropMs      int
}

// DefaultRules returns the standard scoring and speed curve.
func DefaultRules() Rules {
	return Rules{
		LineScores:     [5]int{0, 40, 100, 300, 1200},
		HardDropPoints: 2,
		LinesPerLevel:  10,
		BaseDropMs:     1000,
		LevelStepMs:    100,
		MinDropMs:      50,
	}
}

// Config bundles the rules and the mode table.
type Config struct {
	Rules Rules
	Modes map[Mode]ModeConfig
}

// DefaultConfig returns the built-in rules and modes.
func DefaultConfig() Config {
	return Config{Rules: DefaultRules(), Modes: DefaultModes()}
}

// kicks are tried in order after a plain rotation fails.
var kicks = [...]struct{ dx, dy int }{
	{-1, 0}, {1, 0}, {0, -1}, {-1, -1}, {1, -1},
}

// Engine applies the rules. It owns the random source used for piece
// selection and garbage holes, so two engines built with equal seeds
// produce identical games for identical inputs. An Engine is not safe for
// concurrent use; the States it returns are.
type Engine struct {
	cfg     Config
	rng     *rand.Rand
	version uint64
}

// New creates an engine. A nil rng gets a time-seeded source.
func New(cfg Config, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Modes == nil {
		cfg.Modes = DefaultModes()
	}
	return &Engine{cfg: cfg, rng: rng}
}

// Rules returns the engine's rules.
func (e *Engine) Rules() Rules {
	return e.cfg.Rules
}

// ModeConfig returns the table row for m, falling back to classic.
func (e *Engine) ModeConfig(m Mode) ModeConfig {
	if c, ok := e.cfg.Modes[m]; ok {
		return c
	}
	c := DefaultModes()[ModeClassic]
	c.Mode = m
	return c
}

func (e *Engine) commit(s State) State {
	e.version++
	s.Version = e.version
	return s
}

func (e *Engine) randomType() piece.Type {
	return piece.Type(e.rng.Intn(piece.Count))
}

// Reset builds a fresh game for mode m and spawns its first piece.
func (e *Engine) Reset(m Mode) State {
	cfg := e.ModeConfig(m)

	b := board.New(cfg.Width, cfg.Height)
	if cfg.GarbageRows > 0 {
		b = b.WithGarbage(cfg.GarbageRows, cfg.GarbageFill, e.rng)
	}

	s := State{
		Mode:        m,
		Board:       b,
		Next:        e.randomType(),
		Level:       max(1, cfg.StartLevel),
		Remaining:   cfg.TimeLimit,
		NextGarbage: cfg.TideInterval,
	}
	return e.spawn(s)
}

// Spawn makes the queued piece active at the top center and draws a new
// next piece. A blocked spawn ends the game, except in never-top-out modes
// where the stack drops one row and the piece spawns regardless.
func (e *Engine) Spawn(s State) State {
	if s.frozen() {
		return s
	}
	return e.spawn(s)
}

func (e *Engine) spawn(s State) State {
	s.LastCleared = nil
	p := piece.Spawn(s.Next, s.Board.Width())
	s.Next = e.randomType()

	if !s.Board.IsValidPosition(p) {
		if !e.ModeConfig(s.Mode).NeverTopOut {
			s.Current = nil
			s.GameOver = true
			return e.commit(s)
		}
		s.Board = s.Board.ShiftDownDiscardBottom()
	}
	return e.commit(withPiece(s, p))
}

// try accepts p as the active piece if it is a legal position.
func (e *Engine) try(s State, p piece.Piece) (State, bool) {
	if !s.Board.IsValidPosition(p) {
		return s, false
	}
	s.LastCleared = nil
	return e.commit(withPiece(s, p)), true
}

// MoveLeft shifts the active piece one column left if possible.
func (e *Engine) MoveLeft(s State) State {
	return e.shift(s, -1)
}

// MoveRight shifts the active piece one column right if possible.
func (e *Engine) MoveRight(s State) State {
	return e.shift(s, 1)
}

func (e *Engine) shift(s State, dx int) State {
	cur, ok := s.Active()
	if !ok || s.frozen() {
		return s
	}
	next, _ := e.try(s, cur.Moved(dx, 0))
	return next
}

// SoftDrop moves the active piece down one row, locking it when blocked.
// The gravity timer calls this too.
func (e *Engine) SoftDrop(s State) State {
	cur, ok := s.Active()
	if !ok || s.frozen() {
		return s
	}
	if next, moved := e.try(s, cur.Moved(0, 1)); moved {
		return next
	}
	return e.lock(s)
}

// Rotate turns the active piece clockwise, trying wall kicks if the
// rotated piece does not fit in place.
func (e *Engine) Rotate(s State) State {
	cur, ok := s.Active()
	if !ok || s.frozen() {
		return s
	}
	turned := cur.Rotated()
	if next, ok := e.try(s, turned); ok {
		return next
	}
	for _, k := range kicks {
		if next, ok := e.try(s, turned.Moved(k.dx, k.dy)); ok {
			return next
		}
	}
	return s
}

// HardDrop drops the active piece to its landing row, locks it and awards
// points per row travelled.
func (e *Engine) HardDrop(s State) State {
	cur, ok := s.Active()
	if !ok || s.frozen() {
		return s
	}
	distance := 0
	for s.Board.IsValidPosition(cur.Moved(0, 1)) {
		cur = cur.Moved(0, 1)
		distance++
	}
	s = e.lock(withPiece(s, cur))
	s.Score += distance * e.cfg.Rules.HardDropPoints
	return s
}

// TogglePause flips the pause flag. It is ignored once the game is over.
func (e *Engine) TogglePause(s State) State {
	if s.GameOver {
		return s
	}
	s.Paused = !s.Paused
	return e.commit(s)
}

// AddGarbageLine removes the top row and appends a garbage row with one
// random hole. An active piece that no longer fits ends the game.
func (e *Engine) AddGarbageLine(s State) State {
	if s.frozen() {
		return s
	}
	s.LastCleared = nil
	s.Board = s.Board.PushGarbageRow(e.rng.Intn(s.Board.Width()))
	if cur, ok := s.Active(); ok && !s.Board.IsValidPosition(cur) {
		s.Current = nil
		s.GameOver = true
	}
	return e.commit(s)
}

// CheckWinCondition reports whether s meets its mode's objective.
func (e *Engine) CheckWinCondition(s State) bool {
	return e.ModeConfig(s.Mode).Win.Met(s)
}

// DropInterval is the gravity period for s.
func (e *Engine) DropInterval(s State) time.Duration {
	if ms := e.ModeConfig(s.Mode).FixedDropMs; ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	r := e.cfg.Rules
	ms := max(r.MinDropMs, r.BaseDropMs-(s.Level-1)*r.LevelStepMs)
	return time.Duration(ms) * time.Millisecond
}
