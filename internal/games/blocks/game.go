// Package blocks hosts the falling-block engine as arcade games, one per
// mode. It turns fixed-rate simulation ticks into gravity steps and a
// one-second game clock, and layers the hint and autoplay features of the
// move evaluator on top.
package blocks

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/blockdrop/internal/ai"
	"github.com/vovakirdan/blockdrop/internal/board"
	"github.com/vovakirdan/blockdrop/internal/core"
	"github.com/vovakirdan/blockdrop/internal/engine"
	"github.com/vovakirdan/blockdrop/internal/registry"
)

const (
	// Ghost positions are cached per state version; a few hundred covers
	// every frame rendered between two locks.
	ghostCacheSize = 256
	// flashTicks is how long cleared rows stay highlighted.
	flashTicks = 12
	// autoActionsPerSecond paces autoplay so moves stay visible.
	autoActionsPerSecond = 20
)

// Game runs one engine mode behind the registry.Game interface.
type Game struct {
	mode engine.Mode

	eng    *engine.Engine
	eval   *ai.Evaluator
	ghosts *engine.GhostCache
	state  engine.State
	rng    *rand.Rand // Restart seeds only; the engine owns gameplay randomness

	tick     uint64
	tickRate int
	tickDur  time.Duration
	gravity  time.Duration // Time accumulated toward the next gravity step
	clock    int           // Ticks accumulated toward the next game second

	showHint   bool
	hint       ai.Move
	hintOK     bool
	hintPlaced int
	hintBoard  board.Board

	autoplay  bool
	autoQueue []core.Action
	autoWait  int

	flashRows []int
	flashLeft int

	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a game for mode m.
func New(m engine.Mode) *Game {
	return &Game{mode: m}
}

func init() {
	for _, m := range engine.Modes() {
		registry.Register(string(m), func() registry.Game {
			return New(m)
		})
	}
}

// ID returns the game identifier, which is the mode ID.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if mc, ok := engine.DefaultModes()[g.mode]; ok {
		return mc.Title
	}
	return string(g.mode)
}

// Mode returns the engine mode this game runs.
func (g *Game) Mode() engine.Mode {
	return g.mode
}

// Reset loads the configuration and starts a new run.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	bc := loadConfig()
	ec, err := EngineConfig(bc)
	if err != nil {
		logger.Warn("ignoring mode overrides", "err", err)
		bc.Modes = nil
		ec, _ = EngineConfig(bc)
	}

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.eng = engine.New(ec, rand.New(rand.NewSource(g.rng.Int63())))
	g.eval = ai.New(Weights(bc))
	g.ghosts = engine.NewGhostCache(ghostCacheSize)

	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = 60
	}
	g.tickDur = time.Second / time.Duration(g.tickRate)

	g.tick = 0
	g.gravity = 0
	g.clock = 0
	g.showHint = false
	g.hintOK = false
	g.autoplay = false
	g.autoQueue = nil
	g.autoWait = 0
	g.flashRows = nil
	g.flashLeft = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	g.state = g.eng.Reset(g.mode)
	g.tooSmall = !g.fits()

	logger.Debug("game started", "mode", g.mode, "seed", cfg.Seed, "level", g.state.Level)
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	// Handle restart
	if input.Has(core.ActionRestart) && g.state.GameOver {
		g.Reset(core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: g.tickRate,
		})
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) {
		g.state = g.eng.TogglePause(g.state)
	}

	if g.flashLeft > 0 {
		g.flashLeft--
	}

	if g.state.GameOver || g.state.Paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionHint) {
		g.showHint = !g.showHint
	}
	if input.Has(core.ActionAutoPlay) {
		g.autoplay = !g.autoplay
		g.autoQueue = nil
		logger.Debug("autoplay toggled", "on", g.autoplay)
	}

	prev := g.state
	if g.autoplay {
		g.stepAutoplay()
	} else {
		g.applyInput(input)
	}

	// Gravity
	g.gravity += g.tickDur
	if g.gravity >= g.eng.DropInterval(g.state) {
		g.gravity = 0
		g.state = g.eng.SoftDrop(g.state)
	}

	// Game clock
	g.clock++
	if g.clock >= g.tickRate {
		g.clock = 0
		g.state = g.eng.Tick(g.state)
	}

	g.observe(prev)
	g.refreshHint()

	return core.StepResult{State: g.State(), Cleared: g.state.LastCleared}
}

// applyInput maps player actions to engine operations. Rotation comes
// before movement so a rotate-and-slide in one frame behaves like the
// two keys pressed in that order.
func (g *Game) applyInput(input core.InputFrame) {
	order := []core.Action{core.ActionRotate, core.ActionLeft, core.ActionRight, core.ActionSoftDrop}
	for _, a := range order {
		for range input.Count(a) {
			g.state = g.eng.Apply(g.state, a)
		}
	}
	if input.Has(core.ActionSoftDrop) {
		g.gravity = 0
	}
	if input.Has(core.ActionHardDrop) {
		g.state = g.eng.HardDrop(g.state)
		g.gravity = 0
	}
}

// stepAutoplay feeds one planned action per autoplay interval.
func (g *Game) stepAutoplay() {
	if g.autoWait > 0 {
		g.autoWait--
		return
	}
	g.autoWait = max(0, g.tickRate/autoActionsPerSecond-1)

	if len(g.autoQueue) == 0 {
		m, ok := g.eval.FindBestMove(g.state)
		if !ok {
			return
		}
		g.autoQueue = ai.Plan(g.eng, g.state, m)
	}

	a := g.autoQueue[0]
	g.autoQueue = g.autoQueue[1:]
	g.state = g.eng.Apply(g.state, a)
	if a == core.ActionHardDrop {
		g.gravity = 0
	}
}

// observe logs lock, clear and game over transitions between prev and the
// current state and starts the clear flash.
func (g *Game) observe(prev engine.State) {
	s := g.state
	if s.PiecesPlaced != prev.PiecesPlaced {
		// A gravity lock can land under a queued plan
		g.autoQueue = nil
		logger.Debug("piece locked", "mode", g.mode, "pieces", s.PiecesPlaced, "score", s.Score)
	}
	if len(s.LastCleared) > 0 && s.Lines != prev.Lines {
		g.flashRows = append(g.flashRows[:0], s.LastCleared...)
		g.flashLeft = flashTicks
		logger.Debug("lines cleared", "mode", g.mode, "rows", s.LastCleared, "lines", s.Lines, "level", s.Level)
	}
	if s.GameOver && !prev.GameOver {
		logger.Info("game over",
			"mode", g.mode,
			"score", s.Score,
			"lines", s.Lines,
			"level", s.Level,
			"won", s.Won,
			"elapsed", s.Elapsed,
		)
	}
}

// refreshHint recomputes the shown hint when the piece or board changed.
func (g *Game) refreshHint() {
	if !g.showHint {
		return
	}
	if g.hintOK && g.hintPlaced == g.state.PiecesPlaced && g.hintBoard.Equal(g.state.Board) {
		return
	}
	g.hint, g.hintOK = g.eval.FindBestMove(g.state)
	g.hintPlaced = g.state.PiecesPlaced
	g.hintBoard = g.state.Board
}

// Hint returns the current suggestion, if hints are shown and one exists.
func (g *Game) Hint() (ai.Move, bool) {
	if !g.showHint || !g.hintOK {
		return ai.Move{}, false
	}
	return g.hint, true
}

// Autoplay reports whether the evaluator is playing.
func (g *Game) Autoplay() bool {
	return g.autoplay
}

// Engine exposes the rules engine, for hosts that query speed or modes.
func (g *Game) Engine() *engine.Engine {
	return g.eng
}

// EngineState returns the current engine snapshot.
func (g *Game) EngineState() engine.State {
	return g.state
}

// State returns the platform summary of the run.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.state.Score,
		Lines:    g.state.Lines,
		Level:    g.state.Level,
		GameOver: g.state.GameOver,
		Won:      g.state.Won,
		Paused:   g.state.Paused,
		Elapsed:  g.state.Elapsed,
	}
}

// Resize adapts the layout to a new screen size without restarting the run.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = !g.fits()
}
