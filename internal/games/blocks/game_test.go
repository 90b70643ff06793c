package blocks

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/blockdrop/internal/config"
	"github.com/vovakirdan/blockdrop/internal/core"
	"github.com/vovakirdan/blockdrop/internal/engine"
	"github.com/vovakirdan/blockdrop/internal/registry"
)

func newGame(t *testing.T, m engine.Mode, tickRate int) *Game {
	t.Helper()
	g := New(m)
	g.Reset(core.RuntimeConfig{Seed: 7, ScreenW: 80, ScreenH: 24, TickRate: tickRate})
	return g
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestRegistryHasEveryMode(t *testing.T) {
	for _, m := range engine.Modes() {
		if !registry.Exists(string(m)) {
			t.Errorf("mode %q not registered", m)
			continue
		}
		g, err := registry.Create(string(m))
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", m, err)
		}
		if g.ID() != string(m) {
			t.Errorf("ID() = %q, expected %q", g.ID(), m)
		}
		if g.Title() == "" || g.Title() == string(m) {
			t.Errorf("Title() for %q = %q, expected a display name", m, g.Title())
		}
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newGame(t, engine.ModeChallenge, 60)
	g2 := newGame(t, engine.ModeChallenge, 60)

	for i := 0; i < 600; i++ {
		var in core.InputFrame
		switch i % 37 {
		case 5:
			in = press(core.ActionRotate)
		case 11:
			in = press(core.ActionLeft, core.ActionLeft)
		case 23:
			in = press(core.ActionRight)
		case 31:
			in = press(core.ActionHardDrop)
		default:
			in = core.NewInputFrame()
		}
		g1.Step(in)
		g2.Step(in)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1 != s2 {
		t.Errorf("snapshots differ:\n%+v\n%+v", s1, s2)
	}
	if s1.PiecesPlaced == 0 {
		t.Error("expected some pieces to be placed")
	}
}

func TestGravityFollowsDropInterval(t *testing.T) {
	// 50 ticks per second gives 20ms ticks, so the one-second level 1
	// interval elapses exactly on tick 50.
	g := newGame(t, engine.ModeClassic, 50)
	startY := g.Snapshot().PieceY

	for i := 0; i < 49; i++ {
		g.Step(core.NewInputFrame())
	}
	if y := g.Snapshot().PieceY; y != startY {
		t.Fatalf("after 49 ticks PieceY = %d, expected %d", y, startY)
	}

	g.Step(core.NewInputFrame())
	snap := g.Snapshot()
	if snap.PieceY != startY+1 {
		t.Errorf("after 50 ticks PieceY = %d, expected %d", snap.PieceY, startY+1)
	}
	if snap.Elapsed != 1 {
		t.Errorf("after 50 ticks Elapsed = %d, expected 1", snap.Elapsed)
	}
}

func TestHardDropLocks(t *testing.T) {
	g := newGame(t, engine.ModeClassic, 60)

	res := g.Step(press(core.ActionHardDrop))

	snap := g.Snapshot()
	if snap.PiecesPlaced != 1 {
		t.Errorf("PiecesPlaced = %d, expected 1", snap.PiecesPlaced)
	}
	if res.State.Score <= 0 {
		t.Errorf("Score = %d, expected hard drop points", res.State.Score)
	}
	if !snap.HasPiece || snap.PieceY != 0 {
		t.Errorf("expected a fresh piece at the top, got %+v", snap)
	}
}

func TestPauseFreezesPlay(t *testing.T) {
	g := newGame(t, engine.ModeClassic, 60)

	res := g.Step(press(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("expected paused state")
	}
	before := g.Snapshot()

	for i := 0; i < 200; i++ {
		g.Step(press(core.ActionLeft, core.ActionHardDrop))
	}
	after := g.Snapshot()
	if after.PieceX != before.PieceX || after.PieceY != before.PieceY || after.PiecesPlaced != 0 {
		t.Errorf("piece moved while paused: %+v -> %+v", before, after)
	}
	if after.State != StatePaused {
		t.Errorf("State = %q, expected %q", after.State, StatePaused)
	}

	res = g.Step(press(core.ActionPause))
	if res.State.Paused {
		t.Error("expected resume on second pause")
	}
}

func TestHintToggle(t *testing.T) {
	g := newGame(t, engine.ModeClassic, 60)

	if _, ok := g.Hint(); ok {
		t.Fatal("hint shown before being requested")
	}

	g.Step(press(core.ActionHint))
	m, ok := g.Hint()
	if !ok {
		t.Fatal("expected a hint after pressing H")
	}
	if m.Reasoning == "" {
		t.Error("hint has no reasoning")
	}

	g.Step(press(core.ActionHint))
	if _, ok := g.Hint(); ok {
		t.Error("hint still shown after toggling off")
	}
}

func TestAutoplayClearsLines(t *testing.T) {
	g := newGame(t, engine.ModeZen, 60)

	g.Step(press(core.ActionAutoPlay))
	if !g.Autoplay() {
		t.Fatal("autoplay did not turn on")
	}

	for i := 0; i < 60*90; i++ {
		g.Step(core.NewInputFrame())
	}

	snap := g.Snapshot()
	if snap.Lines < 5 {
		t.Errorf("autoplay cleared %d lines in 90s, expected at least 5", snap.Lines)
	}
	if !snap.Autoplay {
		t.Error("Snapshot().Autoplay = false")
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	g := newGame(t, engine.ModeClassic, 60)
	g.Step(press(core.ActionHardDrop))

	// Restart is ignored while the game is running
	g.Step(press(core.ActionRestart))
	if got := g.Snapshot().PiecesPlaced; got != 1 {
		t.Fatalf("PiecesPlaced = %d, expected the run to continue", got)
	}

	g.state.GameOver = true
	g.Step(press(core.ActionRestart))
	snap := g.Snapshot()
	if snap.State != StatePlaying || snap.PiecesPlaced != 0 || snap.Score != 0 {
		t.Errorf("restart did not start a new run: %+v", snap)
	}
}

func TestRenderLayout(t *testing.T) {
	g := newGame(t, engine.ModeSprint40, 60)
	scr := core.NewScreen(80, 24)

	g.Render(scr)
	out := scr.String()

	for _, want := range []string{"Sprint 40", "Next", "Score", "Goal   0/40", "┌", "█"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := New(engine.ModeClassic)
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 30, ScreenH: 10, TickRate: 60})
	scr := core.NewScreen(30, 10)

	g.Render(scr)
	if !strings.Contains(scr.String(), "Window too small") {
		t.Errorf("expected too-small overlay:\n%s", scr.String())
	}
	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("State = %q, expected %q", g.Snapshot().State, StatePausedSmall)
	}

	g.Resize(80, 24)
	if g.Snapshot().State != StatePlaying {
		t.Errorf("State after resize = %q, expected %q", g.Snapshot().State, StatePlaying)
	}
}

func TestEngineConfigOverrides(t *testing.T) {
	rows, fill, win := 12, 0.5, 0
	cfg := config.DefaultBlocksConfig()
	cfg.Modes = map[string]config.ModeOverride{
		"cheese":   {GarbageRows: &rows, GarbageFill: &fill},
		"sprint40": {WinLines: &win},
	}

	ec, err := EngineConfig(cfg)
	if err != nil {
		t.Fatalf("EngineConfig() failed: %v", err)
	}

	cheese := ec.Modes[engine.ModeCheese]
	if cheese.GarbageRows != 12 || cheese.GarbageFill != 0.5 {
		t.Errorf("cheese = %d rows @ %v, expected 12 @ 0.5", cheese.GarbageRows, cheese.GarbageFill)
	}
	if cheese.FixedDropMs != 500 {
		t.Errorf("cheese.FixedDropMs = %d, expected untouched 500", cheese.FixedDropMs)
	}
	if ec.Modes[engine.ModeSprint40].Win.Kind != engine.WinNone {
		t.Errorf("sprint40 win = %+v, expected none", ec.Modes[engine.ModeSprint40].Win)
	}
	if ec.Rules.LineScores != engine.DefaultRules().LineScores {
		t.Errorf("LineScores = %v, expected %v", ec.Rules.LineScores, engine.DefaultRules().LineScores)
	}
	if ec.Rules != engine.DefaultRules() {
		t.Errorf("Rules = %+v, expected defaults", ec.Rules)
	}
}

func TestEngineConfigUnknownMode(t *testing.T) {
	cfg := config.DefaultBlocksConfig()
	cfg.Modes = map[string]config.ModeOverride{"marathon": {}}

	_, err := EngineConfig(cfg)
	var invalidErr *config.InvalidConfigError
	if !errors.As(err, &invalidErr) {
		t.Fatalf("EngineConfig() error = %v, expected *InvalidConfigError", err)
	}
	if invalidErr.Field != "modes.marathon" {
		t.Errorf("Field = %q, expected %q", invalidErr.Field, "modes.marathon")
	}
}

func TestWeightsFromConfig(t *testing.T) {
	w := Weights(config.DefaultBlocksConfig())
	if w.Height != -0.510066 || w.Lines != 0.760666 || w.Holes != -0.35663 || w.Bumpiness != -0.184483 {
		t.Errorf("Weights() = %+v, expected the default coefficients", w)
	}
}

func TestSetDifficultyPreset(t *testing.T) {
	defer SetDifficultyPreset("")

	SetDifficultyPreset("fixed")
	if difficultyPreset != config.DifficultyFixed {
		t.Errorf("difficultyPreset = %q, expected fixed", difficultyPreset)
	}
	if cfg := loadConfig(); cfg.Speed.LevelStepMs != 0 {
		t.Errorf("LevelStepMs = %d, expected 0 under fixed preset", cfg.Speed.LevelStepMs)
	}

	SetDifficultyPreset("bogus")
	if difficultyPreset != "" {
		t.Errorf("difficultyPreset = %q, expected reset", difficultyPreset)
	}
}
