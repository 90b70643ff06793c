package engine

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockdrop/internal/board"
	"github.com/vovakirdan/blockdrop/internal/piece"
)

func newTestEngine(seed int64) *Engine {
	return New(DefaultConfig(), rand.New(rand.NewSource(seed)))
}

// rowsWith returns a 10×20 board description with the given bottom rows.
func rowsWith(bottom ...string) []string {
	rows := make([]string, 20-len(bottom))
	for i := range rows {
		rows[i] = strings.Repeat(".", 10)
	}
	return append(rows, bottom...)
}

func TestResetClassic(t *testing.T) {
	e := newTestEngine(1)
	s := e.Reset(ModeClassic)

	assert.Equal(t, 10, s.Board.Width())
	assert.Equal(t, 20, s.Board.Height())
	assert.Equal(t, 1, s.Level)
	assert.Zero(t, s.Score)
	assert.Zero(t, s.Lines)
	assert.False(t, s.GameOver)
	assert.Equal(t, PhaseFalling, s.Phase())

	cur, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, 0, cur.Y)
	assert.Equal(t, (10-cur.Width())/2, cur.X)
	assert.True(t, s.Next.Valid())
}

func TestResetModeSetup(t *testing.T) {
	e := newTestEngine(3)

	challenge := e.Reset(ModeChallenge)
	assert.Equal(t, 5, challenge.Level)
	for y := 0; y < 14; y++ {
		assert.True(t, challenge.Board.RowEmpty(y), "row %d", y)
	}
	for y := 14; y < 20; y++ {
		assert.False(t, challenge.Board.RowFull(y), "garbage row %d keeps a hole", y)
	}

	cheese := e.Reset(ModeCheese)
	assert.True(t, cheese.Board.RowEmpty(10))
	assert.False(t, cheese.Board.RowEmpty(19))

	assert.Equal(t, 120, e.Reset(ModeUltra2Min).Remaining)
	assert.Equal(t, 180, e.Reset(ModeCountdown).Remaining)
	assert.Equal(t, 10, e.Reset(ModeRisingTide).NextGarbage)
	assert.Zero(t, e.Reset(ModeClassic).Remaining)
}

func TestMoveLeftRightStopAtWalls(t *testing.T) {
	e := newTestEngine(1)
	s := withPiece(e.Reset(ModeClassic), piece.New(piece.O, 4, 0))

	for i := 0; i < 20; i++ {
		s = e.MoveLeft(s)
	}
	cur, _ := s.Active()
	assert.Equal(t, 0, cur.X)

	for i := 0; i < 20; i++ {
		s = e.MoveRight(s)
	}
	cur, _ = s.Active()
	assert.Equal(t, 8, cur.X)
}

func TestRejectedMoveKeepsState(t *testing.T) {
	e := newTestEngine(1)
	s := withPiece(e.Reset(ModeClassic), piece.New(piece.O, 0, 0))

	next := e.MoveLeft(s)

	assert.Equal(t, s.Version, next.Version)
	assert.Same(t, s.Current, next.Current)
}

func TestRotateWallKick(t *testing.T) {
	e := newTestEngine(1)
	s := withPiece(e.Reset(ModeClassic), piece.New(piece.T, 8, 5).WithRotation(1))

	s = e.Rotate(s)

	cur, _ := s.Active()
	assert.Equal(t, 2, cur.Rotation)
	assert.Equal(t, 7, cur.X, "kicked one column left off the wall")
	assert.Equal(t, 5, cur.Y)
}

func TestRotateInPlace(t *testing.T) {
	e := newTestEngine(1)
	s := withPiece(e.Reset(ModeClassic), piece.New(piece.T, 4, 5))

	for r := 1; r <= 4; r++ {
		s = e.Rotate(s)
		cur, _ := s.Active()
		assert.Equal(t, r%4, cur.Rotation)
		assert.Equal(t, 4, cur.X)
		assert.Equal(t, 5, cur.Y)
	}
}

func TestRotateRejectedOnFloor(t *testing.T) {
	e := newTestEngine(1)
	s := withPiece(e.Reset(ModeClassic), piece.New(piece.I, 3, 19))

	next := e.Rotate(s)

	cur, _ := next.Active()
	assert.Equal(t, 0, cur.Rotation)
	assert.Equal(t, s.Version, next.Version)
}

func TestSoftDropLocksWhenBlocked(t *testing.T) {
	e := newTestEngine(1)
	s := withPiece(e.Reset(ModeClassic), piece.New(piece.O, 0, 17))

	s = e.SoftDrop(s)
	cur, _ := s.Active()
	assert.Equal(t, 18, cur.Y)
	assert.Zero(t, s.PiecesPlaced)

	queued := s.Next
	s = e.SoftDrop(s)
	assert.Equal(t, 1, s.PiecesPlaced)
	assert.True(t, s.Board.Occupied(0, 19))
	assert.True(t, s.Board.Occupied(1, 18))
	assert.Zero(t, s.Score, "soft drop awards no points")

	cur, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, queued, cur.Type, "next piece becomes active")
	assert.Equal(t, 0, cur.Y)
}

func TestHardDropOPiece(t *testing.T) {
	e := newTestEngine(1)
	s := withPiece(e.Reset(ModeClassic), piece.New(piece.O, 4, 0))

	s = e.HardDrop(s)

	for _, c := range []piece.Point{{4, 18}, {5, 18}, {4, 19}, {5, 19}} {
		assert.True(t, s.Board.Occupied(c.X, c.Y), "cell %v", c)
	}
	assert.Zero(t, s.Lines)
	assert.Equal(t, 18*2, s.Score, "only drop points, no line score")
	assert.NotNil(t, s.Current, "a new piece is spawned")
	assert.Empty(t, s.LastCleared)
}

func TestHardDropVerticalIClearsLine(t *testing.T) {
	e := newTestEngine(1)
	s := e.Reset(ModeClassic)
	s.Board = board.FromRows(rowsWith("#########."))
	s.Level = 3
	s = withPiece(s, piece.New(piece.I, 9, 0).WithRotation(1))

	s = e.HardDrop(s)

	assert.Equal(t, 1, s.Lines)
	assert.Equal(t, 40*3+16*2, s.Score)
	assert.Equal(t, []int{19}, s.LastCleared)
	assert.True(t, s.Board.RowEmpty(0))
	for x := 0; x < 9; x++ {
		assert.False(t, s.Board.Occupied(x, 19), "cleared row content is gone at column %d", x)
	}
	for y := 17; y < 20; y++ {
		assert.True(t, s.Board.Occupied(9, y), "rest of the I shifted down to row %d", y)
	}
}

func TestLineScoresPerLevel(t *testing.T) {
	base := [5]int{0, 40, 100, 300, 1200}

	for n := 0; n <= 4; n++ {
		for _, level := range []int{1, 2, 7} {
			e := newTestEngine(1)
			s := e.Reset(ModeClassic)

			bottom := make([]string, n)
			for i := range bottom {
				bottom[i] = ".#########"
			}
			s.Board = board.FromRows(rowsWith(bottom...))
			s.Level = level
			s.Lines = 0
			s = withPiece(s, piece.New(piece.I, 0, 16).WithRotation(1))

			s = e.SoftDrop(s)

			assert.Equal(t, base[n]*level, s.Score, "n=%d level=%d", n, level)
			assert.Equal(t, n, s.Lines)
			assert.Len(t, s.LastCleared, n)
		}
	}
}

func TestLevelFromTotalLines(t *testing.T) {
	tests := []struct {
		before, expected int
	}{
		{0, 1},
		{8, 1},
		{9, 2},
		{19, 3},
		{98, 10},
	}

	for _, tc := range tests {
		e := newTestEngine(1)
		s := e.Reset(ModeClassic)
		s.Board = board.FromRows(rowsWith(".#########"))
		s.Lines = tc.before
		s = withPiece(s, piece.New(piece.I, 0, 16).WithRotation(1))

		s = e.SoftDrop(s)

		assert.Equal(t, tc.before+1, s.Lines)
		assert.Equal(t, tc.expected, s.Level, "after %d lines", s.Lines)
		assert.Equal(t, s.Lines/10+1, s.Level)
	}
}

func TestChallengeLevelNeverBelowStart(t *testing.T) {
	e := newTestEngine(1)
	s := e.Reset(ModeChallenge)
	s.Board = board.New(10, 20)
	s = withPiece(s, piece.New(piece.O, 0, 18))

	s = e.SoftDrop(s)

	assert.Equal(t, 5, s.Level)
}

func TestCountdownLineBonus(t *testing.T) {
	e := newTestEngine(1)
	s := e.Reset(ModeCountdown)
	s.Board = board.FromRows(rowsWith(".#########", ".#########"))
	s.Remaining = 30
	s = withPiece(s, piece.New(piece.I, 0, 16).WithRotation(1))

	s = e.SoftDrop(s)

	assert.Equal(t, 2, s.Lines)
	assert.Equal(t, 40, s.Remaining)
}

func TestSprintWinCondition(t *testing.T) {
	e := newTestEngine(1)

	tests := []struct {
		lines, score, level int
		expected            bool
	}{
		{0, 0, 1, false},
		{39, 999999, 20, false},
		{40, 0, 1, true},
		{55, 10, 6, true},
	}
	for _, tc := range tests {
		s := State{Mode: ModeSprint40, Lines: tc.lines, Score: tc.score, Level: tc.level}
		assert.Equal(t, tc.expected, e.CheckWinCondition(s), "lines=%d", tc.lines)
	}

	assert.False(t, e.CheckWinCondition(State{Mode: ModeClassic, Lines: 500}))
}

func TestSprintEndsOnFortiethLine(t *testing.T) {
	e := newTestEngine(1)
	s := e.Reset(ModeSprint40)
	s.Board = board.FromRows(rowsWith(".#########"))
	s.Lines = 39
	s = withPiece(s, piece.New(piece.I, 0, 16).WithRotation(1))

	s = e.SoftDrop(s)

	assert.True(t, s.Won)
	assert.True(t, s.GameOver)
	assert.Nil(t, s.Current, "no piece spawns after winning")
	assert.Equal(t, PhaseWon, s.Phase())
}

func fullStack() board.Board {
	rows := make([]string, 20)
	for i := range rows {
		rows[i] = "#########."
	}
	return board.FromRows(rows)
}

func TestZenSpawnNeverTopsOut(t *testing.T) {
	e := newTestEngine(5)
	s := e.Reset(ModeZen)
	s.Board = fullStack()
	s.Current = nil
	s.Next = piece.O

	s = e.Spawn(s)

	assert.False(t, s.GameOver)
	cur, ok := s.Active()
	require.True(t, ok, "piece spawns even when blocked")
	assert.Equal(t, piece.O, cur.Type)
	assert.Equal(t, 0, cur.Y)
	assert.Equal(t, 20, s.Board.Height())

	empty := 0
	for y := 0; y < s.Board.Height(); y++ {
		if s.Board.RowEmpty(y) {
			empty++
		}
	}
	assert.Equal(t, 1, empty, "exactly one row dropped per blocked spawn")
	assert.True(t, s.Board.RowEmpty(0), "empty row inserted at the top")
}

func TestZenSpawnShiftsOncePerSpawn(t *testing.T) {
	e := newTestEngine(5)
	s := e.Reset(ModeZen)
	s.Board = fullStack()

	// An O piece needs two clear rows: two blocked spawns, then one that fits.
	for i, emptyRows := range []int{1, 2, 2} {
		s.Current = nil
		s.Next = piece.O
		s = e.Spawn(s)
		assert.True(t, s.Board.RowEmpty(emptyRows-1), "spawn %d", i+1)
		assert.False(t, s.Board.RowEmpty(emptyRows), "spawn %d", i+1)
	}
	assert.False(t, s.GameOver)
}

func TestSpawnCollisionEndsGame(t *testing.T) {
	for _, m := range []Mode{ModeClassic, ModeSprint40, ModeCheese, ModeRisingTide} {
		e := newTestEngine(5)
		s := e.Reset(m)
		s.Board = fullStack()
		s.Current = nil

		s = e.Spawn(s)

		assert.True(t, s.GameOver, "mode %s", m)
		assert.Nil(t, s.Current)
		assert.False(t, s.Won)
	}
}

func TestAddGarbageLine(t *testing.T) {
	e := newTestEngine(9)
	s := e.Reset(ModeRisingTide)
	s.Board = board.FromRows(rowsWith("#........."))
	s = withPiece(s, piece.New(piece.O, 4, 0))

	s = e.AddGarbageLine(s)

	holes := 0
	for x := 0; x < 10; x++ {
		if !s.Board.Occupied(x, 19) {
			holes++
		}
	}
	assert.Equal(t, 1, holes)
	assert.True(t, s.Board.Occupied(0, 18), "existing rows move up")
	assert.False(t, s.GameOver)
}

func TestAddGarbageLineCrushesPiece(t *testing.T) {
	e := newTestEngine(9)
	s := withPiece(e.Reset(ModeRisingTide), piece.New(piece.O, 0, 18))

	s = e.AddGarbageLine(s)

	assert.True(t, s.GameOver)
	assert.Nil(t, s.Current)
}

func TestTickCountdownRunsOut(t *testing.T) {
	e := newTestEngine(1)
	s := e.Reset(ModeUltra2Min)
	s.Remaining = 2

	s = e.Tick(s)
	assert.Equal(t, 1, s.Remaining)
	assert.Equal(t, 1, s.Elapsed)
	assert.False(t, s.GameOver)

	s = e.Tick(s)
	assert.Zero(t, s.Remaining)
	assert.True(t, s.GameOver)
	assert.False(t, s.Won)
}

func TestTickRisingTide(t *testing.T) {
	e := newTestEngine(1)
	s := e.Reset(ModeRisingTide)

	for i := 0; i < 9; i++ {
		s = e.Tick(s)
	}
	assert.Equal(t, 1, s.NextGarbage)
	assert.True(t, s.Board.RowEmpty(19))

	s = e.Tick(s)
	assert.Equal(t, 10, s.NextGarbage)
	assert.False(t, s.Board.RowEmpty(19), "garbage row injected")
	assert.Equal(t, 10, s.Elapsed)
}

func TestPauseFreezesGameplay(t *testing.T) {
	e := newTestEngine(1)
	s := withPiece(e.Reset(ModeCountdown), piece.New(piece.O, 4, 0))
	s = e.TogglePause(s)
	require.True(t, s.Paused)

	frozen := s
	s = e.MoveLeft(s)
	s = e.SoftDrop(s)
	s = e.HardDrop(s)
	s = e.Rotate(s)
	s = e.Tick(s)
	s = e.AddGarbageLine(s)
	s = e.Spawn(s)
	assert.Equal(t, frozen.Version, s.Version)
	assert.Equal(t, frozen.Next, s.Next)
	assert.Equal(t, frozen.Current, s.Current)
	assert.Equal(t, frozen.Remaining, s.Remaining)

	s = e.TogglePause(s)
	assert.False(t, s.Paused)
	assert.Equal(t, frozen.Score, s.Score)
	assert.True(t, s.Board.Equal(frozen.Board))
}

func TestGameOverIgnoresPause(t *testing.T) {
	e := newTestEngine(1)
	s := e.Reset(ModeClassic)
	s.GameOver = true

	assert.False(t, e.TogglePause(s).Paused)
}

func TestDropInterval(t *testing.T) {
	e := newTestEngine(1)

	tests := []struct {
		mode     Mode
		level    int
		expected time.Duration
	}{
		{ModeClassic, 1, 1000 * time.Millisecond},
		{ModeClassic, 5, 600 * time.Millisecond},
		{ModeClassic, 10, 100 * time.Millisecond},
		{ModeClassic, 11, 50 * time.Millisecond},
		{ModeClassic, 30, 50 * time.Millisecond},
		{ModeChallenge, 5, 600 * time.Millisecond},
		{ModeCountdown, 2, 900 * time.Millisecond},
		{ModeRisingTide, 3, 800 * time.Millisecond},
		{ModeSprint40, 9, 500 * time.Millisecond},
		{ModeUltra2Min, 1, 500 * time.Millisecond},
		{ModeZen, 15, 500 * time.Millisecond},
		{ModeCheese, 4, 500 * time.Millisecond},
	}

	for _, tc := range tests {
		got := e.DropInterval(State{Mode: tc.mode, Level: tc.level})
		assert.Equal(t, tc.expected, got, "%s level %d", tc.mode, tc.level)
	}
}

func TestDeterminism(t *testing.T) {
	play := func() State {
		e := newTestEngine(12345)
		s := e.Reset(ModeRisingTide)
		for i := 0; i < 60; i++ {
			switch i % 5 {
			case 0:
				s = e.Rotate(s)
			case 1:
				s = e.MoveLeft(s)
			case 2:
				s = e.Tick(s)
			case 3:
				s = e.MoveRight(s)
				s = e.MoveRight(s)
			case 4:
				s = e.HardDrop(s)
			}
		}
		return s
	}

	a, b := play(), play()
	assert.True(t, a.Board.Equal(b.Board))
	assert.Equal(t, a.Score, b.Score)
	assert.Equal(t, a.Next, b.Next)
	assert.Equal(t, a.PiecesPlaced, b.PiecesPlaced)
	assert.Equal(t, a.Version, b.Version)
}

func TestSpawnDrawsEveryType(t *testing.T) {
	e := newTestEngine(77)
	s := e.Reset(ModeClassic)
	seen := map[piece.Type]bool{}
	for i := 0; i < 300; i++ {
		s.Board = board.New(10, 20)
		s = e.Spawn(s)
		cur, _ := s.Active()
		seen[cur.Type] = true
	}
	assert.Len(t, seen, piece.Count)
}

func TestLastClearedIsTransient(t *testing.T) {
	e := newTestEngine(1)
	s := e.Reset(ModeClassic)
	s.Board = board.FromRows(rowsWith(".#########"))
	s = withPiece(s, piece.New(piece.I, 0, 16).WithRotation(1))

	s = e.SoftDrop(s)
	require.Equal(t, []int{19}, s.LastCleared)

	s = e.SoftDrop(s)
	assert.Nil(t, s.LastCleared)
}

func TestVersionsIncrease(t *testing.T) {
	e := newTestEngine(1)
	s := e.Reset(ModeClassic)
	v := s.Version

	s = e.SoftDrop(s)
	assert.Greater(t, s.Version, v)

	restarted := e.Reset(ModeClassic)
	assert.Greater(t, restarted.Version, s.Version, "versions stay unique across resets")
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Rising-Tide")
	require.NoError(t, err)
	assert.Equal(t, ModeRisingTide, m)

	_, err = ParseMode("marathon")
	assert.Error(t, err)

	for _, m := range Modes() {
		_, ok := DefaultModes()[m]
		assert.True(t, ok, "mode %s has a table entry", m)
	}
}
