package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockdrop/internal/board"
	"github.com/vovakirdan/blockdrop/internal/piece"
)

func TestGhostLandingRow(t *testing.T) {
	e := newTestEngine(1)
	s := e.Reset(ModeClassic)
	s.Board = board.FromRows(rowsWith("#####.....", "#########."))
	s = withPiece(s, piece.New(piece.O, 0, 0))

	g, ok := Ghost(s)
	require.True(t, ok)
	assert.Equal(t, 16, g.Y)
	assert.Equal(t, 0, g.X)

	dropped := e.HardDrop(s)
	assert.True(t, dropped.Board.Occupied(0, 17), "hard drop lands where the ghost is")
	assert.True(t, dropped.Board.Occupied(1, 16))
}

func TestGhostWithoutPiece(t *testing.T) {
	_, ok := Ghost(State{Board: board.New(10, 20)})
	assert.False(t, ok)
}

func TestGhostCacheKeyedByVersion(t *testing.T) {
	e := newTestEngine(1)
	s := e.Reset(ModeClassic)
	c := NewGhostCache(4)

	first, ok := c.Ghost(s)
	require.True(t, ok)
	again, _ := c.Ghost(s)
	assert.Equal(t, first, again)

	hits, misses := c.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)

	moved := e.MoveLeft(s)
	g, _ := c.Ghost(moved)
	assert.Equal(t, first.X-1, g.X)

	for i := 0; i < 10; i++ {
		moved = e.TogglePause(moved)
		c.Ghost(moved)
	}
	assert.LessOrEqual(t, c.Len(), 4)
}
