package engine

import (
	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/blockdrop/internal/piece"
)

// Ghost returns where the active piece would land if hard-dropped.
func Ghost(s State) (piece.Piece, bool) {
	cur, ok := s.Active()
	if !ok {
		return piece.Piece{}, false
	}
	y := s.Board.DropRow(cur)
	if y < 0 {
		return piece.Piece{}, false
	}
	cur.Y = y
	return cur, true
}

type ghostEntry struct {
	p  piece.Piece
	ok bool
}

// GhostCache memoizes Ghost by State.Version. Renderers ask for the ghost
// every frame while the state only changes on input or gravity, so most
// lookups hit. The cache is owned by its caller and is not thread-safe.
type GhostCache struct {
	entries *intmap.Map[uint64, ghostEntry]
	limit   int
	hits    int
	misses  int
}

// NewGhostCache returns a cache that empties itself after limit entries.
func NewGhostCache(limit int) *GhostCache {
	if limit <= 0 {
		limit = 256
	}
	return &GhostCache{
		entries: intmap.New[uint64, ghostEntry](limit),
		limit:   limit,
	}
}

// Ghost returns the memoized landing position for s.
func (c *GhostCache) Ghost(s State) (piece.Piece, bool) {
	if e, ok := c.entries.Get(s.Version); ok {
		c.hits++
		return e.p, e.ok
	}
	c.misses++
	p, ok := Ghost(s)
	if c.entries.Len() >= c.limit {
		c.entries.Clear()
	}
	c.entries.Put(s.Version, ghostEntry{p: p, ok: ok})
	return p, ok
}

// Stats returns hit and miss counts.
func (c *GhostCache) Stats() (hits, misses int) {
	return c.hits, c.misses
}

// Len returns the number of cached entries.
func (c *GhostCache) Len() int {
	return c.entries.Len()
}
