package piece

import "github.com/vovakirdan/blockdrop/internal/core"

// Piece is a tetromino placed on a board. X and Y locate the top-left
// corner of the rotated bounding box. Pieces are values: every move
// returns a new Piece.
type Piece struct {
	Type     Type
	X        int
	Y        int
	Rotation int
}

// New returns a piece of type t at (x, y) in its spawn orientation.
func New(t Type, x, y int) Piece {
	return Piece{Type: t, X: x, Y: y}
}

// Spawn returns a piece of type t centered horizontally on row 0.
func Spawn(t Type, boardWidth int) Piece {
	return New(t, (boardWidth-baseShapes[t].Width())/2, 0)
}

// Shape returns a copy of the piece's current orientation.
func (p Piece) Shape() Shape {
	return orientations[p.Type][normRotation(p.Rotation)].Clone()
}

// Offsets returns the filled cells relative to (X, Y).
// The slice is shared and must not be modified.
func (p Piece) Offsets() []Point {
	return offsets[p.Type][normRotation(p.Rotation)]
}

// Cells returns the absolute board coordinates of the filled cells.
func (p Piece) Cells() []Point {
	rel := p.Offsets()
	out := make([]Point, len(rel))
	for i, o := range rel {
		out[i] = Point{X: p.X + o.X, Y: p.Y + o.Y}
	}
	return out
}

// Width returns the width of the current orientation.
func (p Piece) Width() int {
	return orientations[p.Type][normRotation(p.Rotation)].Width()
}

// Height returns the height of the current orientation.
func (p Piece) Height() int {
	return orientations[p.Type][normRotation(p.Rotation)].Height()
}

// Color returns the display color.
func (p Piece) Color() core.Color {
	return colors[p.Type]
}

// Moved returns the piece shifted by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// Rotated returns the piece turned clockwise once around its top-left corner.
func (p Piece) Rotated() Piece {
	p.Rotation = normRotation(p.Rotation + 1)
	return p
}

// WithRotation returns the piece with rotation r (mod 4).
func (p Piece) WithRotation(r int) Piece {
	p.Rotation = normRotation(r)
	return p
}
