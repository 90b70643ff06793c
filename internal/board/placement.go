package board

import (
	"github.com/vovakirdan/blockdrop/internal/core"
	"github.com/vovakirdan/blockdrop/internal/piece"
)

// IsValidPosition reports whether every filled cell of p is inside the
// board and lands on an empty cell. It is the only legality check used for
// movement, rotation, spawning, ghost projection and the move search.
func (b Board) IsValidPosition(p piece.Piece) bool {
	for _, o := range p.Offsets() {
		x, y := p.X+o.X, p.Y+o.Y
		if !b.InBounds(x, y) || b.cells[y][x] != core.ColorDefault {
			return false
		}
	}
	return true
}

// Place returns a new board with p's cells set to its color.
// Cells that fall outside the board are ignored.
func (b Board) Place(p piece.Piece) Board {
	out := Board{width: b.width, height: b.height, cells: make([][]core.Color, b.height)}
	copy(out.cells, b.cells)

	color := p.Color()
	for _, o := range p.Offsets() {
		x, y := p.X+o.X, p.Y+o.Y
		if !b.InBounds(x, y) {
			continue
		}
		if sameRow(out.cells[y], b.cells[y]) {
			out.cells[y] = append([]core.Color(nil), b.cells[y]...)
		}
		out.cells[y][x] = color
	}
	return out
}

// sameRow reports whether a and b are the same backing row.
func sameRow(a, b []core.Color) bool {
	return len(a) > 0 && len(b) > 0 && &a[0] == &b[0]
}

// ClearLines removes every full row. Rows are scanned top to bottom and the
// returned indices refer to the board before the shift. When nothing is
// cleared the receiver is returned as is.
func (b Board) ClearLines() (Board, int, []int) {
	var cleared []int
	for y := 0; y < b.height; y++ {
		if b.RowFull(y) {
			cleared = append(cleared, y)
		}
	}
	if len(cleared) == 0 {
		return b, 0, nil
	}

	out := Board{width: b.width, height: b.height, cells: make([][]core.Color, 0, b.height)}
	for range cleared {
		out.cells = append(out.cells, emptyRow(b.width))
	}
	next := 0
	for y := 0; y < b.height; y++ {
		if next < len(cleared) && cleared[next] == y {
			next++
			continue
		}
		out.cells = append(out.cells, b.cells[y])
	}
	return out, len(cleared), cleared
}

// DropRow returns the lowest row p can reach by moving straight down from
// its current row, or -1 if p is not valid where it is.
func (b Board) DropRow(p piece.Piece) int {
	if !b.IsValidPosition(p) {
		return -1
	}
	for b.IsValidPosition(p.Moved(0, 1)) {
		p = p.Moved(0, 1)
	}
	return p.Y
}
