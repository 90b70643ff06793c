// Package board implements the playfield grid. A Board is copy-on-write:
// every operation that changes cells returns a new Board and leaves the
// receiver untouched, so snapshots can be shared freely.
package board

import (
	"strings"

	"github.com/vovakirdan/blockdrop/internal/core"
	"github.com/vovakirdan/blockdrop/internal/piece"
)

// Board is a width×height grid of colors. Row 0 is the top.
// core.ColorDefault marks an empty cell.
type Board struct {
	width  int
	height int
	cells  [][]core.Color
}

// New returns an empty board.
func New(width, height int) Board {
	b := Board{width: width, height: height, cells: make([][]core.Color, height)}
	for y := range b.cells {
		b.cells[y] = make([]core.Color, width)
	}
	return b
}

// FromRows builds a board from text rows: '.' is empty, a piece letter
// (I, O, T, S, Z, J, L) takes that piece's color and anything else is garbage.
// All rows must have the same length.
func FromRows(rows []string) Board {
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}
	b := New(width, len(rows))
	for y, row := range rows {
		for x := 0; x < width && x < len(row); x++ {
			b.cells[y][x] = colorFor(row[x])
		}
	}
	return b
}

func colorFor(ch byte) core.Color {
	if ch == '.' || ch == ' ' {
		return core.ColorDefault
	}
	if t, err := piece.ParseType(string(ch)); err == nil {
		return piece.ColorOf(t)
	}
	return core.ColorGarbage
}

// Width returns the number of columns.
func (b Board) Width() int { return b.width }

// Height returns the number of rows.
func (b Board) Height() int { return b.height }

// InBounds reports whether (x, y) lies on the board.
func (b Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// At returns the color at (x, y); out-of-bounds cells read as empty.
func (b Board) At(x, y int) core.Color {
	if !b.InBounds(x, y) {
		return core.ColorDefault
	}
	return b.cells[y][x]
}

// Occupied reports whether (x, y) holds a block.
func (b Board) Occupied(x, y int) bool {
	return b.At(x, y) != core.ColorDefault
}

// RowFull reports whether every cell of row y is occupied.
func (b Board) RowFull(y int) bool {
	if y < 0 || y >= b.height {
		return false
	}
	for _, c := range b.cells[y] {
		if c == core.ColorDefault {
			return false
		}
	}
	return true
}

// RowEmpty reports whether row y has no occupied cell.
func (b Board) RowEmpty(y int) bool {
	if y < 0 || y >= b.height {
		return true
	}
	for _, c := range b.cells[y] {
		if c != core.ColorDefault {
			return false
		}
	}
	return true
}

// Cells returns a deep copy of the grid.
func (b Board) Cells() [][]core.Color {
	return b.Clone().cells
}

// Clone returns a board that shares no rows with b.
func (b Board) Clone() Board {
	out := Board{width: b.width, height: b.height, cells: make([][]core.Color, b.height)}
	for y := range b.cells {
		out.cells[y] = append([]core.Color(nil), b.cells[y]...)
	}
	return out
}

// Equal reports whether both boards have the same size and cell colors.
func (b Board) Equal(o Board) bool {
	if b.width != o.width || b.height != o.height {
		return false
	}
	for y := range b.cells {
		for x := range b.cells[y] {
			if b.cells[y][x] != o.cells[y][x] {
				return false
			}
		}
	}
	return true
}

// ColumnHeights returns, per column, height minus the row of the topmost
// occupied cell, or 0 for an empty column.
func (b Board) ColumnHeights() []int {
	heights := make([]int, b.width)
	for x := 0; x < b.width; x++ {
		for y := 0; y < b.height; y++ {
			if b.cells[y][x] != core.ColorDefault {
				heights[x] = b.height - y
				break
			}
		}
	}
	return heights
}

// String renders the board as '#' and '.' rows.
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow((b.width + 1) * b.height)
	for y, row := range b.cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range row {
			if c == core.ColorDefault {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('#')
			}
		}
	}
	return sb.String()
}

func emptyRow(width int) []core.Color {
	return make([]core.Color, width)
}
