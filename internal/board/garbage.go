package board

import (
	"math/rand"

	"github.com/vovakirdan/blockdrop/internal/core"
)

// WithGarbage returns a copy of b whose bottom rows are replaced by random
// garbage. Each row gets one guaranteed hole; every other cell is filled
// independently with probability fillRate, so rows may have extra holes.
func (b Board) WithGarbage(rows int, fillRate float64, rng *rand.Rand) Board {
	out := b.Clone()
	rows = core.Clamp(rows, 0, b.height)
	for y := b.height - rows; y < b.height; y++ {
		hole := rng.Intn(b.width)
		row := emptyRow(b.width)
		for x := range row {
			if x != hole && rng.Float64() < fillRate {
				row[x] = core.ColorGarbage
			}
		}
		out.cells[y] = row
	}
	return out
}

// PushGarbageRow drops the top row and appends a bottom row that is full
// except for the hole column.
func (b Board) PushGarbageRow(hole int) Board {
	row := make([]core.Color, b.width)
	for x := range row {
		if x != hole {
			row[x] = core.ColorGarbage
		}
	}
	out := Board{width: b.width, height: b.height, cells: make([][]core.Color, 0, b.height)}
	out.cells = append(out.cells, b.cells[1:]...)
	out.cells = append(out.cells, row)
	return out
}

// ShiftDownDiscardBottom drops the bottom row, moves every other row down
// by one and inserts an empty row at the top.
func (b Board) ShiftDownDiscardBottom() Board {
	out := Board{width: b.width, height: b.height, cells: make([][]core.Color, 0, b.height)}
	out.cells = append(out.cells, emptyRow(b.width))
	out.cells = append(out.cells, b.cells[:b.height-1]...)
	return out
}
