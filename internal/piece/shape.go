package piece

import "strings"

// Point is a (column, row) coordinate. Row 0 is the top.
type Point struct {
	X, Y int
}

// Shape is a rectangular matrix of cells, true meaning filled.
type Shape [][]bool

// Height returns the number of rows.
func (s Shape) Height() int {
	return len(s)
}

// Width returns the number of columns.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Clone returns a deep copy.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for r := range s {
		out[r] = append([]bool(nil), s[r]...)
	}
	return out
}

// Equal reports whether both shapes have the same size and cells.
func (s Shape) Equal(o Shape) bool {
	if s.Height() != o.Height() || s.Width() != o.Width() {
		return false
	}
	for r := range s {
		for c := range s[r] {
			if s[r][c] != o[r][c] {
				return false
			}
		}
	}
	return true
}

// Cells lists the filled cells in row-major order.
func (s Shape) Cells() []Point {
	var pts []Point
	for r, row := range s {
		for c, filled := range row {
			if filled {
				pts = append(pts, Point{X: c, Y: r})
			}
		}
	}
	return pts
}

func (s Shape) String() string {
	var sb strings.Builder
	for r, row := range s {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for _, filled := range row {
			if filled {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// RotateClockwise turns an R×C shape into a C×R shape with
// result[c][r] = s[R-1-r][c].
func RotateClockwise(s Shape) Shape {
	rows, cols := s.Height(), s.Width()
	out := make(Shape, cols)
	for c := 0; c < cols; c++ {
		out[c] = make([]bool, rows)
		for r := 0; r < rows; r++ {
			out[c][r] = s[rows-1-r][c]
		}
	}
	return out
}

// Rotate applies n clockwise rotations. Negative n turns counter-clockwise.
func Rotate(s Shape, n int) Shape {
	out := s.Clone()
	for i := 0; i < normRotation(n); i++ {
		out = RotateClockwise(out)
	}
	return out
}

func normRotation(n int) int {
	return ((n % 4) + 4) % 4
}
