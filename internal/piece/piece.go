// Package piece defines the seven tetrominoes, their colors and the
// clockwise rotation transform.
package piece

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/blockdrop/internal/core"
)

// Type identifies one of the seven tetromino shapes.
type Type uint8

const (
	I Type = iota
	O
	T
	S
	Z
	J
	L
)

// Count is the number of tetromino types.
const Count = 7

var typeNames = [Count]string{"I", "O", "T", "S", "Z", "J", "L"}

// Types returns all tetromino types in catalog order.
func Types() []Type {
	return []Type{I, O, T, S, Z, J, L}
}

// Valid reports whether t is one of the seven catalog types.
func (t Type) Valid() bool {
	return t < Count
}

func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
	return typeNames[t]
}

// ParseType converts a one-letter name ("t", "L") into a Type.
func ParseType(s string) (Type, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("piece: unknown type %q", s)
}

// Tetromino is the immutable catalog entry for a type.
type Tetromino struct {
	Type  Type
	Shape Shape
	Color core.Color
}

var baseShapes = [Count]Shape{
	I: {{true, true, true, true}},
	O: {{true, true}, {true, true}},
	T: {{false, true, false}, {true, true, true}},
	S: {{false, true, true}, {true, true, false}},
	Z: {{true, true, false}, {false, true, true}},
	J: {{true, false, false}, {true, true, true}},
	L: {{false, false, true}, {true, true, true}},
}

var colors = [Count]core.Color{
	I: core.ColorCyan,
	O: core.ColorYellow,
	T: core.ColorMagenta,
	S: core.ColorGreen,
	Z: core.ColorRed,
	J: core.ColorBlue,
	L: core.ColorOrange,
}

// orientations[t][r] is the base shape of t rotated clockwise r times,
// and offsets[t][r] lists its filled cells.
var (
	orientations [Count][4]Shape
	offsets      [Count][4][]Point
)

func init() {
	for _, t := range Types() {
		s := baseShapes[t]
		for r := 0; r < 4; r++ {
			orientations[t][r] = s
			offsets[t][r] = s.Cells()
			s = RotateClockwise(s)
		}
	}
}

// Get returns the catalog entry for t. The shape is a private copy.
func Get(t Type) Tetromino {
	return Tetromino{Type: t, Shape: ShapeOf(t), Color: ColorOf(t)}
}

// ShapeOf returns the base (rotation 0) layout of t.
func ShapeOf(t Type) Shape {
	return baseShapes[t].Clone()
}

// ColorOf returns the display color of t.
func ColorOf(t Type) core.Color {
	return colors[t]
}
