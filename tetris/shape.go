package tetris

import (
	"fmt"
	"image/color"
)

// ShapeId identifies one of the seven tetrominoes. The zero value None marks
// an empty grid cell.
type ShapeId uint8

const (
	None ShapeId = iota
	I
	J
	L
	O
	S
	T
	Z
)

// ShapeCount is the number of playable shapes.
const ShapeCount = 7

// AllShapes lists the playable shapes in catalog order.
var AllShapes = [ShapeCount]ShapeId{I, J, L, O, S, T, Z}

var shapeNames = [...]string{
	None: ".",
	I:    "I",
	J:    "J",
	L:    "L",
	O:    "O",
	S:    "S",
	T:    "T",
	Z:    "Z",
}

func (s ShapeId) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return fmt.Sprintf("ShapeId(%d)", uint8(s))
}

// Valid reports whether s is one of the seven playable shapes.
func (s ShapeId) Valid() bool {
	return s >= I && s <= Z
}

// Matrix returns the spawn orientation of the shape.
func (s ShapeId) Matrix() Matrix {
	return shapeMatrices[s]
}

// Color returns the display color of the shape. The core never interprets it.
func (s ShapeId) Color() color.RGBA {
	return Colors[s]
}

var shapeMatrices = [...]Matrix{
	I: NewMatrix(
		"....",
		"####",
		"....",
		"....",
	),
	J: NewMatrix(
		"#..",
		"###",
		"...",
	),
	L: NewMatrix(
		"..#",
		"###",
		"...",
	),
	O: NewMatrix(
		"##",
		"##",
	),
	S: NewMatrix(
		".##",
		"##.",
		"...",
	),
	T: NewMatrix(
		".#.",
		"###",
		"...",
	),
	Z: NewMatrix(
		"##.",
		".##",
		"...",
	),
}

// Colors maps each shape to its display color. Index None is transparent.
var Colors = [...]color.RGBA{
	None: {},
	I:    {0, 255, 255, 255},
	J:    {0, 0, 255, 255},
	L:    {255, 165, 0, 255},
	O:    {255, 255, 0, 255},
	S:    {0, 128, 0, 255},
	T:    {128, 0, 128, 255},
	Z:    {255, 0, 0, 255},
}

func init() {
	validateCatalog()
}

// validateCatalog panics if any shape matrix is malformed. Every shape must
// have exactly four blocks, fit in the hidden buffer from its spawn row and
// carry an opaque color.
func validateCatalog() {
	for _, s := range AllShapes {
		m := shapeMatrices[s]
		if m.Size() < 2 || m.Size() > MaxMatrixSize {
			panic(fmt.Sprintf("shape %s has invalid matrix size %d", s, m.Size()))
		}
		if n := m.Count(); n != 4 {
			panic(fmt.Sprintf("shape %s has %d blocks, want 4", s, n))
		}
		if spawnRow(s) < -HiddenRows {
			panic(fmt.Sprintf("shape %s spawns above the hidden buffer", s))
		}
		if Colors[s].A == 0 {
			panic(fmt.Sprintf("shape %s has no color", s))
		}
	}
}
