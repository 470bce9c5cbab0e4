package tetris

import (
	"image/color"
	"iter"
)

// Piece is the falling unit. Row and Col anchor the top-left corner of
// Matrix in grid coordinates.
type Piece struct {
	Shape  ShapeId
	Matrix Matrix
	Row    int
	Col    int
}

// NewPiece places shape at its spawn position: horizontally centered, with
// its matrix starting in the hidden buffer.
func NewPiece(shape ShapeId) *Piece {
	m := shape.Matrix()
	return &Piece{
		Shape:  shape,
		Matrix: m,
		Row:    spawnRow(shape),
		Col:    spawnCol(m),
	}
}

func spawnRow(shape ShapeId) int {
	if shape == I {
		return -1
	}
	return -2
}

// spawnCol is floor(GridWidth/2) - ceil(size/2).
func spawnCol(m Matrix) int {
	return GridWidth/2 - (m.Size()+1)/2
}

// Cells yields the absolute grid coordinates of every occupied cell.
func (p *Piece) Cells() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for r, c := range p.Matrix.Occupied() {
			if !yield(p.Row+r, p.Col+c) {
				return
			}
		}
	}
}

// Color returns the display color of the piece's shape.
func (p *Piece) Color() color.RGBA {
	return p.Shape.Color()
}
