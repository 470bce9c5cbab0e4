package tetris

import (
	"iter"
	"strings"
)

// MaxMatrixSize is the largest side length of any shape matrix.
const MaxMatrixSize = 4

// Matrix is a square occupancy grid of at most MaxMatrixSize cells per side.
// Matrices are values: rotating one returns a new Matrix and leaves the
// receiver untouched.
type Matrix struct {
	size  int
	cells [MaxMatrixSize][MaxMatrixSize]bool
}

// NewMatrix builds a matrix from rows where '#' marks an occupied cell and any
// other byte is empty. It panics unless the rows form a square that fits in
// MaxMatrixSize.
func NewMatrix(rows ...string) Matrix {
	n := len(rows)
	if n == 0 || n > MaxMatrixSize {
		panic("matrix must have between 1 and 4 rows")
	}

	m := Matrix{size: n}
	for r, row := range rows {
		if len(row) != n {
			panic("matrix rows must be square: " + row)
		}
		for c := 0; c < n; c++ {
			m.cells[r][c] = row[c] == '#'
		}
	}
	return m
}

// Size returns the side length of the matrix.
func (m Matrix) Size() int {
	return m.size
}

// At reports whether the cell at (r, c) is occupied. Out-of-range
// coordinates are empty.
func (m Matrix) At(r, c int) bool {
	if r < 0 || c < 0 || r >= m.size || c >= m.size {
		return false
	}
	return m.cells[r][c]
}

// Count returns the number of occupied cells.
func (m Matrix) Count() int {
	n := 0
	for range m.Occupied() {
		n++
	}
	return n
}

// Occupied yields the (row, col) offset of every occupied cell in row-major
// order.
func (m Matrix) Occupied() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for r := 0; r < m.size; r++ {
			for c := 0; c < m.size; c++ {
				if m.cells[r][c] && !yield(r, c) {
					return
				}
			}
		}
	}
}

// Rotate returns the matrix turned 90 degrees clockwise:
// result[i][j] = m[N-1-j][i].
func (m Matrix) Rotate() Matrix {
	n := m.size
	out := Matrix{size: n}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.cells[i][j] = m.cells[n-1-j][i]
		}
	}
	return out
}

func (m Matrix) String() string {
	var b strings.Builder
	for r := 0; r < m.size; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := 0; c < m.size; c++ {
			if m.cells[r][c] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}
