package tetris

import "strings"

const (
	// GridWidth is the number of columns.
	GridWidth = 10
	// GridHeight is the number of visible rows, 0 through GridHeight-1.
	GridHeight = 20
	// HiddenRows is the number of buffer rows above the visible area,
	// addressed as rows -HiddenRows through -1.
	HiddenRows = 2
)

// TopRow is the index of the topmost allocated row.
const TopRow = -HiddenRows

// Grid is the playfield. Rows run from TopRow (hidden) to GridHeight-1
// (bottom); each cell holds None or the shape that locked into it.
type Grid struct {
	cells [GridHeight + HiddenRows][GridWidth]ShapeId
}

// NewGrid returns an empty grid.
func NewGrid() *Grid {
	return &Grid{}
}

// InBounds reports whether (row, col) addresses an allocated cell.
func InBounds(row, col int) bool {
	return row >= TopRow && row < GridHeight && col >= 0 && col < GridWidth
}

// At returns the content of the cell at (row, col), or None when the
// coordinates fall outside the grid.
func (g *Grid) At(row, col int) ShapeId {
	if !InBounds(row, col) {
		return None
	}
	return g.cells[row+HiddenRows][col]
}

// Set writes s into the cell at (row, col). It panics on out-of-range
// coordinates.
func (g *Grid) Set(row, col int, s ShapeId) {
	if !InBounds(row, col) {
		panic("grid cell out of range")
	}
	g.cells[row+HiddenRows][col] = s
}

// Occupied reports whether the cell at (row, col) holds a block.
func (g *Grid) Occupied(row, col int) bool {
	return g.At(row, col) != None
}

// IsValidMove reports whether m anchored at (row, col) stays within the side
// walls and floor and overlaps no occupied cell. Cells above the hidden
// buffer count as out of bounds.
func (g *Grid) IsValidMove(m Matrix, row, col int) bool {
	for r, c := range m.Occupied() {
		ar, ac := row+r, col+c
		if ac < 0 || ac >= GridWidth || ar >= GridHeight || ar < TopRow {
			return false
		}
		if g.cells[ar+HiddenRows][ac] != None {
			return false
		}
	}
	return true
}

// RowFull reports whether every column of row is occupied.
func (g *Grid) RowFull(row int) bool {
	for col := 0; col < GridWidth; col++ {
		if g.At(row, col) == None {
			return false
		}
	}
	return true
}

// ClearFullRows removes every full row, scanning from the bottom up. Each
// removal shifts all rows above it down by one and leaves an empty row at
// the top of the buffer; the same index is checked again afterwards since new
// content moved into it. Returns the number of rows removed.
func (g *Grid) ClearFullRows() int {
	cleared := 0
	for row := GridHeight - 1; row >= 0; {
		if !g.RowFull(row) {
			row--
			continue
		}

		for r := row; r > TopRow; r-- {
			g.cells[r+HiddenRows] = g.cells[r-1+HiddenRows]
		}
		g.cells[0] = [GridWidth]ShapeId{}
		cleared++
	}
	return cleared
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	clone := *g
	return &clone
}

// String renders the grid one row per line, hidden rows first, using the
// shape letters and '.' for empty cells.
func (g *Grid) String() string {
	var b strings.Builder
	for row := TopRow; row < GridHeight; row++ {
		for col := 0; col < GridWidth; col++ {
			b.WriteString(g.At(row, col).String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
