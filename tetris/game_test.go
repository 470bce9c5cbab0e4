package tetris

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := NewGame(DefaultConfig(1))
	require.NotNil(t, g.Active())
	return g
}

// place swaps the active piece for shape at (row, col).
func place(g *Game, shape ShapeId, row, col int) *Piece {
	p := NewPiece(shape)
	p.Row, p.Col = row, col
	g.active = p
	return p
}

func TestSpawnPosition(t *testing.T) {
	tests := []struct {
		shape    ShapeId
		row, col int
	}{
		{I, -1, 3},
		{O, -2, 4},
		{J, -2, 3},
		{L, -2, 3},
		{S, -2, 3},
		{T, -2, 3},
		{Z, -2, 3},
	}

	grid := NewGrid()
	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			p := NewPiece(tt.shape)
			assert.Equal(t, tt.shape, p.Shape)
			assert.Equal(t, tt.shape.Matrix(), p.Matrix)
			assert.Equal(t, tt.row, p.Row)
			assert.Equal(t, tt.col, p.Col)
			assert.True(t, grid.IsValidMove(p.Matrix, p.Row, p.Col))
		})
	}
}

func TestSpawnFollowsBag(t *testing.T) {
	g := NewGame(DefaultConfig(5))
	mirror := NewBag(5)

	assert.Equal(t, mirror.Next(), g.Active().Shape)
	for i := 0; i < 20; i++ {
		assert.Equal(t, mirror.Next(), g.spawn().Shape)
	}
}

func TestGravity(t *testing.T) {
	g := newTestGame(t)
	startRow := g.Active().Row

	for i := 0; i < DefaultGravityDelay; i++ {
		_, locked := g.Tick()
		assert.False(t, locked)
	}
	assert.Equal(t, startRow, g.Active().Row)
	assert.Equal(t, DefaultGravityDelay, g.GravityCounter())

	g.Tick()
	assert.Equal(t, startRow+1, g.Active().Row)
	assert.Equal(t, 0, g.GravityCounter())
	assert.Equal(t, uint64(DefaultGravityDelay+1), g.Ticks())
}

func TestGravityDelayConfig(t *testing.T) {
	g := NewGame(Config{Seed: 1, GravityDelay: 2})
	row := g.Active().Row

	g.Tick()
	g.Tick()
	assert.Equal(t, row, g.Active().Row)
	g.Tick()
	assert.Equal(t, row+1, g.Active().Row)

	assert.Equal(t, DefaultGravityDelay, NewGame(Config{}).gravityDelay)
}

func TestGravityLocksOnFloor(t *testing.T) {
	g := NewGame(Config{Seed: 1, GravityDelay: 1})
	place(g, O, GridHeight-2, 0)

	g.Tick()
	report, locked := g.Tick()
	require.True(t, locked)
	assert.Equal(t, Locked, report.Result)
	assert.Equal(t, O, report.Shape)
	assert.Equal(t, O, g.Grid().At(GridHeight-1, 0))
	assert.Equal(t, O, g.Grid().At(GridHeight-2, 1))
	assert.Equal(t, 2, g.Spawned())
}

func TestMoveHorizontal(t *testing.T) {
	g := newTestGame(t)
	p := place(g, O, 5, 4)

	assert.True(t, g.MoveHorizontal(-1))
	assert.Equal(t, 3, p.Col)
	assert.True(t, g.MoveHorizontal(+1))
	assert.Equal(t, 4, p.Col)
	assert.False(t, g.MoveHorizontal(0))

	for g.MoveHorizontal(-1) {
	}
	assert.Equal(t, 0, p.Col)

	for g.MoveHorizontal(+1) {
	}
	assert.Equal(t, GridWidth-2, p.Col)

	g.grid.Set(5, GridWidth-3, Z)
	assert.False(t, g.MoveHorizontal(-1))
	assert.Equal(t, GridWidth-2, p.Col)
}

func TestRotate(t *testing.T) {
	t.Run("free space", func(t *testing.T) {
		g := newTestGame(t)
		p := place(g, T, 5, 4)

		assert.True(t, g.Rotate())
		assert.Equal(t, T.Matrix().Rotate(), p.Matrix)
	})

	t.Run("blocked rotation keeps the old matrix", func(t *testing.T) {
		g := newTestGame(t)
		p := place(g, I, 5, 3)
		g.grid.Set(7, 5, J)

		assert.False(t, g.Rotate())
		assert.Equal(t, I.Matrix(), p.Matrix)
	})

	t.Run("no wall kick", func(t *testing.T) {
		g := newTestGame(t)
		p := place(g, I, 5, 0)
		p.Matrix = p.Matrix.Rotate()
		for g.MoveHorizontal(-1) {
		}
		require.Equal(t, -2, p.Col)

		assert.False(t, g.Rotate())
		assert.Equal(t, -2, p.Col)
	})
}

func TestSoftDrop(t *testing.T) {
	g := newTestGame(t)
	p := place(g, O, 10, 4)

	_, locked := g.SoftDrop()
	assert.False(t, locked)
	assert.Equal(t, 11, p.Row)

	p.Row = GridHeight - 2
	report, locked := g.SoftDrop()
	require.True(t, locked)
	assert.Equal(t, Locked, report.Result)
	assert.Equal(t, O, g.Grid().At(GridHeight-1, 4))
	assert.NotSame(t, p, g.Active())
	assert.Equal(t, 1, g.LockedPieces())
}

func TestLockGameOver(t *testing.T) {
	g := newTestGame(t)
	g.grid.Set(0, 4, Z)
	place(g, O, -2, 4)
	before := g.grid.Clone()

	report, locked := g.SoftDrop()
	require.True(t, locked)
	assert.Equal(t, GameOver, report.Result)
	assert.True(t, g.Over())
	assert.Nil(t, g.Active())
	if diff := cmp.Diff(before.String(), g.grid.String()); diff != "" {
		t.Errorf("game over must not write cells (-want +got):\n%s", diff)
	}

	spawned := g.Spawned()
	ticks := g.Ticks()

	for i := 0; i < 100; i++ {
		_, locked := g.Tick()
		assert.False(t, locked)
	}
	assert.False(t, g.MoveHorizontal(1))
	assert.False(t, g.Rotate())
	_, locked = g.SoftDrop()
	assert.False(t, locked)

	assert.Equal(t, spawned, g.Spawned())
	assert.Equal(t, ticks, g.Ticks())
	assert.True(t, g.Over())
}

func TestLockOverSpawnOverlap(t *testing.T) {
	// A horizontal I spawns at row -1 with its blocks in row 0. With row 0
	// already occupied under it and row 1 blocked, it can neither drop nor
	// lock without overwriting the stack.
	g := NewGame(Config{Seed: 1, GravityDelay: 1})
	for col := 3; col <= 6; col++ {
		g.grid.Set(0, col, T)
		g.grid.Set(1, col, Z)
	}
	p := NewPiece(I)
	g.active = p
	require.False(t, g.grid.IsValidMove(p.Matrix, p.Row, p.Col), "spawn overlaps the stack")
	before := g.grid.Clone()

	var (
		report LockReport
		locked bool
	)
	for i := 0; i < 2 && !locked; i++ {
		report, locked = g.Tick()
	}
	require.True(t, locked)
	assert.Equal(t, GameOver, report.Result)
	assert.Equal(t, I, report.Shape)
	assert.True(t, g.Over())
	assert.Nil(t, g.Active())
	assert.Zero(t, g.LockedPieces())
	if diff := cmp.Diff(before.String(), g.grid.String()); diff != "" {
		t.Errorf("locked cells must keep their shape (-want +got):\n%s", diff)
	}
}

func TestLockedCellsKeepShapeUntilCleared(t *testing.T) {
	for seed := uint64(0); seed < 32; seed++ {
		g := NewGame(Config{Seed: seed, GravityDelay: 1})
		for !g.Over() {
			before := g.grid.Clone()
			report, locked := g.SoftDrop()
			if !locked || report.Cleared > 0 {
				continue
			}
			for row := TopRow; row < GridHeight; row++ {
				for col := 0; col < GridWidth; col++ {
					if was := before.At(row, col); was != None {
						require.Equal(t, was, g.grid.At(row, col), "seed %d cell (%d,%d)", seed, row, col)
					}
				}
			}
		}
		assert.Equal(t, g.LockedPieces()+1, g.Spawned(), "seed %d", seed)
	}
}

func TestLockPartialBufferOverlap(t *testing.T) {
	// Only the top block of a vertical I is still in the buffer.
	g := newTestGame(t)
	p := place(g, I, -1, 3)
	p.Matrix = p.Matrix.Rotate()
	g.grid.Set(3, 5, T)

	report := g.lock()
	assert.Equal(t, GameOver, report.Result)
	for row := TopRow; row < GridHeight; row++ {
		if row == 3 {
			continue
		}
		assert.Equal(t, None, g.grid.At(row, 5), "row %d", row)
	}
}

func TestLockNeverGameOverWhenVisible(t *testing.T) {
	for _, s := range AllShapes {
		t.Run(s.String(), func(t *testing.T) {
			g := newTestGame(t)
			p := place(g, s, 0, 3)
			for r := range p.Cells() {
				require.GreaterOrEqual(t, r, 0)
			}

			report := g.lock()
			assert.Equal(t, Locked, report.Result)
			assert.False(t, g.Over())
			assert.NotNil(t, g.Active())
		})
	}
}

func TestLockClearsTwoRows(t *testing.T) {
	g := newTestGame(t)
	for col := 0; col < GridWidth; col++ {
		if col != 4 && col != 5 {
			g.grid.Set(19, col, L)
			g.grid.Set(18, col, J)
		}
	}
	g.grid.Set(17, 0, S)
	g.grid.Set(10, 9, T)

	place(g, O, 18, 4)
	report := g.lock()
	assert.Equal(t, Locked, report.Result)
	assert.Equal(t, 2, report.Cleared)
	assert.Equal(t, 2, g.LinesCleared())

	want := NewGrid()
	want.Set(19, 0, S)
	want.Set(12, 9, T)
	if diff := cmp.Diff(want.String(), g.grid.String()); diff != "" {
		t.Errorf("grid mismatch(-want +got):\n%s", diff)
	}
}

func TestFourOPiecesClearBottomRow(t *testing.T) {
	g := newTestGame(t)
	// Columns 8 and 9 are pre-filled so four O pieces complete row 19.
	g.grid.Set(19, 8, L)
	g.grid.Set(19, 9, L)
	g.grid.Set(18, 9, J)

	for i, col := range []int{0, 2, 4, 6} {
		p := place(g, O, -2, 4)
		for p.Col > col && g.MoveHorizontal(-1) {
		}
		for p.Col < col && g.MoveHorizontal(+1) {
		}
		require.Equal(t, col, p.Col)

		var report LockReport
		locked := false
		for !locked {
			report, locked = g.SoftDrop()
		}
		require.Equal(t, Locked, report.Result, "piece %d", i)
		if i < 3 {
			assert.Equal(t, 0, report.Cleared, "piece %d", i)
		} else {
			assert.Equal(t, 1, report.Cleared)
		}
	}

	// Row 19 is gone; the upper halves of the O pieces and the J cell moved
	// down into it.
	want := NewGrid()
	for col := 0; col < 8; col++ {
		want.Set(19, col, O)
	}
	want.Set(19, 9, J)
	if diff := cmp.Diff(want.String(), g.grid.String()); diff != "" {
		t.Errorf("grid mismatch(-want +got):\n%s", diff)
	}
	assert.Equal(t, 4, g.LockedPieces())
	assert.Equal(t, 1, g.LinesCleared())
}

func TestPlayUntilGameOver(t *testing.T) {
	g := NewGame(Config{Seed: 99, GravityDelay: 1})

	for i := 0; i < 1_000_000 && !g.Over(); i++ {
		g.Tick()
	}

	require.True(t, g.Over())
	assert.Nil(t, g.Active())
	assert.Equal(t, g.Spawned(), g.LockedPieces()+1)
	for row := TopRow; row < 0; row++ {
		for col := 0; col < GridWidth; col++ {
			assert.Equal(t, None, g.grid.At(row, col))
		}
	}
}

func TestLockResultString(t *testing.T) {
	assert.Equal(t, "Locked", Locked.String())
	assert.Equal(t, "GameOver", GameOver.String())
}
