package loop_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSystem struct {
	Frames []uint64
	Events []loop.Event
	Rows   []int
}

func (s *recordingSystem) Execute(frame *loop.Frame) {
	s.Frames = append(s.Frames, frame.Tick)
	s.Events = append(s.Events, frame.Events...)
	if p := frame.Game.Active(); p != nil {
		s.Rows = append(s.Rows, p.Row)
	}
}

func newScheduler(delay int) (*loop.Scheduler, *loop.CommandQueue) {
	game := tetris.NewGame(tetris.Config{Seed: 1, GravityDelay: delay})
	queue := loop.NewCommandQueue()
	return loop.NewScheduler(game, queue), queue
}

func TestSchedulerOnce(t *testing.T) {
	t.Run("systems run in order after input and gravity", func(t *testing.T) {
		s, _ := newScheduler(1)
		rec := &recordingSystem{}
		s.Register(rec)

		startRow := s.Game().Active().Row
		for i := 0; i < 4; i++ {
			require.True(t, s.Once(1.0/60))
		}

		assert.Equal(t, []uint64{0, 1, 2, 3}, rec.Frames)
		// Gravity fires every second frame and the recorder sees the result.
		assert.Equal(t, []int{startRow, startRow + 1, startRow + 1, startRow + 2}, rec.Rows)
	})

	t.Run("commands apply before gravity", func(t *testing.T) {
		s, queue := newScheduler(tetris.DefaultGravityDelay)
		col := s.Game().Active().Col

		queue.Push(loop.MoveLeft)
		queue.Push(loop.MoveLeft)
		queue.Push(loop.MoveRight)
		s.Once(0)

		assert.Equal(t, col-1, s.Game().Active().Col)
		assert.Equal(t, int64(3), s.Input().Applied)
		assert.Equal(t, 0, queue.Len())
	})

	t.Run("rejected commands are counted", func(t *testing.T) {
		s, queue := newScheduler(tetris.DefaultGravityDelay)
		for i := 0; i < tetris.GridWidth+2; i++ {
			queue.Push(loop.MoveLeft)
		}
		s.Once(0)

		assert.Equal(t, 0, s.Game().Active().Col+minCol(s.Game().Active().Matrix))
		assert.Positive(t, s.Input().Rejected)
	})

	t.Run("soft drop emits lock events", func(t *testing.T) {
		s, queue := newScheduler(tetris.DefaultGravityDelay)
		rec := &recordingSystem{}
		s.Register(rec)

		for i := 0; i < tetris.GridHeight+tetris.HiddenRows+1; i++ {
			queue.Push(loop.SoftDrop)
		}
		s.Once(0)

		require.Len(t, rec.Events, 1)
		assert.Equal(t, loop.EventLocked, rec.Events[0].Kind)
		assert.Equal(t, tetris.Locked, rec.Events[0].Report.Result)
		assert.Equal(t, 0, rec.Events[0].Cleared())
		assert.Equal(t, 1, s.Game().LockedPieces())
	})
}

// minCol returns the leftmost occupied column offset of m.
func minCol(m tetris.Matrix) int {
	out := m.Size()
	for _, c := range m.Occupied() {
		out = min(out, c)
	}
	return out
}

func TestSchedulerStopsOnGameOver(t *testing.T) {
	s, queue := newScheduler(tetris.DefaultGravityDelay)
	rec := &recordingSystem{}
	s.Register(rec)

	frames := 0
	for s.Running() {
		for i := 0; i < 30; i++ {
			queue.Push(loop.SoftDrop)
		}
		s.Once(0)
		frames++
		require.Less(t, frames, 10_000)
	}

	require.True(t, s.Game().Over())
	require.NotEmpty(t, rec.Events)
	last := rec.Events[len(rec.Events)-1]
	assert.Equal(t, loop.EventGameOver, last.Kind)
	assert.Equal(t, tetris.GameOver, last.Report.Result)

	gameOvers := 0
	for _, ev := range rec.Events {
		if ev.Kind == loop.EventGameOver {
			gameOvers++
		}
	}
	assert.Equal(t, 1, gameOvers)

	// Nothing runs once the game has ended.
	executed := len(rec.Frames)
	queue.Push(loop.MoveLeft)
	assert.False(t, s.Once(0))
	assert.Len(t, rec.Frames, executed)
	assert.False(t, s.Running())
	assert.Equal(t, uint64(executed), s.Stats().Frames)
}

func TestSchedulerDefer(t *testing.T) {
	s, _ := newScheduler(tetris.DefaultGravityDelay)

	var order []string
	s.Register(systemFunc(func(frame *loop.Frame) {
		frame.Defer(func() { order = append(order, "deferred") })
		order = append(order, "first")
	}))
	s.Register(systemFunc(func(frame *loop.Frame) {
		order = append(order, "second")
	}))

	s.Once(0)
	assert.Equal(t, []string{"first", "second", "deferred"}, order)
}

type systemFunc func(frame *loop.Frame)

func (f systemFunc) Execute(frame *loop.Frame) { f(frame) }

func TestSchedulerRun(t *testing.T) {
	t.Run("returns nil when the game ends", func(t *testing.T) {
		s, queue := newScheduler(1)
		s.Register(systemFunc(func(frame *loop.Frame) {
			queue.Push(loop.SoftDrop)
		}))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := s.Run(ctx, time.Microsecond)
		assert.NoError(t, err)
		assert.True(t, s.Game().Over())
	})

	t.Run("context cancellation", func(t *testing.T) {
		s, _ := newScheduler(tetris.DefaultGravityDelay)
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() {
			done <- s.Run(ctx, time.Millisecond)
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(time.Second):
			t.Fatal("Run did not return after cancellation")
		}
		assert.False(t, s.Game().Over())
	})

	t.Run("finished scheduler does not restart", func(t *testing.T) {
		s, queue := newScheduler(1)
		for s.Running() {
			queue.Push(loop.SoftDrop)
			s.Once(0)
		}
		frames := s.Stats().Frames

		assert.NoError(t, s.Run(context.Background(), time.Millisecond))
		assert.Equal(t, frames, s.Stats().Frames)
	})
}

func TestSchedulerStats(t *testing.T) {
	s, _ := newScheduler(tetris.DefaultGravityDelay)
	s.Register(&recordingSystem{})

	before := s.Stats()
	assert.Equal(t, 3, before.SystemCount)
	assert.Equal(t, time.Duration(0), before.Systems[2].MinDuration)

	for i := 0; i < 5; i++ {
		s.Once(0)
	}

	stats := s.Stats()
	assert.Equal(t, uint64(5), stats.Frames)
	assert.Equal(t, int64(15), stats.TotalExecutions)
	require.Len(t, stats.Systems, 3)
	assert.Equal(t, "InputSystem", stats.Systems[0].Name)
	assert.Equal(t, "GravitySystem", stats.Systems[1].Name)
	assert.Equal(t, "recordingSystem", stats.Systems[2].Name)
	for _, sys := range stats.Systems {
		assert.Equal(t, int64(5), sys.ExecutionCount)
		assert.LessOrEqual(t, sys.MinDuration, sys.MaxDuration)
		assert.GreaterOrEqual(t, sys.TotalDuration, sys.MaxDuration)
	}
}
