package loop

import "github.com/plus3/blockfall/tetris"

// Frame is the per-update context handed to every system.
type Frame struct {
	// Tick is the zero-based index of this frame.
	Tick      uint64
	DeltaTime float64
	Game      *tetris.Game
	// Commands holds the input drained from the queue for this frame, in
	// arrival order.
	Commands []Command
	// Events collects what happened to the game during this frame.
	Events []Event

	defers []func()
}

func newFrame(tick uint64, dt float64, game *tetris.Game, commands []Command) *Frame {
	return &Frame{
		Tick:      tick,
		DeltaTime: dt,
		Game:      game,
		Commands:  commands,
	}
}

// Defer queues fn to run after every system has executed.
func (f *Frame) Defer(fn func()) {
	f.defers = append(f.defers, fn)
}

// Emit records the outcome of a lock as a frame event.
func (f *Frame) Emit(report tetris.LockReport) {
	f.Events = append(f.Events, eventFor(report))
}

func (f *Frame) flush() {
	for _, fn := range f.defers {
		fn()
	}
	f.defers = f.defers[:0]
}
