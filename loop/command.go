package loop

import (
	"fmt"
	"sync"
)

// Command is a discrete player action.
type Command uint8

const (
	MoveLeft Command = iota
	MoveRight
	RotateCW
	SoftDrop
)

var commandNames = [...]string{
	MoveLeft:  "MoveLeft",
	MoveRight: "MoveRight",
	RotateCW:  "RotateCW",
	SoftDrop:  "SoftDrop",
}

func (c Command) String() string {
	if int(c) < len(commandNames) {
		return commandNames[c]
	}
	return fmt.Sprintf("Command(%d)", uint8(c))
}

// CommandQueue buffers commands until the scheduler drains them at the start
// of a frame. Push may be called from any goroutine; Drain belongs to the
// single goroutine that owns the game.
type CommandQueue struct {
	mu      sync.Mutex
	pending []Command
}

// NewCommandQueue creates an empty queue.
func NewCommandQueue() *CommandQueue {
	return &CommandQueue{
		pending: make([]Command, 0, 8),
	}
}

// Push appends a command.
func (q *CommandQueue) Push(c Command) {
	q.mu.Lock()
	q.pending = append(q.pending, c)
	q.mu.Unlock()
}

// Drain removes and returns every pending command in arrival order.
func (q *CommandQueue) Drain() []Command {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return nil
	}
	out := q.pending
	q.pending = make([]Command, 0, cap(out))
	return out
}

// Len returns the number of pending commands.
func (q *CommandQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
