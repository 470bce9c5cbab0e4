package loop

import (
	"context"
	"reflect"
	"time"

	"github.com/plus3/blockfall/tetris"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	Frames          uint64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler drives one game. Each frame it drains the command queue, applies
// the commands, ticks gravity and then runs any host systems. Once the game
// is over the scheduler stops; a new game needs a new Scheduler.
type Scheduler struct {
	game        *tetris.Game
	queue       *CommandQueue
	input       *InputSystem
	frames      uint64
	systems     []System
	systemStats []*systemStatsInternal
}

// NewScheduler creates a scheduler for game fed by queue. The input and
// gravity systems are registered first; host systems registered later run
// after them and see the updated state.
func NewScheduler(game *tetris.Game, queue *CommandQueue) *Scheduler {
	s := &Scheduler{
		game:    game,
		queue:   queue,
		input:   &InputSystem{},
		systems: make([]System, 0, 4),
	}
	s.Register(s.input)
	s.Register(&GravitySystem{})
	return s
}

// Register appends a system to the frame.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Game returns the game being driven.
func (s *Scheduler) Game() *tetris.Game {
	return s.game
}

// Queue returns the command queue feeding the game.
func (s *Scheduler) Queue() *CommandQueue {
	return s.queue
}

// Input returns the built-in input system.
func (s *Scheduler) Input() *InputSystem {
	return s.input
}

// Running reports whether the scheduler will accept another frame.
func (s *Scheduler) Running() bool {
	return !s.game.Over()
}

// Once runs a single frame and reports whether another frame should be
// requested. After the game ends it does nothing and returns false.
func (s *Scheduler) Once(dt float64) bool {
	if s.game.Over() {
		return false
	}

	frame := newFrame(s.frames, dt, s.game, s.queue.Drain())
	s.frames++

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	frame.flush()
	return !s.game.Over()
}

// Run executes frames at the given interval until the game ends, returning
// nil, or until ctx is cancelled, returning ctx.Err().
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	if !s.Running() {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			if !s.Once(dt) {
				return nil
			}
		}
	}
}

// Stats returns statistics about system execution.
func (s *Scheduler) Stats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
