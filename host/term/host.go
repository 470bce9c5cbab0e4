// Package term runs the game in a terminal using tcell, with optional tone
// cues played through beep.
package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
)

// DefaultFPS matches the frame rate the gravity delay is tuned for.
const DefaultFPS = 60

type Config struct {
	Game tetris.Config
	FPS  int
}

// Host owns the screen and the current session. Key presses that map to
// commands are pushed onto the queue from the polling goroutine; everything
// else is handled on the goroutine that calls Run.
type Host struct {
	screen    tcell.Screen
	config    Config
	renderer  *Renderer
	sound     *Sound
	queue     *loop.CommandQueue
	scheduler *loop.Scheduler
	sessions  int
}

// New prepares a host on an initialized screen. sound may be nil.
func New(screen tcell.Screen, config Config, sound *Sound) *Host {
	if config.FPS <= 0 {
		config.FPS = DefaultFPS
	}
	if sound == nil {
		sound = NewSound()
	}

	h := &Host{
		screen:   screen,
		config:   config,
		renderer: NewRenderer(screen),
		sound:    sound,
		queue:    loop.NewCommandQueue(),
	}
	h.newSession()
	return h
}

func (h *Host) Scheduler() *loop.Scheduler {
	return h.scheduler
}

func (h *Host) Sessions() int {
	return h.sessions
}

// newSession starts a fresh game. Each restart bumps the seed so successive
// games differ.
func (h *Host) newSession() {
	cfg := h.config.Game
	cfg.Seed += uint64(h.sessions)
	h.sessions++

	h.queue.Drain()
	h.scheduler = loop.NewScheduler(tetris.NewGame(cfg), h.queue)
	h.scheduler.Register(h.sound)
	h.scheduler.Register(&RenderSystem{Renderer: h.renderer})
}

// Run drives the game until the player quits or ctx is cancelled. Quitting
// returns nil.
func (h *Host) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 100)
	go h.poll(events, done)

	ticker := time.NewTicker(time.Second / time.Duration(h.config.FPS))
	defer ticker.Stop()

	h.renderer.Draw(h.scheduler.Game())
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			if !h.handle(ev) {
				return nil
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			h.scheduler.Once(dt)
		}
	}
}

func (h *Host) poll(events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return
		}

		if key, ok := ev.(*tcell.EventKey); ok {
			if cmd, ok := KeyCommand(key); ok {
				h.queue.Push(cmd)
				continue
			}
		}

		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// handle reports whether the host should keep running.
func (h *Host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if isQuit(ev) {
			return false
		}
		if isRestart(ev) && !h.scheduler.Running() {
			h.newSession()
			h.renderer.Draw(h.scheduler.Game())
		}

	case *tcell.EventResize:
		h.screen.Sync()
		h.renderer.Draw(h.scheduler.Game())
	}
	return true
}
