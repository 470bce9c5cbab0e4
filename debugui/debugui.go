// Package debugui provides Dear ImGui inspector windows for a running game:
// the grid and active piece, the upcoming shapes, recent lock events and the
// scheduler's per-system timings.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/loop"
)

// ImguiInputState tracks whether Dear ImGui is consuming mouse or keyboard
// input this frame.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Debugger owns the inspector windows. Call Render once per host update
// between the ImGui backend's BeginFrame and EndFrame.
type Debugger struct {
	InputState ImguiInputState

	inspector   *GridInspectorWindow
	events      *EventLog
	performance *PerformanceStatsWindow
	frames      *FrameTimer
}

// NewDebugger creates the standard window set.
func NewDebugger() *Debugger {
	return &Debugger{
		inspector:   NewGridInspectorWindow(6),
		events:      NewEventLog(64),
		performance: NewPerformanceStatsWindow(120),
		frames:      NewFrameTimer(),
	}
}

// Attach registers the debugger's systems on a new scheduler. The event log
// is cleared since it belongs to the previous session.
func (d *Debugger) Attach(scheduler *loop.Scheduler) {
	d.events.Reset()
	scheduler.Register(d.events)
}

// Render draws every window for the scheduler's current state.
func (d *Debugger) Render(scheduler *loop.Scheduler) {
	io := imgui.CurrentIO()
	d.InputState.WantCaptureMouse = io.WantCaptureMouse()
	d.InputState.WantCaptureKeyboard = io.WantCaptureKeyboard()

	d.inspector.Render(scheduler.Game())
	d.events.Render()
	d.performance.Render(scheduler.Stats(), d.frames.GetDeltaTime())
}
