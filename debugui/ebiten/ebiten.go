// Package ebiten provides Dear ImGui backend integration for the Ebiten game
// engine, wrapping the debug windows as an overlay for the window host.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/debugui"
	"github.com/plus3/blockfall/loop"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// Overlay draws the debugger windows on top of the board.
type Overlay struct {
	Backend  ImguiBackend
	Debugger *debugui.Debugger
}

// NewOverlay creates the ImGui backend and its Ebiten window. It must be
// called before ebiten.RunGame.
func NewOverlay(title string, width, height int) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return &Overlay{
		Backend:  ImguiBackend{EbitenBackend: backend},
		Debugger: debugui.NewDebugger(),
	}
}

func (o *Overlay) Attach(scheduler *loop.Scheduler) {
	o.Debugger.Attach(scheduler)
}

func (o *Overlay) BeginFrame() {
	o.Backend.BeginFrame()
}

func (o *Overlay) Render(scheduler *loop.Scheduler) {
	o.Debugger.Render(scheduler)
}

func (o *Overlay) EndFrame() {
	o.Backend.EndFrame()
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.Backend.Draw(screen)
}

func (o *Overlay) Layout(outsideWidth, outsideHeight int) {
	o.Backend.Layout(outsideWidth, outsideHeight)
}

// WantsKeyboard reports whether an ImGui widget had keyboard focus on the
// previous frame.
func (o *Overlay) WantsKeyboard() bool {
	return o.Debugger.InputState.WantCaptureKeyboard
}
