// Package window hosts a game in an Ebiten window. It maps keys to loop
// commands, drives the scheduler once per Ebiten update and draws the grid
// and active piece with the shape color table.
package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/kamstrup/intmap"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	// CellSize is the edge of one grid cell in pixels.
	CellSize = 32
	// BoardWidth and BoardHeight are the pixel size of the visible grid.
	BoardWidth  = tetris.GridWidth * CellSize
	BoardHeight = tetris.GridHeight * CellSize

	bannerHeight   = 60
	bannerAlpha    = 0.75
	bannerDuration = 0.5
)

var backgroundColor = color.RGBA{16, 16, 24, 255}

// Overlay is an optional debug layer drawn on top of the board.
type Overlay interface {
	// Attach is called for every new scheduler so the overlay can register
	// its own systems.
	Attach(scheduler *loop.Scheduler)
	BeginFrame()
	Render(scheduler *loop.Scheduler)
	EndFrame()
	Draw(screen *ebiten.Image)
	Layout(outsideWidth, outsideHeight int)
	WantsKeyboard() bool
}

// Config controls the window host.
type Config struct {
	Game     tetris.Config
	Bindings *Bindings
	Overlay  Overlay
}

// Game implements ebiten.Game for one play session at a time. Pressing R
// after a game over starts a fresh session with the next seed.
type Game struct {
	cfg      Config
	bindings *Bindings
	keys     KeyState
	overlay  Overlay

	scheduler *loop.Scheduler
	banner    *bannerSystem
	sessions  int

	cells *intmap.Map[tetris.ShapeId, *ebiten.Image]
}

// NewGame creates the host and starts the first session.
func NewGame(cfg Config) *Game {
	bindings := cfg.Bindings
	if bindings == nil {
		bindings = DefaultBindings()
	}

	g := &Game{
		cfg:      cfg,
		bindings: bindings,
		keys:     inputKeyState{},
		overlay:  cfg.Overlay,
		cells:    intmap.New[tetris.ShapeId, *ebiten.Image](tetris.ShapeCount),
	}
	g.newSession()
	return g
}

// Scheduler returns the scheduler of the current session.
func (g *Game) Scheduler() *loop.Scheduler {
	return g.scheduler
}

func (g *Game) newSession() {
	cfg := g.cfg.Game
	cfg.Seed += uint64(g.sessions)
	g.sessions++

	game := tetris.NewGame(cfg)
	g.scheduler = loop.NewScheduler(game, loop.NewCommandQueue())
	g.banner = &bannerSystem{}
	g.scheduler.Register(g.banner)

	if g.overlay != nil {
		g.overlay.Attach(g.scheduler)
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if !g.scheduler.Running() && inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.newSession()
	}

	if g.overlay != nil {
		g.overlay.BeginFrame()
	}

	if g.overlay == nil || !g.overlay.WantsKeyboard() {
		queue := g.scheduler.Queue()
		for _, cmd := range g.bindings.Poll(g.keys) {
			queue.Push(cmd)
		}
	}

	dt := 1.0 / float64(ebiten.TPS())
	g.scheduler.Once(dt)
	g.banner.update(float32(dt))

	if g.overlay != nil {
		g.overlay.Render(g.scheduler)
		g.overlay.EndFrame()
	}

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	game := g.scheduler.Game()
	grid := game.Grid()
	for row := 0; row < tetris.GridHeight; row++ {
		for col := 0; col < tetris.GridWidth; col++ {
			if s := grid.At(row, col); s != tetris.None {
				g.drawCell(screen, row, col, s)
			}
		}
	}

	if p := game.Active(); p != nil {
		for row, col := range p.Cells() {
			if row >= 0 {
				g.drawCell(screen, row, col, p.Shape)
			}
		}
	}

	g.banner.draw(screen)

	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.overlay != nil {
		g.overlay.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return BoardWidth, BoardHeight
}

// drawCell draws one block a pixel smaller than the cell for a checkered
// look.
func (g *Game) drawCell(screen *ebiten.Image, row, col int, s tetris.ShapeId) {
	img, ok := g.cells.Get(s)
	if !ok {
		img = ebiten.NewImage(CellSize-1, CellSize-1)
		img.Fill(s.Color())
		g.cells.Put(s, img)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(float64(col*CellSize), float64(row*CellSize))
	screen.DrawImage(img, opts)
}

// bannerSystem fades in the game-over banner after the final lock.
type bannerSystem struct {
	tween *gween.Tween
	alpha float32
}

func (s *bannerSystem) Execute(frame *loop.Frame) {
	for _, ev := range frame.Events {
		if ev.Kind == loop.EventGameOver {
			s.tween = gween.New(0, bannerAlpha, bannerDuration, ease.OutQuad)
		}
	}
}

func (s *bannerSystem) update(dt float32) {
	if s.tween == nil {
		return
	}
	alpha, done := s.tween.Update(dt)
	s.alpha = alpha
	if done {
		s.tween = nil
	}
}

func (s *bannerSystem) visible() bool {
	return s.alpha > 0
}

func (s *bannerSystem) draw(screen *ebiten.Image) {
	if !s.visible() {
		return
	}

	y := float32(BoardHeight-bannerHeight) / 2
	shade := color.RGBA{A: uint8(s.alpha * 255)}
	vector.DrawFilledRect(screen, 0, y, BoardWidth, bannerHeight, shade, false)

	const label = "GAME OVER!"
	// The debug font is 6x16 pixels per glyph.
	x := (BoardWidth - len(label)*6) / 2
	ebitenutil.DebugPrintAt(screen, label, x, BoardHeight/2-8)
	ebitenutil.DebugPrintAt(screen, "press R to play again", (BoardWidth-21*6)/2, BoardHeight/2+10)
}
