package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
)

const (
	// cellWidth is the number of terminal columns per grid cell, which keeps
	// blocks roughly square.
	cellWidth = 2

	boardCols = tetris.GridWidth * cellWidth
	boardRows = tetris.GridHeight
)

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	bannerStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack).Bold(true)
)

// Renderer draws a game onto a tcell screen. The board's top-left border
// corner sits at (OriginX, OriginY).
type Renderer struct {
	screen  tcell.Screen
	OriginX int
	OriginY int
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// CellAt returns the screen coordinates of the left half of grid cell
// (row, col).
func (r *Renderer) CellAt(row, col int) (int, int) {
	return r.OriginX + 1 + col*cellWidth, r.OriginY + 1 + row
}

func shapeStyle(s tetris.ShapeId) tcell.Style {
	c := s.Color()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

// Draw renders the whole frame and shows it.
func (r *Renderer) Draw(game *tetris.Game) {
	r.screen.Clear()
	r.drawBorder()

	grid := game.Grid()
	for row := 0; row < tetris.GridHeight; row++ {
		for col := 0; col < tetris.GridWidth; col++ {
			if s := grid.At(row, col); s != tetris.None {
				r.drawCell(row, col, s)
			}
		}
	}

	if p := game.Active(); p != nil {
		for row, col := range p.Cells() {
			if row >= 0 {
				r.drawCell(row, col, p.Shape)
			}
		}
	}

	helpX := r.OriginX + boardCols + 4
	r.drawText(helpX, r.OriginY+1, "left/right  move", textStyle)
	r.drawText(helpX, r.OriginY+2, "up          rotate", textStyle)
	r.drawText(helpX, r.OriginY+3, "down        drop", textStyle)
	r.drawText(helpX, r.OriginY+4, "q           quit", textStyle)

	if game.Over() {
		r.drawBanner()
	}

	r.screen.Show()
}

func (r *Renderer) drawCell(row, col int, s tetris.ShapeId) {
	x, y := r.CellAt(row, col)
	style := shapeStyle(s)
	for i := 0; i < cellWidth; i++ {
		r.screen.SetContent(x+i, y, '█', nil, style)
	}
}

func (r *Renderer) drawBorder() {
	left, top := r.OriginX, r.OriginY
	right, bottom := left+boardCols+1, top+boardRows+1

	for x := left + 1; x < right; x++ {
		r.screen.SetContent(x, bottom, '─', nil, borderStyle)
	}
	for y := top; y < bottom; y++ {
		r.screen.SetContent(left, y, '│', nil, borderStyle)
		r.screen.SetContent(right, y, '│', nil, borderStyle)
	}
	r.screen.SetContent(left, bottom, '└', nil, borderStyle)
	r.screen.SetContent(right, bottom, '┘', nil, borderStyle)
}

func (r *Renderer) drawBanner() {
	y := r.OriginY + 1 + boardRows/2 - 1
	for dy := 0; dy < 3; dy++ {
		for x := r.OriginX + 1; x <= r.OriginX+boardCols; x++ {
			r.screen.SetContent(x, y+dy, ' ', nil, bannerStyle)
		}
	}
	r.drawCentered(y, "GAME OVER!", bannerStyle)
	r.drawCentered(y+2, "r: play again", bannerStyle)
}

func (r *Renderer) drawCentered(y int, text string, style tcell.Style) {
	x := r.OriginX + 1 + (boardCols-len(text))/2
	r.drawText(x, y, text, style)
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range text {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

// RenderSystem redraws the screen at the end of every frame.
type RenderSystem struct {
	Renderer *Renderer
}

func (s *RenderSystem) Execute(frame *loop.Frame) {
	s.Renderer.Draw(frame.Game)
}
