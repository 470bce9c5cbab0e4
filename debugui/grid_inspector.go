package debugui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/tetris"
)

func NewGridInspectorWindow(previewCount int) *GridInspectorWindow {
	return &GridInspectorWindow{
		previewCount: previewCount,
	}
}

// Render draws the inspector window.
func (gi *GridInspectorWindow) Render(game *tetris.Game) {
	imgui.SetNextWindowPosV(imgui.NewVec2(340, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(300, 520), imgui.CondOnce)

	if !imgui.BeginV("Game State", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	state := "Running"
	if game.Over() {
		state = "Over"
	}
	imgui.Text(fmt.Sprintf("State: %s", state))
	imgui.Text(fmt.Sprintf("Ticks: %d (gravity %d)", game.Ticks(), game.GravityCounter()))
	imgui.Text(fmt.Sprintf("Spawned: %d  Locked: %d  Lines: %d",
		game.Spawned(), game.LockedPieces(), game.LinesCleared()))

	imgui.Separator()
	if p := game.Active(); p != nil {
		imgui.Text(fmt.Sprintf("Active: %s at row %d, col %d", p.Shape, p.Row, p.Col))
		imgui.Indent()
		for _, line := range strings.Split(p.Matrix.String(), "\n") {
			imgui.Text(line)
		}
		imgui.Unindent()
	} else {
		imgui.Text("Active: none")
	}

	imgui.Separator()
	imgui.Text("Next:")
	for _, s := range game.Bag().Peek(gi.previewCount) {
		imgui.SameLine()
		shapeText(s, s.String())
	}

	imgui.Separator()
	imgui.Checkbox("Show hidden rows", &gi.showHidden)
	gi.renderGrid(game)

	imgui.End()
}

func (gi *GridInspectorWindow) renderGrid(game *tetris.Game) {
	first := 0
	if gi.showHidden {
		first = tetris.TopRow
	}

	cells := inspectorCells(game, first)
	for i, row := range cells {
		imgui.Text(fmt.Sprintf("%3d ", first+i))
		for _, s := range row {
			imgui.SameLine()
			if s == tetris.None {
				imgui.Text(".")
				continue
			}
			shapeText(s, "#")
		}
	}
}

// inspectorCells returns the grid rows from first to the bottom with the
// active piece overlaid.
func inspectorCells(game *tetris.Game, first int) [][tetris.GridWidth]tetris.ShapeId {
	grid := game.Grid()
	rows := make([][tetris.GridWidth]tetris.ShapeId, tetris.GridHeight-first)
	for i := range rows {
		for col := 0; col < tetris.GridWidth; col++ {
			rows[i][col] = grid.At(first+i, col)
		}
	}

	if p := game.Active(); p != nil {
		for row, col := range p.Cells() {
			if row >= first && tetris.InBounds(row, col) {
				rows[row-first][col] = p.Shape
			}
		}
	}
	return rows
}

func shapeText(s tetris.ShapeId, text string) {
	imgui.PushStyleColorVec4(imgui.ColText, colorVec4(s.Color()))
	imgui.Text(text)
	imgui.PopStyleColor()
}

func colorVec4(c color.RGBA) imgui.Vec4 {
	return imgui.NewVec4(
		float32(c.R)/255.0,
		float32(c.G)/255.0,
		float32(c.B)/255.0,
		float32(c.A)/255.0,
	)
}
