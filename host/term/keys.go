package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/loop"
)

// KeyCommand maps a key press to a game command. Arrow keys and WASD are
// both accepted.
func KeyCommand(ev *tcell.EventKey) (loop.Command, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return loop.MoveLeft, true
	case tcell.KeyRight:
		return loop.MoveRight, true
	case tcell.KeyUp:
		return loop.RotateCW, true
	case tcell.KeyDown:
		return loop.SoftDrop, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			return loop.MoveLeft, true
		case 'd', 'D':
			return loop.MoveRight, true
		case 'w', 'W':
			return loop.RotateCW, true
		case 's', 'S':
			return loop.SoftDrop, true
		}
	}
	return 0, false
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

func isRestart(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyRune && (ev.Rune() == 'r' || ev.Rune() == 'R')
}
