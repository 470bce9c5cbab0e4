package loop

import "github.com/plus3/blockfall/tetris"

// InputSystem applies the frame's commands to the game in arrival order.
// Commands arriving after the game ended are dropped.
type InputSystem struct {
	Applied  int64
	Rejected int64
}

func (s *InputSystem) Execute(frame *Frame) {
	game := frame.Game

	for _, cmd := range frame.Commands {
		if game.Over() {
			return
		}

		if s.apply(frame, game, cmd) {
			s.Applied++
		} else {
			s.Rejected++
		}
	}
}

func (s *InputSystem) apply(frame *Frame, game *tetris.Game, cmd Command) bool {
	switch cmd {
	case MoveLeft:
		return game.MoveHorizontal(-1)
	case MoveRight:
		return game.MoveHorizontal(+1)
	case RotateCW:
		return game.Rotate()
	case SoftDrop:
		if report, locked := game.SoftDrop(); locked {
			frame.Emit(report)
		}
		return true
	default:
		panic("unknown command: " + cmd.String())
	}
}

// GravitySystem advances the game by one tick per frame.
type GravitySystem struct{}

func (s *GravitySystem) Execute(frame *Frame) {
	if report, locked := frame.Game.Tick(); locked {
		frame.Emit(report)
	}
}
