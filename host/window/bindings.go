package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/kamstrup/intmap"
	"github.com/plus3/blockfall/loop"
)

// KeyState reports keyboard state for the current update.
type KeyState interface {
	JustPressed(key ebiten.Key) bool
	// PressDuration returns how many updates key has been held, 0 if up.
	PressDuration(key ebiten.Key) int
}

type inputKeyState struct{}

func (inputKeyState) JustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

func (inputKeyState) PressDuration(key ebiten.Key) int {
	return inpututil.KeyPressDuration(key)
}

const (
	defaultRepeatDelay = 12
	defaultRepeatRate  = 4
)

// Bindings maps keys to commands. A held key fires once when pressed and
// then repeats every RepeatRate updates after RepeatDelay updates.
type Bindings struct {
	RepeatDelay int
	RepeatRate  int

	keys     []ebiten.Key
	commands *intmap.Map[ebiten.Key, loop.Command]
}

// NewBindings creates an empty binding table.
func NewBindings() *Bindings {
	return &Bindings{
		RepeatDelay: defaultRepeatDelay,
		RepeatRate:  defaultRepeatRate,
		commands:    intmap.New[ebiten.Key, loop.Command](16),
	}
}

// DefaultBindings binds the arrow keys and WASD.
func DefaultBindings() *Bindings {
	b := NewBindings()
	b.Bind(ebiten.KeyArrowLeft, loop.MoveLeft)
	b.Bind(ebiten.KeyArrowRight, loop.MoveRight)
	b.Bind(ebiten.KeyArrowUp, loop.RotateCW)
	b.Bind(ebiten.KeyArrowDown, loop.SoftDrop)
	b.Bind(ebiten.KeyA, loop.MoveLeft)
	b.Bind(ebiten.KeyD, loop.MoveRight)
	b.Bind(ebiten.KeyW, loop.RotateCW)
	b.Bind(ebiten.KeyS, loop.SoftDrop)
	return b
}

// Bind maps key to cmd, replacing any previous binding for key.
func (b *Bindings) Bind(key ebiten.Key, cmd loop.Command) {
	if _, ok := b.commands.Get(key); !ok {
		b.keys = append(b.keys, key)
	}
	b.commands.Put(key, cmd)
}

// Unbind removes the binding for key.
func (b *Bindings) Unbind(key ebiten.Key) {
	if !b.commands.Del(key) {
		return
	}
	for i, k := range b.keys {
		if k == key {
			b.keys = append(b.keys[:i], b.keys[i+1:]...)
			break
		}
	}
}

// Lookup returns the command bound to key.
func (b *Bindings) Lookup(key ebiten.Key) (loop.Command, bool) {
	return b.commands.Get(key)
}

// Len returns the number of bound keys.
func (b *Bindings) Len() int {
	return b.commands.Len()
}

// Poll returns the commands triggered this update, in binding order.
func (b *Bindings) Poll(state KeyState) []loop.Command {
	var out []loop.Command
	for _, key := range b.keys {
		if state.JustPressed(key) || b.repeating(state.PressDuration(key)) {
			cmd, _ := b.commands.Get(key)
			out = append(out, cmd)
		}
	}
	return out
}

func (b *Bindings) repeating(held int) bool {
	if held <= b.RepeatDelay || b.RepeatRate <= 0 {
		return false
	}
	return (held-b.RepeatDelay)%b.RepeatRate == 0
}
