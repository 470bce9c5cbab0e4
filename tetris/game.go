package tetris

// DefaultGravityDelay is the number of ticks the active piece waits between
// gravity steps. Gravity fires on the tick where the counter exceeds it.
const DefaultGravityDelay = 35

// Config controls a new game.
type Config struct {
	// Seed feeds the bag's random source.
	Seed uint64
	// GravityDelay overrides DefaultGravityDelay when positive.
	GravityDelay int
}

// DefaultConfig returns the standard configuration with the given seed.
func DefaultConfig(seed uint64) Config {
	return Config{
		Seed:         seed,
		GravityDelay: DefaultGravityDelay,
	}
}

// LockResult is the outcome of locking a piece.
type LockResult int

const (
	// Locked means the piece was written into the grid and a new piece spawned.
	Locked LockResult = iota
	// GameOver means the piece still had blocks in the hidden buffer. Nothing
	// was written and the game is permanently over.
	GameOver
)

func (r LockResult) String() string {
	switch r {
	case Locked:
		return "Locked"
	case GameOver:
		return "GameOver"
	default:
		return "LockResult(?)"
	}
}

// LockReport describes a single lock.
type LockReport struct {
	Result  LockResult
	Shape   ShapeId
	Cleared int
}

// Game owns the whole game state: grid, active piece, bag, tick counter and
// the terminal flag. It is not safe for concurrent use; callers serialize
// access through a single owner.
type Game struct {
	grid         *Grid
	active       *Piece
	bag          *Bag
	gravityDelay int
	counter      int
	ticks        uint64
	over         bool

	spawned      int
	locked       int
	linesCleared int
}

// NewGame creates a running game with an empty grid and a freshly spawned
// piece.
func NewGame(cfg Config) *Game {
	return NewGameWithBag(cfg, NewBag(cfg.Seed))
}

// NewGameWithBag is NewGame with a caller-supplied sequence generator.
func NewGameWithBag(cfg Config, bag *Bag) *Game {
	delay := cfg.GravityDelay
	if delay <= 0 {
		delay = DefaultGravityDelay
	}

	g := &Game{
		grid:         NewGrid(),
		bag:          bag,
		gravityDelay: delay,
	}
	g.active = g.spawn()
	return g
}

// Grid returns the playfield. Callers must not modify it.
func (g *Game) Grid() *Grid {
	return g.grid
}

// Active returns the falling piece, or nil once the game is over.
func (g *Game) Active() *Piece {
	return g.active
}

// Bag returns the sequence generator.
func (g *Game) Bag() *Bag {
	return g.bag
}

// Over reports whether the game has ended.
func (g *Game) Over() bool {
	return g.over
}

// Ticks returns the number of ticks processed while running.
func (g *Game) Ticks() uint64 {
	return g.ticks
}

// GravityCounter returns the ticks accumulated toward the next gravity step.
func (g *Game) GravityCounter() int {
	return g.counter
}

// Spawned returns the number of pieces spawned, including the current one.
func (g *Game) Spawned() int {
	return g.spawned
}

// LockedPieces returns the number of pieces written into the grid.
func (g *Game) LockedPieces() int {
	return g.locked
}

// LinesCleared returns the total number of rows removed.
func (g *Game) LinesCleared() int {
	return g.linesCleared
}

func (g *Game) spawn() *Piece {
	g.spawned++
	return NewPiece(g.bag.Next())
}

// Tick advances the game by one frame. Every gravityDelay+1 ticks the active
// piece moves down one row, locking when it cannot. The bool reports whether
// a lock happened.
func (g *Game) Tick() (LockReport, bool) {
	if g.over {
		return LockReport{}, false
	}

	g.ticks++
	g.counter++
	if g.counter <= g.gravityDelay {
		return LockReport{}, false
	}
	g.counter = 0

	return g.stepDown()
}

// MoveHorizontal shifts the active piece one column left (dir < 0) or right
// (dir > 0) if the destination is free.
func (g *Game) MoveHorizontal(dir int) bool {
	if g.over || dir == 0 {
		return false
	}
	if dir > 0 {
		dir = 1
	} else {
		dir = -1
	}

	p := g.active
	if !g.grid.IsValidMove(p.Matrix, p.Row, p.Col+dir) {
		return false
	}
	p.Col += dir
	return true
}

// Rotate turns the active piece clockwise in place. There are no wall kicks:
// a blocked rotation is simply discarded.
func (g *Game) Rotate() bool {
	if g.over {
		return false
	}

	p := g.active
	rotated := p.Matrix.Rotate()
	if !g.grid.IsValidMove(rotated, p.Row, p.Col) {
		return false
	}
	p.Matrix = rotated
	return true
}

// SoftDrop moves the active piece down one row, or locks it immediately when
// it is resting on something.
func (g *Game) SoftDrop() (LockReport, bool) {
	if g.over {
		return LockReport{}, false
	}
	return g.stepDown()
}

func (g *Game) stepDown() (LockReport, bool) {
	p := g.active
	if g.grid.IsValidMove(p.Matrix, p.Row+1, p.Col) {
		p.Row++
		return LockReport{}, false
	}
	return g.lock(), true
}

// lock commits the active piece. Every block is checked before anything is
// written, so a game-over lock leaves the grid untouched. A block still in
// the hidden rows or resting on an occupied cell ends the game; the latter
// happens when a piece spawns over the stack and cannot drop.
func (g *Game) lock() LockReport {
	p := g.active
	report := LockReport{Shape: p.Shape}

	for row, col := range p.Cells() {
		if row < 0 || g.grid.Occupied(row, col) {
			g.over = true
			g.active = nil
			report.Result = GameOver
			return report
		}
	}

	for row, col := range p.Cells() {
		g.grid.Set(row, col, p.Shape)
	}
	g.locked++

	report.Cleared = g.grid.ClearFullRows()
	g.linesCleared += report.Cleared

	g.active = g.spawn()
	report.Result = Locked
	return report
}
