package loop

import (
	"fmt"

	"github.com/plus3/blockfall/tetris"
)

// EventKind classifies frame events.
type EventKind int

const (
	// EventLocked fires when a piece was written into the grid.
	EventLocked EventKind = iota
	// EventGameOver fires once, on the lock that ended the game.
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventLocked:
		return "Locked"
	case EventGameOver:
		return "GameOver"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event reports a lock that happened during a frame.
type Event struct {
	Kind   EventKind
	Report tetris.LockReport
}

// Cleared returns the number of rows removed by the lock.
func (e Event) Cleared() int {
	return e.Report.Cleared
}

func eventFor(report tetris.LockReport) Event {
	kind := EventLocked
	if report.Result == tetris.GameOver {
		kind = EventGameOver
	}
	return Event{Kind: kind, Report: report}
}
