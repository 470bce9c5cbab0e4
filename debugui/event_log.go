package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/loop"
)

// EventLog is a scheduler system that keeps the most recent lock events for
// display.
type EventLog struct {
	capacity int
	entries  []EventLogEntry
	next     int
	total    int
}

func NewEventLog(capacity int) *EventLog {
	return &EventLog{
		capacity: capacity,
		entries:  make([]EventLogEntry, 0, capacity),
	}
}

func (l *EventLog) Execute(frame *loop.Frame) {
	for _, ev := range frame.Events {
		l.add(EventLogEntry{
			Frame:   frame.Tick,
			Kind:    ev.Kind.String(),
			Shape:   ev.Report.Shape,
			Cleared: ev.Cleared(),
		})
	}
}

func (l *EventLog) add(entry EventLogEntry) {
	l.total++
	if len(l.entries) < l.capacity {
		l.entries = append(l.entries, entry)
		return
	}
	l.entries[l.next] = entry
	l.next = (l.next + 1) % l.capacity
}

// Entries returns the retained events, newest first.
func (l *EventLog) Entries() []EventLogEntry {
	out := make([]EventLogEntry, 0, len(l.entries))
	for i := len(l.entries) - 1; i >= 0; i-- {
		out = append(out, l.entries[(l.next+i)%len(l.entries)])
	}
	return out
}

// Total returns the number of events seen since the last reset.
func (l *EventLog) Total() int {
	return l.total
}

// Reset drops every entry.
func (l *EventLog) Reset() {
	l.entries = l.entries[:0]
	l.next = 0
	l.total = 0
}

// Render draws the event table.
func (l *EventLog) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(650, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(300, 250), imgui.CondOnce)

	if !imgui.BeginV("Lock Events", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Total: %d", l.total))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("LockEventTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Frame")
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Shape")
		imgui.TableSetupColumn("Cleared")
		imgui.TableHeadersRow()

		for _, entry := range l.Entries() {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entry.Frame))
			imgui.TableNextColumn()
			imgui.Text(entry.Kind)
			imgui.TableNextColumn()
			shapeText(entry.Shape, entry.Shape.String())
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entry.Cleared))
		}

		imgui.EndTable()
	}

	imgui.End()
}
