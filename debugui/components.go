package debugui

import "github.com/plus3/blockfall/tetris"

// GridInspectorWindow shows the grid, the active piece and the bag preview.
type GridInspectorWindow struct {
	previewCount int
	showHidden   bool
}

// PerformanceStatsWindow plots frame times and lists scheduler timings.
type PerformanceStatsWindow struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

// EventLogEntry is one recorded lock.
type EventLogEntry struct {
	Frame   uint64
	Kind    string
	Shape   tetris.ShapeId
	Cleared int
}
