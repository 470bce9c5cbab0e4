// Package loop drives a tetris.Game at a fixed cadence.
//
// Input sources push Commands onto a CommandQueue from any goroutine. The
// Scheduler drains the queue at the start of every frame and runs its
// systems in order on the calling goroutine: input first, then gravity, then
// whatever the host registered (rendering, sound, debug windows). When the
// game ends the scheduler stops asking for frames.
package loop
