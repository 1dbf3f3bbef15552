// Package mainloop schedules deferred callbacks on the UI loop.
//
// Callbacks are never run concurrently with the rest of the program: a
// Loop only fires them from the goroutine that owns the UI state.
package mainloop

import "time"

// SourceID identifies a scheduled callback. Zero is never a live source.
type SourceID uint64

// Loop is the scheduling surface consumed by the overview components.
type Loop interface {
	// TimeoutAdd runs fn once after d has elapsed.
	TimeoutAdd(d time.Duration, fn func()) SourceID
	// SourceRemove cancels a scheduled callback. Once it returns, fn will
	// not run. Unknown or already fired ids report false.
	SourceRemove(id SourceID) bool
}
