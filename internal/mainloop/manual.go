package mainloop

import (
	"sort"
	"time"
)

type manualSource struct {
	id       SourceID
	deadline time.Duration
	fn       func()
}

// ManualLoop is a Loop driven by a virtual clock. Tests advance time
// explicitly and observe exactly which callbacks fire.
type ManualLoop struct {
	now     time.Duration
	nextID  SourceID
	sources []*manualSource
}

// NewManualLoop returns a loop whose clock starts at zero.
func NewManualLoop() *ManualLoop {
	return &ManualLoop{}
}

func (l *ManualLoop) TimeoutAdd(d time.Duration, fn func()) SourceID {
	l.nextID++
	l.sources = append(l.sources, &manualSource{id: l.nextID, deadline: l.now + d, fn: fn})
	return l.nextID
}

func (l *ManualLoop) SourceRemove(id SourceID) bool {
	for i, s := range l.sources {
		if s.id == id {
			l.sources = append(l.sources[:i], l.sources[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves the clock forward by d and fires every callback whose
// deadline has passed, earliest first. Callbacks scheduled while advancing
// fire in the same call if they fall due before the new time.
func (l *ManualLoop) Advance(d time.Duration) {
	target := l.now + d
	for {
		next := l.due(target)
		if next == nil {
			break
		}
		l.now = next.deadline
		l.SourceRemove(next.id)
		next.fn()
	}
	l.now = target
}

func (l *ManualLoop) due(target time.Duration) *manualSource {
	if len(l.sources) == 0 {
		return nil
	}
	sorted := make([]*manualSource, len(l.sources))
	copy(sorted, l.sources)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].deadline < sorted[j].deadline
	})
	if sorted[0].deadline > target {
		return nil
	}
	return sorted[0]
}

// Now returns the virtual time elapsed since the loop was created.
func (l *ManualLoop) Now() time.Duration {
	return l.now
}

// Pending reports how many callbacks are scheduled.
func (l *ManualLoop) Pending() int {
	return len(l.sources)
}
