package mainloop

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TimeoutMsg is delivered to the Bubble Tea program when a scheduled
// source falls due. Feed it back through TeaLoop.Dispatch.
type TimeoutMsg struct {
	ID SourceID
}

// TeaLoop adapts Loop to a Bubble Tea program. Timers are tea.Tick
// commands; the callback itself runs inside Update via Dispatch, so it
// shares the goroutine of every other piece of UI state.
type TeaLoop struct {
	nextID  SourceID
	live    map[SourceID]func()
	pending []tea.Cmd
}

func NewTeaLoop() *TeaLoop {
	return &TeaLoop{live: make(map[SourceID]func())}
}

func (l *TeaLoop) TimeoutAdd(d time.Duration, fn func()) SourceID {
	l.nextID++
	id := l.nextID
	l.live[id] = fn
	l.pending = append(l.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return TimeoutMsg{ID: id}
	}))
	return id
}

// SourceRemove forgets the callback. The tick still arrives but Dispatch
// drops it.
func (l *TeaLoop) SourceRemove(id SourceID) bool {
	if _, ok := l.live[id]; !ok {
		return false
	}
	delete(l.live, id)
	return true
}

// Dispatch runs the callback for msg if its source is still live and
// reports whether it ran.
func (l *TeaLoop) Dispatch(msg TimeoutMsg) bool {
	fn, ok := l.live[msg.ID]
	if !ok {
		return false
	}
	delete(l.live, msg.ID)
	fn()
	return true
}

// Cmd drains the ticks queued since the last call. Update must return it
// so the runtime starts the timers.
func (l *TeaLoop) Cmd() tea.Cmd {
	if len(l.pending) == 0 {
		return nil
	}
	cmds := l.pending
	l.pending = nil
	return tea.Batch(cmds...)
}

// Live reports how many sources are waiting to fire.
func (l *TeaLoop) Live() int {
	return len(l.live)
}
