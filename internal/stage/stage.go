// Package stage is the global input surface of the overview: an element
// tree with key focus, a pointer position, hit testing, and the capture
// and key-press signals every other component hooks into.
package stage

import (
	"github.com/pders01/overview/internal/debuglog"
	"github.com/pders01/overview/internal/signal"
)

// SignalName selects one of the stage's event signals.
type SignalName int

const (
	// SignalCapturedEvent runs before normal dispatch for every event.
	SignalCapturedEvent SignalName = iota
	// SignalKeyPressEvent runs for key presses nobody below the stage
	// consumed.
	SignalKeyPressEvent
)

// InputSurface is what the search field and the tab switcher need from
// the stage.
type InputSurface interface {
	Connect(name SignalName, h Handler) signal.HandlerID
	ConnectFocus(fn func(*Element)) signal.HandlerID
	Disconnect(id signal.HandlerID) bool
	Root() *Element
	KeyFocus() *Element
	SetKeyFocus(e *Element)
	Pointer() Point
	ActorAt(p Point) *Element
}

// Stage implements InputSurface.
type Stage struct {
	root     *Element
	focus    *Element
	pointer  Point
	captured signal.Chain[*Event]
	keyPress signal.Chain[*Event]
	focusSig signal.Signal[*Element]
}

var _ InputSurface = (*Stage)(nil)

func New() *Stage {
	return &Stage{root: &Element{Name: "stage"}}
}

// Root returns the stage element, the neutral focus target.
func (s *Stage) Root() *Element {
	return s.root
}

// NewElement creates a child of parent, or of the root if parent is nil.
func (s *Stage) NewElement(name string, parent *Element) *Element {
	if parent == nil {
		parent = s.root
	}
	e := &Element{Name: name, parent: parent}
	parent.children = append(parent.children, e)
	return e
}

func (s *Stage) Connect(name SignalName, h Handler) signal.HandlerID {
	switch name {
	case SignalCapturedEvent:
		return s.captured.Connect(h)
	case SignalKeyPressEvent:
		return s.keyPress.Connect(h)
	default:
		return 0
	}
}

// ConnectFocus registers fn for key focus changes.
func (s *Stage) ConnectFocus(fn func(*Element)) signal.HandlerID {
	return s.focusSig.Connect(fn)
}

// Disconnect removes a handler from whichever signal holds it.
func (s *Stage) Disconnect(id signal.HandlerID) bool {
	return s.captured.Disconnect(id) || s.keyPress.Disconnect(id) || s.focusSig.Disconnect(id)
}

// HandlerCount reports how many handlers are attached to a signal.
func (s *Stage) HandlerCount(name SignalName) int {
	switch name {
	case SignalCapturedEvent:
		return s.captured.Len()
	case SignalKeyPressEvent:
		return s.keyPress.Len()
	default:
		return 0
	}
}

// KeyFocus returns the element owning keyboard input; the root when no
// other element does.
func (s *Stage) KeyFocus() *Element {
	if s.focus == nil {
		return s.root
	}
	return s.focus
}

// SetKeyFocus moves keyboard focus. Nil returns it to the root.
func (s *Stage) SetKeyFocus(e *Element) {
	if e == s.root {
		e = nil
	}
	if e == s.focus {
		return
	}
	s.focus = e
	debuglog.Debugf("stage: key focus -> %s", s.KeyFocus())
	s.focusSig.Emit(s.KeyFocus())
}

func (s *Stage) Pointer() Point {
	return s.pointer
}

// SetPointer records the last known pointer position.
func (s *Stage) SetPointer(p Point) {
	s.pointer = p
}

// ActorAt returns the deepest visible reactive element under p, or nil.
func (s *Stage) ActorAt(p Point) *Element {
	return pick(s.root, p)
}

func pick(e *Element, p Point) *Element {
	if e.hidden {
		return nil
	}
	// Later siblings are drawn on top.
	for i := len(e.children) - 1; i >= 0; i-- {
		if hit := pick(e.children[i], p); hit != nil {
			return hit
		}
	}
	if e.Reactive && e.bounds.Contains(p) {
		return e
	}
	return nil
}

// Dispatch runs an event through the stage and reports whether it was
// consumed.
//
// The target is fixed before the capture phase. A capture handler that
// moves focus and forwards the event to the new owner does not cause a
// second delivery here.
func (s *Stage) Dispatch(ev *Event) bool {
	switch ev.Kind {
	case KeyPress, KeyRelease:
		if ev.Source == nil {
			ev.Source = s.KeyFocus()
		}
	default:
		s.pointer = ev.Position
		if ev.Source == nil {
			ev.Source = s.ActorAt(ev.Position)
		}
	}
	if ev.Source == nil {
		ev.Source = s.root
	}

	if s.captured.Emit(ev) {
		debuglog.Debugf("stage: %s on %s consumed in capture", ev.Kind, ev.Source)
		return true
	}

	for n := ev.Source; n != nil && n != s.root; n = n.parent {
		if n.handler != nil && n.handler(ev) {
			return true
		}
	}

	if ev.Kind == KeyPress {
		return s.keyPress.Emit(ev)
	}
	return false
}
