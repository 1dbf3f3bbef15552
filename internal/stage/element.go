package stage

// Point is a cell position on the terminal.
type Point struct {
	X, Y int
}

// Rect is a half-open cell rectangle.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Handler processes an event addressed to an element and reports whether
// it consumed it.
type Handler func(ev *Event) bool

// Element is a node in the stage tree. Only visible, reactive elements take
// part in hit testing.
type Element struct {
	Name     string
	Reactive bool

	parent   *Element
	children []*Element
	bounds   Rect
	hidden   bool
	handler  Handler
}

// Parent returns the enclosing element, nil for the root.
func (e *Element) Parent() *Element {
	if e == nil {
		return nil
	}
	return e.parent
}

// Children returns the direct children in insertion order.
func (e *Element) Children() []*Element {
	return e.children
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	if e == nil {
		return false
	}
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// SetBounds places the element. The tui layer calls this on every render.
func (e *Element) SetBounds(r Rect) {
	e.bounds = r
}

// Bounds returns the last placed rectangle.
func (e *Element) Bounds() Rect {
	return e.bounds
}

// SetVisible shows or hides the element and its subtree for hit testing.
func (e *Element) SetVisible(visible bool) {
	e.hidden = !visible
}

// Visible reports whether the element and all of its ancestors are shown.
func (e *Element) Visible() bool {
	for n := e; n != nil; n = n.parent {
		if n.hidden {
			return false
		}
	}
	return true
}

// SetHandler installs the element's own event handler.
func (e *Element) SetHandler(h Handler) {
	e.handler = h
}

func (e *Element) String() string {
	if e == nil {
		return "<nil>"
	}
	return e.Name
}
