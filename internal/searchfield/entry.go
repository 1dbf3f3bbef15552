package searchfield

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/overview/internal/signal"
	"github.com/pders01/overview/internal/stage"
)

// Entry is the text-input widget behind the search field. It is made of a
// non-reactive box holding the text element (the focus target) and the
// clear icon.
type Entry struct {
	surface stage.InputSurface
	input   textinput.Model
	hint    string

	box  *stage.Element
	text *stage.Element
	icon *stage.Element

	hover         bool
	cursorVisible bool

	focusConn signal.Connection

	// TextChanged fires with the new stored text after every change.
	TextChanged signal.Signal[string]
	// Activate fires when Enter is pressed while the entry has focus.
	Activate signal.Signal[struct{}]
	// IconClicked fires when the clear icon is pressed.
	IconClicked signal.Signal[struct{}]
}

// NewEntry creates the entry's elements under parent.
func NewEntry(st *stage.Stage, parent *stage.Element, hint string) *Entry {
	ti := textinput.New()
	ti.Placeholder = hint
	ti.Prompt = ""
	ti.CharLimit = 256

	e := &Entry{
		surface:       st,
		input:         ti,
		hint:          hint,
		box:           st.NewElement("search-entry", parent),
		cursorVisible: true,
	}
	e.text = st.NewElement("search-entry-text", e.box)
	e.text.Reactive = true
	e.text.SetHandler(e.handleEvent)

	e.icon = st.NewElement("search-entry-clear", e.box)
	e.icon.SetVisible(false)
	e.icon.SetHandler(func(ev *stage.Event) bool {
		if ev.Kind != stage.ButtonPress {
			return false
		}
		e.IconClicked.Emit(struct{}{})
		return true
	})

	e.focusConn = signal.Bind(st.ConnectFocus(func(focus *stage.Element) {
		if focus == e.text {
			e.input.Focus()
		} else {
			e.input.Blur()
		}
	}), st.Disconnect)
	return e
}

// Box is the container element.
func (e *Entry) Box() *stage.Element { return e.box }

// TextElement is the element that takes key focus.
func (e *Entry) TextElement() *stage.Element { return e.text }

// Icon is the clear affordance.
func (e *Entry) Icon() *stage.Element { return e.icon }

// Text returns the stored text, never the hint.
func (e *Entry) Text() string {
	return e.input.Value()
}

// DisplayedText returns what the text element shows: the hint while the
// entry is empty and unfocused, the stored text otherwise.
func (e *Entry) DisplayedText() string {
	if e.input.Value() == "" && e.surface.KeyFocus() != e.text {
		return e.hint
	}
	return e.input.Value()
}

// SetText replaces the stored text.
func (e *Entry) SetText(s string) {
	prev := e.input.Value()
	e.input.SetValue(s)
	if e.input.Value() != prev {
		e.TextChanged.Emit(e.input.Value())
	}
}

// SetSelection moves the cursor to pos and drops any selection.
func (e *Entry) SetSelection(pos int) {
	e.input.SetCursor(pos)
}

func (e *Entry) SetCursorVisible(visible bool) {
	e.cursorVisible = visible
	if visible {
		e.input.Cursor.SetMode(cursor.CursorStatic)
	} else {
		e.input.Cursor.SetMode(cursor.CursorHide)
	}
}

func (e *Entry) CursorVisible() bool { return e.cursorVisible }

func (e *Entry) SetHover(hover bool) { e.hover = hover }

func (e *Entry) Hovered() bool { return e.hover }

// Deliver hands ev to the widget's own input handling. It never goes back
// through the stage, so capture handlers do not see it again.
func (e *Entry) Deliver(ev *stage.Event) bool {
	return e.handleEvent(ev)
}

func (e *Entry) handleEvent(ev *stage.Event) bool {
	switch ev.Kind {
	case stage.ButtonPress:
		e.surface.SetKeyFocus(e.text)
		return true
	case stage.KeyPress:
	default:
		return false
	}

	switch ev.Key.Type {
	case tea.KeyEnter:
		e.Activate.Emit(struct{}{})
		return true
	case tea.KeyEscape, tea.KeyUp, tea.KeyDown, tea.KeyTab, tea.KeyShiftTab:
		return false
	}

	prev := e.input.Value()
	e.input, _ = e.input.Update(tea.KeyMsg(ev.Key))
	if e.input.Value() != prev {
		e.TextChanged.Emit(e.input.Value())
	}
	return true
}

// Destroy stops following the stage's key focus. Safe to repeat.
func (e *Entry) Destroy() {
	e.focusConn.Release()
}

// SetWidth sets the visible width of the text area in cells.
func (e *Entry) SetWidth(w int) {
	e.input.Width = w
}

// View renders the text area, with the clear icon when visible.
func (e *Entry) View() string {
	out := e.input.View()
	if e.icon.Visible() {
		out += " ✕"
	}
	return out
}
