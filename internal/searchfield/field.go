// Package searchfield owns the overview's search entry and the capture
// filter that decides, for every input event, whether it belongs to the
// search, to the shell chrome, or to some other surface that must be left
// alone.
package searchfield

import (
	"strings"

	"github.com/pders01/overview/internal/debuglog"
	"github.com/pders01/overview/internal/signal"
	"github.com/pders01/overview/internal/stage"
)

// ChromeFunc reports whether an element belongs to the always-on-top
// shell chrome (the panel).
type ChromeFunc func(*stage.Element) bool

// Field wraps an Entry with the overview's find-as-you-type behaviour.
type Field struct {
	surface  stage.InputSurface
	entry    *Entry
	isChrome ChromeFunc

	capture   signal.Connection
	focusConn signal.Connection
	textConn  signal.Connection
	iconConn  signal.Connection
}

func New(surface stage.InputSurface, entry *Entry, isChrome ChromeFunc) *Field {
	if isChrome == nil {
		isChrome = func(*stage.Element) bool { return false }
	}
	f := &Field{surface: surface, entry: entry, isChrome: isChrome}

	f.focusConn = signal.Bind(surface.ConnectFocus(f.updateCursorVisibility), surface.Disconnect)
	f.textConn = signal.Bind(entry.TextChanged.Connect(func(string) {
		active := f.IsActive()
		entry.Icon().Reactive = active
		entry.Icon().SetVisible(active)
	}), entry.TextChanged.Disconnect)
	f.iconConn = signal.Bind(entry.IconClicked.Connect(func(struct{}) { f.Reset() }), entry.IconClicked.Disconnect)
	return f
}

// Entry returns the wrapped widget.
func (f *Field) Entry() *Entry {
	return f.entry
}

func (f *Field) updateCursorVisibility(focus *stage.Element) {
	f.entry.SetCursorVisible(focus == f.surface.Root() || focus == f.entry.TextElement())
}

// Show installs the capture filter.
func (f *Field) Show() {
	if !f.capture.Active() {
		f.capture = signal.Bind(f.surface.Connect(stage.SignalCapturedEvent, f.onCapturedEvent), f.surface.Disconnect)
	}
	f.entry.SetCursorVisible(true)
	f.entry.SetSelection(0)
}

// Hide removes the capture filter. Safe to call when it is not installed.
func (f *Field) Hide() {
	f.capture.Release()
}

// Shown reports whether the capture filter is installed.
func (f *Field) Shown() bool {
	return f.capture.Active()
}

// Reset clears the text and hands key focus back to the stage.
func (f *Field) Reset() {
	// The box is never hovered directly, only its text element and icon.
	hit := f.surface.ActorAt(f.surface.Pointer())
	f.entry.SetHover(hit != nil && hit.Parent() == f.entry.Box())

	f.entry.SetText("")
	f.surface.SetKeyFocus(nil)

	f.entry.SetCursorVisible(true)
	f.entry.SetSelection(0)
}

// GetText returns the search text without surrounding whitespace.
func (f *Field) GetText() string {
	return strings.TrimSpace(f.entry.Text())
}

// IsActive reports whether a search term has been entered.
func (f *Field) IsActive() bool {
	return f.entry.Text() != ""
}

// IsActivated reports whether the entry owns focus and is not showing the
// hint.
func (f *Field) IsActivated() bool {
	return f.surface.KeyFocus() == f.entry.TextElement() && f.entry.DisplayedText() == f.entry.Text()
}

// armed reports whether the entry owns focus with nothing typed. The hint
// may be empty, so the displayed text cannot tell.
func (f *Field) armed() bool {
	return f.surface.KeyFocus() == f.entry.TextElement() && f.entry.Text() == ""
}

func (f *Field) onCapturedEvent(ev *stage.Event) bool {
	source := ev.Source
	panelEvent := source != nil && f.isChrome(source)

	switch ev.Kind {
	case stage.ButtonPress:
		// Clicking outside after activating the entry without typing
		// cancels the search. Only panel clicks go through.
		if source != f.entry.TextElement() && f.armed() {
			debuglog.Debugf("searchfield: press on %s cancels armed search", source)
			f.Reset()
			return !panelEvent
		}
		return false

	case stage.KeyPress:
		// Some other surface (run dialog, a modal) grabbed focus.
		focus := f.surface.KeyFocus()
		if focus != f.surface.Root() && focus != f.entry.TextElement() {
			return false
		}

		if ev.IsEscape() {
			if f.IsActivated() {
				f.Reset()
				return true
			}
			return false
		}

		if _, ok := stage.ToUnicode(ev.KeySymbol()); !ok {
			return false
		}

		// First keystroke of a search: focus the entry and repeat the key
		// there so it is not lost.
		if !f.IsActivated() {
			f.surface.SetKeyFocus(f.entry.TextElement())
			f.entry.Deliver(ev)
		}
		return false

	default:
		// While the entry is armed with nothing typed, swallow everything
		// outside the panel.
		return f.armed() && !panelEvent
	}
}

// Destroy releases every subscription the field holds.
func (f *Field) Destroy() {
	f.capture.Release()
	f.focusConn.Release()
	f.textConn.Release()
	f.iconConn.Release()
	f.entry.Destroy()
}
