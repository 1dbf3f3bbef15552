package stage

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
)

// EventKind classifies input events.
type EventKind int

const (
	ButtonPress EventKind = iota
	ButtonRelease
	Motion
	Scroll
	KeyPress
	KeyRelease
)

func (k EventKind) String() string {
	switch k {
	case ButtonPress:
		return "button-press"
	case ButtonRelease:
		return "button-release"
	case Motion:
		return "motion"
	case Scroll:
		return "scroll"
	case KeyPress:
		return "key-press"
	case KeyRelease:
		return "key-release"
	default:
		return "unknown"
	}
}

// Event is one input event travelling through the stage.
type Event struct {
	Kind EventKind
	// Source is the element the event was addressed to when it arrived:
	// the key focus for keyboard events, the picked element for pointer
	// events. Nil means the stage root.
	Source   *Element
	Key      tea.Key
	Position Point
	Button   tea.MouseButton
}

// KeySymbol returns the key of a keyboard event.
func (ev *Event) KeySymbol() tea.Key {
	return ev.Key
}

// IsEscape reports whether the event's key is Escape.
func (ev *Event) IsEscape() bool {
	return ev.Key.Type == tea.KeyEscape
}

// ToUnicode maps a key to the character it types. Keys without a printable
// character, including modified keys and pastes, report false.
func ToUnicode(k tea.Key) (rune, bool) {
	if k.Alt || k.Paste {
		return 0, false
	}
	switch k.Type {
	case tea.KeySpace:
		return ' ', true
	case tea.KeyRunes:
		if len(k.Runes) != 1 || !unicode.IsPrint(k.Runes[0]) {
			return 0, false
		}
		return k.Runes[0], true
	default:
		return 0, false
	}
}

// KeyEvent builds a key-press event from a Bubble Tea key message.
func KeyEvent(msg tea.KeyMsg) *Event {
	return &Event{Kind: KeyPress, Key: tea.Key(msg)}
}

// MouseEvent builds a pointer event from a Bubble Tea mouse message. The
// second result is false for messages the stage does not model.
func MouseEvent(msg tea.MouseMsg) (*Event, bool) {
	ev := &Event{Position: Point{X: msg.X, Y: msg.Y}, Button: msg.Button}
	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown,
		msg.Button == tea.MouseButtonWheelLeft || msg.Button == tea.MouseButtonWheelRight:
		ev.Kind = Scroll
	case msg.Action == tea.MouseActionPress:
		ev.Kind = ButtonPress
	case msg.Action == tea.MouseActionRelease:
		ev.Kind = ButtonRelease
	case msg.Action == tea.MouseActionMotion:
		ev.Kind = Motion
	default:
		return nil, false
	}
	return ev, true
}
