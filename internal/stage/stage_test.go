package stage

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFocus_DefaultsToRoot(t *testing.T) {
	s := New()
	assert.Same(t, s.Root(), s.KeyFocus())

	var changes []*Element
	s.ConnectFocus(func(e *Element) { changes = append(changes, e) })

	entry := s.NewElement("entry", nil)
	s.SetKeyFocus(entry)
	s.SetKeyFocus(entry)
	s.SetKeyFocus(nil)
	s.SetKeyFocus(s.Root())

	require.Len(t, changes, 2, "only real changes notify")
	assert.Same(t, entry, changes[0])
	assert.Same(t, s.Root(), changes[1])
}

func TestActorAt(t *testing.T) {
	s := New()
	box := s.NewElement("box", nil)
	box.SetBounds(Rect{X: 0, Y: 0, W: 10, H: 1})
	text := s.NewElement("text", box)
	text.Reactive = true
	text.SetBounds(Rect{X: 0, Y: 0, W: 8, H: 1})
	icon := s.NewElement("icon", box)
	icon.Reactive = true
	icon.SetBounds(Rect{X: 8, Y: 0, W: 2, H: 1})

	assert.Same(t, text, s.ActorAt(Point{X: 3}))
	assert.Same(t, icon, s.ActorAt(Point{X: 9}))
	assert.Nil(t, s.ActorAt(Point{X: 30}), "nothing under the pointer")

	icon.SetVisible(false)
	assert.Nil(t, s.ActorAt(Point{X: 9}))

	box.SetVisible(false)
	assert.Nil(t, s.ActorAt(Point{X: 3}))
	assert.False(t, text.Visible())
}

func TestContains(t *testing.T) {
	s := New()
	panel := s.NewElement("panel", nil)
	button := s.NewElement("button", panel)
	other := s.NewElement("other", nil)

	assert.True(t, panel.Contains(button))
	assert.True(t, panel.Contains(panel))
	assert.False(t, panel.Contains(other))
	assert.False(t, panel.Contains(nil))
	assert.True(t, s.Root().Contains(button))
	assert.Same(t, panel, button.Parent())
}

func TestDispatch_CaptureConsumes(t *testing.T) {
	s := New()
	el := s.NewElement("el", nil)
	delivered := false
	el.SetHandler(func(*Event) bool { delivered = true; return true })
	s.SetKeyFocus(el)

	id := s.Connect(SignalCapturedEvent, func(*Event) bool { return true })
	assert.True(t, s.Dispatch(KeyEvent(tea.KeyMsg{Type: tea.KeyEnter})))
	assert.False(t, delivered)

	s.Disconnect(id)
	assert.True(t, s.Dispatch(KeyEvent(tea.KeyMsg{Type: tea.KeyEnter})))
	assert.True(t, delivered)
}

func TestDispatch_BubblesToStageKeyPress(t *testing.T) {
	s := New()
	parent := s.NewElement("parent", nil)
	child := s.NewElement("child", parent)
	var order []string
	child.SetHandler(func(*Event) bool { order = append(order, "child"); return false })
	parent.SetHandler(func(*Event) bool { order = append(order, "parent"); return false })
	s.Connect(SignalKeyPressEvent, func(*Event) bool { order = append(order, "stage"); return true })
	s.SetKeyFocus(child)

	assert.True(t, s.Dispatch(KeyEvent(tea.KeyMsg{Type: tea.KeyUp})))
	assert.Equal(t, []string{"child", "parent", "stage"}, order)
}

func TestDispatch_TargetFixedBeforeCapture(t *testing.T) {
	s := New()
	entry := s.NewElement("entry", nil)
	hits := 0
	entry.SetHandler(func(*Event) bool { hits++; return true })

	// A capture handler that moves focus to the entry must not make the
	// same event land on the entry through normal dispatch.
	s.Connect(SignalCapturedEvent, func(ev *Event) bool {
		s.SetKeyFocus(entry)
		return false
	})
	ev := KeyEvent(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	s.Dispatch(ev)

	assert.Same(t, s.Root(), ev.Source)
	assert.Zero(t, hits)
	assert.Same(t, entry, s.KeyFocus())
}

func TestDispatch_PointerUpdatesPositionAndPicks(t *testing.T) {
	s := New()
	btn := s.NewElement("btn", nil)
	btn.Reactive = true
	btn.SetBounds(Rect{X: 2, Y: 2, W: 4, H: 1})
	clicked := false
	btn.SetHandler(func(ev *Event) bool {
		clicked = ev.Kind == ButtonPress
		return clicked
	})

	ev, ok := MouseEvent(tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.True(t, ok)
	assert.True(t, s.Dispatch(ev))
	assert.True(t, clicked)
	assert.Equal(t, Point{X: 3, Y: 2}, s.Pointer())
}

func TestToUnicode(t *testing.T) {
	cases := []struct {
		name string
		key  tea.Key
		want rune
		ok   bool
	}{
		{"letter", tea.Key{Type: tea.KeyRunes, Runes: []rune("a")}, 'a', true},
		{"space", tea.Key{Type: tea.KeySpace, Runes: []rune(" ")}, ' ', true},
		{"unicode", tea.Key{Type: tea.KeyRunes, Runes: []rune("é")}, 'é', true},
		{"escape", tea.Key{Type: tea.KeyEscape}, 0, false},
		{"arrow", tea.Key{Type: tea.KeyDown}, 0, false},
		{"alt", tea.Key{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true}, 0, false},
		{"paste", tea.Key{Type: tea.KeyRunes, Runes: []rune("xyz"), Paste: true}, 0, false},
		{"ctrl", tea.Key{Type: tea.KeyCtrlA}, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, ok := ToUnicode(tc.key)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, r)
		})
	}
}

func TestMouseEventKinds(t *testing.T) {
	ev, ok := MouseEvent(tea.MouseMsg{Action: tea.MouseActionMotion})
	require.True(t, ok)
	assert.Equal(t, Motion, ev.Kind)

	ev, ok = MouseEvent(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	require.True(t, ok)
	assert.Equal(t, Scroll, ev.Kind)

	ev, ok = MouseEvent(tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	require.True(t, ok)
	assert.Equal(t, ButtonRelease, ev.Kind)
}
