package searchfield

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/overview/internal/stage"
)

type harness struct {
	stage  *stage.Stage
	panel  *stage.Element
	button *stage.Element
	page   *stage.Element
	dialog *stage.Element
	entry  *Entry
	field  *Field
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithHint(t, "Type to search…")
}

func newHarnessWithHint(t *testing.T, hint string) *harness {
	t.Helper()
	st := stage.New()
	h := &harness{stage: st}

	h.panel = st.NewElement("panel", nil)
	h.panel.SetBounds(stage.Rect{X: 0, Y: 0, W: 80, H: 1})
	h.button = st.NewElement("activities", h.panel)
	h.button.Reactive = true
	h.button.SetBounds(stage.Rect{X: 0, Y: 0, W: 10, H: 1})

	h.page = st.NewElement("page", nil)
	h.page.Reactive = true
	h.page.SetBounds(stage.Rect{X: 0, Y: 3, W: 80, H: 20})

	h.dialog = st.NewElement("run-dialog", nil)

	bar := st.NewElement("tab-bar", nil)
	h.entry = NewEntry(st, bar, hint)
	h.entry.Box().SetBounds(stage.Rect{X: 50, Y: 1, W: 30, H: 1})
	h.entry.TextElement().SetBounds(stage.Rect{X: 50, Y: 1, W: 27, H: 1})
	h.entry.Icon().SetBounds(stage.Rect{X: 77, Y: 1, W: 3, H: 1})

	h.field = New(st, h.entry, h.panel.Contains)
	h.field.Show()
	return h
}

func key(r rune) *stage.Event {
	return stage.KeyEvent(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func special(k tea.KeyType) *stage.Event {
	return stage.KeyEvent(tea.KeyMsg{Type: k})
}

func press(x, y int) *stage.Event {
	ev, _ := stage.MouseEvent(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	return ev
}

func motion(x, y int) *stage.Event {
	ev, _ := stage.MouseEvent(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
	return ev
}

func TestShowHideIsIdempotent(t *testing.T) {
	h := newHarness(t)
	h.field.Show()
	assert.Equal(t, 1, h.stage.HandlerCount(stage.SignalCapturedEvent))

	h.field.Hide()
	h.field.Hide()
	assert.Zero(t, h.stage.HandlerCount(stage.SignalCapturedEvent))
	assert.False(t, h.field.Shown())

	h.field.Show()
	assert.True(t, h.field.Shown())
	h.field.Destroy()
	h.field.Destroy()
	assert.Zero(t, h.stage.HandlerCount(stage.SignalCapturedEvent))
}

func TestHintIsNotActivated(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, "Type to search…", h.entry.DisplayedText())
	assert.False(t, h.field.IsActive())
	assert.False(t, h.field.IsActivated())

	h.stage.SetKeyFocus(h.entry.TextElement())
	assert.Equal(t, "", h.entry.DisplayedText())
	assert.True(t, h.field.IsActivated())
}

func TestFirstKeystrokeFocusesAndIsTypedOnce(t *testing.T) {
	h := newHarness(t)

	consumed := h.stage.Dispatch(key('a'))

	assert.False(t, consumed, "the outer dispatcher still sees a pass")
	assert.Same(t, h.entry.TextElement(), h.stage.KeyFocus())
	assert.Equal(t, "a", h.entry.Text(), "the triggering key is forwarded exactly once")
	assert.True(t, h.field.IsActivated())

	h.stage.Dispatch(key('b'))
	assert.Equal(t, "ab", h.entry.Text())
	assert.True(t, h.entry.Icon().Visible(), "clear affordance follows IsActive")
}

func TestNonPrintableKeysPassUntouched(t *testing.T) {
	h := newHarness(t)
	for _, k := range []tea.KeyType{tea.KeyDown, tea.KeyTab, tea.KeyCtrlA, tea.KeyF1} {
		h.stage.Dispatch(special(k))
	}
	assert.Same(t, h.stage.Root(), h.stage.KeyFocus())
	assert.Empty(t, h.entry.Text())
}

func TestEscape(t *testing.T) {
	t.Run("activated field resets and consumes", func(t *testing.T) {
		h := newHarness(t)
		h.stage.Dispatch(key('x'))
		require.True(t, h.field.IsActivated())

		assert.True(t, h.stage.Dispatch(special(tea.KeyEscape)))
		assert.Empty(t, h.entry.Text())
		assert.Same(t, h.stage.Root(), h.stage.KeyFocus())
	})

	t.Run("inactive field passes", func(t *testing.T) {
		h := newHarness(t)
		assert.False(t, h.stage.Dispatch(special(tea.KeyEscape)))
	})

	t.Run("foreign focus is left alone", func(t *testing.T) {
		h := newHarness(t)
		h.entry.SetText("keep")
		h.stage.SetKeyFocus(h.dialog)

		ev := special(tea.KeyEscape)
		assert.False(t, h.field.onCapturedEvent(ev))
		assert.Equal(t, "keep", h.entry.Text())
		assert.Same(t, h.dialog, h.stage.KeyFocus())
	})
}

func TestForeignFocusPrintableKeyPasses(t *testing.T) {
	h := newHarness(t)
	h.stage.SetKeyFocus(h.dialog)

	assert.False(t, h.field.onCapturedEvent(key('q')))
	assert.Same(t, h.dialog, h.stage.KeyFocus())
	assert.Empty(t, h.entry.Text())
}

func TestPressOutsideArmedFieldResets(t *testing.T) {
	h := newHarness(t)
	h.stage.SetKeyFocus(h.entry.TextElement())

	assert.True(t, h.stage.Dispatch(press(5, 5)), "press on page is swallowed")
	assert.Same(t, h.stage.Root(), h.stage.KeyFocus())

	h.stage.SetKeyFocus(h.entry.TextElement())
	assert.False(t, h.stage.Dispatch(press(2, 0)), "press on the panel propagates")
	assert.Same(t, h.stage.Root(), h.stage.KeyFocus(), "but still resets")
}

func TestPressWithTextPasses(t *testing.T) {
	h := newHarness(t)
	h.stage.Dispatch(key('a'))

	ev := press(5, 5)
	assert.False(t, h.field.onCapturedEvent(ev))
	assert.Equal(t, "a", h.entry.Text())
}

func TestPressWithHintShowingPasses(t *testing.T) {
	h := newHarness(t)
	assert.False(t, h.field.onCapturedEvent(press(5, 5)))
}

func TestEmptyHintLeavesPointerAlone(t *testing.T) {
	h := newHarnessWithHint(t, "")
	pageCalls := 0
	h.page.SetHandler(func(ev *stage.Event) bool {
		pageCalls++
		return true
	})

	assert.True(t, h.stage.Dispatch(press(5, 5)))
	assert.Equal(t, 1, pageCalls, "press reaches the page")
	assert.Same(t, h.stage.Root(), h.stage.KeyFocus())

	h.stage.Dispatch(motion(6, 6))
	assert.Equal(t, 2, pageCalls, "motion reaches the page")

	h.stage.SetKeyFocus(h.entry.TextElement())
	assert.True(t, h.stage.Dispatch(motion(6, 6)))
	assert.Equal(t, 2, pageCalls, "armed field still swallows motion")
}

func TestStrayEventsWhileArmed(t *testing.T) {
	h := newHarness(t)
	h.stage.SetKeyFocus(h.entry.TextElement())

	assert.True(t, h.stage.Dispatch(motion(5, 5)))
	assert.False(t, h.stage.Dispatch(motion(2, 0)), "panel events are exempt")

	h.stage.Dispatch(key('z'))
	assert.False(t, h.stage.Dispatch(motion(5, 5)), "typed text releases the pointer")
}

func TestClickOnEntryFocusesIt(t *testing.T) {
	h := newHarness(t)
	h.stage.Dispatch(press(52, 1))
	assert.Same(t, h.entry.TextElement(), h.stage.KeyFocus())
}

func TestClearIconResets(t *testing.T) {
	h := newHarness(t)
	h.stage.Dispatch(key('a'))
	require.True(t, h.entry.Icon().Visible())

	h.stage.Dispatch(press(78, 1))
	assert.Empty(t, h.entry.Text())
	assert.False(t, h.entry.Icon().Visible())
	assert.True(t, h.entry.Hovered(), "pointer over the icon keeps the entry hovered")
}

func TestResetHoverWithNothingUnderPointer(t *testing.T) {
	h := newHarness(t)
	h.entry.SetHover(true)
	h.stage.SetPointer(stage.Point{X: 200, Y: 200})

	h.field.Reset()
	assert.False(t, h.entry.Hovered())
}

func TestCursorVisibilityFollowsFocus(t *testing.T) {
	h := newHarness(t)
	h.stage.SetKeyFocus(h.dialog)
	assert.False(t, h.entry.CursorVisible())

	h.stage.SetKeyFocus(h.entry.TextElement())
	assert.True(t, h.entry.CursorVisible())

	h.stage.SetKeyFocus(h.dialog)
	h.stage.SetKeyFocus(nil)
	assert.True(t, h.entry.CursorVisible())
}

func TestDestroyStopsFollowingFocus(t *testing.T) {
	h := newHarness(t)
	h.stage.SetKeyFocus(h.entry.TextElement())
	assert.True(t, h.entry.input.Focused())
	h.stage.SetKeyFocus(nil)

	h.field.Destroy()
	h.stage.SetKeyFocus(h.entry.TextElement())
	assert.False(t, h.entry.input.Focused())
}

func TestGetTextTrims(t *testing.T) {
	h := newHarness(t)
	h.entry.SetText("  term \t")
	assert.Equal(t, "term", h.field.GetText())
	assert.True(t, h.field.IsActive())
}

func TestEnterEmitsActivate(t *testing.T) {
	h := newHarness(t)
	fired := 0
	h.entry.Activate.Connect(func(struct{}) { fired++ })

	h.stage.Dispatch(key('a'))
	h.stage.Dispatch(special(tea.KeyEnter))
	assert.Equal(t, 1, fired)
	assert.Equal(t, "a", h.entry.Text())
}
