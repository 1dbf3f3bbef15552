// Package overview implements the tabbed view selector of the activities
// overview: content tabs, the search pseudo-tab, the debounced search
// trigger and the orchestrator that shows and hides it all.
package overview

import (
	"github.com/pders01/overview/internal/signal"
	"github.com/pders01/overview/internal/stage"
)

// Kind tells the search tab apart from content tabs. Only the switcher's
// exclusivity rule looks at it.
type Kind int

const (
	KindContent Kind = iota
	KindSearch
)

func (k Kind) String() string {
	if k == KindSearch {
		return "search"
	}
	return "content"
}

// Page is the content a tab shows in the page area.
type Page interface {
	View(width, height int) string
}

// Tab is a title affordance plus a page. At most one tab is visible at a
// time; the Selector enforces that.
type Tab struct {
	Kind  Kind
	Label string

	title    *stage.Element
	pageElem *stage.Element
	page     Page

	visible  bool
	selected bool

	// Activated fires when the tab asks to be switched to.
	Activated signal.Signal[*Tab]

	onShow func()
	onHide func()
}

// NewViewTab builds a content tab. Pressing its title activates it.
func NewViewTab(title, pageElem *stage.Element, label string, page Page) *Tab {
	t := &Tab{Kind: KindContent, Label: label, title: title, pageElem: pageElem, page: page}
	title.Reactive = true
	title.SetHandler(func(ev *stage.Event) bool {
		if ev.Kind != stage.ButtonPress {
			return false
		}
		t.activate()
		return true
	})
	return t
}

func (t *Tab) Title() *stage.Element { return t.title }

// PageElement is the element covering the tab's page.
func (t *Tab) PageElement() *stage.Element { return t.pageElem }

func (t *Tab) Page() Page { return t.page }

func (t *Tab) Visible() bool { return t.visible }

// Selected reports the title's "selected" affordance.
func (t *Tab) Selected() bool { return t.selected }

// Show makes the page visible.
func (t *Tab) Show() {
	t.visible = true
	t.pageElem.SetVisible(true)
	if t.onShow != nil {
		t.onShow()
	}
}

// Hide hides the page. The visible flag drops before the hook runs.
func (t *Tab) Hide() {
	t.visible = false
	t.pageElem.SetVisible(false)
	if t.onHide != nil {
		t.onHide()
	}
}

func (t *Tab) setSelected(selected bool) {
	t.selected = selected
}

func (t *Tab) activate() {
	t.Activated.Emit(t)
}
