package overview

import (
	"github.com/pders01/overview/internal/debuglog"
	"github.com/pders01/overview/internal/search"
	"github.com/pders01/overview/internal/signal"
	"github.com/pders01/overview/internal/stage"
)

// Orchestrator is the part of the overview the selector listens to.
type Orchestrator interface {
	OnItemDragBegin(fn func()) signal.HandlerID
	OnHiding(fn func()) signal.HandlerID
	Disconnect(id signal.HandlerID) bool
	Hide()
}

// Selector holds the content tabs and the search tab and keeps at most one
// of them visible. While shown it also routes Escape to hide the overview.
type Selector struct {
	stage    *stage.Stage
	overview Orchestrator

	elem       *stage.Element
	tabBar     *stage.Element
	tabBox     *stage.Element
	searchArea *stage.Element
	pageArea   *stage.Element

	tabs      []*Tab
	activeTab *Tab
	searchTab *SearchTab

	keyPress  signal.Connection
	dragBegin signal.Connection
	hiding    signal.Connection
}

// NewSelector builds the selector's element tree under parent (the stage
// root when nil). The tab bar holds content titles in a box on the left
// and the search entry in the search area; every page lives in the page
// area.
func NewSelector(st *stage.Stage, parent *stage.Element, overview Orchestrator, opts SearchTabOptions) *Selector {
	s := &Selector{stage: st, overview: overview}
	s.elem = st.NewElement("view-selector", parent)
	s.tabBar = st.NewElement("tab-bar", s.elem)
	s.tabBox = st.NewElement("tab-box", s.tabBar)
	s.searchArea = st.NewElement("search-area", s.tabBar)
	s.pageArea = st.NewElement("page-area", s.elem)

	s.searchTab = NewSearchTab(st, s.searchArea, s.pageArea, opts)
	s.addTab(s.searchTab.Tab)

	s.searchTab.Controller().SearchCancelled.Connect(func(struct{}) {
		if s.activeTab != nil {
			s.SwitchTo(s.activeTab)
		}
	})
	return s
}

func (s *Selector) addTab(t *Tab) {
	t.pageElem.SetVisible(false)
	t.Activated.Connect(s.SwitchTo)
}

// AddViewTab appends a content tab.
func (s *Selector) AddViewTab(label string, page Page) *Tab {
	title := s.stage.NewElement("tab-title:"+label, s.tabBox)
	pageElem := s.stage.NewElement("tab-page:"+label, s.pageArea)
	pageElem.Reactive = true

	t := NewViewTab(title, pageElem, label, page)
	s.tabs = append(s.tabs, t)
	s.addTab(t)
	return t
}

func (s *Selector) AddSearchProvider(p search.Provider) {
	s.searchTab.AddSearchProvider(p)
}

// Tabs returns the content tabs in display order.
func (s *Selector) Tabs() []*Tab { return s.tabs }

func (s *Selector) SearchTab() *SearchTab { return s.searchTab }

// ActiveTab is the last content tab shown, nil before the first one.
func (s *Selector) ActiveTab() *Tab { return s.activeTab }

// VisibleTab returns the tab currently shown, or nil.
func (s *Selector) VisibleTab() *Tab {
	if s.searchTab.Visible() {
		return s.searchTab.Tab
	}
	for _, t := range s.tabs {
		if t.Visible() {
			return t
		}
	}
	return nil
}

func (s *Selector) Element() *stage.Element { return s.elem }

func (s *Selector) TabBar() *stage.Element { return s.tabBar }

func (s *Selector) TabBox() *stage.Element { return s.tabBox }

func (s *Selector) SearchArea() *stage.Element { return s.searchArea }

func (s *Selector) PageArea() *stage.Element { return s.pageArea }

// SwitchTo makes t the visible tab. Showing the search tab leaves the
// active content tab and its selected title untouched.
func (s *Selector) SwitchTo(t *Tab) {
	if s.activeTab != nil && s.activeTab.Visible() {
		if s.activeTab == t {
			return
		}
		s.activeTab.setSelected(false)
		s.activeTab.Hide()
	}

	if t.Kind != KindSearch {
		// The previous tab may still carry the affordance if search
		// was showing on top of it.
		if s.activeTab != nil && s.activeTab != t {
			s.activeTab.setSelected(false)
		}
		t.setSelected(true)
		s.activeTab = t
		if s.searchTab.Visible() {
			s.searchTab.Hide()
		}
	}

	if !t.Visible() {
		debuglog.Debugf("overview: showing %s tab %q", t.Kind, t.Label)
		t.Show()
	}
}

// SwitchToDefault shows the first content tab, if there is one.
func (s *Selector) SwitchToDefault() {
	if len(s.tabs) > 0 {
		s.SwitchTo(s.tabs[0])
	}
}

// SwitchRelative moves delta content tabs away from the active one,
// wrapping around.
func (s *Selector) SwitchRelative(delta int) {
	n := len(s.tabs)
	if n == 0 {
		return
	}
	cur := 0
	for i, t := range s.tabs {
		if t == s.activeTab {
			cur = i
		}
	}
	s.SwitchTo(s.tabs[((cur+delta)%n+n)%n])
}

// Show enables find-as-you-type, subscribes to the overview and the stage,
// and shows the default tab. Repeated calls subscribe once.
func (s *Selector) Show() {
	s.searchTab.SetFindAsYouType(true)

	if !s.dragBegin.Active() {
		s.dragBegin = signal.Bind(s.overview.OnItemDragBegin(s.SwitchToDefault), s.overview.Disconnect)
	}
	if !s.hiding.Active() {
		s.hiding = signal.Bind(s.overview.OnHiding(s.SwitchToDefault), s.overview.Disconnect)
	}
	if !s.keyPress.Active() {
		s.keyPress = signal.Bind(s.stage.Connect(stage.SignalKeyPressEvent, s.onKeyPress), s.stage.Disconnect)
	}

	s.SwitchToDefault()
}

// Hide drops every subscription Show made. Safe to repeat.
func (s *Selector) Hide() {
	s.searchTab.SetFindAsYouType(false)

	s.keyPress.Release()
	s.dragBegin.Release()
	s.hiding.Release()
}

// Shown reports whether the selector's subscriptions are installed.
func (s *Selector) Shown() bool {
	return s.keyPress.Active()
}

func (s *Selector) onKeyPress(ev *stage.Event) bool {
	// Search is handled by the search tab; focus held by anything but the
	// stage belongs to someone else.
	if s.stage.KeyFocus() != s.stage.Root() {
		return false
	}
	if ev.IsEscape() {
		debuglog.Debugf("overview: escape hides overview")
		s.overview.Hide()
		return true
	}
	return false
}
