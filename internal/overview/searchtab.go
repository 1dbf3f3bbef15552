package overview

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/overview/internal/mainloop"
	"github.com/pders01/overview/internal/search"
	"github.com/pders01/overview/internal/searchdisplay"
	"github.com/pders01/overview/internal/searchfield"
	"github.com/pders01/overview/internal/signal"
	"github.com/pders01/overview/internal/stage"
)

// SearchTab is the search pseudo-tab. Its title is the search entry and
// its page the result display.
type SearchTab struct {
	*Tab

	surface    stage.InputSurface
	field      *searchfield.Field
	system     *search.System
	results    *searchdisplay.Results
	controller *SearchController

	active bool

	keyPress     signal.Connection
	textConn     signal.Connection
	activateConn signal.Connection
	cancelConn   signal.Connection

	// Committed fires after Enter with the activation result.
	Committed signal.Signal[error]
}

// SearchTabOptions configures NewSearchTab.
type SearchTabOptions struct {
	Loop       mainloop.Loop
	Hint       string
	MaxResults int
	IsChrome   searchfield.ChromeFunc
}

type resultsPage struct {
	results *searchdisplay.Results
}

func (p resultsPage) View(width, height int) string {
	return p.results.View(width, height)
}

// NewSearchTab creates the entry under titleParent and the result page
// element under pageParent.
func NewSearchTab(st *stage.Stage, titleParent, pageParent *stage.Element, opts SearchTabOptions) *SearchTab {
	entry := searchfield.NewEntry(st, titleParent, opts.Hint)
	system := search.NewSystem()
	results := searchdisplay.New(system, opts.MaxResults)

	pageElem := st.NewElement("search-results", pageParent)
	pageElem.Reactive = true

	s := &SearchTab{
		Tab: &Tab{
			Kind:     KindSearch,
			Label:    "Search",
			title:    entry.Box(),
			pageElem: pageElem,
			page:     resultsPage{results: results},
		},
		surface: st,
		field:   searchfield.New(st, entry, opts.IsChrome),
		system:  system,
		results: results,
	}
	s.controller = NewSearchController(opts.Loop, s.field.GetText, results)
	s.onShow = s.installKeyHandler
	s.onHide = s.uninstall

	s.textConn = signal.Bind(entry.TextChanged.Connect(s.onTextChanged), entry.TextChanged.Disconnect)
	s.activateConn = signal.Bind(entry.Activate.Connect(func(struct{}) {
		s.Committed.Emit(s.controller.Commit())
	}), entry.Activate.Disconnect)
	s.cancelConn = signal.Bind(s.controller.SearchCancelled.Connect(func(struct{}) {
		results.Reset()
	}), s.controller.SearchCancelled.Disconnect)
	return s
}

func (s *SearchTab) Field() *searchfield.Field { return s.field }

func (s *SearchTab) Results() *searchdisplay.Results { return s.results }

func (s *SearchTab) Controller() *SearchController { return s.controller }

// Active reports whether a search term is entered.
func (s *SearchTab) Active() bool { return s.active }

// SetFindAsYouType installs or removes the field's capture filter.
func (s *SearchTab) SetFindAsYouType(enabled bool) {
	if enabled {
		s.field.Show()
	} else {
		s.field.Hide()
	}
}

func (s *SearchTab) AddSearchProvider(p search.Provider) {
	s.system.RegisterProvider(p)
	s.results.CreateProviderMeta(p)
}

func (s *SearchTab) onTextChanged(string) {
	s.active = s.field.IsActive()
	s.controller.OnTextChanged(s.active)
	if s.active {
		s.activate()
	}
}

func (s *SearchTab) installKeyHandler() {
	if !s.keyPress.Active() {
		s.keyPress = signal.Bind(s.surface.Connect(stage.SignalKeyPressEvent, s.onKeyPress), s.surface.Disconnect)
	}
}

func (s *SearchTab) uninstall() {
	s.keyPress.Release()
	s.field.Reset()
}

func (s *SearchTab) onKeyPress(ev *stage.Event) bool {
	// A foreign surface owns input.
	focus := s.surface.KeyFocus()
	if focus != s.surface.Root() && focus != s.field.Entry().TextElement() {
		return false
	}

	switch ev.Key.Type {
	case tea.KeyUp:
		if s.active {
			s.results.SelectUp()
		}
		return true
	case tea.KeyDown:
		if s.active {
			s.results.SelectDown()
		}
		return true
	}
	return false
}

// Destroy releases every subscription and the search timer.
func (s *SearchTab) Destroy() {
	s.keyPress.Release()
	s.textConn.Release()
	s.activateConn.Release()
	s.cancelConn.Release()
	s.controller.Destroy()
	s.field.Destroy()
}
