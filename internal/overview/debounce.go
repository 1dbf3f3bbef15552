package overview

import (
	"time"

	"github.com/pders01/overview/internal/debuglog"
	"github.com/pders01/overview/internal/mainloop"
	"github.com/pders01/overview/internal/signal"
)

// SearchDelay is how long typing has to pause before a search runs.
const SearchDelay = 150 * time.Millisecond

// State of a SearchController.
type State int

const (
	// Idle: no search text.
	Idle State = iota
	// Armed: text just became non-empty. Transient, the controller moves
	// on to Pending in the same call.
	Armed
	// Pending: text is non-empty; a search is scheduled or has run.
	Pending
)

func (s State) String() string {
	switch s {
	case Armed:
		return "armed"
	case Pending:
		return "pending"
	default:
		return "idle"
	}
}

// Searcher receives the controller's search requests.
type Searcher interface {
	StartingSearch()
	UpdateSearch(text string)
	ActivateSelected() error
}

// SearchController turns text changes into debounced search requests. It
// holds at most one live timer; every change restarts the delay, so a burst
// of typing yields one request carrying the text present when the timer
// fires.
type SearchController struct {
	loop    mainloop.Loop
	text    func() string
	results Searcher

	state State
	timer mainloop.SourceID

	SearchStarting  signal.Signal[struct{}]
	SearchCancelled signal.Signal[struct{}]
}

// NewSearchController creates an idle controller. text returns the trimmed
// search text and is read when a search is issued.
func NewSearchController(loop mainloop.Loop, text func() string, results Searcher) *SearchController {
	return &SearchController{loop: loop, text: text, results: results}
}

func (c *SearchController) State() State { return c.state }

// TimerPending reports whether a search is scheduled.
func (c *SearchController) TimerPending() bool { return c.timer != 0 }

// OnTextChanged reacts to an edit. active is whether the stored text is
// non-empty.
func (c *SearchController) OnTextChanged(active bool) {
	if !active {
		c.stopTimer()
		c.setState(Idle)
		c.SearchCancelled.Emit(struct{}{})
		return
	}

	if c.state == Idle {
		c.setState(Armed)
		c.results.StartingSearch()
		c.SearchStarting.Emit(struct{}{})
	}

	// Restart rather than reuse the live timer: the delay runs from the
	// last change.
	c.stopTimer()
	c.timer = c.loop.TimeoutAdd(SearchDelay, c.fire)
	c.setState(Pending)
}

func (c *SearchController) fire() {
	c.timer = 0
	c.search()
}

func (c *SearchController) search() {
	text := c.text()
	debuglog.Debugf("overview: searching for %q", text)
	c.results.UpdateSearch(text)
	if text == "" {
		c.setState(Idle)
	}
}

// Commit runs a scheduled search right away, then activates the selected
// result.
func (c *SearchController) Commit() error {
	if c.stopTimer() {
		c.search()
	}
	return c.results.ActivateSelected()
}

// Cancel drops a scheduled search and returns to Idle without notifying.
func (c *SearchController) Cancel() {
	c.stopTimer()
	c.setState(Idle)
}

// Destroy releases the timer.
func (c *SearchController) Destroy() {
	c.Cancel()
}

func (c *SearchController) stopTimer() bool {
	if c.timer == 0 {
		return false
	}
	c.loop.SourceRemove(c.timer)
	c.timer = 0
	return true
}

func (c *SearchController) setState(s State) {
	if s != c.state {
		debuglog.Debugf("overview: search %s -> %s", c.state, s)
	}
	c.state = s
}
