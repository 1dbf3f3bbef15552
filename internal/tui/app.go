package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/overview/internal/config"
	"github.com/pders01/overview/internal/debuglog"
	"github.com/pders01/overview/internal/mainloop"
	"github.com/pders01/overview/internal/overview"
	"github.com/pders01/overview/internal/search"
	"github.com/pders01/overview/internal/stage"
	"github.com/pders01/overview/internal/storage"
)

// Loop is the deferred-callback loop the app drives. mainloop.TeaLoop is
// the production implementation.
type Loop interface {
	mainloop.Loop
	Dispatch(msg mainloop.TimeoutMsg) bool
	Cmd() tea.Cmd
}

// Launcher starts catalog items and free-form commands.
type Launcher interface {
	Launch(item *storage.Item) error
	Run(commandLine string) error
}

// Options configures NewApp.
type Options struct {
	Config    *config.Config
	Store     search.ItemSource
	Launcher  Launcher
	Providers []search.Provider
	// Loop defaults to a fresh mainloop.TeaLoop.
	Loop Loop
	// Hidden starts with the overview closed.
	Hidden bool
}

type App struct {
	config   *config.Config
	store    search.ItemSource
	launcher Launcher
	loop     Loop

	stage    *stage.Stage
	overview *overview.Overview
	selector *overview.Selector

	panel      *stage.Element
	activities *stage.Element
	dialog     *runDialog
	pages      map[*overview.Tab]contentPage
	keyHandler *KeyHandler

	width  int
	height int

	status  status
	pending []tea.Cmd
	drag    dragState
}

type dragState struct {
	pressed  bool
	origin   stage.Point
	dragging bool
}

// launchedMsg reports the outcome of starting an item or command.
type launchedMsg struct {
	name string
	err  error
}

type statusMsg struct {
	text string
	kind StatusKind
}

func statusCmd(text string, kind StatusKind) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, kind: kind} }
}

func NewApp(opts Options) *App {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.TestConfig()
	}
	loop := opts.Loop
	if loop == nil {
		loop = mainloop.NewTeaLoop()
	}

	a := &App{
		config:   cfg,
		store:    opts.Store,
		launcher: opts.Launcher,
		loop:     loop,
		stage:    stage.New(),
		overview: overview.New(),
		pages:    make(map[*overview.Tab]contentPage),
	}

	a.panel = a.stage.NewElement("panel", nil)
	a.activities = a.stage.NewElement("activities", a.panel)
	a.activities.Reactive = true
	a.activities.SetHandler(func(ev *stage.Event) bool {
		if ev.Kind != stage.ButtonPress {
			return false
		}
		a.overview.Toggle()
		return true
	})

	a.selector = overview.NewSelector(a.stage, nil, a.overview, overview.SearchTabOptions{
		Loop:       loop,
		Hint:       cfg.Search.HintText,
		MaxResults: cfg.Search.MaxResults,
		IsChrome:   a.panel.Contains,
	})
	a.selector.SearchTab().Results().SetStyles(resultStyles())
	for _, p := range opts.Providers {
		a.selector.AddSearchProvider(p)
	}
	a.selector.SearchTab().Committed.Connect(a.onCommitted)

	if a.store != nil && a.launcher != nil {
		a.addPage("Applications", newListPage(storage.KindApplication, a.store, a.launcher))
		a.addPage("Places", newListPage(storage.KindPlace, a.store, a.launcher))
		a.addPage("Documents", newListPage(storage.KindDocument, a.store, a.launcher))
	}
	a.addPage("Help", newHelpPage(cfg.Keys))

	a.dialog = newRunDialog(a.stage, a.runCommand)
	a.keyHandler = NewKeyHandler(a, cfg.Keys)

	a.overview.Attach(a.selector)
	a.overview.OnShown(func() { a.selector.Element().SetVisible(true) })
	a.overview.OnHidden(func() { a.selector.Element().SetVisible(false) })
	a.selector.Element().SetVisible(false)
	if !opts.Hidden {
		a.overview.Show()
	}
	return a
}

func (a *App) addPage(label string, page contentPage) {
	tab := a.selector.AddViewTab(label, page)
	tab.PageElement().SetHandler(func(ev *stage.Event) bool {
		return a.onPageEvent(page, ev)
	})
	a.pages[tab] = page
}

// dragThreshold is how far, in cells, the pointer moves with the button
// held before a press becomes a drag.
const dragThreshold = 2

func (a *App) onPageEvent(page contentPage, ev *stage.Event) bool {
	switch ev.Kind {
	case stage.ButtonPress:
		a.drag = dragState{pressed: true, origin: ev.Position}
		return true
	case stage.Motion:
		if !a.drag.pressed || a.drag.dragging {
			return a.drag.pressed
		}
		dx, dy := ev.Position.X-a.drag.origin.X, ev.Position.Y-a.drag.origin.Y
		if abs(dx)+abs(dy) >= dragThreshold {
			a.drag.dragging = true
			debuglog.Debugf("tui: item drag from %v", a.drag.origin)
			a.overview.BeginItemDrag()
		}
		return true
	case stage.ButtonRelease:
		handled := a.drag.pressed
		a.drag = dragState{}
		return handled
	default:
		return page.HandleEvent(ev)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (a *App) onCommitted(err error) {
	if err != nil {
		debuglog.Errorf("tui: activating result: %v", err)
		a.queue(a.setStatus(err.Error(), StatusError))
		return
	}
	_, meta, ok := a.selector.SearchTab().Results().Selected()
	if !ok {
		a.queue(a.setStatus(MsgNoResults, StatusWarn))
		return
	}
	a.queue(a.setStatus(MsgLaunched(meta.Name), StatusSuccess))
	a.overview.Hide()
}

func (a *App) runCommand(command string) {
	if command == "" {
		a.queue(a.setStatus(MsgEmptyCommand, StatusWarn))
		return
	}
	var err error
	if a.launcher != nil {
		err = a.launcher.Run(command)
	}
	a.queue(a.finishLaunch(command, err))
}

// finishLaunch reports a launch in the status bar. A successful launch
// closes the overview.
func (a *App) finishLaunch(name string, err error) tea.Cmd {
	if err != nil {
		debuglog.Errorf("tui: launching %s: %v", name, err)
		return a.setStatus(err.Error(), StatusError)
	}
	a.overview.Hide()
	return a.setStatus(MsgLaunched(name), StatusSuccess)
}

// queue holds a command produced inside a stage handler until Update
// returns.
func (a *App) queue(cmd tea.Cmd) {
	if cmd != nil {
		a.pending = append(a.pending, cmd)
	}
}

func (a *App) setStatus(text string, kind StatusKind) tea.Cmd {
	a.status.seq++
	a.status.text = text
	a.status.kind = kind
	seq := a.status.seq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

func (a *App) Init() tea.Cmd {
	return a.loop.Cmd()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()

	case tea.KeyMsg:
		cmds = append(cmds, a.keyHandler.HandleKey(msg))

	case tea.MouseMsg:
		if ev, ok := stage.MouseEvent(msg); ok {
			a.stage.Dispatch(ev)
		}

	case mainloop.TimeoutMsg:
		a.loop.Dispatch(msg)

	case launchedMsg:
		cmds = append(cmds, a.finishLaunch(msg.name, msg.err))

	case statusMsg:
		cmds = append(cmds, a.setStatus(msg.text, msg.kind))

	case clearStatusMsg:
		if msg.seq == a.status.seq {
			a.status.text = ""
		}
	}

	cmds = append(cmds, a.pending...)
	a.pending = nil
	cmds = append(cmds, a.loop.Cmd())
	return a, tea.Batch(cmds...)
}

// visiblePage returns the page of the visible content tab, nil while the
// search tab or nothing is showing.
func (a *App) visiblePage() contentPage {
	t := a.selector.VisibleTab()
	if t == nil {
		return nil
	}
	return a.pages[t]
}

func (a *App) Overview() *overview.Overview { return a.overview }

func (a *App) Selector() *overview.Selector { return a.selector }

func (a *App) Stage() *stage.Stage { return a.stage }

// StatusText returns the message currently in the status bar.
func (a *App) StatusText() string { return a.status.text }
