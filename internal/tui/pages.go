package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/pders01/overview/internal/config"
	"github.com/pders01/overview/internal/debuglog"
	"github.com/pders01/overview/internal/search"
	"github.com/pders01/overview/internal/stage"
	"github.com/pders01/overview/internal/storage"
)

// contentPage is a content tab's page. Keys reach it only when neither the
// search nor the selector consumed them.
type contentPage interface {
	View(width, height int) string
	HandleKey(msg tea.KeyMsg) tea.Cmd
	HandleEvent(ev *stage.Event) bool
}

type catalogItem struct {
	item *storage.Item
}

func (i catalogItem) Title() string       { return i.item.Name }
func (i catalogItem) Description() string { return i.item.Description }
func (i catalogItem) FilterValue() string { return i.item.Name }

// listPage lists every catalog item of one kind.
type listPage struct {
	kind     storage.Kind
	source   search.ItemSource
	launcher search.Launcher
	list     list.Model
}

func newListPage(kind storage.Kind, source search.ItemSource, launcher search.Launcher) *listPage {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	// Typing starts a search; the list never filters.
	l.SetFilteringEnabled(false)

	p := &listPage{kind: kind, source: source, launcher: launcher, list: l}
	p.Reload()
	return p
}

// Reload reads the items from the source again.
func (p *listPage) Reload() {
	items, err := p.source.GetItems(p.kind)
	if err != nil {
		debuglog.Warnf("tui: loading %s items: %v", p.kind, err)
		return
	}
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = catalogItem{item: it}
	}
	p.list.SetItems(listItems)
}

func (p *listPage) Len() int { return len(p.list.Items()) }

// Selected returns the highlighted item, nil for an empty list.
func (p *listPage) Selected() *storage.Item {
	it, ok := p.list.SelectedItem().(catalogItem)
	if !ok {
		return nil
	}
	return it.item
}

func (p *listPage) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "enter" {
		return p.launchSelected()
	}
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return cmd
}

// HandleEvent scrolls with the wheel.
func (p *listPage) HandleEvent(ev *stage.Event) bool {
	if ev.Kind != stage.Scroll {
		return false
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		p.list.CursorUp()
	case tea.MouseButtonWheelDown:
		p.list.CursorDown()
	}
	return true
}

func (p *listPage) launchSelected() tea.Cmd {
	item := p.Selected()
	if item == nil {
		return statusCmd(MsgNothingSelected, StatusWarn)
	}
	launcher := p.launcher
	return func() tea.Msg {
		return launchedMsg{name: item.Name, err: launcher.Launch(item)}
	}
}

func (p *listPage) View(width, height int) string {
	p.list.SetSize(width, height)
	if p.Len() == 0 {
		return HelpStyle.Render(fmt.Sprintf("No %ss in the catalog", p.kind))
	}
	return p.list.View()
}

// helpPage renders the key bindings as markdown.
type helpPage struct {
	keys     config.KeyConfig
	viewport viewport.Model

	renderer      *glamour.TermRenderer
	rendererWidth int
	renderedFor   int
}

func newHelpPage(keys config.KeyConfig) *helpPage {
	return &helpPage{keys: keys, viewport: viewport.New(0, 0), renderedFor: -1}
}

func (p *helpPage) markdown() string {
	var b strings.Builder
	b.WriteString("# Keyboard\n\n")
	b.WriteString("| Key | Action |\n|---|---|\n")
	rows := [][2]string{
		{"any character", "start a search"},
		{"up / down", "move through results"},
		{"enter", "open the selected result"},
		{"esc", "clear the search, then hide the overview"},
		{p.keys.NextTab, "next tab"},
		{p.keys.PrevTab, "previous tab"},
		{p.keys.Toggle, "show or hide the overview"},
		{p.keys.RunDialog, "run a command"},
		{p.keys.Quit, "quit while the overview is hidden"},
		{"ctrl+c", "quit"},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "| `%s` | %s |\n", r[0], r[1])
	}
	b.WriteString("\n# Mouse\n\n")
	b.WriteString("Click **Activities** to toggle the overview. Click a tab title to switch tabs. ")
	b.WriteString("Dragging an item on a page returns to the first tab.\n")
	return b.String()
}

func (p *helpPage) getRenderer(width int) (*glamour.TermRenderer, error) {
	wrap := width - 4
	if wrap < 20 {
		wrap = 20
	}
	if p.renderer == nil || p.rendererWidth != wrap {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			return nil, err
		}
		p.renderer = r
		p.rendererWidth = wrap
	}
	return p.renderer, nil
}

func (p *helpPage) render(width int) {
	if p.renderedFor == width {
		return
	}
	content := p.markdown()
	if r, err := p.getRenderer(width); err != nil {
		debuglog.Warnf("tui: help renderer: %v", err)
	} else if out, err := r.Render(content); err != nil {
		debuglog.Warnf("tui: rendering help: %v", err)
	} else {
		content = out
	}
	p.viewport.SetContent(content)
	p.renderedFor = width
}

func (p *helpPage) HandleKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

func (p *helpPage) HandleEvent(ev *stage.Event) bool {
	if ev.Kind != stage.Scroll {
		return false
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		p.viewport.LineUp(1)
	case tea.MouseButtonWheelDown:
		p.viewport.LineDown(1)
	}
	return true
}

func (p *helpPage) View(width, height int) string {
	p.viewport.Width = width
	p.viewport.Height = height
	p.render(width)
	return p.viewport.View()
}
