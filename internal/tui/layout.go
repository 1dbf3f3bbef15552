package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/overview/internal/stage"
)

const (
	panelRow  = 0
	tabBarRow = 1
	// panel, tab bar, separator and status bar
	chromeRows = 4

	maxSearchWidth = 32
	clearIconWidth = 2
)

func (a *App) searchWidth() int {
	w := a.width / 3
	if w > maxSearchWidth {
		w = maxSearchWidth
	}
	if w < 12 {
		w = 12
	}
	return w
}

func (a *App) pageHeight() int {
	h := a.height - chromeRows
	if h < 1 {
		h = 1
	}
	return h
}

// layout places every element where View draws it, so pointer events hit
// what is on screen.
func (a *App) layout() {
	a.panel.SetBounds(stage.Rect{X: 0, Y: panelRow, W: a.width, H: 1})
	a.activities.SetBounds(stage.Rect{
		X: 0, Y: panelRow,
		W: lipgloss.Width(PanelButtonStyle.Render("Activities")), H: 1,
	})

	a.selector.Element().SetBounds(stage.Rect{X: 0, Y: tabBarRow, W: a.width, H: a.height - 2})
	a.selector.TabBar().SetBounds(stage.Rect{X: 0, Y: tabBarRow, W: a.width, H: 1})

	x := 0
	for _, t := range a.selector.Tabs() {
		w := lipgloss.Width(TabTitleStyle.Render(t.Label))
		t.Title().SetBounds(stage.Rect{X: x, Y: tabBarRow, W: w, H: 1})
		x += w + 1
	}

	sw := a.searchWidth()
	entry := a.selector.SearchTab().Field().Entry()
	sx := a.width - sw
	if sx < x {
		sx = x
	}
	a.selector.SearchArea().SetBounds(stage.Rect{X: sx, Y: tabBarRow, W: sw, H: 1})
	entry.Box().SetBounds(stage.Rect{X: sx, Y: tabBarRow, W: sw, H: 1})
	entry.TextElement().SetBounds(stage.Rect{X: sx, Y: tabBarRow, W: sw - clearIconWidth, H: 1})
	entry.Icon().SetBounds(stage.Rect{X: sx + sw - clearIconWidth, Y: tabBarRow, W: clearIconWidth, H: 1})
	entry.SetWidth(sw - clearIconWidth - 1)

	pageRect := stage.Rect{X: 0, Y: tabBarRow + 2, W: a.width, H: a.pageHeight()}
	a.selector.PageArea().SetBounds(pageRect)
	a.selector.SearchTab().PageElement().SetBounds(pageRect)
	for _, t := range a.selector.Tabs() {
		t.PageElement().SetBounds(pageRect)
	}

	a.dialog.elem.SetBounds(stage.Rect{X: 0, Y: 0, W: a.width, H: a.height})
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return ""
	}
	a.layout()

	bodyHeight := a.height - 2
	var body string
	switch {
	case a.dialog.IsOpen():
		body = lipgloss.Place(a.width, bodyHeight, lipgloss.Center, lipgloss.Center, a.dialog.View())
	case a.overview.Visible():
		body = lipgloss.JoinVertical(lipgloss.Left,
			a.renderTabBar(),
			SeparatorStyle.Render(strings.Repeat("─", a.width)),
			a.renderPage(),
		)
	default:
		body = lipgloss.Place(a.width, bodyHeight, lipgloss.Center, lipgloss.Center, DesktopMessage(a.config.Keys.Toggle))
	}

	return lipgloss.JoinVertical(lipgloss.Left, a.renderPanel(), body, a.renderStatus())
}

func (a *App) renderPanel() string {
	button := PanelButtonStyle.Render("Activities")
	name := PanelStyle.Render(" " + AppName + " ")
	gap := a.width - lipgloss.Width(button) - lipgloss.Width(name)
	if gap < 0 {
		gap = 0
	}
	return button + PanelStyle.Render(strings.Repeat(" ", gap)) + name
}

func (a *App) renderTabBar() string {
	var titles []string
	for _, t := range a.selector.Tabs() {
		style := TabTitleStyle
		if t.Selected() {
			style = TabSelectedStyle
		}
		titles = append(titles, style.Render(t.Label))
	}
	left := strings.Join(titles, " ")

	entry := a.selector.SearchTab().Field().Entry()
	var search string
	if entry.Text() == "" && a.stage.KeyFocus() != entry.TextElement() {
		search = HelpStyle.Render(entry.DisplayedText())
	} else {
		search = SearchBoxStyle.Render(entry.View())
	}
	search = lipgloss.NewStyle().Width(a.searchWidth()).MaxWidth(a.searchWidth()).Render(search)

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(search)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + search
}

func (a *App) renderPage() string {
	h := a.pageHeight()
	var content string
	if t := a.selector.VisibleTab(); t != nil {
		content = t.Page().View(a.width, h)
	}
	return lipgloss.NewStyle().Width(a.width).Height(h).MaxHeight(h).Render(content)
}

func (a *App) renderStatus() string {
	left := a.status.style()
	if results := a.selector.SearchTab().Results(); a.status.text == "" && a.selector.SearchTab().Visible() && !results.Searching() {
		left = StatusInfoStyle.Render(MsgResultsCount(results.Count()))
	}
	hint := HelpStyle.Render(a.config.Keys.Toggle + " overview • " + a.config.Keys.RunDialog + " run • ctrl+c quit")
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(hint)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + hint
}
