package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/overview/internal/config"
	"github.com/pders01/overview/internal/stage"
)

// KeyHandler routes key messages. Global bindings come first, then the
// stage (search field, search tab, selector), then tab switching and the
// visible content page.
type KeyHandler struct {
	app  *App
	keys config.KeyConfig
}

func NewKeyHandler(app *App, keys config.KeyConfig) *KeyHandler {
	return &KeyHandler{app: app, keys: keys}
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	a := kh.app

	if key == "ctrl+c" {
		return tea.Quit
	}

	if !a.dialog.IsOpen() {
		if cmd, handled := kh.handleGlobalKeys(key); handled {
			return cmd
		}
	}

	if a.stage.Dispatch(stage.KeyEvent(msg)) {
		return nil
	}

	if !a.overview.Visible() || a.stage.KeyFocus() != a.stage.Root() {
		return nil
	}

	switch key {
	case kh.keys.NextTab:
		a.selector.SwitchRelative(1)
		return nil
	case kh.keys.PrevTab:
		a.selector.SwitchRelative(-1)
		return nil
	}

	if page := a.visiblePage(); page != nil {
		return page.HandleKey(msg)
	}
	return nil
}

func (kh *KeyHandler) handleGlobalKeys(key string) (tea.Cmd, bool) {
	a := kh.app
	switch key {
	case kh.keys.Toggle:
		a.overview.Toggle()
		return nil, true
	case kh.keys.RunDialog:
		a.dialog.Open()
		return nil, true
	case kh.keys.Quit:
		// While the overview is up, printable keys belong to the search.
		if !a.overview.Visible() {
			return tea.Quit, true
		}
	}
	return nil, false
}
