package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/overview/internal/stage"
)

// runDialog is a modal command prompt. While open it holds key focus, so
// the search field leaves its keys alone.
type runDialog struct {
	stage *stage.Stage
	elem  *stage.Element
	input textinput.Model
	open  bool

	onRun func(command string)
}

func newRunDialog(st *stage.Stage, onRun func(string)) *runDialog {
	ti := textinput.New()
	ti.Placeholder = "Enter a command"
	ti.Prompt = "› "
	ti.CharLimit = 512
	ti.Width = 40

	d := &runDialog{
		stage: st,
		elem:  st.NewElement("run-dialog", nil),
		input: ti,
		onRun: onRun,
	}
	d.elem.Reactive = true
	d.elem.SetVisible(false)
	d.elem.SetHandler(d.handleEvent)
	return d
}

func (d *runDialog) Open() {
	if d.open {
		return
	}
	d.open = true
	d.input.Reset()
	d.input.Focus()
	d.elem.SetVisible(true)
	d.stage.SetKeyFocus(d.elem)
}

func (d *runDialog) Close() {
	if !d.open {
		return
	}
	d.open = false
	d.input.Blur()
	d.elem.SetVisible(false)
	if d.stage.KeyFocus() == d.elem {
		d.stage.SetKeyFocus(nil)
	}
}

func (d *runDialog) IsOpen() bool { return d.open }

func (d *runDialog) Value() string { return d.input.Value() }

func (d *runDialog) handleEvent(ev *stage.Event) bool {
	if ev.Kind != stage.KeyPress {
		// Modal: pointer events on the dialog go nowhere else.
		return ev.Kind == stage.ButtonPress || ev.Kind == stage.ButtonRelease
	}
	switch ev.Key.Type {
	case tea.KeyEscape:
		d.Close()
	case tea.KeyEnter:
		command := strings.TrimSpace(d.input.Value())
		d.Close()
		d.onRun(command)
	default:
		d.input, _ = d.input.Update(tea.KeyMsg(ev.Key))
	}
	return true
}

func (d *runDialog) View() string {
	return ModalStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		HeaderStyle.Render("Run a command"),
		"",
		d.input.View(),
		"",
		HelpStyle.Render("Enter to run, Esc to cancel"),
	))
}
