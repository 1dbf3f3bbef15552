package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/overview/internal/config"
	"github.com/pders01/overview/internal/searchdisplay"
)

const AppName = "overview"

var LogoLines = []string{
	"▄▀▀▄ █  █ █▀▀ █▀▀▄ █  █ ▀█▀ █▀▀ █   █",
	"█  █ ▀▄▄▀ █▀▀ █▄▄▀ ▀▄▄▀  █  █▀▀ █ █ █",
	" ▀▀   ▀▀  ▀▀▀ ▀  ▀  ▀▀  ▀▀▀ ▀▀▀  ▀ ▀ ",
}

var (
	PrimaryColor    = lipgloss.Color("#729FCF")
	SecondaryColor  = lipgloss.Color("#8AE234")
	AccentColor     = lipgloss.Color("#FCE94F")
	BackgroundColor = lipgloss.Color("#1E1E1E")
	SurfaceColor    = lipgloss.Color("#2E3436")
	TextColor       = lipgloss.Color("#EEEEEC")
	MutedColor      = lipgloss.Color("#888A85")
	ErrorColor      = lipgloss.Color("#EF2929")
	SuccessColor    = lipgloss.Color("#73D216")
)

var (
	LogoStyle         lipgloss.Style
	PanelStyle        lipgloss.Style
	PanelButtonStyle  lipgloss.Style
	TabTitleStyle     lipgloss.Style
	TabSelectedStyle  lipgloss.Style
	SearchBoxStyle    lipgloss.Style
	HeaderStyle       lipgloss.Style
	SelectedItemStyle lipgloss.Style
	HelpStyle         lipgloss.Style
	ModalStyle        lipgloss.Style
	SeparatorStyle    lipgloss.Style

	StatusInfoStyle    lipgloss.Style
	StatusSuccessStyle lipgloss.Style
	StatusWarnStyle    lipgloss.Style
	StatusErrorStyle   lipgloss.Style
)

func init() {
	buildStyles()
}

// ApplyColors replaces the palette with configured colors. Empty entries
// keep the current color.
func ApplyColors(c config.UIColors) {
	set := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(&PrimaryColor, c.Primary)
	set(&SecondaryColor, c.Secondary)
	set(&AccentColor, c.Accent)
	set(&BackgroundColor, c.Background)
	set(&SurfaceColor, c.Surface)
	set(&TextColor, c.Text)
	set(&MutedColor, c.Muted)
	set(&ErrorColor, c.Error)
	set(&SuccessColor, c.Success)
	buildStyles()
}

func buildStyles() {
	LogoStyle = lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true)

	PanelStyle = lipgloss.NewStyle().
		Foreground(TextColor).
		Background(SurfaceColor)

	PanelButtonStyle = lipgloss.NewStyle().
		Foreground(BackgroundColor).
		Background(PrimaryColor).
		Bold(true).
		Padding(0, 1)

	TabTitleStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Padding(0, 1)

	TabSelectedStyle = lipgloss.NewStyle().
		Foreground(TextColor).
		Underline(true).
		Bold(true).
		Padding(0, 1)

	SearchBoxStyle = lipgloss.NewStyle().Foreground(TextColor)

	HeaderStyle = lipgloss.NewStyle().
		Foreground(SecondaryColor).
		Bold(true)

	SelectedItemStyle = lipgloss.NewStyle().
		Foreground(BackgroundColor).
		Background(AccentColor).
		Bold(true)

	HelpStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Italic(true)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(AccentColor).
		Padding(1, 2)

	SeparatorStyle = lipgloss.NewStyle().Foreground(MutedColor)

	StatusInfoStyle = lipgloss.NewStyle().Foreground(MutedColor)
	StatusSuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	StatusWarnStyle = lipgloss.NewStyle().Foreground(AccentColor)
	StatusErrorStyle = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)
}

// resultStyles are the search result display's styles in this palette.
func resultStyles() searchdisplay.Styles {
	return searchdisplay.Styles{
		Header:   HeaderStyle,
		Item:     lipgloss.NewStyle().Foreground(TextColor),
		Selected: SelectedItemStyle,
		Muted:    lipgloss.NewStyle().Foreground(MutedColor),
		Error:    StatusErrorStyle,
	}
}

func renderLogo() string {
	lines := make([]string, len(LogoLines))
	for i, l := range LogoLines {
		lines[i] = LogoStyle.Render(l)
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

// DesktopMessage is shown while the overview is hidden.
func DesktopMessage(toggleKey string) string {
	return lipgloss.JoinVertical(
		lipgloss.Center,
		renderLogo(),
		"",
		HelpStyle.Render(fmt.Sprintf("Press %s or click Activities to open the overview", toggleKey)),
	)
}

// ShowBanner prints the logo and version to w.
func ShowBanner(w io.Writer, version string) {
	tag := version
	if tag != "" && tag != "dev" && tag[0] != 'v' && tag[0] != 'V' {
		tag = "v" + tag
	}
	tagline := "activities overview"
	if tag != "" {
		tagline += " " + tag
	}

	banner := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(SecondaryColor).
		Padding(1, 3).
		Render(lipgloss.JoinVertical(lipgloss.Center, renderLogo(), "", HelpStyle.Render(tagline)))

	fmt.Fprintln(w, banner)
}
