package integration

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/overview/internal/config"
	"github.com/pders01/overview/internal/launcher"
	"github.com/pders01/overview/internal/mainloop"
	"github.com/pders01/overview/internal/overview"
	"github.com/pders01/overview/internal/plugins"
	"github.com/pders01/overview/internal/plugins/builtin"
	"github.com/pders01/overview/internal/storage"
	"github.com/pders01/overview/internal/tui"
)

type started struct {
	name string
	args []string
}

type recordingRunner struct {
	calls []started
}

func (r *recordingRunner) Start(name string, args ...string) error {
	r.calls = append(r.calls, started{name: name, args: args})
	return nil
}

type manualLoop struct {
	*mainloop.ManualLoop
}

func (manualLoop) Dispatch(mainloop.TimeoutMsg) bool { return false }
func (manualLoop) Cmd() tea.Cmd                      { return nil }

type env struct {
	app    *tui.App
	loop   *mainloop.ManualLoop
	runner *recordingRunner
}

func setup(t *testing.T, disabled ...string) *env {
	t.Helper()
	dir := t.TempDir()

	store, err := storage.NewStore(filepath.Join(dir, "overview.db"), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	cat, err := storage.DefaultCatalog()
	require.NoError(t, err)
	require.NoError(t, store.SaveItems(cat.Items))

	e := &env{loop: mainloop.NewManualLoop(), runner: &recordingRunner{}}
	l := launcher.NewWithRunner("xdg-open", e.runner)

	registry := plugins.NewRegistry()
	builtin.Register(registry)
	providers := registry.Build(plugins.Env{
		Store:     store,
		Launcher:  l,
		IndexPath: filepath.Join(dir, "index.bleve"),
	}, disabled)
	t.Cleanup(func() { _ = providers.Close() })

	e.app = tui.NewApp(tui.Options{
		Config:    config.TestConfig(),
		Store:     store,
		Launcher:  l,
		Providers: providers.List,
		Loop:      manualLoop{e.loop},
	})
	e.app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return e
}

func (e *env) typeText(s string) {
	for _, r := range s {
		e.app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (e *env) enter() {
	e.app.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestSearchOpensDocument(t *testing.T) {
	e := setup(t)

	e.typeText("keyboard")
	e.loop.Advance(overview.SearchDelay)

	_, meta, ok := e.app.Selector().SearchTab().Results().Selected()
	require.True(t, ok)
	assert.Equal(t, "keyboard-shortcuts", meta.ID)
	assert.Contains(t, e.app.View(), "Keyboard Shortcuts")

	e.enter()
	require.Len(t, e.runner.calls, 1)
	assert.Equal(t, "xdg-open", e.runner.calls[0].name)
	assert.Equal(t, []string{"https://example.com/overview/keys"}, e.runner.calls[0].args)
	assert.False(t, e.app.Overview().Visible())
}

func TestSearchMatchesDocumentContent(t *testing.T) {
	e := setup(t)

	e.typeText("printable")
	e.loop.Advance(overview.SearchDelay)

	_, meta, ok := e.app.Selector().SearchTab().Results().Selected()
	require.True(t, ok)
	assert.Equal(t, "getting-started", meta.ID)
}

func TestSearchRunsApplication(t *testing.T) {
	e := setup(t)

	e.typeText("te")
	e.loop.Advance(overview.SearchDelay)
	e.typeText("x")
	e.enter()

	require.Len(t, e.runner.calls, 1)
	assert.Equal(t, "editor", e.runner.calls[0].name)
}

func TestDisabledProviderHasNoSection(t *testing.T) {
	e := setup(t, builtin.DocumentsName)

	e.typeText("keyboard")
	e.loop.Advance(overview.SearchDelay)

	results := e.app.Selector().SearchTab().Results()
	assert.Equal(t, 0, results.Count())
	for _, sec := range results.Sections() {
		assert.NotEqual(t, builtin.DocumentsName, sec.Title)
	}
}

func TestEscapeFlow(t *testing.T) {
	e := setup(t)

	e.typeText("cal")
	e.loop.Advance(overview.SearchDelay)
	require.Equal(t, overview.KindSearch, e.app.Selector().VisibleTab().Kind)

	e.app.Update(tea.KeyMsg{Type: tea.KeyEscape})
	assert.Equal(t, "Applications", e.app.Selector().VisibleTab().Label)
	assert.Equal(t, 0, e.app.Selector().SearchTab().Results().Count())

	e.app.Update(tea.KeyMsg{Type: tea.KeyEscape})
	assert.False(t, e.app.Overview().Visible())
	assert.Empty(t, e.runner.calls)
}
